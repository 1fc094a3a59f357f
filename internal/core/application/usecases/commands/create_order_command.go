package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to create a new delivery order.
// Carries everything needed to quote the price and open the order in the
// pending status.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	customerID     kernel.UUID
	pickup         kernel.GeoPoint
	dropoff        kernel.GeoPoint
	packageSize    order.PackageSize
	weightKg       float64
	urgency        order.Urgency
	riskClass      order.RiskClass
	insuranceValue float64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// All classification values and coordinates are validated up front, so a
// malformed order is rejected before any state is created.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	pickup kernel.GeoPoint,
	dropoff kernel.GeoPoint,
	packageSize order.PackageSize,
	weightKg float64,
	urgency order.Urgency,
	riskClass order.RiskClass,
	insuranceValue float64,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setPickup(pickup),
		cmd.setDropoff(dropoff),
		cmd.setPackageSize(packageSize),
		cmd.setWeightKg(weightKg),
		cmd.setUrgency(urgency),
		cmd.setRiskClass(riskClass),
		cmd.setInsuranceValue(insuranceValue),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CustomerID returns the order owner's identifier.
func (c CreateOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Pickup returns the pickup coordinates.
func (c CreateOrderCommand) Pickup() kernel.GeoPoint {
	return c.pickup
}

// Dropoff returns the drop-off coordinates.
func (c CreateOrderCommand) Dropoff() kernel.GeoPoint {
	return c.dropoff
}

// PackageSize returns the package size class.
func (c CreateOrderCommand) PackageSize() order.PackageSize {
	return c.packageSize
}

// WeightKg returns the package weight in kilograms.
func (c CreateOrderCommand) WeightKg() float64 {
	return c.weightKg
}

// Urgency returns the delivery speed tier.
func (c CreateOrderCommand) Urgency() order.Urgency {
	return c.urgency
}

// RiskClass returns the handling risk class.
func (c CreateOrderCommand) RiskClass() order.RiskClass {
	return c.riskClass
}

// InsuranceValue returns the declared value of the shipment.
func (c CreateOrderCommand) InsuranceValue() float64 {
	return c.insuranceValue
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *CreateOrderCommand) setPickup(pickup kernel.GeoPoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	c.pickup = pickup
	return nil
}

func (c *CreateOrderCommand) setDropoff(dropoff kernel.GeoPoint) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}
	c.dropoff = dropoff
	return nil
}

func (c *CreateOrderCommand) setPackageSize(packageSize order.PackageSize) error {
	if err := packageSize.Validate(); err != nil {
		return err
	}
	c.packageSize = packageSize
	return nil
}

func (c *CreateOrderCommand) setWeightKg(weightKg float64) error {
	if weightKg < 0 {
		return errs.NewValueIsInvalidError("weight")
	}
	c.weightKg = weightKg
	return nil
}

func (c *CreateOrderCommand) setUrgency(urgency order.Urgency) error {
	if err := urgency.Validate(); err != nil {
		return err
	}
	c.urgency = urgency
	return nil
}

func (c *CreateOrderCommand) setRiskClass(riskClass order.RiskClass) error {
	if err := riskClass.Validate(); err != nil {
		return err
	}
	c.riskClass = riskClass
	return nil
}

func (c *CreateOrderCommand) setInsuranceValue(insuranceValue float64) error {
	if insuranceValue < 0 {
		return errs.NewValueIsInvalidErrorWithCause("insurance value",
			errors.New("declared value is negative"))
	}
	c.insuranceValue = insuranceValue
	return nil
}
