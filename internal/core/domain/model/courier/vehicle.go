package courier

import (
	"fmt"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// VehicleClass is the kind of vehicle a courier operates. It determines which
// package size classes the courier is physically able to carry.
type VehicleClass int

const (
	// VehicleClassUnknown represents an invalid or undefined vehicle class.
	VehicleClassUnknown VehicleClass = iota

	// VehicleClassBicycle carries envelopes and small packages only.
	VehicleClassBicycle

	// VehicleClassScooter carries up to medium packages.
	VehicleClassScooter

	// VehicleClassMotorcycle carries up to medium packages.
	VehicleClassMotorcycle

	// VehicleClassCar carries up to large packages.
	VehicleClassCar

	// VehicleClassVan carries every size class including custom shipments.
	VehicleClassVan
)

func getVehicleClassStrings() map[VehicleClass]string {
	return map[VehicleClass]string{
		VehicleClassUnknown:    "unknown",
		VehicleClassBicycle:    "bicycle",
		VehicleClassScooter:    "scooter",
		VehicleClassMotorcycle: "motorcycle",
		VehicleClassCar:        "car",
		VehicleClassVan:        "van",
	}
}

// getCarryTable returns the vehicle classes eligible for each package size
// class. The table is the single source of truth for carry eligibility.
func getCarryTable() map[order.PackageSize][]VehicleClass {
	anyVehicle := []VehicleClass{
		VehicleClassBicycle, VehicleClassScooter, VehicleClassMotorcycle,
		VehicleClassCar, VehicleClassVan,
	}

	return map[order.PackageSize][]VehicleClass{
		order.PackageSizeEnvelope: anyVehicle,
		order.PackageSizeSmall:    anyVehicle,
		order.PackageSizeMedium: {
			VehicleClassScooter, VehicleClassMotorcycle, VehicleClassCar, VehicleClassVan,
		},
		order.PackageSizeLarge:  {VehicleClassCar, VehicleClassVan},
		order.PackageSizeXLarge: {VehicleClassVan},
		order.PackageSizeCustom: {VehicleClassVan},
	}
}

// VehicleClassFromString parses a vehicle class string.
func VehicleClassFromString(s string) (VehicleClass, error) {
	for class, str := range getVehicleClassStrings() {
		if str == s && class != VehicleClassUnknown {
			return class, nil
		}
	}
	return VehicleClassUnknown, errs.NewValueIsInvalidErrorWithCause("vehicle class",
		fmt.Errorf("%q is not a valid vehicle class", s))
}

// Validate checks if the VehicleClass is one of the valid classes.
func (v VehicleClass) Validate() error {
	switch v {
	case VehicleClassBicycle, VehicleClassScooter, VehicleClassMotorcycle,
		VehicleClassCar, VehicleClassVan:
		return nil
	case VehicleClassUnknown:
		fallthrough
	default:
		return errs.NewValueIsInvalidErrorWithCause("vehicle class",
			fmt.Errorf("%d is not a valid vehicle class", v))
	}
}

// CanCarry reports whether this vehicle class is eligible to carry the given
// package size class.
func (v VehicleClass) CanCarry(size order.PackageSize) bool {
	for _, eligible := range getCarryTable()[size] {
		if eligible == v {
			return true
		}
	}
	return false
}

// String returns the lowercase name of the vehicle class.
func (v VehicleClass) String() string {
	if str, ok := getVehicleClassStrings()[v]; ok {
		return str
	}
	return "unknown"
}
