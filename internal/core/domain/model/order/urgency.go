package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Urgency is the delivery speed tier selected by the customer. It scales the
// final price through the urgency multiplier.
type Urgency int

const (
	// UrgencyUnknown represents an invalid or undefined urgency.
	UrgencyUnknown Urgency = iota

	// UrgencyEconomy is a discounted slow tier.
	UrgencyEconomy

	// UrgencyStandard is the default tier.
	UrgencyStandard

	// UrgencyExpress is a same-route priority tier.
	UrgencyExpress

	// UrgencySameDay guarantees delivery within the day.
	UrgencySameDay
)

func getUrgencyStrings() map[Urgency]string {
	return map[Urgency]string{
		UrgencyUnknown:  "unknown",
		UrgencyEconomy:  "economy",
		UrgencyStandard: "standard",
		UrgencyExpress:  "express",
		UrgencySameDay:  "same_day",
	}
}

// UrgencyFromString parses an urgency string.
func UrgencyFromString(s string) (Urgency, error) {
	for urgency, str := range getUrgencyStrings() {
		if str == s && urgency != UrgencyUnknown {
			return urgency, nil
		}
	}
	return UrgencyUnknown, errs.NewValueIsInvalidErrorWithCause("urgency",
		fmt.Errorf("%q is not a valid urgency", s))
}

// Validate checks if the Urgency is one of the valid tiers.
func (u Urgency) Validate() error {
	switch u {
	case UrgencyEconomy, UrgencyStandard, UrgencyExpress, UrgencySameDay:
		return nil
	case UrgencyUnknown:
		fallthrough
	default:
		return errs.NewValueIsInvalidErrorWithCause("urgency",
			fmt.Errorf("%d is not a valid urgency", u))
	}
}

// String returns the lowercase name of the urgency tier.
func (u Urgency) String() string {
	if str, ok := getUrgencyStrings()[u]; ok {
		return str
	}
	return "unknown"
}
