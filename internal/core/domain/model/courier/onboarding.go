package courier

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// OnboardingStatus tracks a courier's vetting state. Only approved couriers
// participate in allocation.
type OnboardingStatus int

const (
	// OnboardingUnknown represents an invalid or undefined status.
	OnboardingUnknown OnboardingStatus = iota

	// OnboardingPending means the courier registered but was not vetted yet.
	OnboardingPending

	// OnboardingApproved means the courier passed vetting and may work.
	OnboardingApproved

	// OnboardingRejected means the courier failed vetting.
	OnboardingRejected
)

func getOnboardingStatusStrings() map[OnboardingStatus]string {
	return map[OnboardingStatus]string{
		OnboardingUnknown:  "unknown",
		OnboardingPending:  "pending",
		OnboardingApproved: "approved",
		OnboardingRejected: "rejected",
	}
}

// OnboardingStatusFromString parses an onboarding status string.
func OnboardingStatusFromString(s string) (OnboardingStatus, error) {
	for status, str := range getOnboardingStatusStrings() {
		if str == s && status != OnboardingUnknown {
			return status, nil
		}
	}
	return OnboardingUnknown, errs.NewValueIsInvalidErrorWithCause("onboarding status",
		fmt.Errorf("%q is not a valid onboarding status", s))
}

// Validate checks if the OnboardingStatus is one of the valid states.
func (o OnboardingStatus) Validate() error {
	switch o {
	case OnboardingPending, OnboardingApproved, OnboardingRejected:
		return nil
	case OnboardingUnknown:
		fallthrough
	default:
		return errs.NewValueIsInvalidErrorWithCause("onboarding status",
			fmt.Errorf("%d is not a valid onboarding status", o))
	}
}

// String returns the lowercase name of the onboarding status.
func (o OnboardingStatus) String() string {
	if str, ok := getOnboardingStatusStrings()[o]; ok {
		return str
	}
	return "unknown"
}
