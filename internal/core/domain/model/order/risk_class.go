package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// RiskClass marks shipments that need extra handling. Legal documents and
// valuables carry a price surcharge and require recipient identity
// verification at handover.
type RiskClass int

const (
	// RiskClassUnknown represents an invalid or undefined risk class.
	RiskClassUnknown RiskClass = iota

	// RiskClassStandard is an ordinary shipment.
	RiskClassStandard

	// RiskClassLegalDocument is a notarized or court document.
	RiskClassLegalDocument

	// RiskClassValuable is a high-value shipment.
	RiskClassValuable
)

func getRiskClassStrings() map[RiskClass]string {
	return map[RiskClass]string{
		RiskClassUnknown:       "unknown",
		RiskClassStandard:      "standard",
		RiskClassLegalDocument: "legal_document",
		RiskClassValuable:      "valuable",
	}
}

// RiskClassFromString parses a risk class string.
func RiskClassFromString(s string) (RiskClass, error) {
	for risk, str := range getRiskClassStrings() {
		if str == s && risk != RiskClassUnknown {
			return risk, nil
		}
	}
	return RiskClassUnknown, errs.NewValueIsInvalidErrorWithCause("risk class",
		fmt.Errorf("%q is not a valid risk class", s))
}

// Validate checks if the RiskClass is one of the valid classes.
func (r RiskClass) Validate() error {
	switch r {
	case RiskClassStandard, RiskClassLegalDocument, RiskClassValuable:
		return nil
	case RiskClassUnknown:
		fallthrough
	default:
		return errs.NewValueIsInvalidErrorWithCause("risk class",
			fmt.Errorf("%d is not a valid risk class", r))
	}
}

// RequiresRecipientVerification reports whether handover of this class
// requires the recipient's identity to be recorded.
func (r RiskClass) RequiresRecipientVerification() bool {
	return r == RiskClassLegalDocument || r == RiskClassValuable
}

// String returns the lowercase name of the risk class.
func (r RiskClass) String() string {
	if str, ok := getRiskClassStrings()[r]; ok {
		return str
	}
	return "unknown"
}
