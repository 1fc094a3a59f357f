package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// PackageSize classifies the physical size of the package. The size class
// drives the pricing size multiplier and the vehicle eligibility table used
// by allocation.
type PackageSize int

const (
	// PackageSizeUnknown represents an invalid or undefined size.
	PackageSizeUnknown PackageSize = iota

	// PackageSizeEnvelope is a flat document envelope.
	PackageSizeEnvelope

	// PackageSizeSmall fits in a delivery bag.
	PackageSizeSmall

	// PackageSizeMedium is a standard box.
	PackageSizeMedium

	// PackageSizeLarge requires a car-sized vehicle.
	PackageSizeLarge

	// PackageSizeXLarge requires a van.
	PackageSizeXLarge

	// PackageSizeCustom is an oversized or irregular shipment.
	PackageSizeCustom
)

func getPackageSizeStrings() map[PackageSize]string {
	return map[PackageSize]string{
		PackageSizeUnknown:  "unknown",
		PackageSizeEnvelope: "envelope",
		PackageSizeSmall:    "small",
		PackageSizeMedium:   "medium",
		PackageSizeLarge:    "large",
		PackageSizeXLarge:   "xlarge",
		PackageSizeCustom:   "custom",
	}
}

// PackageSizeFromString parses a package size string.
func PackageSizeFromString(s string) (PackageSize, error) {
	for size, str := range getPackageSizeStrings() {
		if str == s && size != PackageSizeUnknown {
			return size, nil
		}
	}
	return PackageSizeUnknown, errs.NewValueIsInvalidErrorWithCause("package size",
		fmt.Errorf("%q is not a valid package size", s))
}

// Validate checks if the PackageSize is one of the valid size classes.
func (p PackageSize) Validate() error {
	switch p {
	case PackageSizeEnvelope, PackageSizeSmall, PackageSizeMedium,
		PackageSizeLarge, PackageSizeXLarge, PackageSizeCustom:
		return nil
	case PackageSizeUnknown:
		fallthrough
	default:
		return errs.NewValueIsInvalidErrorWithCause("package size",
			fmt.Errorf("%d is not a valid package size", p))
	}
}

// String returns the lowercase name of the size class.
func (p PackageSize) String() string {
	if str, ok := getPackageSizeStrings()[p]; ok {
		return str
	}
	return "unknown"
}
