package order

import "dispatch/internal/core/domain/model/kernel"

// ProofOfDelivery captures the evidence recorded at handover. An order can be
// delivered with either the one-time verification code or at least one of the
// signature and photo references.
type ProofOfDelivery struct {
	// SignatureRef points at a stored recipient signature, if captured.
	SignatureRef string

	// PhotoRef points at a stored handover photo, if captured.
	PhotoRef string

	// RecipientID identifies the verified recipient. Required for
	// legal documents and valuables, nil otherwise.
	RecipientID *kernel.UUID
}

// IsEmpty reports whether no evidence was recorded at all.
func (p ProofOfDelivery) IsEmpty() bool {
	return p.SignatureRef == "" && p.PhotoRef == "" && p.RecipientID == nil
}
