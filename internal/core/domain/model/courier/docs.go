// Package courier contains the Courier aggregate and its supporting value
// objects: the vehicle carry-eligibility table, the onboarding vetting
// states, the weighted performance score set with its standing tiers, and
// the history types consumed by the scoring engine.
package courier
