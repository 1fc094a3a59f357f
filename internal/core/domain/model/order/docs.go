// Package order contains the Order aggregate and its supporting value objects:
// the lifecycle status state machine, actor roles and authorization guards,
// package classification enums, the immutable price breakdown and the proof
// of delivery evidence.
//
// The aggregate exposes a single mutation path, Order.Transition, which
// layers the legal-successor table, role-based authorization and
// target-specific effects, and records every change in an append-only
// history with monotonic timestamps.
package order
