// Package kernel holds the value objects shared by every aggregate of the
// fulfillment core: identifiers and money.
//
// Value objects are immutable, compare by value through IsEqual and reject
// their zero value in Validate, so a forgotten constructor call surfaces as an
// error instead of a silently empty identifier or amount.
package kernel
