// Package services holds domain logic that belongs to no single aggregate.
//
// RegionResolver turns the free-text region a customer typed at checkout
// into the numeric wilaya code the courier network routes on.
package services
