// Package order holds the Order aggregate and its lifecycle state machine.
//
//	Pending ──accept──> Accepted ──mark ready──> Ready ──ship out──> OutForDelivery
//	   │                                           │                      │
//	   └──decline──> Declined                      └──mark delivered──────┴──> Delivered
//
// Declined and Delivered are terminal. Every transition is a method on Status
// returning the next state or an error wrapping ErrInvalidTransition; the
// aggregate adds the ownership and delivery-type rules on top.
//
// Orders snapshot item titles and unit prices when they are placed, so totals
// never change with later catalog edits.
package order
