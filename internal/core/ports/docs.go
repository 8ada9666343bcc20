// Package ports declares what the fulfillment core needs from the outside
// world: order storage with a conditional status write, catalog and user
// lookups, and the courier network.
package ports
