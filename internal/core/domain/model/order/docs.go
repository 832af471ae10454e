// Package order contains the Order aggregate and its lifecycle state
// machine. Every status change goes through the aggregate, appends to
// the audit history, and takes an explicit acting party and instant.
package order
