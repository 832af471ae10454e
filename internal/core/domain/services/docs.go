// Package services provides domain services that work across multiple
// aggregates: zone resolution for a coordinate and rider matching for
// an order. Both are pure functions over candidate sets the application
// layer loads, so they carry no I/O and are trivially testable.
package services
