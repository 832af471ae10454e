// Package rider contains the Rider aggregate: zone coverage, location
// pings, duty state, the earnings ledger, and performance counters.
package rider
