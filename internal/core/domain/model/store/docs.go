// Package store contains the Store aggregate: a merchant location bound to
// a service zone, with weekday operating windows, a merchant-controlled
// open flag, and a temporary-closure override. The derived "currently
// open" property combines all of these with an explicit query instant.
package store
