// Package ports declares the contracts between the application core and
// the outside world: repositories, the unit of work, the event
// publisher, and the notifier. Adapters implement them; use cases
// depend only on the interfaces.
package ports
