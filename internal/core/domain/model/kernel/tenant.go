package kernel

import "hyperlocal/internal/pkg/errs"

// ErrTenantIsRequired is returned when a core operation is invoked without a
// tenant partition key.
var ErrTenantIsRequired = errs.NewValueIsRequiredError("tenant")

// TenantID is the opaque partition key isolating one marketplace
// deployment's data from another. It carries no semantics beyond equality;
// every core operation takes it as an explicit parameter and every
// persisted record stores it.
type TenantID struct {
	value string
}

// NewTenantID creates a TenantID from its string form. The empty string is
// rejected: there is no default tenant.
func NewTenantID(value string) (TenantID, error) {
	if value == "" {
		return TenantID{}, ErrTenantIsRequired
	}
	return TenantID{value: value}, nil
}

// String returns the raw partition key.
func (t TenantID) String() string {
	return t.value
}

// IsEqual reports whether two tenant keys match.
func (t TenantID) IsEqual(other TenantID) bool {
	return t.value == other.value
}

// Validate returns ErrTenantIsRequired for the zero value.
func (t TenantID) Validate() error {
	if t.value == "" {
		return ErrTenantIsRequired
	}
	return nil
}
