package order

import (
	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/errs"
)

// DeliveryAddress is the drop point: free-text directions for the rider
// plus the coordinate used for zone resolution and rider matching.
type DeliveryAddress struct {
	text     string
	location kernel.GeoPoint
}

// NewDeliveryAddress creates an address with non-empty text and a
// constructed coordinate.
func NewDeliveryAddress(text string, location kernel.GeoPoint) (DeliveryAddress, error) {
	if text == "" {
		return DeliveryAddress{}, errs.NewValueIsRequiredError("text")
	}
	if err := location.Validate(); err != nil {
		return DeliveryAddress{}, err
	}
	return DeliveryAddress{text: text, location: location}, nil
}

// Text returns the free-text directions.
func (a DeliveryAddress) Text() string {
	return a.text
}

// Location returns the drop coordinate.
func (a DeliveryAddress) Location() kernel.GeoPoint {
	return a.location
}

// Validate checks the address carries a constructed coordinate.
func (a DeliveryAddress) Validate() error {
	if a.text == "" {
		return errs.NewValueIsRequiredError("text")
	}
	return a.location.Validate()
}
