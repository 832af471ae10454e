package services

import (
	"errors"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/rider"
)

// ErrRiderNotFound is returned when no eligible rider is close enough
// to take the order.
var ErrRiderNotFound = errors.New("no eligible rider available")

// RiderMatcher is a pure domain service that ranks riders for an order.
// Eligibility is zone membership plus the rider's own eligibility
// (active, verified, online); ranking is nearest first within a radius
// cutoff, ties broken by the freshest location ping.
type RiderMatcher struct {
	// searchRadiusKm is the deployment-wide cutoff beyond which a rider
	// is never matched, regardless of eligibility.
	searchRadiusKm float64
}

// NewRiderMatcher creates a matcher with the given radius cutoff in km.
func NewRiderMatcher(searchRadiusKm float64) RiderMatcher {
	return RiderMatcher{searchRadiusKm: searchRadiusKm}
}

// EligibleRiders filters candidates down to riders serving the zone
// that can take new assignments. Order is preserved from the input.
func (RiderMatcher) EligibleRiders(zoneID kernel.UUID, riders []*rider.Rider) ([]*rider.Rider, error) {
	if err := zoneID.Validate(); err != nil {
		return nil, err
	}

	out := make([]*rider.Rider, 0, len(riders))
	for _, r := range riders {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if r.IsEligible() && r.ServesZone(zoneID) {
			out = append(out, r)
		}
	}
	return out, nil
}

// NearestAvailable picks the closest eligible rider to the pickup point
// within the radius cutoff. Riders without a location ping are skipped.
// Equidistant riders are split by the most recent ping.
func (m RiderMatcher) NearestAvailable(point kernel.GeoPoint, zoneID kernel.UUID, riders []*rider.Rider) (*rider.Rider, error) {
	if err := point.Validate(); err != nil {
		return nil, err
	}

	eligible, err := m.EligibleRiders(zoneID, riders)
	if err != nil {
		return nil, err
	}

	var (
		best         *rider.Rider
		bestDistance float64
	)
	for _, r := range eligible {
		location := r.Location()
		if location == nil {
			continue
		}
		distance, err := point.DistanceKm(*location)
		if err != nil {
			return nil, err
		}
		if distance > m.searchRadiusKm {
			continue
		}
		if best == nil || distance < bestDistance ||
			(distance == bestDistance && r.LocatedAt().After(best.LocatedAt())) {
			best = r
			bestDistance = distance
		}
	}

	if best == nil {
		return nil, ErrRiderNotFound
	}
	return best, nil
}
