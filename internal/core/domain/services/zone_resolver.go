package services

import (
	"errors"
	"sort"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/store"
	"hyperlocal/internal/core/domain/model/zone"
)

// ErrOutOfServiceArea is returned when no active zone's boundary
// contains the queried point. Callers must treat the location as
// unserviceable; there is no default zone.
var ErrOutOfServiceArea = errors.New("location is outside every service zone")

// ZoneDistance pairs a zone with its center's distance from a query
// point.
type ZoneDistance struct {
	Zone       *zone.Zone
	DistanceKm float64
}

// ZoneResolver is a pure domain service answering "which zone serves
// this coordinate" over a candidate set the caller already scoped to
// one tenant.
//
// Active zones within a tenant are expected not to overlap. When bad
// data makes them overlap anyway, resolution stays deterministic: the
// earliest-created zone wins, with the identifier as the final
// tie-break.
type ZoneResolver struct{}

// NewZoneResolver creates a ZoneResolver.
func NewZoneResolver() ZoneResolver {
	return ZoneResolver{}
}

// Resolve returns the active zone whose boundary contains the point, or
// ErrOutOfServiceArea when none does. Resolving the same point over the
// same candidates always yields the same zone.
func (ZoneResolver) Resolve(point kernel.GeoPoint, zones []*zone.Zone) (*zone.Zone, error) {
	if err := point.Validate(); err != nil {
		return nil, err
	}

	var match *zone.Zone
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return nil, err
		}
		if !z.IsActive() {
			continue
		}
		contains, err := z.Contains(point)
		if err != nil {
			return nil, err
		}
		if !contains {
			continue
		}
		if match == nil || createdEarlier(z, match) {
			match = z
		}
	}

	if match == nil {
		return nil, ErrOutOfServiceArea
	}
	return match, nil
}

// Nearby returns active zones whose center lies within maxDistanceKm of
// the point, ordered by distance ascending.
func (ZoneResolver) Nearby(point kernel.GeoPoint, maxDistanceKm float64, zones []*zone.Zone) ([]ZoneDistance, error) {
	if err := point.Validate(); err != nil {
		return nil, err
	}

	out := make([]ZoneDistance, 0, len(zones))
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return nil, err
		}
		if !z.IsActive() {
			continue
		}
		distance, err := point.DistanceKm(z.Center())
		if err != nil {
			return nil, err
		}
		if distance <= maxDistanceKm {
			out = append(out, ZoneDistance{Zone: z, DistanceKm: distance})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceKm < out[j].DistanceKm
	})
	return out, nil
}

// ServiceableStores filters the zone's stores down to those currently
// open at the given instant, ordered by rating descending then name
// ascending.
func (ZoneResolver) ServiceableStores(zoneID kernel.UUID, stores []*store.Store, at time.Time) ([]*store.Store, error) {
	if err := zoneID.Validate(); err != nil {
		return nil, err
	}

	out := make([]*store.Store, 0, len(stores))
	for _, s := range stores {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if !s.ZoneID().IsEqual(zoneID) {
			continue
		}
		if s.IsOpenAt(at) {
			out = append(out, s)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating() != out[j].Rating() {
			return out[i].Rating() > out[j].Rating()
		}
		return out[i].Name() < out[j].Name()
	})
	return out, nil
}

// createdEarlier orders zones by creation time, then by ID for zones
// created in the same instant.
func createdEarlier(a, b *zone.Zone) bool {
	if !a.CreatedAt().Equal(b.CreatedAt()) {
		return a.CreatedAt().Before(b.CreatedAt())
	}
	return a.ID().String() < b.ID().String()
}
