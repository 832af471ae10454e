// Package kernel contains the shared value objects of the domain model:
// identifiers (UUID, TenantID), geography (GeoPoint, Polygon), and Money.
//
// All types here are immutable values. Types whose zero value would be
// ambiguous embed a constructor guard so improperly initialized instances
// fail validation instead of silently carrying garbage.
package kernel
