package kernel

import (
	"fmt"

	"hyperlocal/internal/pkg/errs"
	"hyperlocal/internal/pkg/guard"
)

// polygonMinVertices is the smallest ring that encloses any area.
const polygonMinVertices = 3

// ErrPolygonIsNotConstructed is returned when using an improperly
// initialized Polygon. Construct through NewPolygon.
var ErrPolygonIsNotConstructed = errs.NewValueIsRequiredError(
	"polygon must be created via NewPolygon constructor")

// Polygon is an immutable ordered ring of vertices describing a service
// zone boundary. The ring is implicitly closed: the last vertex connects
// back to the first. The zero value is invalid.
type Polygon struct { //nolint:recvcheck //using for validation
	vertices []GeoPoint
	guard    guard.ConstructorGuard
}

// NewPolygon creates a Polygon from an ordered vertex ring. The ring must
// have at least three vertices and every vertex must be a valid GeoPoint.
// The vertex slice is copied so callers cannot mutate the boundary later.
func NewPolygon(vertices []GeoPoint) (Polygon, error) {
	p := Polygon{
		guard: guard.NewConstructorGuard(),
	}

	if err := p.setVertices(vertices); err != nil {
		return Polygon{}, err
	}

	return p, nil
}

// Validate checks that the polygon was built through NewPolygon.
func (p Polygon) Validate() error {
	return p.guard.Validate(ErrPolygonIsNotConstructed)
}

// Vertices returns a copy of the ring, preserving immutability.
func (p Polygon) Vertices() []GeoPoint {
	out := make([]GeoPoint, len(p.vertices))
	copy(out, p.vertices)
	return out
}

// Contains reports whether the point lies inside the ring using the
// standard ray-casting parity test over latitude intervals.
//
// Boundary behavior: the test uses half-open latitude intervals, so
// opposite edges of a ring classify boundary points differently (for an
// axis-aligned rectangle the bottom edge falls inside, the top edge
// outside). Callers must not rely on boundary membership either way; the
// behavior is pinned by tests only so it stays consistent.
func (p Polygon) Contains(point GeoPoint) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if err := point.Validate(); err != nil {
		return false, err
	}

	inside := false
	n := len(p.vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		vi := p.vertices[i]
		vj := p.vertices[j]

		intersects := (vi.Lat() > point.Lat()) != (vj.Lat() > point.Lat()) &&
			point.Lng() < (vj.Lng()-vi.Lng())*(point.Lat()-vi.Lat())/(vj.Lat()-vi.Lat())+vi.Lng()
		if intersects {
			inside = !inside
		}
	}

	return inside, nil
}

func (p *Polygon) setVertices(vertices []GeoPoint) error {
	if len(vertices) < polygonMinVertices {
		return errs.NewValueIsInvalidErrorWithCause("boundary",
			fmt.Errorf("%d vertices do not form a ring, need at least %d", len(vertices), polygonMinVertices))
	}

	for _, v := range vertices {
		if err := v.Validate(); err != nil {
			return err
		}
	}

	p.vertices = make([]GeoPoint, len(vertices))
	copy(p.vertices, vertices)
	return nil
}
