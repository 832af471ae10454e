// Package zone contains the Zone aggregate: a polygonal geographic service
// area with its own delivery-time estimate. Zone boundaries are immutable
// after construction; membership checks delegate to the kernel Polygon
// value type.
package zone
