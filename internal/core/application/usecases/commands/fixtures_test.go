package commands_test

import (
	"testing"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/core/domain/model/product"
	"hyperlocal/internal/core/domain/model/rider"
	"hyperlocal/internal/core/domain/model/store"
	"hyperlocal/internal/core/domain/model/zone"

	"github.com/stretchr/testify/require"
)

// Monday noon inside every fixture store's 09:00-21:00 window.
var fixedNow = time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)

func testTenant(t *testing.T) kernel.TenantID {
	t.Helper()
	tenant, err := kernel.NewTenantID("blr-south")
	require.NoError(t, err)
	return tenant
}

func geoPoint(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

// koramangalaZone covers the fixture drop point (12.930, 77.628).
func koramangalaZone(t *testing.T) *zone.Zone {
	t.Helper()
	vertices := make([]kernel.GeoPoint, 0, 4)
	for _, c := range [][2]float64{
		{12.925, 77.622}, {12.925, 77.635}, {12.935, 77.635}, {12.935, 77.622},
	} {
		vertices = append(vertices, geoPoint(t, c[0], c[1]))
	}
	boundary, err := kernel.NewPolygon(vertices)
	require.NoError(t, err)

	z, err := zone.NewZone(kernel.NewUUID(), testTenant(t), "Koramangala", boundary,
		geoPoint(t, 12.930, 77.628), 5, 20, 40,
		time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return z
}

func openStore(t *testing.T, zoneID kernel.UUID) *store.Store {
	t.Helper()
	window, err := store.NewOperatingWindow(9*60, 21*60)
	require.NoError(t, err)
	schedule := store.WeekSchedule{}
	for day := time.Sunday; day <= time.Saturday; day++ {
		schedule[day] = window
	}

	s, err := store.NewStore(kernel.NewUUID(), testTenant(t), zoneID, kernel.NewUUID(),
		"Darshini Fresh Mart", geoPoint(t, 12.930, 77.628), schedule, 10, 15)
	require.NoError(t, err)
	return s
}

func stockedProduct(t *testing.T, storeID kernel.UUID, stock int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), testTenant(t), storeID,
		"Filter Coffee Powder 500g", "groceries", 4500, stock, 10)
	require.NoError(t, err)
	return p
}

func dropAddress(t *testing.T) order.DeliveryAddress {
	t.Helper()
	address, err := order.NewDeliveryAddress("80 Feet Road, gate 2", geoPoint(t, 12.930, 77.628))
	require.NoError(t, err)
	return address
}

func placedOrder(t *testing.T, customerID, storeID, zoneID kernel.UUID) *order.Order {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), "Filter Coffee Powder 500g", 2, 4500, order.SubstitutionNone)
	require.NoError(t, err)
	pricing, err := order.NewPricing(9000, 3000, 900, 450, 0)
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), testTenant(t), customerID, storeID, zoneID,
		[]order.Item{item}, pricing, dropAddress(t), order.PaymentCashOnDelivery,
		fixedNow.Add(-30*time.Minute))
	require.NoError(t, err)
	return o
}

// readyOrder is a placedOrder driven to ready_for_pickup by its store
// owner.
func readyOrder(t *testing.T, customerID, storeID, zoneID, ownerID kernel.UUID) *order.Order {
	t.Helper()
	o := placedOrder(t, customerID, storeID, zoneID)
	owner, err := order.NewActor(ownerID, order.RoleStoreOwner)
	require.NoError(t, err)
	for _, next := range []order.Status{order.Accepted, order.Preparing, order.ReadyForPickup} {
		require.NoError(t, o.Transition(next, "", owner, fixedNow.Add(-10*time.Minute)))
	}
	return o
}

func eligibleRider(t *testing.T, zoneID kernel.UUID) *rider.Rider {
	t.Helper()
	r, err := rider.NewRider(kernel.NewUUID(), testTenant(t), "Suresh", "+919900112233",
		[]kernel.UUID{zoneID})
	require.NoError(t, err)
	r.Verify()
	require.NoError(t, r.SetAvailability(rider.Online))
	require.NoError(t, r.UpdateLocation(geoPoint(t, 12.931, 77.629), fixedNow.Add(-time.Minute)))
	return r
}
