package orders

import (
	"testing"
	"time"

	"github.com/drezzup/storefront/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("02 Jan 2006", value)
	require.NoError(t, err)
	return parsed
}

func TestAggregateSingleOrder(t *testing.T) {
	grouped := map[string][]models.Order{
		"15 Mar 2025": {
			{
				Status:      models.StatusNew,
				ComboPrice:  100,
				AddBox:      1,
				Location:    "Accra",
				SelectedIDs: []string{"p1", "p2"},
				Date:        mustDate(t, "15 Mar 2025"),
			},
		},
	}

	stats := Aggregate(grouped)

	assert.Equal(t, 120.0, stats.TotalRevenue)
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, 0, stats.CompletedOrders)
	assert.Equal(t, 1, stats.OrdersByStatus.New)
	assert.Equal(t, 0, stats.OrdersByStatus.Paid)
	assert.Equal(t, Metric{Count: 1, Revenue: 120}, stats.Locations["Accra"])
	assert.Equal(t, Metric{Count: 1, Revenue: 60}, stats.PopularProducts["Product p1"])
	assert.Equal(t, Metric{Count: 1, Revenue: 60}, stats.PopularProducts["Product p2"])

	// No paid or done orders, so no average.
	assert.Equal(t, 0.0, stats.AverageOrderValue)

	// All twelve months chart even when eleven are quiet.
	assert.Len(t, stats.MonthlyRevenue, 12)
	assert.Equal(t, 120.0, stats.MonthlyRevenue["Mar"])
	assert.Equal(t, 0.0, stats.MonthlyRevenue["Jan"])
}

func TestAggregateRevenueCountsEveryStatus(t *testing.T) {
	grouped := map[string][]models.Order{
		"01 Jun 2025": {
			{Status: models.StatusNew, ComboPrice: 100, Date: mustDate(t, "01 Jun 2025")},
			{Status: models.StatusPaid, ComboPrice: 200, Date: mustDate(t, "01 Jun 2025")},
			{Status: models.StatusDone, ComboPrice: 300, Date: mustDate(t, "01 Jun 2025")},
		},
	}

	stats := Aggregate(grouped)

	assert.Equal(t, 600.0, stats.TotalRevenue)
	assert.Equal(t, 600.0, stats.MonthlyRevenue["Jun"])
	assert.Equal(t, 3, stats.TotalOrders)
	assert.Equal(t, 1, stats.PendingOrders)
	assert.Equal(t, 1, stats.CompletedOrders)

	// Average divides total booked revenue by settled (paid+done) orders.
	assert.Equal(t, 300.0, stats.AverageOrderValue)
}

func TestAggregateToleratesUnknownStatus(t *testing.T) {
	grouped := map[string][]models.Order{
		"02 Jul 2025": {
			{Status: "cancelled", ComboPrice: 50, Location: "Kumasi", Date: mustDate(t, "02 Jul 2025")},
		},
	}

	stats := Aggregate(grouped)

	// Counts toward totals and locations, lands in no status bucket.
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, 50.0, stats.TotalRevenue)
	assert.Equal(t, StatusCounts{}, stats.OrdersByStatus)
	assert.Equal(t, 0.0, stats.MonthlyRevenue["Jul"])
	assert.Equal(t, Metric{Count: 1, Revenue: 50}, stats.Locations["Kumasi"])
}

func TestAggregateSkipsUnparsableDateBucketMonth(t *testing.T) {
	grouped := map[string][]models.Order{
		"not a date": {
			{Status: models.StatusPaid, ComboPrice: 80},
		},
	}

	stats := Aggregate(grouped)

	assert.Equal(t, 80.0, stats.TotalRevenue)
	for month, revenue := range stats.MonthlyRevenue {
		assert.Zero(t, revenue, "month %s", month)
	}
}

func TestAggregateIsOrderIndependent(t *testing.T) {
	a := models.Order{Status: models.StatusNew, ComboPrice: 100, AddBox: 1, Location: "Accra", SelectedIDs: []string{"p1"}}
	b := models.Order{Status: models.StatusPaid, ComboPrice: 200, Location: "Tema", SelectedIDs: []string{"p1", "p2"}}
	c := models.Order{Status: models.StatusDone, ComboPrice: 300, AddBox: 2, Location: "Accra", SelectedIDs: []string{"p3"}}
	d := models.Order{Status: models.StatusDone, ComboPrice: 150, Location: "Kumasi"}

	forward := Aggregate(map[string][]models.Order{
		"10 Jan 2025": {a, b},
		"11 Feb 2025": {c, d},
	})
	shuffled := Aggregate(map[string][]models.Order{
		"11 Feb 2025": {d, c},
		"10 Jan 2025": {b, a},
	})

	assert.Equal(t, forward, shuffled)
}

func TestTopProductsAndLocations(t *testing.T) {
	stats := Stats{
		PopularProducts: map[string]Metric{
			"Product p1": {Count: 3, Revenue: 90},
			"Product p2": {Count: 1, Revenue: 300},
			"Product p3": {Count: 2, Revenue: 150},
		},
		Locations: map[string]Metric{
			"Accra":  {Count: 5, Revenue: 500},
			"Tema":   {Count: 1, Revenue: 700},
			"Kumasi": {Count: 2, Revenue: 100},
		},
	}

	products := TopProducts(stats, 2)
	require.Len(t, products, 2)
	assert.Equal(t, "Product p2", products[0].Label)
	assert.Equal(t, "Product p3", products[1].Label)

	locations := TopLocations(stats, 5)
	require.Len(t, locations, 3)
	assert.Equal(t, []string{"Tema", "Accra", "Kumasi"},
		[]string{locations[0].Label, locations[1].Label, locations[2].Label})
}
