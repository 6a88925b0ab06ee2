package orders

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/drezzup/storefront/pkg/models"
)

// Metric accumulates how many orders touched a product or location and the
// revenue attributed to it.
type Metric struct {
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

type StatusCounts struct {
	New  int `json:"new"`
	Paid int `json:"paid"`
	Done int `json:"done"`
}

// Stats is the dashboard summary folded from a set of date-grouped orders.
// Revenue figures include unpaid (new) orders: the dashboard tracks booked
// revenue, not realized revenue.
type Stats struct {
	TotalRevenue      float64            `json:"totalRevenue"`
	TotalOrders       int                `json:"totalOrders"`
	CompletedOrders   int                `json:"completedOrders"`
	PendingOrders     int                `json:"pendingOrders"`
	OrdersByStatus    StatusCounts       `json:"ordersByStatus"`
	PopularProducts   map[string]Metric  `json:"popularProducts"`
	Locations         map[string]Metric  `json:"locations"`
	MonthlyRevenue    map[string]float64 `json:"monthlyRevenue"`
	AverageOrderValue float64            `json:"averageOrderValue"`
}

// Aggregate folds date-grouped orders into Stats. It is order-independent
// over its input and never fails on a malformed record: a record contributes
// whatever fields it can and is skipped for the rest.
func Aggregate(grouped map[string][]models.Order) Stats {
	stats := Stats{
		PopularProducts: make(map[string]Metric),
		Locations:       make(map[string]Metric),
		MonthlyRevenue:  make(map[string]float64, 12),
	}

	// Pre-seed every calendar month so quiet months still chart at 0.
	for m := time.January; m <= time.December; m++ {
		stats.MonthlyRevenue[m.String()[:3]] = 0
	}

	for dateKey, bucket := range grouped {
		month, monthOK := models.MonthOfDateKey(dateKey)

		for i := range bucket {
			order := &bucket[i]

			stats.TotalOrders++
			total := CalculateTotal(order)
			stats.TotalRevenue += total

			switch order.Status {
			case models.StatusNew:
				stats.OrdersByStatus.New++
				stats.PendingOrders++
				if monthOK {
					stats.MonthlyRevenue[month] += total
				}
			case models.StatusPaid:
				stats.OrdersByStatus.Paid++
				if monthOK {
					stats.MonthlyRevenue[month] += total
				}
			case models.StatusDone:
				stats.OrdersByStatus.Done++
				stats.CompletedOrders++
				if monthOK {
					stats.MonthlyRevenue[month] += total
				}
			}

			// Revenue splits evenly across the line items of the combo.
			if n := len(order.SelectedIDs); n > 0 {
				share := total / float64(n)
				for _, productID := range order.SelectedIDs {
					label := fmt.Sprintf("Product %s", productID)
					m := stats.PopularProducts[label]
					m.Count++
					m.Revenue += share
					stats.PopularProducts[label] = m
				}
			}

			if order.Location != "" {
				m := stats.Locations[order.Location]
				m.Count++
				m.Revenue += total
				stats.Locations[order.Location] = m
			}
		}
	}

	settled := stats.OrdersByStatus.Paid + stats.OrdersByStatus.Done
	if settled > 0 {
		avg := stats.TotalRevenue / float64(settled)
		if !math.IsNaN(avg) {
			stats.AverageOrderValue = avg
		}
	}

	return stats
}

// Ranked is one entry of a revenue-ordered breakdown.
type Ranked struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Revenue float64 `json:"revenue"`
}

// TopProducts returns the n highest-revenue products from a Stats value.
func TopProducts(stats Stats, n int) []Ranked {
	return topN(stats.PopularProducts, n)
}

// TopLocations returns the n highest-revenue delivery locations.
func TopLocations(stats Stats, n int) []Ranked {
	return topN(stats.Locations, n)
}

func topN(metrics map[string]Metric, n int) []Ranked {
	ranked := make([]Ranked, 0, len(metrics))
	for label, m := range metrics {
		ranked = append(ranked, Ranked{Label: label, Count: m.Count, Revenue: m.Revenue})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Revenue != ranked[j].Revenue {
			return ranked[i].Revenue > ranked[j].Revenue
		}
		return ranked[i].Label < ranked[j].Label
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
