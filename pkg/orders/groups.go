package orders

import (
	"sort"

	"github.com/drezzup/storefront/pkg/models"
)

// FilterSummary selects every order regardless of status.
const FilterSummary = "summary"

// FilterByStatus returns the orders matching a dashboard filter. "summary"
// keeps everything; "new", "paid" and "done" match exactly; any other filter
// value falls back to "new". An order carrying an unrecognized status
// matches only the summary view.
func FilterByStatus(all []models.Order, filter string) []models.Order {
	if filter == FilterSummary {
		out := make([]models.Order, len(all))
		copy(out, all)
		return out
	}

	switch filter {
	case models.StatusNew, models.StatusPaid, models.StatusDone:
	default:
		filter = models.StatusNew
	}

	out := make([]models.Order, 0, len(all))
	for _, o := range all {
		if o.Status == filter {
			out = append(out, o)
		}
	}
	return out
}

// SortByDateDesc orders a slice newest-first. The store's read order is not
// trusted (spec of the backing store leaves it undefined), so display paths
// sort explicitly.
func SortByDateDesc(list []models.Order) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Date.After(list[j].Date)
	})
}

// GroupByDate partitions orders into calendar-day buckets keyed by the
// shared day format. Relative order inside a bucket follows the input.
func GroupByDate(list []models.Order) map[string][]models.Order {
	grouped := make(map[string][]models.Order)
	for _, o := range list {
		key := o.DateKey()
		grouped[key] = append(grouped[key], o)
	}
	return grouped
}
