package catalog

import (
	"math/rand"
	"strings"

	"github.com/drezzup/storefront/pkg/models"
)

// BrandAll disables brand filtering.
const BrandAll = "All"

// Shuffle returns a Fisher-Yates shuffled copy of the catalog. The shuffle
// happens once per catalog session, keyed by seed, so every page request of
// a session walks the same order.
func Shuffle(products []models.Product, seed int64) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)

	r := rand.New(rand.NewSource(seed))
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// PageSize maps a viewport width to the number of cards per page: three
// grid rows at each layout breakpoint.
func PageSize(width int) int {
	switch {
	case width >= 1024:
		return 15
	case width >= 768:
		return 12
	case width >= 640:
		return 9
	default:
		return 6
	}
}

// Filter keeps products whose name matches the brand (or any brand when the
// filter is "All" or empty) and whose name or color contains the search
// term. Both matches are case-insensitive substring checks.
func Filter(products []models.Product, brand, search string) []models.Product {
	brandLower := strings.ToLower(brand)
	searchLower := strings.ToLower(search)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		name := strings.ToLower(p.Name)

		matchesBrand := brand == "" || brand == BrandAll || strings.Contains(name, brandLower)
		matchesSearch := strings.Contains(name, searchLower) ||
			strings.Contains(strings.ToLower(p.Color), searchLower)

		if matchesBrand && matchesSearch {
			out = append(out, p)
		}
	}
	return out
}

// View is one window of the filtered catalog.
type View struct {
	Products []models.Product `json:"products"`
	HasMore  bool             `json:"hasMore"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
	Total    int              `json:"total"`
}

// Paginate windows a filtered catalog to the first page*PageSize(width)
// entries. Pages below 1 are treated as 1; HasMore reports whether a further
// load-more would grow the window.
func Paginate(filtered []models.Product, width, page int) View {
	if page < 1 {
		page = 1
	}
	size := PageSize(width)

	visible := page * size
	if visible > len(filtered) {
		visible = len(filtered)
	}

	return View{
		Products: filtered[:visible],
		HasMore:  visible < len(filtered),
		Page:     page,
		PageSize: size,
		Total:    len(filtered),
	}
}

// Session holds one customer's catalog browsing state: the fixed shuffled
// order plus the active filter and page window.
type Session struct {
	shuffled []models.Product
	brand    string
	search   string
	width    int
	page     int
}

func NewSession(products []models.Product, seed int64, width int) *Session {
	return &Session{
		shuffled: Shuffle(products, seed),
		brand:    BrandAll,
		width:    width,
		page:     1,
	}
}

// SetFilter updates the brand filter and search term. Any change resets the
// window back to the first page.
func (s *Session) SetFilter(brand, search string) {
	if brand != s.brand || search != s.search {
		s.page = 1
	}
	s.brand = brand
	s.search = search
}

func (s *Session) SetWidth(width int) {
	s.width = width
}

// LoadMore grows the window by one page. There is no way back down; only a
// filter change shrinks the window.
func (s *Session) LoadMore() {
	s.page++
}

func (s *Session) View() View {
	return Paginate(Filter(s.shuffled, s.brand, s.search), s.width, s.page)
}
