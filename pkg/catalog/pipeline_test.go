package catalog

import (
	"fmt"
	"testing"

	"github.com/drezzup/storefront/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCatalog(n int) []models.Product {
	products := make([]models.Product, n)
	for i := range products {
		products[i] = models.Product{
			ID:    int64(i + 1),
			Name:  fmt.Sprintf("Sneaker %d", i+1),
			Color: "White",
		}
	}
	return products
}

func TestPageSize(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{1920, 15},
		{1280, 15},
		{1024, 15},
		{1023, 12},
		{768, 12},
		{700, 9},
		{640, 9},
		{639, 6},
		{320, 6},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PageSize(tt.width), "width %d", tt.width)
	}
}

func TestFilter(t *testing.T) {
	products := []models.Product{
		{Name: "Nike Air", Color: "Triple Black"},
		{Name: "Adidas X", Color: "Cloud White"},
	}

	assert.Len(t, Filter(products, BrandAll, ""), 2)
	assert.Len(t, Filter(products, "", ""), 2)

	nike := Filter(products, "nike", "")
	require.Len(t, nike, 1)
	assert.Equal(t, "Nike Air", nike[0].Name)

	// Search matches name or color, case-insensitively.
	white := Filter(products, BrandAll, "WHITE")
	require.Len(t, white, 1)
	assert.Equal(t, "Adidas X", white[0].Name)

	// Both predicates must hold.
	assert.Empty(t, Filter(products, "nike", "white"))
	assert.Empty(t, Filter(products, BrandAll, "puma"))
}

func TestPaginate(t *testing.T) {
	products := []models.Product{
		{Name: "Nike Air"},
		{Name: "Adidas X"},
	}

	view := Paginate(products, 1280, 1)
	assert.Len(t, view.Products, 2)
	assert.False(t, view.HasMore)
	assert.Equal(t, 15, view.PageSize)
	assert.Equal(t, 2, view.Total)

	// A page below 1 behaves as page 1.
	assert.Equal(t, Paginate(products, 1280, 1), Paginate(products, 1280, 0))
}

func TestPaginateWindowsGrow(t *testing.T) {
	products := makeCatalog(20)

	first := Paginate(products, 1280, 1)
	assert.Len(t, first.Products, 15)
	assert.True(t, first.HasMore)

	second := Paginate(products, 1280, 2)
	assert.Len(t, second.Products, 20)
	assert.False(t, second.HasMore)

	// Narrow viewport, smaller windows.
	narrow := Paginate(products, 320, 2)
	assert.Len(t, narrow.Products, 12)
	assert.True(t, narrow.HasMore)
}

func TestShuffleIsStablePerSeed(t *testing.T) {
	products := makeCatalog(30)

	a := Shuffle(products, 42)
	b := Shuffle(products, 42)
	assert.Equal(t, a, b)

	// Still the same catalog, only reordered.
	seen := make(map[int64]bool, len(a))
	for _, p := range a {
		seen[p.ID] = true
	}
	assert.Len(t, seen, len(products))

	// The input slice is left alone.
	assert.Equal(t, makeCatalog(30), products)
}

func TestSessionFilterChangeResetsPage(t *testing.T) {
	session := NewSession(makeCatalog(40), 7, 1280)

	session.LoadMore()
	session.LoadMore()
	view := session.View()
	assert.Equal(t, 3, view.Page)
	assert.Len(t, view.Products, 40)
	assert.False(t, view.HasMore)

	// Changing the brand filter drops back to one page.
	session.SetFilter("sneaker", "")
	view = session.View()
	assert.Equal(t, 1, view.Page)
	assert.LessOrEqual(t, len(view.Products), view.PageSize)
	assert.True(t, view.HasMore)

	// Re-applying the same filter keeps the window.
	session.LoadMore()
	session.SetFilter("sneaker", "")
	assert.Equal(t, 2, session.View().Page)
}

func TestSessionSearchWithNoMatches(t *testing.T) {
	session := NewSession(makeCatalog(10), 1, 1280)
	session.SetFilter(BrandAll, "no such sneaker")

	view := session.View()
	assert.Empty(t, view.Products)
	assert.False(t, view.HasMore)
	assert.Zero(t, view.Total)
}
