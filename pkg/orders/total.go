package orders

import (
	"math"

	"github.com/drezzup/storefront/pkg/models"
)

// BoxCost is the flat price of one packaging box add-on, in GHS.
const BoxCost = 20.0

// CalculateTotal returns the amount owed for an order: combo price plus the
// box add-ons. It never fails; a nil order or garbage numerics contribute 0.
func CalculateTotal(o *models.Order) float64 {
	if o == nil {
		return 0
	}

	combo := o.ComboPrice
	if math.IsNaN(combo) || math.IsInf(combo, 0) || combo < 0 {
		combo = 0
	}

	boxes := o.AddBox
	if boxes < 0 {
		boxes = 0
	}

	total := combo + float64(boxes)*BoxCost
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return 0
	}
	return total
}
