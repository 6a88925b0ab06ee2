package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalizeTitle(t *testing.T) {
	assert.Equal(t, "Nike Air", NormalizeTitle("  nike   air "))
	assert.Equal(t, "Triple Black", NormalizeTitle("triple black"))
	assert.Equal(t, "", NormalizeTitle("   "))
	assert.Equal(t, "Jordan 1", NormalizeTitle("jordan 1"))
}

func TestOrderFromDocCoercesStringNumerics(t *testing.T) {
	o := OrderFromDoc(bson.M{
		"fullName":    "Ama Mensah",
		"comboPrice":  "150.5",
		"addBox":      "2",
		"selectedIds": primitive.A{"p1", "p2", int32(3)},
	})

	assert.Equal(t, "Ama Mensah", o.FullName)
	assert.Equal(t, 150.5, o.ComboPrice)
	assert.Equal(t, 2, o.AddBox)
	assert.Equal(t, []string{"p1", "p2", "3"}, o.SelectedIDs)
}

func TestOrderFromDocDefaults(t *testing.T) {
	before := time.Now()
	o := OrderFromDoc(bson.M{
		"comboPrice": "not a number",
		"addBox":     bson.M{"nested": true},
		"date":       "garbage",
	})

	assert.Equal(t, 0.0, o.ComboPrice)
	assert.Equal(t, 0, o.AddBox)
	assert.Equal(t, StatusNew, o.Status)
	assert.False(t, o.Date.Before(before))
}

func TestOrderFromDocKeepsStatusAndDate(t *testing.T) {
	date := time.Date(2025, time.May, 4, 10, 0, 0, 0, time.Local)
	o := OrderFromDoc(bson.M{
		"status": "paid",
		"date":   primitive.NewDateTimeFromTime(date),
	})

	assert.Equal(t, StatusPaid, o.Status)
	assert.True(t, o.Date.Equal(date))
	assert.Equal(t, "04 May 2025", o.DateKey())
}

func TestProductFromDocCoercion(t *testing.T) {
	p := ProductFromDoc(bson.M{
		"id":          float64(7),
		"name":        "Nike Air",
		"color":       "White",
		"singlePrice": int32(450),
		"comboPrice":  "400",
	})

	assert.Equal(t, int64(7), p.ID)
	assert.Equal(t, 450.0, p.SinglePrice)
	assert.Equal(t, 400.0, p.ComboPrice)
}

func TestMonthOfDateKey(t *testing.T) {
	month, ok := MonthOfDateKey("15 Mar 2025")
	assert.True(t, ok)
	assert.Equal(t, "Mar", month)

	_, ok = MonthOfDateKey("Invalid Date")
	assert.False(t, ok)
}
