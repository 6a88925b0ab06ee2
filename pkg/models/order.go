package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. An order moves new -> paid -> done; values outside this
// set can still arrive from direct store writes and must be tolerated.
const (
	StatusNew  = "new"
	StatusPaid = "paid"
	StatusDone = "done"
)

// dateKeyLayout is the day-bucket display format shared by order grouping
// and the monthly revenue breakdown.
const dateKeyLayout = "02 Jan 2006"

type Order struct {
	Key              primitive.ObjectID `bson:"_id,omitempty" json:"key"`
	FullName         string             `bson:"fullName" json:"fullName"`
	Contact          string             `bson:"contact" json:"contact"`
	Location         string             `bson:"location" json:"location"`
	Size             string             `bson:"size" json:"size"`
	GuarantorName    string             `bson:"guarantorName" json:"guarantorName"`
	GuarantorContact string             `bson:"guarantorContact" json:"guarantorContact"`
	AddBox           int                `bson:"addBox" json:"addBox"`
	SelectedIDs      []string           `bson:"selectedIds" json:"selectedIds"`
	ComboPrice       float64            `bson:"comboPrice" json:"comboPrice"`
	Status           string             `bson:"status" json:"status"`
	Date             time.Time          `bson:"date" json:"date"`

	// Total is the figure stored at creation time. Readers recompute from
	// comboPrice and addBox; the stored value is display-only and may lag
	// behind later data corrections.
	Total float64 `bson:"total" json:"total"`
}

// DateKey returns the day bucket this order belongs to.
func (o Order) DateKey() string {
	return o.Date.Format(dateKeyLayout)
}

// DateKey formats a timestamp as a day-bucket key.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// MonthOfDateKey derives the month label ("Jan".."Dec") from a day-bucket
// key. ok is false when the key does not parse.
func MonthOfDateKey(key string) (string, bool) {
	t, err := time.Parse(dateKeyLayout, key)
	if err != nil {
		return "", false
	}
	return t.Format("Jan"), true
}

// OrderFromDoc normalizes a raw store document into an Order. Numeric fields
// coerce to 0 when missing or mis-typed, a missing status defaults to new,
// and an unusable date defaults to now. A bad field never fails the record.
func OrderFromDoc(doc bson.M) Order {
	o := Order{
		FullName:         coerceString(doc["fullName"]),
		Contact:          coerceString(doc["contact"]),
		Location:         coerceString(doc["location"]),
		Size:             coerceString(doc["size"]),
		GuarantorName:    coerceString(doc["guarantorName"]),
		GuarantorContact: coerceString(doc["guarantorContact"]),
		AddBox:           int(coerceInt(doc["addBox"])),
		SelectedIDs:      coerceStringSlice(doc["selectedIds"]),
		ComboPrice:       coerceFloat(doc["comboPrice"]),
		Status:           coerceString(doc["status"]),
		Date:             coerceTime(doc["date"]),
		Total:            coerceFloat(doc["total"]),
	}
	if oid, ok := doc["_id"].(primitive.ObjectID); ok {
		o.Key = oid
	}
	if o.Status == "" {
		o.Status = StatusNew
	}
	return o
}
