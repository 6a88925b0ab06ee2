package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a single catalog entry. Key is the store-assigned document id;
// ID is the sequential display number shown to customers.
type Product struct {
	Key         primitive.ObjectID `bson:"_id,omitempty" json:"key"`
	ID          int64              `bson:"id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Color       string             `bson:"color" json:"color"`
	Image       string             `bson:"image" json:"image"`
	SinglePrice float64            `bson:"singlePrice" json:"singlePrice"`
	ComboPrice  float64            `bson:"comboPrice" json:"comboPrice"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// ProductFromDoc normalizes a raw store document into a Product. Missing or
// mis-typed fields coerce to zero values; the catalog must render whatever
// the store holds rather than reject it.
func ProductFromDoc(doc bson.M) Product {
	p := Product{
		ID:          coerceInt(doc["id"]),
		Name:        coerceString(doc["name"]),
		Color:       coerceString(doc["color"]),
		Image:       coerceString(doc["image"]),
		SinglePrice: coerceFloat(doc["singlePrice"]),
		ComboPrice:  coerceFloat(doc["comboPrice"]),
		CreatedAt:   coerceTime(doc["createdAt"]),
	}
	if oid, ok := doc["_id"].(primitive.ObjectID); ok {
		p.Key = oid
	}
	return p
}
