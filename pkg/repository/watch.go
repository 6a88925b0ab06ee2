package repository

import (
	"context"

	"github.com/drezzup/storefront/pkg/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderEvent is one change pushed by the live order feed. Order is nil for
// deletes; Type carries the store's operation type (insert, update,
// replace, delete).
type OrderEvent struct {
	Type  string        `json:"type"`
	ID    string        `json:"id"`
	Order *models.Order `json:"order,omitempty"`
}

// WatchOrders opens a change stream over the orders collection and bridges
// it onto a channel. The channel closes when ctx is cancelled or the stream
// ends, so a consumer tears the subscription down by cancelling its context.
func (s *Store) WatchOrders(ctx context.Context) (<-chan OrderEvent, error) {
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)
	stream, err := s.orders().Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return nil, err
	}

	ch := make(chan OrderEvent)
	go func() {
		defer close(ch)
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			var ev struct {
				OperationType string `bson:"operationType"`
				FullDocument  bson.M `bson:"fullDocument"`
				DocumentKey   struct {
					ID primitive.ObjectID `bson:"_id"`
				} `bson:"documentKey"`
			}
			if err := stream.Decode(&ev); err != nil {
				continue
			}

			event := OrderEvent{
				Type: ev.OperationType,
				ID:   ev.DocumentKey.ID.Hex(),
			}
			if ev.FullDocument != nil {
				order := models.OrderFromDoc(ev.FullDocument)
				event.Order = &order
			}

			select {
			case ch <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}
