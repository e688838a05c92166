package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"booklyo/models"
)

// entityFilter scopes a query to one booking pool. An empty staffID is
// the owner's pool: documents written before staff support carry no
// staffId field at all, so both shapes must match.
func entityFilter(establishmentID, staffID string) bson.M {
	filter := bson.M{"establishmentId": establishmentID}
	if staffID == "" {
		filter["$or"] = bson.A{
			bson.M{"staffId": bson.M{"$exists": false}},
			bson.M{"staffId": ""},
		}
	} else {
		filter["staffId"] = staffID
	}
	return filter
}

func (r *mongoBookingRepo) ConfirmedStartsForDay(ctx context.Context, establishmentID, staffID string, dayStart, dayEnd time.Time) ([]time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := entityFilter(establishmentID, staffID)
	filter["status"] = models.BookingStatusConfirmed
	filter["date"] = bson.M{"$gte": dayStart, "$lt": dayEnd}

	opts := options.Find().
		SetProjection(bson.M{"date": 1, "_id": 0}).
		SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find confirmed bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Date time.Time `bson:"date"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode booking starts: %w", err)
	}

	starts := make([]time.Time, len(docs))
	for i, d := range docs {
		starts[i] = d.Date
	}
	return starts, nil
}

func (r *mongoBookingRepo) ListForEntity(ctx context.Context, establishmentID, staffID string, from, to time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := entityFilter(establishmentID, staffID)
	filter["date"] = bson.M{"$gte": from, "$lt": to}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}
