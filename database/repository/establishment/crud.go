package establishmentRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"booklyo/models"
)

const queryTimeout = 5 * time.Second

func (r *mongoEstablishmentRepo) Create(ctx context.Context, est *models.Establishment) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if est.ID == "" {
		est.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	est.CreatedAt = now
	est.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, est); err != nil {
		return fmt.Errorf("insert establishment: %w", err)
	}
	return nil
}

func (r *mongoEstablishmentRepo) GetByID(ctx context.Context, id string) (*models.Establishment, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoEstablishmentRepo) GetByOwnerUID(ctx context.Context, uid string) (*models.Establishment, error) {
	return r.findOne(ctx, bson.M{"ownerUid": uid})
}

func (r *mongoEstablishmentRepo) findOne(ctx context.Context, filter bson.M) (*models.Establishment, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var est models.Establishment
	err := r.coll.FindOne(ctx, filter).Decode(&est)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find establishment: %w", err)
	}
	return &est, nil
}

func (r *mongoEstablishmentRepo) Update(ctx context.Context, est *models.Establishment) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	est.UpdatedAt = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": est.ID}, bson.M{"$set": bson.M{
		"name":      est.Name,
		"email":     est.Email,
		"phone":     est.Phone,
		"address":   est.Address,
		"timezone":  est.Timezone,
		"updatedAt": est.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update establishment %s: %w", est.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoEstablishmentRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("delete establishment %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
