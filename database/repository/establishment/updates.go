package establishmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"booklyo/models"
)

func (r *mongoEstablishmentRepo) UpdateSchedule(ctx context.Context, id string, ws models.WeeklySchedule) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{
		"schedule":  ws,
		"updatedAt": time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("update schedule for %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoEstablishmentRepo) UpdateStaffSchedule(ctx context.Context, id, staffID string, ws models.WeeklySchedule) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "staff.id": staffID},
		bson.M{"$set": bson.M{
			"staff.$.schedule": ws,
			"updatedAt":        time.Now().UTC(),
		}})
	if err != nil {
		return fmt.Errorf("update staff schedule for %s/%s: %w", id, staffID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoEstablishmentRepo) UpsertService(ctx context.Context, id string, svc models.Service) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	// Replace in place when the service already exists.
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "services.id": svc.ID},
		bson.M{"$set": bson.M{"services.$": svc, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("update service %s for %s: %w", svc.ID, id, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	res, err = r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$push": bson.M{"services": svc}, "$set": bson.M{"updatedAt": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("append service %s for %s: %w", svc.ID, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoEstablishmentRepo) RemoveService(ctx context.Context, id, serviceID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$pull": bson.M{"services": bson.M{"id": serviceID}}, "$set": bson.M{"updatedAt": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("remove service %s for %s: %w", serviceID, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoEstablishmentRepo) UpsertStaff(ctx context.Context, id string, member models.StaffMember) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "staff.id": member.ID},
		bson.M{"$set": bson.M{"staff.$": member, "updatedAt": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("update staff %s for %s: %w", member.ID, id, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	res, err = r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$push": bson.M{"staff": member}, "$set": bson.M{"updatedAt": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("append staff %s for %s: %w", member.ID, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *mongoEstablishmentRepo) RemoveStaff(ctx context.Context, id, staffID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$pull": bson.M{"staff": bson.M{"id": staffID}}, "$set": bson.M{"updatedAt": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("remove staff %s for %s: %w", staffID, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
