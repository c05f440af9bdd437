package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/retailcore/inventory-system/internal/core/domain"
)

const assignmentCollection = "store_assignments"

// AssignmentRepository persists the user-store junction. The collection
// carries a unique compound index on (user_id, store_id); Upsert leans on it
// so repeated assignment of the same pair stays a single document.
type AssignmentRepository struct {
	coll *mongo.Collection
}

func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{coll: db.Collection(assignmentCollection)}
}

type assignmentDoc struct {
	UserID  string `bson:"user_id"`
	StoreID string `bson:"store_id"`
}

func (r *AssignmentRepository) Upsert(ctx context.Context, userID, storeID string) error {
	filter := bson.M{"user_id": userID, "store_id": storeID}
	update := bson.M{"$setOnInsert": assignmentDoc{UserID: userID, StoreID: storeID}}

	if _, err := r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// A concurrent upsert of the same pair won the race; the pair
			// exists, which is all this call promises.
			return nil
		}
		return fmt.Errorf("upsert assignment: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, userID, storeID string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"user_id": userID, "store_id": storeID}); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) DeleteForUser(ctx context.Context, userID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete assignments for user: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) ListAll(ctx context.Context) ([]domain.StoreAssignment, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer cursor.Close(ctx)

	var out []domain.StoreAssignment
	for cursor.Next(ctx) {
		var doc assignmentDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode assignment: %w", err)
		}
		out = append(out, domain.StoreAssignment{UserID: doc.UserID, StoreID: doc.StoreID})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignments: %w", err)
	}
	return out, nil
}
