package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/retailcore/inventory-system/internal/core/domain"
)

const storeCollection = "stores"

type StoreRepository struct {
	coll *mongo.Collection
}

func NewStoreRepository(db *mongo.Database) *StoreRepository {
	return &StoreRepository{coll: db.Collection(storeCollection)}
}

type storeDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Location     string             `bson:"location,omitempty"`
	ContactEmail string             `bson:"contact_email,omitempty"`
	ContactPhone string             `bson:"contact_phone,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *StoreRepository) FindByID(ctx context.Context, id string) (*domain.Store, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrStoreNotFound
	}

	var doc storeDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, fmt.Errorf("find store: %w", err)
	}

	return &domain.Store{
		ID:           doc.ID.Hex(),
		Name:         doc.Name,
		Location:     doc.Location,
		ContactEmail: doc.ContactEmail,
		ContactPhone: doc.ContactPhone,
		CreatedAt:    unixToTime(doc.CreatedAt),
		UpdatedAt:    unixToTime(doc.UpdatedAt),
	}, nil
}
