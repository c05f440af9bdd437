package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/retailcore/inventory-system/internal/core/domain"
)

const roleCollection = "roles"

// RoleRepository resolves role documents. Stored permission maps may contain
// stale capability names from older deployments; those never reach the
// domain model, so a leftover key cannot grant undeclared access.
type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(roleCollection)}
}

type roleDoc struct {
	ID            string          `bson:"_id"`
	Name          string          `bson:"name"`
	Permissions   map[string]bool `bson:"permissions"`
	IsSystemAdmin bool            `bson:"is_system_admin"`
}

func (r *RoleRepository) FindByID(ctx context.Context, id string) (*domain.Role, error) {
	var doc roleDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}

	perms := make(domain.PermissionSet, len(doc.Permissions))
	for name, granted := range doc.Permissions {
		c := domain.Capability(name)
		if !c.Known() {
			continue
		}
		perms[c] = granted
	}

	return &domain.Role{
		ID:            doc.ID,
		Name:          doc.Name,
		Permissions:   perms,
		IsSystemAdmin: doc.IsSystemAdmin,
	}, nil
}
