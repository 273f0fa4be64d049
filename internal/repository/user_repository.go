package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/locavor/account-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByKeycloakID loads a user with its profession set eagerly populated.
// The set is always needed when a full profile is projected, so there is no
// lazy variant.
func (r *UserRepository) FindByKeycloakID(ctx context.Context, keycloakID uuid.UUID) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Preload("Professions").
		Where("keycloak_id = ?", keycloakID).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Preload("Professions").
		First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new row. A concurrent insert for the same keycloak_id
// surfaces as gorm.ErrDuplicatedKey (TranslateError is on).
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

// Save persists scalar fields and replaces the profession set with whatever
// the caller left on u.Professions. Callers that did not touch the set pass
// the loaded set back, which makes the replace a no-op.
func (r *UserRepository) Save(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Professions").Save(u).Error; err != nil {
			return err
		}
		return tx.Model(u).Association("Professions").Replace(u.Professions)
	})
}

// Delete hard-deletes the row together with its profession associations.
func (r *UserRepository) Delete(ctx context.Context, u *models.User) error {
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(u).Error
}
