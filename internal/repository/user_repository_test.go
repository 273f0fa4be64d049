package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/locavor/account-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.Profession{}, &models.User{}))
	return db
}

func TestCreateTranslatesIdentityCollision(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	kid := uuid.New()

	require.NoError(t, repo.Create(ctx, &models.User{KeycloakID: kid}))

	err := repo.Create(ctx, &models.User{KeycloakID: kid})
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestFindByKeycloakIDPreloadsProfessions(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()
	kid := uuid.New()

	p := models.Profession{Code: "maraicher", NameEn: "Market gardener", NameFr: "Maraîcher"}
	require.NoError(t, db.Create(&p).Error)

	siret := "12345678900011"
	u := &models.User{KeycloakID: kid, Siret: &siret, Professions: []models.Profession{p}}
	require.NoError(t, repo.Create(ctx, u))

	loaded, err := repo.FindByKeycloakID(ctx, kid)
	require.NoError(t, err)
	require.Len(t, loaded.Professions, 1)
	assert.Equal(t, "maraicher", loaded.Professions[0].Code)

	_, err = repo.FindByKeycloakID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSaveReplacesProfessionSet(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	a := models.Profession{Code: "maraicher", NameEn: "Market gardener", NameFr: "Maraîcher"}
	b := models.Profession{Code: "fromager", NameEn: "Cheesemaker", NameFr: "Fromager"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	u := &models.User{KeycloakID: uuid.New(), Professions: []models.Profession{a}}
	require.NoError(t, repo.Create(ctx, u))

	u.Professions = []models.Profession{b}
	require.NoError(t, repo.Save(ctx, u))

	loaded, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Professions, 1)
	assert.Equal(t, "fromager", loaded.Professions[0].Code)

	loaded.Professions = []models.Profession{}
	require.NoError(t, repo.Save(ctx, loaded))

	var joins int64
	require.NoError(t, db.Table("user_professions").Count(&joins).Error)
	assert.Zero(t, joins)
}

func TestDeleteClearsAssociations(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	p := models.Profession{Code: "vigneron", NameEn: "Winemaker", NameFr: "Vigneron"}
	require.NoError(t, db.Create(&p).Error)

	u := &models.User{KeycloakID: uuid.New(), Professions: []models.Profession{p}}
	require.NoError(t, repo.Create(ctx, u))

	require.NoError(t, repo.Delete(ctx, u))

	var users, joins, professions int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Table("user_professions").Count(&joins).Error)
	require.NoError(t, db.Model(&models.Profession{}).Count(&professions).Error)
	assert.Zero(t, users)
	assert.Zero(t, joins)
	// Catalog entries survive user deletion.
	assert.EqualValues(t, 1, professions)
}
