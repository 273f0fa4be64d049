package repository

import (
	"context"

	"github.com/locavor/account-service/internal/models"
	"gorm.io/gorm"
)

type ProfessionRepository struct {
	db *gorm.DB
}

func NewProfessionRepository(db *gorm.DB) *ProfessionRepository {
	return &ProfessionRepository{db: db}
}

func (r *ProfessionRepository) FindAll(ctx context.Context) ([]models.Profession, error) {
	var professions []models.Profession
	err := r.db.WithContext(ctx).Order("id").Find(&professions).Error
	return professions, err
}

func (r *ProfessionRepository) FindByID(ctx context.Context, id int64) (*models.Profession, error) {
	var p models.Profession
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfessionRepository) FindByIDs(ctx context.Context, ids []int64) ([]models.Profession, error) {
	var professions []models.Profession
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&professions).Error
	return professions, err
}
