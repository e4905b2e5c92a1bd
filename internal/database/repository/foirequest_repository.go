package repository

import (
	"context"
	"errors"

	"github.com/okfde/froide-campaign-service/internal/models"

	"gorm.io/gorm"
)

type FoiRequestRepository struct {
	db *gorm.DB
}

func NewFoiRequestRepository(db *gorm.DB) *FoiRequestRepository {
	return &FoiRequestRepository{db: db}
}

// GetByID retrieves a request by ID
func (r *FoiRequestRepository) GetByID(ctx context.Context, id uint) (*models.FoiRequest, error) {
	var fr models.FoiRequest
	err := r.db.WithContext(ctx).First(&fr, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &fr, nil
}

// TagCampaign sets the platform campaign of a request to the campaign with
// the given slug. It reports false when no such campaign exists.
func (r *FoiRequestRepository) TagCampaign(ctx context.Context, requestID uint, campaignSlug string) (bool, error) {
	var rc models.RequestCampaign
	err := r.db.WithContext(ctx).Where("slug = ?", campaignSlug).First(&rc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	err = r.db.WithContext(ctx).
		Model(&models.FoiRequest{}).
		Where("id = ?", requestID).
		Update("campaign_id", rc.ID).Error
	if err != nil {
		return false, err
	}
	return true, nil
}
