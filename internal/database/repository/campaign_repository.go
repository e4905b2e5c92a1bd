package repository

import (
	"context"

	"github.com/okfde/froide-campaign-service/internal/models"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// Create creates a new campaign
func (r *CampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).Create(campaign).Error
}

// GetByID retrieves a campaign by ID
func (r *CampaignRepository) GetByID(ctx context.Context, id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.WithContext(ctx).First(&campaign, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// GetBySlug retrieves a campaign by slug
func (r *CampaignRepository) GetBySlug(ctx context.Context, slug string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&campaign).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// GetPublic retrieves all public campaigns
func (r *CampaignRepository) GetPublic(ctx context.Context) ([]*models.Campaign, error) {
	var campaigns []*models.Campaign
	err := r.db.WithContext(ctx).
		Where("public = ?", true).
		Order("id").
		Find(&campaigns).Error
	return campaigns, err
}
