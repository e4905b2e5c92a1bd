package repository

import (
	"context"

	"github.com/okfde/froide-campaign-service/internal/models"

	"gorm.io/gorm"
)

type PluginRepository struct {
	db *gorm.DB
}

func NewPluginRepository(db *gorm.DB) *PluginRepository {
	return &PluginRepository{db: db}
}

// GetCampaignPlugin retrieves a map/list plugin with its campaign
func (r *PluginRepository) GetCampaignPlugin(ctx context.Context, id uint) (*models.CampaignPlugin, error) {
	var plugin models.CampaignPlugin
	err := r.db.WithContext(ctx).
		Preload("Campaign").
		First(&plugin, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &plugin, nil
}

// GetRequestsPlugin retrieves a request list plugin with the campaigns of its page
func (r *PluginRepository) GetRequestsPlugin(ctx context.Context, id uint) (*models.CampaignRequestsPlugin, error) {
	var plugin models.CampaignRequestsPlugin
	err := r.db.WithContext(ctx).
		Preload("CampaignPage.Campaigns").
		First(&plugin, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &plugin, nil
}

// GetQuestionairePlugin retrieves a questionaire plugin with questionaire,
// campaign and ordered questions
func (r *PluginRepository) GetQuestionairePlugin(ctx context.Context, id uint) (*models.CampaignQuestionairePlugin, error) {
	var plugin models.CampaignQuestionairePlugin
	err := r.db.WithContext(ctx).
		Preload("Questionaire.Campaign").
		Preload("Questionaire.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position").Order("id")
		}).
		First(&plugin, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &plugin, nil
}

// HasSubscription reports whether the email is subscribed to the campaign
func (r *PluginRepository) HasSubscription(ctx context.Context, email string, campaignID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CampaignSubscription{}).
		Where("email = ? AND campaign_id = ?", email, campaignID).
		Count(&count).Error
	return count > 0, err
}
