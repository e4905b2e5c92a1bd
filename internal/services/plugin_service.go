package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/okfde/froide-campaign-service/internal/database/repository"
	"github.com/okfde/froide-campaign-service/internal/models"
	"github.com/okfde/froide-campaign-service/internal/services/provider"

	"gorm.io/gorm"
)

var ErrPluginNotFound = errors.New("plugin not found")

// viewerPath is the document viewer used by the questionaire widget
const viewerPath = "filingcabinet/viewer/web/viewer.html"

// PluginService assembles the configuration of the embeddable widgets
type PluginService struct {
	pluginRepo *repository.PluginRepository
	iobjRepo   *repository.InformationObjectRepository
	providers  *provider.Factory
	locator    CityLocator
	staticURL  string
}

func NewPluginService(
	pluginRepo *repository.PluginRepository,
	iobjRepo *repository.InformationObjectRepository,
	providers *provider.Factory,
	locator CityLocator,
	staticURL string,
) *PluginService {
	return &PluginService{
		pluginRepo: pluginRepo,
		iobjRepo:   iobjRepo,
		providers:  providers,
		locator:    locator,
		staticURL:  staticURL,
	}
}

// MapConfig builds the map widget config for the calling client
func (s *PluginService) MapConfig(ctx context.Context, pluginID uint, clientIP string, user *models.User) (*models.MapPluginResponse, error) {
	plugin, err := s.getCampaignPlugin(ctx, pluginID)
	if err != nil {
		return nil, err
	}

	hasSubscription := false
	if user != nil && user.Email != "" {
		hasSubscription, err = s.pluginRepo.HasSubscription(ctx, user.Email, plugin.CampaignID)
		if err != nil {
			return nil, fmt.Errorf("failed to check subscription: %w", err)
		}
	}

	cfg := provider.ConfigFromCampaign(&plugin.Campaign)
	var lawType interface{}
	if cfg.LawType != "" {
		lawType = cfg.LawType
	}

	var city interface{} = models.JSON{}
	if s.locator != nil {
		if info := s.locator.City(clientIP); info != nil {
			city = info
		}
	}

	config := models.JSON{}
	for k, v := range plugin.Settings {
		config[k] = v
	}
	config["city"] = city
	config["campaignId"] = plugin.CampaignID
	config["lawType"] = lawType
	config["addLocationAllowed"] = cfg.CreateAllowed
	config["requestExtraText"] = plugin.RequestExtraText
	config["hasSubscription"] = hasSubscription

	return &models.MapPluginResponse{Config: config}, nil
}

// ListConfig builds the list widget config
func (s *PluginService) ListConfig(ctx context.Context, pluginID uint) (*models.ListPluginResponse, error) {
	plugin, err := s.getCampaignPlugin(ctx, pluginID)
	if err != nil {
		return nil, err
	}
	return &models.ListPluginResponse{
		Config: models.JSON{"campaignId": plugin.CampaignID},
	}, nil
}

// Requests lists the targets of the page's campaigns that have a primary request
func (s *PluginService) Requests(ctx context.Context, pluginID uint) (*models.RequestsPluginResponse, error) {
	plugin, err := s.pluginRepo.GetRequestsPlugin(ctx, pluginID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPluginNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plugin: %w", err)
	}

	resp := &models.RequestsPluginResponse{IObjs: []models.RequestsPluginEntry{}}
	campaignIDs := make([]uint, 0, len(plugin.CampaignPage.Campaigns))
	for _, c := range plugin.CampaignPage.Campaigns {
		campaignIDs = append(campaignIDs, c.ID)
	}
	if len(campaignIDs) == 0 {
		return resp, nil
	}

	iobjs, err := s.iobjRepo.WithPrimaryRequest(ctx, campaignIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list requested targets: %w", err)
	}
	for _, obj := range iobjs {
		resp.IObjs = append(resp.IObjs, models.RequestsPluginEntry{
			Ident:      obj.Ident,
			Title:      obj.Title,
			CampaignID: obj.CampaignID,
			FoiRequest: models.NewFoiRequestInfo(obj.FoiRequest),
		})
	}
	return resp, nil
}

// Questionnaire returns the targets with a successful request that still
// await a report, together with the questions to ask about them
func (s *PluginService) Questionnaire(ctx context.Context, pluginID uint) (*models.QuestionairePluginResponse, error) {
	plugin, err := s.pluginRepo.GetQuestionairePlugin(ctx, pluginID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPluginNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plugin: %w", err)
	}

	questionaire := plugin.Questionaire
	prov, err := s.providers.ForCampaign(&questionaire.Campaign)
	if err != nil {
		return nil, err
	}

	iobjs, err := s.iobjRepo.SuccessfulWithoutReport(ctx, questionaire.CampaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to list successful targets: %w", err)
	}
	items, err := prov.ItemsFor(ctx, iobjs)
	if err != nil {
		return nil, err
	}

	questions := make([]models.QuestionData, 0, len(questionaire.Questions))
	for i := range questionaire.Questions {
		q := &questionaire.Questions[i]
		questions = append(questions, models.QuestionData{
			Text:     q.Text,
			ID:       q.ID,
			Options:  q.OptionList(),
			Required: q.IsRequired,
			HelpText: q.HelpText,
		})
	}

	return &models.QuestionairePluginResponse{
		Questionaire:       questionaire.ID,
		InformationObjects: items,
		Questions:          questions,
		Config:             models.JSON{"viewerUrl": s.staticURL + viewerPath},
	}, nil
}

func (s *PluginService) getCampaignPlugin(ctx context.Context, pluginID uint) (*models.CampaignPlugin, error) {
	plugin, err := s.pluginRepo.GetCampaignPlugin(ctx, pluginID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPluginNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plugin: %w", err)
	}
	return plugin, nil
}
