package services

import (
	"context"
	"fmt"

	"github.com/okfde/froide-campaign-service/internal/database/repository"
	"github.com/okfde/froide-campaign-service/internal/models"
	"github.com/okfde/froide-campaign-service/internal/services/provider"
)

const (
	RandomCount = 3
	SearchCount = 10
)

// InformationObjectService serves the target listing API
type InformationObjectService struct {
	iobjRepo *repository.InformationObjectRepository
	siteURL  string
	basePath string
}

func NewInformationObjectService(iobjRepo *repository.InformationObjectRepository, siteURL, basePath string) *InformationObjectService {
	return &InformationObjectService{
		iobjRepo: iobjRepo,
		siteURL:  siteURL,
		basePath: basePath,
	}
}

// Random returns a few random unrequested targets of the campaigns
func (s *InformationObjectService) Random(ctx context.Context, campaignIDs []uint) ([]models.InformationObjectItem, error) {
	iobjs, err := s.iobjRepo.Random(ctx, campaignIDs, RandomCount)
	if err != nil {
		return nil, fmt.Errorf("failed to get random targets: %w", err)
	}
	return s.toItems(iobjs), nil
}

// Search runs a full text search over the targets of the campaigns. Already
// requested targets are only included on request. An empty query matches nothing.
func (s *InformationObjectService) Search(ctx context.Context, campaignIDs []uint, query string, includeRequested bool) ([]models.InformationObjectItem, error) {
	if query == "" {
		return []models.InformationObjectItem{}, nil
	}

	iobjs, err := s.iobjRepo.SearchText(ctx, campaignIDs, query, includeRequested, SearchCount)
	if err != nil {
		return nil, fmt.Errorf("failed to search targets: %w", err)
	}
	return s.toItems(iobjs), nil
}

func (s *InformationObjectService) toItems(iobjs []*models.InformationObject) []models.InformationObjectItem {
	items := make([]models.InformationObjectItem, 0, len(iobjs))
	for _, obj := range iobjs {
		items = append(items, s.ToItem(obj))
	}
	return items
}

// ToItem projects a target with its campaign loaded into the listing shape
func (s *InformationObjectService) ToItem(obj *models.InformationObject) models.InformationObjectItem {
	return models.InformationObjectItem{
		Title:          obj.Title,
		RequestURL:     s.siteURL + provider.RedirectPath(s.basePath, obj.CampaignID, obj.Ident),
		Description:    obj.DescriptionOr(obj.Campaign.Description),
		PublicBodyName: obj.PublicBodyName(),
	}
}
