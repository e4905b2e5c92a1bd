package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/okfde/froide-campaign-service/internal/database/repository"
	"github.com/okfde/froide-campaign-service/internal/models"
	"github.com/okfde/froide-campaign-service/internal/services/provider"
	"github.com/okfde/froide-campaign-service/internal/utils"

	"gorm.io/gorm"
)

// CampaignPageSize is the number of targets listed per campaign page
const CampaignPageSize = 100

var ErrCampaignNotFound = errors.New("campaign not found")

// statusChoices are the options of the campaign page status filter
var statusChoices = []models.StatusChoice{
	{Value: "", Label: "All"},
	{Value: "0", Label: "No request yet"},
	{Value: "1", Label: "Pending request"},
	{Value: "2", Label: "Resolved request"},
}

type CampaignService struct {
	campaignRepo *repository.CampaignRepository
	iobjRepo     *repository.InformationObjectRepository
	providers    *provider.Factory
	basePath     string
}

func NewCampaignService(
	campaignRepo *repository.CampaignRepository,
	iobjRepo *repository.InformationObjectRepository,
	providers *provider.Factory,
	basePath string,
) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		iobjRepo:     iobjRepo,
		providers:    providers,
		basePath:     basePath,
	}
}

// GetCampaign loads a campaign by id
func (s *CampaignService) GetCampaign(ctx context.Context, id uint) (*models.Campaign, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return campaign, nil
}

// ProviderFor returns the provider of the campaign with the given id
func (s *CampaignService) ProviderFor(ctx context.Context, id uint) (*provider.Provider, error) {
	campaign, err := s.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.providers.ForCampaign(campaign)
}

// Index lists the public campaigns
func (s *CampaignService) Index(ctx context.Context) (*models.CampaignIndexResponse, error) {
	campaigns, err := s.campaignRepo.GetPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	resp := &models.CampaignIndexResponse{Campaigns: make([]models.CampaignResponse, 0, len(campaigns))}
	for _, c := range campaigns {
		resp.Campaigns = append(resp.Campaigns, s.toResponse(c))
	}
	return resp, nil
}

// Page assembles the campaign page: counters, progress and one filtered
// page of targets. Non public campaigns are only shown to staff.
func (s *CampaignService) Page(ctx context.Context, slug string, params url.Values, isStaff bool) (*models.CampaignPageResponse, error) {
	campaign, err := s.campaignRepo.GetBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCampaignNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	if !campaign.Public && !isStaff {
		return nil, ErrCampaignNotFound
	}

	counts, err := s.iobjRepo.Counts(ctx, campaign.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count targets: %w", err)
	}

	filter := pageFilter(params)
	filtered, err := s.iobjRepo.CountPage(ctx, campaign.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count filtered targets: %w", err)
	}

	page := utils.ResolvePage(params.Get("page"), filtered, CampaignPageSize)
	iobjs, err := s.iobjRepo.ListPage(ctx, campaign.ID, filter, utils.CalculateOffset(page, CampaignPageSize), CampaignPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}

	entries := make([]models.InformationObjectEntry, 0, len(iobjs))
	for _, obj := range iobjs {
		entries = append(entries, models.InformationObjectEntry{
			ID:             obj.ID,
			Ident:          obj.Ident,
			Title:          obj.Title,
			Subtitle:       obj.Subtitle,
			Address:        obj.Address,
			RequestURL:     provider.RedirectPath(s.basePath, campaign.ID, obj.Ident),
			PublicBodyName: obj.PublicBodyName(),
			FoiRequest:     models.NewFoiRequestInfo(obj.FoiRequest),
		})
	}

	info := utils.CalculatePaginationInfo(filtered, page, CampaignPageSize)
	progress := CampaignProgress(*counts)

	noPage := url.Values{}
	for k, v := range params {
		if k != "page" {
			noPage[k] = v
		}
	}

	return &models.CampaignPageResponse{
		Campaign:   s.toResponse(campaign),
		ObjectList: entries,
		Pagination: models.PageInfo{
			Number:      info.Page,
			NumPages:    info.TotalPages,
			Count:       info.Total,
			PerPage:     info.PageSize,
			HasNext:     info.HasNext,
			HasPrevious: info.HasPrevious,
		},
		Getvars:         "&" + noPage.Encode(),
		GetvarsComplete: params.Encode(),
		TotalCount:      progress.Total,
		DoneCount:       progress.Done,
		PendingCount:    progress.Pending,
		ProgressPending: progress.ProgressPending,
		ProgressDone:    progress.ProgressDone,
		StatusChoices:   statusChoices,
	}, nil
}

// Progress holds the counters shown on a campaign page
type Progress struct {
	Total           int64
	Pending         int64
	Done            int64
	ProgressPending string
	ProgressDone    string
}

// CampaignProgress derives the page counters. Requested targets whose
// request is resolved count as done and not as pending.
func CampaignProgress(counts repository.CampaignCounts) Progress {
	pending := counts.Requested - counts.Done
	return Progress{
		Total:           counts.Total,
		Pending:         pending,
		Done:            counts.Done,
		ProgressPending: utils.Percentage(pending, counts.Total),
		ProgressDone:    utils.Percentage(counts.Done, counts.Total),
	}
}

// pageFilter reads the campaign page filter from the query string.
// Unknown status values are ignored.
func pageFilter(params url.Values) repository.PageFilter {
	f := repository.PageFilter{
		Query:  strings.TrimSpace(params.Get("q")),
		Random: params.Get("random") != "",
	}
	switch status := params.Get("status"); status {
	case "0", "1", "2":
		f.Status = status
	}
	return f
}

func (s *CampaignService) toResponse(c *models.Campaign) models.CampaignResponse {
	return models.CampaignResponse{
		ID:          c.ID,
		Title:       c.Title,
		Slug:        c.Slug,
		Description: c.Description,
		URL:         fmt.Sprintf("%s/campaigns/%s/", s.basePath, c.Slug),
	}
}
