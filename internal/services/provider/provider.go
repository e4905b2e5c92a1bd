// Package provider turns a campaign and filter parameters into annotated
// target records and builds the request links of single targets.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/okfde/froide-campaign-service/internal/database/repository"
	"github.com/okfde/froide-campaign-service/internal/metrics"
	"github.com/okfde/froide-campaign-service/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// DefaultLimit is the number of search results returned without explicit limit
const DefaultLimit = 50

// MaxLimit bounds the number of search results a caller can ask for
const MaxLimit = 500

// ErrNotFound is returned for an unknown target ident
var ErrNotFound = errors.New("information object not found")

// TargetStore is the storage the provider reads targets from
type TargetStore interface {
	Search(ctx context.Context, q repository.TargetQuery) ([]*models.InformationObject, error)
	GetByIdent(ctx context.Context, campaignID uint, ident string) (*models.InformationObject, error)
	RequestLinks(ctx context.Context, iobjIDs []uint) ([]repository.TargetRequestLink, error)
	LinkRequest(ctx context.Context, iobjID, requestID uint) (bool, error)
}

// RequestTagger tags requests with the platform campaign
type RequestTagger interface {
	TagCampaign(ctx context.Context, requestID uint, campaignSlug string) (bool, error)
}

// URLConfig holds the URLs request links are built from
type URLConfig struct {
	BasePath       string
	MakeRequestURL string
}

// Filters are the search parameters of a provider search
type Filters struct {
	Query     string
	Requested *bool
	Lat       *float64
	Lng       *float64
	Radius    *int
	Zoom      *int
	Limit     int
}

// Provider serves the targets of one campaign
type Provider struct {
	campaign *models.Campaign
	config   Config
	store    TargetStore
	tagger   RequestTagger
	urls     URLConfig

	subject *template.Template
	body    *template.Template
}

// New creates the provider of a campaign, parsing its request templates
func New(campaign *models.Campaign, store TargetStore, tagger RequestTagger, urls URLConfig) (*Provider, error) {
	subject, err := template.New("subject").Parse(campaign.SubjectTemplate)
	if err != nil {
		return nil, fmt.Errorf("invalid subject template of campaign %d: %w", campaign.ID, err)
	}
	body, err := template.New("body").Parse(campaign.Template)
	if err != nil {
		return nil, fmt.Errorf("invalid body template of campaign %d: %w", campaign.ID, err)
	}

	return &Provider{
		campaign: campaign,
		config:   ConfigFromCampaign(campaign),
		store:    store,
		tagger:   tagger,
		urls:     urls,
		subject:  subject,
		body:     body,
	}, nil
}

// Campaign returns the campaign served by the provider
func (p *Provider) Campaign() *models.Campaign {
	return p.campaign
}

// Config returns the resolved provider configuration
func (p *Provider) Config() Config {
	return p.config
}

// Search returns the targets matching the filters, annotated with their requests
func (p *Provider) Search(ctx context.Context, f Filters) ([]models.ProviderItem, error) {
	q := p.buildQuery(f)

	iobjs, err := p.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search targets: %w", err)
	}

	mapping, err := p.requestMapping(ctx, iobjs)
	if err != nil {
		return nil, err
	}

	items := make([]models.ProviderItem, 0, len(iobjs))
	for _, obj := range iobjs {
		items = append(items, p.ItemData(obj, mapping, false))
	}
	return items, nil
}

func (p *Provider) buildQuery(f Filters) repository.TargetQuery {
	q := repository.TargetQuery{
		CampaignID: p.campaign.ID,
		Query:      strings.TrimSpace(f.Query),
		Requested:  f.Requested,
		Limit:      p.limit(f.Limit),
	}

	if f.Lat != nil && f.Lng != nil {
		radius := DefaultRadius
		if f.Radius != nil && *f.Radius > 0 {
			radius = *f.Radius
		}
		center := repository.Point{Lat: *f.Lat, Lng: *f.Lng}
		box := BoundingBox(center, EffectiveRadius(radius))
		q.Box = &box
		q.Center = &center

		if q.Query == "" && f.Zoom != nil && *f.Zoom < DetailZoomLevel {
			q.Order = repository.OrderDistance
		} else {
			q.Order = repository.OrderRandom
		}
	} else if q.Query != "" {
		q.Order = repository.OrderRank
	}
	return q
}

func (p *Provider) limit(requested int) int {
	if requested > 0 {
		return min(requested, MaxLimit)
	}
	if p.config.Limit > 0 {
		return p.config.Limit
	}
	return DefaultLimit
}

// Detail returns the full record of one target
func (p *Provider) Detail(ctx context.Context, ident string) (*models.ProviderItem, error) {
	obj, err := p.getObject(ctx, ident)
	if err != nil {
		return nil, err
	}

	mapping, err := p.requestMapping(ctx, []*models.InformationObject{obj})
	if err != nil {
		return nil, err
	}

	item := p.ItemData(obj, mapping, true)
	return &item, nil
}

// requestMapping loads the request links of the given targets
func (p *Provider) requestMapping(ctx context.Context, iobjs []*models.InformationObject) (map[uint][]models.RequestLink, error) {
	ids := make([]uint, 0, len(iobjs))
	for _, obj := range iobjs {
		ids = append(ids, obj.ID)
	}
	links, err := p.store.RequestLinks(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load request links: %w", err)
	}
	return bucketLinks(links), nil
}

// ItemsFor builds provider records for targets loaded elsewhere
func (p *Provider) ItemsFor(ctx context.Context, iobjs []*models.InformationObject) ([]models.ProviderItem, error) {
	mapping, err := p.requestMapping(ctx, iobjs)
	if err != nil {
		return nil, err
	}
	items := make([]models.ProviderItem, 0, len(iobjs))
	for _, obj := range iobjs {
		items = append(items, p.ItemData(obj, mapping, false))
	}
	return items, nil
}

// ItemData projects a target into the provider record shape. Detail records
// also carry the target context.
func (p *Provider) ItemData(obj *models.InformationObject, mapping map[uint][]models.RequestLink, detail bool) models.ProviderItem {
	item := models.ProviderItem{
		ID:             obj.ID,
		Ident:          obj.Ident,
		Title:          obj.Title,
		Subtitle:       obj.Subtitle,
		Address:        obj.Address,
		RequestURL:     p.RequestURLRedirect(obj.Ident),
		PublicBodyName: obj.PublicBodyName(),
		Description:    obj.DescriptionOr(p.campaign.Description),
		Lat:            obj.Latitude,
		Lng:            obj.Longitude,
		FoiRequests:    []models.RequestLink{},
		Resolution:     models.ResolutionNormal,
	}
	if detail {
		item.Context = obj.Context
	}

	if frs := mapping[obj.ID]; len(frs) > 0 {
		item.FoiRequest, item.Resolution = foiRequestInfo(frs)
		item.FoiRequests = frs
	}
	return item
}

// ConnectRequest links an incoming request to the target with the given
// ident. Unknown targets, public body mismatches and non public requests
// are ignored.
func (p *Provider) ConnectRequest(ctx context.Context, ident string, fr *models.FoiRequest) error {
	obj, err := p.getObject(ctx, ident)
	if errors.Is(err, ErrNotFound) {
		logrus.Debugf("Connect request %d: no target %q in campaign %d", fr.ID, ident, p.campaign.ID)
		return nil
	}
	if err != nil {
		return err
	}

	if obj.PublicBodyID == nil || fr.PublicBodyID == nil || *obj.PublicBodyID != *fr.PublicBodyID {
		logrus.Debugf("Connect request %d: public body does not match target %q", fr.ID, ident)
		return nil
	}
	if !fr.Public {
		logrus.Debugf("Connect request %d: request is not public", fr.ID)
		return nil
	}

	primary, err := p.store.LinkRequest(ctx, obj.ID, fr.ID)
	if err != nil {
		return fmt.Errorf("failed to link request %d to target %q: %w", fr.ID, ident, err)
	}
	logrus.WithFields(logrus.Fields{
		"campaign_id": p.campaign.ID,
		"ident":       ident,
		"request_id":  fr.ID,
		"primary":     primary,
	}).Info("Request connected to campaign target")
	metrics.RequestsConnected.WithLabelValues(strconv.FormatUint(uint64(p.campaign.ID), 10), strconv.FormatBool(primary)).Inc()

	if p.campaign.Ident == "" || p.tagger == nil {
		return nil
	}
	tagged, err := p.tagger.TagCampaign(ctx, fr.ID, p.campaign.Ident)
	if err != nil {
		return fmt.Errorf("failed to tag request %d with campaign: %w", fr.ID, err)
	}
	if !tagged {
		logrus.Debugf("No request campaign with slug %q", p.campaign.Ident)
	}
	return nil
}

func (p *Provider) getObject(ctx context.Context, ident string) (*models.InformationObject, error) {
	obj, err := p.store.GetByIdent(ctx, p.campaign.ID, ident)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get target %q: %w", ident, err)
	}
	return obj, nil
}
