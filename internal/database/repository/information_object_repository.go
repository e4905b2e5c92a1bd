package repository

import (
	"context"
	"strings"
	"time"

	"github.com/okfde/froide-campaign-service/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TargetOrder selects the ordering of a target search
type TargetOrder int

const (
	// OrderDefault orders by primary key
	OrderDefault TargetOrder = iota
	// OrderRank orders by full text rank
	OrderRank
	// OrderDistance orders by distance from TargetQuery.Center
	OrderDistance
	// OrderRandom orders randomly
	OrderRandom
)

// GeoBox is a latitude/longitude bounding box
type GeoBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
}

// Point is a latitude/longitude pair
type Point struct {
	Lat, Lng float64
}

// TargetQuery describes a provider search over one campaign
type TargetQuery struct {
	CampaignID uint
	Query      string
	Requested  *bool
	Box        *GeoBox
	Center     *Point
	Order      TargetOrder
	Limit      int
}

// PageFilter describes the filters of the campaign page
type PageFilter struct {
	Query  string
	Status string
	Random bool
}

// TargetRequestLink is a request linked to a target
type TargetRequestLink struct {
	InformationObjectID uint
	FoiRequestID        uint
	Resolution          string
}

// CampaignCounts are the request counters of a campaign
type CampaignCounts struct {
	Total     int64
	Requested int64
	Done      int64
}

const linkExistsSQL = `EXISTS (SELECT 1 FROM information_object_foirequests l WHERE l.information_object_id = information_objects.id)`

const tsQuerySQL = `plainto_tsquery('simple', ?)`

type InformationObjectRepository struct {
	db *gorm.DB
}

func NewInformationObjectRepository(db *gorm.DB) *InformationObjectRepository {
	return &InformationObjectRepository{db: db}
}

// Search runs a provider search
func (r *InformationObjectRepository) Search(ctx context.Context, q TargetQuery) ([]*models.InformationObject, error) {
	tx := r.db.WithContext(ctx).
		Preload("PublicBody").
		Where("information_objects.campaign_id = ?", q.CampaignID)

	if q.Query != "" {
		tx = tx.Where("information_objects.search_vector @@ "+tsQuerySQL, q.Query)
	}
	if q.Requested != nil {
		if *q.Requested {
			tx = tx.Where(linkExistsSQL)
		} else {
			tx = tx.Where("NOT " + linkExistsSQL)
		}
	}
	if q.Box != nil {
		tx = tx.Where("information_objects.latitude IS NOT NULL AND information_objects.longitude IS NOT NULL").
			Where("information_objects.latitude BETWEEN ? AND ?", q.Box.MinLat, q.Box.MaxLat).
			Where("information_objects.longitude BETWEEN ? AND ?", q.Box.MinLng, q.Box.MaxLng)
	}

	switch {
	case q.Order == OrderRank && q.Query != "":
		tx = tx.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "ts_rank(information_objects.search_vector, " + tsQuerySQL + ") DESC, information_objects.id",
			Vars:               []interface{}{q.Query},
			WithoutParentheses: true,
		}})
	case q.Order == OrderDistance && q.Center != nil:
		tx = tx.Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL: "power(information_objects.latitude - ?, 2) + " +
				"power((information_objects.longitude - ?) * cos(radians(?)), 2)",
			Vars:               []interface{}{q.Center.Lat, q.Center.Lng, q.Center.Lat},
			WithoutParentheses: true,
		}})
	case q.Order == OrderRandom:
		tx = tx.Order("RANDOM()")
	default:
		tx = tx.Order("information_objects.id")
	}

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	var iobjs []*models.InformationObject
	err := tx.Find(&iobjs).Error
	return iobjs, err
}

// GetByIdent retrieves a target of a campaign by ident
func (r *InformationObjectRepository) GetByIdent(ctx context.Context, campaignID uint, ident string) (*models.InformationObject, error) {
	var iobj models.InformationObject
	err := r.db.WithContext(ctx).
		Preload("PublicBody").
		Where("campaign_id = ? AND ident = ?", campaignID, ident).
		First(&iobj).Error
	if err != nil {
		return nil, err
	}
	return &iobj, nil
}

// RequestLinks returns the linked requests of the given targets ordered by request id
func (r *InformationObjectRepository) RequestLinks(ctx context.Context, iobjIDs []uint) ([]TargetRequestLink, error) {
	if len(iobjIDs) == 0 {
		return nil, nil
	}
	var links []TargetRequestLink
	err := r.db.WithContext(ctx).
		Table("information_object_foirequests AS l").
		Select("l.information_object_id, fr.id AS foi_request_id, fr.resolution").
		Joins("JOIN foi_requests fr ON fr.id = l.foi_request_id").
		Where("l.information_object_id IN ?", iobjIDs).
		Order("l.information_object_id").
		Order("fr.id").
		Scan(&links).Error
	return links, err
}

// LinkRequest links a request to a target. The request becomes the primary
// request only when the target has none yet; the returned flag reports that.
func (r *InformationObjectRepository) LinkRequest(ctx context.Context, iobjID, requestID uint) (bool, error) {
	primary := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(
			"UPDATE information_objects SET foirequest_id = ?, updated_at = ? WHERE id = ? AND foirequest_id IS NULL",
			requestID, time.Now(), iobjID,
		)
		if res.Error != nil {
			return res.Error
		}
		primary = res.RowsAffected == 1

		return tx.Exec(
			"INSERT INTO information_object_foirequests (information_object_id, foi_request_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			iobjID, requestID,
		).Error
	})
	return primary, err
}

// Random returns up to limit random unrequested targets with a public body
func (r *InformationObjectRepository) Random(ctx context.Context, campaignIDs []uint, limit int) ([]*models.InformationObject, error) {
	var iobjs []*models.InformationObject
	err := r.db.WithContext(ctx).
		Preload("PublicBody").
		Preload("Campaign").
		Where("public_body_id IS NOT NULL").
		Where("campaign_id IN ?", campaignIDs).
		Where("foirequest_id IS NULL").
		Order("RANDOM()").
		Limit(limit).
		Find(&iobjs).Error
	return iobjs, err
}

// SearchText runs the full text search of the listing API
func (r *InformationObjectRepository) SearchText(ctx context.Context, campaignIDs []uint, query string, includeRequested bool, limit int) ([]*models.InformationObject, error) {
	tx := r.db.WithContext(ctx).
		Preload("PublicBody").
		Preload("Campaign").
		Where("public_body_id IS NOT NULL").
		Where("campaign_id IN ?", campaignIDs)
	if !includeRequested {
		tx = tx.Where("foirequest_id IS NULL")
	}

	var iobjs []*models.InformationObject
	err := tx.Where("information_objects.search_vector @@ "+tsQuerySQL, query).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:                "ts_rank(information_objects.search_vector, " + tsQuerySQL + ") DESC, information_objects.id",
			Vars:               []interface{}{query},
			WithoutParentheses: true,
		}}).
		Limit(limit).
		Find(&iobjs).Error
	return iobjs, err
}

// Counts returns the request counters of a campaign
func (r *InformationObjectRepository) Counts(ctx context.Context, campaignID uint) (*CampaignCounts, error) {
	var counts CampaignCounts
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.InformationObject{}).
		Where("campaign_id = ?", campaignID).
		Count(&counts.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.InformationObject{}).
		Where("campaign_id = ? AND foirequest_id IS NOT NULL", campaignID).
		Count(&counts.Requested).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.InformationObject{}).
		Joins("JOIN foi_requests fr ON fr.id = information_objects.foirequest_id").
		Where("information_objects.campaign_id = ? AND fr.status = ?", campaignID, models.StatusResolved).
		Count(&counts.Done).Error; err != nil {
		return nil, err
	}
	return &counts, nil
}

func (r *InformationObjectRepository) pageScope(campaignID uint, f PageFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("information_objects.campaign_id = ?", campaignID)
		if f.Random {
			return tx.Where("information_objects.foirequest_id IS NULL")
		}
		if f.Query != "" {
			like := "%" + escapeLike(f.Query) + "%"
			tx = tx.Where("(information_objects.title ILIKE ? OR information_objects.ident ILIKE ?)", like, like)
		}
		switch f.Status {
		case "0":
			tx = tx.Where("information_objects.foirequest_id IS NULL")
		case "1":
			tx = tx.Joins("LEFT JOIN foi_requests fr ON fr.id = information_objects.foirequest_id").
				Where("information_objects.foirequest_id IS NOT NULL").
				Where("(fr.status IS NULL OR fr.status <> ?)", models.StatusResolved)
		case "2":
			tx = tx.Joins("JOIN foi_requests fr ON fr.id = information_objects.foirequest_id").
				Where("fr.status = ?", models.StatusResolved)
		}
		return tx
	}
}

// CountPage counts the targets matching the campaign page filter
func (r *InformationObjectRepository) CountPage(ctx context.Context, campaignID uint, f PageFilter) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.InformationObject{}).
		Scopes(r.pageScope(campaignID, f)).
		Count(&count).Error
	return count, err
}

// ListPage lists one page of targets matching the campaign page filter
func (r *InformationObjectRepository) ListPage(ctx context.Context, campaignID uint, f PageFilter, offset, limit int) ([]*models.InformationObject, error) {
	tx := r.db.WithContext(ctx).
		Preload("PublicBody").
		Preload("FoiRequest").
		Scopes(r.pageScope(campaignID, f))
	if f.Random {
		tx = tx.Order("RANDOM()")
	} else {
		tx = tx.Order("information_objects.ordering").Order("information_objects.id")
	}

	var iobjs []*models.InformationObject
	err := tx.Offset(offset).Limit(limit).Find(&iobjs).Error
	return iobjs, err
}

// WithPrimaryRequest lists targets of the campaigns that have a primary request
func (r *InformationObjectRepository) WithPrimaryRequest(ctx context.Context, campaignIDs []uint) ([]*models.InformationObject, error) {
	var iobjs []*models.InformationObject
	err := r.db.WithContext(ctx).
		Preload("FoiRequest").
		Where("campaign_id IN ? AND foirequest_id IS NOT NULL", campaignIDs).
		Order("id").
		Find(&iobjs).Error
	return iobjs, err
}

// SuccessfulWithoutReport lists targets having a successful linked request
// that have not been reported on yet
func (r *InformationObjectRepository) SuccessfulWithoutReport(ctx context.Context, campaignID uint) ([]*models.InformationObject, error) {
	var iobjs []*models.InformationObject
	err := r.db.WithContext(ctx).
		Preload("PublicBody").
		Where("information_objects.campaign_id = ?", campaignID).
		Where("NOT EXISTS (SELECT 1 FROM reports rp WHERE rp.information_object_id = information_objects.id)").
		Where(`EXISTS (SELECT 1 FROM information_object_foirequests l
			JOIN foi_requests fr ON fr.id = l.foi_request_id
			WHERE l.information_object_id = information_objects.id AND fr.resolution = ?)`, models.ResolutionSuccessful).
		Order("information_objects.id").
		Find(&iobjs).Error
	return iobjs, err
}

// ListForExport lists every target of a campaign
func (r *InformationObjectRepository) ListForExport(ctx context.Context, campaignID uint) ([]*models.InformationObject, error) {
	var iobjs []*models.InformationObject
	err := r.db.WithContext(ctx).
		Preload("PublicBody").
		Preload("FoiRequest").
		Where("campaign_id = ?", campaignID).
		Order("ordering").
		Order("id").
		Find(&iobjs).Error
	return iobjs, err
}

// escapeLike escapes LIKE wildcards in user input
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
