package models

import (
	"time"
)

// Campaign is a themed set of request targets sharing request templates
type Campaign struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"type:varchar(255);not null"`
	Slug        string `json:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	Ident       string `json:"ident" gorm:"type:varchar(255);index"` // matches the slug of the platform request campaign
	Description string `json:"description" gorm:"type:text"`
	Public      bool   `json:"public" gorm:"default:false;index"`

	SubjectTemplate string `json:"-" gorm:"type:text"`
	Template        string `json:"-" gorm:"type:text"`

	ProviderKind   string `json:"-" gorm:"type:varchar(50);default:'base'"`
	ProviderKwargs JSON   `json:"-" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Campaign model
func (Campaign) TableName() string {
	return "campaigns"
}

// CampaignResponse is the public projection of a campaign
type CampaignResponse struct {
	ID          uint   `json:"id" example:"1"`
	Title       string `json:"title" example:"Schulen in Berlin"`
	Slug        string `json:"slug" example:"schulen-berlin"`
	Description string `json:"description"`
	URL         string `json:"url" example:"/campaigns/schulen-berlin/"`
}

// CampaignIndexResponse is the context of the campaign index page
type CampaignIndexResponse struct {
	Campaigns []CampaignResponse `json:"campaigns"`
}

// CampaignPageResponse is the context of a campaign detail page
type CampaignPageResponse struct {
	Campaign        CampaignResponse         `json:"campaign"`
	ObjectList      []InformationObjectEntry `json:"object_list"`
	Pagination      PageInfo                 `json:"pagination"`
	Getvars         string                   `json:"getvars"`
	GetvarsComplete string                   `json:"getvars_complete"`
	TotalCount      int64                    `json:"total_count"`
	DoneCount       int64                    `json:"done_count"`
	PendingCount    int64                    `json:"pending_count"`
	ProgressPending string                   `json:"progress_pending" example:"10.0"`
	ProgressDone    string                   `json:"progress_done" example:"20.0"`
	StatusChoices   []StatusChoice           `json:"status_choices"`
}

// StatusChoice is one option of the campaign page status filter
type StatusChoice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// PageInfo describes the current page of a paginated list
type PageInfo struct {
	Number      int   `json:"number"`
	NumPages    int   `json:"num_pages"`
	Count       int64 `json:"count"`
	PerPage     int   `json:"per_page"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// InformationObjectEntry is a target as listed on the campaign page
type InformationObjectEntry struct {
	ID             uint            `json:"id"`
	Ident          string          `json:"ident"`
	Title          string          `json:"title"`
	Subtitle       string          `json:"subtitle,omitempty"`
	Address        string          `json:"address,omitempty"`
	RequestURL     string          `json:"request_url"`
	PublicBodyName string          `json:"publicbody_name"`
	FoiRequest     *FoiRequestInfo `json:"foirequest,omitempty"`
}
