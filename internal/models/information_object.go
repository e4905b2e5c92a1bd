package models

import (
	"time"
)

// InformationObject is one campaign target a request can be filed against
type InformationObject struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	CampaignID uint     `json:"campaign_id" gorm:"not null;uniqueIndex:idx_iobj_campaign_ident"`
	Ident      string   `json:"ident" gorm:"type:varchar(255);not null;uniqueIndex:idx_iobj_campaign_ident"`
	Title      string   `json:"title" gorm:"type:varchar(1000);not null"`
	Subtitle   string   `json:"subtitle" gorm:"type:varchar(1000)"`
	Address    string   `json:"address" gorm:"type:text"`
	Latitude   *float64 `json:"lat" gorm:"index:idx_iobj_geo"`
	Longitude  *float64 `json:"lng" gorm:"index:idx_iobj_geo"`
	Context    JSON     `json:"context" gorm:"type:jsonb"`
	Ordering   string   `json:"ordering" gorm:"type:varchar(255);index"`
	SearchText string   `json:"-" gorm:"type:text"`

	PublicBodyID *uint `json:"publicbody_id" gorm:"index"`
	FoiRequestID *uint `json:"foirequest_id" gorm:"column:foirequest_id;index"` // primary request link

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Campaign    Campaign     `json:"-" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
	PublicBody  *PublicBody  `json:"publicbody,omitempty" gorm:"foreignKey:PublicBodyID;references:ID"`
	FoiRequest  *FoiRequest  `json:"foirequest,omitempty" gorm:"foreignKey:FoiRequestID;references:ID"`
	FoiRequests []FoiRequest `json:"-" gorm:"many2many:information_object_foirequests;joinForeignKey:InformationObjectID;joinReferences:FoiRequestID"`
}

// TableName specifies the table name for the InformationObject model
func (InformationObject) TableName() string {
	return "information_objects"
}

// HasGeo reports whether the target carries coordinates
func (o *InformationObject) HasGeo() bool {
	return o.Latitude != nil && o.Longitude != nil
}

// PublicBodyName returns the name of the linked public body or ""
func (o *InformationObject) PublicBodyName() string {
	if o.PublicBody == nil {
		return ""
	}
	return o.PublicBody.Name
}

// DescriptionOr returns the description stored in the target context or fallback
func (o *InformationObject) DescriptionOr(fallback string) string {
	if d := o.Context.String("description"); d != "" {
		return d
	}
	return fallback
}

// InformationObjectFoiRequest is the join table between targets and requests
type InformationObjectFoiRequest struct {
	InformationObjectID uint `gorm:"primaryKey"`
	FoiRequestID        uint `gorm:"primaryKey;column:foi_request_id"`
}

// TableName specifies the table name for the join table
func (InformationObjectFoiRequest) TableName() string {
	return "information_object_foirequests"
}

// RequestLink is one linked request of a target as used for annotation
type RequestLink struct {
	ID         uint   `json:"id"`
	Resolution string `json:"resolution"`
}

// ProviderItem is the flat record produced by a campaign provider
type ProviderItem struct {
	ID             uint          `json:"id" example:"42"`
	Ident          string        `json:"ident" example:"school-1234"`
	Title          string        `json:"title" example:"Grundschule am Park"`
	Subtitle       string        `json:"subtitle"`
	Address        string        `json:"address"`
	RequestURL     string        `json:"request_url" example:"/campaign/1/school-1234/request/"`
	PublicBodyName string        `json:"publicbody_name"`
	Description    string        `json:"description"`
	Lat            *float64      `json:"lat"`
	Lng            *float64      `json:"lng"`
	FoiRequest     *uint         `json:"foirequest"`
	FoiRequests    []RequestLink `json:"foirequests"`
	Resolution     string        `json:"resolution" example:"normal"`
	Context        JSON          `json:"context,omitempty"`
}

// InformationObjectItem is the flat record of the listing and search API
type InformationObjectItem struct {
	Title          string `json:"title"`
	RequestURL     string `json:"request_url"`
	Description    string `json:"description"`
	PublicBodyName string `json:"publicbody_name"`
}
