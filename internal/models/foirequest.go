package models

import (
	"time"
)

// Request statuses and resolutions used by this service.
const (
	StatusResolved = "resolved"

	ResolutionSuccessful = "successful"
	ResolutionRefused    = "refused"
	ResolutionPending    = "pending"
	ResolutionNormal     = "normal"
)

// PublicBody is a public authority owned by the request platform
type PublicBody struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(255);not null"`
	Slug string `json:"slug" gorm:"type:varchar(255);index"`
}

// TableName specifies the table name for the PublicBody model
func (PublicBody) TableName() string {
	return "public_bodies"
}

// FoiRequest is a request owned by the platform
type FoiRequest struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Title        string `json:"title" gorm:"type:varchar(255)"`
	Slug         string `json:"slug" gorm:"type:varchar(255)"`
	Status       string `json:"status" gorm:"type:varchar(50);index"`
	Resolution   string `json:"resolution" gorm:"type:varchar(50);index"`
	Public       bool   `json:"public" gorm:"default:true"`
	PublicBodyID *uint  `json:"publicbody_id" gorm:"index"`
	CampaignID   *uint  `json:"campaign_id" gorm:"index"` // platform request campaign

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the FoiRequest model
func (FoiRequest) TableName() string {
	return "foi_requests"
}

// RequestCampaign is the platform side campaign a request can be tagged with
type RequestCampaign struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(255)"`
	Slug string `json:"slug" gorm:"type:varchar(255);uniqueIndex"`
}

// TableName specifies the table name for the RequestCampaign model
func (RequestCampaign) TableName() string {
	return "request_campaigns"
}

// FoiRequestInfo is the projection of a request embedded in widget data
type FoiRequestInfo struct {
	ID         uint   `json:"id"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Status     string `json:"status"`
	Resolution string `json:"resolution"`
}

// NewFoiRequestInfo projects a request, nil stays nil
func NewFoiRequestInfo(fr *FoiRequest) *FoiRequestInfo {
	if fr == nil {
		return nil
	}
	return &FoiRequestInfo{
		ID:         fr.ID,
		Title:      fr.Title,
		Slug:       fr.Slug,
		Status:     fr.Status,
		Resolution: fr.Resolution,
	}
}

// RequestCreatedEvent is published by the platform when a request is made
type RequestCreatedEvent struct {
	RequestID uint   `json:"request_id"`
	Ref       string `json:"ref"`
}
