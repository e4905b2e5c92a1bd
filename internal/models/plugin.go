package models

import (
	"time"
)

// CampaignPage groups several campaigns on one page
type CampaignPage struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Title     string     `json:"title" gorm:"type:varchar(255)"`
	Slug      string     `json:"slug" gorm:"type:varchar(255);uniqueIndex"`
	Campaigns []Campaign `json:"campaigns,omitempty" gorm:"many2many:campaign_page_campaigns"`
}

// TableName specifies the table name for the CampaignPage model
func (CampaignPage) TableName() string {
	return "campaign_pages"
}

// CampaignSubscription records an email subscribed to campaign updates
type CampaignSubscription struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Email      string    `json:"email" gorm:"type:varchar(255);not null;index"`
	CampaignID uint      `json:"campaign_id" gorm:"not null;index"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for the CampaignSubscription model
func (CampaignSubscription) TableName() string {
	return "campaign_subscriptions"
}

// CampaignPlugin configures a map or list widget for one campaign
type CampaignPlugin struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	CampaignID       uint   `json:"campaign_id" gorm:"not null;index"`
	Settings         JSON   `json:"settings" gorm:"type:jsonb"`
	RequestExtraText string `json:"request_extra_text" gorm:"type:text"`

	Campaign Campaign `json:"-" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the CampaignPlugin model
func (CampaignPlugin) TableName() string {
	return "campaign_cms_plugins"
}

// CampaignRequestsPlugin configures the request list widget of a campaign page
type CampaignRequestsPlugin struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	CampaignPageID uint `json:"campaign_page_id" gorm:"not null;index"`

	CampaignPage CampaignPage `json:"-" gorm:"foreignKey:CampaignPageID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the CampaignRequestsPlugin model
func (CampaignRequestsPlugin) TableName() string {
	return "campaign_requests_cms_plugins"
}

// CampaignQuestionairePlugin configures the questionaire widget
type CampaignQuestionairePlugin struct {
	ID             uint `json:"id" gorm:"primaryKey"`
	QuestionaireID uint `json:"questionaire_id" gorm:"not null;index"`

	Questionaire Questionaire `json:"-" gorm:"foreignKey:QuestionaireID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the CampaignQuestionairePlugin model
func (CampaignQuestionairePlugin) TableName() string {
	return "campaign_questionaire_cms_plugins"
}

// MapPluginResponse is the context of the map widget
type MapPluginResponse struct {
	Config JSON `json:"config"`
}

// ListPluginResponse is the context of the list widget
type ListPluginResponse struct {
	Config JSON `json:"config"`
}

// RequestsPluginEntry is one target with its primary request
type RequestsPluginEntry struct {
	Ident      string          `json:"ident"`
	Title      string          `json:"title"`
	CampaignID uint            `json:"campaign_id"`
	FoiRequest *FoiRequestInfo `json:"foirequest"`
}

// RequestsPluginResponse is the context of the request list widget
type RequestsPluginResponse struct {
	IObjs []RequestsPluginEntry `json:"iobjs"`
}

// QuestionairePluginResponse is the context of the questionaire widget
type QuestionairePluginResponse struct {
	Questionaire       uint           `json:"questionaire"`
	InformationObjects []ProviderItem `json:"informationobjects"`
	Questions          []QuestionData `json:"questions"`
	Config             JSON           `json:"config"`
}
