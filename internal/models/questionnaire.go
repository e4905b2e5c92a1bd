package models

import (
	"strings"
	"time"
)

// Questionaire groups the questions asked about the targets of a campaign
type Questionaire struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	CampaignID  uint   `json:"campaign_id" gorm:"not null;index"`
	Title       string `json:"title" gorm:"type:varchar(255)"`
	Description string `json:"description" gorm:"type:text"`

	Campaign  Campaign   `json:"-" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuestionaireID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Questionaire model
func (Questionaire) TableName() string {
	return "questionaires"
}

// Question is a single question of a questionaire
type Question struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	QuestionaireID uint   `json:"questionaire_id" gorm:"not null;index"`
	Text           string `json:"text" gorm:"type:text;not null"`
	IsRequired     bool   `json:"is_required" gorm:"default:true"`
	Options        string `json:"options" gorm:"type:text"` // comma separated
	HelpText       string `json:"help_text" gorm:"type:text"`
	Position       int    `json:"position" gorm:"default:0"`
}

// TableName specifies the table name for the Question model
func (Question) TableName() string {
	return "questions"
}

// OptionList splits the comma separated options
func (q *Question) OptionList() []string {
	return strings.Split(q.Options, ",")
}

// Report marks a target as answered for a questionaire
type Report struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	QuestionaireID      uint      `json:"questionaire_id" gorm:"not null;index"`
	InformationObjectID uint      `json:"informationobject_id" gorm:"not null;index"`
	Timestamp           time.Time `json:"timestamp"`
}

// TableName specifies the table name for the Report model
func (Report) TableName() string {
	return "reports"
}

// QuestionData is a question as consumed by the questionaire widget
type QuestionData struct {
	Text     string   `json:"text"`
	ID       uint     `json:"id"`
	Options  []string `json:"options"`
	Required bool     `json:"required"`
	HelpText string   `json:"helptext"`
}
