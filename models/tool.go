package models

import "time"

// Tool is a directory listing. A row starts as a draft (is_published=false)
// and becomes visible everywhere once its checkout is confirmed paid.
type Tool struct {
	ID                uint      `json:"id" gorm:"primarykey"`
	Name              string    `json:"name" gorm:"not null"`
	URL               string    `json:"url" gorm:"not null"`
	ShortDescription  string    `json:"short_description"`
	LongDescription   string    `json:"long_description" gorm:"type:text"`
	LogoURL           string    `json:"logo_url"`
	Category          string    `json:"category"`
	Tags              string    `json:"tags"`
	Slug              string    `json:"slug" gorm:"uniqueIndex;not null"`
	CheckoutSessionID string    `json:"-" gorm:"index"`
	Published         bool      `json:"published" gorm:"column:is_published;not null;default:false"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
