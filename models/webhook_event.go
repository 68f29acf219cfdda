package models

import "time"

// WebhookEvent stores provider webhook deliveries with deduplication
// metadata so a replayed event is processed at most once.
type WebhookEvent struct {
	ID              uint       `json:"id" gorm:"primarykey"`
	Provider        string     `json:"provider" gorm:"not null;uniqueIndex:ux_webhook_events_provider_event,priority:1"`
	ProviderEventID string     `json:"provider_event_id" gorm:"not null;uniqueIndex:ux_webhook_events_provider_event,priority:2"`
	EventType       string     `json:"event_type" gorm:"not null;index"`
	PayloadJSON     string     `json:"payload_json" gorm:"type:text"`
	SignatureValid  bool       `json:"signature_valid" gorm:"default:false"`
	ProcessedAt     *time.Time `json:"processed_at,omitempty"`
	ProcessingError string     `json:"processing_error" gorm:"type:text"`
	CreatedAt       time.Time  `json:"created_at"`
}
