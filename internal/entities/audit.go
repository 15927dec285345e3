package entities

import "time"

type AuditEventType string

const (
	AuditEventBookmarkCreate AuditEventType = "bookmark_create"
	AuditEventBookmarkImport AuditEventType = "bookmark_import"
	AuditEventLibraryUpdate  AuditEventType = "library_update"
	AuditEventCache          AuditEventType = "cache"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
	AuditStatusPartial AuditStatus = "partial"
)

type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProfileID   uint           `gorm:"index" json:"profile_id"`
	Username    string         `gorm:"index;size:100" json:"username"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Action      string         `gorm:"size:100" json:"action"`      // e.g., "import_bookmarks", "update_all"
	Description string         `gorm:"size:500" json:"description"` // Human-readable summary
	EntityType  string         `gorm:"size:50" json:"entity_type"`  // "library_entry", "notification"
	EntityID    *uint          `gorm:"index" json:"entity_id,omitempty"`
	Metadata    string         `gorm:"type:text" json:"metadata,omitempty"` // JSON for extra data
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
