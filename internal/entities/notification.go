package entities

import (
	"encoding/json"
	"time"
)

// PeerBookmarkNotificationType marks a notification carrying a shared bookmark folder.
const PeerBookmarkNotificationType = "PEER.BOOKMARK"

// Notification types besides peer bookmarks.
const (
	SystemNotificationType  = "SYSTEM"
	ListingNotificationType = "LISTING"
	PeerNotificationType    = "PEER"
)

// PeerUser identifies the intended recipient of a peer notification.
type PeerUser struct {
	Username string `json:"username"`
}

// PeerPayload is the JSON document stored on peer notifications.
type PeerPayload struct {
	User               PeerUser `json:"user"`
	FolderName         string   `json:"folder_name,omitempty"`
	BookmarkListingIDs []uint   `json:"_bookmark_listing_ids,omitempty"`
}

// EncodePeer renders a peer payload for storage. A nil payload stores NULL.
func EncodePeer(peer *PeerPayload) (json.RawMessage, error) {
	if peer == nil {
		return nil, nil
	}
	return json.Marshal(peer)
}

// Notification is addressed to a single profile. Peer holds the raw peer
// document and is only set for peer notifications. It is decoded with
// DecodePeer once the notification type is known.
type Notification struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Type            string          `gorm:"index;size:50" json:"notification_type"`
	Message         string          `gorm:"size:4096" json:"message"`
	AuthorID        uint            `gorm:"index" json:"author_id"`
	TargetProfileID uint            `gorm:"index" json:"target_profile_id"`
	Peer            json.RawMessage `gorm:"type:text" json:"peer,omitempty"`
	ExpiresAt       time.Time       `gorm:"index" json:"expires_date"`
	CreatedAt       time.Time       `json:"created_date"`
}

// NotificationDismissal records that a profile dismissed a notification.
type NotificationDismissal struct {
	ID             uint      `gorm:"primaryKey"`
	NotificationID uint      `gorm:"uniqueIndex:idx_dismissal"`
	ProfileID      uint      `gorm:"uniqueIndex:idx_dismissal"`
	CreatedAt      time.Time `json:"created_at"`
}

// DecodePeer parses the stored peer document. An empty document decodes to
// nil without error.
func (n *Notification) DecodePeer() (*PeerPayload, error) {
	if len(n.Peer) == 0 || string(n.Peer) == "null" {
		return nil, nil
	}
	var peer PeerPayload
	if err := json.Unmarshal(n.Peer, &peer); err != nil {
		return nil, err
	}
	return &peer, nil
}

func (Notification) TableName() string {
	return "notifications"
}

func (NotificationDismissal) TableName() string {
	return "notification_dismissals"
}
