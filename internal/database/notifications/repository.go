// Package notifications provides lookup and dismissal of notifications
// addressed to a profile. A dismissed notification is invisible to lookups
// for the profile that dismissed it, which is what makes peer bookmark
// imports one-shot.
package notifications

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

// DefaultLifetime is how long a notification stays active when no expiry is given.
const DefaultLifetime = 30 * 24 * time.Hour

// Repository handles notification database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository creates a new notifications repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// GetNotificationByID returns an unexpired, undismissed notification addressed to username.
func (r *Repository) GetNotificationByID(ctx context.Context, username string, id uint) (*entities.Notification, error) {
	var notification entities.Notification
	err := r.db.WithContext(ctx).
		Select("notifications.*").
		Joins("JOIN profiles ON profiles.id = notifications.target_profile_id").
		Where("notifications.id = ?", id).
		Where("profiles.username = ?", username).
		Where("notifications.expires_at > ?", r.now()).
		Where("NOT EXISTS (?)", r.db.Model(&entities.NotificationDismissal{}).
			Select("1").
			Where("notification_dismissals.notification_id = notifications.id").
			Where("notification_dismissals.profile_id = profiles.id")).
		First(&notification).Error
	if err != nil {
		return nil, database.Translate(err, fmt.Sprintf("get notification %d", id))
	}
	return &notification, nil
}

// DismissNotification marks the notification as dismissed for username.
// Dismissing twice is a no-op.
func (r *Repository) DismissNotification(ctx context.Context, notification *entities.Notification, username string) error {
	var profile entities.Profile
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&profile).Error; err != nil {
		return database.Translate(err, "dismiss notification: resolve profile "+username)
	}

	dismissal := entities.NotificationDismissal{
		NotificationID: notification.ID,
		ProfileID:      profile.ID,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&dismissal).Error
	if err != nil {
		return fmt.Errorf("dismiss notification %d: %w", notification.ID, err)
	}
	return nil
}

// IsDismissed reports whether username has dismissed the notification.
func (r *Repository) IsDismissed(ctx context.Context, notificationID uint, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.NotificationDismissal{}).
		Joins("JOIN profiles ON profiles.id = notification_dismissals.profile_id").
		Where("notification_dismissals.notification_id = ?", notificationID).
		Where("profiles.username = ?", username).
		Count(&count).Error
	return count > 0, err
}

// CreatePeerBookmarkNotification shares a folder of listings from author with target.
func (r *Repository) CreatePeerBookmarkNotification(ctx context.Context, author, target *entities.Profile, folderName string, listingIDs []uint) (*entities.Notification, error) {
	peer, err := entities.EncodePeer(&entities.PeerPayload{
		User:               entities.PeerUser{Username: target.Username},
		FolderName:         folderName,
		BookmarkListingIDs: listingIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("encode peer payload: %w", err)
	}

	notification := &entities.Notification{
		Type:            entities.PeerBookmarkNotificationType,
		Message:         fmt.Sprintf("%s shared a folder named %q with you", author.Username, folderName),
		AuthorID:        author.ID,
		TargetProfileID: target.ID,
		Peer:            peer,
	}
	return notification, r.CreateNotification(ctx, notification)
}

// CreateNotification stores a notification, defaulting its expiry.
func (r *Repository) CreateNotification(ctx context.Context, notification *entities.Notification) error {
	if notification.ExpiresAt.IsZero() {
		notification.ExpiresAt = r.now().Add(DefaultLifetime)
	}
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}
