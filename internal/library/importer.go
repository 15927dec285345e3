package library

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/logger"
)

// ImportOutcome holds either the reasons an import was rejected or the
// bookmarks it created, never both.
type ImportOutcome struct {
	Errors  Problems                `json:"errors,omitempty"`
	Entries []entities.LibraryEntry `json:"entries,omitempty"`
}

// Rejected reports whether the import was refused before any write.
func (o ImportOutcome) Rejected() bool {
	return len(o.Errors) > 0
}

// Importer copies a peer's shared bookmark folder into the current user's
// library. A malformed notification is rejected as a whole; a single
// listing that cannot be bookmarked is skipped.
type Importer struct {
	factory       *EntryFactory
	notifications NotificationStore
	log           logger.Logger
}

func NewImporter(factory *EntryFactory, notifications NotificationStore, log logger.Logger) *Importer {
	return &Importer{
		factory:       factory,
		notifications: notifications,
		log:           log,
	}
}

// Import consumes the peer bookmark notification addressed to username.
// The returned error is reserved for storage failures.
func (i *Importer) Import(ctx context.Context, username string, notificationID uint) (ImportOutcome, error) {
	notification, peer, problems, err := i.validate(ctx, username, notificationID)
	if err != nil {
		return ImportOutcome{}, err
	}
	if len(problems) > 0 {
		i.factory.recorder.RecordBookmarkImport(username, notificationID, 0, 0, problems.Messages())
		return ImportOutcome{Errors: problems}, nil
	}

	entries := make([]entities.LibraryEntry, 0, len(peer.BookmarkListingIDs))
	created := make([]uint, 0, len(peer.BookmarkListingIDs))

	for _, listingID := range peer.BookmarkListingIDs {
		folder := peer.FolderName
		entry, err := i.factory.create(ctx, username, listingID, &folder)
		if err != nil {
			i.log.Debug("skipping bookmark during import",
				logger.String("username", username),
				logger.Uint("notification_id", notificationID),
				logger.Uint("listing_id", listingID),
				logger.Error(err))
			continue
		}
		entries = append(entries, *entry)
		created = append(created, entry.ID)
	}

	if err := i.notifications.DismissNotification(ctx, notification, username); err != nil {
		return ImportOutcome{}, fmt.Errorf("failed to dismiss notification %d: %w", notificationID, err)
	}

	i.factory.recorder.RecordBookmarkImport(username, notificationID, len(peer.BookmarkListingIDs), len(entries), nil)
	if len(created) > 0 {
		i.factory.invalidator.EntriesWritten(ctx, username, created...)
	}

	return ImportOutcome{Entries: entries}, nil
}

// validate stops at the first of: notification lookup, notification type,
// peer document decoding. Payload checks after that are accumulated.
func (i *Importer) validate(ctx context.Context, username string, notificationID uint) (*entities.Notification, *entities.PeerPayload, Problems, error) {
	var problems Problems

	notification, err := i.notifications.GetNotificationByID(ctx, username, notificationID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			problems.add(KindNotFound, CodeNotificationNotFound, "Could not find Notification Entry")
			return nil, nil, problems, nil
		}
		return nil, nil, nil, fmt.Errorf("failed to load notification %d: %w", notificationID, err)
	}

	if notification.Type != entities.PeerBookmarkNotificationType {
		problems.add(KindValidation, CodeWrongNotificationType, fmt.Sprintf(
			"Notification Entry should be '%s' but it is '%s'",
			entities.PeerBookmarkNotificationType, notification.Type))
		return nil, nil, problems, nil
	}

	decoded, err := notification.DecodePeer()
	if err != nil {
		i.log.Debug("malformed peer payload",
			logger.Uint("notification_id", notificationID),
			logger.Error(err))
		problems.add(KindValidation, CodeMalformedPeerPayload, "Peer payload is malformed: "+err.Error())
		return nil, nil, problems, nil
	}

	peer := &entities.PeerPayload{}
	if decoded != nil {
		peer = decoded
	}

	if peer.User.Username != username {
		problems.add(KindValidation, CodeUsernameMismatch, "Target username does not match current user's username")
	}
	if peer.FolderName == "" {
		problems.add(KindValidation, CodeMissingFolderName, "Could not find folder_name entry")
	}
	if len(peer.BookmarkListingIDs) == 0 {
		problems.add(KindValidation, CodeMissingBookmarkList, "Could not find peer bookmark list entry")
	}

	return notification, peer, problems, nil
}
