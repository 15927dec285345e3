// Package audit records library writes (bookmark creation, peer imports and
// folder reorganizations) to the audit_events table.
package audit

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mrlokans/catalog/internal/database/audit"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/logger"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	log  logger.Logger
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository, log logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.repo.LogEvent(event); err != nil {
			s.log.Error("failed to log audit event",
				logger.String("action", event.Action),
				logger.Error(err))
		}
	}()
}

// Wait blocks until every pending LogAsync write has finished.
func (s *Service) Wait() {
	s.wg.Wait()
}

// RecordBookmarkCreate records a single bookmark creation.
func (s *Service) RecordBookmarkCreate(username string, entry *entities.LibraryEntry) {
	event := &entities.AuditEvent{
		ProfileID:   entry.OwnerID,
		Username:    username,
		EventType:   entities.AuditEventBookmarkCreate,
		Action:      "create_bookmark",
		Description: fmt.Sprintf("Bookmarked listing %d", entry.ListingID),
		EntityType:  "library_entry",
		EntityID:    &entry.ID,
		Status:      entities.AuditStatusSuccess,
	}
	if entry.Folder != nil {
		event.Metadata = marshalMetadata(map[string]any{"folder": *entry.Folder})
	}

	s.LogAsync(event)
}

// RecordBookmarkImport records a peer bookmark import. Rejected imports are
// failed; imports that skipped some listings are partial.
func (s *Service) RecordBookmarkImport(username string, notificationID uint, requested, imported int, problems []string) {
	event := &entities.AuditEvent{
		Username:    username,
		EventType:   entities.AuditEventBookmarkImport,
		Action:      "import_bookmarks",
		Description: fmt.Sprintf("Imported %d of %d shared bookmarks", imported, requested),
		EntityType:  "notification",
		EntityID:    &notificationID,
		Status:      entities.AuditStatusSuccess,
		Metadata: marshalMetadata(map[string]any{
			"requested": requested,
			"imported":  imported,
			"skipped":   requested - imported,
		}),
	}

	switch {
	case len(problems) > 0:
		event.Status = entities.AuditStatusFailed
		event.Description = "Rejected bookmark import"
		event.ErrorMsg = truncate(strings.Join(problems, "; "), 500)
	case imported < requested:
		event.Status = entities.AuditStatusPartial
	}

	s.LogAsync(event)
}

// RecordLibraryUpdate records a batch folder reorganization.
func (s *Service) RecordLibraryUpdate(username string, entries int, problems []string, err error) {
	event := &entities.AuditEvent{
		Username:    username,
		EventType:   entities.AuditEventLibraryUpdate,
		Action:      "update_all",
		Description: fmt.Sprintf("Reorganized %d bookmarks", entries),
		EntityType:  "library_entry",
		Status:      entities.AuditStatusSuccess,
		Metadata:    marshalMetadata(map[string]any{"entries": entries}),
	}

	switch {
	case len(problems) > 0:
		event.Status = entities.AuditStatusFailed
		event.Description = "Rejected library update"
		event.ErrorMsg = truncate(strings.Join(problems, "; "), 500)
	case err != nil:
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// RecordCacheMaintenance records background cache work such as a library warm-up.
func (s *Service) RecordCacheMaintenance(username, action string, err error) {
	event := &entities.AuditEvent{
		Username:  username,
		EventType: entities.AuditEventCache,
		Action:    action,
		Status:    entities.AuditStatusSuccess,
	}
	if err != nil {
		event.Status = entities.AuditStatusFailed
		event.ErrorMsg = truncate(err.Error(), 500)
	}

	s.LogAsync(event)
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(username string, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(username, limit, offset)
}

// GetEventsByType retrieves audit events filtered by type.
func (s *Service) GetEventsByType(eventType entities.AuditEventType, username string) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsByType(eventType, username)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	return s.repo.DeleteOldEvents(retention)
}

func marshalMetadata(metadata map[string]any) string {
	data, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(data)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
