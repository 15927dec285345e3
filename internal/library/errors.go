package library

import (
	"fmt"
	"strings"

	"github.com/mrlokans/catalog/internal/database"
)

// Kind classifies a Problem.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation"
	// KindPermission is reserved. Invisible records are reported as not found.
	KindPermission Kind = "permission"
)

// Problem codes returned by the importer and the reorganizer.
const (
	CodeNotificationNotFound  = "notification_not_found"
	CodeWrongNotificationType = "wrong_notification_type"
	CodeUsernameMismatch      = "username_mismatch"
	CodeMissingFolderName     = "missing_folder_name"
	CodeMissingBookmarkList   = "missing_bookmark_list"
	CodeMalformedPeerPayload  = "malformed_peer_payload"
	CodeMissingListing        = "missing_listing"
	CodeListingNotFound       = "listing_not_found"
	CodeMissingEntryID        = "missing_entry_id"
)

// Problem is a single rejected-request reason with a stable code and a
// human readable message.
type Problem struct {
	Kind    Kind   `json:"kind"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Problems is an ordered collection of request problems. It implements error
// so callers can return it, but the core hands it back inside outcomes.
type Problems []Problem

func (p Problems) Error() string {
	return strings.Join(p.Messages(), "; ")
}

// Messages returns the human readable messages in order.
func (p Problems) Messages() []string {
	msgs := make([]string, len(p))
	for i, problem := range p {
		msgs[i] = problem.Message
	}
	return msgs
}

// Codes returns the problem codes in order.
func (p Problems) Codes() []string {
	codes := make([]string, len(p))
	for i, problem := range p {
		codes[i] = problem.Code
	}
	return codes
}

func (p *Problems) add(kind Kind, code, message string) {
	*p = append(*p, Problem{Kind: kind, Code: code, Message: message})
}

// NotFoundError reports a missing or invisible record. It matches
// database.ErrNotFound under errors.Is.
type NotFoundError struct {
	Resource string
	Key      string
	// Missing names each dependency that could not be resolved, when there
	// can be more than one.
	Missing []string
}

func (e *NotFoundError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("%s: not found: %s", e.Resource, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.Key)
}

func (e *NotFoundError) Unwrap() error {
	return database.ErrNotFound
}
