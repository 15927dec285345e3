package library

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mrlokans/catalog/internal/database"
	librarydb "github.com/mrlokans/catalog/internal/database/library"
	"github.com/mrlokans/catalog/internal/entities"
)

type ListingRef struct {
	ID *uint `json:"id"`
}

// FolderAssignment moves one existing bookmark to a folder and listing.
// A nil Folder means "no folder".
type FolderAssignment struct {
	ID      *uint       `json:"id,omitempty"`
	Listing *ListingRef `json:"listing,omitempty"`
	Folder  *string     `json:"folder"`
}

// ReorganizeOutcome holds either every validation problem of the batch or
// the input batch echoed back after it was applied.
type ReorganizeOutcome struct {
	Errors  Problems           `json:"errors,omitempty"`
	Entries []FolderAssignment `json:"entries,omitempty"`
}

func (o ReorganizeOutcome) Rejected() bool {
	return len(o.Errors) > 0
}

// Reorganizer applies a batch of folder assignments all-or-nothing.
type Reorganizer struct {
	listings    ListingFinder
	entries     EntryStore
	recorder    Recorder
	invalidator Invalidator
}

func NewReorganizer(listings ListingFinder, entries EntryStore, opts ...Option) *Reorganizer {
	o := buildOptions(opts)
	return &Reorganizer{
		listings:    listings,
		entries:     entries,
		recorder:    o.recorder,
		invalidator: o.invalidator,
	}
}

// Apply validates every assignment before writing any of them. A single
// problem rejects the whole batch. On success the input is returned as is.
func (r *Reorganizer) Apply(ctx context.Context, username string, batch []FolderAssignment) (ReorganizeOutcome, error) {
	updates, problems, err := r.validate(ctx, username, batch)
	if err != nil {
		return ReorganizeOutcome{}, err
	}
	if len(problems) > 0 {
		r.recorder.RecordLibraryUpdate(username, len(batch), problems.Messages(), nil)
		return ReorganizeOutcome{Errors: problems}, nil
	}

	// Entries are looked up among username's own; a foreign id is missing.
	if err := r.entries.ApplyUpdates(ctx, username, updates); err != nil {
		r.recorder.RecordLibraryUpdate(username, len(batch), nil, err)

		var missing *librarydb.MissingEntryError
		if errors.As(err, &missing) {
			return ReorganizeOutcome{}, &NotFoundError{
				Resource: "library entry",
				Key:      strconv.FormatUint(uint64(missing.ID), 10),
			}
		}
		return ReorganizeOutcome{}, fmt.Errorf("failed to apply library updates: %w", err)
	}

	r.recorder.RecordLibraryUpdate(username, len(batch), nil, nil)

	ids := make([]uint, len(updates))
	for i, u := range updates {
		ids[i] = u.EntryID
	}
	r.invalidator.EntriesWritten(ctx, username, ids...)

	return ReorganizeOutcome{Entries: batch}, nil
}

// validate visits every assignment and never stops early.
func (r *Reorganizer) validate(ctx context.Context, username string, batch []FolderAssignment) ([]entities.LibraryEntryUpdate, Problems, error) {
	var problems Problems
	updates := make([]entities.LibraryEntryUpdate, 0, len(batch))

	for _, assignment := range batch {
		valid := true
		var listing *entities.Listing

		if assignment.Listing == nil {
			problems.add(KindValidation, CodeMissingListing, "Missing listing from data entry")
			valid = false
		} else {
			found, err := r.resolveListing(ctx, username, assignment.Listing.ID)
			if err != nil {
				return nil, nil, err
			}
			if found == nil {
				problems.add(KindNotFound, CodeListingNotFound, "Listing obj not found")
				valid = false
			}
			listing = found
		}

		if assignment.ID == nil {
			problems.add(KindValidation, CodeMissingEntryID, "Missing id from data entry")
			valid = false
		}

		if valid {
			updates = append(updates, entities.LibraryEntryUpdate{
				EntryID:   *assignment.ID,
				ListingID: listing.ID,
				Folder:    assignment.Folder,
			})
		}
	}

	return updates, problems, nil
}

// resolveListing returns nil without error when the listing is absent or invisible.
func (r *Reorganizer) resolveListing(ctx context.Context, username string, id *uint) (*entities.Listing, error) {
	if id == nil {
		return nil, nil
	}
	listing, err := r.listings.GetListingByID(ctx, username, *id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve listing %d: %w", *id, err)
	}
	return listing, nil
}
