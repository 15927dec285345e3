// Package demo seeds sample catalog data and provides a read-only demo mode.
package demo

import (
	"context"
	"fmt"

	"github.com/mrlokans/catalog/internal/database"
	librarydb "github.com/mrlokans/catalog/internal/database/library"
	"github.com/mrlokans/catalog/internal/database/listings"
	"github.com/mrlokans/catalog/internal/database/notifications"
	"github.com/mrlokans/catalog/internal/database/profiles"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/library"
	"github.com/mrlokans/catalog/internal/logger"
)

type sampleListing struct {
	Title       string
	Type        string
	Description string
	Disabled    bool
}

var sampleListings = []sampleListing{
	{"Air Mail", "Web Application", "Sends airmail", false},
	{"Bread Basket", "Web Application", "Carries delicious bread", false},
	{"Chatter Box", "Widget", "Chat with people", false},
	{"Clipboard", "Widget", "Clip things", false},
	{"Desktop Virtualization", "Desktop App", "Virtual desktops", false},
	{"Diamond", "Web Services", "Shiny rocks", false},
	{"Hatch Latch", "Code Library", "Hatches things", false},
	{"Jot Spot", "Web Application", "Jot things down", false},
	{"Killer Whale", "Web Application", "Whale watching", true},
}

var samplePeers = []string{"wsmith", "julia", "obrien"}

// Options controls what Seed creates.
type Options struct {
	// Username receives the bookmarks and the shared folder notification.
	Username string
}

// Result summarizes the seeded rows.
type Result struct {
	Profiles       int
	Listings       int
	Bookmarks      int
	NotificationID uint
}

// Seed fills db with sample profiles, listings, bookmarks and one pending
// peer bookmark notification addressed to opts.Username.
func Seed(ctx context.Context, db *database.Database, opts Options, log logger.Logger) (*Result, error) {
	profilesRepo := profiles.NewRepository(db.DB)
	listingsRepo := listings.NewRepository(db.DB)
	notificationsRepo := notifications.NewRepository(db.DB)
	factory := library.NewEntryFactory(listingsRepo, profilesRepo, librarydb.NewRepository(db.DB), log)

	result := &Result{}

	owner, err := profilesRepo.GetOrCreateProfile(ctx, opts.Username)
	if err != nil {
		return nil, err
	}
	result.Profiles++

	peers := make([]*entities.Profile, 0, len(samplePeers))
	for _, username := range samplePeers {
		peer, err := profilesRepo.GetOrCreateProfile(ctx, username)
		if err != nil {
			return nil, err
		}
		peers = append(peers, peer)
		result.Profiles++
	}

	created := make([]*entities.Listing, 0, len(sampleListings))
	for _, s := range sampleListings {
		listing := &entities.Listing{
			Title:       s.Title,
			Description: s.Description,
			OwnerID:     peers[0].ID,
			IsEnabled:   !s.Disabled,
		}
		if err := listingsRepo.CreateListing(ctx, listing, s.Type); err != nil {
			return nil, fmt.Errorf("seed listing %s: %w", s.Title, err)
		}
		created = append(created, listing)
		result.Listings++
	}

	folders := []string{"Favorites", "Favorites", "", "Work"}
	for i, folder := range folders {
		var f *string
		if folder != "" {
			f = &folder
		}
		if _, err := factory.Create(ctx, owner.Username, created[i].ID, f); err != nil {
			return nil, fmt.Errorf("seed bookmark %s: %w", created[i].Title, err)
		}
		result.Bookmarks++
	}

	shared := []uint{created[4].ID, created[5].ID, created[6].ID}
	notification, err := notificationsRepo.CreatePeerBookmarkNotification(ctx, peers[1], owner, "Shared Tools", shared)
	if err != nil {
		return nil, err
	}
	result.NotificationID = notification.ID

	log.Info("Seeded demo data",
		logger.String("username", owner.Username),
		logger.Int("profiles", result.Profiles),
		logger.Int("listings", result.Listings),
		logger.Int("bookmarks", result.Bookmarks),
		logger.Uint("notification_id", result.NotificationID))

	return result, nil
}
