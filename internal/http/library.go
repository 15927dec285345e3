package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/library"
	"github.com/mrlokans/catalog/internal/logger"
)

// LibraryController exposes library reads and the three write operations.
type LibraryController struct {
	reader      LibraryReader
	bookmarks   BookmarkCreator
	importer    BookmarkImporter
	reorganizer LibraryReorganizer
	log         logger.Logger
}

func NewLibraryController(reader LibraryReader, bookmarks BookmarkCreator, importer BookmarkImporter, reorganizer LibraryReorganizer, log logger.Logger) *LibraryController {
	return &LibraryController{
		reader:      reader,
		bookmarks:   bookmarks,
		importer:    importer,
		reorganizer: reorganizer,
		log:         log,
	}
}

// CreateBookmarkRequest is the body of POST /api/self/library.
type CreateBookmarkRequest struct {
	Listing *library.ListingRef `json:"listing"`
	Folder  *string             `json:"folder"`
}

// ImportBookmarksRequest is the body of POST /api/self/library/import_bookmarks.
type ImportBookmarksRequest struct {
	NotificationID *uint `json:"bookmark_notification_id"`
}

// ListAll handles GET /api/library
func (lc *LibraryController) ListAll(c *gin.Context) {
	entries, err := lc.reader.GetAll(c.Request.Context())
	if err != nil {
		respondInternalError(c, lc.log, err, "list library")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Get handles GET /api/library/:id
func (lc *LibraryController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entry, err := lc.reader.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, lc.log, err, "get library entry")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// ListSelf handles GET /api/self/library?type=&folder=
func (lc *LibraryController) ListSelf(c *gin.Context) {
	entries, err := lc.reader.GetSelfLibrary(
		c.Request.Context(),
		currentUsername(c),
		c.Query("type"),
		c.Query("folder"),
	)
	if err != nil {
		respondInternalError(c, lc.log, err, "list self library")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Create handles POST /api/self/library
func (lc *LibraryController) Create(c *gin.Context) {
	var req CreateBookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Listing == nil || req.Listing.ID == nil {
		respondBadRequest(c, "listing id is required")
		return
	}

	entry, err := lc.bookmarks.Create(c.Request.Context(), currentUsername(c), *req.Listing.ID, req.Folder)
	if err != nil {
		respondError(c, lc.log, err, "create bookmark")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// ImportBookmarks handles POST /api/self/library/import_bookmarks
func (lc *LibraryController) ImportBookmarks(c *gin.Context) {
	var req ImportBookmarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.NotificationID == nil {
		respondBadRequest(c, "bookmark_notification_id is required")
		return
	}

	outcome, err := lc.importer.Import(c.Request.Context(), currentUsername(c), *req.NotificationID)
	if err != nil {
		respondInternalError(c, lc.log, err, "import bookmarks")
		return
	}
	if outcome.Rejected() {
		respondProblems(c, outcome.Errors)
		return
	}
	c.JSON(http.StatusCreated, outcome.Entries)
}

// UpdateAll handles PUT /api/self/library/update_all
func (lc *LibraryController) UpdateAll(c *gin.Context) {
	var batch []library.FolderAssignment
	if err := c.ShouldBindJSON(&batch); err != nil {
		respondBadRequest(c, "request body must be an array of entries")
		return
	}

	outcome, err := lc.reorganizer.Apply(c.Request.Context(), currentUsername(c), batch)
	if err != nil {
		respondError(c, lc.log, err, "update library")
		return
	}
	if outcome.Rejected() {
		respondProblems(c, outcome.Errors)
		return
	}
	c.JSON(http.StatusOK, outcome.Entries)
}
