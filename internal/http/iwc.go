package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/logger"
)

// IWCVersion is the version advertised by the IWC system resource.
const IWCVersion = "1.0"

// ApplicationList is the HAL collection of listings visible to the caller.
type ApplicationList struct {
	Links halLinks  `json:"_links"`
	Items []halLink `json:"item"`
}

// Application is a single listing with HAL links.
type Application struct {
	entities.Listing
	Links halLinks `json:"_links"`
}

// SystemInfo describes the IWC system resource.
type SystemInfo struct {
	Links          halLinks `json:"_links"`
	Version        string   `json:"version"`
	Name           string   `json:"name"`
	ServiceVersion string   `json:"service_version,omitempty"`
}

// IWCController exposes visible listings to IWC clients as HAL documents.
type IWCController struct {
	listings ListingBrowser
	version  string
	log      logger.Logger
}

func NewIWCController(listings ListingBrowser, version string, log logger.Logger) *IWCController {
	return &IWCController{listings: listings, version: version, log: log}
}

// ListApplications handles GET /iwc/application
func (ic *IWCController) ListApplications(c *gin.Context) {
	listings, err := ic.listings.ListVisible(c.Request.Context(), currentUsername(c))
	if err != nil {
		respondInternalError(c, ic.log, err, "list applications")
		return
	}

	root := iwcRoot(c)
	items := make([]halLink, 0, len(listings))
	for _, l := range listings {
		items = append(items, halLink{Href: fmt.Sprintf("%sapplication/%d", root, l.ID)})
	}

	respondHAL(c, http.StatusOK, ApplicationList{Links: selfLinks(c), Items: items})
}

// GetApplication handles GET /iwc/application/:id
func (ic *IWCController) GetApplication(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	listing, err := ic.listings.GetListingByID(c.Request.Context(), currentUsername(c), id)
	if err != nil {
		respondError(c, ic.log, err, "get application")
		return
	}

	links := selfLinks(c)
	links["collection"] = halLink{Href: iwcRoot(c) + "application"}
	respondHAL(c, http.StatusOK, Application{Listing: *listing, Links: links})
}

// System handles GET /iwc/system
func (ic *IWCController) System(c *gin.Context) {
	respondHAL(c, http.StatusOK, SystemInfo{
		Links:          selfLinks(c),
		Version:        IWCVersion,
		Name:           "catalog",
		ServiceVersion: ic.version,
	})
}
