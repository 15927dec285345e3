package http

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// HAL responses for the IWC endpoints.

const halContentType = "application/hal+json"

type halLink struct {
	Href string `json:"href"`
}

type halLinks map[string]halLink

// iwcRoot returns the absolute URL of the /iwc/ tree for the request,
// honouring X-Forwarded-Proto behind a proxy.
func iwcRoot(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return scheme + "://" + c.Request.Host + "/iwc/"
}

// selfLinks links the current request.
func selfLinks(c *gin.Context) halLinks {
	root := strings.TrimSuffix(iwcRoot(c), "/iwc/")
	return halLinks{"self": {Href: root + c.Request.URL.Path}}
}

func respondHAL(c *gin.Context, status int, body any) {
	c.Header("Content-Type", halContentType)
	c.JSON(status, body)
}
