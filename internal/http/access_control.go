package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/logger"
)

type AccessControlController struct {
	reader AccessControlReader
	log    logger.Logger
}

func NewAccessControlController(reader AccessControlReader, log logger.Logger) *AccessControlController {
	return &AccessControlController{reader: reader, log: log}
}

// List handles GET /api/access_control
func (ac *AccessControlController) List(c *gin.Context) {
	levels, err := ac.reader.GetAll(c.Request.Context())
	if err != nil {
		respondInternalError(c, ac.log, err, "list access controls")
		return
	}
	c.JSON(http.StatusOK, levels)
}

// Get handles GET /api/access_control/:title
func (ac *AccessControlController) Get(c *gin.Context) {
	level, err := ac.reader.GetByTitle(c.Request.Context(), c.Param("title"))
	if err != nil {
		respondError(c, ac.log, err, "get access control")
		return
	}
	c.JSON(http.StatusOK, level)
}
