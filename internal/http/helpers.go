package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/auth"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/library"
	"github.com/mrlokans/catalog/internal/logger"
)

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest       = "bad_request"
	CodeValidationFailed = "validation_failed"
	CodeNotFound         = "not_found"
	CodeInternal         = "internal_error"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// ProblemDetail is one entry of a validation_failed response.
type ProblemDetail struct {
	Kind    library.Kind `json:"kind"`
	Code    string       `json:"code"`
	Message string       `json:"message"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: CodeBadRequest})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: message, Code: CodeNotFound})
}

// respondProblems sends every problem of a rejected request as a 400.
func respondProblems(c *gin.Context, problems library.Problems) {
	details := make([]ProblemDetail, len(problems))
	for i, p := range problems {
		details[i] = ProblemDetail{Kind: p.Kind, Code: p.Code, Message: p.Message}
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   problems.Error(),
		Code:    CodeValidationFailed,
		Details: details,
	})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, log logger.Logger, err error, operation string) {
	log.Error("Internal error",
		logger.String("operation", operation),
		logger.String("request_id", requestID(c)),
		logger.Error(err),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: CodeInternal})
}

// respondError maps a service error to its HTTP status.
func respondError(c *gin.Context, log logger.Logger, err error, operation string) {
	var problems library.Problems
	switch {
	case errors.As(err, &problems):
		respondProblems(c, problems)
	case errors.Is(err, database.ErrNotFound):
		respondNotFound(c, err.Error())
	default:
		respondInternalError(c, log, err, operation)
	}
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// currentUsername returns the username resolved by the auth middleware.
func currentUsername(c *gin.Context) string {
	return auth.GetUsername(c)
}
