package handlers

import (
	"errors"
	"net/http"
	"strconv"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/sjperalta/obra-api/internal/middleware"
	"github.com/sjperalta/obra-api/internal/repository"
	"github.com/sjperalta/obra-api/internal/services"
	"github.com/sjperalta/obra-api/pkg/logger"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// respondError maps service errors to HTTP responses. Anything unanticipated
// becomes a 500 with a generic message; the detail goes to the log and Sentry.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)

	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": verr.Details})
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrDuplicateContractNumber),
		errors.Is(err, services.ErrUnitNotFound),
		errors.Is(err, services.ErrUnitUnavailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidState):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.FromContext(c.Request.Context()).Error("request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}

		message := "An unexpected error occurred"
		if errors.Is(err, services.ErrTransactionFailure) {
			message = services.ErrTransactionFailure.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "message": message})
	}
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "message": err.Error()})
}

// bindAndValidate decodes the body (flat or wrapped in key) and checks binding tags.
// It writes the 400 response itself and reports false on failure.
func bindAndValidate(c *gin.Context, key string, req interface{}) bool {
	if err := BindNestedOrFlat(c, key, req); err != nil {
		badRequest(c, err)
		return false
	}
	details, err := validateRequest(req)
	if err != nil {
		badRequest(c, err)
		return false
	}
	if details != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": details})
		return false
	}
	return true
}

// parseID reads a positive numeric path parameter, answering 400 when it is not one
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// queryUint reads an optional numeric query parameter; malformed values are ignored
func queryUint(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

func parseListQuery(c *gin.Context) *repository.ListQuery {
	query := repository.NewListQuery()
	query.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage := c.Query("perPage")
	if perPage == "" {
		perPage = c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage))
	}
	query.PerPage, _ = strconv.Atoi(perPage)
	query.Search = c.Query("search")
	if query.Search == "" {
		query.Search = c.Query("search_term")
	}
	query.SortBy = c.Query("sortBy")
	query.SortDir = c.Query("sortDir")

	if query.Page < 1 {
		query.Page = 1
	}
	if query.PerPage < 1 {
		query.PerPage = defaultPerPage
	}
	if query.PerPage > maxPerPage {
		query.PerPage = maxPerPage
	}
	return query
}

func pagination(query *repository.ListQuery, total int64) gin.H {
	return gin.H{
		"page":       query.Page,
		"perPage":    query.PerPage,
		"total":      total,
		"totalPages": (total + int64(query.PerPage) - 1) / int64(query.PerPage),
	}
}

func requestMeta(c *gin.Context) services.RequestMeta {
	return services.RequestMeta{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		RequestID: middleware.GetRequestID(c),
	}
}
