package events

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polyfeed/polyfeed/app/api"
	"github.com/polyfeed/polyfeed/internal/validator"
	"github.com/polyfeed/polyfeed/models"
)

// Handler handles HTTP requests for events
type Handler struct {
	service Service
	config  *Config
}

// NewHandler creates a new events handler
func NewHandler(service Service, config *Config) *Handler {
	return &Handler{
		service: service,
		config:  config,
	}
}

// GetEvents handles GET /events
func (h *Handler) GetEvents(c *gin.Context) {
	offset, limit, v := h.parsePageParams(c)
	if !v.Valid() {
		api.ValidationErrorResponse(c, v.Errors)
		return
	}

	page, err := h.service.GetEvents(c.Request.Context(), offset, limit)
	if err != nil {
		api.InternalErrorResponse(c, "Failed to fetch events")
		return
	}
	api.SuccessResponseWithMeta(c, http.StatusOK, "", page.Events, page.Pagination)
}

// GetEventByID handles GET /events/:id
func (h *Handler) GetEventByID(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		api.BadRequestResponse(c, "Event ID is required")
		return
	}

	event, err := h.service.GetEventByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Event")
			return
		}
		api.InternalErrorResponse(c, "Failed to fetch event")
		return
	}
	api.SuccessResponse(c, http.StatusOK, "", event)
}

// SearchEvents handles GET /events/search
func (h *Handler) SearchEvents(c *gin.Context) {
	offset, limit, v := h.parsePageParams(c)
	query := c.Query("q")
	v.Check(validator.NotBlank(query), "q", "Search query is required")
	if !v.Valid() {
		api.ValidationErrorResponse(c, v.Errors)
		return
	}

	page, err := h.service.SearchEvents(c.Request.Context(), query, offset, limit)
	if err != nil {
		api.InternalErrorResponse(c, "Failed to search events")
		return
	}
	api.SuccessResponseWithMeta(c, http.StatusOK, "", page.Events, page.Pagination)
}

// AddInjectedURL handles POST /injected-urls
func (h *Handler) AddInjectedURL(c *gin.Context) {
	var req AddInjectedURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.ValidationErrorResponse(c, err.Error())
		return
	}

	entry, err := h.service.AddInjectedURL(req.URL)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInvalidURL):
			api.BadRequestResponse(c, "URL must be absolute with an http or https scheme")
		case errors.Is(err, ErrRegistryFull):
			api.ConflictResponse(c, "Injected URL limit reached")
		default:
			api.InternalErrorResponse(c, "Failed to register URL")
		}
		return
	}
	api.CreatedResponse(c, "URL registered", entry)
}

// ListInjectedURLs handles GET /injected-urls
func (h *Handler) ListInjectedURLs(c *gin.Context) {
	urls := h.service.ListInjectedURLs()
	api.ListResponse(c, "", InjectedURLListResponse{URLs: urls}, len(urls))
}

// RemoveInjectedURL handles DELETE /injected-urls/:id
func (h *Handler) RemoveInjectedURL(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.RemoveInjectedURL(id); err != nil {
		if errors.Is(err, models.ErrRecordNotFound) {
			api.NotFoundResponse(c, "Injected URL")
			return
		}
		api.InternalErrorResponse(c, "Failed to remove URL")
		return
	}
	api.DeletedResponse(c, "URL removed")
}

// parsePageParams reads offset and limit from the query string. Missing
// values fall back to the configured defaults; malformed or out-of-range
// values are validation errors rather than silent clamps.
func (h *Handler) parsePageParams(c *gin.Context) (offset, limit int, v *validator.Validator) {
	v = validator.New()

	offset = 0
	if raw := c.Query("offset"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			v.AddError("offset", "Offset must be a non-negative integer")
		} else {
			offset = parsed
		}
	}

	limit = h.config.DefaultPageLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			v.AddError("limit", "Limit must be an integer")
		} else {
			v.Check(validator.Between(parsed, 1, h.config.MaxPageLimit), "limit",
				"Limit must be between 1 and "+strconv.Itoa(h.config.MaxPageLimit))
			limit = parsed
		}
	}
	return offset, limit, v
}
