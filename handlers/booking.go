package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"medibook/models"
	"medibook/services/booking"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking core over HTTP for the conversational
// front end.
type BookingHandler struct {
	Service  booking.BookingService
	Cache    *redis.Client // optional; nil disables search caching
	CacheTTL time.Duration
}

// NewBookingHandler wires the handler.
func NewBookingHandler(svc booking.BookingService, cache *redis.Client, cacheTTL time.Duration) *BookingHandler {
	return &BookingHandler{
		Service:  svc,
		Cache:    cache,
		CacheTTL: cacheTTL,
	}
}

// SearchDoctors handles POST /api/appointments/search.
func (h *BookingHandler) SearchDoctors(c *gin.Context) {
	var input struct {
		Specialty string `json:"specialty"`
		Location  string `json:"location"`
		Date      string `json:"date,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.Specialty == "" || input.Location == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   booking.CodeIncompleteRequest,
			"details": "specialty and location are required",
		})
		return
	}

	cacheKey := searchCacheKey(input.Specialty, input.Location, input.Date)
	if cached, ok := h.cachedSearch(c.Request.Context(), cacheKey); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	result, err := h.Service.SearchDoctors(c.Request.Context(), input.Specialty, input.Location, input.Date)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	h.cacheSearch(c.Request.Context(), cacheKey, result)
	c.JSON(http.StatusOK, result)
}

// EstimateCost handles GET /api/appointments/cost?provider=X.
func (h *BookingHandler) EstimateCost(c *gin.Context) {
	provider := c.Query("provider")
	c.JSON(http.StatusOK, h.Service.EstimateCost(provider))
}

// BookAppointment handles POST /api/appointments/book.
func (h *BookingHandler) BookAppointment(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	result, err := h.Service.BookAppointment(c.Request.Context(), req)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// respondBookingError maps the error taxonomy onto HTTP statuses.
func respondBookingError(c *gin.Context, err error) {
	code := booking.ErrorCode(err)
	status := http.StatusInternalServerError
	switch code {
	case booking.CodeIncompleteRequest, booking.CodePastDateRequested:
		status = http.StatusBadRequest
	case booking.CodeDoctorNotFound, booking.CodePatientNotFound:
		status = http.StatusNotFound
	case booking.CodeSlotUnavailable, booking.CodeReservationConflict:
		status = http.StatusConflict
	case booking.CodeStoreUnavailable:
		status = http.StatusServiceUnavailable
	}

	if status >= http.StatusInternalServerError {
		utils.GetLogger().Error("booking request failed", zap.String("code", code), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": code, "details": err.Error()})
}

func searchCacheKey(specialty, location, date string) string {
	return fmt.Sprintf("search:%s|%s|%s",
		strings.ToLower(specialty), strings.ToLower(location), date)
}

// cachedSearch returns a previously cached search result. Staleness within
// the TTL is acceptable because reservation re-validates availability.
func (h *BookingHandler) cachedSearch(ctx context.Context, key string) (*models.SearchResult, bool) {
	if h.Cache == nil {
		return nil, false
	}
	data, err := h.Cache.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var result models.SearchResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, false
	}
	return &result, true
}

func (h *BookingHandler) cacheSearch(ctx context.Context, key string, result *models.SearchResult) {
	if h.Cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := h.Cache.Set(ctx, key, data, h.CacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache search result", zap.String("key", key), zap.Error(err))
	}
}
