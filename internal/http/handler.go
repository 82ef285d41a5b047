package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go.ngs.io/seaice-tsi/internal/adapter/archive"
	"go.ngs.io/seaice-tsi/internal/usecase"
)

// Handler handles HTTP requests for interface temperature retrievals.
type Handler struct {
	retrievalUC *usecase.RetrievalUseCase
}

// NewHandler creates a new HTTP handler.
func NewHandler(retrievalUC *usecase.RetrievalUseCase) *Handler {
	return &Handler{
		retrievalUC: retrievalUC,
	}
}

// GetGrid handles GET /v1/tsi/grid.
func (h *Handler) GetGrid(c *gin.Context) {
	day, ok := parseDate(c)
	if !ok {
		return
	}
	withValues, ok := parseValuesFlag(c)
	if !ok {
		return
	}

	grid, err := h.retrievalUC.Grid(day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if grid == nil {
		notFound(c, day)
		return
	}

	c.JSON(http.StatusOK, grid.View(day, withValues))
}

// GetField handles GET /v1/fields/:id.
func (h *Handler) GetField(c *gin.Context) {
	id := c.Param("id")
	if !archive.IsKnownField(id) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  fmt.Sprintf("unknown field %q", id),
			"fields": archive.KnownFields(),
		})
		return
	}
	day, ok := parseDate(c)
	if !ok {
		return
	}
	withValues, ok := parseValuesFlag(c)
	if !ok {
		return
	}

	field, err := h.retrievalUC.Field(day, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if field == nil {
		notFound(c, day)
		return
	}
	c.JSON(http.StatusOK, field.View(day, withValues))
}

// GetPoint handles GET /v1/tsi/point.
func (h *Handler) GetPoint(c *gin.Context) {
	day, ok := parseDate(c)
	if !ok {
		return
	}
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid latitude: %v", err)})
		return
	}
	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid longitude: %v", err)})
		return
	}

	req := usecase.PointRequest{Date: day, Lat: lat, Lon: lon}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.retrievalUC.Point(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if result == nil {
		notFound(c, day)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetLocation handles GET /v1/tsi/locate.
func (h *Handler) GetLocation(c *gin.Context) {
	day, ok := parseDate(c)
	if !ok {
		return
	}
	loc, err := h.retrievalUC.Locate(day)
	switch {
	case errors.Is(err, archive.ErrSensorGap), errors.Is(err, archive.ErrNoData):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"era":            loc.Era,
		"path":           loc.Path,
		"requested_date": loc.Requested.Format(time.DateOnly),
		"data_date":      loc.Date.Format(time.DateOnly),
	})
}

// GetEras handles GET /v1/eras.
func (h *Handler) GetEras(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"eras": []gin.H{
			{"era": archive.EraAMSRE, "format": "HDF4", "until": archive.AMSRECutoff.AddDate(0, 0, -1).Format(time.DateOnly)},
			{"era": archive.EraGap, "from": archive.AMSRECutoff.Format(time.DateOnly), "until": archive.AMSR2Cutoff.Format(time.DateOnly)},
			{"era": archive.EraAMSR2, "format": "HDF-EOS5", "from": archive.AMSR2Cutoff.AddDate(0, 0, 1).Format(time.DateOnly)},
		},
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func parseDate(c *gin.Context) (time.Time, bool) {
	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date parameter is required"})
		return time.Time{}, false
	}
	day, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid date (expected YYYY-MM-DD): %v", err)})
		return time.Time{}, false
	}
	return day, true
}

func parseValuesFlag(c *gin.Context) (bool, bool) {
	v := c.Query("values")
	if v == "" {
		return false, true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid values flag: %v", err)})
		return false, false
	}
	return b, true
}

func notFound(c *gin.Context, day time.Time) {
	msg := "no AMSR data found for date"
	if archive.EraForDate(day) == archive.EraGap {
		msg = "date is within AMSR-E and AMSR2 data gap"
	}
	c.JSON(http.StatusNotFound, gin.H{"error": msg, "date": day.Format(time.DateOnly)})
}
