package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sellerdesk/stockwise/backend-go/internal/domain"
	"github.com/sellerdesk/stockwise/backend-go/internal/service"
)

const targetDateLayout = "2006-01-02"

type AnalysisHandler struct {
	service *service.AnalysisService
}

func NewAnalysisHandler(service *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

// storeID reads the tenant from the X-Store-ID header. Session
// validation happens upstream; the engine only needs the partition key.
func (h *AnalysisHandler) storeID(c *gin.Context) (string, bool) {
	storeID := strings.TrimSpace(c.GetHeader("X-Store-ID"))
	if storeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-Store-ID header"})
		return "", false
	}
	return storeID, true
}

func (h *AnalysisHandler) parseFilter(c *gin.Context) domain.ResultFilter {
	filter := domain.ResultFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Tab:    domain.ParseTab(c.DefaultQuery("tab", "all")),
	}

	if sortField := strings.TrimSpace(c.Query("sort_field")); sortField != "" {
		filter.SortField = strings.ToLower(sortField)
	}

	sortDir := strings.ToLower(strings.TrimSpace(c.Query("sort_direction")))
	if sortDir != "desc" {
		sortDir = "asc"
	}
	filter.SortDir = sortDir

	return filter
}

func (h *AnalysisHandler) GetItems(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	filter := h.parseFilter(c)
	results, err := h.service.Results(c.Request.Context(), storeID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute analysis", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": results,
		"total": len(results),
	})
}

func (h *AnalysisHandler) GetSummary(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	targetDate := time.Now().AddDate(0, 1, 0)
	if raw := strings.TrimSpace(c.Query("target_date")); raw != "" {
		parsed, err := time.Parse(targetDateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid target_date, expected YYYY-MM-DD"})
			return
		}
		targetDate = parsed
	}

	summary, err := h.service.Summary(c.Request.Context(), storeID, targetDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute summary", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *AnalysisHandler) Refresh(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	force := strings.EqualFold(c.DefaultQuery("force", "false"), "true")
	if err := h.service.Refresh(c.Request.Context(), storeID, force); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "refresh failed", "details": err.Error()})
		return
	}

	freshness, err := h.service.Freshness(c.Request.Context(), storeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read freshness", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "refreshed", "freshness": freshness})
}

func (h *AnalysisHandler) SaveCostInputs(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	var body struct {
		Edits []domain.CostInputEdit `json:"edits"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if len(body.Edits) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no edits provided"})
		return
	}

	if err := h.service.SaveCostInputs(c.Request.Context(), storeID, body.Edits); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cost inputs", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "saved", "edited": len(body.Edits)})
}

func (h *AnalysisHandler) GetFreshness(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	freshness, err := h.service.Freshness(c.Request.Context(), storeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read freshness", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"freshness": freshness})
}

func (h *AnalysisHandler) ClearCache(c *gin.Context) {
	storeID, ok := h.storeID(c)
	if !ok {
		return
	}

	if err := h.service.ClearCache(c.Request.Context(), storeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear cache", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
