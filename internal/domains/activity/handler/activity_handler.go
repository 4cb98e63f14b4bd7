package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"noteboard-backend/internal/domains/activity/service"
	"noteboard-backend/internal/shared/response"
	"noteboard-backend/pkg/logger"
)

// ================================================
// ACTIVITY HANDLER
// ================================================

type ActivityHandler struct {
	activityService service.ActivityService
}

func NewActivityHandler(activityService service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activityService: activityService}
}

// ListActivity handles GET /activity (public feed)
func (h *ActivityHandler) ListActivity(c *gin.Context) {
	// STEP 1: PARSE LIMIT
	// Anything unparseable falls back to the default feed size. The
	// clamp here keeps the reported meta honest, the service clamps
	// again for its other callers.
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultFeedLimit)))
	if err != nil || limit <= 0 {
		limit = service.DefaultFeedLimit
	}
	if limit > service.MaxFeedLimit {
		limit = service.MaxFeedLimit
	}

	// STEP 2: FETCH FEED
	feed, err := h.activityService.ListRecent(c.Request.Context(), limit)
	if err != nil {
		logger.Error("list activity failed", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	// STEP 3: SUCCESS
	response.SuccessWithMeta(c, http.StatusOK, feed, &response.Meta{
		Limit: limit,
		Count: len(feed),
	})
}

// ExportActivity handles GET /activity/export (.xlsx download)
func (h *ActivityHandler) ExportActivity(c *gin.Context) {
	// STEP 1: PARSE LIMIT
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.DefaultFeedLimit)))
	if err != nil || limit <= 0 {
		limit = service.DefaultFeedLimit
	}

	// STEP 2: BUILD WORKBOOK
	file, err := h.activityService.ExportToExcel(c.Request.Context(), limit)
	if err != nil {
		logger.Error("export activity failed", err)
		response.InternalServerError(c, "Internal server error")
		return
	}

	// STEP 3: STREAM FILE
	filename := fmt.Sprintf("activity_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := file.Write(c.Writer); err != nil {
		// Headers are already on the wire, all we can do is log
		logger.Error("stream activity export failed", err)
	}
}
