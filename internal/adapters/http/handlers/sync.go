package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-sync-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-sync-service/internal/adapters/notify"
	"github.com/jsamuelsen/quote-sync-service/internal/app"
)

// NoticeLister exposes recently raised sync notices.
type NoticeLister interface {
	Recent() []notify.Notice
}

// SyncHandler handles manual sync and sync status endpoints.
type SyncHandler struct {
	service *app.SyncService
	notices NoticeLister
}

// NewSyncHandler creates a sync handler. notices may be nil.
func NewSyncHandler(service *app.SyncService, notices NoticeLister) *SyncHandler {
	return &SyncHandler{
		service: service,
		notices: notices,
	}
}

func toSyncStatusResponse(r app.SyncReport) dto.SyncStatusResponse {
	return dto.SyncStatusResponse{
		State:      string(r.State),
		Message:    r.Message,
		Conflicts:  r.Conflicts,
		Fetched:    r.Fetched,
		Total:      r.Total,
		Pushed:     r.Pushed,
		Error:      r.Error,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
}

// syncHTTPStatus maps a sync outcome to the status of POST /sync.
func syncHTTPStatus(state app.SyncState) int {
	switch state {
	case app.SyncFailed:
		return http.StatusServiceUnavailable
	case app.SyncSkipped:
		return http.StatusConflict
	default:
		return http.StatusOK
	}
}

// SyncNow handles POST /api/v1/sync.
// Runs one sync immediately. A sync already in flight yields 409 and a
// failed fetch yields 503; the body is the sync report in every case.
//
// @Summary Sync with the remote source
// @Tags sync
// @Produce json
// @Success 200 {object} dto.SyncStatusResponse
// @Failure 409 {object} dto.SyncStatusResponse
// @Failure 503 {object} dto.SyncStatusResponse
// @Router /api/v1/sync [post]
func (h *SyncHandler) SyncNow(c *gin.Context) {
	report := h.service.SyncOnce(c.Request.Context())

	c.JSON(syncHTTPStatus(report.State), toSyncStatusResponse(report))
}

// Status handles GET /api/v1/sync/status.
//
// @Summary Last sync report
// @Tags sync
// @Produce json
// @Success 200 {object} dto.SyncStatusResponse
// @Router /api/v1/sync/status [get]
func (h *SyncHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, toSyncStatusResponse(h.service.Status()))
}

// Notices handles GET /api/v1/sync/notices, oldest first.
func (h *SyncHandler) Notices(c *gin.Context) {
	out := []dto.NoticeResponse{}

	if h.notices != nil {
		for _, n := range h.notices.Recent() {
			out = append(out, dto.NoticeResponse{Kind: n.Kind, Message: n.Message, At: n.At})
		}
	}

	c.JSON(http.StatusOK, out)
}

// RegisterSyncRoutes registers read routes on rg and the trigger on write.
func (h *SyncHandler) RegisterSyncRoutes(rg, write *gin.RouterGroup) {
	rg.GET("/sync/status", h.Status)
	rg.GET("/sync/notices", h.Notices)

	write.POST("/sync", h.SyncNow)
}
