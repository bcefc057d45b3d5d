package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SEACET-CSE/edugroup-service/internal/services"
	"github.com/SEACET-CSE/edugroup-service/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type DashboardHandler struct {
	BaseHandler
	service       services.DashboardService
	exportService services.ExportService
}

func NewDashboardHandler(service services.DashboardService, exportService services.ExportService, logger utils.Logger) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler:   NewBaseHandler(logger),
		service:       service,
		exportService: exportService,
	}
}

// ===== DASHBOARD ENDPOINTS =====

// GetAdminStats returns the instructor overview
// @Summary Get admin statistics
// @Description Get student lock counts, per-topic fill levels and per-section submission counts.
// @Tags dashboard
// @Produce json
// @Success 200 {object} services.AdminStatsResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /dashboard/admin [get]
func (h *DashboardHandler) GetAdminStats(c *gin.Context) {
	h.LogRequest(c, "Getting admin stats")

	stats, err := h.service.GetAdminStats(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ===== EXPORT ENDPOINTS =====

// ExportGroups downloads the group roster as a workbook
// @Summary Export groups
// @Description Download the group roster as an xlsx workbook, one row per member.
// @Tags dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /export/groups [get]
func (h *DashboardHandler) ExportGroups(c *gin.Context) {
	h.LogRequest(c, "Exporting groups")

	data, err := h.exportService.ExportGroups(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.writeWorkbook(c, "groups", data)
}

// ExportUploads downloads the submission ledger as a workbook
// @Summary Export uploads
// @Description Download the submission ledger as an xlsx workbook, one row per student.
// @Tags dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Router /export/uploads [get]
func (h *DashboardHandler) ExportUploads(c *gin.Context) {
	h.LogRequest(c, "Exporting uploads")

	data, err := h.exportService.ExportUploads(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	h.writeWorkbook(c, "uploads", data)
}

func (h *DashboardHandler) writeWorkbook(c *gin.Context, name string, data []byte) {
	filename := fmt.Sprintf("%s-%s.xlsx", name, time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
