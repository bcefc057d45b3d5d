package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SEACET-CSE/edugroup-service/internal/services"
	"github.com/SEACET-CSE/edugroup-service/internal/utils"
)

type UploadHandler struct {
	BaseHandler
	service services.UploadService
}

func NewUploadHandler(service services.UploadService, logger utils.Logger) *UploadHandler {
	return &UploadHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== SECTION ENDPOINTS =====

// ListSections returns the fixed milestone catalog
// @Summary List project sections
// @Tags uploads
// @Produce json
// @Success 200 {array} models.ProjectSection
// @Router /sections [get]
func (h *UploadHandler) ListSections(c *gin.Context) {
	h.LogRequest(c, "Listing sections")

	c.JSON(http.StatusOK, h.service.GetSections())
}

// ===== UPLOAD ENDPOINTS =====

// UploadFile records a submission for a section
// @Summary Record a submission
// @Description Record a file reference for the current student and section. Re-uploading replaces the file and keeps any instructor remark.
// @Tags uploads
// @Accept json
// @Produce json
// @Param request body services.UploadFileRequest true "Submission payload"
// @Success 200 {object} models.SectionUpload
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /uploads [post]
func (h *UploadHandler) UploadFile(c *gin.Context) {
	h.LogRequest(c, "Recording upload")

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	var req services.UploadFileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	upload, err := h.service.UploadFile(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, upload)
}

// DeleteUpload retracts a submission
// @Summary Retract a submission
// @Description Remove the file for the current student and section. If an instructor remark exists the record survives with the file fields cleared; otherwise it is removed. Deleting a missing record succeeds.
// @Tags uploads
// @Produce json
// @Param section_id path int true "Section ID"
// @Success 204 "Retracted"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /uploads/{section_id} [delete]
func (h *UploadHandler) DeleteUpload(c *gin.Context) {
	h.LogRequest(c, "Retracting upload")

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	sectionID, ok := h.parseSectionID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteUpload(c.Request.Context(), userID, sectionID); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetMyUploads returns the current student's ledger
// @Summary Get my uploads
// @Tags uploads
// @Produce json
// @Success 200 {array} models.SectionUpload
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /uploads/me [get]
func (h *UploadHandler) GetMyUploads(c *gin.Context) {
	h.LogRequest(c, "Getting current student's uploads")

	userID, ok := h.currentUserID(c)
	if !ok {
		return
	}

	uploads, err := h.service.GetUploadsForStudent(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, uploads)
}

// ListUploads returns the full submission ledger
// @Summary List all uploads
// @Tags uploads
// @Produce json
// @Success 200 {array} models.SectionUpload
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /uploads [get]
func (h *UploadHandler) ListUploads(c *gin.Context) {
	h.LogRequest(c, "Listing uploads")

	uploads, err := h.service.GetAllUploads(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, uploads)
}

// AddRemark attaches an instructor remark to a student's section
// @Summary Add a remark
// @Description Attach a remark to a (student, section) cell. The record is created if the student has not uploaded yet.
// @Tags uploads
// @Accept json
// @Produce json
// @Param student_id path string true "Student ID"
// @Param section_id path int true "Section ID"
// @Param request body services.AddRemarkRequest true "Remark"
// @Success 200 {object} models.SectionUpload
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Router /uploads/{student_id}/{section_id}/remark [put]
func (h *UploadHandler) AddRemark(c *gin.Context) {
	h.LogRequest(c, "Adding remark")

	sectionID, ok := h.parseSectionID(c)
	if !ok {
		return
	}

	var req services.AddRemarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	upload, err := h.service.AddRemark(c.Request.Context(), c.Param("student_id"), sectionID, req.Remark)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, upload)
}

// ===== HELPER METHODS =====

func (h *UploadHandler) parseSectionID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("section_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid section id",
			Details: "ID must be a valid number",
		})
		return 0, false
	}
	return id, true
}
