package handlers

import (
	"net/http"

	"github.com/smp-team-2025/smp-backend/internal/middleware"
	"github.com/smp-team-2025/smp-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
}

func NewAnnouncementHandler(announcementService *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// Create godoc
// @Summary      Post an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        request body services.CreateAnnouncementInput true "Announcement data"
// @Success      201 {object} models.StaffAnnouncement
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var input services.CreateAnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	announcement, err := h.announcementService.Create(middleware.UserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, announcement)
}

// List godoc
// @Summary      List announcements visible to the caller
// @Tags         announcements
// @Produce      json
// @Param        eventId query int false "Filter by event"
// @Param        sessionId query int false "Filter by session"
// @Success      200 {array} models.StaffAnnouncement
// @Security     BearerAuth
// @Router       /api/announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	announcements, err := h.announcementService.List(
		queryUint(c, "eventId"), queryUint(c, "sessionId"), middleware.Role(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, announcements)
}

// Update godoc
// @Summary      Edit an announcement
// @Description  Authors may edit their own posts, organizers any post
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        id path int true "Announcement ID"
// @Param        request body services.UpdateAnnouncementInput true "Fields to change"
// @Success      200 {object} models.StaffAnnouncement
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/announcements/{id} [put]
func (h *AnnouncementHandler) Update(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var input services.UpdateAnnouncementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	announcement, err := h.announcementService.Update(id, middleware.UserID(c), middleware.Role(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, announcement)
}

// Delete godoc
// @Summary      Delete an announcement
// @Tags         announcements
// @Produce      json
// @Param        id path int true "Announcement ID"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	if err := h.announcementService.Delete(id, middleware.UserID(c), middleware.Role(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "announcement deleted"})
}

type AttachmentRequest struct {
	URL      string `json:"url" binding:"required"`
	MimeType string `json:"mime_type" binding:"required"`
}

// AttachFile godoc
// @Summary      Attach an uploaded file to an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        id path int true "Announcement ID"
// @Param        request body AttachmentRequest true "File reference"
// @Success      201 {object} models.AnnouncementAttachment
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/announcements/{id}/attachments [post]
func (h *AnnouncementHandler) AttachFile(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req AttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	attachment, err := h.announcementService.AttachFile(id, req.URL, req.MimeType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attachment)
}

// ListComments godoc
// @Summary      Comments of an announcement
// @Tags         announcements
// @Produce      json
// @Param        id path int true "Announcement ID"
// @Success      200 {array} models.AnnouncementComment
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/announcements/{id}/comments [get]
func (h *AnnouncementHandler) ListComments(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	comments, err := h.announcementService.ListComments(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

type CommentRequest struct {
	Body string `json:"body" binding:"required"`
}

// CreateComment godoc
// @Summary      Comment on an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        id path int true "Announcement ID"
// @Param        request body CommentRequest true "Comment body"
// @Success      201 {object} models.AnnouncementComment
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/announcements/{id}/comments [post]
func (h *AnnouncementHandler) CreateComment(c *gin.Context) {
	id, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	comment, err := h.announcementService.CreateComment(id, middleware.UserID(c), req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// UpdateComment godoc
// @Summary      Edit a comment
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        commentId path int true "Comment ID"
// @Param        request body CommentRequest true "New body"
// @Success      200 {object} models.AnnouncementComment
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/announcements/comments/{commentId} [put]
func (h *AnnouncementHandler) UpdateComment(c *gin.Context) {
	commentID, ok := paramUint(c, "commentId")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	comment, err := h.announcementService.UpdateComment(commentID, middleware.UserID(c), middleware.Role(c), req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// DeleteComment godoc
// @Summary      Delete a comment
// @Tags         announcements
// @Produce      json
// @Param        commentId path int true "Comment ID"
// @Success      200 {object} MessageResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/announcements/comments/{commentId} [delete]
func (h *AnnouncementHandler) DeleteComment(c *gin.Context) {
	commentID, ok := paramUint(c, "commentId")
	if !ok {
		return
	}

	if err := h.announcementService.DeleteComment(commentID, middleware.UserID(c), middleware.Role(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "comment deleted"})
}
