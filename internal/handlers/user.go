package handlers

import (
	"net/http"

	"github.com/smp-team-2025/smp-backend/internal/middleware"
	"github.com/smp-team-2025/smp-backend/internal/models"
	"github.com/smp-team-2025/smp-backend/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type ProfileResponse struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

// Me godoc
// @Summary      Own profile
// @Tags         users
// @Produce      json
// @Success      200 {object} ProfileResponse
// @Security     BearerAuth
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.userService.GetByID(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
}

// MyQRCode godoc
// @Summary      Own QR badge payload
// @Description  Participants only; the frontend renders the code image
// @Tags         users
// @Produce      json
// @Success      200 {object} services.QRPayload
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /api/users/me/qr [get]
func (h *UserHandler) MyQRCode(c *gin.Context) {
	payload, err := h.userService.QRPayload(middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}
