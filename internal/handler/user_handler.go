package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "blogapi/internal/errors"
	"blogapi/internal/model"
	"blogapi/internal/service"
)

// UserHandler bundles profile handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// ProfileResponse wraps the caller's user record, password blanked.
type ProfileResponse struct {
	Success bool        `json:"success"`
	User    *model.User `json:"user"`
}

// Profile godoc
// @Summary Get the caller's profile
// @Description A token whose user no longer exists still gets 200, with success=false.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	claims, err := callerClaims(c)
	if err != nil {
		return err
	}

	user, err := h.svc.GetProfile(c.Request().Context(), claims.UserID)
	if err != nil {
		// TODO: answer 404 once the web client stops relying on the 200.
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return c.JSON(http.StatusOK, MessageResponse{
				Success: false,
				Message: "invalid signature",
			})
		}
		return errorResponse(err)
	}

	return c.JSON(http.StatusOK, ProfileResponse{Success: true, User: user})
}
