package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ProtectedHandler serves the gated resource. By the time it runs, the Auth
// and RBAC middleware have already verified the token and the role claim.
type ProtectedHandler struct{}

func NewProtectedHandler() *ProtectedHandler {
	return &ProtectedHandler{}
}

// Show returns the protected resource.
//
// @Summary      Access the protected resource
// @Tags         protected
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /protected [get]
func (h *ProtectedHandler) Show(c echo.Context) error {
	return c.JSON(http.StatusOK, messageResponse{Message: "Access granted"})
}
