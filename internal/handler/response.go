package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"blogapi/internal/auth"
	"blogapi/internal/errors"
)

// ContextKeyClaims is where the auth middleware stores the verified *auth.Claims.
const ContextKeyClaims = "user"

// MessageResponse is the envelope for operations that return no payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// errorResponse converts any service error into the JSON error envelope.
func errorResponse(err error) *echo.HTTPError {
	httpErr := errors.MapErrorToHTTP(err)
	he := echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	if httpErr.StatusCode >= http.StatusInternalServerError {
		he = he.SetInternal(err)
	}
	return he
}

// bindAndValidate decodes the body into req and runs struct validation.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return errorResponse(errors.Validation("invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return errorResponse(errors.Validation(err.Error()))
	}
	return nil
}

// callerClaims returns the identity verified by the auth middleware.
func callerClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get(ContextKeyClaims).(*auth.Claims)
	if !ok || claims == nil {
		return nil, errorResponse(errors.ErrInvalidToken)
	}
	return claims, nil
}
