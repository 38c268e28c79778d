package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"blogapi/docs"
	"blogapi/internal/auth"
	"blogapi/internal/config"
	apperrors "blogapi/internal/errors"
	"blogapi/internal/handler"
	"blogapi/internal/logging"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log logging.Logger,
	verifier *auth.Verifier,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
) {
	e.HTTPErrorHandler = errorHandler(e, log)

	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.Validator = &CustomValidator{validator: validator.New()}

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireAuth := echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.ContextKeyClaims,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return verifier.Verify(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			resp := apperrors.MapErrorToHTTP(apperrors.ErrInvalidToken)
			return echo.NewHTTPError(resp.StatusCode, resp.ToErrorResponse())
		},
	})

	posts := e.Group("/posts")
	posts.GET("/getPosts", postHandler.GetPosts)
	posts.GET("/getPost/:id", postHandler.GetPost)
	posts.POST("/addPost", postHandler.AddPost, requireAuth)
	posts.PATCH("/updatePost/:id", postHandler.UpdatePost, requireAuth)
	posts.DELETE("/deletePost/:id", postHandler.DeletePost, requireAuth)
	posts.POST("/addComment/:id", postHandler.AddComment, requireAuth)
	posts.DELETE("/deleteComment/:id/:commentId", postHandler.DeleteComment, requireAuth)
	posts.DELETE("/deleteComment/:id/index/:index", postHandler.DeleteCommentAt, requireAuth)

	users := e.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/profile", userHandler.Profile, requireAuth)
	users.POST("/logout", authHandler.Logout, requireAuth)
}

func requestLogger(log logging.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				args = append(args, "error", v.Error.Error())
			}
			log.Info(c.Request().Context(), "request", args...)
			return nil
		},
	})
}

// errorHandler renders every error in the {success:false, message, code} envelope
// and logs server-side failures.
func errorHandler(e *echo.Echo, log logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var he *echo.HTTPError
		if !errors.As(err, &he) {
			resp := apperrors.MapErrorToHTTP(err)
			he = echo.NewHTTPError(resp.StatusCode, resp.ToErrorResponse()).SetInternal(err)
		}

		if msg, ok := he.Message.(string); ok {
			// Raised by echo itself: unknown route, wrong method, oversized body.
			he = &echo.HTTPError{
				Code: he.Code,
				Message: apperrors.ErrorResponse{
					Success: false,
					Message: msg,
					Code:    strings.ToUpper(strings.ReplaceAll(http.StatusText(he.Code), " ", "_")),
				},
				Internal: he.Internal,
			}
		}

		if he.Code >= http.StatusInternalServerError {
			cause := err
			if he.Internal != nil {
				cause = he.Internal
			}
			log.Error(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", he.Code,
				"error", cause.Error(),
			)
		}

		e.DefaultHTTPErrorHandler(he, c)
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
