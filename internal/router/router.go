package router

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"rendezvous/internal/auth"
	"rendezvous/internal/config"
	"rendezvous/internal/errors"
	"rendezvous/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	appointmentHandler *handler.AppointmentHandler,
	authHandler *handler.AuthHandler,
	directorHandler *handler.DirectorHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	e.Validator = &CustomValidator{validator: validator.New()}
	e.HTTPErrorHandler = httpErrorHandler

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status":  "OK",
			"message": "Serveur fonctionne correctement",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireJWT := echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	})

	api := e.Group("/api")

	rdv := api.Group("/rendezvous")
	rdv.POST("", appointmentHandler.Create)
	rdv.POST("/verify", appointmentHandler.Verify)
	rdv.GET("", appointmentHandler.List)
	rdv.GET("/booked-dates", appointmentHandler.BookedDates)
	rdv.GET("/available-dates", appointmentHandler.AvailableDates)
	rdv.GET("/booked-slots/:date", appointmentHandler.BookedSlots)
	rdv.GET("/:id", appointmentHandler.Get)
	rdv.PUT("/:id", appointmentHandler.Update)
	rdv.DELETE("/:id", appointmentHandler.Delete)

	staff := api.Group("/auth")
	staff.POST("/register", authHandler.Register)
	staff.PUT("/approve/:id", authHandler.Approve)
	staff.POST("/login", authHandler.Login)
	staff.POST("/refresh", authHandler.Refresh)
	staff.POST("/logout", authHandler.Logout)
	staff.GET("/users", authHandler.Users)
	staff.GET("/profile", authHandler.Profile, requireJWT)

	dg := api.Group("/auth/dg")
	dg.POST("/register", directorHandler.Register)
	dg.POST("/login", directorHandler.Login)

	director := api.Group("/director", requireJWT)
	director.GET("/appointments", directorHandler.Appointments)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// httpErrorHandler renders every error through the JSON envelope, including
// the unmatched-route fallback.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	he, ok := err.(*echo.HTTPError)
	if !ok {
		_ = c.JSON(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "Erreur interne du serveur",
			Code:  "INTERNAL_ERROR",
		})
		return
	}

	if resp, ok := he.Message.(errors.ErrorResponse); ok {
		_ = c.JSON(he.Code, resp)
		return
	}

	if he.Code == http.StatusNotFound {
		_ = c.JSON(http.StatusNotFound, errors.ErrorResponse{
			Error: "Endpoint non trouvé",
			Code:  "NOT_FOUND",
		})
		return
	}

	_ = c.JSON(he.Code, errors.ErrorResponse{
		Error: fmt.Sprintf("%v", he.Message),
		Code:  "ERROR",
	})
}
