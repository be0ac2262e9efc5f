package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rendezvous/internal/service"
)

// DirectorHandler handles director-general endpoints.
type DirectorHandler struct {
	directorService service.DirectorService
}

// NewDirectorHandler creates a new director handler.
func NewDirectorHandler(directorService service.DirectorService) *DirectorHandler {
	return &DirectorHandler{directorService: directorService}
}

// DirectorRegisterRequest represents a director-general signup.
type DirectorRegisterRequest struct {
	Nom        string `json:"nom" validate:"required"`
	Prenom     string `json:"prenom" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	MotDePasse string `json:"mot_de_passe" validate:"required,min=6"`
	Telephone  string `json:"telephone"`
}

// DirectorLoginRequest represents a director-general login.
type DirectorLoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	MotDePasse string `json:"mot_de_passe" validate:"required"`
}

// Register godoc
// @Summary Register a director-general account
// @Tags auth-dg
// @Accept json
// @Produce json
// @Param request body DirectorRegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /auth/dg/register [post]
func (h *DirectorHandler) Register(c echo.Context) error {
	var req DirectorRegisterRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Nom, prénom, email et mot de passe requis")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "Nom, prénom, email et mot de passe requis")
	}

	d, err := h.directorService.Register(c.Request().Context(), &service.DirectorRegisterInput{
		Nom:        req.Nom,
		Prenom:     req.Prenom,
		Email:      req.Email,
		MotDePasse: req.MotDePasse,
		Telephone:  req.Telephone,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Compte Directeur Général créé avec succès",
		"dg_id":   d.ID,
		"nom":     d.Nom,
		"prenom":  d.Prenom,
		"email":   d.Email,
	})
}

// Login godoc
// @Summary Log a director-general in
// @Tags auth-dg
// @Accept json
// @Produce json
// @Param request body DirectorLoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/dg/login [post]
func (h *DirectorHandler) Login(c echo.Context) error {
	var req DirectorLoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Email et mot de passe requis")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "Email et mot de passe requis")
	}

	token, d, err := h.directorService.Login(c.Request().Context(), req.Email, req.MotDePasse)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Connexion réussie",
		"token":   token,
		"dg":      d,
	})
}

// Appointments godoc
// @Summary Dashboard listing of all appointments
// @Tags director
// @Produce json
// @Security BearerAuth
// @Success 200 {array} repository.DashboardEntry
// @Failure 401 {object} errors.ErrorResponse
// @Router /director/appointments [get]
func (h *DirectorHandler) Appointments(c echo.Context) error {
	entries, err := h.directorService.Appointments(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}
