package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"rendezvous/internal/errors"
	"rendezvous/internal/service"
)

// AppointmentHandler bundles the booking, verification and query endpoints.
type AppointmentHandler struct {
	booking      service.BookingService
	verification service.VerificationService
	appointments service.AppointmentService
}

// NewAppointmentHandler creates the appointment handler layer.
func NewAppointmentHandler(
	booking service.BookingService,
	verification service.VerificationService,
	appointments service.AppointmentService,
) *AppointmentHandler {
	return &AppointmentHandler{
		booking:      booking,
		verification: verification,
		appointments: appointments,
	}
}

// VerifyRequest is the check-in request. ID is declared as any because
// scanners send it either as a JSON string or a number.
type VerifyRequest struct {
	ID         any    `json:"id"`
	Date       string `json:"date"`
	NomComplet string `json:"nom_complet"`
}

// Create godoc
// @Summary Book an appointment slot
// @Tags rendezvous
// @Accept json
// @Produce json
// @Param request body service.BookingInput true "Booking data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /rendezvous [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	var in service.BookingInput
	if err := c.Bind(&in); err != nil {
		return respondError(c, errors.ErrMissingFields)
	}

	appt, err := h.booking.CreateAppointment(c.Request().Context(), &in)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Rendez-vous créé avec succès",
		"id":      appt.ID,
		"qr_code": appt.QRCode,
	})
}

// Verify godoc
// @Summary Verify an appointment by id, date or name
// @Tags rendezvous
// @Accept json
// @Produce json
// @Param request body VerifyRequest true "Verification criteria"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /rendezvous/verify [post]
func (h *AppointmentHandler) Verify(c echo.Context) error {
	var req VerifyRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, errors.ErrMissingCriteria)
	}

	in := service.VerifyInput{
		ID:         rawIDToString(req.ID),
		Date:       req.Date,
		NomComplet: req.NomComplet,
	}

	res, err := h.verification.VerifyAppointment(c.Request().Context(), &in)
	if err != nil {
		return respondError(c, err)
	}

	appt := res.Appointment
	if res.AlreadyVerified {
		return c.JSON(http.StatusOK, echo.Map{
			"message":      "Déjà vérifié",
			"nom_complet":  appt.NomComplet,
			"raison":       appt.Raison,
			"date":         appt.DateRendezVous,
			"heure":        appt.HeureRendezVous,
			"statut":       appt.Statut,
			"deja_verifie": true,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":      "Rendez-vous vérifié",
		"nom_complet":  appt.NomComplet,
		"raison":       appt.Raison,
		"date":         appt.DateRendezVous,
		"heure":        appt.HeureRendezVous,
		"statut":       appt.Statut,
		"qr_code_vert": appt.QRCode,
	})
}

// List godoc
// @Summary List appointments with pagination
// @Tags rendezvous
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} service.AppointmentPage
// @Router /rendezvous [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.appointments.List(c.Request().Context(), page, limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

// Get godoc
// @Summary Fetch one appointment
// @Tags rendezvous
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} model.Appointment
// @Failure 404 {object} errors.ErrorResponse
// @Router /rendezvous/{id} [get]
func (h *AppointmentHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	appt, err := h.appointments.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, appt)
}

// Update godoc
// @Summary Partially update an appointment
// @Tags rendezvous
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param request body service.UpdateInput true "Fields to update"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /rendezvous/{id} [put]
func (h *AppointmentHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var in service.UpdateInput
	if err := c.Bind(&in); err != nil {
		return respondError(c, errors.ErrNoFieldsToUpdate)
	}

	if err := h.appointments.Update(c.Request().Context(), id, &in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Rendez-vous mis à jour avec succès"})
}

// Delete godoc
// @Summary Delete an appointment
// @Tags rendezvous
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /rendezvous/{id} [delete]
func (h *AppointmentHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	if err := h.appointments.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Rendez-vous supprimé avec succès"})
}

// BookedSlots godoc
// @Summary Reserved times for a date
// @Tags rendezvous
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {array} string
// @Router /rendezvous/booked-slots/{date} [get]
func (h *AppointmentHandler) BookedSlots(c echo.Context) error {
	times, err := h.appointments.BookedSlots(c.Request().Context(), c.Param("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, times)
}

// BookedDates godoc
// @Summary Dates whose daily capacity is exhausted
// @Tags rendezvous
// @Produce json
// @Success 200 {array} service.BookedDate
// @Router /rendezvous/booked-dates [get]
func (h *AppointmentHandler) BookedDates(c echo.Context) error {
	dates, err := h.appointments.BookedDates(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dates)
}

// AvailableDates godoc
// @Summary Dates with remaining capacity
// @Tags rendezvous
// @Produce json
// @Success 200 {array} service.AvailableDate
// @Router /rendezvous/available-dates [get]
func (h *AppointmentHandler) AvailableDates(c echo.Context) error {
	dates, err := h.appointments.AvailableDates(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, dates)
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "Identifiant invalide",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}

// rawIDToString accepts the id as either a JSON string or number.
func rawIDToString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	default:
		return ""
	}
}
