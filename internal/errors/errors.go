package errors

import (
	"errors"
	"net/http"
)

// Domain errors for the booking workflow. User-facing messages are French to
// match the frontend this API serves.
var (
	// ErrMissingFields is returned when a required booking field is absent.
	ErrMissingFields = errors.New("Champs requis manquants")
	// ErrInvalidTimeFormat is returned when a time is not HH:MM or HH:MM:SS.
	ErrInvalidTimeFormat = errors.New("Format d'heure invalide")
	// ErrInvalidDateFormat is returned when a date is not YYYY-MM-DD shaped.
	ErrInvalidDateFormat = errors.New("Format de date invalide")
	// ErrInvalidPhoneFormat is returned when a phone number fails validation.
	ErrInvalidPhoneFormat = errors.New("Format de téléphone invalide")
	// ErrInvalidEmailFormat is returned when an email fails validation.
	ErrInvalidEmailFormat = errors.New("Format d'email invalide")
	// ErrDateFull is returned when a date already holds the daily maximum.
	ErrDateFull = errors.New("Cette date a atteint le nombre maximum de rendez-vous (2 par jour).")
	// ErrNewDateFull is returned when an update targets a date that is full.
	ErrNewDateFull = errors.New("La nouvelle date a atteint le nombre maximum de rendez-vous (2 par jour).")
	// ErrSlotTaken is returned when the exact (date, time) slot is reserved.
	ErrSlotTaken = errors.New("Ce créneau est déjà réservé.")
	// ErrAppointmentNotFound is returned when no appointment matches.
	ErrAppointmentNotFound = errors.New("Rendez-vous non trouvé")
	// ErrNoFieldsToUpdate is returned when an update carries no fields.
	ErrNoFieldsToUpdate = errors.New("Aucun champ à mettre à jour")
	// ErrMissingCriteria is returned when a verification has no usable criterion.
	ErrMissingCriteria = errors.New("ID, date ou nom_complet requis")

	// ErrUserNotFound is returned when no user matches the given username.
	ErrUserNotFound = errors.New("Utilisateur non trouvé")
	// ErrAccountNotApproved is returned when a user logs in before approval.
	ErrAccountNotApproved = errors.New("Compte non approuvé")
	// ErrInvalidPassword is returned when the password does not match.
	ErrInvalidPassword = errors.New("Mot de passe invalide")
	// ErrEmailTaken is returned when a director email is already registered.
	ErrEmailTaken = errors.New("Cet email est déjà utilisé")
	// ErrInvalidCredentials is returned on unknown director email or password.
	ErrInvalidCredentials = errors.New("Email ou mot de passe incorrect")
	// ErrInvalidRefreshToken is returned when a refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors collapse to
// a generic 500: internal detail is logged by the caller, never echoed.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrMissingFields):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_FIELDS")
	case errors.Is(err, ErrInvalidTimeFormat),
		errors.Is(err, ErrInvalidDateFormat),
		errors.Is(err, ErrInvalidPhoneFormat),
		errors.Is(err, ErrInvalidEmailFormat):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_FORMAT")
	case errors.Is(err, ErrNoFieldsToUpdate):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_FIELDS_PROVIDED")
	case errors.Is(err, ErrMissingCriteria):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_CRITERIA")
	case errors.Is(err, ErrDateFull), errors.Is(err, ErrNewDateFull):
		return NewHTTPError(http.StatusConflict, err.Error(), "CAPACITY_EXCEEDED")
	case errors.Is(err, ErrSlotTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "SLOT_TAKEN")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrAppointmentNotFound), errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrAccountNotApproved):
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCOUNT_NOT_APPROVED")
	case errors.Is(err, ErrInvalidPassword), errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "Erreur interne du serveur", "INTERNAL_ERROR")
	}
}
