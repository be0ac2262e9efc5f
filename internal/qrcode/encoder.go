package qrcode

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/color"
	"time"

	qr "github.com/skip2/go-qrcode"

	"rendezvous/internal/model"
)

const (
	renderSize      = 300
	maxRaisonInCode = 100
)

// Palettes for the two appointment states: red while pending, translucent
// green once verified. Background is white in both cases.
var (
	pendingForeground  = color.RGBA{R: 0xFF, A: 0xFF}                   // #FF0000
	verifiedForeground = color.NRGBA{G: 0xFF, A: 0x81}                  // #00FF0081
	background         = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF} // #FFFFFF
)

type bookingPayload struct {
	NomComplet string `json:"nom_complet"`
	Telephone  string `json:"telephone"`
	Date       string `json:"date"`
	Heure      string `json:"heure"`
	Raison     string `json:"raison"`
}

type verificationPayload struct {
	ID         uint   `json:"id"`
	NomComplet string `json:"nom_complet"`
	Date       string `json:"date"`
	Heure      string `json:"heure"`
	Raison     string `json:"raison"`
	Statut     string `json:"statut"`
	VerifieLe  string `json:"verifie_le"`
}

// BookingToken encodes a newly booked appointment as a scannable red code.
func BookingToken(a *model.Appointment) (string, error) {
	return encode(bookingPayload{
		NomComplet: a.NomComplet,
		Telephone:  a.Telephone,
		Date:       a.DateRendezVous,
		Heure:      a.HeureRendezVous,
		Raison:     truncate(a.Raison, maxRaisonInCode),
	}, pendingForeground)
}

// VerificationToken encodes a checked-in appointment as a scannable green code
// stamped with the verification time.
func VerificationToken(a *model.Appointment, verifiedAt time.Time) (string, error) {
	return encode(verificationPayload{
		ID:         a.ID,
		NomComplet: a.NomComplet,
		Date:       a.DateRendezVous,
		Heure:      a.HeureRendezVous,
		Raison:     truncate(a.Raison, maxRaisonInCode),
		Statut:     "VERIFIE",
		VerifieLe:  verifiedAt.UTC().Format(time.RFC3339),
	}, verifiedForeground)
}

// encode renders a JSON payload as a level-H QR PNG and wraps it in a data
// URI suitable for direct embedding in an <img> tag.
func encode(payload any, foreground color.Color) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal qr payload: %w", err)
	}

	code, err := qr.New(string(data), qr.Highest)
	if err != nil {
		return "", fmt.Errorf("build qr code: %w", err)
	}
	code.ForegroundColor = foreground
	code.BackgroundColor = background

	png, err := code.PNG(renderSize)
	if err != nil {
		return "", fmt.Errorf("render qr code: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// truncate cuts s to max characters on a rune boundary; accented text must not
// end up with a split multibyte sequence inside the code payload.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
