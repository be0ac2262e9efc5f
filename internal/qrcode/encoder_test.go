package qrcode

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"rendezvous/internal/model"
)

func sampleAppointment() *model.Appointment {
	return &model.Appointment{
		ID:              42,
		NomComplet:      "Jean Dupont",
		Telephone:       "+33612345678",
		Raison:          "Demande d'audience",
		DateRendezVous:  "2026-09-15",
		HeureRendezVous: "09:00",
		Statut:          model.StatusPending,
	}
}

func decodeDataURI(t *testing.T, uri string) []byte {
	t.Helper()
	const prefix = "data:image/png;base64,"
	assert.True(t, strings.HasPrefix(uri, prefix))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	assert.NoError(t, err)
	return raw
}

func TestBookingToken(t *testing.T) {
	token, err := BookingToken(sampleAppointment())
	assert.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(decodeDataURI(t, token)))
	assert.NoError(t, err)
	assert.Equal(t, renderSize, img.Bounds().Dx())
	assert.Equal(t, renderSize, img.Bounds().Dy())
}

func TestVerificationToken(t *testing.T) {
	appt := sampleAppointment()
	verifiedAt := time.Date(2026, 9, 15, 9, 5, 0, 0, time.UTC)

	token, err := VerificationToken(appt, verifiedAt)
	assert.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(decodeDataURI(t, token)))
	assert.NoError(t, err)

	booking, err := BookingToken(appt)
	assert.NoError(t, err)
	assert.NotEqual(t, booking, token)
}

func TestBookingToken_LongRaison(t *testing.T) {
	appt := sampleAppointment()
	appt.Raison = strings.Repeat("a", 500)

	token, err := BookingToken(appt)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcde", truncate("abcdefgh", 5))

	// Accented text is cut between characters, never through one.
	long := strings.Repeat("réunion préfectorale ", 10)
	cut := truncate(long, maxRaisonInCode)
	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, maxRaisonInCode, utf8.RuneCountInString(cut))
}
