// Command seed bootstraps a development database with an approved admin
// account, an active director-general and a pair of sample appointments.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"

	"rendezvous/internal/config"
	"rendezvous/internal/db"
	"rendezvous/internal/model"
	"rendezvous/internal/qrcode"
	"rendezvous/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Director{},
		&model.Appointment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	password := getenv("SEED_PASSWORD", "changeme123")
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		log.Fatalf("hash seed password: %v", err)
	}

	userRepo := repository.NewUserRepository(gormDB)
	admin := &model.User{
		Username: getenv("SEED_ADMIN_USERNAME", "admin"),
		Email:    getenv("SEED_ADMIN_EMAIL", "admin@example.com"),
		Password: string(hashed),
		IsActive: true,
		IsAdmin:  true,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		log.Printf("seed admin (may already exist): %v", err)
	} else {
		log.Printf("seeded admin user %q", admin.Username)
	}

	directorRepo := repository.NewDirectorRepository(gormDB)
	dg := &model.Director{
		Nom:        "Durand",
		Prenom:     "Claire",
		Email:      getenv("SEED_DG_EMAIL", "dg@example.com"),
		MotDePasse: string(hashed),
		Statut:     model.DirectorStatusActive,
	}
	if err := directorRepo.Create(ctx, dg); err != nil {
		log.Printf("seed director (may already exist): %v", err)
	} else {
		log.Printf("seeded director %s %s", dg.Prenom, dg.Nom)
	}

	apptRepo := repository.NewAppointmentRepository(gormDB)
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	samples := []*model.Appointment{
		{
			NomComplet:      "Jean Dupont",
			Telephone:       "+33612345678",
			Email:           "jean.dupont@example.com",
			Raison:          "Demande d'audience",
			DateRendezVous:  tomorrow,
			HeureRendezVous: "09:00",
			Statut:          model.StatusPending,
		},
		{
			NomComplet:      "Awa Diallo",
			Telephone:       "+221771234567",
			Raison:          "Suivi de dossier",
			DateRendezVous:  tomorrow,
			HeureRendezVous: "11:00",
			Statut:          model.StatusPending,
		},
	}
	for _, appt := range samples {
		token, err := qrcode.BookingToken(appt)
		if err != nil {
			log.Fatalf("seed token: %v", err)
		}
		appt.QRCode = token
		if err := apptRepo.Create(ctx, appt); err != nil {
			log.Printf("seed appointment (slot may be taken): %v", err)
			continue
		}
		log.Printf("seeded appointment %d on %s at %s", appt.ID, appt.DateRendezVous, appt.HeureRendezVous)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
