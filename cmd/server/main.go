package main

import (
	"log"
	"net/http"

	_ "rendezvous/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"rendezvous/internal/auth"
	"rendezvous/internal/cache"
	"rendezvous/internal/config"
	"rendezvous/internal/db"
	"rendezvous/internal/handler"
	"rendezvous/internal/model"
	"rendezvous/internal/repository"
	"rendezvous/internal/router"
	"rendezvous/internal/service"
)

// @title Rendezvous Booking API
// @version 1.0
// @description Appointment booking backend with slot allocation, QR check-in and JWT authentication.
// @host localhost:5000
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
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

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	apptRepo := repository.NewAppointmentRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	directorRepo := repository.NewDirectorRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// One locker shared by every service that mutates appointment dates.
	dateLocks := service.NewDateLocker()

	bookingService := service.NewBookingService(apptRepo, dateLocks)
	verificationService := service.NewVerificationService(apptRepo, cacheClient)
	appointmentService := service.NewAppointmentService(apptRepo, cacheClient, dateLocks)
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	directorService := service.NewDirectorService(directorRepo, apptRepo, jwtService)

	appointmentHandler := handler.NewAppointmentHandler(bookingService, verificationService, appointmentService)
	authHandler := handler.NewAuthHandler(authService)
	directorHandler := handler.NewDirectorHandler(directorService)

	e := echo.New()
	router.Register(e, cfg, appointmentHandler, authHandler, directorHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
