package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hostel-backend/config"
	"hostel-backend/controllers"
	"hostel-backend/routes"
	"hostel-backend/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("Database connection established and migrations applied")

	settingsService := services.NewSettingsService(db)
	hostelService := services.NewHostelService(db)
	allocationService := services.NewAllocationService(db, settingsService)
	paymentService := services.NewPaymentService(db, allocationService)
	studentService := services.NewStudentService(db)
	applicationService := services.NewApplicationService(db)
	exportService := services.NewExportService(db)

	authController := controllers.NewAuthController(db)
	hostelController := controllers.NewHostelController(hostelService)
	roomController := controllers.NewRoomController(hostelService, allocationService)
	allocationController := controllers.NewAllocationController(allocationService)
	paymentController := controllers.NewPaymentController(paymentService)
	settingsController := controllers.NewSettingsController(settingsService)
	studentController := controllers.NewStudentController(studentService)
	applicationController := controllers.NewApplicationController(applicationService)
	deadlineController := controllers.NewDeadlineController(allocationService)
	publishController := controllers.NewPublishController()
	exportController := controllers.NewExportController(exportService)

	router := routes.SetupRouter(
		authController,
		hostelController,
		roomController,
		allocationController,
		paymentController,
		settingsController,
		studentController,
		applicationController,
		deadlineController,
		publishController,
		exportController,
	)

	if err := services.StartPaymentDeadlineScheduler(allocationService); err != nil {
		log.Printf("warning: payment deadline scheduler not started: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	services.StopPaymentDeadlineScheduler()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
