package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/portalbd/employee-portal-go/internal/config"
	appHTTP "github.com/portalbd/employee-portal-go/internal/handler/http"
	"github.com/portalbd/employee-portal-go/internal/pkg/cron"
	"github.com/portalbd/employee-portal-go/internal/pkg/database"
	"github.com/portalbd/employee-portal-go/internal/repository/postgresql"
	attendanceService "github.com/portalbd/employee-portal-go/internal/service/attendance"
	authService "github.com/portalbd/employee-portal-go/internal/service/auth"
	profileService "github.com/portalbd/employee-portal-go/internal/service/profile"
	sessionService "github.com/portalbd/employee-portal-go/internal/service/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	if err := postgresql.Migrate(context.Background(), db); err != nil {
		log.Fatal("Failed to migrate row store: ", err)
	}

	store := postgresql.NewRowStore(db)

	sessions := sessionService.NewManager(store, cfg.Session.TTL)
	auth := authService.NewAuthService(store, sessions)
	profiles := profileService.NewProfileService(store)
	attendance := attendanceService.NewAttendanceService(store, profiles)

	authHandler := appHTTP.NewAuthHandler(auth)
	profileHandler := appHTTP.NewProfileHandler(profiles)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendance)

	router := appHTTP.NewRouter(cfg, sessions, authHandler, profileHandler, attendanceHandler)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("attendance-duplicate-cleanup", cfg.Cleanup.Interval, func(ctx context.Context) error {
		_, err := attendance.CleanupDuplicates(ctx)
		return err
	})
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("Server listening on port %d", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown: ", err)
	}
}
