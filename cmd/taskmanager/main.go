package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"task-manager/internal/config"
	"task-manager/internal/httpapi"
	"task-manager/internal/repository"
	"task-manager/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL, repository.Options{Echo: cfg.DBEcho})
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		defer sqlDB.Close()
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	credentialSvc, err := service.NewCredentialService(userRepo, 0)
	if err != nil {
		log.Fatalf("credentials: %v", err)
	}
	tokenSvc := service.NewTokenService(cfg.SecretKey)
	taskSvc := service.NewTaskService(taskRepo)
	reportSvc := service.NewReportService(userRepo, taskRepo)

	scheduler := service.NewSchedulerService(time.Local)
	report := func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		usage, err := reportSvc.Usage(jobCtx, time.Now())
		if err != nil {
			log.Printf("report: %v", err)
			return
		}
		log.Printf("[info] %s", usage)
	}
	var reportID cron.EntryID
	if cfg.ReportAt != "" {
		reportID, err = scheduler.ScheduleDaily(cfg.ReportAt, report)
	} else {
		reportID, err = scheduler.ScheduleInterval(cfg.ReportInterval, report)
	}
	if err != nil {
		log.Fatalf("schedule reports: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()
	log.Printf("[info] next usage report at %s", scheduler.Next(reportID, time.Now()).Format(time.RFC3339))

	server := httpapi.NewServer(credentialSvc, tokenSvc, taskSvc, repository.NewPinger(db), log.Default())
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("[info] listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[info] shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	log.Println("Shutdown complete.")
}
