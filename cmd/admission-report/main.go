// Command admission-report computes the exam admission status of a course and
// writes it as an XLSX workbook. With -user it prints the status of a single
// participant as JSON instead.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SAP-F-2025/admission-service/internal/cache"
	"github.com/SAP-F-2025/admission-service/internal/config"
	"github.com/SAP-F-2025/admission-service/internal/events"
	"github.com/SAP-F-2025/admission-service/internal/metrics"
	"github.com/SAP-F-2025/admission-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/admission-service/internal/services"
	"github.com/SAP-F-2025/admission-service/internal/utils"
	"github.com/SAP-F-2025/admission-service/internal/validator"
	"github.com/SAP-F-2025/admission-service/pkg"
)

func main() {
	var courseID, userID, out string
	var migrate bool

	flag.StringVar(&courseID, "course", "", "Course ID (required)")
	flag.StringVar(&userID, "user", "", "Only evaluate this participant and print the status as JSON")
	flag.StringVar(&out, "out", "", "Output file (default admission-<course>.xlsx)")
	flag.BoolVar(&migrate, "migrate", false, "Create or update the database schema before evaluating")
	flag.Parse()

	if courseID == "" {
		fmt.Fprintln(os.Stderr, "-course is required")
		flag.Usage()
		os.Exit(2)
	}
	if out == "" {
		out = fmt.Sprintf("admission-%s.xlsx", courseID)
	}

	if err := run(courseID, userID, out, migrate); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(courseID, userID, out string, migrate bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := utils.NewLogger(os.Stderr, cfg.Environment, cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	db, err := pkg.InitDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	if migrate {
		if err := postgres.AutoMigrate(db); err != nil {
			return err
		}
	}

	var admissionCache cache.AdmissionCache
	redisClient, err := pkg.NewRedisClient(ctx, cfg)
	if err != nil {
		logger.Warn("Redis unavailable, running without cache", "error", err)
	} else {
		defer redisClient.Close()
		admissionCache = cache.NewAdmissionCache(cache.NewRedisCache(redisClient, logger), cfg.Admission.CacheTTL)
	}

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		logger.Error("Failed to create event publisher", "error", err)
		publisher = events.NewMockEventPublisher(logger)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	admission := services.NewAdmissionStatusService(
		postgres.NewRepository(db),
		admissionCache,
		publisher,
		logger,
		validator.New(),
		metrics.New(nil),
		services.AdmissionStatusOptions{
			Workers:             cfg.Admission.Workers,
			AllowEmptyRuleScope: cfg.Admission.AllowEmptyRuleScope,
		},
	)

	if userID != "" {
		status, err := admission.GetAdmissionStatusOfParticipant(ctx, courseID, userID)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	data, err := services.NewAdmissionExportService(admission, logger).ExportCourseAdmission(ctx, courseID)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger.Info("Admission report written", slog.String("course_id", courseID), slog.String("file", out))
	return nil
}
