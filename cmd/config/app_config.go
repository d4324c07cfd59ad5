package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"Invoice-Processing-System/internal/api/handlers"
	"Invoice-Processing-System/internal/api/routes"
	"Invoice-Processing-System/internal/middleware"
	"Invoice-Processing-System/internal/utils"
	"Invoice-Processing-System/internal/utils/storage"
	"Invoice-Processing-System/pkg/extraction"
	"Invoice-Processing-System/pkg/invoice"
	"Invoice-Processing-System/pkg/renderer"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// NewApp wires every process-scoped dependency and returns the HTTP app with
// a cleanup releasing them.
func NewApp(ctx context.Context, cfg utils.Config, logger *logrus.Logger) (*fiber.App, func(), error) {
	utils.InitValidator()
	validator := utils.Validate

	app := fiber.New(fiber.Config{
		AppName:      "invoicer",
		BodyLimit:    cfg.AppBodyLimitMB * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
		UnescapePath: true,
	})
	middlewares := middleware.NewMiddleware(cfg.CORSAllowOrigins)

	// access log
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), os.ModePerm); err != nil {
		return nil, nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening log file: %w", err)
	}
	app.Use(middlewares.AccessLogger(file))

	closers := []closer{file.Close}
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				utils.LogError(logger, "config", "NewApp", nil, err)
			}
		}
	}

	// Repository
	repository, closeRepository, err := NewRepository(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, closeRepository)

	// utils
	archiver, closeArchiver, err := NewArchiver(ctx, cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	closers = append(closers, closeArchiver)

	model, err := NewVisionModel(cfg, logger)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	pageRenderer := renderer.NewRenderer(renderer.Config{
		Page:    cfg.RenderPage,
		DPI:     float64(cfg.RenderDPI),
		Quality: cfg.RenderJPEGQuality,
	})

	// Service
	invoiceService := invoice.NewInvoiceService(invoice.ServiceConfig{
		Uploads:    storage.NewUploadStore(cfg.UploadsFolder),
		Renderer:   pageRenderer,
		Extractor:  extraction.NewExtractor(model, validator),
		Repository: repository,
		Archiver:   archiver,
		ExportFile: cfg.ExportFile,
		Logger:     logger,
	})

	// Handler
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, validator, logger)

	// routes
	routesConfig := routes.Config{
		App:            app,
		InvoiceHandler: invoiceHandler,
		Middleware:     middlewares,
	}
	routesConfig.Setup()

	logger.WithFields(logrus.Fields{
		"store":    cfg.StoreDriver,
		"provider": cfg.ModelProvider,
		"archive":  cfg.ArchiveDriver,
	}).Info("application configured")
	return app, cleanup, nil
}
