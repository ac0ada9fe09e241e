package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/portal-notas/docs"
	"github.com/jhoicas/portal-notas/internal/application/auth"
	"github.com/jhoicas/portal-notas/internal/application/backup"
	"github.com/jhoicas/portal-notas/internal/application/dashboard"
	"github.com/jhoicas/portal-notas/internal/application/extraction"
	"github.com/jhoicas/portal-notas/internal/application/invoice"
	"github.com/jhoicas/portal-notas/internal/application/state"
	"github.com/jhoicas/portal-notas/internal/application/supplier"
	"github.com/jhoicas/portal-notas/internal/application/user"
	"github.com/jhoicas/portal-notas/internal/domain/repository"
	infraai "github.com/jhoicas/portal-notas/internal/infrastructure/ai"
	"github.com/jhoicas/portal-notas/internal/infrastructure/archive"
	"github.com/jhoicas/portal-notas/internal/infrastructure/filestore"
	"github.com/jhoicas/portal-notas/internal/infrastructure/mail"
	"github.com/jhoicas/portal-notas/internal/infrastructure/memory"
	"github.com/jhoicas/portal-notas/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/portal-notas/internal/infrastructure/pdf"
	"github.com/jhoicas/portal-notas/internal/infrastructure/registry"
	"github.com/jhoicas/portal-notas/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/portal-notas/internal/interfaces/http"
	"github.com/jhoicas/portal-notas/pkg/config"
	"github.com/jhoicas/portal-notas/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()
	opened, err := storage.Open(ctx, cfg, true)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer opened.Close()

	// Métricas: el controlador avisa los guardados fallidos
	portalMetrics := metrics.New()
	st, err := state.Load(ctx, opened.Store)
	if err != nil {
		log.Warn().Err(err).Msg("no se pudo leer la base, usando memoria local")
		st = state.NewController(memory.NewDocumentStore(nil), nil)
	}
	st.WithObserver(portalMetrics)
	portalMetrics.WatchState(st)

	authUC := auth.NewAuthUseCase(st, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if _, err := authUC.SeedAdmin(ctx, auth.SeedConfig{
		Login:             cfg.Auth.SeedAdminLogin,
		Password:          cfg.Auth.SeedAdminPassword,
		NotificationEmail: cfg.Auth.SeedAdminEmail,
		Hash:              cfg.Auth.HashPasswords,
	}); err != nil {
		log.Warn().Err(err).Msg("administrador inicial")
	}

	files, err := openFiles(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de adjuntos")
	}

	llm := infraai.New(cfg.AI)
	if llm == nil {
		log.Warn().Str("provider", cfg.AI.Provider).Msg("IA deshabilitada: falta API key")
	}
	aiTimeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second

	invoiceUC := invoice.NewInvoiceUseCase(st, files, mail.NewMailtoComposer(), archive.NewZipBuilder()).
		WithRecorder(portalMetrics)
	supplierUC := supplier.NewSupplierUseCase(st,
		registry.NewBrasilAPI(cfg.Registry.BaseURL, time.Duration(cfg.Registry.CacheTTLMinutes)*time.Minute))
	userUC := user.NewUserUseCase(st, cfg.Auth.HashPasswords)
	// PDF: panel con indicadores, rankings y resumen
	dashboardUC := dashboard.NewDashboardUseCase(st, llm, infrapdf.NewMarotoPDFGenerator("Portal de Notas Fiscais")).
		WithTimeout(aiTimeout)
	extractionUC := extraction.NewExtractionUseCase(llm, aiTimeout)
	backupUC := backup.NewBackupUseCase(st)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    (cfg.Files.MaxUploadMB + 1) * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(portalMetrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Portal de Notas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": opened.Driver})
	})
	app.Get("/metrics", portalMetrics.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		InvoiceUC:    invoiceUC,
		SupplierUC:   supplierUC,
		UserUC:       userUC,
		DashboardUC:  dashboardUC,
		ExtractionUC: extractionUC,
		BackupUC:     backupUC,
		Files:        files,
		PublicPrefix: cfg.Files.PublicPrefix,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// último intento de guardar cambios que quedaron solo en memoria
	if err := st.Flush(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("guardar base al cerrar")
	}

	log.Info().Msg("aplicación detenida")
}

func openFiles(ctx context.Context, cfg *config.Config) (repository.FileStore, error) {
	maxBytes := int64(cfg.Files.MaxUploadMB) * 1024 * 1024
	if cfg.Files.Driver == config.FilesS3 {
		return filestore.NewS3Store(ctx, filestore.S3Options{
			Endpoint:     cfg.Files.S3.Endpoint,
			Region:       cfg.Files.S3.Region,
			Bucket:       cfg.Files.S3.Bucket,
			AccessKey:    cfg.Files.S3.AccessKey,
			SecretKey:    cfg.Files.S3.SecretKey,
			PublicPrefix: cfg.Files.PublicPrefix,
			MaxBytes:     maxBytes,
		})
	}
	return filestore.NewLocalStore(cfg.Files.Dir, cfg.Files.PublicPrefix, maxBytes)
}
