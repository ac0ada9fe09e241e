package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-notas/internal/application/auth"
	"github.com/jhoicas/portal-notas/internal/application/backup"
	"github.com/jhoicas/portal-notas/internal/application/dashboard"
	"github.com/jhoicas/portal-notas/internal/application/extraction"
	"github.com/jhoicas/portal-notas/internal/application/invoice"
	"github.com/jhoicas/portal-notas/internal/application/supplier"
	"github.com/jhoicas/portal-notas/internal/application/user"
	"github.com/jhoicas/portal-notas/internal/domain/entity"
	"github.com/jhoicas/portal-notas/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	InvoiceUC    *invoice.InvoiceUseCase
	SupplierUC   *supplier.SupplierUseCase
	UserUC       *user.UserUseCase
	DashboardUC  *dashboard.DashboardUseCase
	ExtractionUC *extraction.ExtractionUseCase
	BackupUC     *backup.BackupUseCase
	Files        repository.FileStore
	PublicPrefix string // ruta pública de adjuntos, p.ej. /PDF
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Adjuntos (público, como el directorio estático original)
	if deps.Files != nil {
		prefix := deps.PublicPrefix
		if prefix == "" {
			prefix = "/PDF"
		}
		app.Get(prefix+"/:name", NewFileHandler(deps.Files).Serve)
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/sectors", Sectors)

	// Invoices: las rutas fijas van antes de /:id
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/attachments.zip", invoiceHandler.Attachments)
	invoices.Get("/report.csv", invoiceHandler.Report)
	invoices.Get("/:id", invoiceHandler.Get)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", adminOnly, invoiceHandler.Delete)
	invoices.Post("/:id/receive", adminOnly, invoiceHandler.Receive)
	invoices.Post("/:id/pendency", adminOnly, invoiceHandler.Pendency)
	invoices.Get("/:id/attachment", invoiceHandler.Attachment)

	protected.Post("/files", invoiceHandler.UploadFile)

	// Suppliers: lectura para todos, escritura ADMIN
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/lookup/:cnpj", adminOnly, supplierHandler.Lookup)
	suppliers.Post("/", adminOnly, supplierHandler.Create)
	suppliers.Put("/:id", adminOnly, supplierHandler.Update)

	// Users (ADMIN)
	users := protected.Group("/users", adminOnly)
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)
	protected.Get("/dashboard/report.pdf", dashboardHandler.PDF)

	// IA
	aiHandler := NewAIHandler(deps.ExtractionUC)
	protected.Post("/ai/extract", aiHandler.Extract)

	// System (ADMIN)
	systemHandler := NewSystemHandler(deps.BackupUC)
	protected.Get("/system/backup", adminOnly, systemHandler.Backup)
	protected.Post("/system/restore", adminOnly, systemHandler.Restore)
	protected.Get("/data", adminOnly, systemHandler.Data)
	protected.Post("/save", adminOnly, systemHandler.Save)
}
