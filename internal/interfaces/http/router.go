package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nfe-emissor/internal/application/auth"
	"github.com/jhoicas/nfe-emissor/internal/application/billing"
	"github.com/jhoicas/nfe-emissor/internal/application/usecase"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	ProductUC     *usecase.ProductUseCase
	EmitterUC     *billing.EmitterUseCase
	CertificateUC *billing.CertificateUseCase
	InvoiceUC     *billing.InvoiceUseCase
	Emission      *billing.EmissionOrchestrator
	DanfeUC       *billing.DanfeUseCase
	JWTSecret     string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	emitterHandler := NewEmitterHandler(deps.EmitterUC)
	protected.Get("/emitter", emitterHandler.Get)
	protected.Post("/emitter", emitterHandler.Save)
	protected.Put("/emitter", emitterHandler.Save)

	certificates := protected.Group("/certificates")
	certificateHandler := NewCertificateHandler(deps.CertificateUC)
	certificates.Get("/", certificateHandler.List)
	certificates.Post("/", certificateHandler.Upload)
	certificates.Delete("/:id", certificateHandler.Delete)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.Emission, deps.DanfeUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Replace)
	invoices.Delete("/:id", invoiceHandler.Delete)
	invoices.Post("/:id/emit", invoiceHandler.Emit)
	invoices.Get("/:id/xml", invoiceHandler.DownloadXML)
	invoices.Get("/:id/danfe", invoiceHandler.DownloadDanfe)
}
