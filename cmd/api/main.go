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

	_ "github.com/jhoicas/nfe-emissor/docs"
	"github.com/jhoicas/nfe-emissor/internal/application/auth"
	"github.com/jhoicas/nfe-emissor/internal/application/billing"
	"github.com/jhoicas/nfe-emissor/internal/application/usecase"
	infrapdf "github.com/jhoicas/nfe-emissor/internal/infrastructure/pdf"
	"github.com/jhoicas/nfe-emissor/internal/infrastructure/postgres"
	"github.com/jhoicas/nfe-emissor/internal/infrastructure/sefaz"
	"github.com/jhoicas/nfe-emissor/internal/infrastructure/sefaz/signer"
	httpRouter "github.com/jhoicas/nfe-emissor/internal/interfaces/http"
	"github.com/jhoicas/nfe-emissor/pkg/config"
	"github.com/jhoicas/nfe-emissor/pkg/logger"
)

// @title						NF-e Emissor API
// @version					1.0
// @description				Emissão de NF-e modelo 55 junto à SEFAZ.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("sefaz_env", cfg.SEFAZ.DefaultEnvironment).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migrations")
		}
		for _, name := range applied {
			log.Info().Str("migration", name).Msg("migration aplicada")
		}
	}

	zl := log.Zerolog()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	emitterRepo := postgres.NewEmitterRepository(pool)
	certRepo := postgres.NewCertificateRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	municipalityRepo := postgres.NewMunicipalityRepository(pool)

	// Pipeline fiscal: XML → XML-DSig → SOAP/mTLS
	xmlBuilder := sefaz.NewXMLBuilderService(zl)
	extractor := signer.NewPKCS12Extractor()
	signerSvc := signer.NewXMLSignatureService()

	transport := sefaz.DefaultTransportConfig()
	transport.Timeout = cfg.SEFAZ.Timeout
	transport.PreferIPv4 = cfg.SEFAZ.PreferIPv4
	transport.InsecureSkipVerify = cfg.SEFAZ.InsecureSkipVerify
	sefazClient := sefaz.NewSOAPSefazClient(transport, zl)

	emissionBudget := billing.EmissionBudget(cfg.SEFAZ.Timeout, cfg.SEFAZ.PollDelay)
	emission := billing.NewEmissionOrchestrator(
		invoiceRepo, emitterRepo, certRepo,
		xmlBuilder, extractor, signerSvc, sefazClient,
		billing.EmissionConfig{
			PollDelay:          cfg.SEFAZ.PollDelay,
			DefaultEnvironment: cfg.SEFAZ.DefaultEnvironment,
			StaleAfter:         emissionBudget,
		},
		zl,
	)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	emitterUC := billing.NewEmitterUseCase(emitterRepo, municipalityRepo, zl)
	certificateUC := billing.NewCertificateUseCase(certRepo, extractor, zl)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, productRepo, emitterRepo, xmlBuilder, cfg.SEFAZ.DefaultEnvironment)

	// DANFE: representação gráfica da NF-e
	danfeUC := billing.NewDanfeUseCase(invoiceRepo, emitterRepo, infrapdf.NewDanfeGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: emissionBudget + 5*time.Second,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "NF-e Emissor API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     productUC,
		EmitterUC:     emitterUC,
		CertificateUC: certificateUC,
		InvoiceUC:     invoiceUC,
		Emission:      emission,
		DanfeUC:       danfeUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	// Emissões em andamento ganham tempo para chegar a um estado persistido.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.SEFAZ.Timeout+10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("desligamento do servidor")
	}

	log.Info().Msg("aplicação encerrada")
}
