package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/vincentbastille10/SpectraAIDirectory/config"
	"github.com/vincentbastille10/SpectraAIDirectory/handlers"
	"github.com/vincentbastille10/SpectraAIDirectory/helper"
	"github.com/vincentbastille10/SpectraAIDirectory/middleware"
	"github.com/vincentbastille10/SpectraAIDirectory/payments"
	"github.com/vincentbastille10/SpectraAIDirectory/repositories"
	"github.com/vincentbastille10/SpectraAIDirectory/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to init database: %v", err)
	}

	// Initialize repositories
	toolRepo := repositories.NewToolRepository(db)
	eventRepo := repositories.NewWebhookEventRepository(db)

	// Initialize payment provider
	provider := payments.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	// Initialize services
	directoryService := services.NewDirectoryService(toolRepo, cfg.FeaturedSlug)
	submissionService := services.NewSubmissionService(toolRepo, eventRepo, provider, cfg)
	seoService := services.NewSeoService(toolRepo, cfg.BaseURL)

	// Drafts abandoned without visiting the cancel URL pile up otherwise.
	if purged, err := submissionService.PurgeStaleDrafts(); err != nil {
		log.Printf("Stale draft purge failed: %v", err)
	} else if purged > 0 {
		log.Printf("Purged %d stale draft(s)", purged)
	}

	// Initialize handlers
	httpHelper := helper.NewHTTPHelper()
	directoryHandler := handlers.NewDirectoryHandler(directoryService, httpHelper)
	submissionHandler := handlers.NewSubmissionHandler(submissionService, httpHelper)
	seoHandler := handlers.NewSeoHandler(seoService)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Directory
	router.GET("/", directoryHandler.Home)
	router.GET("/annuaire", directoryHandler.List)
	router.GET("/tool/:key", directoryHandler.Detail)
	router.GET("/categories", directoryHandler.Categories)

	// Submission and payment flow
	router.GET("/ajouter", submissionHandler.ShowForm)
	router.POST("/ajouter", submissionHandler.Submit)
	router.GET("/checkout_success", submissionHandler.CheckoutSuccess)
	router.GET("/checkout_cancel", submissionHandler.CheckoutCancel)
	router.POST("/webhook", submissionHandler.Webhook)

	// SEO and static assets
	router.GET("/robots.txt", seoHandler.Robots)
	router.GET("/sitemap.xml", seoHandler.Sitemap)
	if cfg.SiteVerificationFile != "" {
		router.GET("/"+cfg.SiteVerificationFile, seoHandler.Verification(cfg.SiteVerificationFile))
	}
	router.Static("/public", cfg.PublicDir)

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
