package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/Edumoretti/chatbot-llm/ai"
	"github.com/Edumoretti/chatbot-llm/analytics"
	"github.com/Edumoretti/chatbot-llm/catalog"
	"github.com/Edumoretti/chatbot-llm/config"
	"github.com/Edumoretti/chatbot-llm/controllers"
	"github.com/Edumoretti/chatbot-llm/faq"
	"github.com/Edumoretti/chatbot-llm/logger"
	"github.com/Edumoretti/chatbot-llm/middleware"
	"github.com/Edumoretti/chatbot-llm/orchestrator"
	"github.com/Edumoretti/chatbot-llm/payment"
	"github.com/Edumoretti/chatbot-llm/routes"
	"github.com/Edumoretti/chatbot-llm/services"
	"github.com/Edumoretti/chatbot-llm/store"
	"github.com/Edumoretti/chatbot-llm/webhook"
)

func main() {
	cfg := config.Load()

	log := logger.Initialize(cfg.Env)
	defer log.Sync()

	// --- Stores ---
	var cartStore store.CartStore
	if cfg.RedisURL != "" {
		client, err := store.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatal("redis connection failed", zap.Error(err))
		}
		cartStore = store.NewRedisCartStore(client, cfg.CartTTL)
		log.Info("using redis cart store")
	} else {
		cartStore = store.NewMemoryCartStore()
		log.Info("using in-memory cart store")
	}
	engine := store.NewCartEngine(cartStore)
	sessions := store.NewMemorySessionStore(cfg.SessionTTL)

	// --- External collaborators ---
	catalogClient := catalog.NewHTTPClient(cfg.CatalogAPIURL, cfg.CatalogAPIKey, cfg.ExternalCallTimeout)

	var gateway payment.Gateway
	if cfg.PaymentProvider == "stripe" {
		gateway = payment.NewStripeGateway(cfg.StripeSecretKey)
		log.Info("using stripe payment gateway")
	} else {
		gateway = payment.NewHTTPGateway(cfg.PaymentGatewayURL, cfg.PaymentGatewayKey, cfg.ExternalCallTimeout)
	}

	var aiClient ai.Client
	if cfg.OpenAIAPIKey != "" {
		aiClient = ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	} else {
		log.Warn("OPENAI_API_KEY not set; running on keyword fallbacks only")
	}
	detector := ai.NewIntentDetector(aiClient, log)

	var faqStore faq.Store
	if aiClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		vectorStore, err := faq.NewVectorStore(ctx, aiClient, faq.DefaultEntries(), 0.7)
		cancel()
		if err != nil {
			log.Warn("faq embedding index failed, using keyword matcher", zap.Error(err))
			faqStore = faq.NewKeywordStore(faq.DefaultEntries())
		} else {
			faqStore = vectorStore
		}
	} else {
		faqStore = faq.NewKeywordStore(faq.DefaultEntries())
	}

	// --- Core ---
	orch := orchestrator.New(detector, aiClient, faqStore, catalogClient, log)
	contexts := orchestrator.NewContextManager()
	analyticsManager := analytics.NewManager(log)
	cartService := services.NewCartService(engine, catalogClient, log)
	checkoutService := services.NewCheckoutService(cartService, sessions, gateway, log)

	// --- Transports ---
	var whatsapp *webhook.WhatsAppChannel
	if cfg.WhatsAppAPIURL != "" {
		whatsapp = webhook.NewWhatsAppChannel(
			cfg.WhatsAppAPIURL,
			cfg.WhatsAppAPIKey,
			cfg.WhatsAppVerifyToken,
			orch,
			cfg.ExternalCallTimeout,
			log,
		)
	}

	// --- HTTP router ---
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.RateLimit(rate.Every(time.Second), 20))
	r.Use(cors.Default())

	routes.Register(
		r,
		controllers.NewMessageController(orch, contexts, analyticsManager),
		controllers.NewCartController(cartService, analyticsManager),
		controllers.NewCheckoutController(checkoutService, analyticsManager),
		controllers.NewMetricsController(analyticsManager),
		whatsapp,
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info("shopping bot listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down gracefully")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("shutdown error", zap.Error(err))
	}
	log.Info("server shutdown complete")
}
