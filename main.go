package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"checkout-service/config"
	"checkout-service/controllers"
	"checkout-service/gateway"
	"checkout-service/logger"
	"checkout-service/middleware"
	"checkout-service/routes"
	"checkout-service/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Initialize logger
	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("[CheckoutService] Failed to initialize logger:", err)
	}
	defer zlog.Sync()

	if !cfg.HasCredentials() {
		zlog.Warn("Razorpay credentials not configured; payment endpoints will reject requests")
	}

	// Razorpay gateway + service wiring
	razorpay := gateway.NewRazorpayGateway(cfg.RazorpayBaseURL, cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.HTTPTimeout)
	paymentSvc := services.NewPaymentService(cfg, razorpay, zlog)
	pc := controllers.NewPaymentController(paymentSvc)

	// HTTP server
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger(zlog))
	r.Use(middleware.SecurityHeaders())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, pc, cfg.StaticDir)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("Checkout service running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Shutdown error", zap.Error(err))
	}
}
