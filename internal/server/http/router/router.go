package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MaGuangChen/xendit-opencart-module/internal/metrics"
	"github.com/MaGuangChen/xendit-opencart-module/internal/pkg/callback"
	"github.com/MaGuangChen/xendit-opencart-module/internal/server/http/handlers"
	"github.com/MaGuangChen/xendit-opencart-module/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.PaymentFacade, verifier *callback.Verifier, m *metrics.Metrics, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.Observe(m))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	paymentHandler := handlers.NewPaymentHandler(facade, m)

	api := engine.Group("/api")
	payment := api.Group("/payment/xendit")
	payment.POST("", paymentHandler.Checkout)
	// Registered for every method so the handler can reject non-POST
	// deliveries explicitly.
	payment.Any("/notification", middleware.CallbackToken(verifier), paymentHandler.Notify)

	engine.GET("/healthz", paymentHandler.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))

	return engine
}
