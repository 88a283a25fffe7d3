package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/F0laf0lu/payment-gateway/internal/http/handlers"
	"github.com/F0laf0lu/payment-gateway/internal/http/middleware"
	"github.com/F0laf0lu/payment-gateway/internal/modules/payments"
)

func NewRouter(logger *slog.Logger, db *gorm.DB, svc *payments.Service) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.ErrorHandler(logger),
	)

	r.GET("/healthz", healthz(db))

	h := handlers.NewPaymentHandler(logger, svc)

	api := r.Group("/api/v1")
	{
		api.POST("/payment", h.Initiate)
		api.GET("/payment/verify", h.Verify)
		api.GET("/payment/:id", h.Get)
	}

	return r
}

func healthz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
