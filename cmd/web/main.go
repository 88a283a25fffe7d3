package main

import (
	"log"
	"os"

	"log/slog"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/F0laf0lu/payment-gateway/internal/config"
	apphttp "github.com/F0laf0lu/payment-gateway/internal/http"
	"github.com/F0laf0lu/payment-gateway/internal/modules/payments"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := gorm.Open(mysql.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	gateway := payments.NewPaystackClient(cfg.PaystackBaseURL, cfg.PaystackSecretKey, cfg.GatewayTimeout)
	store := payments.NewGormStore(db)

	svc := payments.NewService(store, gateway, cfg.Currency, cfg.CallbackURL)
	svc.SetLogger(logger)

	r := apphttp.NewRouter(logger, db, svc)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
