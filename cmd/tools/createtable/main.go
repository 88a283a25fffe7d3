package main

import (
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN environment variable is required")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get DB: %v", err)
	}

	paymentsSQL := `
	CREATE TABLE IF NOT EXISTS payments (
	  id CHAR(36) NOT NULL,
	  email VARCHAR(255) NOT NULL,
	  name VARCHAR(100) NOT NULL,
	  amount DECIMAL(10,2) NOT NULL,
	  currency VARCHAR(10) NOT NULL DEFAULT 'NGN',
	  status VARCHAR(20) NOT NULL,
	  transaction_reference VARCHAR(255) NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  updated_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  UNIQUE KEY ux_payments_reference (transaction_reference)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	eventsSQL := `
	CREATE TABLE IF NOT EXISTS gateway_events (
	  id CHAR(36) NOT NULL,
	  reference VARCHAR(255) NOT NULL,
	  status VARCHAR(32) NOT NULL,
	  payload_json JSON NOT NULL,
	  created_at DATETIME(3) NOT NULL DEFAULT CURRENT_TIMESTAMP(3),
	  PRIMARY KEY (id),
	  KEY ix_gateway_events_reference (reference)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;
	`

	if _, err := sqlDB.Exec(paymentsSQL); err != nil {
		log.Fatalf("Failed to create payments table: %v", err)
	}
	log.Println("✓ payments table created successfully")

	if _, err := sqlDB.Exec(eventsSQL); err != nil {
		log.Fatalf("Failed to create gateway_events table: %v", err)
	}
	log.Println("✓ gateway_events table created successfully")
}
