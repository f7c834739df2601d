package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port               string
	DBDSN              string
	CatalogPath        string
	LogFile            string
	WhatsAppTo         string
	FreeDeliveryMinQty int
	DeliveryCharge     int
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "jivuma.db"
	} // sqlite file in project root
	catalog := os.Getenv("CATALOG_PATH")
	if catalog == "" {
		catalog = "./web/data/products.json"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./jivuma.log"
	}
	waTo := os.Getenv("WHATSAPP_TO")
	if waTo == "" {
		waTo = "916351068776"
	}

	cfg := Config{
		Port:               port,
		DBDSN:              dsn,
		CatalogPath:        catalog,
		LogFile:            logFile,
		WhatsAppTo:         waTo,
		FreeDeliveryMinQty: intEnv("FREE_DELIVERY_MIN_QTY", 5),
		DeliveryCharge:     intEnv("DELIVERY_CHARGE", 40),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s CATALOG_PATH=%s LOG_FILE=%s", cfg.Port, cfg.DBDSN, cfg.CatalogPath, cfg.LogFile)
	return cfg
}

func intEnv(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		log.Printf("[config] ignoring bad %s=%q", key, s)
		return def
	}
	return n
}
