package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	// DataDir holds the three backing CSV files.
	DataDir string
	// AppURL is only used as the payload of the QR code on printed slips.
	AppURL string
	// LogoPath optionally decorates the slip header; empty disables it.
	LogoPath string
	// AdminPINHash is the bcrypt hash of the management PIN.
	AdminPINHash string
	JWTSecret    string
	Port         string
}

var AppConfig *Config

// Init loads .env (if present) and builds the process configuration with
// development defaults. Must be called before Get.
func Init() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := &Config{
		DataDir:   envOr("DATA_DIR", "./data"),
		AppURL:    envOr("APP_URL", "http://localhost:8080"),
		LogoPath:  os.Getenv("LOGO_PATH"),
		JWTSecret: envOr("JWT_SECRET", "student-orders-secret-key"),
		Port:      envOr("PORT", "8080"),
	}

	pin := os.Getenv("ADMIN_PIN")
	if pin == "" {
		pin = "0000"
		log.Println("Warning: ADMIN_PIN not set, using development default")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash admin PIN:", err)
	}
	cfg.AdminPINHash = string(hash)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatal("Failed to create data directory:", err)
	}

	AppConfig = cfg
	log.Printf("Data directory: %s", cfg.DataDir)
}

func Get() *Config {
	return AppConfig
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
