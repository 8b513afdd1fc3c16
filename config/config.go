package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	VNPayTmnCode    string
	VNPayHashSecret string
	VNPayPayURL     string
	VNPayReturnURL  string

	MoMoPartnerCode string
	MoMoAccessKey   string
	MoMoSecretKey   string
	MoMoEndpoint    string
	MoMoRedirectURL string
	MoMoIPNURL      string

	UploadDir   string
	FrontendURL string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	config := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("ENV"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     os.Getenv("SMTP_PORT"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("SMTP_FROM"),

		VNPayTmnCode:    os.Getenv("VNPAY_TMN_CODE"),
		VNPayHashSecret: os.Getenv("VNPAY_HASH_SECRET"),
		VNPayPayURL:     os.Getenv("VNPAY_PAY_URL"),
		VNPayReturnURL:  os.Getenv("VNPAY_RETURN_URL"),

		MoMoPartnerCode: os.Getenv("MOMO_PARTNER_CODE"),
		MoMoAccessKey:   os.Getenv("MOMO_ACCESS_KEY"),
		MoMoSecretKey:   os.Getenv("MOMO_SECRET_KEY"),
		MoMoEndpoint:    os.Getenv("MOMO_ENDPOINT"),
		MoMoRedirectURL: os.Getenv("MOMO_REDIRECT_URL"),
		MoMoIPNURL:      os.Getenv("MOMO_IPN_URL"),

		UploadDir:   os.Getenv("UPLOAD_DIR"),
		FrontendURL: os.Getenv("FRONTEND_URL"),
	}

	return config, nil
}
