package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	JWTSecret   string
	JWTExpiry   int64

	// Profile store
	ProfileBackend          string // gcs, firestore, memory
	StorageBucket           string
	GCPProject              string
	CredentialsPath         string
	ProfileAppendMaxRetries int

	// Fulfillment vendor
	PrintifyAPIKey  string
	PrintifyShopID  string
	PrintifyBaseURL string

	// Image generation backend
	ImageBackendURL       string
	BgRemovalPollInterval time.Duration
	BgRemovalMaxAttempts  int
	UploadMaxDimension    int
	UploadMaxBytes        int64
	UploadMaxPixels       int
	UploadBodyLimit       string
	UploadRatePerMinute   int
	GenerateRatePerMinute int

	// Payment vendor
	StripeSecretKey string
	StripeBaseURL   string

	// Catalog
	SupportedBlueprintIDs    []int
	SupportedBlueprintPrices []float64
	CandleBlueprintIDs       []int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		JWTSecret:   getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiry:   getEnvAsInt64("JWT_EXPIRY", 24*60*60), // 24 hours

		ProfileBackend:          getEnv("PROFILE_BACKEND", "gcs"),
		StorageBucket:           getEnv("STORAGE_BUCKET", "fairshoppe-users"),
		GCPProject:              getEnv("GCP_PROJECT_ID", ""),
		CredentialsPath:         getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		ProfileAppendMaxRetries: getEnvAsInt("PROFILE_APPEND_MAX_RETRIES", 5),

		PrintifyAPIKey:  getEnv("PRINTIFY_API_KEY", ""),
		PrintifyShopID:  getEnv("PRINTIFY_SHOP_ID", ""),
		PrintifyBaseURL: getEnv("PRINTIFY_BASE_URL", "https://api.printify.com"),

		ImageBackendURL:       getEnv("IMAGE_BACKEND_URL", "http://localhost:5000"),
		BgRemovalPollInterval: getEnvAsDuration("BG_REMOVAL_POLL_INTERVAL", time.Second),
		BgRemovalMaxAttempts:  getEnvAsInt("BG_REMOVAL_MAX_ATTEMPTS", 30),
		UploadMaxDimension:    getEnvAsInt("UPLOAD_MAX_DIMENSION", 4500),
		UploadMaxBytes:        getEnvAsInt64("UPLOAD_MAX_BYTES", 10<<20),
		UploadMaxPixels:       getEnvAsInt("UPLOAD_MAX_PIXELS", 40_000_000),
		UploadBodyLimit:       getEnv("UPLOAD_BODY_LIMIT", "12M"),
		UploadRatePerMinute:   getEnvAsInt("UPLOAD_RATE_PER_MINUTE", 20),
		GenerateRatePerMinute: getEnvAsInt("GENERATE_RATE_PER_MINUTE", 10),

		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),
		StripeBaseURL:   getEnv("STRIPE_BASE_URL", ""),

		SupportedBlueprintIDs: getEnvAsIntList("SUPPORTED_BLUEPRINT_IDS",
			[]int{145, 9, 81, 1634, 1528, 1688, 618, 1498, 74, 1048, 282, 937}),
		SupportedBlueprintPrices: getEnvAsFloatList("SUPPORTED_BLUEPRINT_PRICES",
			[]float64{19.99, 24.99, 19.99, 24.99, 49.99, 44.99, 14.99, 49.99, 14.99, 19.99, 14.99, 24.99}),
		CandleBlueprintIDs: getEnvAsIntList("CANDLE_BLUEPRINT_IDS", []int{1048}),
	}

	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}

// Comma separated; any unparsable entry falls back to the default list.
func getEnvAsIntList(key string, defaultValue []int) []int {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	result := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return defaultValue
		}
		result = append(result, n)
	}
	return result
}

func getEnvAsFloatList(key string, defaultValue []float64) []float64 {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	result := make([]float64, 0, len(parts))
	for _, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return defaultValue
		}
		result = append(result, f)
	}
	return result
}
