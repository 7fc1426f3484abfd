// Package config provides centralized default values for GoIconicWay
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Engagement Engine
	WelcomeDelay            time.Duration
	SectionTriggerDelay     time.Duration
	InactivityThreshold     time.Duration
	InactivityCheckInterval time.Duration
	MaxMessagesPerSession   int
	DeclineCooldown         time.Duration
	CloseCooldown           time.Duration

	// Session Configuration
	SessionTTL             time.Duration
	MaxSessions            int
	SessionCleanupInterval time.Duration

	// SSE Configuration
	MaxSessionConnections       int
	SSEHeartbeatIntervalSeconds int

	// Concierge Configuration
	ConciergeMaxMessageLen int
	ConciergeRateLimit     int
	ConciergeRateWindow    time.Duration
	GuideRateLimit         int
	GuideRateWindow        time.Duration
	ConciergeUpstreamURL   string
	ConciergeModel         string
	ConciergeMaxTokens     int
	ConciergeTimeout       time.Duration

	// Checkout Configuration
	CheckoutUpstreamURL string
	CheckoutTimeout     time.Duration
	BookingSource       string

	// Lead & Consent Configuration
	ConsentRetention time.Duration
	GuideURL         string
	ContactURL       string

	// Database Configuration
	DBPath                   string
	TursoDatabaseURL         string
	TursoAuthToken           string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	SlowQueryThreshold       time.Duration

	// Redis Configuration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Secrets and Integrations
	JWTSecret         string
	SysopPasswordHash string
	GroqAPIKey        string
	ResendAPIKey      string
	EmailFromAddress  string

	// Journal
	JournalCapacity int
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Engagement Engine
	WelcomeDelay = getEnvDuration("ENGAGE_WELCOME_DELAY", 15*time.Second)
	SectionTriggerDelay = getEnvDuration("ENGAGE_SECTION_DELAY", 3*time.Second)
	InactivityThreshold = getEnvDuration("ENGAGE_INACTIVITY_THRESHOLD", 45*time.Second)
	InactivityCheckInterval = getEnvDuration("ENGAGE_INACTIVITY_CHECK_INTERVAL", 10*time.Second)
	MaxMessagesPerSession = getEnvInt("ENGAGE_MAX_MESSAGES", 4)
	DeclineCooldown = getEnvDuration("ENGAGE_DECLINE_COOLDOWN", 180*time.Second)
	CloseCooldown = getEnvDuration("ENGAGE_CLOSE_COOLDOWN", 90*time.Second)

	// Session Configuration
	SessionTTL = time.Duration(getEnvInt("SESSION_TTL_HOURS", 2)) * time.Hour
	MaxSessions = getEnvInt("MAX_SESSIONS", 5000)
	SessionCleanupInterval = time.Duration(getEnvInt("SESSION_CLEANUP_INTERVAL_MINUTES", 5)) * time.Minute

	// SSE Configuration
	MaxSessionConnections = getEnvInt("MAX_SESSION_CONNECTIONS", 3)
	SSEHeartbeatIntervalSeconds = getEnvInt("SSE_HEARTBEAT_INTERVAL_SECONDS", 30)

	// Concierge Configuration
	ConciergeMaxMessageLen = getEnvInt("CONCIERGE_MAX_MESSAGE_LEN", 500)
	ConciergeRateLimit = getEnvInt("CONCIERGE_RATE_LIMIT", 15)
	ConciergeRateWindow = getEnvDuration("CONCIERGE_RATE_WINDOW", time.Hour)
	GuideRateLimit = getEnvInt("GUIDE_RATE_LIMIT", 5)
	GuideRateWindow = getEnvDuration("GUIDE_RATE_WINDOW", 24*time.Hour)
	ConciergeUpstreamURL = getEnvString("CONCIERGE_UPSTREAM_URL", "https://api.groq.com/openai/v1/chat/completions")
	ConciergeModel = getEnvString("CONCIERGE_MODEL", "llama-3.1-8b-instant")
	ConciergeMaxTokens = getEnvInt("CONCIERGE_MAX_TOKENS", 300)
	ConciergeTimeout = getEnvDuration("CONCIERGE_TIMEOUT", 20*time.Second)

	// Checkout Configuration
	CheckoutUpstreamURL = getEnvString("CHECKOUT_UPSTREAM_URL", "https://abenteuer-mieten-platform.vercel.app/api/public/checkout")
	CheckoutTimeout = getEnvDuration("CHECKOUT_TIMEOUT", 20*time.Second)
	BookingSource = getEnvString("BOOKING_SOURCE", "goiconicway")

	// Lead & Consent Configuration
	ConsentRetention = time.Duration(getEnvInt("CONSENT_RETENTION_DAYS", 365)) * 24 * time.Hour
	GuideURL = getEnvString("GUIDE_URL", "")
	ContactURL = getEnvString("CONTACT_URL", "https://wa.me/13106006624")

	// Database Configuration
	DBPath = getEnvString("DB_PATH", "goiconicway.db")
	TursoDatabaseURL = getEnvString("TURSO_DATABASE_URL", "")
	TursoAuthToken = getEnvString("TURSO_AUTH_TOKEN", "")
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 100*time.Millisecond)

	// Redis Configuration
	RedisAddr = getEnvString("REDIS_ADDR", "localhost:6379")
	RedisPassword = getEnvString("REDIS_PASSWORD", "")
	RedisDB = getEnvInt("REDIS_DB", 0)

	// Secrets and Integrations
	JWTSecret = getEnvString("JWT_SECRET", "")
	SysopPasswordHash = getEnvString("SYSOP_PASSWORD_HASH", "")
	GroqAPIKey = getEnvString("GROQ_API_KEY", "")
	ResendAPIKey = getEnvString("RESEND_API_KEY", "")
	EmailFromAddress = getEnvString("EMAIL_FROM_ADDRESS", "GoIconicWay <guide@goiconicway.com>")

	// Journal
	JournalCapacity = getEnvInt("JOURNAL_CAPACITY", 500)
}
