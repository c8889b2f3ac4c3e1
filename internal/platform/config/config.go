package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type ObjectStoreKind string

const (
	ObjectStoreMemory ObjectStoreKind = "memory"
	ObjectStoreS3     ObjectStoreKind = "s3"
	ObjectStoreGCS    ObjectStoreKind = "gcs"
)

type AuthProvider string

const (
	AuthDev AuthProvider = "dev" // headers X-Debug-User-*; solo local
	AuthJWT AuthProvider = "jwt"
	AuthIAM AuthProvider = "iam"
)

type VisionProvider string

const (
	VisionStatic    VisionProvider = "static"
	VisionAnthropic VisionProvider = "anthropic"
	VisionOpenAI    VisionProvider = "openai"
)

// Config agrupa todo lo que el proceso lee de env al arrancar.
type Config struct {
	Port string

	DBDSN     string
	DBMigrate bool

	// Zona horaria de referencia para días calendario (rachas, plan diario).
	ReferenceTZ *time.Location

	Auth       AuthProvider
	JWTSecret  string
	JWTIssuer  string
	IAMBaseURL string
	IAMAPIKey  string

	ObjectStore        ObjectStoreKind
	AWSRegion          string
	S3Bucket           string
	GCSBucket          string
	GCSCredentialsFile string

	Vision          VisionProvider
	AnthropicAPIKey string
	ClaudeModel     string
	OpenAIAPIKey    string
	OpenAIModel     string
	VisionTimeout   time.Duration

	VerifyRatePerMinute int
	PanelConcurrency    int
}

// Load lee la configuración desde env. Devuelve error si algún valor es inválido
// o si falta un secreto requerido por el backend elegido.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := Config{
		Port:               get("PORT", "8080"),
		DBDSN:              get("DB_DSN", ""),
		JWTSecret:          get("JWT_SECRET", ""),
		JWTIssuer:          get("JWT_ISSUER", ""),
		IAMBaseURL:         get("IAM_BASE_URL", ""),
		IAMAPIKey:          get("IAM_API_KEY", ""),
		ObjectStore:        ObjectStoreKind(strings.ToLower(get("OBJECT_STORE", string(ObjectStoreMemory)))),
		AWSRegion:          get("AWS_REGION", "us-east-1"),
		S3Bucket:           get("AWS_S3_BUCKET", ""),
		GCSBucket:          get("GCS_BUCKET", ""),
		GCSCredentialsFile: get("GCS_CREDENTIALS_FILE", ""),
		AnthropicAPIKey:    get("ANTHROPIC_API_KEY", ""),
		ClaudeModel:        get("CLAUDE_MODEL", "claude-3-5-sonnet-20241022"),
		OpenAIAPIKey:       get("OPENAI_API_KEY", ""),
		OpenAIModel:        get("OPENAI_MODEL", "gpt-4o-mini"),
	}

	var errs []error

	migrate, err := strconv.ParseBool(get("DB_MIGRATE", "true"))
	if err != nil {
		errs = append(errs, fmt.Errorf("DB_MIGRATE: %w", err))
	}
	cfg.DBMigrate = migrate

	loc, err := time.LoadLocation(get("REFERENCE_TZ", "Local"))
	if err != nil {
		errs = append(errs, fmt.Errorf("REFERENCE_TZ: %w", err))
		loc = time.Local
	}
	cfg.ReferenceTZ = loc

	cfg.VisionTimeout, err = time.ParseDuration(get("VISION_TIMEOUT", "30s"))
	if err != nil {
		errs = append(errs, fmt.Errorf("VISION_TIMEOUT: %w", err))
	}

	cfg.VerifyRatePerMinute, err = positiveInt(get("VERIFY_RATE_PER_MINUTE", "6"))
	if err != nil {
		errs = append(errs, fmt.Errorf("VERIFY_RATE_PER_MINUTE: %w", err))
	}
	cfg.PanelConcurrency, err = positiveInt(get("PANEL_CONCURRENCY", "8"))
	if err != nil {
		errs = append(errs, fmt.Errorf("PANEL_CONCURRENCY: %w", err))
	}

	switch cfg.ObjectStore {
	case ObjectStoreMemory:
	case ObjectStoreS3:
		if cfg.S3Bucket == "" {
			errs = append(errs, errors.New("AWS_S3_BUCKET is required when OBJECT_STORE=s3"))
		}
	case ObjectStoreGCS:
		if cfg.GCSBucket == "" {
			errs = append(errs, errors.New("GCS_BUCKET is required when OBJECT_STORE=gcs"))
		}
	default:
		errs = append(errs, fmt.Errorf("OBJECT_STORE: unknown value %q", cfg.ObjectStore))
	}

	defAuth := AuthDev
	if cfg.JWTSecret != "" {
		defAuth = AuthJWT
	}
	cfg.Auth = AuthProvider(strings.ToLower(get("AUTH_PROVIDER", string(defAuth))))
	switch cfg.Auth {
	case AuthDev:
	case AuthJWT:
		if cfg.JWTSecret == "" {
			errs = append(errs, errors.New("JWT_SECRET is required when AUTH_PROVIDER=jwt"))
		}
	case AuthIAM:
		if cfg.IAMBaseURL == "" || cfg.IAMAPIKey == "" {
			errs = append(errs, errors.New("IAM_BASE_URL and IAM_API_KEY are required when AUTH_PROVIDER=iam"))
		}
	default:
		errs = append(errs, fmt.Errorf("AUTH_PROVIDER: unknown value %q", cfg.Auth))
	}

	// con base de datos real el proveedor de visión debe elegirse explícitamente
	cfg.Vision = VisionProvider(strings.ToLower(get("VISION_PROVIDER", "")))
	if cfg.Vision == "" {
		if cfg.DBDSN != "" {
			errs = append(errs, errors.New("VISION_PROVIDER is required when DB_DSN is set"))
		}
		cfg.Vision = VisionStatic
	}
	switch cfg.Vision {
	case VisionStatic:
	case VisionAnthropic:
		if cfg.AnthropicAPIKey == "" {
			errs = append(errs, errors.New("ANTHROPIC_API_KEY is required when VISION_PROVIDER=anthropic"))
		}
	case VisionOpenAI:
		if cfg.OpenAIAPIKey == "" {
			errs = append(errs, errors.New("OPENAI_API_KEY is required when VISION_PROVIDER=openai"))
		}
	default:
		errs = append(errs, fmt.Errorf("VISION_PROVIDER: unknown value %q", cfg.Vision))
	}

	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("must be > 0, got %d", n)
	}
	return n, nil
}
