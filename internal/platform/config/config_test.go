package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.DBMigrate)
	assert.Equal(t, ObjectStoreMemory, cfg.ObjectStore)
	assert.Equal(t, VisionStatic, cfg.Vision)
	assert.Equal(t, 30*time.Second, cfg.VisionTimeout)
	assert.Equal(t, 6, cfg.VerifyRatePerMinute)
	assert.Equal(t, 8, cfg.PanelConcurrency)
	assert.NotNil(t, cfg.ReferenceTZ)
	assert.Equal(t, AuthDev, cfg.Auth)
}

func TestLoad_AuthProvider(t *testing.T) {
	cfg, err := load(envMap(map[string]string{"JWT_SECRET": "s"}))
	require.NoError(t, err)
	assert.Equal(t, AuthJWT, cfg.Auth)

	cfg, err = load(envMap(map[string]string{
		"AUTH_PROVIDER": "IAM",
		"IAM_BASE_URL":  "https://iam.internal",
		"IAM_API_KEY":   "k",
	}))
	require.NoError(t, err)
	assert.Equal(t, AuthIAM, cfg.Auth)

	_, err = load(envMap(map[string]string{"AUTH_PROVIDER": "iam"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IAM_BASE_URL")
}

func TestLoad_VisionRequiredWithDatabase(t *testing.T) {
	_, err := load(envMap(map[string]string{"DB_DSN": "postgres://localhost/adherence"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VISION_PROVIDER is required when DB_DSN is set")

	cfg, err := load(envMap(map[string]string{
		"DB_DSN":          "postgres://localhost/adherence",
		"VISION_PROVIDER": "static",
	}))
	require.NoError(t, err)
	assert.Equal(t, VisionStatic, cfg.Vision)
}

func TestLoad_ParsesValues(t *testing.T) {
	cfg, err := load(envMap(map[string]string{
		"PORT":              "9090",
		"REFERENCE_TZ":      "America/Bogota",
		"OBJECT_STORE":      "S3",
		"AWS_S3_BUCKET":     "photos",
		"VISION_PROVIDER":   "anthropic",
		"ANTHROPIC_API_KEY": "k",
		"PANEL_CONCURRENCY": "2",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "America/Bogota", cfg.ReferenceTZ.String())
	assert.Equal(t, ObjectStoreS3, cfg.ObjectStore)
	assert.Equal(t, "photos", cfg.S3Bucket)
	assert.Equal(t, VisionAnthropic, cfg.Vision)
	assert.Equal(t, 2, cfg.PanelConcurrency)
}

func TestLoad_CollectsErrors(t *testing.T) {
	_, err := load(envMap(map[string]string{
		"OBJECT_STORE":      "gcs",
		"VISION_PROVIDER":   "openai",
		"PANEL_CONCURRENCY": "0",
		"REFERENCE_TZ":      "Mars/Olympus",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GCS_BUCKET")
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
	assert.Contains(t, err.Error(), "PANEL_CONCURRENCY")
	assert.Contains(t, err.Error(), "REFERENCE_TZ")
}
