package postgres

import (
	"io/fs"
	"testing"

	"medication-adherence/internal/domain/intake"
	"medication-adherence/internal/domain/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONArg_NilPointerIsNull(t *testing.T) {
	var prefs *users.Preferences
	v, err := jsonArg(prefs)
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = jsonArg(nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestJSONArg_RoundTripsThroughScanJSON(t *testing.T) {
	lat := 4.6
	in := &intake.Metadata{Latitude: &lat, DeviceInfo: "pixel"}

	v, err := jsonArg(in)
	require.NoError(t, err)
	raw, ok := v.(string)
	require.True(t, ok)

	var out intake.Metadata
	require.NoError(t, scanJSON([]byte(raw), &out))
	require.NotNil(t, out.Latitude)
	assert.Equal(t, lat, *out.Latitude)
	assert.Nil(t, out.Longitude)
	assert.Equal(t, "pixel", out.DeviceInfo)
}

func TestScanJSON_NullLeavesDestination(t *testing.T) {
	dst := []string{"keep"}
	require.NoError(t, scanJSON(nil, &dst))
	assert.Equal(t, []string{"keep"}, dst)
}

func TestMigrations_Embedded(t *testing.T) {
	names, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"migrations/000001_init.up.sql",
		"migrations/000001_init.down.sql",
	}, names)
}
