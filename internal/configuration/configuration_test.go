package configuration_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/desertwitch/syspal/internal/configuration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider() *configuration.ConfigProviderImpl {
	return &configuration.ConfigProviderImpl{
		GenericConfigReader: &configuration.GodotenvProvider{},
	}
}

func TestMapKeyHelpers(t *testing.T) {
	t.Parallel()
	provider := newProvider()

	envMap := map[string]string{
		"STR":  "value",
		"INT":  "8192",
		"BAD":  "not-a-number",
		"B1":   "1",
		"B2":   "true",
		"B3":   "YES",
		"BOFF": "0",
	}

	assert.Equal(t, "value", provider.MapKeyToString(envMap, "STR"))
	assert.Empty(t, provider.MapKeyToString(envMap, "MISSING"))

	assert.Equal(t, 8192, provider.MapKeyToInt(envMap, "INT"))
	assert.Equal(t, -1, provider.MapKeyToInt(envMap, "BAD"))
	assert.Equal(t, -1, provider.MapKeyToInt(envMap, "MISSING"))

	assert.True(t, provider.MapKeyToBool(envMap, "B1"))
	assert.True(t, provider.MapKeyToBool(envMap, "B2"))
	assert.True(t, provider.MapKeyToBool(envMap, "B3"))
	assert.False(t, provider.MapKeyToBool(envMap, "BOFF"))
	assert.False(t, provider.MapKeyToBool(envMap, "MISSING"))
}

func TestNewHandlerConfig_FromFile(t *testing.T) {
	t.Parallel()
	provider := newProvider()

	path := filepath.Join(t.TempDir(), "syspal.conf")
	content := "SYSPAL_COPY_BUFFER_SIZE=131072\n" +
		"SYSPAL_VERIFY_COPIES=true\n" +
		"SYSPAL_DISABLE_SENDFILE=1\n" +
		"SYSPAL_NONREENTRANT_DIR_STRATEGY=yes\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	envMap, err := provider.ReadGeneric(path)
	require.NoError(t, err)

	cfg := configuration.NewHandlerConfig(provider, envMap)

	assert.Equal(t, 131072, cfg.CopyBufferSize)
	assert.True(t, cfg.VerifyCopies)
	assert.True(t, cfg.DisableSendfile)
	assert.True(t, cfg.NonReentrantDirStrategy)
	assert.False(t, cfg.DisableClone)
	assert.False(t, cfg.DisableWholeFileCopy)
	assert.False(t, cfg.ForceVectoredEmulation)
}

// An absent or malformed size must fall back to the library default, which
// the zero value selects.
func TestNewHandlerConfig_Defaults(t *testing.T) {
	t.Parallel()
	provider := newProvider()

	cfg := configuration.NewHandlerConfig(provider, map[string]string{
		"SYSPAL_COPY_BUFFER_SIZE": "garbage",
	})

	assert.Zero(t, cfg.CopyBufferSize)
	assert.False(t, cfg.VerifyCopies)
}
