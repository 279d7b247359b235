package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, want := range []string{"serve", "run", "migrate"} {
		assert.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestInitConfig_LoadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(path, []byte("INGEST_ZIP_CODES=07001,10001\nOCR_INTERVAL=1s\n"), 0o600))

	t.Setenv("INGEST_ZIP_CODES", "")
	t.Setenv("OCR_INTERVAL", "")
	require.NoError(t, os.Unsetenv("INGEST_ZIP_CODES"))
	require.NoError(t, os.Unsetenv("OCR_INTERVAL"))

	viper.Set("env_file", path)
	t.Cleanup(func() { viper.Set("env_file", ".env") })

	require.NoError(t, initConfig())
	assert.Equal(t, []string{"07001", "10001"}, cfg.Ingest.ZipCodes)
	assert.Equal(t, "1s", cfg.OCR.Interval.String())
}

func TestInitConfig_MissingEnvFileIsIgnored(t *testing.T) {
	viper.Set("env_file", filepath.Join(t.TempDir(), "absent.env"))
	t.Cleanup(func() { viper.Set("env_file", ".env") })

	require.NoError(t, initConfig())
	assert.NotNil(t, cfg)
}

func TestResolveZipCodes(t *testing.T) {
	assert.Equal(t, []string{"07001"}, resolveZipCodes([]string{"07001"}, []string{"10001"}))
	assert.Equal(t, []string{"10001"}, resolveZipCodes(nil, []string{"10001"}))
	assert.Empty(t, resolveZipCodes(nil, nil))
}
