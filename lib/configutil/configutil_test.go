package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	MongodbUrl string `json:"mongodb_url"`
	BaseUrl    string `json:"base_url"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")

	err := os.WriteFile(path, []byte(`{
		// checked-in defaults
		base_url: "https://www.basketball-reference.com",
	}`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := ReadConfig[testConfig](path)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "https://www.basketball-reference.com", cfg.BaseUrl)
	require.Equal(t, "", cfg.MongodbUrl)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()

	err := os.WriteFile(filepath.Join(dir, "config.json5"), []byte(`{
		base_url: "https://www.basketball-reference.com",
	}`), 0644)
	if err != nil {
		t.Fatal(err)
	}
	err = os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{
		mongodb_url: "mongodb://localhost:27017",
	}`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "https://www.basketball-reference.com", cfg.BaseUrl)
	require.Equal(t, "mongodb://localhost:27017", cfg.MongodbUrl)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
