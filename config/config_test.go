package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir, err := ioutil.TempDir("", "changemonger_test_")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	wd, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	conf, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, defaultAPIURL, conf.APIURL)
	assert.Equal(t, defaultConcurrency, conf.Concurrency)
	assert.Equal(t, defaultLogLevel, conf.LogLevel)
	assert.Empty(t, conf.Check())
}

func TestLoadFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "changemonger_test_")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	fname := filepath.Join(dir, "changemonger.yml")
	require.NoError(t, ioutil.WriteFile(fname, []byte(`
api_url: https://master.apis.dev.openstreetmap.org/api/0.6
rate: 0.5
concurrency: 8
log_level: debug
`), 0644))

	conf, err := Load(viper.New(), fname)
	require.NoError(t, err)
	assert.Equal(t, "https://master.apis.dev.openstreetmap.org/api/0.6", conf.APIURL)
	assert.Equal(t, 0.5, conf.Rate)
	assert.Equal(t, 8, conf.Concurrency)
	assert.Equal(t, defaultBurst, conf.Burst)
	assert.Equal(t, "debug", conf.LogLevel)
}

func TestLoadEnv(t *testing.T) {
	os.Setenv("CHANGEMONGER_CACHE_SIZE", "12")
	defer os.Unsetenv("CHANGEMONGER_CACHE_SIZE")

	dir, err := ioutil.TempDir("", "changemonger_test_")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	fname := filepath.Join(dir, "changemonger.yml")
	require.NoError(t, ioutil.WriteFile(fname, []byte("cache_size: 99\n"), 0644))

	conf, err := Load(viper.New(), fname)
	require.NoError(t, err)
	assert.Equal(t, 12, conf.CacheSize)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(viper.New(), "/does/not/exist.yml")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	conf := &Config{
		APIURL:      "api.openstreetmap.org",
		Rate:        1,
		Burst:       0,
		Concurrency: 0,
		LogLevel:    "verbose",
		Catalog:     "/does/not/exist.yml",
	}
	errs := conf.Check()
	assert.Len(t, errs, 5)
}
