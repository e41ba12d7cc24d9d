/*
 * Copyright (C) 2025 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package core

import (
	"os"
	"path"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFlagSet(t *testing.T, args ...string) *ServerConfig {
	t.Helper()
	flagSet := FlagSet()
	flagSet.Int("pex.workers", 1, "")
	require.NoError(t, flagSet.Parse(args))
	config := NewServerConfig()
	require.NoError(t, config.Load(flagSet))
	return config
}

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	filename := path.Join(t.TempDir(), "nuts-pex.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(contents), 0600))
	return filename
}

func TestServerConfig_Load(t *testing.T) {
	t.Cleanup(func() {
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetFormatter(&logrus.TextFormatter{})
	})

	t.Run("defaults", func(t *testing.T) {
		config := testFlagSet(t)

		assert.Equal(t, "info", config.Verbosity)
		assert.Equal(t, "text", config.LoggerFormat)
		assert.Equal(t, "./data", config.Datadir)
		assert.Equal(t, ":1323", config.HTTP.Address)
	})
	t.Run("config file", func(t *testing.T) {
		configFile := writeConfigFile(t, "verbosity: debug\nhttp:\n  address: localhost:8080\n")

		config := testFlagSet(t, "--configfile", configFile)

		assert.Equal(t, "debug", config.Verbosity)
		assert.Equal(t, "localhost:8080", config.HTTP.Address)
		assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	})
	t.Run("config file from environment", func(t *testing.T) {
		t.Setenv("NUTS_CONFIGFILE", writeConfigFile(t, "datadir: /tmp/pex\n"))

		config := testFlagSet(t)

		assert.Equal(t, "/tmp/pex", config.Datadir)
	})
	t.Run("missing config file is ignored", func(t *testing.T) {
		config := testFlagSet(t, "--configfile", path.Join(t.TempDir(), "missing.yaml"))

		assert.Equal(t, "info", config.Verbosity)
	})
	t.Run("environment overrides config file", func(t *testing.T) {
		t.Setenv("NUTS_HTTP_ADDRESS", "localhost:9090")
		configFile := writeConfigFile(t, "http:\n  address: localhost:8080\n")

		config := testFlagSet(t, "--configfile", configFile)

		assert.Equal(t, "localhost:9090", config.HTTP.Address)
	})
	t.Run("flags override environment", func(t *testing.T) {
		t.Setenv("NUTS_HTTP_ADDRESS", "localhost:9090")

		config := testFlagSet(t, "--http.address", "localhost:7070")

		assert.Equal(t, "localhost:7070", config.HTTP.Address)
	})
	t.Run("json logger format", func(t *testing.T) {
		testFlagSet(t, "--loggerformat", "json")

		assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)
	})
	t.Run("invalid logger format", func(t *testing.T) {
		flagSet := FlagSet()
		require.NoError(t, flagSet.Parse([]string{"--loggerformat", "xml"}))

		err := NewServerConfig().Load(flagSet)

		assert.EqualError(t, err, "invalid formatter: 'xml'")
	})
	t.Run("invalid verbosity", func(t *testing.T) {
		flagSet := FlagSet()
		require.NoError(t, flagSet.Parse([]string{"--verbosity", "loud"}))

		err := NewServerConfig().Load(flagSet)

		assert.Error(t, err)
	})
}

type testEngine struct {
	TestConfig testEngineConfig
}

type testEngineConfig struct {
	Workers int      `koanf:"workers"`
	Scopes  []string `koanf:"scopes"`
}

func (e *testEngine) Name() string {
	return "PEX"
}

func (e *testEngine) Config() interface{} {
	return &e.TestConfig
}

func TestServerConfig_InjectIntoEngine(t *testing.T) {
	t.Run("from flags", func(t *testing.T) {
		config := testFlagSet(t, "--pex.workers", "4")
		engine := &testEngine{}

		require.NoError(t, config.InjectIntoEngine(engine))

		assert.Equal(t, 4, engine.TestConfig.Workers)
	})
	t.Run("list from environment", func(t *testing.T) {
		t.Setenv("NUTS_PEX_SCOPES", "a, b")
		config := testFlagSet(t)
		engine := &testEngine{}

		require.NoError(t, config.InjectIntoEngine(engine))

		assert.Equal(t, []string{"a", "b"}, engine.TestConfig.Scopes)
		assert.Equal(t, 1, engine.TestConfig.Workers)
	})
}

func TestServerConfig_PrintConfig(t *testing.T) {
	config := testFlagSet(t, "--verbosity", "warn")

	printed := config.PrintConfig()

	assert.Contains(t, printed, "verbosity -> warn")
	assert.Contains(t, printed, "pex.workers -> 1")
}
