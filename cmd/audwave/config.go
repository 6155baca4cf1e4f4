// SPDX-License-Identifier: EPL-2.0

package main

import (
	"os"
	"path/filepath"
)

const (
	envDB       = "AUDWAVE_DB"
	envLogLevel = "AUDWAVE_LOG_LEVEL"

	defaultLogLevel = "warn"
)

type config struct {
	DBPath   string
	LogLevel string
}

func loadConfig(getenv func(string) string) config {
	cfg := config{
		DBPath:   defaultDBPath(),
		LogLevel: defaultLogLevel,
	}

	if v := getenv(envDB); v != "" {
		cfg.DBPath = v
	}
	if v := getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}

	return cfg
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "audwave.db"
	}

	return filepath.Join(dir, "audwave", "audwave.db")
}
