// Package config loads environment configuration for DeskPad.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	defaultListenAddr  = "0.0.0.0:8787"
	defaultDataDir     = "./data"
	defaultSensitivity = 1.5
	defaultWheelScale  = 1.0
	defaultZoomScale   = 1.0
	defaultHostQueue   = 256
)

// Config holds runtime configuration values.
type Config struct {
	ListenAddr   string
	UIPassword   string
	PasswordMode bool
	DataDir      string
	TuningPath   string
	Sensitivity  float64
	WheelScale   float64
	ZoomScale    float64
	HostURL      string
	HostToken    string
	HostQueue    int
}

// Load reads configuration from ./data/.env and environment variables.
func Load() (Config, error) {
	cfg := Config{
		ListenAddr:   defaultListenAddr,
		DataDir:      defaultDataDir,
		PasswordMode: true,
		Sensitivity:  defaultSensitivity,
		WheelScale:   defaultWheelScale,
		ZoomScale:    defaultZoomScale,
		HostQueue:    defaultHostQueue,
	}

	if err := loadEnvFile(filepath.Join(envString("DATA_DIR", cfg.DataDir), ".env")); err != nil {
		return Config{}, err
	}

	cfg.ListenAddr = envString("LISTEN_ADDR", cfg.ListenAddr)
	cfg.DataDir = envString("DATA_DIR", cfg.DataDir)
	cfg.TuningPath = envString("GESTURE_TUNING_PATH", filepath.Join(cfg.DataDir, "gesture.yaml"))
	cfg.UIPassword = strings.TrimSpace(os.Getenv("UI_PASSWORD"))
	cfg.PasswordMode = envBool("PASSWORD_MODE", cfg.PasswordMode)
	cfg.HostURL = envString("HOST_URL", "")
	cfg.HostToken = strings.TrimSpace(os.Getenv("HOST_TOKEN"))

	sensitivity, err := envFloat("SENSITIVITY", cfg.Sensitivity)
	if err != nil {
		return Config{}, err
	}
	if !(sensitivity > 0) || math.IsInf(sensitivity, 0) {
		return Config{}, fmt.Errorf("SENSITIVITY must be > 0")
	}
	cfg.Sensitivity = sensitivity

	wheel, err := envFloat("WHEEL_SCALE", cfg.WheelScale)
	if err != nil {
		return Config{}, err
	}
	if !(wheel > 0) {
		return Config{}, fmt.Errorf("WHEEL_SCALE must be > 0")
	}
	cfg.WheelScale = wheel

	zoom, err := envFloat("ZOOM_SCALE", cfg.ZoomScale)
	if err != nil {
		return Config{}, err
	}
	if !(zoom > 0) {
		return Config{}, fmt.Errorf("ZOOM_SCALE must be > 0")
	}
	cfg.ZoomScale = zoom

	queue, err := envInt("HOST_QUEUE", cfg.HostQueue)
	if err != nil {
		return Config{}, err
	}
	if queue <= 0 {
		return Config{}, fmt.Errorf("HOST_QUEUE must be > 0")
	}
	cfg.HostQueue = queue

	if cfg.HostURL != "" && !strings.HasPrefix(cfg.HostURL, "ws://") && !strings.HasPrefix(cfg.HostURL, "wss://") {
		return Config{}, fmt.Errorf("HOST_URL must start with ws:// or wss://")
	}
	if cfg.PasswordMode && cfg.UIPassword == "" {
		return Config{}, errors.New("UI_PASSWORD is required")
	}

	return cfg, nil
}

// envString returns an env override when present, otherwise a default.
func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envInt returns an int env override when present, otherwise a default.
func envInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

// envFloat returns a float env override when present, otherwise a default.
func envFloat(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return value, nil
}

// envBool returns a bool env override when present, otherwise a default.
func envBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

// loadEnvFile loads KEY=VALUE pairs from a .env file.
func loadEnvFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := parseEnvLine(line)
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); !exists {
			if err := os.Setenv(key, value); err != nil {
				return err
			}
		}
	}

	return nil
}

// parseEnvLine parses a single .env line into key/value.
func parseEnvLine(line string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	if strings.HasPrefix(line, "export ") {
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
	}
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	key := strings.TrimSpace(parts[0])
	value := strings.TrimSpace(parts[1])
	if key == "" {
		return "", "", false
	}
	value = strings.Trim(value, `"'`)
	return key, value, true
}
