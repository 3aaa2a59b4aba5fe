// Package config provides configuration helpers for go-haptic commands.
package config

import (
	"fmt"
	"os"
)

// Default device configuration.
const (
	DefaultDevicePort  = "80"
	DefaultVoiceVoxURL = "http://localhost:50021"
	DefaultHistoryPath = "haptic-history.db"
)

// DeviceIP returns the actuator IP from DEVICE_IP env var.
// Falls back to the provided default if not set.
func DeviceIP(defaultIP string) string {
	if ip := os.Getenv("DEVICE_IP"); ip != "" {
		return ip
	}
	return defaultIP
}

// DeviceIPRequired returns the actuator IP from DEVICE_IP env var.
// Exits if not set.
func DeviceIPRequired() string {
	ip := os.Getenv("DEVICE_IP")
	if ip == "" {
		fmt.Fprintln(os.Stderr, "Error: DEVICE_IP environment variable is required")
		fmt.Fprintln(os.Stderr, "Usage: DEVICE_IP=192.168.1.100 go run ./cmd/...")
		os.Exit(1)
	}
	return ip
}

// DevicePort returns the actuator HTTP port from DEVICE_PORT env var or default.
func DevicePort() string {
	if port := os.Getenv("DEVICE_PORT"); port != "" {
		return port
	}
	return DefaultDevicePort
}

// DeviceURL returns the actuator HTTP API URL.
func DeviceURL(deviceIP string) string {
	return fmt.Sprintf("http://%s:%s", deviceIP, DevicePort())
}

// VoiceVoxURL returns the VOICEVOX engine URL from VOICEVOX_URL env var or default.
func VoiceVoxURL() string {
	if url := os.Getenv("VOICEVOX_URL"); url != "" {
		return url
	}
	return DefaultVoiceVoxURL
}

// HistoryPath returns the event-log database path from HISTORY_PATH env var or default.
func HistoryPath() string {
	if path := os.Getenv("HISTORY_PATH"); path != "" {
		return path
	}
	return DefaultHistoryPath
}
