package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Load installs defaults and turns on environment overrides. Every
// option can be set through the environment variable of the same name.
func Load() error {
	// HTTP server
	viper.SetDefault("ADDR", ":8080")
	viper.SetDefault("FRONTEND_DIR", "./frontend")
	viper.SetDefault("PRESET_DIR", "./examples/households")
	viper.SetDefault("CORS_ORIGINS", "*")
	viper.SetDefault("LOG_LEVEL", "info")

	// Engine variant
	viper.SetDefault("CLIP_SOLAR", "false")
	viper.SetDefault("BINARY_APPLIANCES", "false")
	viper.SetDefault("MAX_DISCHARGE_KW", 5.0)

	// MQTT feed
	viper.SetDefault("MQTT_BROKER", "tcp://localhost:1883")
	viper.SetDefault("MQTT_TOPIC_PREFIX", "home/energy")

	viper.AutomaticEnv()
	return nil
}

func Addr() string            { return viper.GetString("ADDR") }
func FrontendDir() string     { return viper.GetString("FRONTEND_DIR") }
func PresetDir() string       { return viper.GetString("PRESET_DIR") }
func LogLevel() string        { return viper.GetString("LOG_LEVEL") }
func ClipSolar() bool         { return viper.GetBool("CLIP_SOLAR") }
func BinaryAppliances() bool  { return viper.GetBool("BINARY_APPLIANCES") }
func MaxDischargeKW() float64 { return viper.GetFloat64("MAX_DISCHARGE_KW") }
func MQTTBroker() string      { return viper.GetString("MQTT_BROKER") }
func MQTTTopicPrefix() string { return viper.GetString("MQTT_TOPIC_PREFIX") }

// CORSOrigins returns the comma-separated CORS_ORIGINS value as a list.
func CORSOrigins() []string {
	parts := strings.Split(viper.GetString("CORS_ORIGINS"), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
