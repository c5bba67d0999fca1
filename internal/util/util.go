package util

import (
	"github.com/lltcggie/daikin2mqtt/internal/config"

	"go.uber.org/zap"
)

func LoadTestConfig() config.Config {
	return config.Config{
		LogLevel: zap.DebugLevel,
		Device: config.DeviceConfig{
			Host:                   "-.-.-.-",
			PollIntervalMillis:     6000,
			TransportTimeoutMillis: 4000,
		},
		MQTT: config.MQTTConfig{
			Host:      "localhost",
			Port:      1883,
			BaseTopic: "daikin2mqtt",
		},
		Port: 8080,
	}
}
