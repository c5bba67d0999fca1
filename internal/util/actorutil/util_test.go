package actorutil

import (
	"testing"

	"github.com/lltcggie/daikin2mqtt/internal/core/domain"
	"github.com/lltcggie/daikin2mqtt/internal/mqtt"
	"github.com/lltcggie/daikin2mqtt/pkg/dsiot"

	"github.com/stretchr/testify/assert"
)

func TestParsedCommandClimateModeOff(t *testing.T) {

	cmd, err := ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{
		Entity:    mqtt.ENTITY_CLIMATE,
		Attribute: mqtt.ATTR_MODE,
		Payload:   "off",
	})
	assert.NoError(t, err)
	power, ok := cmd.(domain.SetPowerRequest)
	assert.True(t, ok)
	assert.False(t, power.On)
}

func TestParsedCommandClimateMode(t *testing.T) {

	cmd, err := ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{
		Entity:    mqtt.ENTITY_CLIMATE,
		Attribute: mqtt.ATTR_MODE,
		Payload:   "heat",
	})
	assert.NoError(t, err)
	mode, ok := cmd.(domain.SetModeRequest)
	assert.True(t, ok)
	assert.Equal(t, dsiot.ModeHeat, mode.Mode)
}

func TestParsedCommandClimateTargetTemperature(t *testing.T) {

	cmd, err := ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{
		Entity:    mqtt.ENTITY_CLIMATE,
		Attribute: mqtt.ATTR_TARGET_TEMP,
		Payload:   "23.5",
	})
	assert.NoError(t, err)
	temp, ok := cmd.(domain.SetTargetTemperatureRequest)
	assert.True(t, ok)
	assert.Equal(t, 23.5, temp.Value)
}

func TestParsedCommandClimateTargetTemperatureInvalid(t *testing.T) {

	cmd, err := ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{
		Entity:    mqtt.ENTITY_CLIMATE,
		Attribute: mqtt.ATTR_TARGET_TEMP,
		Payload:   "lorem",
	})
	assert.Error(t, err)
	assert.Nil(t, cmd)
}

func TestParsedCommandFanPercentage(t *testing.T) {

	cmd, err := ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{
		Entity:    mqtt.ENTITY_FAN,
		Attribute: mqtt.ATTR_PERCENTAGE,
		Payload:   "75",
	})
	assert.NoError(t, err)
	pct, ok := cmd.(domain.SetFanPercentRequest)
	assert.True(t, ok)
	assert.Equal(t, 75, pct.Percent)
}

func TestParsedCommandFanPercentageOutOfRange(t *testing.T) {

	cmd, err := ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{
		Entity:    mqtt.ENTITY_FAN,
		Attribute: mqtt.ATTR_PERCENTAGE,
		Payload:   "250",
	})
	assert.Error(t, err)
	assert.Nil(t, cmd)
}

func TestParsedCommandHumidifierPower(t *testing.T) {

	cmd, err := ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{
		Entity:    mqtt.ENTITY_HUMIDIFIER,
		Attribute: mqtt.ATTR_POWER,
		Payload:   mqtt.MQTT_PAYLOAD_ON,
	})
	assert.NoError(t, err)
	hum, ok := cmd.(domain.SetHumidifyRequest)
	assert.True(t, ok)
	assert.Equal(t, dsiot.HumidifyAuto, hum.Mode)
}

func TestParsedCommandUnknownEntity(t *testing.T) {

	cmd, err := ParsedMQTTCommandToCommand(mqtt.ParsedMQTTCommand{
		Entity:    "cover",
		Attribute: mqtt.ATTR_MODE,
		Payload:   "open",
	})
	assert.NoError(t, err)
	assert.Nil(t, cmd)
}
