package mqtt

import (
	"fmt"

	"github.com/lltcggie/daikin2mqtt/internal/core/domain"
)

type HADiscoveryDevice struct {
	Id           []string `json:"identifiers"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	Version      string   `json:"sw_version,omitempty"`
	Model        string   `json:"model,omitempty"`
	Name         string   `json:"name,omitempty"`
	ViaDevice    string   `json:"via_device,omitempty"`
}

type HADiscoveryConfig struct {
	Device            HADiscoveryDevice `json:"device"`
	StateTopic        string            `json:"state_topic"`
	StateClass        string            `json:"state_class,omitempty"`
	DeviceClass       string            `json:"device_class,omitempty"`
	UnitOfMeasurement string            `json:"unit_of_measurement,omitempty"`
	AvTopic           string            `json:"availability_topic,omitempty"`
	EntityCategory    string            `json:"entity_category,omitempty"`
	Name              string            `json:"name"`
	UniqueId          string            `json:"unique_id"`
	Platform          string            `json:"platform"`
	EnabledByDefault  *bool             `json:"enabled_by_default,omitempty"`
	PayloadOn         string            `json:"payload_on,omitempty"`
	PayloadOff        string            `json:"payload_off,omitempty"`
	Icon              string            `json:"icon,omitempty"`
}

type HAClimateDiscoveryConfig struct {
	Device               HADiscoveryDevice `json:"device"`
	ModeStateTopic       string            `json:"mode_state_topic"`
	ModeCommandTopic     string            `json:"mode_command_topic"`
	TempStateTopic       string            `json:"temperature_state_topic"`
	TempCommandTopic     string            `json:"temperature_command_topic"`
	FanModeStateTopic    string            `json:"fan_mode_state_topic"`
	FanModeCommandTopic  string            `json:"fan_mode_command_topic"`
	CurrentTempTopic     string            `json:"current_temperature_topic,omitempty"`
	CurrentHumidityTopic string            `json:"current_humidity_topic,omitempty"`
	Modes                []string          `json:"modes"`
	FanModes             []string          `json:"fan_modes"`
	MinTemp              float64           `json:"min_temp,omitempty"`
	MaxTemp              float64           `json:"max_temp,omitempty"`
	TempStep             float64           `json:"temp_step,omitempty"`
	AvTopic              string            `json:"availability_topic,omitempty"`
	Name                 string            `json:"name"`
	UniqueId             string            `json:"unique_id"`
	Platform             string            `json:"platform"`
	Icon                 string            `json:"icon,omitempty"`
}

type HAFanDiscoveryConfig struct {
	Device                 HADiscoveryDevice `json:"device"`
	StateTopic             string            `json:"state_topic"`
	CommandTopic           string            `json:"command_topic"`
	PresetModeStateTopic   string            `json:"preset_mode_state_topic,omitempty"`
	PresetModeCommandTopic string            `json:"preset_mode_command_topic,omitempty"`
	PercentageStateTopic   string            `json:"percentage_state_topic,omitempty"`
	PercentageCommandTopic string            `json:"percentage_command_topic,omitempty"`
	PresetModes            []string          `json:"preset_modes,omitempty"`
	PayloadOn              string            `json:"payload_on,omitempty"`
	PayloadOff             string            `json:"payload_off,omitempty"`
	AvTopic                string            `json:"availability_topic,omitempty"`
	Name                   string            `json:"name"`
	UniqueId               string            `json:"unique_id"`
	Platform               string            `json:"platform"`
	Icon                   string            `json:"icon,omitempty"`
}

type HAHumidifierDiscoveryConfig struct {
	Device                     HADiscoveryDevice `json:"device"`
	StateTopic                 string            `json:"state_topic"`
	CommandTopic               string            `json:"command_topic"`
	ModeStateTopic             string            `json:"mode_state_topic,omitempty"`
	ModeCommandTopic           string            `json:"mode_command_topic,omitempty"`
	TargetHumidityStateTopic   string            `json:"target_humidity_state_topic,omitempty"`
	TargetHumidityCommandTopic string            `json:"target_humidity_command_topic,omitempty"`
	Modes                      []string          `json:"modes,omitempty"`
	MinHumidity                int               `json:"min_humidity,omitempty"`
	MaxHumidity                int               `json:"max_humidity,omitempty"`
	PayloadOn                  string            `json:"payload_on,omitempty"`
	PayloadOff                 string            `json:"payload_off,omitempty"`
	AvTopic                    string            `json:"availability_topic,omitempty"`
	Name                       string            `json:"name"`
	UniqueId                   string            `json:"unique_id"`
	Platform                   string            `json:"platform"`
	Icon                       string            `json:"icon,omitempty"`
}

func HADiscoverySensorTopic(sensor domain.GenericSensor) string {
	return fmt.Sprintf("homeassistant/%s/%s/%s/config", sensor.SensorType, sensor.Device.Id, sensor.Id)
}

func HADiscoveryClimateTopic(climate domain.GenericClimate) string {
	return fmt.Sprintf("homeassistant/climate/%s/%s/config", climate.Device.Id, climate.Id)
}

func HADiscoveryFanTopic(fan domain.GenericFan) string {
	return fmt.Sprintf("homeassistant/fan/%s/%s/config", fan.Device.Id, fan.Id)
}

func HADiscoveryHumidifierTopic(humidifier domain.GenericHumidifier) string {
	return fmt.Sprintf("homeassistant/humidifier/%s/%s/config", humidifier.Device.Id, humidifier.Id)
}

func GenericSensorToHADiscoveryMessage(client *MQTTClient, sensor domain.GenericSensor) HADiscoveryConfig {
	dev := device(sensor.Device)
	var topic string
	switch {
	case sensor.Id == domain.SENSOR_ID_BRIDGE_STATE:
		topic = client.BridgeStateTopic()
	case sensor.SensorType == domain.SENSOR_TYPE_SENSOR:
		topic = client.SensorStateTopic(sensor.Id)
	case sensor.SensorType == domain.SENSOR_TYPE_BINARY:
		topic = client.BinarySensorStateTopic(sensor.Id)
	}
	disConfig := HADiscoveryConfig{
		Device:            dev,
		StateTopic:        topic,
		StateClass:        sensor.StateClass,
		DeviceClass:       sensor.DeviceClass,
		UnitOfMeasurement: sensor.UnitOfMeasurement,
		AvTopic:           client.BridgeStateTopic(),
		EntityCategory:    sensor.EntityCategory,
		Name:              sensor.Name,
		UniqueId:          sensor.UniqueId,
		Icon:              sensor.Icon,
		EnabledByDefault:  sensor.EnabledByDefault,
		Platform:          "mqtt",
	}
	if sensor.Id == domain.SENSOR_ID_BRIDGE_STATE {
		disConfig.PayloadOn = MQTT_PAYLOAD_ONLINE
		disConfig.PayloadOff = MQTT_PAYLOAD_OFFLINE
	} else if sensor.SensorType == domain.SENSOR_TYPE_BINARY {
		disConfig.PayloadOn = MQTT_PAYLOAD_ON
		disConfig.PayloadOff = MQTT_PAYLOAD_OFF
	}
	return disConfig
}

func GenericClimateToHADiscoveryMessage(client *MQTTClient, climate domain.GenericClimate) HAClimateDiscoveryConfig {
	return HAClimateDiscoveryConfig{
		Device:               device(climate.Device),
		ModeStateTopic:       client.AttributeStateTopic(ENTITY_CLIMATE, ATTR_MODE),
		ModeCommandTopic:     client.AttributeCommandTopic(ENTITY_CLIMATE, ATTR_MODE),
		TempStateTopic:       client.AttributeStateTopic(ENTITY_CLIMATE, ATTR_TARGET_TEMP),
		TempCommandTopic:     client.AttributeCommandTopic(ENTITY_CLIMATE, ATTR_TARGET_TEMP),
		FanModeStateTopic:    client.AttributeStateTopic(ENTITY_CLIMATE, ATTR_FAN_MODE),
		FanModeCommandTopic:  client.AttributeCommandTopic(ENTITY_CLIMATE, ATTR_FAN_MODE),
		CurrentTempTopic:     client.AttributeStateTopic(ENTITY_CLIMATE, "current_temperature"),
		CurrentHumidityTopic: client.AttributeStateTopic(ENTITY_CLIMATE, "current_humidity"),
		Modes:                climate.Modes,
		FanModes:             climate.FanModes,
		MinTemp:              climate.MinTemp,
		MaxTemp:              climate.MaxTemp,
		TempStep:             climate.TempStep,
		AvTopic:              client.BridgeStateTopic(),
		Name:                 climate.Name,
		UniqueId:             climate.UniqueId,
		Icon:                 climate.Icon,
		Platform:             "mqtt",
	}
}

func GenericFanToHADiscoveryMessage(client *MQTTClient, fan domain.GenericFan) HAFanDiscoveryConfig {
	return HAFanDiscoveryConfig{
		Device:                 device(fan.Device),
		StateTopic:             client.EntityStateTopic(ENTITY_FAN),
		CommandTopic:           client.EntityCommandTopic(ENTITY_FAN),
		PresetModeStateTopic:   client.AttributeStateTopic(ENTITY_FAN, ATTR_PRESET_MODE),
		PresetModeCommandTopic: client.AttributeCommandTopic(ENTITY_FAN, ATTR_PRESET_MODE),
		PercentageStateTopic:   client.AttributeStateTopic(ENTITY_FAN, ATTR_PERCENTAGE),
		PercentageCommandTopic: client.AttributeCommandTopic(ENTITY_FAN, ATTR_PERCENTAGE),
		PresetModes:            fan.PresetModes,
		PayloadOn:              MQTT_PAYLOAD_ON,
		PayloadOff:             MQTT_PAYLOAD_OFF,
		AvTopic:                client.BridgeStateTopic(),
		Name:                   fan.Name,
		UniqueId:               fan.UniqueId,
		Icon:                   fan.Icon,
		Platform:               "mqtt",
	}
}

func GenericHumidifierToHADiscoveryMessage(client *MQTTClient, humidifier domain.GenericHumidifier) HAHumidifierDiscoveryConfig {
	return HAHumidifierDiscoveryConfig{
		Device:                     device(humidifier.Device),
		StateTopic:                 client.EntityStateTopic(ENTITY_HUMIDIFIER),
		CommandTopic:               client.EntityCommandTopic(ENTITY_HUMIDIFIER),
		ModeStateTopic:             client.AttributeStateTopic(ENTITY_HUMIDIFIER, ATTR_MODE),
		ModeCommandTopic:           client.AttributeCommandTopic(ENTITY_HUMIDIFIER, ATTR_MODE),
		TargetHumidityStateTopic:   client.AttributeStateTopic(ENTITY_HUMIDIFIER, ATTR_HUMIDITY),
		TargetHumidityCommandTopic: client.AttributeCommandTopic(ENTITY_HUMIDIFIER, ATTR_HUMIDITY),
		Modes:                      humidifier.Modes,
		MinHumidity:                humidifier.MinHumidity,
		MaxHumidity:                humidifier.MaxHumidity,
		PayloadOn:                  MQTT_PAYLOAD_ON,
		PayloadOff:                 MQTT_PAYLOAD_OFF,
		AvTopic:                    client.BridgeStateTopic(),
		Name:                       humidifier.Name,
		UniqueId:                   humidifier.UniqueId,
		Icon:                       humidifier.Icon,
		Platform:                   "mqtt",
	}
}

func device(d domain.Device) HADiscoveryDevice {
	return HADiscoveryDevice{
		Id:           []string{d.Id},
		Manufacturer: d.Manufacturer,
		Version:      d.Version,
		Model:        d.Model,
		Name:         d.Name,
		ViaDevice:    d.ViaDevice,
	}
}
