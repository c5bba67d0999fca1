package events

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	. "github.com/lltcggie/daikin2mqtt/internal/core/domain"
	"github.com/lltcggie/daikin2mqtt/pkg/dsiot"

	"github.com/carlmjohnson/versioninfo"
)

const (
	DEFAULT_MIN_TEMP  = 18.0
	DEFAULT_MAX_TEMP  = 32.0
	DEFAULT_TEMP_STEP = 0.5
)

func BridgeDevice(baseTopic string) Device {
	return Device{
		Id:           fmt.Sprintf("daikin_bridge_%s", md5HashShort(baseTopic)),
		Manufacturer: "lltcggie",
		Model:        "daikin2mqtt",
		Version:      versioninfo.Short(),
		Name:         fmt.Sprintf("Daikin2MQTT %s", md5HashShort(baseTopic)),
	}
}

func ApplianceDevice(identity dsiot.DeviceIdentity, bridgeDevice Device) Device {
	name := identity.Name
	if name == "" {
		name = fmt.Sprintf("Daikin %s", md5HashShort(identity.MAC))
	}
	return Device{
		Id:           fmt.Sprintf("daikin_%s", strings.ToLower(identity.MAC)),
		Version:      identity.FirmwareVersion,
		Manufacturer: "Daikin",
		Model:        string(identity.FamilyTag),
		Name:         name,
		ViaDevice:    bridgeDevice.Id,
	}
}

func ClimateEntity(device Device, state *dsiot.DeviceState) GenericClimate {
	minTemp, maxTemp := DEFAULT_MIN_TEMP, DEFAULT_MAX_TEMP
	if state != nil && state.TargetTemperatureMin != nil && state.TargetTemperatureMax != nil {
		minTemp = *state.TargetTemperatureMin
		maxTemp = *state.TargetTemperatureMax
	}
	return GenericClimate{
		Device:   device,
		Id:       CLIMATE_ID,
		Name:     device.Name,
		UniqueId: uniqueId(device.Id, CLIMATE_ID),
		Modes: []string{
			"off",
			string(dsiot.ModeAuto),
			string(dsiot.ModeCool),
			string(dsiot.ModeHeat),
			string(dsiot.ModeDry),
			string(dsiot.ModeFanOnly),
		},
		FanModes: []string{
			string(dsiot.FanAuto),
			string(dsiot.FanQuiet),
			"1", "2", "3", "4", "5",
		},
		MinTemp:  minTemp,
		MaxTemp:  maxTemp,
		TempStep: DEFAULT_TEMP_STEP,
	}
}

func AirconHumidifierEntity(device Device) GenericHumidifier {
	return GenericHumidifier{
		Device:   device,
		Id:       HUMIDIFIER_ID,
		Name:     fmt.Sprintf("%s humidifier", device.Name),
		UniqueId: uniqueId(device.Id, HUMIDIFIER_ID),
		Modes: []string{
			string(dsiot.HumidifyAuto),
			string(dsiot.HumidifyLow),
			string(dsiot.HumidifyStandard),
			string(dsiot.HumidifyHigh),
		},
		MinHumidity: 0,
		MaxHumidity: 100,
		Icon:        "mdi:air-humidifier",
	}
}

func PurifierFanEntity(device Device) GenericFan {
	return GenericFan{
		Device:   device,
		Id:       FAN_ID,
		Name:     device.Name,
		UniqueId: uniqueId(device.Id, FAN_ID),
		PresetModes: []string{
			string(dsiot.ModeAuto),
			string(dsiot.ModeEcono),
			string(dsiot.ModePollen),
			string(dsiot.ModeCirculator),
			string(dsiot.ModeMoist),
		},
		Icon: "mdi:air-purifier",
	}
}

func PurifierHumidifierEntity(device Device) GenericHumidifier {
	return GenericHumidifier{
		Device:   device,
		Id:       HUMIDIFIER_ID,
		Name:     fmt.Sprintf("%s humidifier", device.Name),
		UniqueId: uniqueId(device.Id, HUMIDIFIER_ID),
		Modes: []string{
			string(dsiot.HumidifyOff),
			string(dsiot.HumidifyAuto),
			string(dsiot.HumidifyLow),
			string(dsiot.HumidifyStandard),
			string(dsiot.HumidifyHigh),
		},
		MinHumidity: 0,
		MaxHumidity: 100,
		Icon:        "mdi:air-humidifier",
	}
}

func AirconSensors(device Device) []GenericSensor {

	sensors := commonSensors(device)

	// Outdoor Temperature
	sensors = append(sensors, GenericSensor{
		Device:            device,
		Id:                SENSOR_ID_OUTDOOR_TEMP,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Outdoor temperature",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_TEMPERATURE,
		UnitOfMeasurement: "°C",
		UniqueId:          uniqueId(device.Id, SENSOR_ID_OUTDOOR_TEMP),
	})

	// Today Energy
	sensors = append(sensors, GenericSensor{
		Device:            device,
		Id:                SENSOR_ID_TODAY_ENERGY,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Today energy",
		StateClass:        STATE_CLASS_TOTAL_INCREASING,
		DeviceClass:       DEVICE_CLASS_ENERGY,
		UnitOfMeasurement: "kWh",
		UniqueId:          uniqueId(device.Id, SENSOR_ID_TODAY_ENERGY),
	})

	return sensors
}

func PurifierSensors(device Device) []GenericSensor {

	sensors := commonSensors(device)

	// PM2.5
	sensors = append(sensors, GenericSensor{
		Device:            device,
		Id:                SENSOR_ID_PM25,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "PM2.5",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_PM25,
		UnitOfMeasurement: "µg/m³",
		UniqueId:          uniqueId(device.Id, SENSOR_ID_PM25),
	})

	// Dust level
	sensors = append(sensors, GenericSensor{
		Device:           device,
		Id:               SENSOR_ID_DUST,
		SensorType:       SENSOR_TYPE_SENSOR,
		Name:             "Dust level",
		StateClass:       STATE_CLASS_MEASUREMENT,
		Icon:             "mdi:weather-dust",
		EnabledByDefault: optionalBool(false),
		UniqueId:         uniqueId(device.Id, SENSOR_ID_DUST),
	})

	// Odor level
	sensors = append(sensors, GenericSensor{
		Device:           device,
		Id:               SENSOR_ID_ODOR,
		SensorType:       SENSOR_TYPE_SENSOR,
		Name:             "Odor level",
		StateClass:       STATE_CLASS_MEASUREMENT,
		Icon:             "mdi:scent",
		EnabledByDefault: optionalBool(false),
		UniqueId:         uniqueId(device.Id, SENSOR_ID_ODOR),
	})

	return sensors
}

func commonSensors(device Device) []GenericSensor {

	var sensors []GenericSensor

	// Indoor Temperature
	sensors = append(sensors, GenericSensor{
		Device:            device,
		Id:                SENSOR_ID_INDOOR_TEMP,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Indoor temperature",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_TEMPERATURE,
		UnitOfMeasurement: "°C",
		UniqueId:          uniqueId(device.Id, SENSOR_ID_INDOOR_TEMP),
	})

	// Indoor Humidity
	sensors = append(sensors, GenericSensor{
		Device:            device,
		Id:                SENSOR_ID_INDOOR_HUMIDITY,
		SensorType:        SENSOR_TYPE_SENSOR,
		Name:              "Indoor humidity",
		StateClass:        STATE_CLASS_MEASUREMENT,
		DeviceClass:       DEVICE_CLASS_HUMIDITY,
		UnitOfMeasurement: "%",
		UniqueId:          uniqueId(device.Id, SENSOR_ID_INDOOR_HUMIDITY),
	})

	return sensors
}

func BridgeSensors(bridgeDevice Device) []GenericSensor {

	var sensors []GenericSensor

	// Bridge connection state
	sensors = append(sensors, GenericSensor{
		Device:         bridgeDevice,
		Id:             SENSOR_ID_BRIDGE_STATE,
		SensorType:     SENSOR_TYPE_BINARY,
		Name:           "Connection state",
		DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
		EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
		UniqueId:       uniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
	})

	return sensors
}

func uniqueId(baseId, id string) string {
	return fmt.Sprintf("uid_%s_%s", baseId, id)
}

func md5Hash(text string) string {
	hash := md5.Sum([]byte(text))
	return hex.EncodeToString(hash[:])
}

func md5HashShort(text string) string {
	hash := md5Hash(text)
	return hash[0:8]
}

func optionalBool(value bool) *bool {
	return &value
}
