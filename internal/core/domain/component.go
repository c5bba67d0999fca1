package domain

const (
	SENSOR_ID_BRIDGE_STATE    = "bridge"
	SENSOR_ID_INDOOR_TEMP     = "indoor_temperature"
	SENSOR_ID_INDOOR_HUMIDITY = "indoor_humidity"
	SENSOR_ID_OUTDOOR_TEMP    = "outdoor_temperature"
	SENSOR_ID_PM25            = "pm25"
	SENSOR_ID_DUST            = "dust"
	SENSOR_ID_ODOR            = "odor"
	SENSOR_ID_TODAY_ENERGY    = "today_energy"

	CLIMATE_ID    = "climate"
	FAN_ID        = "fan"
	HUMIDIFIER_ID = "humidifier"

	STATE_CLASS_MEASUREMENT      = "measurement"
	STATE_CLASS_TOTAL_INCREASING = "total_increasing"
	DEVICE_CLASS_TEMPERATURE     = "temperature"
	DEVICE_CLASS_HUMIDITY        = "humidity"
	DEVICE_CLASS_ENERGY          = "energy"
	DEVICE_CLASS_PM25            = "pm25"
	DEVICE_CLASS_AQI             = "aqi"
	DEVICE_CLASS_CONNECTIVITY    = "connectivity"
	ENTITY_CLASS_DIAGNOSTIC      = "diagnostic"
	SENSOR_TYPE_SENSOR           = "sensor"
	SENSOR_TYPE_BINARY           = "binary_sensor"
)

type Device struct {
	Id           string
	Name         string
	Version      string
	Model        string
	Manufacturer string
	ViaDevice    string
}

type GenericSensor struct {
	Device            Device
	Id                string
	SensorType        string
	Name              string
	UniqueId          string
	UnitOfMeasurement string
	StateClass        string // measurement, total_increasing (for acc energy)
	DeviceClass       string // temperature, humidity, energy, pm25
	EntityCategory    string // diagnostic, config, nil
	EnabledByDefault  *bool
	Icon              string
}

type GenericClimate struct {
	Device   Device
	Id       string
	Name     string
	UniqueId string
	Modes    []string
	FanModes []string
	MinTemp  float64
	MaxTemp  float64
	TempStep float64
	Icon     string
}

type GenericFan struct {
	Device      Device
	Id          string
	Name        string
	UniqueId    string
	PresetModes []string
	Icon        string
}

type GenericHumidifier struct {
	Device      Device
	Id          string
	Name        string
	UniqueId    string
	Modes       []string
	MinHumidity int
	MaxHumidity int
	Icon        string
}
