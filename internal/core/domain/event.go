package domain

import "fmt"

type SensorUpdateEventMixIn struct {
	Id string
}

type SensorUpdateEvent interface {
	SensorUpdateEvent() string
	SensorId() string
}

func (e SensorUpdateEventMixIn) SensorUpdateEvent() string {
	return fmt.Sprintf("%T", e)
}

func (e SensorUpdateEventMixIn) SensorId() string {
	return e.Id
}

type FloatSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value    float64
	Decimals uint
}

type BinarySensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value bool
}

type TextSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value string
}

type BridgeStateUpdateEvent struct {
	SensorUpdateEventMixIn
	Value bool
}

// Climate entity

type ClimateModeUpdateEvent struct {
	SensorUpdateEventMixIn
	Mode string
}

type ClimateTargetTemperatureUpdateEvent struct {
	SensorUpdateEventMixIn
	Value float64
}

type ClimateFanModeUpdateEvent struct {
	SensorUpdateEventMixIn
	Value string
}

type ClimateCurrentTemperatureUpdateEvent struct {
	SensorUpdateEventMixIn
	Value float64
}

type ClimateCurrentHumidityUpdateEvent struct {
	SensorUpdateEventMixIn
	Value float64
}

// Fan entity

type FanStateUpdateEvent struct {
	SensorUpdateEventMixIn
	On bool
}

type FanPresetModeUpdateEvent struct {
	SensorUpdateEventMixIn
	Mode string
}

type FanPercentUpdateEvent struct {
	SensorUpdateEventMixIn
	Percent int
}

// Humidifier entity

type HumidifierModeUpdateEvent struct {
	SensorUpdateEventMixIn
	Mode string
}

type HumidifierStateUpdateEvent struct {
	SensorUpdateEventMixIn
	On bool
}
