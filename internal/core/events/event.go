package events

import (
	. "github.com/lltcggie/daikin2mqtt/internal/core/domain"
	"github.com/lltcggie/daikin2mqtt/pkg/dsiot"
)

// DeviceStateToUpdateEvents flattens one decoded device state into the full
// set of entity update events. A refresh publishes either all of these or,
// on a decode error upstream, none.
func DeviceStateToUpdateEvents(family dsiot.Family, state *dsiot.DeviceState) []any {
	switch family {
	case dsiot.FamilyAircon:
		return airconStateToUpdateEvents(state)
	case dsiot.FamilyPurifier:
		return purifierStateToUpdateEvents(state)
	}
	return nil
}

func airconStateToUpdateEvents(state *dsiot.DeviceState) []any {
	var events []any

	mode := "off"
	if state.PowerOn {
		mode = string(state.Mode)
	}
	events = append(events, ClimateModeUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: CLIMATE_ID,
		},
		Mode: mode,
	})
	if state.TargetTemperature != nil {
		events = append(events, ClimateTargetTemperatureUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: CLIMATE_ID,
			},
			Value: *state.TargetTemperature,
		})
	}
	if state.FanMode != "" {
		events = append(events, ClimateFanModeUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: CLIMATE_ID,
			},
			Value: string(state.FanMode),
		})
	}
	if state.IndoorTemperature != nil {
		events = append(events, ClimateCurrentTemperatureUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: CLIMATE_ID,
			},
			Value: *state.IndoorTemperature,
		})
	}
	if state.IndoorHumidity != nil {
		events = append(events, ClimateCurrentHumidityUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: CLIMATE_ID,
			},
			Value: *state.IndoorHumidity,
		})
	}
	if state.HumidifyMode != "" {
		events = append(events, HumidifierModeUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: HUMIDIFIER_ID,
			},
			Mode: string(state.HumidifyMode),
		})
	}
	events = append(events, commonSensorEvents(state)...)
	if state.OutdoorTemperature != nil {
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: SENSOR_ID_OUTDOOR_TEMP,
			},
			Value:    *state.OutdoorTemperature,
			Decimals: 1,
		})
	}
	if state.TodayEnergyKWh != nil {
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: SENSOR_ID_TODAY_ENERGY,
			},
			Value:    *state.TodayEnergyKWh,
			Decimals: 3,
		})
	}

	return events
}

func purifierStateToUpdateEvents(state *dsiot.DeviceState) []any {
	var events []any

	events = append(events, FanStateUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: FAN_ID,
		},
		On: state.PowerOn,
	})
	events = append(events, FanPresetModeUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: FAN_ID,
		},
		Mode: string(state.Mode),
	})
	events = append(events, FanPercentUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: FAN_ID,
		},
		Percent: state.FanPercent,
	})
	if state.HumidifyMode != "" {
		events = append(events, HumidifierStateUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: HUMIDIFIER_ID,
			},
			On: state.PowerOn && state.HumidifyMode != dsiot.HumidifyOff,
		})
		events = append(events, HumidifierModeUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: HUMIDIFIER_ID,
			},
			Mode: string(state.HumidifyMode),
		})
	}
	events = append(events, commonSensorEvents(state)...)
	if state.PM25 != nil {
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: SENSOR_ID_PM25,
			},
			Value:    *state.PM25,
			Decimals: 0,
		})
	}
	if state.Dust != nil {
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: SENSOR_ID_DUST,
			},
			Value:    *state.Dust,
			Decimals: 0,
		})
	}
	if state.Odor != nil {
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: SENSOR_ID_ODOR,
			},
			Value:    *state.Odor,
			Decimals: 0,
		})
	}

	return events
}

func commonSensorEvents(state *dsiot.DeviceState) []any {
	var events []any
	if state.IndoorTemperature != nil {
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: SENSOR_ID_INDOOR_TEMP,
			},
			Value:    *state.IndoorTemperature,
			Decimals: 1,
		})
	}
	if state.IndoorHumidity != nil {
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: SENSOR_ID_INDOOR_HUMIDITY,
			},
			Value:    *state.IndoorHumidity,
			Decimals: 0,
		})
	}
	return events
}
