package domain

import (
	"fmt"

	"github.com/lltcggie/daikin2mqtt/pkg/dsiot"
)

// DeviceCommandRequest

type DeviceCommandRequest interface {
	ActorRequest
	DeviceCommand() string
}

type DeviceCommandRequestMixIn struct {
	ActorRequestMixIn
}

func (r DeviceCommandRequestMixIn) DeviceCommand() string {
	return fmt.Sprintf("%T", r)
}

// DeviceCommandResponse

type DeviceCommandResponse interface {
	ActorResponse
	DeviceCommandResponse() string
}

type DeviceCommandResponseMixIn struct {
	ActorResponseMixIn
}

func (r DeviceCommandResponseMixIn) DeviceCommandResponse() string {
	return fmt.Sprintf("%T", r)
}

// Device commands

type SetPowerRequest struct {
	DeviceCommandRequestMixIn
	On bool
}

type SetPowerResponse struct {
	DeviceCommandResponseMixIn
}

type SetModeRequest struct {
	DeviceCommandRequestMixIn
	Mode dsiot.Mode
}

type SetModeResponse struct {
	DeviceCommandResponseMixIn
}

type SetTargetTemperatureRequest struct {
	DeviceCommandRequestMixIn
	Value float64
}

type SetTargetTemperatureResponse struct {
	DeviceCommandResponseMixIn
}

type SetFanModeRequest struct {
	DeviceCommandRequestMixIn
	Fan dsiot.FanMode
}

type SetFanModeResponse struct {
	DeviceCommandResponseMixIn
}

type SetFanPercentRequest struct {
	DeviceCommandRequestMixIn
	Percent int
}

type SetFanPercentResponse struct {
	DeviceCommandResponseMixIn
}

type SetHumidifyRequest struct {
	DeviceCommandRequestMixIn
	Mode dsiot.HumidifyMode
}

type SetHumidifyResponse struct {
	DeviceCommandResponseMixIn
}

type SetHumidifyPercentRequest struct {
	DeviceCommandRequestMixIn
	Percent int
}

type SetHumidifyPercentResponse struct {
	DeviceCommandResponseMixIn
}

type GetDeviceStateRequest struct {
	DeviceCommandRequestMixIn
}

type GetDeviceStateResponse struct {
	DeviceCommandResponseMixIn
	State *dsiot.DeviceState
}

// ensure interface compliance
var _ DeviceCommandRequest = (*SetPowerRequest)(nil)
