package domain

import "github.com/lltcggie/daikin2mqtt/pkg/dsiot"

const (
	ACTOR_ID_MASTER       = "master"
	ACTOR_ID_DEVICE       = "device"
	ACTOR_ID_CONTROLLER   = "controller"
	ACTOR_ID_MQTT         = "mqtt"
	ACTOR_ID_HA_DISCOVERY = "hadiscovery"
)

type ProbeDeviceRequest struct {
	ActorRequestMixIn
}

type ProbeDeviceResponse struct {
	ActorResponseMixIn
	Identity *dsiot.DeviceIdentity
	Family   dsiot.Family
}

type FetchSnapshotRequest struct {
	ActorRequestMixIn
}

type FetchSnapshotResponse struct {
	ActorResponseMixIn
	Snapshot *dsiot.Snapshot
	State    *dsiot.DeviceState
}

type SendPatchRequest struct {
	ActorRequestMixIn
	Patch *dsiot.Patch
}

type SendPatchResponse struct {
	ActorResponseMixIn
}

type PublishMessageRequest struct {
	ActorRequestMixIn
	Topic   string
	Payload string
	Retain  bool
}

type PublishMessageResponse struct {
	ActorResponseMixIn
}

type PublishSensorUpdateRequest struct {
	ActorRequestMixIn
	Retain bool
	Event  SensorUpdateEvent
}

type PublishSensorUpdateResponse struct {
	ActorResponseMixIn
}

type PublishDiscoveryRequest struct {
	ActorRequestMixIn
	Climates    []GenericClimate
	Fans        []GenericFan
	Humidifiers []GenericHumidifier
	Sensors     []GenericSensor
}

type PublishDiscoveryResponse struct {
	ActorResponseMixIn
}

type ActorHealthRequest struct {
	ActorRequestMixIn
}

type ActorHealthResponse struct {
	ActorResponseMixIn
	Id      string
	Healthy bool
	State   string
}
