package actor

import (
	"errors"
	"fmt"
	"time"

	"github.com/lltcggie/daikin2mqtt/internal/config"
	"github.com/lltcggie/daikin2mqtt/internal/core/domain"
	"github.com/lltcggie/daikin2mqtt/internal/core/events"
	"github.com/lltcggie/daikin2mqtt/internal/util/actorutil"
	"github.com/lltcggie/daikin2mqtt/pkg/dsiot"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

// HADiscoveryActor publishes the Home Assistant discovery documents once the
// device identity is known, then goes quiet.
type HADiscoveryActor struct {
	config             *config.Config
	behavior           actor.Behavior
	stash              *actorutil.Stash
	deviceActor        *actor.PID
	mqttActor          *actor.PID
	controllerActor    *actor.PID
	deviceActorHealthy bool
	mqttActorHealthy   bool
	healthyRecv        int

	identity *dsiot.DeviceIdentity
	family   dsiot.Family

	logger *zap.Logger
}

func NewHADiscoveryActor(config *config.Config, deviceActor *actor.PID, mqttActor *actor.PID, controllerActor *actor.PID, logger *zap.Logger) *HADiscoveryActor {
	act := &HADiscoveryActor{
		config:          config,
		deviceActor:     deviceActor,
		mqttActor:       mqttActor,
		controllerActor: controllerActor,
		behavior:        actor.NewBehavior(),
		stash:           &actorutil.Stash{},
		logger:          actorutil.ActorLogger(domain.ACTOR_ID_HA_DISCOVERY, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *HADiscoveryActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *HADiscoveryActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("hadiscovery@starting started")

		// Check device and MQTT actor healthy
		state.healthyRecv = 0
		state.deviceActorHealthy = false
		state.mqttActorHealthy = false
		// Device Actor Request
		actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.deviceActor, domain.ActorHealthRequest{}, 2*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_DEVICE,
				Healthy: false,
			}
		})
		// MQTT Actor Request
		actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.mqttActor, domain.ActorHealthRequest{}, 2*time.Second), func(err error) any {
			return domain.ActorHealthResponse{
				Id:      domain.ACTOR_ID_MQTT,
				Healthy: false,
			}
		})
		state.behavior.Become(state.WaitingHealthyReceive)
	case *actor.Restarting:
	default:
		state.logger.Debug("hadiscovery@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) WaitingHealthyReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthResponse:
		state.logger.Debug("hadiscovery@healthcheck ActorHealthResponse", zap.String("sender", msg.Id), zap.Bool("healthy", msg.Healthy))
		state.healthyRecv++
		if msg.Healthy {
			switch msg.Id {
			case domain.ACTOR_ID_DEVICE:
				state.deviceActorHealthy = true
			case domain.ACTOR_ID_MQTT:
				state.mqttActorHealthy = true
			}
		}
		if state.healthyRecv == 2 {

			if state.deviceActorHealthy && state.mqttActorHealthy {
				// Ask device identity
				actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.deviceActor, domain.ProbeDeviceRequest{}, 2*time.Second), func(err error) any {
					return domain.ProbeDeviceResponse{
						ActorResponseMixIn: domain.ActorResponseMixIn{
							ResponseError: err,
						},
					}
				})
				state.behavior.Become(state.WaitingProbeReceive)
				state.stash.UnstashAll(ctx)
			} else {
				panic(errors.New("MQTT Actor or Device Actor are not healthy"))
			}
		}
	default:
		state.logger.Debug("hadiscovery@healthcheck: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *HADiscoveryActor) WaitingProbeReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ProbeDeviceResponse:
		if msg.HasResponseError() {
			panic(msg.GetResponseError())
		}
		state.logger.Debug("hadiscovery@probe: ProbeDeviceResponse", zap.Any("response", msg))
		state.identity = msg.Identity
		state.family = msg.Family

		// the current state carries the device's target temperature range;
		// discovery still works with defaults when no snapshot exists yet
		actorutil.PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.controllerActor, domain.GetDeviceStateRequest{}, 2*time.Second), func(err error) any {
			return domain.GetDeviceStateResponse{}
		})
		state.behavior.Become(state.WaitingStateReceive)
	default:
		state.logger.Debug("hadiscovery@probe: default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *HADiscoveryActor) WaitingStateReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetDeviceStateResponse:
		state.logger.Debug("hadiscovery@state: GetDeviceStateResponse")

		var climates []domain.GenericClimate
		var fans []domain.GenericFan
		var humidifiers []domain.GenericHumidifier
		var sensors []domain.GenericSensor

		bridgeDevice := events.BridgeDevice(state.config.MQTT.BaseTopic)
		sensors = append(sensors, events.BridgeSensors(bridgeDevice)...)

		applianceDevice := events.ApplianceDevice(*state.identity, bridgeDevice)

		switch state.family {
		case dsiot.FamilyAircon:
			climates = append(climates, events.ClimateEntity(applianceDevice, msg.State))
			humidifiers = append(humidifiers, events.AirconHumidifierEntity(applianceDevice))
			sensors = append(sensors, events.AirconSensors(applianceDevice)...)
		case dsiot.FamilyPurifier:
			fans = append(fans, events.PurifierFanEntity(applianceDevice))
			humidifiers = append(humidifiers, events.PurifierHumidifierEntity(applianceDevice))
			sensors = append(sensors, events.PurifierSensors(applianceDevice)...)
		}

		ctx.Send(state.mqttActor, domain.PublishDiscoveryRequest{
			Climates:    climates,
			Fans:        fans,
			Humidifiers: humidifiers,
			Sensors:     sensors,
		})
		state.behavior.Become(state.Done)

	default:
		state.logger.Debug("hadiscovery@state: default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *HADiscoveryActor) Done(ctx actor.Context) {

}
