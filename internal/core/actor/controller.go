package actor

import (
	"errors"
	"fmt"
	"time"

	"github.com/lltcggie/daikin2mqtt/internal/config"
	"github.com/lltcggie/daikin2mqtt/internal/core/domain"
	"github.com/lltcggie/daikin2mqtt/internal/core/events"
	. "github.com/lltcggie/daikin2mqtt/internal/util/actorutil"
	"github.com/lltcggie/daikin2mqtt/pkg/dsiot"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/asynkron/protoactor-go/scheduler"
	"go.uber.org/zap"
)

// ControllerActor owns the poll/command cycle of one appliance. Refreshes and
// commands are serialized through the mailbox: while a transport exchange is
// in flight every other message is stashed, so a command can never interleave
// with a refresh. A command is always followed by a refresh, and entity state
// is published only from decoded snapshots, never from the command itself.
type ControllerActor struct {
	behavior  actor.Behavior
	stash     *Stash
	scheduler *scheduler.TimerScheduler

	deviceActor *actor.PID
	config      *config.Config
	eventStream *eventstream.EventStream

	identity *dsiot.DeviceIdentity
	family   dsiot.Family
	mapper   dsiot.StateMapper

	lastSnapshot *dsiot.Snapshot
	lastState    *dsiot.DeviceState

	pendingCommand domain.DeviceCommandRequest
	pendingReply   *actor.PID

	logger *zap.Logger
}

type pollTick struct {
}

func NewControllerActor(config *config.Config, deviceActor *actor.PID, eventStream *eventstream.EventStream, logger *zap.Logger) *ControllerActor {
	act := &ControllerActor{
		config:      config,
		deviceActor: deviceActor,
		behavior:    actor.NewBehavior(),
		stash:       &Stash{},
		logger:      ActorLogger("controller", logger),
		eventStream: eventStream,
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *ControllerActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *ControllerActor) transportTimeout() time.Duration {
	return time.Duration(state.config.Device.TransportTimeoutMillis) * time.Millisecond
}

func (state *ControllerActor) requestTimeout() time.Duration {
	return state.transportTimeout() + 1*time.Second
}

func (state *ControllerActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("controller@starting started")

		state.scheduler = scheduler.NewTimerScheduler(ctx)

		PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.deviceActor, domain.ProbeDeviceRequest{}, state.requestTimeout()), func(err error) any {
			return domain.ProbeDeviceResponse{
				ActorResponseMixIn: domain.ActorResponseMixIn{
					ResponseError: err,
				},
			}
		})
		state.behavior.Become(state.WaitingProbeReceive)
	case *actor.Restarting:
	default:
		state.logger.Debug("controller@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *ControllerActor) WaitingProbeReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ProbeDeviceResponse:
		if msg.HasResponseError() {
			state.logger.Error("controller@waitingProbe ProbeDeviceResponse error", zap.Error(msg.GetResponseError()))
			panic(msg.GetResponseError())
		}
		if msg.Identity == nil || msg.Identity.MAC == "" {
			panic(errors.New("probed device has no MAC address"))
		}
		state.logger.Debug("controller@waitingProbe ProbeDeviceResponse",
			zap.String("mac", msg.Identity.MAC), zap.String("family", string(msg.Family)))
		state.identity = msg.Identity
		state.family = msg.Family
		desc, err := dsiot.ResolveFamily(msg.Identity.FamilyTag)
		if err != nil {
			panic(err)
		}
		state.mapper = desc.NewMapper()

		// first refresh right away, next ones on the poll timer
		ctx.Send(ctx.Self(), pollTick{})
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("controller@waitingProbe: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *ControllerActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("controller@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_CONTROLLER,
			Healthy: true,
			State:   "idle",
		})
	case pollTick:
		state.logger.Debug("controller@default tick")
		state.requestRefresh(ctx)

		// schedule next tick
		if state.config.Device.PollIntervalMillis > 0 {
			state.scheduler.RequestOnce(time.Duration(state.config.Device.PollIntervalMillis)*time.Millisecond, ctx.Self(), pollTick{})
		}
		state.behavior.BecomeStacked(state.WaitingRefreshReceive)
	case domain.GetDeviceStateRequest:
		state.logger.Debug("controller@default: GetDeviceStateRequest")
		ForRequest(msg).Respond(ctx, domain.GetDeviceStateResponse{
			State: state.lastState,
		})
	case domain.DeviceCommandRequest:
		state.logger.Debug("controller@default: DeviceCommandRequest", zap.String("type", fmt.Sprintf("%T", msg)))
		state.handleCommand(ctx, msg)
	default:
		state.logger.Debug("controller@default: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

// handleCommand builds the patch against the last snapshot and sends it.
// Patches for unsupported values never reach the device: the shadow state is
// republished so remote panels snap back to reality.
func (state *ControllerActor) handleCommand(ctx actor.Context, msg domain.DeviceCommandRequest) {
	replyTo := ForRequest(msg).ReplyTo(ctx)

	if state.lastSnapshot == nil {
		state.respondCommand(ctx, msg, replyTo, errors.New("no snapshot available yet"))
		return
	}
	patch, err := state.buildPatch(msg)
	if err != nil {
		state.logger.Warn("controller@default command rejected", zap.Error(err))
		if errors.Is(err, dsiot.ErrUnsupportedValue) {
			state.publishStateEvents(state.lastState)
		}
		state.respondCommand(ctx, msg, replyTo, err)
		return
	}

	state.pendingCommand = msg
	state.pendingReply = replyTo
	PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.deviceActor, domain.SendPatchRequest{Patch: patch}, state.requestTimeout()), func(err error) any {
		return domain.SendPatchResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: err,
			},
		}
	})
	state.behavior.BecomeStacked(state.WaitingPatchReceive)
}

func (state *ControllerActor) WaitingPatchReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.SendPatchResponse:
		state.logger.Debug("controller@waitingPatch SendPatchResponse")
		if msg.HasResponseError() {
			state.logger.Error("controller@waitingPatch patch failed", zap.Error(msg.GetResponseError()))
		}
		state.respondCommand(ctx, state.pendingCommand, state.pendingReply, msg.GetResponseError())
		state.pendingCommand = nil
		state.pendingReply = nil

		// refresh unconditionally: the device is the only source of truth
		// for what a patch actually changed
		state.behavior.UnbecomeStacked()
		state.requestRefresh(ctx)
		state.behavior.BecomeStacked(state.WaitingRefreshReceive)
	default:
		state.logger.Debug("controller@waitingPatch: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *ControllerActor) WaitingRefreshReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.FetchSnapshotResponse:
		if msg.HasResponseError() {
			state.logger.Error("controller@waitingRefresh FetchSnapshotResponse error", zap.Error(msg.GetResponseError()))
			state.behavior.UnbecomeStacked()
			state.stash.UnstashAll(ctx)
			return
		}
		state.logger.Debug("controller@waitingRefresh FetchSnapshotResponse")
		state.lastSnapshot = msg.Snapshot
		state.lastState = msg.State
		state.publishStateEvents(msg.State)

		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("controller@waitingRefresh: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *ControllerActor) requestRefresh(ctx actor.Context) {
	PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.deviceActor, domain.FetchSnapshotRequest{}, state.requestTimeout()), func(err error) any {
		return domain.FetchSnapshotResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: err,
			},
		}
	})
}

// publishStateEvents publishes the full event set of one decoded state. A
// state that failed to decode never gets here, so subscribers see either a
// complete update or none at all.
func (state *ControllerActor) publishStateEvents(deviceState *dsiot.DeviceState) {
	if deviceState == nil {
		return
	}
	evs := events.DeviceStateToUpdateEvents(state.family, deviceState)
	for _, ev := range evs {
		state.eventStream.Publish(ev)
	}
}

func (state *ControllerActor) buildPatch(msg domain.DeviceCommandRequest) (*dsiot.Patch, error) {
	switch cmd := msg.(type) {
	case domain.SetPowerRequest:
		return state.mapper.SetPower(state.lastSnapshot, cmd.On)
	case domain.SetModeRequest:
		return state.mapper.SetMode(state.lastSnapshot, cmd.Mode)
	case domain.SetTargetTemperatureRequest:
		return state.mapper.SetTargetTemperature(state.lastSnapshot, cmd.Value)
	case domain.SetFanModeRequest:
		return state.mapper.SetFanMode(state.lastSnapshot, cmd.Fan)
	case domain.SetFanPercentRequest:
		return state.mapper.SetFanPercent(state.lastSnapshot, cmd.Percent)
	case domain.SetHumidifyRequest:
		return state.mapper.SetHumidify(state.lastSnapshot, cmd.Mode)
	case domain.SetHumidifyPercentRequest:
		return state.mapper.SetHumidifyPercent(state.lastSnapshot, cmd.Percent)
	default:
		return nil, fmt.Errorf("unsupported command %T", msg)
	}
}

func (state *ControllerActor) respondCommand(ctx actor.Context, msg domain.DeviceCommandRequest, replyTo *actor.PID, err error) {
	if replyTo == nil {
		return
	}
	mixin := domain.DeviceCommandResponseMixIn{
		ActorResponseMixIn: domain.ActorResponseMixIn{
			ResponseError: err,
		},
	}
	var resp any
	switch msg.(type) {
	case domain.SetPowerRequest:
		resp = domain.SetPowerResponse{DeviceCommandResponseMixIn: mixin}
	case domain.SetModeRequest:
		resp = domain.SetModeResponse{DeviceCommandResponseMixIn: mixin}
	case domain.SetTargetTemperatureRequest:
		resp = domain.SetTargetTemperatureResponse{DeviceCommandResponseMixIn: mixin}
	case domain.SetFanModeRequest:
		resp = domain.SetFanModeResponse{DeviceCommandResponseMixIn: mixin}
	case domain.SetFanPercentRequest:
		resp = domain.SetFanPercentResponse{DeviceCommandResponseMixIn: mixin}
	case domain.SetHumidifyRequest:
		resp = domain.SetHumidifyResponse{DeviceCommandResponseMixIn: mixin}
	case domain.SetHumidifyPercentRequest:
		resp = domain.SetHumidifyPercentResponse{DeviceCommandResponseMixIn: mixin}
	default:
		return
	}
	ctx.Send(replyTo, resp)
}
