package actor

import (
	"context"
	"fmt"
	"time"

	"github.com/lltcggie/daikin2mqtt/internal/core/domain"
	"github.com/lltcggie/daikin2mqtt/internal/util/actorutil"
	"github.com/lltcggie/daikin2mqtt/pkg/dsiot"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/reugn/go-quartz/logger"
	"go.uber.org/zap"
)

const (
	DEVICE_ACTOR_ID = "device"
)

type DeviceActor struct {
	behavior  actor.Behavior
	stash     *actorutil.Stash
	transport dsiot.Transport
	timeout   time.Duration
	client    *dsiot.Client
	identity  *dsiot.DeviceIdentity
	logger    *zap.Logger
	zlogger   *zap.Logger
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

func NewDeviceActor(transport dsiot.Transport, timeout time.Duration, logger *zap.Logger) *DeviceActor {
	act := &DeviceActor{
		transport: transport,
		timeout:   timeout,
		behavior:  actor.NewBehavior(),
		stash:     &actorutil.Stash{},
		logger:    actorutil.ActorLogger("device", logger),
		zlogger:   logger,
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *DeviceActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *DeviceActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("device@starting started")
		cctx, cancel := context.WithTimeout(context.Background(), state.timeout)
		defer cancel()
		client, identity, err := dsiot.NewClientForDevice(cctx, state.transport, state.zlogger)
		if err != nil {
			// an unrecognized family is fatal: there is no mapper to run
			panic(err)
		}
		state.client = client
		state.identity = identity
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("device@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *DeviceActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("device@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      DEVICE_ACTOR_ID,
			Healthy: true,
			State:   "idle",
		})
	case domain.ProbeDeviceRequest:
		state.logger.Debug("device@default: ProbeDeviceRequest")
		actorutil.ForRequest(msg).Respond(ctx, domain.ProbeDeviceResponse{
			Identity: state.identity,
			Family:   state.client.Family(),
		})
	case domain.FetchSnapshotRequest:
		state.logger.Debug("device@default: FetchSnapshotRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.fetchSnapshot),
			mapTaskResult[domain.FetchSnapshotResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.FetchSnapshotResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(state.timeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingTransport)
	case domain.SendPatchRequest:
		state.logger.Debug("device@default: SendPatchRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, func() (*domain.SendPatchResponse, error) {
			return state.sendPatch(msg.Patch)
		}),
			mapTaskResult[domain.SendPatchResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.SendPatchResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(state.timeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingTransport)
	default:
		state.logger.Debug("device@default default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *DeviceActor) WaitingTransport(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("device@WaitingTransport backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		ctx.Send(msg.replyTo, msg.message)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("device@WaitingTransport stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (a *DeviceActor) fetchSnapshot() (*domain.FetchSnapshotResponse, error) {
	cctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	snap, err := a.client.FetchSnapshot(cctx)
	if err != nil {
		logger.Error(err)
		return nil, err
	}
	deviceState, err := a.client.Decode(snap)
	if err != nil {
		logger.Error(err)
		return nil, err
	}
	return &domain.FetchSnapshotResponse{
		Snapshot: snap,
		State:    deviceState,
	}, nil
}

func (a *DeviceActor) sendPatch(patch *dsiot.Patch) (*domain.SendPatchResponse, error) {
	cctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	if err := a.client.SendPatch(cctx, patch); err != nil {
		logger.Error(err)
		return nil, err
	}
	return &domain.SendPatchResponse{}, nil
}

func mapTaskResult[T any](sender *actor.PID) func(t *T) *backgroundTaskResult {
	return func(t *T) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *t,
			replyTo: sender,
		}
	}
}
