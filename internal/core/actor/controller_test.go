package actor

import (
	"strings"
	"sync"
	"testing"
	"time"

	adactor "github.com/lltcggie/daikin2mqtt/internal/adapter/actor"
	"github.com/lltcggie/daikin2mqtt/internal/core/domain"
	"github.com/lltcggie/daikin2mqtt/internal/util"
	"github.com/lltcggie/daikin2mqtt/pkg/dsiot"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type eventCollector struct {
	mu     sync.Mutex
	events []any
}

func (c *eventCollector) add(ev any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *eventCollector) snapshot() []any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]any(nil), c.events...)
}

func spawnTestController(t *testing.T, transport *dsiot.TestTransport) (*actor.ActorSystem, *actor.RootContext, *actor.PID, *eventCollector) {
	t.Helper()

	as := actor.NewActorSystem()
	context := as.Root

	cfg := util.LoadTestConfig()
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	logger := zap.Must(logCfg.Build())

	deviceProps := actor.PropsFromProducer(func() actor.Actor {
		return adactor.NewDeviceActor(transport, 4*time.Second, logger)
	})
	devicePID := context.Spawn(deviceProps)

	es := &eventstream.EventStream{}
	collector := &eventCollector{}
	es.Subscribe(collector.add)

	controllerProps := actor.PropsFromProducer(func() actor.Actor {
		return NewControllerActor(&cfg, devicePID, es, logger)
	})
	controllerPID := context.Spawn(controllerProps)

	return as, context, controllerPID, collector
}

func TestControllerActorPublishesStateOnRefresh(t *testing.T) {

	transport := dsiot.NewTestTransport(dsiot.TestAirconFrames())
	as, context, pid, collector := spawnTestController(t, transport)
	defer as.Shutdown()

	time.Sleep(1 * time.Second)

	res, err := context.RequestFuture(pid, domain.GetDeviceStateRequest{}, 5*time.Second).Result()
	assert.NoError(t, err)
	stateResp, ok := res.(domain.GetDeviceStateResponse)
	assert.True(t, ok)
	assert.NotNil(t, stateResp.State)
	assert.True(t, stateResp.State.PowerOn)
	assert.Equal(t, dsiot.ModeCool, stateResp.State.Mode)
	assert.NotNil(t, stateResp.State.TargetTemperature)
	assert.Equal(t, 24.0, *stateResp.State.TargetTemperature)

	var mode *domain.ClimateModeUpdateEvent
	var target *domain.ClimateTargetTemperatureUpdateEvent
	for _, ev := range collector.snapshot() {
		switch e := ev.(type) {
		case domain.ClimateModeUpdateEvent:
			mode = &e
		case domain.ClimateTargetTemperatureUpdateEvent:
			target = &e
		}
	}
	assert.NotNil(t, mode)
	assert.Equal(t, "cool", mode.Mode)
	assert.NotNil(t, target)
	assert.Equal(t, 24.0, target.Value)

	context.Stop(pid)
}

func TestControllerActorCommandThenRefresh(t *testing.T) {

	transport := dsiot.NewTestTransport(dsiot.TestAirconFrames())
	as, context, pid, collector := spawnTestController(t, transport)
	defer as.Shutdown()

	time.Sleep(1 * time.Second)

	res, err := context.RequestFuture(pid, domain.SetPowerRequest{On: false}, 10*time.Second).Result()
	assert.NoError(t, err)
	resp, ok := res.(domain.SetPowerResponse)
	assert.True(t, ok)
	assert.False(t, resp.HasResponseError())

	time.Sleep(1 * time.Second)

	// the write must be followed by a refresh read
	log := transport.CallLog()
	writeAt := -1
	for i, entry := range log {
		if entry == "begin write" {
			writeAt = i
		}
	}
	assert.True(t, writeAt >= 0, "patch was sent")
	readAfterWrite := false
	for _, entry := range log[writeAt:] {
		if entry == "begin read" {
			readAfterWrite = true
		}
	}
	assert.True(t, readAfterWrite, "refresh follows command")

	// published state reflects the refreshed snapshot
	var lastMode *domain.ClimateModeUpdateEvent
	for _, ev := range collector.snapshot() {
		if e, ok := ev.(domain.ClimateModeUpdateEvent); ok {
			lastMode = &e
		}
	}
	assert.NotNil(t, lastMode)
	assert.Equal(t, "off", lastMode.Mode)

	context.Stop(pid)
}

func TestControllerActorRejectsUnsupportedValue(t *testing.T) {

	transport := dsiot.NewTestTransport(dsiot.TestAirconFrames())
	as, context, pid, _ := spawnTestController(t, transport)
	defer as.Shutdown()

	time.Sleep(1 * time.Second)

	res, err := context.RequestFuture(pid, domain.SetTargetTemperatureRequest{Value: 50}, 5*time.Second).Result()
	assert.NoError(t, err)
	resp, ok := res.(domain.SetTargetTemperatureResponse)
	assert.True(t, ok)
	assert.True(t, resp.HasResponseError())

	// a rejected value never reaches the device
	for _, entry := range transport.CallLog() {
		assert.NotEqual(t, "begin write", entry, "no write for rejected value")
	}

	context.Stop(pid)
}

func TestControllerActorSerializesTransportAccess(t *testing.T) {

	transport := dsiot.NewTestTransport(dsiot.TestAirconFrames())
	as, context, pid, _ := spawnTestController(t, transport)
	defer as.Shutdown()

	time.Sleep(1 * time.Second)

	transport.Delay = 200 * time.Millisecond

	// overlapping commands from two callers
	f1 := context.RequestFuture(pid, domain.SetPowerRequest{On: false}, 10*time.Second)
	f2 := context.RequestFuture(pid, domain.SetFanModeRequest{Fan: dsiot.FanLevel3}, 10*time.Second)
	_, err := f1.Result()
	assert.NoError(t, err)
	_, err = f2.Result()
	assert.NoError(t, err)

	time.Sleep(1 * time.Second)

	// every exchange runs to completion before the next one starts
	log := transport.CallLog()
	assert.True(t, len(log) >= 2)
	assert.True(t, len(log)%2 == 0)
	for i := 0; i < len(log); i += 2 {
		op := strings.TrimPrefix(log[i], "begin ")
		assert.Equal(t, "begin "+op, log[i], "entry %d", i)
		assert.Equal(t, "end "+op, log[i+1], "entry %d", i+1)
	}

	context.Stop(pid)
}
