package dsiot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProbeAndResolveAircon(t *testing.T) {
	transport := NewTestTransport(TestAirconFrames())

	client, identity, err := NewClientForDevice(context.Background(), transport, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "A0B1C2D3E4F5", identity.MAC)
	assert.Equal(t, "Living Room", identity.Name)
	assert.Equal(t, "3_40", identity.FirmwareVersion)
	assert.Equal(t, FamilyAircon, client.Family())
}

func TestProbeAndResolvePurifier(t *testing.T) {
	transport := NewTestTransport(TestPurifierFrames())

	client, identity, err := NewClientForDevice(context.Background(), transport, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "Bedroom", identity.Name)
	assert.Equal(t, FamilyPurifier, client.Family())
}

func TestUnknownFamilyRefused(t *testing.T) {
	frames := TestAirconFrames()
	Find(frames[FrameAdapterDev], "type").Value = "fridge"
	transport := NewTestTransport(frames)

	_, _, err := NewClientForDevice(context.Background(), transport, zap.NewNop())
	assert.ErrorIs(t, err, ErrUnknownFamily)
}

func TestFetchSnapshotAndDecode(t *testing.T) {
	transport := NewTestTransport(TestAirconFrames())
	client := NewClient(transport, NewAirconMapper(), zap.NewNop())

	snap, err := client.FetchSnapshot(context.Background())
	require.NoError(t, err)
	state, err := client.Decode(snap)
	require.NoError(t, err)
	assert.Equal(t, ModeCool, state.Mode)
	require.NotNil(t, state.TargetTemperature)
	assert.Equal(t, 24.0, *state.TargetTemperature)
	assert.Equal(t, FanAuto, state.FanMode)
}

func TestSendPatchVisibleOnNextFetch(t *testing.T) {
	transport := NewTestTransport(TestAirconFrames())
	client := NewClient(transport, NewAirconMapper(), zap.NewNop())
	ctx := context.Background()

	snap, err := client.FetchSnapshot(ctx)
	require.NoError(t, err)
	patch, err := client.Mapper().SetTargetTemperature(snap, 26)
	require.NoError(t, err)
	require.NoError(t, client.SendPatch(ctx, patch))

	snap, err = client.FetchSnapshot(ctx)
	require.NoError(t, err)
	state, err := client.Decode(snap)
	require.NoError(t, err)
	require.NotNil(t, state.TargetTemperature)
	assert.Equal(t, 26.0, *state.TargetTemperature)
}

func TestSendPatchEmptyIsNoop(t *testing.T) {
	transport := NewTestTransport(TestAirconFrames())
	client := NewClient(transport, NewAirconMapper(), zap.NewNop())

	require.NoError(t, client.SendPatch(context.Background(), &Patch{}))
	assert.Empty(t, transport.CallLog())
}

func TestFetchSnapshotMissingFrame(t *testing.T) {
	frames := TestAirconFrames()
	delete(frames, FrameWeekPower)
	transport := NewTestTransport(frames)
	client := NewClient(transport, NewAirconMapper(), zap.NewNop())

	_, err := client.FetchSnapshot(context.Background())
	require.Error(t, err)
	var terr *TransportError
	assert.ErrorAs(t, err, &terr)
}

func TestTransportCallLogOrdering(t *testing.T) {
	transport := NewTestTransport(TestAirconFrames())
	client := NewClient(transport, NewAirconMapper(), zap.NewNop())
	ctx := context.Background()

	snap, err := client.FetchSnapshot(ctx)
	require.NoError(t, err)
	patch, err := client.Mapper().SetPower(snap, false)
	require.NoError(t, err)
	require.NoError(t, client.SendPatch(ctx, patch))

	log := transport.CallLog()
	require.Equal(t, []string{"begin read", "end read", "begin write", "end write"}, log)
}
