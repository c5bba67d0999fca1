package dsiot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func purifierSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	return &Snapshot{Frames: TestPurifierFrames()}
}

func TestPurifierDecode(t *testing.T) {
	state, err := NewPurifierMapper().Decode(purifierSnapshot(t))
	require.NoError(t, err)

	assert.True(t, state.PowerOn)
	assert.Equal(t, ModeAuto, state.Mode)
	assert.Equal(t, HumidifyStandard, state.HumidifyMode)
	// fixed humidify level active: fan speed comes from p_0D
	assert.Equal(t, FanLevel2, state.FanMode)
	assert.Equal(t, 75, state.FanPercent)
	require.NotNil(t, state.IndoorTemperature)
	assert.Equal(t, 25.0, *state.IndoorTemperature)
	require.NotNil(t, state.PM25)
	assert.Equal(t, 10.0, *state.PM25)
	require.NotNil(t, state.Dust)
	assert.Equal(t, 5.0, *state.Dust)
	require.NotNil(t, state.Odor)
	assert.Equal(t, 2.0, *state.Odor)
	assert.Nil(t, state.TargetTemperature)
}

func TestPurifierFanPathDiscriminant(t *testing.T) {
	mapper := NewPurifierMapper()

	// fixed humidify level: fan writes go to p_0D
	snap := purifierSnapshot(t)
	patch, err := mapper.SetFanMode(snap, FanLevel1)
	require.NoError(t, err)
	assert.Equal(t, "02", patchValue(t, patch, "e_1002", "e_3001", "p_0D"))

	// humidify auto: fan writes go to p_09
	Find(snap.Frame(FrameStatus), "e_1002", "e_3001", "p_0C").Value = "04"
	patch, err = mapper.SetFanMode(snap, FanLevel1)
	require.NoError(t, err)
	assert.Equal(t, "02", patchValue(t, patch, "e_1002", "e_3001", "p_09"))
}

func TestPurifierMoistModeCarriesHumidifyAuto(t *testing.T) {
	patch, err := NewPurifierMapper().SetMode(purifierSnapshot(t), ModeMoist)
	require.NoError(t, err)

	doc := patch.Document()
	require.Len(t, doc.Requests, 1)
	mode, ok := ExtractString(doc.Requests[0].Payload, "e_1002", "e_3001", "p_01")
	require.True(t, ok)
	assert.Equal(t, "0500", mode)
	hum, ok := ExtractString(doc.Requests[0].Payload, "e_1002", "e_3001", "p_0C")
	require.True(t, ok)
	assert.Equal(t, "04", hum)
}

func TestPurifierHumidifyOffRefusedInMoistMode(t *testing.T) {
	mapper := NewPurifierMapper()
	snap := purifierSnapshot(t)
	Find(snap.Frame(FrameStatus), "e_1002", "e_3001", "p_01").Value = "0500"

	_, err := mapper.SetHumidify(snap, HumidifyOff)
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	patch, err := mapper.SetHumidify(snap, HumidifyHigh)
	require.NoError(t, err)
	assert.Equal(t, "03", patchValue(t, patch, "e_1002", "e_3001", "p_0C"))
}

func TestPurifierNoTemperatureSetpoint(t *testing.T) {
	_, err := NewPurifierMapper().SetTargetTemperature(purifierSnapshot(t), 24)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestPurifierFanPercentBuckets(t *testing.T) {
	mapper := NewPurifierMapper()
	snap := purifierSnapshot(t)

	cases := []struct {
		percent int
		wire    string
	}{
		{0, "01"},
		{25, "01"},
		{26, "02"},
		{75, "03"},
		{76, "05"},
		{100, "05"},
	}
	for _, c := range cases {
		patch, err := mapper.SetFanPercent(snap, c.percent)
		require.NoError(t, err, "percent %d", c.percent)
		assert.Equal(t, c.wire, patchValue(t, patch, "e_1002", "e_3001", "p_0D"), "percent %d", c.percent)
	}
}

func TestPurifierHumidifyPercentBuckets(t *testing.T) {
	mapper := NewPurifierMapper()
	snap := purifierSnapshot(t)

	cases := []struct {
		percent int
		wire    string
	}{
		{0, "00"},
		{1, "01"},
		{33, "01"},
		{34, "02"},
		{66, "02"},
		{67, "03"},
		{100, "03"},
	}
	for _, c := range cases {
		patch, err := mapper.SetHumidifyPercent(snap, c.percent)
		require.NoError(t, err, "percent %d", c.percent)
		assert.Equal(t, c.wire, patchValue(t, patch, "e_1002", "e_3001", "p_0C"), "percent %d", c.percent)
	}
}
