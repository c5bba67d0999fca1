package dsiot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func airconSnapshot(t *testing.T) *Snapshot {
	t.Helper()
	return &Snapshot{Frames: TestAirconFrames()}
}

func patchValue(t *testing.T, patch *Patch, path ...string) string {
	t.Helper()
	doc := patch.Document()
	require.Len(t, doc.Requests, 1)
	v, ok := ExtractString(doc.Requests[0].Payload, path...)
	require.True(t, ok, "leaf %v missing from patch", path)
	return v
}

func TestAirconDecode(t *testing.T) {
	state, err := NewAirconMapper().Decode(airconSnapshot(t))
	require.NoError(t, err)

	assert.True(t, state.PowerOn)
	assert.Equal(t, ModeCool, state.Mode)
	require.NotNil(t, state.TargetTemperature)
	assert.Equal(t, 24.0, *state.TargetTemperature)
	require.NotNil(t, state.TargetTemperatureMin)
	assert.Equal(t, 18.0, *state.TargetTemperatureMin)
	require.NotNil(t, state.TargetTemperatureMax)
	assert.Equal(t, 32.0, *state.TargetTemperatureMax)
	assert.Equal(t, FanAuto, state.FanMode)
	// cool mode forces automatic humidify
	assert.Equal(t, HumidifyAuto, state.HumidifyMode)
	require.NotNil(t, state.IndoorTemperature)
	assert.Equal(t, 20.0, *state.IndoorTemperature)
	require.NotNil(t, state.IndoorHumidity)
	assert.Equal(t, 45.0, *state.IndoorHumidity)
	require.NotNil(t, state.OutdoorTemperature)
	assert.Equal(t, 13.0, *state.OutdoorTemperature)
	require.NotNil(t, state.TodayEnergyKWh)
	assert.Equal(t, 0.5, *state.TodayEnergyKWh)
}

func TestAirconSetTargetTemperature(t *testing.T) {
	mapper := NewAirconMapper()
	snap := airconSnapshot(t)

	patch, err := mapper.SetTargetTemperature(snap, 25)
	require.NoError(t, err)
	assert.Equal(t, "32", patchValue(t, patch, "e_1002", "e_3001", "p_02"))

	_, err = mapper.SetTargetTemperature(snap, 40)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
	_, err = mapper.SetTargetTemperature(snap, 10)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestAirconSetModeMergesPowerOn(t *testing.T) {
	patch, err := NewAirconMapper().SetMode(airconSnapshot(t), ModeHeat)
	require.NoError(t, err)

	doc := patch.Document()
	require.Len(t, doc.Requests, 1, "power and mode must collapse into one request")
	power, ok := ExtractString(doc.Requests[0].Payload, "e_1002", "e_A002", "p_01")
	require.True(t, ok)
	assert.Equal(t, "01", power)
	mode, ok := ExtractString(doc.Requests[0].Payload, "e_1002", "e_3001", "p_01")
	require.True(t, ok)
	assert.Equal(t, "0100", mode)
}

func TestAirconHumidifyInterlock(t *testing.T) {
	mapper := NewAirconMapper()
	snap := airconSnapshot(t)

	// cool mode: humidify is forced to auto, any explicit setting is refused
	_, err := mapper.SetHumidify(snap, HumidifyHigh)
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	// heat mode exposes the humidify leaf
	status := snap.Frame(FrameStatus)
	Find(status, "e_1002", "e_3001", "p_01").Value = "0100"
	patch, err := mapper.SetHumidify(snap, HumidifyHigh)
	require.NoError(t, err)
	assert.Equal(t, "03", patchValue(t, patch, "e_1002", "e_3001", "p_0B"))
}

func TestAirconDryModeRestrictions(t *testing.T) {
	mapper := NewAirconMapper()
	snap := airconSnapshot(t)
	Find(snap.Frame(FrameStatus), "e_1002", "e_3001", "p_01").Value = "0500"

	_, err := mapper.SetTargetTemperature(snap, 24)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
	_, err = mapper.SetFanMode(snap, FanLevel3)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestAirconFanPercentBuckets(t *testing.T) {
	mapper := NewAirconMapper()
	snap := airconSnapshot(t)

	cases := []struct {
		percent int
		wire    string
	}{
		{0, "0300"},
		{20, "0300"},
		{21, "0400"},
		{50, "0500"},
		{80, "0600"},
		{81, "0700"},
		{100, "0700"},
	}
	for _, c := range cases {
		patch, err := mapper.SetFanPercent(snap, c.percent)
		require.NoError(t, err, "percent %d", c.percent)
		assert.Equal(t, c.wire, patchValue(t, patch, "e_1002", "e_3001", "p_09"), "percent %d", c.percent)
	}

	_, err := mapper.SetFanPercent(snap, 101)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
	_, err = mapper.SetFanPercent(snap, -1)
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestAirconSetPowerOff(t *testing.T) {
	patch, err := NewAirconMapper().SetPower(airconSnapshot(t), false)
	require.NoError(t, err)
	assert.Equal(t, "00", patchValue(t, patch, "e_1002", "e_A002", "p_01"))
}
