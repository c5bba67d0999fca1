package dsiot

import (
	"fmt"
)

// Air conditioner family (RA units exposing adr_0100/adr_0200). All control
// parameters live in the dgc_status frame; which leaf holds the setpoint,
// fan and humidify settings depends on the active mode.

var airconModeByWire = map[string]Mode{
	"0000": ModeFanOnly,
	"0100": ModeHeat,
	"0200": ModeCool,
	"0300": ModeAuto,
	"0500": ModeDry,
}

var airconWireByMode = map[Mode]string{}

// airconTempPathByMode: modes without an entry have no setpoint.
var airconTempPathByMode = map[Mode]string{
	ModeCool: "p_02",
	ModeHeat: "p_03",
	ModeAuto: "p_1D",
}

// airconFanPathByMode: dry mode has no fan control.
var airconFanPathByMode = map[Mode]string{
	ModeAuto:    "p_26",
	ModeCool:    "p_09",
	ModeHeat:    "p_0A",
	ModeFanOnly: "p_28",
}

// airconHumidifyPathByMode: in every other mode the appliance forces
// automatic humidify and rejects writes.
var airconHumidifyPathByMode = map[Mode]string{
	ModeHeat: "p_0B",
	ModeAuto: "p_1F",
}

var airconFanByWire = map[string]FanMode{
	"0A00": FanAuto,
	"0B00": FanQuiet,
	"0300": FanLevel1,
	"0400": FanLevel2,
	"0500": FanLevel3,
	"0600": FanLevel4,
	"0700": FanLevel5,
}

var airconWireByFan = map[FanMode]string{}

var airconHumidifyByWire = map[string]HumidifyMode{
	"00": HumidifyAuto,
	"01": HumidifyLow,
	"02": HumidifyStandard,
	"03": HumidifyHigh,
}

var airconWireByHumidify = map[HumidifyMode]string{}

// airconFanBuckets maps a 0-100 percent to a discrete fan level.
// Monotonic: 0 lands on the lowest level, 100 on the highest.
var airconFanBuckets = []struct {
	Max   int
	Level FanMode
}{
	{20, FanLevel1},
	{40, FanLevel2},
	{60, FanLevel3},
	{80, FanLevel4},
	{100, FanLevel5},
}

var airconFanPercent = map[FanMode]int{
	FanAuto:   0,
	FanQuiet:  10,
	FanLevel1: 20,
	FanLevel2: 40,
	FanLevel3: 60,
	FanLevel4: 80,
	FanLevel5: 100,
}

// airconHumidifyBuckets maps a 0-100 percent to a humidify setting.
// 0 means leave it to the appliance.
var airconHumidifyBuckets = []struct {
	Max  int
	Mode HumidifyMode
}{
	{0, HumidifyAuto},
	{33, HumidifyLow},
	{66, HumidifyStandard},
	{100, HumidifyHigh},
}

func init() {
	for wire, mode := range airconModeByWire {
		if _, dup := airconWireByMode[mode]; dup {
			panic(fmt.Sprintf("dsiot: duplicate aircon mode mapping %s", mode))
		}
		airconWireByMode[mode] = wire
	}
	for wire, fan := range airconFanByWire {
		if _, dup := airconWireByFan[fan]; dup {
			panic(fmt.Sprintf("dsiot: duplicate aircon fan mapping %s", fan))
		}
		airconWireByFan[fan] = wire
	}
	for wire, hum := range airconHumidifyByWire {
		if _, dup := airconWireByHumidify[hum]; dup {
			panic(fmt.Sprintf("dsiot: duplicate aircon humidify mapping %s", hum))
		}
		airconWireByHumidify[hum] = wire
	}
	for _, b := range airconFanBuckets {
		if _, ok := airconWireByFan[b.Level]; !ok {
			panic(fmt.Sprintf("dsiot: aircon fan bucket targets unmapped level %s", b.Level))
		}
	}
	for _, b := range airconHumidifyBuckets {
		if _, ok := airconWireByHumidify[b.Mode]; !ok {
			panic(fmt.Sprintf("dsiot: aircon humidify bucket targets unmapped mode %s", b.Mode))
		}
	}
}

type airconMapper struct{}

// NewAirconMapper returns the mapper for the air conditioner family.
func NewAirconMapper() StateMapper {
	return &airconMapper{}
}

func (m *airconMapper) Family() Family {
	return FamilyAircon
}

func (m *airconMapper) ReadTargets() []string {
	return []string{FrameStatus, FrameOutdoor, FrameWeekPower}
}

func (m *airconMapper) status(snap *Snapshot) (*Node, error) {
	root := snap.Frame(FrameStatus)
	if root == nil {
		return nil, fmt.Errorf("%w: frame %s", ErrFieldAbsent, FrameStatus)
	}
	return root, nil
}

func (m *airconMapper) currentMode(status *Node) (Mode, error) {
	wire, ok := ExtractString(status, "e_1002", "e_3001", "p_01")
	if !ok {
		return "", fmt.Errorf("%w: mode", ErrFieldAbsent)
	}
	mode, ok := airconModeByWire[wire]
	if !ok {
		return "", fmt.Errorf("dsiot: unknown aircon mode value %q", wire)
	}
	return mode, nil
}

func (m *airconMapper) Decode(snap *Snapshot) (*DeviceState, error) {
	status, err := m.status(snap)
	if err != nil {
		return nil, err
	}
	power, ok := ExtractString(status, "e_1002", "e_A002", "p_01")
	if !ok {
		return nil, fmt.Errorf("%w: power", ErrFieldAbsent)
	}
	mode, err := m.currentMode(status)
	if err != nil {
		return nil, err
	}
	state := &DeviceState{
		PowerOn: power == "01",
		Mode:    mode,
	}

	if tempLeaf, ok := airconTempPathByMode[mode]; ok {
		if v, ok := ExtractFloat(status, "e_1002", "e_3001", tempLeaf); ok {
			state.TargetTemperature = &v
		}
		if min, max, ok := ExtractMinMax(status, "e_1002", "e_3001", tempLeaf); ok {
			state.TargetTemperatureMin = &min
			state.TargetTemperatureMax = &max
		}
	}

	if fanLeaf, ok := airconFanPathByMode[mode]; ok {
		if wire, ok := ExtractString(status, "e_1002", "e_3001", fanLeaf); ok {
			if fan, known := airconFanByWire[wire]; known {
				state.FanMode = fan
				state.FanPercent = airconFanPercent[fan]
			}
		}
	}

	if humLeaf, ok := airconHumidifyPathByMode[mode]; ok {
		if wire, ok := ExtractString(status, "e_1002", "e_3001", humLeaf); ok {
			if hum, known := airconHumidifyByWire[wire]; known {
				state.HumidifyMode = hum
			}
		}
	} else {
		state.HumidifyMode = HumidifyAuto
	}

	if v, ok := ExtractFloat(status, "e_1002", "e_A00B", "p_01"); ok {
		state.IndoorTemperature = &v
	}
	if v, ok := ExtractFloat(status, "e_1002", "e_A00B", "p_02"); ok {
		state.IndoorHumidity = &v
	}
	if v, ok := ExtractFloat(snap.Frame(FrameOutdoor), "e_1003", "e_A00D", "p_01"); ok {
		state.OutdoorTemperature = &v
	}
	state.TodayEnergyKWh = decodeTodayEnergy(snap.Frame(FrameWeekPower))

	return state, nil
}

func (m *airconMapper) SetPower(snap *Snapshot, on bool) (*Patch, error) {
	status, err := m.status(snap)
	if err != nil {
		return nil, err
	}
	raw := "00"
	if on {
		raw = "01"
	}
	frag, err := InjectPath(status, []string{"e_1002", "e_A002", "p_01"}, raw)
	if err != nil {
		return nil, err
	}
	patch := &Patch{}
	patch.Add(FrameStatus, frag)
	return patch, nil
}

// SetMode switches the operating mode and powers the unit on in the same
// request, as the vendor app does.
func (m *airconMapper) SetMode(snap *Snapshot, mode Mode) (*Patch, error) {
	wire, ok := airconWireByMode[mode]
	if !ok {
		return nil, fmt.Errorf("%w: mode %s", ErrUnsupportedValue, mode)
	}
	status, err := m.status(snap)
	if err != nil {
		return nil, err
	}
	patch, err := m.SetPower(snap, true)
	if err != nil {
		return nil, err
	}
	frag, err := InjectPath(status, []string{"e_1002", "e_3001", "p_01"}, wire)
	if err != nil {
		return nil, err
	}
	patch.Add(FrameStatus, frag)
	return patch, nil
}

func (m *airconMapper) SetTargetTemperature(snap *Snapshot, value float64) (*Patch, error) {
	status, err := m.status(snap)
	if err != nil {
		return nil, err
	}
	mode, err := m.currentMode(status)
	if err != nil {
		return nil, err
	}
	tempLeaf, ok := airconTempPathByMode[mode]
	if !ok {
		return nil, fmt.Errorf("%w: no setpoint in mode %s", ErrUnsupportedValue, mode)
	}
	path := []string{"e_1002", "e_3001", tempLeaf}
	leaf, err := requireLeaf(status, path...)
	if err != nil {
		return nil, err
	}
	if min, max, ok := ExtractMinMax(status, path...); ok && (value < min || value > max) {
		return nil, fmt.Errorf("%w: %.1f outside [%.1f, %.1f]", ErrUnsupportedValue, value, min, max)
	}
	raw, err := EncodeValue(value, leaf.Metadata)
	if err != nil {
		return nil, err
	}
	frag, err := InjectPath(status, path, raw)
	if err != nil {
		return nil, err
	}
	patch := &Patch{}
	patch.Add(FrameStatus, frag)
	return patch, nil
}

func (m *airconMapper) SetFanMode(snap *Snapshot, fan FanMode) (*Patch, error) {
	wire, ok := airconWireByFan[fan]
	if !ok {
		return nil, fmt.Errorf("%w: fan %s", ErrUnsupportedValue, fan)
	}
	status, err := m.status(snap)
	if err != nil {
		return nil, err
	}
	mode, err := m.currentMode(status)
	if err != nil {
		return nil, err
	}
	fanLeaf, ok := airconFanPathByMode[mode]
	if !ok {
		return nil, fmt.Errorf("%w: no fan control in mode %s", ErrUnsupportedValue, mode)
	}
	frag, err := InjectPath(status, []string{"e_1002", "e_3001", fanLeaf}, wire)
	if err != nil {
		return nil, err
	}
	patch := &Patch{}
	patch.Add(FrameStatus, frag)
	return patch, nil
}

func (m *airconMapper) SetFanPercent(snap *Snapshot, percent int) (*Patch, error) {
	if percent < 0 || percent > 100 {
		return nil, fmt.Errorf("%w: fan percent %d", ErrUnsupportedValue, percent)
	}
	for _, b := range airconFanBuckets {
		if percent <= b.Max {
			return m.SetFanMode(snap, b.Level)
		}
	}
	return nil, fmt.Errorf("%w: fan percent %d", ErrUnsupportedValue, percent)
}

func (m *airconMapper) SetHumidify(snap *Snapshot, hum HumidifyMode) (*Patch, error) {
	wire, ok := airconWireByHumidify[hum]
	if !ok {
		return nil, fmt.Errorf("%w: humidify %s", ErrUnsupportedValue, hum)
	}
	status, err := m.status(snap)
	if err != nil {
		return nil, err
	}
	mode, err := m.currentMode(status)
	if err != nil {
		return nil, err
	}
	humLeaf, ok := airconHumidifyPathByMode[mode]
	if !ok {
		return nil, fmt.Errorf("%w: humidify forced to auto in mode %s", ErrUnsupportedValue, mode)
	}
	frag, err := InjectPath(status, []string{"e_1002", "e_3001", humLeaf}, wire)
	if err != nil {
		return nil, err
	}
	patch := &Patch{}
	patch.Add(FrameStatus, frag)
	return patch, nil
}

func (m *airconMapper) SetHumidifyPercent(snap *Snapshot, percent int) (*Patch, error) {
	if percent < 0 || percent > 100 {
		return nil, fmt.Errorf("%w: humidify percent %d", ErrUnsupportedValue, percent)
	}
	for _, b := range airconHumidifyBuckets {
		if percent <= b.Max {
			return m.SetHumidify(snap, b.Mode)
		}
	}
	return nil, fmt.Errorf("%w: humidify percent %d", ErrUnsupportedValue, percent)
}
