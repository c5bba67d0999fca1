package dsiot

import (
	"fmt"
)

// Humidifying air purifier family. Same dgc_status frame layout as the air
// conditioner family, different leaves: there is no setpoint, and the fan
// speed lives in one of two leaves depending on whether a fixed humidify
// level is active.

var purifierModeByWire = map[string]Mode{
	"0000": ModeAuto,
	"0200": ModeEcono,
	"0300": ModePollen,
	"0400": ModeCirculator,
	"0500": ModeMoist,
}

var purifierWireByMode = map[Mode]string{}

var purifierFanByWire = map[string]FanMode{
	"00": FanAuto,
	"01": FanQuiet,
	"02": FanLevel1,
	"03": FanLevel2,
	"05": FanLevel3,
}

var purifierWireByFan = map[FanMode]string{}

// Humidify level leaf p_0C is also the fan-path discriminant: a fixed
// level (01-03) routes fan writes to p_0D instead of p_09.
var purifierHumidifyByWire = map[string]HumidifyMode{
	"00": HumidifyOff,
	"01": HumidifyLow,
	"02": HumidifyStandard,
	"03": HumidifyHigh,
	"04": HumidifyAuto,
}

var purifierWireByHumidify = map[HumidifyMode]string{}

// purifierFanBuckets maps a 0-100 percent to a discrete fan setting.
// Deliberately different thresholds than the air conditioner family: four
// settings, quarters.
var purifierFanBuckets = []struct {
	Max   int
	Level FanMode
}{
	{25, FanQuiet},
	{50, FanLevel1},
	{75, FanLevel2},
	{100, FanLevel3},
}

var purifierFanPercent = map[FanMode]int{
	FanAuto:   0,
	FanQuiet:  25,
	FanLevel1: 50,
	FanLevel2: 75,
	FanLevel3: 100,
}

var purifierHumidifyBuckets = []struct {
	Max  int
	Mode HumidifyMode
}{
	{0, HumidifyOff},
	{33, HumidifyLow},
	{66, HumidifyStandard},
	{100, HumidifyHigh},
}

func init() {
	for wire, mode := range purifierModeByWire {
		if _, dup := purifierWireByMode[mode]; dup {
			panic(fmt.Sprintf("dsiot: duplicate purifier mode mapping %s", mode))
		}
		purifierWireByMode[mode] = wire
	}
	for wire, fan := range purifierFanByWire {
		if _, dup := purifierWireByFan[fan]; dup {
			panic(fmt.Sprintf("dsiot: duplicate purifier fan mapping %s", fan))
		}
		purifierWireByFan[fan] = wire
	}
	for wire, hum := range purifierHumidifyByWire {
		if _, dup := purifierWireByHumidify[hum]; dup {
			panic(fmt.Sprintf("dsiot: duplicate purifier humidify mapping %s", hum))
		}
		purifierWireByHumidify[hum] = wire
	}
	for _, b := range purifierFanBuckets {
		if _, ok := purifierWireByFan[b.Level]; !ok {
			panic(fmt.Sprintf("dsiot: purifier fan bucket targets unmapped level %s", b.Level))
		}
	}
	for _, b := range purifierHumidifyBuckets {
		if _, ok := purifierWireByHumidify[b.Mode]; !ok {
			panic(fmt.Sprintf("dsiot: purifier humidify bucket targets unmapped mode %s", b.Mode))
		}
	}
}

type purifierMapper struct{}

// NewPurifierMapper returns the mapper for the air purifier family.
func NewPurifierMapper() StateMapper {
	return &purifierMapper{}
}

func (m *purifierMapper) Family() Family {
	return FamilyPurifier
}

func (m *purifierMapper) ReadTargets() []string {
	return []string{FrameStatus}
}

func (m *purifierMapper) status(snap *Snapshot) (*Node, error) {
	root := snap.Frame(FrameStatus)
	if root == nil {
		return nil, fmt.Errorf("%w: frame %s", ErrFieldAbsent, FrameStatus)
	}
	return root, nil
}

// fixedHumidifyActive reports whether a fixed humidify level (not off, not
// auto) is set. It decides which leaf holds the fan speed.
func fixedHumidifyActive(status *Node) bool {
	wire, ok := ExtractString(status, "e_1002", "e_3001", "p_0C")
	if !ok {
		return false
	}
	hum, known := purifierHumidifyByWire[wire]
	if !known {
		return false
	}
	return hum != HumidifyOff && hum != HumidifyAuto
}

func purifierFanLeaf(status *Node) string {
	if fixedHumidifyActive(status) {
		return "p_0D"
	}
	return "p_09"
}

func (m *purifierMapper) Decode(snap *Snapshot) (*DeviceState, error) {
	status, err := m.status(snap)
	if err != nil {
		return nil, err
	}
	power, ok := ExtractString(status, "e_1002", "e_A002", "p_01")
	if !ok {
		return nil, fmt.Errorf("%w: power", ErrFieldAbsent)
	}
	modeWire, ok := ExtractString(status, "e_1002", "e_3001", "p_01")
	if !ok {
		return nil, fmt.Errorf("%w: mode", ErrFieldAbsent)
	}
	mode, known := purifierModeByWire[modeWire]
	if !known {
		return nil, fmt.Errorf("dsiot: unknown purifier mode value %q", modeWire)
	}
	state := &DeviceState{
		PowerOn: power == "01",
		Mode:    mode,
	}

	if wire, ok := ExtractString(status, "e_1002", "e_3001", "p_0C"); ok {
		if hum, known := purifierHumidifyByWire[wire]; known {
			state.HumidifyMode = hum
		}
	}
	if wire, ok := ExtractString(status, "e_1002", "e_3001", purifierFanLeaf(status)); ok {
		if fan, known := purifierFanByWire[wire]; known {
			state.FanMode = fan
			state.FanPercent = purifierFanPercent[fan]
		}
	}

	if v, ok := ExtractFloat(status, "e_1002", "e_A00B", "p_01"); ok {
		state.IndoorTemperature = &v
	}
	if v, ok := ExtractFloat(status, "e_1002", "e_A00B", "p_02"); ok {
		state.IndoorHumidity = &v
	}
	if v, ok := ExtractFloat(status, "e_1002", "e_A00B", "p_03"); ok {
		state.PM25 = &v
	}
	if v, ok := ExtractFloat(status, "e_1002", "e_A00B", "p_04"); ok {
		state.Dust = &v
	}
	if v, ok := ExtractFloat(status, "e_1002", "e_A00B", "p_05"); ok {
		state.Odor = &v
	}

	return state, nil
}

func (m *purifierMapper) SetPower(snap *Snapshot, on bool) (*Patch, error) {
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

// SetMode switches the purifier mode. Moist mode requires the humidifier,
// so that write carries humidify-auto along with it.
func (m *purifierMapper) SetMode(snap *Snapshot, mode Mode) (*Patch, error) {
	wire, ok := purifierWireByMode[mode]
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
	if mode == ModeMoist {
		hum, err := InjectPath(status, []string{"e_1002", "e_3001", "p_0C"}, purifierWireByHumidify[HumidifyAuto])
		if err != nil {
			return nil, err
		}
		patch.Add(FrameStatus, hum)
	}
	return patch, nil
}

func (m *purifierMapper) SetTargetTemperature(snap *Snapshot, value float64) (*Patch, error) {
	return nil, fmt.Errorf("%w: purifier has no temperature setpoint", ErrUnsupportedValue)
}

func (m *purifierMapper) SetFanMode(snap *Snapshot, fan FanMode) (*Patch, error) {
	wire, ok := purifierWireByFan[fan]
	if !ok {
		return nil, fmt.Errorf("%w: fan %s", ErrUnsupportedValue, fan)
	}
	status, err := m.status(snap)
	if err != nil {
		return nil, err
	}
	frag, err := InjectPath(status, []string{"e_1002", "e_3001", purifierFanLeaf(status)}, wire)
	if err != nil {
		return nil, err
	}
	patch := &Patch{}
	patch.Add(FrameStatus, frag)
	return patch, nil
}

func (m *purifierMapper) SetFanPercent(snap *Snapshot, percent int) (*Patch, error) {
	if percent < 0 || percent > 100 {
		return nil, fmt.Errorf("%w: fan percent %d", ErrUnsupportedValue, percent)
	}
	for _, b := range purifierFanBuckets {
		if percent <= b.Max {
			return m.SetFanMode(snap, b.Level)
		}
	}
	return nil, fmt.Errorf("%w: fan percent %d", ErrUnsupportedValue, percent)
}

func (m *purifierMapper) SetHumidify(snap *Snapshot, hum HumidifyMode) (*Patch, error) {
	wire, ok := purifierWireByHumidify[hum]
	if !ok {
		return nil, fmt.Errorf("%w: humidify %s", ErrUnsupportedValue, hum)
	}
	status, err := m.status(snap)
	if err != nil {
		return nil, err
	}
	if hum == HumidifyOff {
		if mode, merr := m.currentMode(status); merr == nil && mode == ModeMoist {
			return nil, fmt.Errorf("%w: humidify cannot be off in moist mode", ErrUnsupportedValue)
		}
	}
	frag, err := InjectPath(status, []string{"e_1002", "e_3001", "p_0C"}, wire)
	if err != nil {
		return nil, err
	}
	patch := &Patch{}
	patch.Add(FrameStatus, frag)
	return patch, nil
}

func (m *purifierMapper) currentMode(status *Node) (Mode, error) {
	wire, ok := ExtractString(status, "e_1002", "e_3001", "p_01")
	if !ok {
		return "", fmt.Errorf("%w: mode", ErrFieldAbsent)
	}
	mode, known := purifierModeByWire[wire]
	if !known {
		return "", fmt.Errorf("dsiot: unknown purifier mode value %q", wire)
	}
	return mode, nil
}

func (m *purifierMapper) SetHumidifyPercent(snap *Snapshot, percent int) (*Patch, error) {
	if percent < 0 || percent > 100 {
		return nil, fmt.Errorf("%w: humidify percent %d", ErrUnsupportedValue, percent)
	}
	for _, b := range purifierHumidifyBuckets {
		if percent <= b.Max {
			return m.SetHumidify(snap, b.Mode)
		}
	}
	return nil, fmt.Errorf("%w: humidify percent %d", ErrUnsupportedValue, percent)
}
