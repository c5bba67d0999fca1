package dsiot

// Frame addresses common to dsiot appliances.
const (
	FrameStatus     = "/dsiot/edge/adr_0100.dgc_status"
	FrameOutdoor    = "/dsiot/edge/adr_0200.dgc_status"
	FrameWeekPower  = "/dsiot/edge/adr_0100.i_power.week_power"
	FrameAdapterInf = "/dsiot/edge.adp_i"
	FrameAdapterDev = "/dsiot/edge.adp_d"
)

// Family identifies a supported appliance family by its adapter type tag.
type Family string

const (
	FamilyAircon   Family = "aircon"
	FamilyPurifier Family = "cleaner"
)

// Mode is a normalized operation mode. Not every family supports every mode.
type Mode string

const (
	ModeAuto       Mode = "auto"
	ModeCool       Mode = "cool"
	ModeHeat       Mode = "heat"
	ModeDry        Mode = "dry"
	ModeFanOnly    Mode = "fan_only"
	ModeEcono      Mode = "econo"
	ModePollen     Mode = "pollen"
	ModeCirculator Mode = "circulator"
	ModeMoist      Mode = "moist"
)

// FanMode is a normalized fan setting. Numeric modes are discrete levels.
type FanMode string

const (
	FanAuto   FanMode = "auto"
	FanQuiet  FanMode = "quiet"
	FanLevel1 FanMode = "1"
	FanLevel2 FanMode = "2"
	FanLevel3 FanMode = "3"
	FanLevel4 FanMode = "4"
	FanLevel5 FanMode = "5"
)

// HumidifyMode is a normalized humidifier setting.
type HumidifyMode string

const (
	HumidifyOff      HumidifyMode = "off"
	HumidifyAuto     HumidifyMode = "auto"
	HumidifyLow      HumidifyMode = "low"
	HumidifyStandard HumidifyMode = "standard"
	HumidifyHigh     HumidifyMode = "high"
)

// DeviceIdentity is the stable identity read during probing.
type DeviceIdentity struct {
	MAC             string
	Name            string
	FirmwareVersion string
	FamilyTag       string
}

// DeviceState is the full normalized view of one appliance, decoded from a
// snapshot in a single pass. Optional readings are nil when the device does
// not report them.
type DeviceState struct {
	PowerOn bool
	Mode    Mode

	TargetTemperature    *float64
	TargetTemperatureMin *float64
	TargetTemperatureMax *float64

	FanMode    FanMode
	FanPercent int

	HumidifyMode    HumidifyMode
	HumidifyPercent int

	IndoorTemperature  *float64
	IndoorHumidity     *float64
	OutdoorTemperature *float64

	PM25 *float64
	Dust *float64
	Odor *float64

	TodayEnergyKWh *float64
}

// Snapshot is one coherent set of frames fetched together from a device.
// A refresh replaces the previous snapshot wholesale.
type Snapshot struct {
	Frames map[string]*Node
}

// Frame returns the tree fetched for a frame address, or nil.
func (s *Snapshot) Frame(to string) *Node {
	if s == nil {
		return nil
	}
	return s.Frames[to]
}

// StateMapper translates between a family's raw parameter trees and the
// normalized state. Setters build minimal patches against the last-known
// snapshot; they never perform I/O. A setter returns ErrUnsupportedValue
// when the request is outside the device's current capability and
// ErrFieldAbsent when an expected parameter is missing from the tree.
type StateMapper interface {
	Family() Family

	// ReadTargets lists the frame addresses a full refresh must fetch.
	ReadTargets() []string

	Decode(snap *Snapshot) (*DeviceState, error)

	SetPower(snap *Snapshot, on bool) (*Patch, error)
	SetMode(snap *Snapshot, mode Mode) (*Patch, error)
	SetTargetTemperature(snap *Snapshot, value float64) (*Patch, error)
	SetFanMode(snap *Snapshot, fan FanMode) (*Patch, error)
	SetFanPercent(snap *Snapshot, percent int) (*Patch, error)
	SetHumidify(snap *Snapshot, mode HumidifyMode) (*Patch, error)
	SetHumidifyPercent(snap *Snapshot, percent int) (*Patch, error)
}

// decodeTodayEnergy reads the trailing entry of the weekly energy series
// (watt-hours per day, today last).
func decodeTodayEnergy(week *Node) *float64 {
	leaf := Find(week, "datas")
	if leaf == nil {
		return nil
	}
	days, ok := leaf.Value.([]any)
	if !ok || len(days) == 0 {
		return nil
	}
	wh, ok := days[len(days)-1].(float64)
	if !ok {
		return nil
	}
	kwh := wh / 1000
	return &kwh
}
