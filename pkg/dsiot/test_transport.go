package dsiot

import (
	"context"
	"strings"
	"sync"
	"time"
)

// TestTransport is an in-memory device. Reads serve the held frames, writes
// merge into them, so a refresh after a command observes the change. Every
// query appends begin/end entries to an ordered call log, which lets tests
// assert that callers never overlap operations.
type TestTransport struct {
	mu     sync.Mutex
	frames map[string]*Node

	logMu   sync.Mutex
	callLog []string

	// Delay stretches every query, to widen overlap windows in tests.
	Delay time.Duration
	// FailWith, when set, makes every query fail with that error.
	FailWith error
}

func NewTestTransport(frames map[string]*Node) *TestTransport {
	return &TestTransport{frames: frames}
}

func (t *TestTransport) log(entry string) {
	t.logMu.Lock()
	defer t.logMu.Unlock()
	t.callLog = append(t.callLog, entry)
}

// CallLog returns a copy of the ordered call log.
func (t *TestTransport) CallLog() []string {
	t.logMu.Lock()
	defer t.logMu.Unlock()
	return append([]string(nil), t.callLog...)
}

func (t *TestTransport) Query(ctx context.Context, doc *RequestDocument) (*ResponseDocument, error) {
	op := "read"
	for _, r := range doc.Requests {
		if r.Op == opWrite {
			op = "write"
			break
		}
	}
	t.log("begin " + op)
	defer t.log("end " + op)

	if t.Delay > 0 {
		select {
		case <-time.After(t.Delay):
		case <-ctx.Done():
			return nil, &TransportError{Err: ctx.Err()}
		}
	}
	if t.FailWith != nil {
		return nil, t.FailWith
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	rdoc := &ResponseDocument{}
	for _, r := range doc.Requests {
		to := strings.TrimSuffix(r.To, readFilter)
		frame, ok := t.frames[to]
		if !ok {
			return nil, &TransportError{StatusCode: 4004}
		}
		switch r.Op {
		case opRead:
			rdoc.Responses = append(rdoc.Responses, Response{From: r.To, Rsc: 2000, Payload: frame})
		case opWrite:
			MergeTrees(frame, r.Payload)
			rdoc.Responses = append(rdoc.Responses, Response{From: r.To, Rsc: 2004})
		default:
			return nil, &TransportError{StatusCode: 4000}
		}
	}
	return rdoc, nil
}

func leaf(pn, pv string) *Node {
	return &Node{Name: pn, Value: pv}
}

func scaledLeaf(pn, pv string, md *Metadata) *Node {
	return &Node{Name: pn, Value: pv, Metadata: md}
}

func branch(pn string, children ...*Node) *Node {
	return &Node{Name: pn, Children: children}
}

// TestAirconFrames is a cooling living-room unit: power on, mode cool,
// target 24.0 (range 18.0-32.0), fan auto, indoor 20/45%, outdoor 13.0.
func TestAirconFrames() map[string]*Node {
	halfDegree := &Metadata{Step: 0xF5, Min: "24", Max: "40"}
	return map[string]*Node{
		FrameStatus: branch("dgc_status",
			branch("e_1002",
				branch("e_A002", leaf("p_01", "01")),
				branch("e_3001",
					leaf("p_01", "0200"),
					scaledLeaf("p_02", "30", halfDegree),
					scaledLeaf("p_03", "2E", halfDegree),
					scaledLeaf("p_1D", "32", halfDegree),
					leaf("p_09", "0A00"),
					leaf("p_0A", "0300"),
					leaf("p_26", "0A00"),
					leaf("p_28", "0500"),
					leaf("p_0B", "00"),
					leaf("p_1F", "00"),
				),
				branch("e_A00B",
					leaf("p_01", "14"),
					leaf("p_02", "2D"),
				),
			),
		),
		FrameOutdoor: branch("dgc_status",
			branch("e_1003",
				branch("e_A00D", scaledLeaf("p_01", "1A", &Metadata{Step: 0xF5})),
			),
		),
		FrameWeekPower: branch("week_power",
			&Node{Name: "datas", Value: []any{150.0, 320.0, 500.0}},
		),
		FrameAdapterInf: branch("adp_i",
			leaf("mac", "A0B1C2D3E4F5"),
			leaf("ver", "3_40"),
		),
		FrameAdapterDev: branch("adp_d",
			leaf("type", "aircon"),
			leaf("name", "TGl2aW5nIFJvb20="),
		),
	}
}

// TestPurifierFrames is a purifier in auto mode with a fixed standard
// humidify level, so the fan speed lives in p_0D.
func TestPurifierFrames() map[string]*Node {
	return map[string]*Node{
		FrameStatus: branch("dgc_status",
			branch("e_1002",
				branch("e_A002", leaf("p_01", "01")),
				branch("e_3001",
					leaf("p_01", "0000"),
					leaf("p_0C", "02"),
					leaf("p_09", "00"),
					leaf("p_0D", "03"),
				),
				branch("e_A00B",
					leaf("p_01", "19"),
					leaf("p_02", "28"),
					leaf("p_03", "0A"),
					leaf("p_04", "05"),
					leaf("p_05", "02"),
				),
			),
		),
		FrameAdapterInf: branch("adp_i",
			leaf("mac", "F5E4D3C2B1A0"),
			leaf("ver", "2_10"),
		),
		FrameAdapterDev: branch("adp_d",
			leaf("type", "cleaner"),
			leaf("name", "QmVkcm9vbQ=="),
		),
	}
}
