package dsiot

import (
	"fmt"
	"strings"
)

const (
	opRead  = 2
	opWrite = 3

	// readFilter trims read responses to values, types and metadata.
	readFilter = "?filter=pv,pt,md"
)

// Request is one entry of a multireq document.
type Request struct {
	Op      int   `json:"op"`
	To      string `json:"to"`
	Payload *Node `json:"pc,omitempty"`
}

// RequestDocument is the body POSTed to /dsiot/multireq.
type RequestDocument struct {
	Requests []Request `json:"requests"`
}

// Response is one entry of a multireq response document. Rsc is a
// per-request status code; the 2000 block means success.
type Response struct {
	From    string `json:"fr"`
	Rsc     int    `json:"rsc"`
	Payload *Node  `json:"pc,omitempty"`
}

// ResponseDocument is the body of a /dsiot/multireq response.
type ResponseDocument struct {
	Responses []Response `json:"responses"`
}

// Frame finds the response payload for a frame address, matching with or
// without the read filter suffix.
func (d *ResponseDocument) Frame(to string) *Node {
	for i := range d.Responses {
		fr := strings.TrimSuffix(d.Responses[i].From, readFilter)
		if fr == to {
			return d.Responses[i].Payload
		}
	}
	return nil
}

// CheckStatus returns a TransportError for the first non-success response.
func (d *ResponseDocument) CheckStatus() error {
	for i := range d.Responses {
		rsc := d.Responses[i].Rsc
		if rsc < 2000 || rsc >= 3000 {
			return &TransportError{
				StatusCode: rsc,
				Err:        fmt.Errorf("request to %s rejected", d.Responses[i].From),
			}
		}
	}
	return nil
}

// ReadRequest builds a filtered read of a frame address.
func ReadRequest(to string) Request {
	return Request{Op: opRead, To: to + readFilter}
}

// Patch is a pending write: one fragment tree per frame address. Fragments
// addressed to the same frame are merged by parameter name, so independent
// single-field changes collapse into a single request entry.
type Patch struct {
	fragments map[string]*Node
	order     []string
}

// Add merges a fragment into the patch.
func (p *Patch) Add(to string, fragment *Node) {
	if p.fragments == nil {
		p.fragments = make(map[string]*Node)
	}
	if existing, ok := p.fragments[to]; ok {
		MergeTrees(existing, fragment)
		return
	}
	p.fragments[to] = fragment
	p.order = append(p.order, to)
}

// Merge folds another patch into this one.
func (p *Patch) Merge(other *Patch) {
	if other == nil {
		return
	}
	for _, to := range other.order {
		p.Add(to, other.fragments[to])
	}
}

// Empty reports whether the patch carries no fragments.
func (p *Patch) Empty() bool {
	return p == nil || len(p.fragments) == 0
}

// Document renders the patch as a write multireq.
func (p *Patch) Document() *RequestDocument {
	doc := &RequestDocument{}
	for _, to := range p.order {
		doc.Requests = append(doc.Requests, Request{
			Op:      opWrite,
			To:      to,
			Payload: p.fragments[to],
		})
	}
	return doc
}
