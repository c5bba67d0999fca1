package dsiot

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Client binds a transport to one appliance and its family mapper.
type Client struct {
	transport Transport
	mapper    StateMapper
	logger    *zap.Logger
}

func NewClient(transport Transport, mapper StateMapper, logger *zap.Logger) *Client {
	return &Client{
		transport: transport,
		mapper:    mapper,
		logger:    logger.Named("dsiot"),
	}
}

func (c *Client) Family() Family {
	return c.mapper.Family()
}

func (c *Client) Mapper() StateMapper {
	return c.mapper
}

// FetchSnapshot reads the family's full frame set in one multireq. The
// returned snapshot replaces any previous one wholesale.
func (c *Client) FetchSnapshot(ctx context.Context) (*Snapshot, error) {
	doc := &RequestDocument{}
	targets := c.mapper.ReadTargets()
	for _, to := range targets {
		doc.Requests = append(doc.Requests, ReadRequest(to))
	}
	rdoc, err := c.transport.Query(ctx, doc)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{Frames: make(map[string]*Node, len(targets))}
	for _, to := range targets {
		frame := rdoc.Frame(to)
		if frame == nil {
			return nil, fmt.Errorf("%w: frame %s missing from response", ErrFieldAbsent, to)
		}
		snap.Frames[to] = frame
	}
	c.logger.Debug("snapshot fetched", zap.Int("frames", len(snap.Frames)))
	return snap, nil
}

// SendPatch writes a composed patch in a single multireq. An empty patch is
// a no-op.
func (c *Client) SendPatch(ctx context.Context, patch *Patch) error {
	if patch.Empty() {
		return nil
	}
	doc := patch.Document()
	if _, err := c.transport.Query(ctx, doc); err != nil {
		return err
	}
	c.logger.Debug("patch sent", zap.Int("fragments", len(doc.Requests)))
	return nil
}

// Decode runs the family mapper over a snapshot.
func (c *Client) Decode(snap *Snapshot) (*DeviceState, error) {
	return c.mapper.Decode(snap)
}
