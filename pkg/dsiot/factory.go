package dsiot

import (
	"context"
	"encoding/base64"
	"fmt"

	"go.uber.org/zap"
)

// FamilyDescriptor ties an adapter type tag to its mapper.
type FamilyDescriptor struct {
	Family    Family
	NewMapper func() StateMapper
}

// familyRegistry is static: recognizing a family is a build-time decision,
// never a runtime guess.
var familyRegistry = map[string]FamilyDescriptor{
	"aircon":  {Family: FamilyAircon, NewMapper: NewAirconMapper},
	"cleaner": {Family: FamilyPurifier, NewMapper: NewPurifierMapper},
}

// ResolveFamily looks up the descriptor for an adapter type tag.
func ResolveFamily(tag string) (FamilyDescriptor, error) {
	desc, ok := familyRegistry[tag]
	if !ok {
		return FamilyDescriptor{}, fmt.Errorf("%w: type tag %q", ErrUnknownFamily, tag)
	}
	return desc, nil
}

// ProbeDevice reads the adapter identity frames and classifies the device.
func ProbeDevice(ctx context.Context, transport Transport, logger *zap.Logger) (*DeviceIdentity, error) {
	doc := &RequestDocument{
		Requests: []Request{
			ReadRequest(FrameAdapterInf),
			ReadRequest(FrameAdapterDev),
		},
	}
	rdoc, err := transport.Query(ctx, doc)
	if err != nil {
		return nil, err
	}
	inf := rdoc.Frame(FrameAdapterInf)
	dev := rdoc.Frame(FrameAdapterDev)
	if inf == nil || dev == nil {
		return nil, fmt.Errorf("%w: adapter identity frames missing", ErrFieldAbsent)
	}

	mac, _ := ExtractString(inf, "mac")
	ver, _ := ExtractString(inf, "ver")
	tag, ok := ExtractString(dev, "type")
	if !ok {
		return nil, fmt.Errorf("%w: adapter type tag missing", ErrFieldAbsent)
	}

	name := ""
	if encoded, ok := ExtractString(dev, "name"); ok {
		if decoded, derr := base64.StdEncoding.DecodeString(encoded); derr == nil {
			name = string(decoded)
		}
	}

	identity := &DeviceIdentity{
		MAC:             mac,
		Name:            name,
		FirmwareVersion: ver,
		FamilyTag:       tag,
	}
	logger.Info("device probed",
		zap.String("mac", identity.MAC),
		zap.String("name", identity.Name),
		zap.String("family", identity.FamilyTag))
	return identity, nil
}

// NewClientForDevice probes a device and builds the family-bound client.
// An unrecognized family is a hard error: no client is created.
func NewClientForDevice(ctx context.Context, transport Transport, logger *zap.Logger) (*Client, *DeviceIdentity, error) {
	identity, err := ProbeDevice(ctx, transport, logger)
	if err != nil {
		return nil, nil, err
	}
	desc, err := ResolveFamily(identity.FamilyTag)
	if err != nil {
		return nil, nil, err
	}
	return NewClient(transport, desc.NewMapper(), logger), identity, nil
}
