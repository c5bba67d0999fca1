package dsiot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Transport carries multireq documents to a single device endpoint.
type Transport interface {
	Query(ctx context.Context, doc *RequestDocument) (*ResponseDocument, error)
}

// HTTPTransport speaks the dsiot local HTTP endpoint. Appliances accept one
// request at a time; callers are expected to serialize access.
type HTTPTransport struct {
	endpoint string
	client   *http.Client
}

// NewHTTPTransport builds a transport for a device host ("192.168.1.60").
func NewHTTPTransport(host string, timeout time.Duration) *HTTPTransport {
	return &HTTPTransport{
		endpoint: fmt.Sprintf("http://%s/dsiot/multireq", host),
		client:   &http.Client{Timeout: timeout},
	}
}

func (t *HTTPTransport) Query(ctx context.Context, doc *RequestDocument) (*ResponseDocument, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("dsiot: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected HTTP status %s", resp.Status),
		}
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	var rdoc ResponseDocument
	if err := json.Unmarshal(raw, &rdoc); err != nil {
		return nil, fmt.Errorf("dsiot: malformed response document: %w", err)
	}
	if err := rdoc.CheckStatus(); err != nil {
		return nil, err
	}
	return &rdoc, nil
}
