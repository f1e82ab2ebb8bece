package horizons

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/litescript/ls-ephem/internal/logging"
)

// Client runs ephemeris queries end to end: encode, fetch, unwrap the
// envelope, frame the payload, decode records. Every error it returns is an
// *Error tagged with the pipeline stage that produced it.
type Client struct {
	transport Transport
	logger    *logging.Logger
	email     string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTransport replaces the default HTTP transport.
func WithTransport(t Transport) ClientOption {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger sets the client logger.
func WithLogger(l *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// WithDefaultEmail attaches a contact address to every query that does not
// carry its own.
func WithDefaultEmail(addr string) ClientOption {
	return func(c *Client) {
		c.email = addr
	}
}

// NewClient creates a client against the public Horizons endpoint.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = NewHTTPTransport()
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	return c
}

// envelope is the JSON wrapper the service returns for format=json.
type envelope struct {
	Signature struct {
		Version string `json:"version"`
		Source  string `json:"source"`
	} `json:"signature"`
	Result string `json:"result"`
	Error  string `json:"error"`
}

// fetch encodes the request, runs the transport, and unwraps the response
// envelope down to the text bundle.
func (c *Client) fetch(ctx context.Context, r Request) (string, error) {
	params, err := r.Encode()
	if err != nil {
		return "", err
	}
	if c.email != "" && !r.has(keyEmail) {
		params = append(params, Param{Key: keyEmail, Value: c.email})
	}

	c.logger.Debug("fetching %s ephemeris for %q (%d params)", r.typ, r.command, len(params))
	body, err := c.transport.Fetch(ctx, params)
	if err != nil {
		return "", stageErr(StageTransport, r.command, err)
	}
	c.logger.Debug("received %d bytes for %q", len(body), r.command)

	if r.format == FormatText {
		return body, nil
	}

	var env envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		return "", stageErr(StageTransport, r.command, fmt.Errorf("parse response envelope: %w", err))
	}
	if env.Error != "" {
		return "", stageErr(StageTransport, r.command, fmt.Errorf("service error: %s", env.Error))
	}
	return env.Result, nil
}

// frame fetches and frames the sentinel-delimited payload.
func (c *Client) frame(ctx context.Context, r Request) (payload, error) {
	text, err := c.fetch(ctx, r)
	if err != nil {
		return payload{}, err
	}
	return framePayload(text)
}

// requireType guards the typed entry points against a request built for a
// different table kind.
func requireType(r Request, want EphemerisType) error {
	if r.typ != want {
		return configErr(keyEphemType,
			fmt.Errorf("request is %s, not %s", r.typ, want))
	}
	return nil
}

// MajorBodies fetches the major-bodies catalog (planets, satellites,
// barycenters and select spacecraft with their numeric ids).
func (c *Client) MajorBodies(ctx context.Context) ([]BodyRecord, error) {
	params := []Param{
		{Key: keyFormat, Value: FormatText.value()},
		{Key: keyCommand, Value: quoteIfNeeded("MB")},
	}

	c.logger.Debug("fetching major-bodies catalog")
	text, err := c.transport.Fetch(ctx, params)
	if err != nil {
		return nil, stageErr(StageTransport, "MB", err)
	}

	records := decodeMajorBodies(text)
	if len(records) == 0 {
		head := text
		if len(head) > 200 {
			head = head[:200]
		}
		return nil, stageErr(StageFrame, strings.TrimSpace(head),
			fmt.Errorf("no catalog entries in response"))
	}
	c.logger.Info("major-bodies catalog: %d entries", len(records))
	return records, nil
}

// Observer runs an OBSERVER query and decodes its table rows. The request
// must carry a quantity selection the decoder knows the column layout for.
func (c *Client) Observer(ctx context.Context, r Request) ([]ObserverRecord, error) {
	if err := requireType(r, TypeObserver); err != nil {
		return nil, err
	}
	if err := observerColumns(r.quantities); err != nil {
		return nil, err
	}
	p, err := c.frame(ctx, r)
	if err != nil {
		return nil, err
	}
	records, err := decodeObserver(p, r.quantities, r.csv)
	if err != nil {
		return nil, err
	}
	c.logger.Info("observer table for %q: %d rows", r.command, len(records))
	return records, nil
}

// Vectors runs a VECTORS query and decodes its state records. Only table
// layouts 2 and 3 carry the position and velocity rows the decoder reads.
func (c *Client) Vectors(ctx context.Context, r Request) ([]VectorRecord, error) {
	if err := requireType(r, TypeVectors); err != nil {
		return nil, err
	}
	if r.vecTable != 2 && r.vecTable != 3 {
		return nil, configErr(keyVecTable,
			fmt.Errorf("vector table %d has no state decoder, use 2 or 3", r.vecTable))
	}
	p, err := c.frame(ctx, r)
	if err != nil {
		return nil, err
	}
	records, err := decodeVectors(p, r.csv)
	if err != nil {
		return nil, err
	}
	c.logger.Info("vector table for %q: %d records", r.command, len(records))
	return records, nil
}

// Elements runs an ELEMENTS query and decodes its osculating-element records.
func (c *Client) Elements(ctx context.Context, r Request) ([]ElementRecord, error) {
	if err := requireType(r, TypeElements); err != nil {
		return nil, err
	}
	p, err := c.frame(ctx, r)
	if err != nil {
		return nil, err
	}
	records, err := decodeElements(p, r.csv)
	if err != nil {
		return nil, err
	}
	c.logger.Info("element table for %q: %d records", r.command, len(records))
	return records, nil
}
