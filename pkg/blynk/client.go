package blynk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cast"

	"github.com/ettom/blynk-lightswitch/internal/devices"
)

// Client issues the two request shapes of the Blynk HTTP API:
//
//	GET {server}/{auth}/update/{pin}?value={v}
//	GET {server}/{auth}/get/{pin} -> JSON array, first element is the state
//
// Calls are blocking, one at a time, with no retries. Failures are
// returned to the caller untouched.
type Client struct {
	cfg  *devices.Config
	base string
	http *http.Client
	log  logr.Logger
}

// NewClient builds a client against the table's server, or against
// server if non-empty.
func NewClient(cfg *devices.Config, server string, log logr.Logger) *Client {
	if server == "" {
		server = cfg.Server()
	}
	return &Client{
		cfg:  cfg,
		base: strings.TrimSuffix(server, "/"),
		http: &http.Client{},
		log:  log,
	}
}

// SetState writes a logical value to a device. The value is encoded
// with the device's inversion flag before it goes on the wire.
func (c *Client) SetState(ctx context.Context, name string, value float64) error {
	dev, err := c.cfg.Lookup(name)
	if err != nil {
		return err
	}

	encoded := ProcessPin(value, dev.Default)
	url := fmt.Sprintf("%s/%s/update/%s?value=%s", c.base, dev.Auth, dev.Pin, FormatValue(encoded))
	c.log.Info("Calling", "method", http.MethodGet, "url", url)

	res, err := c.get(ctx, url)
	if err != nil {
		return fmt.Errorf("update %s: %w", name, err)
	}
	res.Body.Close()
	return nil
}

// GetState reads a device's state. The inversion flag is applied only
// to 0/1 readings of non-excluded devices: sensor readings and analog
// values come back as-is even though writes are always encoded.
func (c *Client) GetState(ctx context.Context, name string) (float64, error) {
	dev, err := c.cfg.Lookup(name)
	if err != nil {
		return 0, err
	}

	url := fmt.Sprintf("%s/%s/get/%s", c.base, dev.Auth, dev.Pin)
	c.log.Info("Calling", "method", http.MethodGet, "url", url)

	res, err := c.get(ctx, url)
	if err != nil {
		return 0, fmt.Errorf("get %s: %w", name, err)
	}
	defer res.Body.Close()

	var payload []any
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("get %s: decoding response: %w", name, err)
	}
	if len(payload) == 0 {
		return 0, fmt.Errorf("get %s: empty response", name)
	}
	state, err := cast.ToFloat64E(payload[0])
	if err != nil {
		return 0, fmt.Errorf("get %s: non-numeric state %v: %w", name, payload[0], err)
	}

	if (state == 0 || state == 1) && !c.cfg.Excluded(name) {
		state = ProcessPin(state, dev.Default)
	}
	return state, nil
}

// Flip toggles a device: one read round-trip, then one write. The pair
// is not atomic; a concurrent external change between the two calls is
// not detected.
func (c *Client) Flip(ctx context.Context, name string) error {
	state, err := c.GetState(ctx, name)
	if err != nil {
		return err
	}
	return c.SetState(ctx, name, ProcessPin(state, 1))
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if res.StatusCode >= 400 {
		res.Body.Close()
		return nil, fmt.Errorf("status %s", res.Status)
	}
	return res, nil
}

// FormatValue renders a state value the way it goes on the wire and on
// screen: whole numbers without a decimal point.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
