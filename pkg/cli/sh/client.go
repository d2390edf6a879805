package sh

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/linkbots/servolink/pkg/servo"
)

// DefaultTimeout bounds one request to the device.
const DefaultTimeout = 10 * time.Second

// Client talks to one device over its HTTP command channel. The device
// serves one connection at a time and closes it after each response,
// so every call is a fresh connection.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a Client for a device address. A bare host or
// host:port is accepted.
func NewClient(addr string) *Client {
	if !strings.Contains(addr, "://") {
		addr = "http://" + addr
	}
	return &Client{
		BaseURL: strings.TrimSuffix(addr, "/"),
		HTTP:    &http.Client{Timeout: DefaultTimeout},
	}
}

// Descriptor is the device's root document.
type Descriptor struct {
	Status    string   `json:"status"`
	Message   string   `json:"message"`
	Device    string   `json:"device,omitempty"`
	Session   string   `json:"session,omitempty"`
	Endpoints []string `json:"endpoints"`
}

func (c *Client) get(path string, out interface{}) error {
	resp, err := c.HTTP.Get(c.BaseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	if out != nil {
		return json.Unmarshal(body, out)
	}
	return nil
}

// Describe fetches the root descriptor.
func (c *Client) Describe() (*Descriptor, error) {
	var d Descriptor
	if err := c.get("/", &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Health checks the health endpoint.
func (c *Client) Health() (bool, error) {
	var h struct {
		Healthy bool `json:"healthy"`
	}
	if err := c.get("/health", &h); err != nil {
		return false, err
	}
	return h.Healthy, nil
}

// SetAngle commands the servo position and returns the echoed angle.
func (c *Client) SetAngle(angle servo.Angle) (servo.Angle, error) {
	var res struct {
		Angle servo.Angle `json:"angle"`
	}
	if err := c.get(fmt.Sprintf("/servo/%d", angle), &res); err != nil {
		return 0, err
	}
	return res.Angle, nil
}
