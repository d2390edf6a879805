package telemetry

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/golang/glog"

	"github.com/linkbots/servolink/pkg/console"
	"github.com/linkbots/servolink/pkg/servo"
)

// Publisher receives angle commands parsed off the command topic.
type Publisher interface {
	Put(servo.Angle)
}

// Announcement is the retained presence document published under
// <device>/meta while the device is online. An unclean disconnect
// clears it through the will.
type Announcement struct {
	Device  string `json:"device"`
	Session string `json:"session,omitempty"`
	Addr    string `json:"addr,omitempty"`
}

// Telemetry is the broker-side face of the device.
type Telemetry struct {
	Queue     *Queue
	Publisher Publisher

	device   string
	metaJSON []byte
}

// New creates a Telemetry client for the given broker URL. The URL's
// path becomes the topic prefix shared by a fleet of devices.
func New(brokerURL string, ann Announcement, publisher Publisher) (*Telemetry, error) {
	meta, err := json.Marshal(&ann)
	if err != nil {
		panic(err)
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	if topicPrefix != "" && !strings.HasSuffix(topicPrefix, "/") {
		topicPrefix += "/"
	}
	opts.SetBinaryWill(topicPrefix+ann.Device+"/meta", nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("servolink:" + ann.Device)
	}
	t := &Telemetry{
		Queue:     NewQueue(opts, topicPrefix),
		Publisher: publisher,
		device:    ann.Device,
		metaJSON:  meta,
	}
	t.Queue.OnConnect = func(*Queue) { t.onConnected() }
	return t, nil
}

// Name implements framework.Named.
func (t *Telemetry) Name() string {
	return "telemetry"
}

// AngleTopic returns the prefix-relative topic applied angles are
// reported on.
func (t *Telemetry) AngleTopic() string {
	return t.device + "/angle"
}

// Run implements framework.Runnable. Connection failures are not
// fatal; the client keeps reconnecting in the background and the
// device stays commandable over its other channels.
func (t *Telemetry) Run(ctx context.Context) error {
	t.Queue.Sub(t.device+"/set", t.handleSet)
	t.Queue.Connect()
	<-ctx.Done()
	t.Queue.PubWith(t.device+"/meta", nil, 1, true)
	t.Queue.Close()
	return ctx.Err()
}

func (t *Telemetry) onConnected() {
	t.Queue.PubWith(t.device+"/meta", t.metaJSON, 1, true)
}

func (t *Telemetry) handleSet(topic string, payload []byte) {
	a, err := console.ParseCommand(string(payload))
	if err != nil {
		glog.Warningf("telemetry: bad command %q: %v", payload, err)
		return
	}
	if t.Publisher != nil {
		t.Publisher.Put(a)
	}
}
