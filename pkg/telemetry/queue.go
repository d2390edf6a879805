// Package telemetry connects the device to an MQTT broker: it keeps a
// retained presence document under <device>/meta, accepts angle
// commands on <device>/set using the serial command grammar, and
// reports applied angles on <device>/angle.
package telemetry

import (
	"net/url"
	"strings"
	"sync"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
)

// Handler is the callback when a message is received.
type Handler func(topic string, payload []byte)

// ConnectHandler is invoked on (re)connect events.
type ConnectHandler func(*Queue)

// Queue wraps the MQTT client. TopicPrefix is applied to every publish
// and subscribe, so all topic arguments are prefix-relative.
type Queue struct {
	Client      paho.Client
	TopicPrefix string
	OnConnect   ConnectHandler

	subsLock     sync.RWMutex
	subs         map[string][]Handler
	wildcardSubs map[string][]Handler
}

// MatchTopic matches topic with pattern.
func MatchTopic(topic, pattern string) bool {
	tokensT, tokensP := strings.Split(topic, "/"), strings.Split(pattern, "/")
	if len(tokensP) > len(tokensT) {
		return false
	}
	for i, token := range tokensP {
		if token == "+" {
			continue
		}
		if token == "#" && i+1 == len(tokensP) {
			break
		}
		if token != tokensT[i] {
			return false
		}
	}
	return true
}

// ClientOptionsFromURL creates ClientOptions from a broker URL of the
// form scheme://[user[:pass]@]host[:port][/topic-prefix][?client-id=x].
// An empty or "mqtt" scheme selects plain TCP.
func ClientOptionsFromURL(serverURL string) (*paho.ClientOptions, string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, "", err
	}
	var server string
	if u.Scheme == "" || u.Scheme == "mqtt" {
		server = "tcp"
	} else {
		server = u.Scheme
	}
	server += "://" + u.Host

	topicPrefix := u.Path
	if strings.HasPrefix(topicPrefix, "/") {
		topicPrefix = topicPrefix[1:]
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(server).
		SetAutoReconnect(true).
		SetCleanSession(true)
	if u.User != nil {
		opts.SetUsername(u.User.Username())
		if pwd, ok := u.User.Password(); ok {
			opts.SetPassword(pwd)
		}
	}

	if clientID := u.Query().Get("client-id"); clientID != "" {
		opts.SetClientID(clientID)
	}

	return opts, topicPrefix, nil
}

// NewQueue creates Queue.
func NewQueue(options *paho.ClientOptions, topicPrefix string) *Queue {
	q := &Queue{TopicPrefix: topicPrefix}
	options.SetOnConnectHandler(q.onConnectHandler)
	options.SetConnectionLostHandler(q.connectionLostHandler)
	q.Client = paho.NewClient(options)
	return q
}

// NewQueueFromURL creates Queue from URL.
func NewQueueFromURL(brokerURL string) (*Queue, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return NewQueue(opts, topicPrefix), nil
}

// Connect connects the client.
func (q *Queue) Connect() paho.Token {
	return q.Client.Connect()
}

// Close implements io.Closer. The quiesce window lets a final retained
// publish flush before the connection drops.
func (q *Queue) Close() error {
	q.Client.Disconnect(250)
	return nil
}

// Sub subscribes a handler to a topic; "+" and a trailing "#" match
// multiple topics. Subscriptions live for the queue's lifetime and are
// replayed by Resubscribe after every reconnect, so subscribing before
// Connect is fine.
func (q *Queue) Sub(topic string, handler Handler) paho.Token {
	wildcard := strings.Contains(topic, "+") || strings.HasSuffix(topic, "#")
	q.subsLock.Lock()
	if q.subs == nil {
		q.subs = make(map[string][]Handler)
	}
	if q.wildcardSubs == nil {
		q.wildcardSubs = make(map[string][]Handler)
	}
	subs := q.subs
	if wildcard {
		subs = q.wildcardSubs
	}
	first := len(subs[topic]) == 0
	subs[topic] = append(subs[topic], handler)
	q.subsLock.Unlock()

	if !first {
		return &paho.DummyToken{}
	}
	if glog.V(2) {
		glog.Infof("SUB %q", q.TopicPrefix+topic)
	}
	return q.Client.Subscribe(q.TopicPrefix+topic, 0, q.dispatch)
}

// Pub publishes to a topic.
func (q *Queue) Pub(topic string, payload []byte) paho.Token {
	return q.PubWith(topic, payload, 0, false)
}

// PubWith publishes with QoS and retain settings.
func (q *Queue) PubWith(topic string, payload []byte, qos byte, retain bool) paho.Token {
	return q.Client.Publish(q.TopicPrefix+topic, qos, retain, payload)
}

// Resubscribe subscribes all known topics again.
func (q *Queue) Resubscribe() paho.Token {
	filters := make(map[string]byte)
	q.subsLock.RLock()
	for topic := range q.subs {
		filters[q.TopicPrefix+topic] = 0
	}
	for topic := range q.wildcardSubs {
		filters[q.TopicPrefix+topic] = 0
	}
	q.subsLock.RUnlock()
	if len(filters) > 0 {
		if glog.V(2) {
			for key := range filters {
				glog.Infof("SUB %q", key)
			}
		}
		return q.Client.SubscribeMultiple(filters, q.dispatch)
	}
	return &paho.DummyToken{}
}

func (q *Queue) onConnectHandler(paho.Client) {
	glog.Info("telemetry: connected")
	q.Resubscribe()
	if h := q.OnConnect; h != nil {
		h(q)
	}
}

func (q *Queue) connectionLostHandler(c paho.Client, err error) {
	glog.Warningf("telemetry: connection lost: %v", err)
}

func (q *Queue) dispatch(c paho.Client, msg paho.Message) {
	topic := msg.Topic()
	if !strings.HasPrefix(topic, q.TopicPrefix) {
		return
	}
	glog.V(2).Infof("RCV %q", topic)
	topic = topic[len(q.TopicPrefix):]
	q.subsLock.RLock()
	handlers := append([]Handler(nil), q.subs[topic]...)
	for pattern, subs := range q.wildcardSubs {
		if MatchTopic(topic, pattern) {
			handlers = append(handlers, subs...)
		}
	}
	q.subsLock.RUnlock()
	payload := msg.Payload()
	for _, h := range handlers {
		h(topic, payload)
	}
}
