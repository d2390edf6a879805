package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/linkbots/servolink/pkg/telemetry"
)

//go-build: CGO_ENABLED=0

var (
	mqttURL = "mqtt://localhost:1883/servolink/"
)

func init() {
	if val := os.Getenv("SERVOLINK_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := telemetry.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}

	q.Sub("#", telemetry.Handler(func(topic string, payload []byte) {
		device := topic
		if i := strings.LastIndex(topic, "/"); i >= 0 {
			device = topic[:i]
		}
		switch {
		case strings.HasSuffix(topic, "/meta"):
			if len(payload) == 0 {
				log.Printf("%s: offline", device)
				return
			}
			var ann telemetry.Announcement
			if err := json.Unmarshal(payload, &ann); err != nil {
				log.Printf("%s: bad announcement: %v", topic, err)
				return
			}
			if ann.Addr != "" {
				log.Printf("%s: online at %s (session %s)", device, ann.Addr, ann.Session)
				return
			}
			log.Printf("%s: online (session %s)", device, ann.Session)
		case strings.HasSuffix(topic, "/angle"):
			log.Printf("%s: angle %s", device, string(payload))
		case strings.HasSuffix(topic, "/set"):
			log.Printf("%s: command %q", device, string(payload))
		default:
			log.Printf("%s: %s", topic, string(payload))
		}
	}))
	q.Connect()
	<-(chan struct{})(nil)
}
