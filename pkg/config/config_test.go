package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linkbots/servolink/pkg/servo"
)

func TestLoadDefaults(t *testing.T) {
	conf, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":80", conf.HTTP.Addr)
	require.Equal(t, 115200, conf.Serial.Baud)
	require.Equal(t, uint8(90), conf.Servo.Initial)
	require.Equal(t, "raw", conf.Servo.Domain)
	require.Empty(t, conf.Wifi.SSID)
	require.Empty(t, conf.MQTT.BrokerURL)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servolink.yaml")
	doc := `
wifi:
  ssid: lab
  passphrase: secret
http:
  addr: ":8080"
serial:
  device: /dev/ttyUSB0
  baud: 9600
servo:
  domain: percent
  initial: 45
  disabled: true
mqtt:
  broker_url: mqtt://broker.local/devices
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	conf, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "lab", conf.Wifi.SSID)
	require.Equal(t, ":8080", conf.HTTP.Addr)
	require.Equal(t, "/dev/ttyUSB0", conf.Serial.Device)
	require.Equal(t, 9600, conf.Serial.Baud)
	require.Equal(t, uint8(45), conf.Servo.Initial)
	require.True(t, conf.Servo.Disabled)
	require.Equal(t, servo.DomainPercent, conf.Mapper().Domain)
	require.Equal(t, "mqtt://broker.local/devices", conf.MQTT.BrokerURL)

	creds := conf.Credentials()
	require.Equal(t, "lab", creds.SSID)
	require.Equal(t, "secret", creds.Passphrase)
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servolink.yaml")
	require.NoError(t, os.WriteFile(path, []byte("wifi:\n  ssid: filessid\n"), 0644))
	t.Setenv("SERVOLINK_WIFI_SSID", "envssid")
	t.Setenv("SERVOLINK_SERVO_DOMAIN", "percent")
	conf, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "envssid", conf.Wifi.SSID)
	require.Equal(t, "percent", conf.Servo.Domain)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	require.NoError(t, NewConfig().Validate())

	conf := NewConfig()
	conf.Servo.Domain = "nibbles"
	require.Error(t, conf.Validate())

	conf = NewConfig()
	conf.Servo.Initial = 200
	require.Error(t, conf.Validate())

	conf = NewConfig()
	conf.Serial.Baud = 0
	require.Error(t, conf.Validate())

	conf = NewConfig()
	conf.HTTP.Addr = ""
	require.Error(t, conf.Validate())
}

func TestMapperResolution(t *testing.T) {
	conf := NewConfig()
	require.Equal(t, uint32(servo.DefaultResolution), conf.Mapper().FullScale())

	conf.Servo.Domain = "percent"
	require.Equal(t, uint32(100), conf.Mapper().FullScale())
}

func TestNewIdentity(t *testing.T) {
	id := NewIdentity("bench")
	require.Equal(t, "bench", id.Device)
	require.NotEmpty(t, id.Session)

	id2 := NewIdentity("bench")
	require.NotEqual(t, id.Session, id2.Session)

	auto := NewIdentity("")
	require.NotEmpty(t, auto.Device)
}
