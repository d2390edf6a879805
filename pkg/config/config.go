// Package config loads daemon configuration. Precedence, lowest to
// highest: built-in defaults, the YAML file, environment variables.
package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v6"
	"gopkg.in/yaml.v3"

	"github.com/linkbots/servolink/pkg/console"
	"github.com/linkbots/servolink/pkg/httpd"
	"github.com/linkbots/servolink/pkg/servo"
	"github.com/linkbots/servolink/pkg/wifi"
)

// Config is the full daemon configuration.
type Config struct {
	Wifi   WifiConfig   `yaml:"wifi"`
	HTTP   HTTPConfig   `yaml:"http"`
	Serial SerialConfig `yaml:"serial"`
	Servo  ServoConfig  `yaml:"servo"`
	MQTT   MQTTConfig   `yaml:"mqtt"`
}

// WifiConfig selects the access point. An empty SSID means the host
// owns the link and the daemon only waits for an address.
type WifiConfig struct {
	SSID       string `yaml:"ssid" env:"SERVOLINK_WIFI_SSID"`
	Passphrase string `yaml:"passphrase" env:"SERVOLINK_WIFI_PASS"`
	Interface  string `yaml:"interface" env:"SERVOLINK_WIFI_IFACE"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr" env:"SERVOLINK_HTTP_ADDR"`
}

// SerialConfig selects the command console port. An empty device means
// the process terminal.
type SerialConfig struct {
	Device string `yaml:"device" env:"SERVOLINK_SERIAL_DEVICE"`
	Baud   int    `yaml:"baud" env:"SERVOLINK_SERIAL_BAUD"`
}

// ServoConfig selects the PWM output and the duty mapping. Domain is
// "raw" or "percent"; see the servo package for the resolution
// tradeoff. Disabled keeps the full command path alive but discards
// duty writes, for link-only deployments without a servo attached.
type ServoConfig struct {
	Domain     string `yaml:"domain" env:"SERVOLINK_SERVO_DOMAIN"`
	Resolution uint32 `yaml:"resolution" env:"SERVOLINK_SERVO_RESOLUTION"`
	Initial    uint8  `yaml:"initial" env:"SERVOLINK_SERVO_INITIAL"`
	Chip       int    `yaml:"chip" env:"SERVOLINK_SERVO_PWM_CHIP"`
	Channel    int    `yaml:"channel" env:"SERVOLINK_SERVO_PWM_CHANNEL"`
	Disabled   bool   `yaml:"disabled" env:"SERVOLINK_SERVO_DISABLED"`
}

// MQTTConfig enables the broker link when BrokerURL is set.
type MQTTConfig struct {
	BrokerURL string `yaml:"broker_url" env:"SERVOLINK_MQTT_URL"`
	Device    string `yaml:"device" env:"SERVOLINK_MQTT_DEVICE"`
}

var defaultConfig = Config{
	HTTP:   HTTPConfig{Addr: httpd.DefaultAddr},
	Serial: SerialConfig{Baud: console.DefaultBaud},
	Servo:  ServoConfig{Domain: "raw", Initial: uint8(servo.DefaultInitialAngle)},
}

var configPath string

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&configPath, "config", os.Getenv("SERVOLINK_CONFIG"), "Path to YAML config file")
}

// Path gets the config file path from flags or environment.
func Path() string {
	return configPath
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Load builds the effective configuration. An empty path skips the
// file.
func Load(path string) (*Config, error) {
	conf := NewConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, conf); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := env.Parse(conf); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate checks configuration correctness. It does not mutate the
// configuration.
func (c *Config) Validate() error {
	if _, err := servo.ParseDutyDomain(c.Servo.Domain); err != nil {
		return err
	}
	if c.Servo.Initial > uint8(servo.AngleMax) {
		return fmt.Errorf("servo: initial angle %d out of range 0-%d", c.Servo.Initial, servo.AngleMax)
	}
	if c.Serial.Baud <= 0 {
		return fmt.Errorf("serial: invalid baud %d", c.Serial.Baud)
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http: addr must not be empty")
	}
	return nil
}

// Credentials returns the access point credentials.
func (c *Config) Credentials() wifi.Credentials {
	return wifi.Credentials{SSID: c.Wifi.SSID, Passphrase: c.Wifi.Passphrase}
}

// Mapper builds the duty mapper selected by the servo section. Call
// Validate first; an unknown domain falls back to raw.
func (c *Config) Mapper() servo.Mapper {
	domain, _ := servo.ParseDutyDomain(c.Servo.Domain)
	return servo.Mapper{Domain: domain, Resolution: c.Servo.Resolution}
}
