package main

//go-build: CGO_ENABLED=0

import (
	"context"
	"errors"
	"flag"
	"io"
	"log"

	"github.com/linkbots/servolink/pkg/command"
	"github.com/linkbots/servolink/pkg/config"
	"github.com/linkbots/servolink/pkg/console"
	"github.com/linkbots/servolink/pkg/framework"
	"github.com/linkbots/servolink/pkg/httpd"
	"github.com/linkbots/servolink/pkg/servo"
	"github.com/linkbots/servolink/pkg/sim"
	"github.com/linkbots/servolink/pkg/telemetry"
	"github.com/linkbots/servolink/pkg/wifi"
)

var simulated bool

func init() {
	config.SetupFlags()
	flag.BoolVar(&simulated, "sim", false, "Run with simulated hardware.")
}

func main() {
	flag.Parse()

	conf, err := config.Load(config.Path())
	if err != nil {
		log.Fatalln(err)
	}
	identity := config.NewIdentity(conf.MQTT.Device)

	var (
		drv   wifi.Driver
		stack wifi.Stack
		pwm   servo.PWM
		port  io.ReadWriter
	)
	if simulated {
		drv = sim.NewRadio()
		stack = sim.NewStack("127.0.0.1", 0)
		pwm = sim.NewPWM()
		port = sim.NewTTY()
	} else {
		drv = wifi.HostedDriver{}
		stack = wifi.HostedStack{Interface: conf.Wifi.Interface}
		pwm = &servo.SysfsPWM{Chip: conf.Servo.Chip, Channel: conf.Servo.Channel}
		if conf.Serial.Device != "" {
			serialConf := console.Config{Device: conf.Serial.Device, Baud: conf.Serial.Baud}
			serialPort, err := serialConf.Open()
			if err != nil {
				log.Fatalln(err)
			}
			port = serialPort
		}
	}
	if conf.Servo.Disabled {
		pwm = servo.NopPWM{}
	}

	ctl := servo.NewController(pwm, conf.Mapper())
	ctl.Initial = servo.Angle(conf.Servo.Initial)
	if err := ctl.Setup(); err != nil {
		log.Fatalln(err)
	}

	machine := wifi.NewMachine(drv, conf.Credentials())
	runner := framework.NewRunner().HandleSignals()
	runner.Go(machine)

	addr, err := wifi.NewSequencer(machine, stack).Wait(runner.Context)
	if errors.Is(err, context.Canceled) {
		runner.Wait()
		return
	}
	if err != nil {
		log.Fatalln(err)
	}

	httpSlot := command.NewSlot()
	serialSlot := command.NewSlot()
	slots := []*command.Slot{httpSlot, serialSlot}

	var actuator command.Actuator = ctl
	if conf.MQTT.BrokerURL != "" {
		mqttSlot := command.NewSlot()
		slots = append(slots, mqttSlot)
		tel, err := telemetry.New(conf.MQTT.BrokerURL, telemetry.Announcement{
			Device:  identity.Device,
			Session: identity.Session,
			Addr:    addr,
		}, mqttSlot)
		if err != nil {
			log.Fatalln(err)
		}
		actuator = &telemetry.Reporter{Actuator: ctl, Queue: tel.Queue, Topic: tel.AngleTopic()}
		runner.Go(tel)
	}

	srv := httpd.NewServer(httpd.NewRouter(httpSlot, httpd.Info{Device: identity.Device, Session: identity.Session}))
	srv.Addr = conf.HTTP.Addr
	runner.Go(command.NewBus(actuator, slots...), srv)
	if port != nil {
		runner.Go(console.New(port, serialSlot))
	}

	if err := runner.Wait(); err != nil {
		log.Fatalln(err)
	}
}
