// Package servo registers the servo device commands with the shell.
package servo

import (
	"encoding/json"
	"fmt"

	"github.com/abiosoft/ishell"

	"github.com/linkbots/servolink/pkg/cli/sh"
	servopkg "github.com/linkbots/servolink/pkg/servo"
)

var (
	// DeviceCmd shows the device descriptor.
	DeviceCmd = ishell.Cmd{
		Name:    "device",
		Aliases: []string{"info"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			desc, err := s.Client.Describe()
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				out, err := json.Marshal(desc)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			c.Println(desc.Message)
			if desc.Device != "" {
				c.Printf("device:  %s\n", desc.Device)
			}
			if desc.Session != "" {
				c.Printf("session: %s\n", desc.Session)
			}
			for _, ep := range desc.Endpoints {
				c.Printf("  %s\n", ep)
			}
		}),
	}

	// HealthCmd checks the device health endpoint.
	HealthCmd = ishell.Cmd{
		Name:    "health",
		Aliases: []string{"h"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			s := sh.ShellFrom(c)
			healthy, err := s.Client.Health()
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				c.Printf("{\"healthy\": %v}\n", healthy)
				return
			}
			if healthy {
				c.Println("healthy")
			} else {
				c.Println("unhealthy")
			}
		}),
	}

	// AngleCmd commands the servo position.
	AngleCmd = ishell.Cmd{
		Name:    "angle",
		Aliases: []string{"a", "servo"},
		Help:    "DEGREES(0-180)",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("DEGREES required"))
				return
			}
			angle, err := servopkg.ParseAngle(c.Args[0])
			if err != nil {
				c.Err(fmt.Errorf("invalid DEGREES: %v", err))
				return
			}
			s := sh.ShellFrom(c)
			applied, err := s.Client.SetAngle(angle)
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				c.Printf("{\"angle\": %d}\n", applied)
				return
			}
			c.Printf("servo at %d degrees\n", applied)
		}),
	}
)

func init() {
	sh.AddCmds(
		&DeviceCmd,
		&HealthCmd,
		&AngleCmd,
	)
}
