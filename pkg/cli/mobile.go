package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/driver-factory/pkg/core"
	"github.com/devicelab-dev/driver-factory/pkg/driver"
	"github.com/devicelab-dev/driver-factory/pkg/factory"
)

var mobileCommand = &cli.Command{
	Name:  "mobile",
	Usage: "Start a mobile session on a device, emulator or the cloud device grid",
	Description: `Start an Appium session. Choose the target with --target, or with the
three y/n flags --cloud, --real-device and --emulator (exactly one must be y).
Cloud sessions upload the app artifact first.

Examples:
  driverfactory mobile --target device --os Android --os-version 14 --device-name "Pixel 8" \
      --app-package com.example.app --app-activity .MainActivity
  driverfactory mobile --cloud y --real-device n --emulator n --device-name "Samsung Galaxy S23"`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "target",
			Usage: "Target: device, emulator or cloud",
		},
		&cli.StringFlag{Name: "os", Usage: "Platform name (osName capability)"},
		&cli.StringFlag{Name: "os-version", Usage: "Platform version"},
		&cli.StringFlag{Name: "device-name", Usage: "Device name"},
		&cli.StringFlag{Name: "app-package", Usage: "Application package"},
		&cli.StringFlag{Name: "app-activity", Usage: "Launch activity"},
		&cli.StringFlag{Name: "cloud", Value: "n", Usage: "y to run on the cloud device grid"},
		&cli.StringFlag{Name: "real-device", Value: "n", Usage: "y to run on a connected device"},
		&cli.StringFlag{Name: "emulator", Value: "n", Usage: "y to run on an emulator"},
		&cli.BoolFlag{Name: "keep", Usage: "Leave the session open"},
	},
	Action: runMobile,
}

func runMobile(c *cli.Context) error {
	r, err := newResolver(c)
	if err != nil {
		return err
	}

	var m driver.Mobile
	if name := c.String("target"); name != "" {
		target, err := core.ParseMobileTarget(name)
		if err != nil {
			return err
		}
		m, err = r.RunMobile(factory.MobileRequest{
			OSName:      c.String("os"),
			OSVersion:   c.String("os-version"),
			DeviceName:  c.String("device-name"),
			AppPackage:  c.String("app-package"),
			AppActivity: c.String("app-activity"),
			Target:      target,
		})
		if err != nil {
			return err
		}
	} else {
		m, err = r.RunMobileFlags(
			c.String("os"), c.String("os-version"), c.String("device-name"),
			c.String("app-package"), c.String("app-activity"),
			c.String("cloud"), c.String("real-device"), c.String("emulator"),
		)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(c.App.Writer, "session %s (%s)\n", m.SessionID(), m.Platform())
	if c.Bool("keep") {
		return nil
	}
	return m.Quit()
}
