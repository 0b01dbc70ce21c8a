package cli

import (
	"fmt"

	"github.com/tebeka/selenium"
	"github.com/urfave/cli/v2"

	"github.com/devicelab-dev/driver-factory/pkg/factory"
)

var webCommand = &cli.Command{
	Name:  "web",
	Usage: "Start a desktop browser session",
	Description: `Start a browser session locally or on the cloud grid. Unset flags fall
back to the defaults section of the config file.

Examples:
  driverfactory web --cloud n --browser ff
  driverfactory web --cloud n --firefox-profile
  driverfactory web --cloud y --browser chrome --browser-version 120 --os Windows --os-version 11`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "cloud",
			Usage: "y = cloud grid, n = local machine",
		},
		&cli.StringFlag{
			Name:    "browser",
			Aliases: []string{"b"},
			Usage:   "Browser (ff, firefox, ie, chrome, opera, safari)",
		},
		&cli.StringFlag{
			Name:  "browser-version",
			Usage: "Browser version (cloud only)",
		},
		&cli.StringFlag{
			Name:  "os",
			Usage: "Operating system (cloud only)",
		},
		&cli.StringFlag{
			Name:  "os-version",
			Usage: "Operating system version (cloud only)",
		},
		&cli.BoolFlag{
			Name:  "firefox-profile",
			Usage: "Start local Firefox with the download profile",
		},
		&cli.BoolFlag{
			Name:  "keep",
			Usage: "Leave the session open",
		},
	},
	Action: runWeb,
}

func runWeb(c *cli.Context) error {
	r, err := newResolver(c)
	if err != nil {
		return err
	}

	var wd selenium.WebDriver
	if c.Bool("firefox-profile") {
		wd, err = r.FirefoxDriver()
	} else {
		wd, err = r.Resolve(factory.DriverRequest{
			LocationMode:   stringOr(c, "cloud", r.Location),
			OSName:         stringOr(c, "os", r.OSName),
			OSVersion:      stringOr(c, "os-version", r.OSVersion),
			Browser:        stringOr(c, "browser", r.Browser),
			BrowserVersion: stringOr(c, "browser-version", r.BrowserVersion),
		})
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "session %s\n", wd.SessionID())
	if c.Bool("keep") {
		return nil
	}
	return wd.Quit()
}

// stringOr returns the flag value, or def when the flag was not given.
func stringOr(c *cli.Context, name, def string) string {
	if c.IsSet(name) {
		return c.String(name)
	}
	return def
}
