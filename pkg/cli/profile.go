package cli

import (
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/devicelab-dev/driver-factory/pkg/logger"
)

var profileCommand = &cli.Command{
	Name:  "profile",
	Usage: "Create the downloads directory and print the Firefox download profile",
	Action: func(c *cli.Context) error {
		r, err := newResolver(c)
		if err != nil {
			return err
		}

		prof, err := r.FirefoxProfile()
		if err != nil {
			logger.Warn("profile points at a missing directory: %v", err)
		}

		enc := yaml.NewEncoder(c.App.Writer)
		enc.SetIndent(2)
		if err := enc.Encode(prof.Preferences()); err != nil {
			return err
		}
		return enc.Close()
	},
}
