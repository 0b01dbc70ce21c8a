package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var uploadCommand = &cli.Command{
	Name:  "upload",
	Usage: "Upload the app artifact to cloud storage",
	Description: `Upload <home>/../app/<artifact> to the cloud device grid's storage,
overwriting any previous upload of the same name.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "artifact",
			Usage: "Artifact file name (default from config)",
		},
	},
	Action: runUpload,
}

func runUpload(c *cli.Context) error {
	r, err := newResolver(c)
	if err != nil {
		return err
	}
	if name := c.String("artifact"); name != "" {
		r.Config().Mobile.Artifact = name
	}

	res, err := r.UploadArtifact()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "uploaded %s (%d bytes", res.Name, res.Size)
	if res.MD5 != "" {
		fmt.Fprintf(c.App.Writer, ", md5 %s", res.MD5)
	}
	fmt.Fprintln(c.App.Writer, ")")
	return nil
}
