// objvarray converts Wavefront OBJ models into renderer-ready vertex arrays.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/Faultbox/objvarray/internal/logger"
)

func main() {
	app := newApp()
	err := app.Run(os.Args)
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "objvarray"
	app.Usage = "derive vertex arrays from wavefront obj models"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "load settings from `FILE` instead of the default locations",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "enable debug logging",
		},
		cli.StringFlag{
			Name:  "log-file",
			Usage: "also write logs to `FILE` (rotated)",
		},
		cli.StringFlag{
			Name:  "encoding",
			Usage: "decode sources as `NAME` (utf-8, euc-kr, shift-jis, iso-8859-1)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "convert",
			Usage: "print the vertex arrays of one or more models",
			Description: `
Parse each model and its material library, derive vertex arrays and print them
as a raw listing, JSON or YAML. Indexed mode deduplicates identical corners into
a shared vertex buffer plus a face index list; --no-index emits one entry per
face corner instead.`,
			ArgsUsage: "model1.obj model2.obj ...",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "no-varray", Usage: "parse only, do not derive vertex arrays"},
				cli.BoolFlag{Name: "no-index", Usage: "emit expanded arrays without an index buffer"},
				cli.BoolFlag{Name: "json", Usage: "use json format"},
				cli.BoolFlag{Name: "yaml", Usage: "use yaml format"},
				cli.BoolFlag{Name: "pretty", Usage: "indent json output"},
				cli.BoolFlag{Name: "no-vflip", Usage: "keep texture v as stored"},
				cli.BoolFlag{Name: "flip-x", Usage: "negate x of positions and normals"},
				cli.BoolFlag{Name: "flip-y", Usage: "negate y of positions and normals"},
				cli.BoolFlag{Name: "flip-z", Usage: "negate z of positions and normals"},
				cli.BoolFlag{Name: "color", Usage: "emit the diffuse color of each vertex"},
				cli.BoolFlag{Name: "hex-color", Usage: "emit colors packed as 0xAARRGGBB (implies --color)"},
				cli.BoolFlag{Name: "strict", Usage: "fail when a face uses a material the library does not define"},
			},
			Action: convertAction,
		},
		{
			Name:      "info",
			Usage:     "dump counts, faces, materials and textures of a model",
			ArgsUsage: "model.obj",
			Action:    infoAction,
		},
		{
			Name:      "textures",
			Usage:     "list texture images referenced by a model's materials",
			ArgsUsage: "model.obj",
			Action:    texturesAction,
		},
		{
			Name:      "init-config",
			Usage:     "write a default config file",
			ArgsUsage: "[path]",
			Flags: []cli.Flag{
				cli.BoolFlag{Name: "force", Usage: "overwrite an existing file"},
			},
			Action: initConfigAction,
		},
	}
	return app
}
