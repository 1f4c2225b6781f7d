package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/Faultbox/objvarray/internal/assets"
	"github.com/Faultbox/objvarray/internal/config"
	"github.com/Faultbox/objvarray/internal/export"
	"github.com/Faultbox/objvarray/internal/logger"
	"github.com/Faultbox/objvarray/pkg/varray"
)

var objFile = regexp.MustCompile(`(?i)\.obj$`)

// globalOverrides reads the application-level flags.
func globalOverrides(ctx *cli.Context) config.Overrides {
	return config.Overrides{
		ConfigPath: ctx.GlobalString("config"),
		Debug:      ctx.GlobalBool("debug"),
		LogFile:    ctx.GlobalString("log-file"),
		Encoding:   ctx.GlobalString("encoding"),
	}
}

// setup loads the config and initializes logging.
func setup(o config.Overrides) (*config.Config, error) {
	cfg, err := config.Load(o)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return cfg, nil
}

// modelArgs returns the positional arguments, all of which must name .obj
// files.
func modelArgs(ctx *cli.Context, limit int) ([]string, error) {
	args := []string(ctx.Args())
	if len(args) == 0 {
		return nil, cli.NewExitError("no .obj file given\nusage: "+ctx.App.Name+" "+ctx.Command.Name+" "+ctx.Command.ArgsUsage, 1)
	}
	if limit > 0 && len(args) > limit {
		return nil, cli.NewExitError(fmt.Sprintf("expected %d .obj file, got %d", limit, len(args)), 1)
	}
	for _, arg := range args {
		if !objFile.MatchString(arg) {
			return nil, cli.NewExitError(fmt.Sprintf("not a .obj file: %s", arg), 1)
		}
	}
	return args, nil
}

func boolFlag(ctx *cli.Context, name string) *bool {
	if !ctx.IsSet(name) {
		return nil
	}
	v := ctx.Bool(name)
	return &v
}

func convertAction(ctx *cli.Context) error {
	paths, err := modelArgs(ctx, 0)
	if err != nil {
		return err
	}

	o := globalOverrides(ctx)
	o.NoVertexArray = ctx.Bool("no-varray")
	o.NoIndex = ctx.Bool("no-index")
	o.NoFlipV = ctx.Bool("no-vflip")
	o.FlipX = ctx.Bool("flip-x")
	o.FlipY = ctx.Bool("flip-y")
	o.FlipZ = ctx.Bool("flip-z")
	o.Color = boolFlag(ctx, "color")
	o.HexColor = boolFlag(ctx, "hex-color")
	o.Strict = boolFlag(ctx, "strict")
	o.Pretty = boolFlag(ctx, "pretty")
	if ctx.Bool("json") {
		o.Format = config.FormatJSON
	}
	if ctx.Bool("yaml") {
		o.Format = config.FormatYAML
	}

	cfg, err := setup(o)
	if err != nil {
		return err
	}

	loader, err := assets.NewLoader(cfg.Input.Encoding)
	if err != nil {
		return err
	}

	for _, path := range paths {
		model, err := loader.Load(path)
		if err != nil {
			return err
		}
		if !cfg.Build.VertexArray {
			logger.Info("vertex array derivation disabled", zap.String("obj", path))
			continue
		}
		if err := convert(ctx, cfg, model); err != nil {
			return fmt.Errorf("converting %s: %w", path, err)
		}
	}

	hits, misses := loader.Cache().Stats()
	logger.Debug("material cache", zap.Int("hits", hits), zap.Int("misses", misses))
	return nil
}

func convert(ctx *cli.Context, cfg *config.Config, model *assets.Model) error {
	b, err := varray.NewBuilder(model.Geometry, model.Materials, cfg.BuildOptions())
	if err != nil {
		return err
	}
	if unknown := b.UnknownMaterials(); len(unknown) > 0 {
		logger.Warn("faces use undefined materials, diffuse defaults to black",
			zap.String("obj", model.Path),
			zap.Strings("materials", unknown))
	}

	data := b.Build(false)
	logger.Debug("built vertex arrays",
		zap.String("obj", model.Path),
		zap.Bool("indexed", b.UseIndex()),
		zap.Int("vertices", data.Len()),
		zap.Int("faces", len(data.Face)))

	w := ctx.App.Writer
	switch cfg.Output.Format {
	case config.FormatJSON:
		return export.WriteJSON(w, export.NewRecord(b), cfg.Output.Pretty)
	case config.FormatYAML:
		return export.WriteYAML(w, export.NewRecord(b))
	default:
		return export.WriteRaw(w, b)
	}
}

func loadModel(ctx *cli.Context) (*assets.Model, error) {
	paths, err := modelArgs(ctx, 1)
	if err != nil {
		return nil, err
	}
	cfg, err := setup(globalOverrides(ctx))
	if err != nil {
		return nil, err
	}
	loader, err := assets.NewLoader(cfg.Input.Encoding)
	if err != nil {
		return nil, err
	}
	return loader.Load(paths[0])
}

func infoAction(ctx *cli.Context) error {
	model, err := loadModel(ctx)
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	if model.MaterialsMissing {
		fmt.Fprintf(w, "# material library %s not found\n", model.MaterialPath)
	}
	if err := export.WriteInfo(w, model.Geometry); err != nil {
		return err
	}
	if err := export.WriteFaces(w, model.Geometry); err != nil {
		return err
	}
	if err := export.WriteMaterials(w, model.Materials); err != nil {
		return err
	}
	return export.WriteTextures(w, model.Materials)
}

func texturesAction(ctx *cli.Context) error {
	model, err := loadModel(ctx)
	if err != nil {
		return err
	}
	for _, tex := range model.Textures() {
		fmt.Fprintln(ctx.App.Writer, tex)
	}
	return nil
}

func initConfigAction(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.yaml")
	}

	if _, err := os.Stat(path); err == nil && !ctx.Bool("force") {
		return cli.NewExitError(fmt.Sprintf("%s already exists (use --force to overwrite)", path), 1)
	}

	if err := config.Default().SaveTo(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintf(ctx.App.Writer, "wrote %s\n", path)
	return nil
}
