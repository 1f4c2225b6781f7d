package config

// Overrides holds command-line settings that take priority over the config
// file. Nil pointers leave the loaded value untouched.
type Overrides struct {
	ConfigPath string
	Debug      bool
	LogFile    string
	Encoding   string

	NoVertexArray bool
	NoIndex       bool
	NoFlipV       bool
	FlipX         bool
	FlipY         bool
	FlipZ         bool
	Color         *bool
	HexColor      *bool
	Strict        *bool

	Format string
	Pretty *bool
}

// applyOverrides applies CLI overrides to the config.
func applyOverrides(cfg *Config, o Overrides) {
	if o.Debug {
		cfg.Logging.Level = "debug"
	}
	if o.LogFile != "" {
		cfg.Logging.LogFile = o.LogFile
	}
	if o.Encoding != "" {
		cfg.Input.Encoding = o.Encoding
	}

	if o.NoVertexArray {
		cfg.Build.VertexArray = false
	}
	if o.NoIndex {
		cfg.Build.Indexed = false
	}
	if o.NoFlipV {
		cfg.Build.FlipV = false
	}
	if len(cfg.Build.AxisScale) == 3 {
		axis := []float64{cfg.Build.AxisScale[0], cfg.Build.AxisScale[1], cfg.Build.AxisScale[2]}
		for i, flip := range []bool{o.FlipX, o.FlipY, o.FlipZ} {
			if flip {
				axis[i] = -axis[i]
			}
		}
		cfg.Build.AxisScale = axis
	}
	if o.Color != nil {
		cfg.Build.Color = *o.Color
	}
	if o.HexColor != nil {
		cfg.Build.HexColor = *o.HexColor
	}
	if o.Strict != nil {
		cfg.Build.StrictMaterials = *o.Strict
	}

	if o.Format != "" {
		cfg.Output.Format = o.Format
	}
	if o.Pretty != nil {
		cfg.Output.Pretty = *o.Pretty
	}
}
