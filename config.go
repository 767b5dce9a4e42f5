package twobody

import (
	"os"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _twobodyconfig{}
)

// defaultTolerance is the square of the unit roundoff of float64.
const defaultTolerance = 2.220446049250313e-16

// _twobodyconfig is a "hidden" struct, just use `twobodyConfig`
type _twobodyconfig struct {
	tolerance float64 // compared against squared normalized quantities
	outputDir string
}

// twobodyConfig returns the twobody configuration.
// Configuration is read once from $TWOBODY_CONFIG/conf.toml when the
// environment variable is set, and falls back to built-in defaults otherwise.
func twobodyConfig() _twobodyconfig {
	if cfgLoaded {
		return config
	}
	config = _twobodyconfig{tolerance: defaultTolerance, outputDir: "."}
	confPath := os.Getenv("TWOBODY_CONFIG")
	if confPath != "" {
		viper.SetConfigName("conf")
		viper.AddConfigPath(confPath)
		if err := viper.ReadInConfig(); err == nil {
			if tol := viper.GetFloat64("numerics.tolerance"); tol > 0 {
				config.tolerance = tol
			}
			if dir := viper.GetString("general.output_path"); dir != "" {
				config.outputDir = dir
			}
		}
	}
	cfgLoaded = true
	return config
}
