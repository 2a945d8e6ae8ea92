// Command featurecheck analyzes source snippets for missing default
// features and inserts template implementations for them.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/featurecheck/internal/registry"
)

const version = "0.1.0"

// errConfig marks registry configuration failures; they exit with code 2 so
// CI callers can distinguish bad registries from bad inputs.
var errConfig = errors.New("registry configuration error")

var logger = zap.NewNop()

func main() {
	var debug, noColor bool

	root := &cobra.Command{
		Use:          "featurecheck",
		Short:        "Detect and insert missing default features in code snippets",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
			initLogger(debug)
		},
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newClassifyCmd())
	root.AddCommand(newFeaturesCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errConfig) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func initLogger(debug bool) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	l, err := config.Build()
	if err != nil {
		return
	}
	logger = l
}

// loadStore builds the registry store from the builtin definitions plus an
// optional external directory. External definitions override builtins by
// archetype name. A broken archetype is logged and skipped; only a registry
// with no usable archetypes at all is fatal.
func loadStore(registryDir string) (*registry.Store, error) {
	defs := registry.Builtin()
	if registryDir != "" {
		loaded, err := registry.LoadDir(registryDir)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errConfig, err)
		}
		defs = append(defs, loaded...)
	}

	reg, warnings, errs := registry.New(defs, registry.Options{})
	for _, w := range warnings {
		logger.Warn("registry warning", zap.String("detail", w.String()))
	}
	for _, e := range errs {
		logger.Error("archetype rejected",
			zap.String("archetype", e.Archetype),
			zap.Error(e))
		fmt.Fprintf(os.Stderr, "featurecheck: %v\n", e)
	}
	if len(reg.Defs()) == 0 {
		return nil, fmt.Errorf("%w: no usable archetypes", errConfig)
	}
	return registry.NewStore(reg), nil
}
