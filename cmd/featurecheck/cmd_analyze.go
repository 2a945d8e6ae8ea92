package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/featurecheck/internal/analyzer"
	"github.com/dshills/featurecheck/internal/render"
	"github.com/dshills/featurecheck/internal/schema"
)

// analyzeConcurrency bounds the parallel file workers.
const analyzeConcurrency = 4

type analyzeOptions struct {
	registryDir   string
	archetype     string
	jsonOut       bool
	essentialOnly bool
	write         bool
}

func newAnalyzeCmd() *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze <file>...",
		Short: "Analyze files and insert missing default features",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args, opts)
		},
	}
	cmd.Flags().StringVar(&opts.registryDir, "registry", "", "directory of archetype YAML definitions")
	cmd.Flags().StringVar(&opts.archetype, "archetype", "", "skip classification and use this archetype")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit the JSON report instead of the summary")
	cmd.Flags().BoolVar(&opts.essentialOnly, "essential-only", false, "insert only high-importance features")
	cmd.Flags().BoolVar(&opts.write, "write", false, "write the enhanced source to <file>.enhanced<ext>")
	return cmd
}

func runAnalyze(files []string, opts analyzeOptions) error {
	store, err := loadStore(opts.registryDir)
	if err != nil {
		return err
	}
	anl := analyzer.New(store)

	reports := make([]*schema.Report, len(files))
	g := new(errgroup.Group)
	g.SetLimit(analyzeConcurrency)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			report, err := analyzeFile(anl, file, opts)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Output is sequential so multi-file runs stay readable.
	for _, report := range reports {
		if opts.jsonOut {
			b, err := render.JSON(report)
			if err != nil {
				return err
			}
			fmt.Println(string(b))
			continue
		}
		render.Terminal(os.Stdout, report.Input.File, &report.Result)
	}
	return nil
}

func analyzeFile(anl *analyzer.Analyzer, file string, opts analyzeOptions) (*schema.Report, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	source := string(data)

	logger.Debug("analyzing file", zap.String("file", file), zap.Int("bytes", len(data)))

	aopts := analyzer.Options{EssentialOnly: opts.essentialOnly}
	var result schema.AnalysisResult
	if opts.archetype != "" {
		result = anl.AnalyzeAs(source, schema.Archetype(opts.archetype), aopts)
	} else {
		result = anl.Analyze(source, aopts)
	}

	if opts.write && result.EnhancedSource != source {
		out := enhancedPath(file)
		if err := os.WriteFile(out, []byte(result.EnhancedSource), 0644); err != nil {
			return nil, fmt.Errorf("write %s: %w", out, err)
		}
		logger.Debug("wrote enhanced source", zap.String("file", out))
	}

	return &schema.Report{
		Tool:    "featurecheck",
		Version: version,
		Input: schema.Input{
			File:          file,
			RegistryDir:   opts.registryDir,
			Archetype:     schema.Archetype(opts.archetype),
			EssentialOnly: opts.essentialOnly,
		},
		Result: result,
	}, nil
}

// enhancedPath maps input.py to input.enhanced.py.
func enhancedPath(file string) string {
	ext := filepath.Ext(file)
	return strings.TrimSuffix(file, ext) + ".enhanced" + ext
}
