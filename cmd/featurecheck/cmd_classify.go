package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/featurecheck/internal/classify"
)

func newClassifyCmd() *cobra.Command {
	var registryDir string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "classify <file>...",
		Short: "Report the application archetype of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(registryDir)
			if err != nil {
				return err
			}
			reg := store.Current()
			for _, file := range args {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read %s: %w", file, err)
				}
				source := string(data)
				fmt.Printf("%s: %s\n", file, classify.Classify(reg, source))
				if verbose {
					for _, s := range classify.Scores(reg, source) {
						fmt.Printf("  %-12s %d\n", s.Archetype, s.Hits)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&registryDir, "registry", "", "directory of archetype YAML definitions")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show per-archetype keyword scores")
	return cmd
}
