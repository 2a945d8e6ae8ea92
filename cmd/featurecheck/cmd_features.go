package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/featurecheck/internal/schema"
)

func newFeaturesCmd() *cobra.Command {
	var registryDir string

	cmd := &cobra.Command{
		Use:   "features [archetype]",
		Short: "List registered archetypes or the features of one archetype",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore(registryDir)
			if err != nil {
				return err
			}
			reg := store.Current()

			if len(args) == 0 {
				for _, name := range reg.Archetypes() {
					fmt.Println(name)
				}
				return nil
			}

			def, ok := reg.Lookup(schema.Archetype(args[0]))
			if !ok {
				return fmt.Errorf("archetype %q is not registered", args[0])
			}
			for _, f := range def.Features {
				fmt.Printf("%-20s %-7s %s\n", f.Name, f.Importance, f.Description)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&registryDir, "registry", "", "directory of archetype YAML definitions")
	return cmd
}
