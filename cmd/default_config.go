package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Christian2525252525/bbl-evacuatie-calculator/sim/scenario"
)

var defaultsOutput string // Destination file; empty = stdout

// defaultsCmd prints the built-in scenario with every stair listed, as a
// starting point for a scenario file.
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default scenario as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)
		data, err := DefaultScenarioYAML()
		if err != nil {
			logrus.Fatalf("Failed to render defaults: %v", err)
		}
		if defaultsOutput == "" {
			fmt.Print(string(data))
			return
		}
		if err := os.WriteFile(defaultsOutput, data, 0644); err != nil {
			logrus.Fatalf("Failed to write defaults file %s: %v", defaultsOutput, err)
		}
		logrus.Infof("Wrote default scenario to %s", defaultsOutput)
	},
}

// DefaultScenarioYAML renders the default scenario with explicit stairs.
func DefaultScenarioYAML() ([]byte, error) {
	sc := scenario.Default()
	sc.Name = "default"
	expanded := sc.Expand()
	return expanded.EncodeYAML()
}

func init() {
	defaultsCmd.Flags().StringVarP(&defaultsOutput, "output", "o", "", "Write to this file instead of stdout")
	rootCmd.AddCommand(defaultsCmd)
}
