package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Christian2525252525/bbl-evacuatie-calculator/sim"
	"github.com/Christian2525252525/bbl-evacuatie-calculator/sim/scenario"
)

var (
	// CLI flags for the run command
	logLevel     string // Log verbosity level
	scenarioPath string // YAML scenario file; empty = built-in defaults
	noColor      bool   // Plain report without terminal styling
	exportJSON   string // Path for the full JSON result including snapshots
	exportCSV    string // Path for the per-step CSV table

	// Building-level overrides, applied only when the flag is set
	stairCount             int
	floorCount             int
	lowestFloor            int
	floorHeight            float64
	maxEvacuationMinutes   int
	timeStepSeconds        int
	floorExitFlowRate      float64
	stairFlowRate          float64
	vestibuleFlowReduction float64
	floorStartDelay        float64
	peoplePerFloor         int
	allocation             string
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "evacsim",
	Short: "Time-step evacuation simulator for multi-floor buildings",
}

// runCmd executes the simulation using the scenario file and CLI overrides
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an evacuation simulation and print the report",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging(logLevel)

		sc, err := loadScenario(scenarioPath)
		if err != nil {
			logrus.Fatalf("Unable to load scenario: %v", err)
		}
		applyFlagOverrides(cmd, sc)
		if err := sc.Validate(); err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}

		startTime := time.Now()
		res, err := sim.Simulate(sc.BuildingConfig())
		if err != nil {
			logrus.Fatalf("Simulation refused to start: %v", err)
		}
		logrus.Infof("Simulated %d steps in %v", len(res.Snapshots), time.Since(startTime))

		fmt.Print(RenderReport(res, newTheme(noColor)))

		if exportJSON != "" {
			if err := WriteResultJSON(exportJSON, res); err != nil {
				logrus.Fatalf("Export failed: %v", err)
			}
			logrus.Infof("Wrote result to %s", exportJSON)
		}
		if exportCSV != "" {
			if err := WriteSnapshotsCSV(exportCSV, res); err != nil {
				logrus.Fatalf("Export failed: %v", err)
			}
			logrus.Infof("Wrote snapshots to %s", exportCSV)
		}
		if !res.Converged {
			logrus.Warn("Result is incomplete: the building did not empty within the step budget")
		}
		logrus.Info("Simulation complete.")
	},
}

func setupLogging(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", level)
	}
	logrus.SetLevel(lvl)
}

func loadScenario(path string) (*scenario.Scenario, error) {
	if path == "" {
		sc := scenario.Default()
		return &sc, nil
	}
	return scenario.Load(path)
}

// applyFlagOverrides copies every explicitly set building flag onto sc.
// Flags left at their defaults never overwrite scenario file values.
func applyFlagOverrides(cmd *cobra.Command, sc *scenario.Scenario) {
	flags := cmd.Flags()
	if flags.Changed("stairs") {
		sc.StairCount = stairCount
	}
	if flags.Changed("floors") {
		sc.FloorCount = floorCount
	}
	if flags.Changed("lowest-floor") {
		sc.LowestFloor = lowestFloor
	}
	if flags.Changed("floor-height") {
		sc.FloorHeight = floorHeight
	}
	if flags.Changed("max-minutes") {
		sc.MaxEvacuationMinutes = maxEvacuationMinutes
	}
	if flags.Changed("time-step") {
		sc.TimeStepSeconds = timeStepSeconds
	}
	if flags.Changed("floor-exit-flow-rate") {
		sc.FloorExitFlowRate = floorExitFlowRate
	}
	if flags.Changed("stair-flow-rate") {
		sc.StairFlowRate = stairFlowRate
	}
	if flags.Changed("vestibule-reduction") {
		sc.VestibuleFlowReduction = vestibuleFlowReduction
	}
	if flags.Changed("start-delay") {
		delay := floorStartDelay
		sc.FloorStartDelaySeconds = &delay
	}
	if flags.Changed("people-per-floor") {
		sc.DefaultPeoplePerFloor = peoplePerFloor
	}
	if flags.Changed("allocation") {
		sc.Allocation = allocation
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	runCmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "YAML scenario file (default: built-in defaults)")
	runCmd.Flags().BoolVar(&noColor, "no-color", false, "Print the report without terminal styling")
	runCmd.Flags().StringVar(&exportJSON, "export-json", "", "Write the full result, including every snapshot, as JSON")
	runCmd.Flags().StringVar(&exportCSV, "export-csv", "", "Write one CSV row per simulation step")

	// Building overrides
	runCmd.Flags().IntVar(&stairCount, "stairs", scenario.DefaultStairCount, "Number of generated stairs (ignored when the scenario lists stairs)")
	runCmd.Flags().IntVar(&floorCount, "floors", scenario.DefaultFloorCount, "Number of floors at or above ground level")
	runCmd.Flags().IntVar(&lowestFloor, "lowest-floor", scenario.DefaultLowestFloor, "Lowest floor index (<= 0)")
	runCmd.Flags().Float64Var(&floorHeight, "floor-height", scenario.DefaultFloorHeight, "Floor-to-floor height in metres")
	runCmd.Flags().IntVar(&maxEvacuationMinutes, "max-minutes", scenario.DefaultMaxEvacuationMinutes, "Maximum allowed evacuation time (15, 20, 30, 38, 76)")
	runCmd.Flags().IntVar(&timeStepSeconds, "time-step", scenario.DefaultTimeStepSeconds, "Simulation time step in seconds")
	runCmd.Flags().Float64Var(&floorExitFlowRate, "floor-exit-flow-rate", scenario.DefaultFloorExitFlowRate, "Doorway flow rate (people/min per metre)")
	runCmd.Flags().Float64Var(&stairFlowRate, "stair-flow-rate", scenario.DefaultStairFlowRate, "Stair flow rate (people/min per metre)")
	runCmd.Flags().Float64Var(&vestibuleFlowReduction, "vestibule-reduction", scenario.DefaultVestibuleFlowReduction, "Flow reduction factor of vestibules")
	runCmd.Flags().Float64Var(&floorStartDelay, "start-delay", 60, "Delay in seconds between the start of consecutive floors")
	runCmd.Flags().IntVar(&peoplePerFloor, "people-per-floor", scenario.DefaultPeoplePerFloor, "Occupants of every floor not listed in the scenario")
	runCmd.Flags().StringVar(&allocation, "allocation", string(sim.AllocationSequential), "How floors share stairs within a step (sequential, proportional)")

	rootCmd.AddCommand(runCmd)
}
