// Package cmd provides the root command and CLI setup for testgrade.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"testgrade.dev/pkg/testgrade/internal/adapter"
	"testgrade.dev/pkg/testgrade/internal/controller"
	"testgrade.dev/pkg/testgrade/internal/domain"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

var fsAdapter adapter.SampleFSAdapter
var runnerAdapter adapter.TestRunnerAdapter
var reportStore adapter.ReportStore
var aggregator domain.Aggregator
var workflow domain.Workflow
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

var verboseFlag bool
var logFileFlag string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSampleFSAdapter()
	runnerAdapter = adapter.NewLocalTestRunnerAdapter()
	reportStore = adapter.NewLocalReportStore()
	aggregator = domain.NewAggregator()
	workflow = newWorkflow(domain.DefaultEvaluatorConfig(), domain.DefaultCombinerConfig())
}

// newWorkflow assembles a Workflow on top of the shared adapters; the
// tdd command rebuilds it when the accept threshold differs from the
// default.
func newWorkflow(evalCfg domain.EvaluatorConfig, combCfg domain.CombinerConfig) domain.Workflow {
	return domain.NewWorkflow(
		fsAdapter,
		runnerAdapter,
		reportStore,
		ui,
		aggregator,
		domain.NewEvaluator(aggregator, evalCfg),
		domain.NewCombiner(combCfg),
	)
}

const pathArgsHelp = `Accepts files and directories:
  - tests/              assess every recognized test file beneath tests/
  - user_test.go        assess a single file
  - a/ b_test.py        mix files and directories`

const rootLongDescription = `Testgrade scores generated test suites with eight heuristic quality
metrics and evaluates test-driven development sessions across bounded
iteration sequences, producing accept/reject verdicts for the resulting
implementations.

` + pathArgsHelp

const assessLongDescription = `Assess the quality of test files and print a per-file report.

` + pathArgsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "testgrade",
		Short: "Test quality assessment and TDD evaluation tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(logFileFlag, verboseFlag || viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for quality reports and session records",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "enable debug logging")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringVar(&logFileFlag, logFileFlagName, viper.GetString(logFilenameKey), "log file path")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(logFileFlagName), logFilenameKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
