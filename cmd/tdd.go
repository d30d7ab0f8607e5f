package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"testgrade.dev/pkg/testgrade/internal/domain"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

var tddAlignmentFlag float64
var tddTimeoutFlag time.Duration
var tddThresholdFlag float64

const tddLongDescription = `Evaluate a TDD session described by a session spec file.

The spec lists up to five iterations, each referencing the generated
tests and the implementation snapshot for that iteration. Iterations
without a recorded execution outcome are run through the local test
runner. Pass --alignment to fold an externally computed alignment score
into the final verdict.`

// tddCmd represents the tdd command.
var tddCmd = newTddCmd()

func newTddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tdd <session-spec.yaml>",
		Short: "Evaluate a TDD iteration session",
		Long:  tddLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			threshold := viper.GetFloat64(thresholdConfigKey)

			evalCfg := domain.DefaultEvaluatorConfig()
			evalCfg.AcceptThreshold = threshold

			combCfg := domain.DefaultCombinerConfig()
			combCfg.AcceptThreshold = threshold

			timeout := tddTimeoutFlag
			if timeout <= 0 {
				timeout = time.Duration(viper.GetInt64(runTimeoutConfigKey)) * time.Second
			}

			return newWorkflow(evalCfg, combCfg).RunSession(context.Background(), domain.SessionArgs{
				SpecPath:  m.Path(args[0]),
				Reports:   m.Path(viper.GetString(outputFlagName)),
				Alignment: tddAlignmentFlag,
				Timeout:   timeout,
			})
		},
	}

	configureTddFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(tddCmd)
}

func configureTddFlags(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&tddAlignmentFlag, alignmentFlagName, "a", -1, "external alignment score in [0,1] to combine into the verdict (negative: none)")
	cmd.Flags().DurationVar(&tddTimeoutFlag, timeoutFlagName, 0, "timeout per test execution (default: from config)")
	cmd.Flags().Float64Var(&tddThresholdFlag, thresholdFlagName, viper.GetFloat64(thresholdConfigKey), "score at or above which the session is accepted")
	bindFlagToConfig(cmd.Flags().Lookup(thresholdFlagName), thresholdConfigKey)
}
