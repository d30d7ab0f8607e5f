package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"testgrade.dev/pkg/testgrade/internal/domain"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

var assessParallelFlag int
var assessTaskFlag string
var assessSourceFlag string
var assessLanguageFlag string

// assessCmd represents the assess command.
var assessCmd = newAssessCmd()

func newAssessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assess [paths...]",
		Short: "Assess test quality",
		Long:  assessLongDescription,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Assess(context.Background(), domain.AssessArgs{
				Paths:              parsePaths(args),
				TaskDescription:    assessTaskFlag,
				ImplementationPath: m.Path(assessSourceFlag),
				Language:           m.ParseLanguage(assessLanguageFlag),
				Reports:            m.Path(viper.GetString(outputFlagName)),
				Threads:            uint(viper.GetInt(assessParallelConfigKey)), //nolint:gosec // bounded flag value
			})
		},
	}

	configureAssessFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(assessCmd)
}

func configureAssessFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&assessParallelFlag, parallelFlagName, "p", viper.GetInt(assessParallelConfigKey), "number of parallel workers for assessment")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), assessParallelConfigKey)
	cmd.Flags().StringVarP(&assessTaskFlag, taskFlagName, "t", "", "task description to score relevance against")
	cmd.Flags().StringVarP(&assessSourceFlag, sourceFlagName, "s", "", "implementation source file to score complexity coverage against")
	cmd.Flags().StringVarP(&assessLanguageFlag, languageFlagName, "l", "", "language tag to assume for all samples (default: detect)")
}
