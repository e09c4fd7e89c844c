package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/qdeck/qdeck/pkg/logging"
)

var (
	verbosity int

	rootCmd = &cobra.Command{
		Use:   "qdeck",
		Short: "A grid launcher runtime",
		Long: `qdeck manages profiles of button grids: navigate between pages,
edit buttons, execute their actions and ingest dropped files, with every
change persisted atomically.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	initTemplateFormatting()
	addCommands(rootCmd)
}
