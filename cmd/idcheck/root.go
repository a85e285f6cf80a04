package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var colorMode string

var rootCmd = &cobra.Command{
	Use:   "idcheck",
	Short: "idcheck - sanity checks for AI-extracted identity document data",
	Long: `idcheck runs rule-based sanity checks over the JSON an identity document
extraction pipeline produces: passports, driver's licenses and other IDs.

Every check yields a pass or a failure graded error or warning; the CLI
prints a summary per input file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		switch colorMode {
		case "always":
			color.NoColor = false
		case "never":
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&colorMode, "color", "auto", "Colorize output: auto, always, never")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
