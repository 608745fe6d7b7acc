package cmd

import (
	"github.com/spf13/cobra"
)

const AppName = "fatview"

func Execute() error {
	rootCmd := &cobra.Command{
		Use:   AppName,
		Short: AppName + " - read-only FAT12/16/32 image browser",
	}

	rootCmd.PersistentFlags().String("log-level", "INFO", "minimum log level: DEBUG, INFO, WARN, ERROR")

	rootCmd.AddCommand(DefineBrowseCommand())
	rootCmd.AddCommand(DefineMountCommand())
	rootCmd.AddCommand(DefineExportCommand())

	return rootCmd.Execute()
}
