package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Manu343726/bodypatch/cmd/common"
	"github.com/Manu343726/bodypatch/cmd/inspect"
	"github.com/Manu343726/bodypatch/cmd/patch"
	"github.com/Manu343726/bodypatch/cmd/tools"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tebeka/atexit"
)

var cfgFile string

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "bodypatch",
	Short: "Structural patches of host method bodies",
	Long: `Bodypatch locates instruction sequences inside the method bodies of a host by their shape
and rewrites them, reporting every patch route that could not be applied.

This CLI patches host snapshots, lists the available patch routes and inspects patch outcomes`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		common.SetupColor()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func init() {
	RootCmd.AddCommand(tools.ToolsCmd, patch.PatchCmd, patch.RoutesCmd, inspect.InspectCmd)
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bodypatch.yaml)")
	RootCmd.PersistentFlags().String(common.KeyLogLevel, "info", "Log level: trace, debug, info, warn or error")
	RootCmd.PersistentFlags().String(common.KeyLogFile, "", "Also write JSON log records to this file")
	RootCmd.PersistentFlags().Bool(common.KeyNoColor, false, "Disable colored output")

	for _, key := range []string{common.KeyLogLevel, common.KeyLogFile, common.KeyNoColor} {
		cobra.CheckErr(viper.BindPFlag(key, RootCmd.PersistentFlags().Lookup(key)))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".bodypatch" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".bodypatch")
	}

	viper.SetEnvPrefix("BODYPATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
