package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	fedwatch "github.com/absmach/fedwatch"
	"github.com/absmach/fedwatch/cli"
	"github.com/absmach/fedwatch/fedwatchd"
	"github.com/absmach/fedwatch/pkg/sdk"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "fedwatch-cli",
		Short: "Fedwatch CLI",
		Long:  `Fedwatch CLI is a command line interface for inspecting the FL metrics watcher.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			sdkConf := sdk.Config{
				WatcherURL:      fedwatchd.DefWatcherURL,
				TLSVerification: fedwatchd.DefTLSVerification,
			}
			if _, err := os.Stat(configPath); err == nil {
				cfg, err := fedwatch.LoadConfig(configPath)
				if err != nil {
					log.Fatalf("failed to load config file %s : %s", configPath, err.Error())
				}
				if cfg.Watcher.URL != "" {
					sdkConf.WatcherURL = cfg.Watcher.URL
					sdkConf.TLSVerification = cfg.Watcher.TLSVerification
				}
			}
			s := sdk.NewSDK(sdkConf)
			cli.SetWatcherSDK(s)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "config file path")

	watchCmd := cli.NewWatchCmd()

	rootCmd.AddCommand(watchCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
