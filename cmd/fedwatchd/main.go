package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/absmach/fedwatch/fedwatchd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fedwatchd",
		Short: "Fedwatch Daemon",
		Long:  `Fedwatch Daemon manages the lifecycle of the FL metrics watcher.`,
	}

	watcherCmd := fedwatchd.NewWatcherCmd()

	rootCmd.AddCommand(watcherCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
