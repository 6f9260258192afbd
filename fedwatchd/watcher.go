package fedwatchd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/absmach/fedwatch/pkg/server"
	"github.com/absmach/fedwatch/pkg/storage"
	"github.com/absmach/fedwatch/watcher"
)

var (
	DefTLSVerification = false
	DefWatcherURL      = "http://localhost:7070"
	defCoordinatorURL  = "http://localhost:8000"
)

var watcherCmd = []cobra.Command{
	{
		Use:   "start",
		Short: "Start watcher",
		Long:  `Start watcher.`,
		Run: func(cmd *cobra.Command, _ []string) {
			cfg := Config{
				LogLevel:        "info",
				CoordinatorURL:  defCoordinatorURL,
				PollInterval:    watcher.DefPollInterval,
				RequestTimeout:  10 * time.Second,
				TLSVerification: DefTLSVerification,
				HistoryCap:      storage.DefHistoryCap,
				Server: server.Config{
					Port: "7070",
				},
			}
			ctx, cancel := context.WithCancel(cmd.Context())
			if err := StartWatcher(ctx, cancel, cfg); err != nil {
				cmd.PrintErrf("failed to start watcher: %s", err.Error())
			}
			cancel()
		},
	},
}

func NewWatcherCmd() *cobra.Command {
	cmd := cobra.Command{
		Use:   "watcher [start]",
		Short: "Watcher management",
		Long:  `Start the FL metrics watcher daemon.`,
	}

	for i := range watcherCmd {
		cmd.AddCommand(&watcherCmd[i])
	}

	return &cmd
}
