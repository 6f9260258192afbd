package cli

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/absmach/fedwatch/pkg/sdk"
	"github.com/absmach/fedwatch/render"
	"github.com/absmach/fedwatch/snapshot"
)

var (
	defOffset uint64 = 0
	defLimit  uint64 = 10
	textMode  bool
)

var wsdk sdk.SDK

func SetWatcherSDK(s sdk.SDK) {
	wsdk = s
}

func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [view|refresh|history]",
		Short: "Training watcher",
		Long:  `View the reconciled training view, force a refresh cycle, or page cycle history.`,
	}

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "View current state",
		Long:  `View the current reconciled metrics and training status.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			v, err := wsdk.View()
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}

			if textMode {
				logTextView(*cmd, v)

				return
			}
			logJSONCmd(*cmd, v)
		},
	}
	viewCmd.Flags().BoolVar(&textMode, "text", false, "render as banner and cards instead of JSON")

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Force a fetch cycle",
		Long:  `Force one fetch cycle against the coordinator and print the resulting view.`,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 0 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}

			v, err := wsdk.Refresh()
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, v)
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history [offset] [limit]",
		Short: "List cycle history",
		Long:  `List past fetch cycle outcomes, newest first.`,
		Run: func(cmd *cobra.Command, args []string) {
			offset, limit := defOffset, defLimit
			if len(args) > 2 {
				logUsageCmd(*cmd, cmd.Use)

				return
			}
			if len(args) >= 1 {
				o, err := strconv.ParseUint(args[0], 10, 64)
				if err != nil {
					logErrorCmd(*cmd, err)

					return
				}
				offset = o
			}
			if len(args) == 2 {
				l, err := strconv.ParseUint(args[1], 10, 64)
				if err != nil {
					logErrorCmd(*cmd, err)

					return
				}
				limit = l
			}

			page, err := wsdk.ListHistory(offset, limit)
			if err != nil {
				logErrorCmd(*cmd, err)

				return
			}
			logJSONCmd(*cmd, page)
		},
	}

	cmd.AddCommand(viewCmd)
	cmd.AddCommand(refreshCmd)
	cmd.AddCommand(historyCmd)

	return cmd
}

func logTextView(cmd cobra.Command, v snapshot.View) {
	out := cmd.OutOrStdout()

	if v.Loading {
		fmt.Fprintln(out, "loading...")

		return
	}

	if v.Status != nil {
		banner := render.Banner(*v.Status)
		switch render.StatusSeverity(v.Status.Status) {
		case render.SeveritySuccess:
			fmt.Fprintln(out, color.GreenString(banner))
		case render.SeverityError:
			fmt.Fprintln(out, color.RedString(banner))
		case render.SeverityWarning:
			fmt.Fprintln(out, color.YellowString(banner))
		default:
			fmt.Fprintln(out, color.CyanString(banner))
		}
	}

	if v.Metrics == nil && v.Error != "" {
		fmt.Fprintln(out, color.YellowString(render.TrainFirstNotice))

		return
	}

	for _, card := range render.Cards(v.Metrics) {
		if card.Delta != "" && card.Delta != render.Placeholder {
			fmt.Fprintf(out, "%-24s %s (%s)\n", card.Title, card.Value, card.Delta)

			continue
		}
		fmt.Fprintf(out, "%-24s %s\n", card.Title, card.Value)
	}

	for _, field := range render.PrivacyPanel(v.Metrics) {
		fmt.Fprintf(out, "%-30s %s\n", field.Label, field.Value)
	}
}
