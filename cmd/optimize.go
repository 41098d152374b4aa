package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gwifloria/eriko-gallery/internal/gitx"
	"github.com/gwifloria/eriko-gallery/internal/logging"
	"github.com/gwifloria/eriko-gallery/internal/optimizer"
	"github.com/gwifloria/eriko-gallery/internal/tui"
)

var (
	optimizeOrigin  string
	optimizeOutput  string
	optimizeAll     bool
	optimizeKeep    bool
	optimizeNoWebP  bool
	optimizeVerbose bool
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Convert origin media and stage the outputs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := optimizer.DefaultOptions()
		opts.OriginDir = optimizeOrigin
		opts.OutputDir = optimizeOutput
		opts.WalkOnly = optimizeAll
		opts.KeepSources = optimizeKeep
		opts.SkipWebP = optimizeNoWebP

		log := logging.New(optimizeVerbose)

		updates := make(chan optimizer.ProgressUpdate, 64)
		model := tui.NewModel(updates)
		program := tea.NewProgram(model)

		uiDone := make(chan struct{})
		go func() {
			_, _ = program.Run()
			close(uiDone)
		}()

		summary, err := optimizer.Run(context.Background(), opts, &gitx.Client{}, nil, log, updates)

		close(updates)
		<-uiDone
		if err != nil {
			return err
		}

		rows := []tui.SummaryRow{
			{Label: "Images converted", Value: fmt.Sprintf("%d", summary.Images)},
			{Label: "Videos converted", Value: fmt.Sprintf("%d", summary.Videos)},
			{Label: "Outputs produced", Value: fmt.Sprintf("%d", summary.Outputs)},
			{Label: "Outputs staged", Value: fmt.Sprintf("%d", summary.Staged)},
			{Label: "Errors", Value: fmt.Sprintf("%d", summary.Errors)},
			{Label: "Bytes saved", Value: tui.FormatBytesDelta(summary.BytesSaved)},
		}
		fmt.Fprintln(os.Stdout, tui.RenderSummary(rows))
		return nil
	},
}

func init() {
	optimizeCmd.Flags().StringVar(&optimizeOrigin, "origin", "origin", "directory of source media")
	optimizeCmd.Flags().StringVarP(&optimizeOutput, "output", "o", "images", "destination folder for converted media")
	optimizeCmd.Flags().BoolVar(&optimizeAll, "all", false, "walk the origin directory instead of querying staged files")
	optimizeCmd.Flags().BoolVar(&optimizeKeep, "keep", false, "retain source files after successful conversion")
	optimizeCmd.Flags().BoolVar(&optimizeNoWebP, "no-webp", false, "produce AVIF only")
	optimizeCmd.Flags().BoolVarP(&optimizeVerbose, "verbose", "v", false, "log per-file detail")

	rootCmd.AddCommand(optimizeCmd)
}
