package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gwifloria/eriko-gallery/internal/logging"
	"github.com/gwifloria/eriko-gallery/internal/optimizer"
	"github.com/gwifloria/eriko-gallery/internal/tui"
)

var (
	scanOrigin string
	scanOutput string
	scanNoWebP bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Report pending conversions without modifying files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := optimizer.DefaultOptions()
		opts.OriginDir = scanOrigin
		opts.OutputDir = scanOutput
		opts.SkipWebP = scanNoWebP
		opts.WalkOnly = true

		log := logging.New(false)

		if _, err := os.Stat(opts.OriginDir); err != nil {
			if os.IsNotExist(err) {
				fmt.Fprintln(os.Stdout, scanDimStyle.Render("origin directory not found, nothing to do"))
				return nil
			}
			return err
		}

		candidates := optimizer.Discover(context.Background(), opts, nil, log)
		for i, cand := range candidates {
			if i > 0 {
				fmt.Fprintln(os.Stdout)
			}
			fmt.Fprintf(os.Stdout, "%s\n", scanFileStyle.Render(cand.Path))

			targets := strings.Join(cand.OutputNames(opts.SkipWebP), ", ")
			if cand.Kind == optimizer.MediaVideo {
				fmt.Fprintf(os.Stdout, "  %s %s\n", scanBulletStyle.Render("-"), scanValueStyle.Render("transcodes to "+targets))
				continue
			}
			fmt.Fprintf(os.Stdout, "  %s %s\n", scanBulletStyle.Render("-"), scanValueStyle.Render("converts to "+targets))

			meta, err := optimizer.AnalyzeSourceMetadata(cand.Path)
			if err != nil {
				fmt.Fprintf(os.Stdout, "  %s %s\n", scanBulletStyle.Render("-"), scanDimStyle.Render("metadata unreadable: "+err.Error()))
				continue
			}
			cats := meta.Categories()
			if len(cats) == 0 {
				fmt.Fprintf(os.Stdout, "  %s %s\n", scanBulletStyle.Render("-"), scanDimStyle.Render("no metadata to drop"))
				continue
			}
			fmt.Fprintf(os.Stdout, "  %s %s %s\n",
				scanBulletStyle.Render("-"),
				scanCategoryStyle.Render("drops:"),
				scanValueStyle.Render(strings.Join(cats, ", ")),
			)
		}

		fmt.Fprintf(os.Stdout, "\n%s\n", scanDimStyle.Render(fmt.Sprintf("%d file(s) pending conversion", len(candidates))))
		return nil
	},
}

var (
	scanFileStyle     = lipgloss.NewStyle().Bold(true).Foreground(tui.ColorAccent)
	scanCategoryStyle = lipgloss.NewStyle().Foreground(tui.ColorAccentAlt)
	scanValueStyle    = lipgloss.NewStyle().Foreground(tui.ColorInk)
	scanDimStyle      = lipgloss.NewStyle().Foreground(tui.ColorDim)
	scanBulletStyle   = lipgloss.NewStyle().Foreground(tui.ColorDim)
)

func init() {
	scanCmd.Flags().StringVar(&scanOrigin, "origin", "origin", "directory of source media")
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "images", "destination folder used for the already-optimized check")
	scanCmd.Flags().BoolVar(&scanNoWebP, "no-webp", false, "preview AVIF-only conversion")

	rootCmd.AddCommand(scanCmd)
}
