package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mediaopt",
	Short: "mediaopt 🖼 - convert gallery media to web delivery formats",
	Long:  "mediaopt 🖼 converts origin photos to AVIF/WebP and videos to MP4, then stages the outputs for commit.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}
