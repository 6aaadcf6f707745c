// Package cmd implements the flipplayer command line.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/llehouerou/flipplayer/internal/adapter"
)

func init() {
	f := rootCmd.Flags()
	f.StringP("type", "T", "progressive", "Source type: progressive, hls or dash")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"progressive", "hls", "dash"}, cobra.ShellCompDirectiveNoFileComp
	}))
	f.String("t", "", "Start position in whole seconds")
	f.String("video-id", "", "Video id, used for watch history and skip segments")
	f.String("title", "", "Video title")
	f.String("author", "", "Video author")
	f.String("description", "", "Video description; chapter timestamps are read from it")
	f.Float64("length", 0, "Catalog duration in seconds, used until the stream reports one")
	f.Bool("live", false, "The source is a live stream")
	f.Bool("embed", false, "Minimal player that never writes watch history")
}

var rootCmd = &cobra.Command{
	Use:   "flipplayer <url>",
	Short: "An adaptive video player for progressive, HLS and DASH sources",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f := cmd.Flags()
		srcType, err := adapter.ParseSourceType(lo.Must(f.GetString("type")))
		if err != nil {
			return err
		}
		opts := runOptions{
			URL:         args[0],
			SourceType:  srcType,
			StartTime:   lo.Must(f.GetString("t")),
			VideoID:     lo.Must(f.GetString("video-id")),
			Title:       lo.Must(f.GetString("title")),
			Author:      lo.Must(f.GetString("author")),
			Description: lo.Must(f.GetString("description")),
			Length:      lo.Must(f.GetFloat64("length")),
			Live:        lo.Must(f.GetBool("live")),
			Embed:       lo.Must(f.GetBool("embed")),
		}
		return run(cmd.Context(), opts)
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "flipplayer: %s\n", strings.TrimSpace(err.Error()))
		os.Exit(1)
	}
}
