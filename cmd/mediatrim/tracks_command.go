package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"mediatrim/internal/deps"
	"mediatrim/internal/media/tracks"
)

func newTracksCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tracks <file>",
		Short: "List the audio and subtitle tracks of a video file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if err := deps.Verify(deps.Required(cfg.FFmpegBinary(), cfg.FFprobeBinary())); err != nil {
				return err
			}

			inspector := tracks.NewInspector(cfg.FFprobeBinary(), logger)
			_, list, err := inspector.Inspect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No audio or subtitle tracks found")
				return nil
			}

			headers := []string{"Index", "Type", "Language", "Title", "Default", "Forced"}
			rows := make([][]string, 0, len(list))
			for _, track := range list {
				rows = append(rows, []string{
					strconv.Itoa(track.Index),
					string(track.Kind),
					languageName(track.Language),
					track.Title,
					yesNo(track.Default),
					yesNo(track.Forced),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, []columnAlignment{alignRight}))
			return nil
		},
	}
}

// languageName renders an ISO 639 code as "English (eng)". Untagged and
// unrecognized codes fall back to the raw code.
func languageName(code string) string {
	if code == "" || code == "und" {
		return "Unknown (und)"
	}
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	name := display.English.Tags().Name(tag)
	if name == "" {
		return code
	}
	return fmt.Sprintf("%s (%s)", cases.Title(language.English).String(name), code)
}
