package main

import (
	"strings"

	"github.com/spf13/cobra"

	"mediatrim/internal/config"
	"mediatrim/internal/language"
	"mediatrim/internal/media/tracks"
)

// ruleFlags carries the track selection overrides shared by the run and
// estimate commands. A flag only overrides the configuration when it was
// set explicitly.
type ruleFlags struct {
	removeAudio    []string
	keepAudio      []string
	removeSubtitle []string
	keepSubtitle   []string
	audio          bool
	subtitles      bool
}

func (f *ruleFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringSliceVar(&f.removeAudio, "remove-audio-languages", nil, "Strip audio tracks in these languages")
	flags.StringSliceVar(&f.keepAudio, "keep-audio-languages", nil, "Strip audio tracks not in these languages")
	flags.StringSliceVar(&f.removeSubtitle, "remove-subtitle-languages", nil, "Strip subtitle tracks in these languages")
	flags.StringSliceVar(&f.keepSubtitle, "keep-subtitle-languages", nil, "Strip subtitle tracks not in these languages")
	flags.BoolVar(&f.audio, "audio", true, "Process audio tracks")
	flags.BoolVar(&f.subtitles, "subtitles", true, "Process subtitle tracks")
}

func (f *ruleFlags) rules(cmd *cobra.Command, cfg *config.Config) (tracks.Rules, error) {
	rules := cfg.SelectionRules()
	flags := cmd.Flags()

	if flags.Changed("remove-audio-languages") {
		rules.Audio.Remove = language.NormalizeList(f.removeAudio)
		if !flags.Changed("keep-audio-languages") {
			rules.Audio.Keep = nil
		}
	}
	if flags.Changed("keep-audio-languages") {
		rules.Audio.Keep = language.NormalizeList(f.keepAudio)
		if !flags.Changed("remove-audio-languages") {
			rules.Audio.Remove = nil
		}
	}
	if flags.Changed("remove-subtitle-languages") {
		rules.Subtitle.Remove = language.NormalizeList(f.removeSubtitle)
		if !flags.Changed("keep-subtitle-languages") {
			rules.Subtitle.Keep = nil
		}
	}
	if flags.Changed("keep-subtitle-languages") {
		rules.Subtitle.Keep = language.NormalizeList(f.keepSubtitle)
		if !flags.Changed("remove-subtitle-languages") {
			rules.Subtitle.Remove = nil
		}
	}
	if flags.Changed("audio") {
		rules.ProcessAudio = f.audio
	}
	if flags.Changed("subtitles") {
		rules.ProcessSubtitles = f.subtitles
	}

	if err := rules.Validate(); err != nil {
		return tracks.Rules{}, err
	}
	return rules, nil
}

func scanDirectory(args []string) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0]
	}
	return "."
}
