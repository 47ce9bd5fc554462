package tracks

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"mediatrim/internal/language"
)

// Rule decides removal for one track kind. Exactly one of Remove or Keep may
// be populated: with Remove, a track is dropped iff its language is in the
// set; with Keep, a track is dropped iff its language is not in the set.
// Neither populated means the kind is left untouched.
type Rule struct {
	Remove []string
	Keep   []string
}

// Active reports whether the rule selects anything at all.
func (r Rule) Active() bool {
	return len(r.Remove) > 0 || len(r.Keep) > 0
}

// Validate rejects a rule that mixes remove and keep sets.
func (r Rule) Validate() error {
	if len(r.Remove) > 0 && len(r.Keep) > 0 {
		return errors.New("remove and keep language sets are mutually exclusive")
	}
	return nil
}

// Rules bundles the per-kind rules with the kind-processing switches. A kind
// whose switch is off contributes nothing even when a rule exists for it.
type Rules struct {
	Audio            Rule
	Subtitle         Rule
	ProcessAudio     bool
	ProcessSubtitles bool
}

// Validate checks both per-kind rules.
func (rs Rules) Validate() error {
	if err := rs.Audio.Validate(); err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	if err := rs.Subtitle.Validate(); err != nil {
		return fmt.Errorf("subtitle: %w", err)
	}
	return nil
}

// Active reports whether any processed kind has a rule that can select
// tracks. An inactive rule set makes every run a no-op.
func (rs Rules) Active() bool {
	return (rs.ProcessAudio && rs.Audio.Active()) ||
		(rs.ProcessSubtitles && rs.Subtitle.Active())
}

// Processes reports whether the given kind participates in selection.
func (rs Rules) Processes(kind Kind) bool {
	switch kind {
	case KindAudio:
		return rs.ProcessAudio
	case KindSubtitle:
		return rs.ProcessSubtitles
	default:
		return false
	}
}

// RuleFor returns the rule configured for the given kind.
func (rs Rules) RuleFor(kind Kind) Rule {
	switch kind {
	case KindAudio:
		return rs.Audio
	case KindSubtitle:
		return rs.Subtitle
	default:
		return Rule{}
	}
}

// Select returns the indices of tracks of the given kind the rule removes.
// Languages compare in canonical form, so "en", "eng", and "english" all
// match an "eng" tag and an unset language counts as "und". The result is
// sorted; identical inputs always yield identical output.
func Select(list []Track, kind Kind, rule Rule) []int {
	if !rule.Active() {
		return nil
	}
	remove := normalizeSet(rule.Remove)
	keep := normalizeSet(rule.Keep)

	var selected []int
	for _, track := range list {
		if track.Kind != kind {
			continue
		}
		lang := language.Canonical(track.Language)
		switch {
		case len(remove) > 0:
			if _, ok := remove[lang]; ok {
				selected = append(selected, track.Index)
			}
		case len(keep) > 0:
			if _, ok := keep[lang]; !ok {
				selected = append(selected, track.Index)
			}
		}
	}
	sort.Ints(selected)
	return selected
}

// SelectAll unions the per-kind selections under the active processing
// switches, sorted by index.
func SelectAll(list []Track, rules Rules) []int {
	var selected []int
	if rules.ProcessAudio {
		selected = append(selected, Select(list, KindAudio, rules.Audio)...)
	}
	if rules.ProcessSubtitles {
		selected = append(selected, Select(list, KindSubtitle, rules.Subtitle)...)
	}
	sort.Ints(selected)
	return selected
}

// Selected reports whether a single track would be removed under the rules.
func Selected(track Track, rules Rules) bool {
	if !rules.Processes(track.Kind) {
		return false
	}
	indices := Select([]Track{track}, track.Kind, rules.RuleFor(track.Kind))
	return len(indices) == 1
}

func normalizeSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		set[language.Canonical(value)] = struct{}{}
	}
	return set
}
