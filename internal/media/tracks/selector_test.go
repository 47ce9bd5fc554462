package tracks

import (
	"reflect"
	"testing"
)

func sampleTracks() []Track {
	return []Track{
		{Index: 0, Kind: KindAudio, Language: "eng"},
		{Index: 1, Kind: KindAudio, Language: "jpn"},
		{Index: 2, Kind: KindSubtitle, Language: "eng"},
	}
}

func TestSelectKeepAndRemoveScenario(t *testing.T) {
	list := sampleTracks()
	rules := Rules{
		Audio:            Rule{Keep: []string{"eng"}},
		Subtitle:         Rule{Remove: []string{"eng"}},
		ProcessAudio:     true,
		ProcessSubtitles: true,
	}

	got := SelectAll(list, rules)
	want := []int{1, 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SelectAll = %v, want %v", got, want)
	}
}

func TestSelectRemoveSet(t *testing.T) {
	list := sampleTracks()
	got := Select(list, KindAudio, Rule{Remove: []string{"jpn", "fra"}})
	if !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("Select = %v, want [1]", got)
	}
}

func TestSelectNoRuleSelectsNothing(t *testing.T) {
	if got := Select(sampleTracks(), KindAudio, Rule{}); got != nil {
		t.Fatalf("expected nil selection, got %v", got)
	}
}

func TestSelectCaseInsensitive(t *testing.T) {
	list := []Track{{Index: 3, Kind: KindSubtitle, Language: "ENG"}}
	got := Select(list, KindSubtitle, Rule{Remove: []string{"eNg"}})
	if !reflect.DeepEqual(got, []int{3}) {
		t.Fatalf("Select = %v, want [3]", got)
	}
}

func TestSelectMatchesLanguageAliases(t *testing.T) {
	list := []Track{
		{Index: 1, Kind: KindAudio, Language: "fra"},
		{Index: 2, Kind: KindAudio, Language: "eng"},
	}
	// Two-letter codes, alternate three-letter codes, and plain words all
	// match the canonical container tag.
	for _, alias := range []string{"fr", "fre", "french"} {
		got := Select(list, KindAudio, Rule{Remove: []string{alias}})
		if !reflect.DeepEqual(got, []int{1}) {
			t.Fatalf("Select with alias %q = %v, want [1]", alias, got)
		}
	}
	got := Select(list, KindAudio, Rule{Keep: []string{"en"}})
	if !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("Select keep en = %v, want [1]", got)
	}
}

func TestSelectTreatsUnsetLanguageAsUnd(t *testing.T) {
	list := []Track{
		{Index: 4, Kind: KindAudio, Language: ""},
		{Index: 5, Kind: KindAudio, Language: "und"},
	}
	got := Select(list, KindAudio, Rule{Keep: []string{"eng"}})
	if !reflect.DeepEqual(got, []int{4, 5}) {
		t.Fatalf("Select = %v, want [4 5]", got)
	}
	got = Select(list, KindAudio, Rule{Remove: []string{"und"}})
	if !reflect.DeepEqual(got, []int{4, 5}) {
		t.Fatalf("Select = %v, want [4 5]", got)
	}
}

func TestSelectAllHonorsProcessingSwitches(t *testing.T) {
	list := sampleTracks()
	rules := Rules{
		Audio:            Rule{Keep: []string{"eng"}},
		Subtitle:         Rule{Remove: []string{"eng"}},
		ProcessSubtitles: true,
	}
	got := SelectAll(list, rules)
	if !reflect.DeepEqual(got, []int{2}) {
		t.Fatalf("SelectAll = %v, want [2]", got)
	}
}

func TestSelectDeterministic(t *testing.T) {
	list := sampleTracks()
	rule := Rule{Keep: []string{"eng"}}
	first := Select(list, KindAudio, rule)
	for i := 0; i < 10; i++ {
		if got := Select(list, KindAudio, rule); !reflect.DeepEqual(got, first) {
			t.Fatalf("selection not deterministic: %v vs %v", got, first)
		}
	}
}

func TestRulesValidateMutualExclusion(t *testing.T) {
	rules := Rules{Audio: Rule{Remove: []string{"eng"}, Keep: []string{"jpn"}}}
	if err := rules.Validate(); err == nil {
		t.Fatal("expected validation error for mixed rule")
	}
	rules = Rules{Audio: Rule{Keep: []string{"eng"}}, Subtitle: Rule{Remove: []string{"ger"}}}
	if err := rules.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestSelected(t *testing.T) {
	rules := Rules{
		Audio:        Rule{Keep: []string{"eng"}},
		ProcessAudio: true,
	}
	if Selected(Track{Index: 0, Kind: KindAudio, Language: "eng"}, rules) {
		t.Fatal("kept language must not be selected")
	}
	if !Selected(Track{Index: 1, Kind: KindAudio, Language: "jpn"}, rules) {
		t.Fatal("non-kept language must be selected")
	}
	if Selected(Track{Index: 2, Kind: KindSubtitle, Language: "jpn"}, rules) {
		t.Fatal("unprocessed kind must never be selected")
	}
}
