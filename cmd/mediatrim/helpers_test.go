package main

import (
	"testing"

	"github.com/spf13/cobra"

	"mediatrim/internal/config"
)

func ruleTestCommand() (*cobra.Command, *ruleFlags) {
	flags := &ruleFlags{}
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	flags.register(cmd)
	return cmd, flags
}

func TestRuleFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Audio.RemoveLanguages = []string{"fra"}

	cmd, flags := ruleTestCommand()
	if err := cmd.Flags().Set("keep-audio-languages", "ENG,jpn"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	rules, err := flags.rules(cmd, &cfg)
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	if len(rules.Audio.Remove) != 0 {
		t.Fatalf("config remove list should be displaced by the keep flag: %v", rules.Audio.Remove)
	}
	if len(rules.Audio.Keep) != 2 || rules.Audio.Keep[0] != "eng" || rules.Audio.Keep[1] != "jpn" {
		t.Fatalf("keep languages not normalized: %v", rules.Audio.Keep)
	}
}

func TestRuleFlagsRejectConflict(t *testing.T) {
	cfg := config.Default()
	cmd, flags := ruleTestCommand()
	if err := cmd.Flags().Set("remove-subtitle-languages", "eng"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if err := cmd.Flags().Set("keep-subtitle-languages", "jpn"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	if _, err := flags.rules(cmd, &cfg); err == nil {
		t.Fatal("expected mutual exclusion error")
	}
}

func TestRuleFlagsProcessingSwitches(t *testing.T) {
	cfg := config.Default()
	cfg.Audio.RemoveLanguages = []string{"eng"}

	cmd, flags := ruleTestCommand()
	if err := cmd.Flags().Set("audio", "false"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	rules, err := flags.rules(cmd, &cfg)
	if err != nil {
		t.Fatalf("rules: %v", err)
	}
	if rules.ProcessAudio {
		t.Fatal("audio switch not honored")
	}
	if !rules.ProcessSubtitles {
		t.Fatal("subtitle switch should keep its config value")
	}
	if rules.Active() {
		t.Fatal("rules should be inactive with audio off and no subtitle rule")
	}
}

func TestScanDirectoryDefaultsToCwd(t *testing.T) {
	if got := scanDirectory(nil); got != "." {
		t.Fatalf("got %q", got)
	}
	if got := scanDirectory([]string{"/media"}); got != "/media" {
		t.Fatalf("got %q", got)
	}
}
