package language

import (
	"reflect"
	"testing"
)

func TestCanonical(t *testing.T) {
	cases := map[string]string{
		"eng":     "eng",
		"en":      "eng",
		"English": "eng",
		"fre":     "fra",
		"fra":     "fra",
		"fr":      "fra",
		"ger":     "deu",
		"chi":     "zho",
		"":        "und",
		"  ":      "und",
		"und":     "und",
		"tlh":     "tlh", // unrecognized codes pass through
		"XYZ":     "xyz",
	}
	for input, want := range cases {
		if got := Canonical(input); got != want {
			t.Fatalf("Canonical(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeList(t *testing.T) {
	got := NormalizeList([]string{"EN", "eng", "french", "fre", "", "jpn"})
	want := []string{"eng", "fra", "jpn"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	if NormalizeList(nil) != nil {
		t.Fatal("nil input must stay nil")
	}
}
