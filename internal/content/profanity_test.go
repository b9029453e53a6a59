package content_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognitus/cognitus/internal/content"
)

func TestBlacklistLoaderCombinesSets(t *testing.T) {
	loader := content.NewBlacklistLoader(content.BlacklistConfig{
		DefaultWords: []string{"bad", "worse"},
		CustomWords:  []string{"custom_bad"},
	})

	for _, word := range []string{"bad", "worse", "custom_bad"} {
		if !loader.IsBlacklisted(word) {
			t.Errorf("IsBlacklisted(%q) = false, expected true", word)
		}
	}
	if loader.IsBlacklisted("fine") {
		t.Error("IsBlacklisted(\"fine\") = true, expected false")
	}
}

func TestBlacklistLoaderCaseSensitivity(t *testing.T) {
	loader := content.NewBlacklistLoader(content.BlacklistConfig{
		DefaultWords:  []string{"Bad"},
		CaseSensitive: true,
	})
	if !loader.IsBlacklisted("Bad") {
		t.Error("IsBlacklisted(\"Bad\") = false, expected true")
	}
	if loader.IsBlacklisted("bad") {
		t.Error("IsBlacklisted(\"bad\") = true, expected false for case-sensitive loader")
	}

	insensitive := content.NewBlacklistLoader(content.BlacklistConfig{DefaultWords: []string{"Bad"}})
	if !insensitive.IsBlacklisted("BAD") {
		t.Error("IsBlacklisted(\"BAD\") = false, expected true for case-insensitive loader")
	}
}

func TestBlacklistLoaderAddRemove(t *testing.T) {
	loader := content.NewBlacklistLoader(content.BlacklistConfig{DefaultWords: []string{"bad"}})

	loader.AddWords("new_bad")
	if !loader.IsBlacklisted("new_bad") {
		t.Fatal("added word not blacklisted")
	}

	loader.RemoveWords("new_bad")
	if loader.IsBlacklisted("new_bad") {
		t.Fatal("removed word still blacklisted")
	}

	loader.RemoveWords("bad")
	if !loader.IsBlacklisted("bad") {
		t.Fatal("default word removed, expected it to stay blacklisted")
	}
}

func TestBlacklistLoaderLoadFromFile(t *testing.T) {
	testCases := []struct {
		name     string
		fileName string
		payload  string
		expected []string
	}{
		{
			name:     "text lines",
			fileName: "words.txt",
			payload:  "alpha\n\n  beta  \n",
			expected: []string{"alpha", "beta"},
		},
		{
			name:     "json array",
			fileName: "words.json",
			payload:  `["gamma", "delta"]`,
			expected: []string{"gamma", "delta"},
		},
		{
			name:     "yaml list",
			fileName: "words.yaml",
			payload:  "- epsilon\n- zeta\n",
			expected: []string{"epsilon", "zeta"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			filePath := filepath.Join(t.TempDir(), testCase.fileName)
			if writeError := os.WriteFile(filePath, []byte(testCase.payload), 0o644); writeError != nil {
				t.Fatalf("write blacklist file: %v", writeError)
			}

			loader := content.NewBlacklistLoader(content.DefaultBlacklistConfig())
			if loadError := loader.LoadFromFile(filePath); loadError != nil {
				t.Fatalf("LoadFromFile error: %v", loadError)
			}
			for _, word := range testCase.expected {
				if !loader.IsBlacklisted(word) {
					t.Errorf("IsBlacklisted(%q) = false after loading %s", word, testCase.fileName)
				}
			}
		})
	}
}

func TestBlacklistLoaderLoadMissingFile(t *testing.T) {
	loader := content.NewBlacklistLoader(content.DefaultBlacklistConfig())
	loadError := loader.LoadFromFile(filepath.Join(t.TempDir(), "absent.txt"))
	if loadError == nil {
		t.Fatal("LoadFromFile succeeded for a missing file")
	}
	if !strings.Contains(loadError.Error(), "read blacklist file") {
		t.Errorf("unexpected error: %v", loadError)
	}
}

func TestReplaceProfanity(t *testing.T) {
	replacer := content.NewProfanityReplacer(
		content.BlacklistConfig{DefaultWords: []string{"bad", "worse"}},
		content.ReplacementConfig{
			ReplacementCharacter: "*",
			PreserveLength:       true,
			WholeWordsOnly:       true,
			CustomReplacements:   map[string]string{"bad": "good"},
		},
	)

	cleaned, statistics := replacer.ReplaceProfanity("This is bad and worse!")
	if cleaned != "This is good and *****!" {
		t.Fatalf("ReplaceProfanity = %q, expected %q", cleaned, "This is good and *****!")
	}
	if statistics["bad"] != 1 || statistics["worse"] != 1 {
		t.Errorf("statistics = %v, expected one replacement per word", statistics)
	}
}

func TestReplaceProfanityPreservesLength(t *testing.T) {
	replacer := content.NewProfanityReplacer(
		content.BlacklistConfig{DefaultWords: []string{"bad"}},
		content.DefaultReplacementConfig(),
	)
	cleaned, _ := replacer.ReplaceProfanity("This is bad!")
	if cleaned != "This is ***!" {
		t.Fatalf("ReplaceProfanity = %q, expected %q", cleaned, "This is ***!")
	}
}

func TestReplaceProfanityWholeWordsOnly(t *testing.T) {
	replacer := content.NewProfanityReplacer(
		content.BlacklistConfig{DefaultWords: []string{"bad"}},
		content.DefaultReplacementConfig(),
	)
	cleaned, statistics := replacer.ReplaceProfanity("badword is not bad")
	if cleaned != "badword is not ***" {
		t.Fatalf("ReplaceProfanity = %q, expected %q", cleaned, "badword is not ***")
	}
	if statistics["bad"] != 1 {
		t.Errorf("statistics[bad] = %d, expected 1", statistics["bad"])
	}
}

func TestReplaceProfanityMatchesAnyCase(t *testing.T) {
	replacer := content.NewProfanityReplacer(
		content.BlacklistConfig{DefaultWords: []string{"bad"}},
		content.DefaultReplacementConfig(),
	)
	cleaned, _ := replacer.ReplaceProfanity("BAD news")
	if cleaned != "*** news" {
		t.Fatalf("ReplaceProfanity = %q, expected %q", cleaned, "*** news")
	}
}
