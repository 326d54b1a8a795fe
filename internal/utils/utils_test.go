package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectScript(t *testing.T) {
	testCases := []struct {
		word     string
		expected Script
	}{
		{"молоко", ScriptRussian},
		{"Ёлка", ScriptRussian},
		{"ёж", ScriptRussian},
		{"cat", ScriptEnglish},
		{"CaT", ScriptEnglish},
		{"catкот", ScriptOther},
		{"кот1", ScriptOther},
		{"кот-пёс", ScriptOther},
		{"", ScriptOther},
		{"ї", ScriptOther},
	}
	for _, tc := range testCases {
		if got := DetectScript(tc.word); got != tc.expected {
			t.Errorf("DetectScript(%q) = %v; want %v", tc.word, got, tc.expected)
		}
	}
}

func TestParseScript(t *testing.T) {
	testCases := []struct {
		name     string
		expected Script
		wantErr  bool
	}{
		{"rus", ScriptRussian, false},
		{" ENG ", ScriptEnglish, false},
		{"", ScriptAny, false},
		{"any", ScriptAny, false},
		{"klingon", ScriptOther, true},
	}
	for _, tc := range testCases {
		got, err := ParseScript(tc.name)
		if (err != nil) != tc.wantErr || got != tc.expected {
			t.Errorf("ParseScript(%q) = %v, %v; want %v, error %v", tc.name, got, err, tc.expected, tc.wantErr)
		}
	}
	if !ScriptAny.Accepts("x1") || ScriptRussian.Accepts("cat") || !ScriptRussian.Accepts("кот") {
		t.Error("Accepts() disagrees with DetectScript")
	}
}

func TestIsValidInput(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		maxRunes    int
		expected    bool
	}{
		{"plain word", "молоко", 50, true},
		{"empty", "", 50, false},
		{"space inside", "два слова", 50, false},
		{"control char", "a\tb", 50, false},
		{"limit counts runes", "молоко", 6, true},
		{"over limit", "молоко", 5, false},
		{"no limit", "молоко", 0, true},
		{"invalid utf8", "\xff", 50, false},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			if got := IsValidInput(tc.input, tc.maxRunes); got != tc.expected {
				t.Errorf("IsValidInput(%q, %d) = %v; want %v", tc.input, tc.maxRunes, got, tc.expected)
			}
		})
	}
}

func TestNormalizeWord(t *testing.T) {
	decomposed := "\u0438\u0306"
	if got := NormalizeWord(" " + decomposed + "\n"); got != "\u0439" {
		t.Errorf("NormalizeWord(%q) = %q; want %q", decomposed, got, "\u0439")
	}
	if got := NormalizeWord("кот"); got != "кот" {
		t.Errorf("NormalizeWord(кот) = %q", got)
	}
}

func TestFoldCase(t *testing.T) {
	testCases := []struct {
		input, lower, corrected, restored string
	}{
		{"Малоко", "малоко", "молоко", "Молоко"},
		{"кот", "кот", "кит", "кит"},
		{"КОТ", "кот", "коты", "КОТы"},
		{"MiXeD", "mixed", "mix", "MiX"},
	}
	for _, tc := range testCases {
		lower, mask := FoldCase(tc.input)
		if lower != tc.lower {
			t.Errorf("FoldCase(%q) = %q; want %q", tc.input, lower, tc.lower)
		}
		if got := mask.Apply(tc.corrected); got != tc.restored {
			t.Errorf("Apply(%q) with mask of %q = %q; want %q", tc.corrected, tc.input, got, tc.restored)
		}
	}
}

func TestTOMLHelpers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "conf.toml")
	in := map[string]any{
		"search": map[string]any{"max_changes": 2, "replacements": true},
		"filter": map[string]any{"relative_threshold": 2.5, "absolute_threshold": 1},
		"data":   map[string]any{"script": "rus"},
	}
	if err := SaveTOMLFile(in, path); err != nil {
		t.Fatalf("SaveTOMLFile() error: %v", err)
	}
	if !FileExists(path) {
		t.Fatalf("SaveTOMLFile() did not create %s", path)
	}

	data, err := ParseTOMLWithRecovery(path)
	if err != nil {
		t.Fatalf("ParseTOMLWithRecovery() error: %v", err)
	}
	search, ok := ExtractSection(data, "search")
	if !ok {
		t.Fatal("search section missing")
	}
	if v, ok := ExtractInt64(search, "max_changes"); !ok || v != 2 {
		t.Errorf("max_changes = %v, %v; want 2", v, ok)
	}
	if v, ok := ExtractBool(search, "replacements"); !ok || !v {
		t.Errorf("replacements = %v, %v; want true", v, ok)
	}
	filter, _ := ExtractSection(data, "filter")
	if v, ok := ExtractFloat64(filter, "relative_threshold"); !ok || v != 2.5 {
		t.Errorf("relative_threshold = %v, %v; want 2.5", v, ok)
	}
	if v, ok := ExtractFloat64(filter, "absolute_threshold"); !ok || v != 1 {
		t.Errorf("integer absolute_threshold = %v, %v; want 1", v, ok)
	}
	d, _ := ExtractSection(data, "data")
	if v, ok := ExtractString(d, "script"); !ok || v != "rus" {
		t.Errorf("script = %q, %v; want rus", v, ok)
	}
	if _, ok := ExtractString(d, "missing"); ok {
		t.Error("ExtractString() found a missing key")
	}
}

func TestParseTOMLWithRecoveryBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("[search\nmax_changes = "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ParseTOMLWithRecovery(path); err == nil {
		t.Error("ParseTOMLWithRecovery() accepted a broken file")
	}
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	res := CheckDirStatus(dir)
	if res.Error != nil || !res.Exists || !res.Writable {
		t.Errorf("CheckDirStatus(%s) = %+v; want existing writable dir", dir, res)
	}
}
