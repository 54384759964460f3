package terms

import "testing"

func TestNormalizeFoldsCaseAndWidth(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Photosynthesis", "photosynthesis"},
		{"ＧＯ", "go"},
		{"ｶﾀｶﾅ", "カタカナ"},
		{"光合作用", "光合作用"},
		{"Mixed ＣＡＳＥ", "mixed case"},
	}

	for _, tc := range cases {
		if got := Normalize(tc.in); got != tc.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeTrackedOffsets(t *testing.T) {
	// Full-width Ａ occupies 3 bytes raw but folds to a single byte.
	raw := "ＡB"
	normalized, offsets := NormalizeTracked(raw)

	if normalized != "ab" {
		t.Fatalf("normalized = %q, want %q", normalized, "ab")
	}
	if len(offsets) != len(normalized)+1 {
		t.Fatalf("offsets length = %d, want %d", len(offsets), len(normalized)+1)
	}
	if offsets[0] != 0 {
		t.Fatalf("offsets[0] = %d, want 0", offsets[0])
	}
	if offsets[1] != 3 {
		t.Fatalf("offsets[1] = %d, want 3", offsets[1])
	}
	if offsets[2] != len(raw) {
		t.Fatalf("offsets[%d] = %d, want %d", len(normalized), offsets[2], len(raw))
	}

	// A half-open span over the whole normalized string maps back to the
	// whole raw string.
	if got := raw[offsets[0]:offsets[2]]; got != raw {
		t.Fatalf("mapped span = %q, want %q", got, raw)
	}
}

func TestNormalizeTrackedCJKPassthrough(t *testing.T) {
	raw := "光合作用"
	normalized, offsets := NormalizeTracked(raw)

	if normalized != raw {
		t.Fatalf("normalized = %q, want %q", normalized, raw)
	}
	// Byte-for-byte identity mapping for unfolded runes.
	for i := 0; i < len(normalized); i += 3 {
		if offsets[i] != i {
			t.Fatalf("offsets[%d] = %d, want %d", i, offsets[i], i)
		}
	}
	if offsets[len(normalized)] != len(raw) {
		t.Fatalf("final offset = %d, want %d", offsets[len(normalized)], len(raw))
	}
}
