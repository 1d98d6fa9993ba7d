package wordindex

import (
	"sort"
	"testing"
)

func TestExtractWordsFiltersByLength(t *testing.T) {
	words := extractWords("a cat sits near a big doghouse")
	for _, w := range words {
		n := len([]rune(w))
		if n < minWordLen || n > maxWordLen {
			t.Fatalf("extractWords kept %q of length %d, outside [%d,%d]", w, n, minWordLen, maxWordLen)
		}
	}
	// "doghouse" (8) and "sits" (4) should both survive; "a", "cat", "big" should not.
	has := func(target string) bool {
		for _, w := range words {
			if w == target {
				return true
			}
		}
		return false
	}
	if !has("doghouse") || !has("sits") {
		t.Fatalf("expected doghouse and sits in %v", words)
	}
	if has("cat") || has("big") || has("a") {
		t.Fatalf("short words leaked into %v", words)
	}
}

func TestExtractWordsSorted(t *testing.T) {
	words := extractWords("zebra apple mango")
	if !sort.StringsAreSorted(words) {
		t.Fatalf("extractWords did not return a sorted slice: %v", words)
	}
}

func TestExpandPrefixesLengthFour(t *testing.T) {
	got := expandPrefixes("fish")
	want := []string{"fish"}
	if len(got) != len(want) || got[0] != want[0] {
		t.Fatalf("length-4 word should only emit itself, got %v", got)
	}
}

func TestExpandPrefixesLengthFive(t *testing.T) {
	got := expandPrefixes("fishy")
	want := []string{"fish*", "fishy"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestExpandPrefixesLongerWord(t *testing.T) {
	got := expandPrefixes("brownish") // length 8
	want := []string{"brow*", "brown*", "browni*", "brownis*", "brownish"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNormalizeCaseFoldAndLower(t *testing.T) {
	a := normalize("QUICK")
	b := normalize("quick")
	if a != b {
		t.Fatalf("normalize should be case-insensitive: %q != %q", a, b)
	}
}

func TestNormalizePreservesAsterisk(t *testing.T) {
	n := normalize("QUIC*")
	if n != "quic*" {
		t.Fatalf("normalize(%q) = %q, want %q", "QUIC*", n, "quic*")
	}
}

func TestQueryMatchesBuildForExactWord(t *testing.T) {
	k6 := []byte("0123456789abcdef")
	plaintext := []byte("The quick brown fox jumps")

	tags := Build(plaintext, k6)
	exact := Query("quick", k6)

	if !containsString(tags, exact) {
		t.Fatal("exact-word query did not match the built index")
	}
}

func TestQueryMatchesValidPrefix(t *testing.T) {
	k6 := []byte("0123456789abcdef")
	plaintext := []byte("The quick brown fox jumps")

	tags := Build(plaintext, k6)

	if !containsString(tags, Query("quic*", k6)) {
		t.Fatal(`"quic*" should match "quick"`)
	}
}

func TestQueryRejectsUndersizedPrefix(t *testing.T) {
	k6 := []byte("0123456789abcdef")
	plaintext := []byte("The quick brown fox jumps")

	tags := Build(plaintext, k6)

	if containsString(tags, Query("qui*", k6)) {
		t.Fatal(`"qui*" is below the minimum prefix length and must not match`)
	}
}

func TestQueryRejectsWordNotPresent(t *testing.T) {
	k6 := []byte("0123456789abcdef")
	plaintext := []byte("The quick brown fox jumps")

	tags := Build(plaintext, k6)

	if containsString(tags, Query("jumped", k6)) {
		t.Fatal(`"jumped" never appeared verbatim and must not match`)
	}
}

func TestBuildEmptyForInvalidUTF8(t *testing.T) {
	k6 := []byte("0123456789abcdef")
	invalid := []byte{0xff, 0xfe, 0xfd, 0x00, 0x01, 0x02, 0x03, 0x04,
		0x05, 0x06, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c,
		0x0d, 0x0e, 0x0f, 0x10, 0x11, 0x12, 0x13, 0x14,
		0x15, 0x16, 0x17, 0x18, 0x19, 0x1a, 0x1b, 0x1c}

	if tags := Build(invalid, k6); tags != nil {
		t.Fatalf("expected nil token set for invalid UTF-8, got %v", tags)
	}
}

func TestBuildTokensAreWellFormedHex(t *testing.T) {
	k6 := []byte("0123456789abcdef")
	tags := Build([]byte("The quick brown fox jumps over lazy dogs"), k6)

	seen := make(map[string]bool)
	for _, tag := range tags {
		if len(tag) != 64 {
			t.Fatalf("tag %q is not 64 hex chars", tag)
		}
		for _, c := range tag {
			if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
				t.Fatalf("tag %q contains non-lowercase-hex character %q", tag, c)
			}
		}
		if seen[tag] {
			t.Fatalf("duplicate tag %q in token set", tag)
		}
		seen[tag] = true
	}
}

func containsString(xs []string, target string) bool {
	for _, x := range xs {
		if x == target {
			return true
		}
	}
	return false
}
