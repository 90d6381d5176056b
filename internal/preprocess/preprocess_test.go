package preprocess

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// Shaped like tokenizer.to_json(): word_index is an embedded JSON string.
const kerasTokenizerJSON = `{
  "class_name": "Tokenizer",
  "config": {
    "num_words": 10,
    "filters": "!\"#$%&()*+,-./:;<=>?@[\\]^_` + "`" + `{|}~\t\n",
    "lower": true,
    "split": " ",
    "char_level": false,
    "oov_token": "<OOV>",
    "document_count": 3,
    "word_index": "{\"<OOV>\": 1, \"i\": 2, \"am\": 3, \"so\": 4, \"happy\": 5, \"today\": 6, \"everything\": 7, \"is\": 8, \"wonderful\": 9, \"rare\": 12}"
  }
}`

func mustParse(t *testing.T, doc string) *Vocabulary {
	t.Helper()
	v, err := ParseVocabulary([]byte(doc))
	if err != nil {
		t.Fatalf("ParseVocabulary: %v", err)
	}
	return v
}

func TestParseVocabulary_KerasExport(t *testing.T) {
	t.Parallel()

	v := mustParse(t, kerasTokenizerJSON)
	if v.Size() != 10 {
		t.Fatalf("Size=%d", v.Size())
	}

	got := v.TextToSequence("I am so happy today, everything is wonderful!")
	want := []int{2, 3, 4, 5, 6, 7, 8, 9}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TextToSequence=%v want %v", got, want)
	}
}

func TestTextToSequence_OOVAndNumWordsCap(t *testing.T) {
	t.Parallel()

	v := mustParse(t, kerasTokenizerJSON)
	// "zebra" is unknown, "rare" is beyond num_words; both become <OOV>.
	got := v.TextToSequence("zebra rare happy")
	want := []int{1, 1, 5}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TextToSequence=%v want %v", got, want)
	}
}

func TestTextToSequence_NoOOVDropsUnknown(t *testing.T) {
	t.Parallel()

	v := mustParse(t, `{"config": {"word_index": {"good": 1, "day": 2}, "lower": false}}`)
	got := v.TextToSequence("Good day good")
	want := []int{2, 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("TextToSequence=%v want %v", got, want)
	}
}

func TestWords_FiltersAndCollapsesSplits(t *testing.T) {
	t.Parallel()

	v := mustParse(t, kerasTokenizerJSON)
	got := v.Words("Wow!!  This...is\tGREAT")
	want := []string{"wow", "this", "is", "great"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Words=%v want %v", got, want)
	}
}

func TestParseVocabulary_Errors(t *testing.T) {
	t.Parallel()

	for name, doc := range map[string]string{
		"not json":        `{"config":`,
		"no index":        `{"config": {"num_words": 5}}`,
		"bad embedded":    `{"config": {"word_index": "{not json"}}`,
		"non numeric ids": `{"config": {"word_index": {"a": "one"}}}`,
	} {
		if _, err := ParseVocabulary([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadVocabulary_FromFile(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "tokenizer.json")
	if err := os.WriteFile(p, []byte(kerasTokenizerJSON), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	v, err := LoadVocabulary(p)
	if err != nil {
		t.Fatalf("LoadVocabulary: %v", err)
	}
	if v.Size() != 10 {
		t.Fatalf("Size=%d", v.Size())
	}

	if _, err := LoadVocabulary(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestPadSequence_PostPads(t *testing.T) {
	t.Parallel()

	got := PadSequence([]int{4, 5, 6}, 5)
	want := []int64{4, 5, 6, 0, 0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PadSequence=%v want %v", got, want)
	}
}

func TestPadSequence_TruncatesFromFront(t *testing.T) {
	t.Parallel()

	got := PadSequence([]int{1, 2, 3, 4, 5, 6}, 4)
	want := []int64{3, 4, 5, 6}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("PadSequence=%v want %v", got, want)
	}
}

func TestEncode_FixedWidth(t *testing.T) {
	t.Parallel()

	v := mustParse(t, kerasTokenizerJSON)
	for _, text := range []string{"", "happy", strings.Repeat("happy ", 80)} {
		batch := Encode(v, text)
		if len(batch) != 1 || len(batch[0]) != MAX_SEQUENCE_LENGTH {
			t.Fatalf("Encode(%q) shape=%dx%d", text, len(batch), len(batch[0]))
		}
	}

	empty := Encode(v, "")[0]
	for i, id := range empty {
		if id != PAD_VALUE {
			t.Fatalf("empty[%d]=%d", i, id)
		}
	}
}
