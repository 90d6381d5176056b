package preprocess

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

// DEFAULT_FILTERS is the Keras Tokenizer default filter set.
const DEFAULT_FILTERS = "!\"#$%&()*+,-./:;<=>?@[\\]^_`{|}~\t\n"

// Vocabulary is a word index exported from a Keras Tokenizer with
// tokenizer.to_json(). The tokenization policy (lower-casing, filters,
// split character, num_words cap, OOV token) comes from the artifact.
type Vocabulary struct {
	wordIndex map[string]int
	numWords  int
	oovIndex  int
	lower     bool
	filters   string
	split     string
	charLevel bool
}

func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}
	return ParseVocabulary(data)
}

func ParseVocabulary(data []byte) (*Vocabulary, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("vocabulary is not valid JSON")
	}

	root := gjson.ParseBytes(data)
	cfg := root.Get("config")
	if !cfg.Exists() {
		// bare config object without the class_name wrapper
		cfg = root
	}

	index := cfg.Get("word_index")
	if index.Type == gjson.String {
		// to_json() stores the index as an embedded JSON document
		if !gjson.Valid(index.Str) {
			return nil, errors.New("word_index is not valid JSON")
		}
		index = gjson.Parse(index.Str)
	}
	if !index.IsObject() {
		return nil, errors.New("vocabulary has no word_index object")
	}

	v := &Vocabulary{
		wordIndex: make(map[string]int),
		lower:     true,
		filters:   DEFAULT_FILTERS,
		split:     " ",
	}

	var parseErr error
	index.ForEach(func(key, value gjson.Result) bool {
		if value.Type != gjson.Number {
			parseErr = fmt.Errorf("word_index[%q] is not a number", key.String())
			return false
		}
		v.wordIndex[key.String()] = int(value.Int())
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	if r := cfg.Get("num_words"); r.Type == gjson.Number {
		v.numWords = int(r.Int())
	}
	if r := cfg.Get("lower"); r.Exists() {
		v.lower = r.Bool()
	}
	if r := cfg.Get("filters"); r.Type == gjson.String {
		v.filters = r.Str
	}
	if r := cfg.Get("split"); r.Type == gjson.String && r.Str != "" {
		v.split = r.Str
	}
	if r := cfg.Get("char_level"); r.Exists() {
		v.charLevel = r.Bool()
	}
	if r := cfg.Get("oov_token"); r.Type == gjson.String {
		if idx, ok := v.wordIndex[r.Str]; ok {
			v.oovIndex = idx
		}
	}

	return v, nil
}

func (v *Vocabulary) Size() int {
	return len(v.wordIndex)
}

// Words splits text the way the artifact's tokenizer does: optional
// lower-casing, every filter character replaced by the split string, then
// split with empty pieces dropped.
func (v *Vocabulary) Words(text string) []string {
	if v.lower {
		text = strings.ToLower(text)
	}

	if v.charLevel {
		words := make([]string, 0, len(text))
		for _, r := range text {
			words = append(words, string(r))
		}
		return words
	}

	if v.filters != "" {
		var b strings.Builder
		b.Grow(len(text))
		for _, r := range text {
			if strings.ContainsRune(v.filters, r) {
				b.WriteString(v.split)
				continue
			}
			b.WriteRune(r)
		}
		text = b.String()
	}

	pieces := strings.Split(text, v.split)
	words := pieces[:0]
	for _, p := range pieces {
		if p != "" {
			words = append(words, p)
		}
	}
	return words
}

// TextToSequence maps text to word ids. Unknown words, and ids at or above
// num_words, become the OOV id when the artifact defines one and are dropped
// otherwise.
func (v *Vocabulary) TextToSequence(text string) []int {
	words := v.Words(text)
	seq := make([]int, 0, len(words))
	for _, w := range words {
		idx, ok := v.wordIndex[w]
		switch {
		case ok && (v.numWords == 0 || idx < v.numWords):
			seq = append(seq, idx)
		case v.oovIndex > 0:
			seq = append(seq, v.oovIndex)
		}
	}
	return seq
}
