package emotion

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label is a class index of the emotion classifier. The ordering is the
// class-index convention the classifier was trained with and must not change.
type Label int

const (
	Sadness Label = iota
	Joy
	Love
	Anger
	Fear
	Surprise
)

const LABEL_COUNT = 6

var labelNames = [LABEL_COUNT]string{
	Sadness:  "sadness",
	Joy:      "joy",
	Love:     "love",
	Anger:    "anger",
	Fear:     "fear",
	Surprise: "surprise",
}

var titleCaser = cases.Title(language.English)

// All returns every label in class-index order.
func All() []Label {
	labels := make([]Label, LABEL_COUNT)
	for i := range labels {
		labels[i] = Label(i)
	}
	return labels
}

func (l Label) Valid() bool {
	return l >= 0 && int(l) < LABEL_COUNT
}

func (l Label) String() string {
	if !l.Valid() {
		return "unknown"
	}
	return labelNames[l]
}

// Title returns the label name title-cased, e.g. "Sadness".
func (l Label) Title() string {
	return titleCaser.String(l.String())
}

// ParseLabel resolves a label name case-insensitively. Model configs
// sometimes spell labels as "LABEL_3"; those resolve by index.
func ParseLabel(name string) (Label, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, known := range labelNames {
		if n == known {
			return Label(i), true
		}
	}

	if idx, ok := strings.CutPrefix(n, "label_"); ok && len(idx) == 1 {
		l := Label(idx[0] - '0')
		if l.Valid() {
			return l, true
		}
	}

	return Label(-1), false
}
