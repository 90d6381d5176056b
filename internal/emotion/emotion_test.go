package emotion

import "testing"

func TestLabelOrder(t *testing.T) {
	t.Parallel()

	want := []string{"sadness", "joy", "love", "anger", "fear", "surprise"}
	for i, l := range All() {
		if l.String() != want[i] {
			t.Fatalf("Label(%d)=%q want %q", i, l.String(), want[i])
		}
	}
}

func TestTitle(t *testing.T) {
	t.Parallel()

	if got := Surprise.Title(); got != "Surprise" {
		t.Fatalf("Title=%q", got)
	}
	if got := Label(42).Title(); got != "Unknown" {
		t.Fatalf("Title=%q", got)
	}
}

func TestParseLabel(t *testing.T) {
	t.Parallel()

	if l, ok := ParseLabel(" Fear "); !ok || l != Fear {
		t.Fatalf("ParseLabel(Fear)=%v,%v", l, ok)
	}
	if l, ok := ParseLabel("LABEL_2"); !ok || l != Love {
		t.Fatalf("ParseLabel(LABEL_2)=%v,%v", l, ok)
	}
	if _, ok := ParseLabel("LABEL_9"); ok {
		t.Fatalf("LABEL_9 should not resolve")
	}
	if _, ok := ParseLabel("disgust"); ok {
		t.Fatalf("disgust should not resolve")
	}
}

func TestFromProbabilities_Argmax(t *testing.T) {
	t.Parallel()

	p, err := FromProbabilities([]float32{0.05, 0.7, 0.1, 0.05, 0.05, 0.05})
	if err != nil {
		t.Fatalf("FromProbabilities: %v", err)
	}
	if p.Label != Joy {
		t.Fatalf("Label=%v", p.Label)
	}
	if p.Confidence < 0.69 || p.Confidence > 0.71 {
		t.Fatalf("Confidence=%v", p.Confidence)
	}
}

func TestFromProbabilities_TieFirstIndexWins(t *testing.T) {
	t.Parallel()

	p, err := FromProbabilities([]float32{0.1, 0.1, 0.3, 0.3, 0.1, 0.1})
	if err != nil {
		t.Fatalf("FromProbabilities: %v", err)
	}
	if p.Label != Love {
		t.Fatalf("Label=%v", p.Label)
	}
}

func TestFromProbabilities_ClampsConfidence(t *testing.T) {
	t.Parallel()

	p, err := FromProbabilities([]float32{0, 0, 0, 0, 0, 1.2})
	if err != nil {
		t.Fatalf("FromProbabilities: %v", err)
	}
	if p.Label != Surprise || p.Confidence != 1 {
		t.Fatalf("prediction=%+v", p)
	}
}

func TestFromProbabilities_WrongLength(t *testing.T) {
	t.Parallel()

	if _, err := FromProbabilities([]float32{0.5, 0.5}); err == nil {
		t.Fatalf("expected error for short distribution")
	}
	if _, err := FromProbabilities(nil); err == nil {
		t.Fatalf("expected error for empty distribution")
	}
}
