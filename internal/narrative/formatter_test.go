package narrative

import (
	"errors"
	"strings"
	"testing"

	"github.com/spacesedan/tweetmood/internal/emotion"
	"github.com/spacesedan/tweetmood/internal/summary"
)

func TestTemplatesCoverEveryLabel(t *testing.T) {
	t.Parallel()

	if err := checkTemplates(); err != nil {
		t.Fatalf("checkTemplates: %v", err)
	}
}

func TestFormatAISummary_Exact(t *testing.T) {
	t.Parallel()

	got := FormatAISummary(emotion.Joy, "A short recap.")
	want := "😊 This text radiates positive energy and happiness. The content suggests feelings of elation, excitement, or contentment.\n\n" +
		"📝 Content Summary: A short recap.\n\n" +
		"🎯 Detected Emotion: Joy - This classification is based on linguistic patterns, word choice, and emotional indicators found in the text."
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatFallback_Exact(t *testing.T) {
	t.Parallel()

	got := FormatFallback(emotion.Anger, summary.Excerpt{Content: "ugh, traffic", Note: "Full text analyzed"})
	want := "😠 Anger & Frustration Detected\n\n" +
		"🔍 Analysis: The text contains aggressive or frustrated language patterns indicating irritation, annoyance, or rage. The linguistic style suggests emotional tension or conflict.\n\n" +
		"📝 Content (Full text analyzed): ugh, traffic\n\n" +
		"💡 Key Indicators: Look for expressions of displeasure, criticism, confrontational language, or frustrated tone.\n\n" +
		"🎯 Final Classification: Anger - This emotion was identified through analysis of word choice, sentence structure, and contextual emotional markers."
	if got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestUnknownLabelUsesDefaults(t *testing.T) {
	t.Parallel()

	ai := FormatAISummary(emotion.Label(17), "s")
	if !strings.HasPrefix(ai, defaultInsight) {
		t.Fatalf("ai=%q", ai)
	}
	fb := FormatFallback(emotion.Label(-3), summary.Excerpt{Content: "c", Note: "n"})
	if !strings.HasPrefix(fb, defaultDetail.Description) || !strings.Contains(fb, "Final Classification: Unknown") {
		t.Fatalf("fb=%q", fb)
	}
}

func TestCompose_SelectsBranch(t *testing.T) {
	t.Parallel()

	text := "I am so happy today, everything is wonderful!"

	fb := Compose(emotion.Joy, text, summary.Result{Err: errors.New("summarizer down")})
	if !strings.Contains(fb, "Full text analyzed") || !strings.Contains(fb, text) {
		t.Fatalf("fallback=%q", fb)
	}

	ai := Compose(emotion.Joy, text, summary.Result{Text: "Happy day.", OK: true})
	if !strings.Contains(ai, "📝 Content Summary: Happy day.") || strings.Contains(ai, "Key Indicators") {
		t.Fatalf("ai=%q", ai)
	}
}
