package narrative

import (
	"github.com/spacesedan/tweetmood/internal/emotion"
	"github.com/spacesedan/tweetmood/internal/summary"
)

// Compose renders the report for a classified text. A successful AI summary
// selects the insight template; anything else gets the rule-based report.
func Compose(label emotion.Label, text string, res summary.Result) string {
	if res.OK {
		return FormatAISummary(label, res.Text)
	}
	return FormatFallback(label, summary.Fallback(text))
}

func FormatAISummary(label emotion.Label, aiSummary string) string {
	return insightFor(label) + "\n\n" +
		"📝 Content Summary: " + aiSummary + "\n\n" +
		"🎯 Detected Emotion: " + label.Title() +
		" - This classification is based on linguistic patterns, word choice, and emotional indicators found in the text."
}

func FormatFallback(label emotion.Label, excerpt summary.Excerpt) string {
	d := detailFor(label)
	return d.Description + "\n\n" +
		"🔍 Analysis: " + d.Analysis + "\n\n" +
		"📝 Content (" + excerpt.Note + "): " + excerpt.Content + "\n\n" +
		"💡 Key Indicators: " + d.Indicators + "\n\n" +
		"🎯 Final Classification: " + label.Title() +
		" - This emotion was identified through analysis of word choice, sentence structure, and contextual emotional markers."
}
