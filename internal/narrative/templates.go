package narrative

import (
	"fmt"

	"github.com/spacesedan/tweetmood/internal/emotion"
)

// Detail is the per-emotion commentary used when no AI summary is available.
type Detail struct {
	Description string
	Analysis    string
	Indicators  string
}

var insights = map[emotion.Label]string{
	emotion.Joy:      "😊 This text radiates positive energy and happiness. The content suggests feelings of elation, excitement, or contentment.",
	emotion.Sadness:  "😢 This text conveys melancholy and sorrow. The language indicates feelings of loss, disappointment, or emotional pain.",
	emotion.Love:     "❤️ This text expresses deep affection and care. The content shows warmth, attachment, or romantic/familial love.",
	emotion.Anger:    "😠 This text displays frustration and irritation. The language suggests feelings of annoyance, rage, or indignation.",
	emotion.Fear:     "😨 This text reveals anxiety and concern. The content indicates worry, apprehension, or feelings of being threatened.",
	emotion.Surprise: "😲 This text shows astonishment and unexpectedness. The language suggests shock, amazement, or sudden realization.",
}

const defaultInsight = "🤔 This text has been analyzed for emotional patterns and sentiment."

var details = map[emotion.Label]Detail{
	emotion.Joy: {
		Description: "😊 Joy & Happiness Detected",
		Analysis:    "The text contains language patterns associated with positive emotions, excitement, satisfaction, or celebration. Words and phrases indicate an uplifting, cheerful, or optimistic sentiment.",
		Indicators:  "Look for words expressing delight, enthusiasm, accomplishment, or positive anticipation.",
	},
	emotion.Sadness: {
		Description: "😢 Sadness & Melancholy Detected",
		Analysis:    "The text shows linguistic markers of sorrow, disappointment, or emotional distress. The language patterns suggest feelings of loss, regret, or emotional pain.",
		Indicators:  "Common themes include loss, longing, disappointment, or expressions of emotional hurt.",
	},
	emotion.Love: {
		Description: "❤️ Love & Affection Detected",
		Analysis:    "The text demonstrates warm, caring language patterns indicating deep emotional connection, affection, or romantic feelings. The content suggests strong positive attachment to someone or something.",
		Indicators:  "Language shows care, devotion, appreciation, or intimate emotional connection.",
	},
	emotion.Anger: {
		Description: "😠 Anger & Frustration Detected",
		Analysis:    "The text contains aggressive or frustrated language patterns indicating irritation, annoyance, or rage. The linguistic style suggests emotional tension or conflict.",
		Indicators:  "Look for expressions of displeasure, criticism, confrontational language, or frustrated tone.",
	},
	emotion.Fear: {
		Description: "😨 Fear & Anxiety Detected",
		Analysis:    "The text shows language patterns associated with worry, apprehension, or anxiety. The content suggests concerns about potential threats, uncertainty, or stressful situations.",
		Indicators:  "Common themes include worry, uncertainty, potential danger, or expressions of nervousness.",
	},
	emotion.Surprise: {
		Description: "😲 Surprise & Astonishment Detected",
		Analysis:    "The text contains language indicating unexpected events, sudden realizations, or astonishment. The linguistic patterns suggest reactions to unforeseen circumstances or remarkable discoveries.",
		Indicators:  "Look for expressions of amazement, shock, unexpected discoveries, or sudden changes.",
	},
}

var defaultDetail = Detail{
	Description: "🤔 Emotional Content Analyzed",
	Analysis:    "The text has been processed for emotional content and sentiment patterns.",
	Indicators:  "Various linguistic and contextual clues were analyzed.",
}

func init() {
	if err := checkTemplates(); err != nil {
		panic(err)
	}
}

// checkTemplates fails if any label lacks an insight or a detail entry.
func checkTemplates() error {
	for _, l := range emotion.All() {
		if _, ok := insights[l]; !ok {
			return fmt.Errorf("narrative: no insight for %s", l)
		}
		if _, ok := details[l]; !ok {
			return fmt.Errorf("narrative: no detail for %s", l)
		}
	}
	return nil
}

func insightFor(l emotion.Label) string {
	if s, ok := insights[l]; ok {
		return s
	}
	return defaultInsight
}

func detailFor(l emotion.Label) Detail {
	if d, ok := details[l]; ok {
		return d
	}
	return defaultDetail
}
