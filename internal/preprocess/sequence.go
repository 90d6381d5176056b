package preprocess

// MAX_SEQUENCE_LENGTH is the input width the classifier was trained with.
const MAX_SEQUENCE_LENGTH = 50

const PAD_VALUE = 0

type Tokenizer interface {
	TextToSequence(text string) []int
}

// PadSequence fits ids to exactly maxLen positions. Short sequences are
// padded with zeros after the real tokens; long ones keep their last maxLen
// ids, matching Keras pad_sequences(padding="post") with default truncation.
func PadSequence(ids []int, maxLen int) []int64 {
	out := make([]int64, maxLen)
	if len(ids) > maxLen {
		ids = ids[len(ids)-maxLen:]
	}
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}

// Encode tokenizes text and returns a single-row batch of width
// MAX_SEQUENCE_LENGTH.
func Encode(tok Tokenizer, text string) [][]int64 {
	return [][]int64{PadSequence(tok.TextToSequence(text), MAX_SEQUENCE_LENGTH)}
}
