package session

// TruncateHistory bounds the history handed to the generator, based on token
// and message limits. It applies the message limit first, then the token
// limit, removing oldest messages as needed. The durable log is unaffected;
// only the generator's view is truncated.
func TruncateHistory(history []Message, tokenLimit, messageLimit int) []Message {
	if len(history) == 0 {
		return history
	}

	// First, apply message limit
	if len(history) > messageLimit {
		history = history[len(history)-messageLimit:]
	}

	// Then, apply token limit
	totalTokens := 0
	for _, msg := range history {
		totalTokens += msg.TokenCount
	}

	// Remove oldest messages until within token limit
	for totalTokens > tokenLimit && len(history) > 0 {
		totalTokens -= history[0].TokenCount
		history = history[1:]
	}

	return history
}
