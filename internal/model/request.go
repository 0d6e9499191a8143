package model

// Request carries everything the classifier pipeline needs for one user
// action. It is built per action and discarded after the pipeline yields a
// transaction or an error; the pipeline reads it but never mutates it.
type Request struct {
	// Text is the raw user utterance. Empty when Audio is set.
	Text string

	// Audio is an opaque recorded utterance, dispatched to the remote
	// model as-is. The rule engine cannot process audio.
	Audio     []byte
	AudioMIME string

	// Categories is the closed vocabulary the result must belong to,
	// as returned by the store's category listing.
	Categories []string

	// Rates maps currency codes to their value in the home currency
	// (BRL). Used only to let the model convert foreign-currency
	// mentions.
	Rates map[string]float64

	// History holds recent labeled records used as few-shot context to
	// bias the model toward the user's historical labeling style.
	History []HistoryEntry
}

// HistoryEntry is a prior labeled record included in the prompt.
type HistoryEntry struct {
	Description string
	Category    string
	Kind        TransactionKind
	Amount      float64
}
