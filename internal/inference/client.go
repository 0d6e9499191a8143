// Package inference implements the slow path of the classifier pipeline:
// it delegates to a hosted generative model, walking a fixed, ordered
// fallback list of model identifiers, and sanitizes the free-form response
// into a normalized transaction.
package inference

import "context"

// Client is a minimal interface to a hosted generative endpoint. The model
// identifier is per-call so the adapter can walk its fallback list over a
// single connection.
type Client interface {
	Generate(ctx context.Context, modelID string, req GenerateRequest) (string, error)
}

// GenerateRequest is a single prompt, optionally paired with an audio
// payload for transcription-and-classification in one call.
type GenerateRequest struct {
	Prompt    string
	Audio     []byte
	AudioMIME string
}
