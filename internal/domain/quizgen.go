package domain

import "context"

// QuizGenerationService produces raw quiz text from a language model.
// The returned text is unparsed model output.
type QuizGenerationService interface {
	GenerateRaw(ctx context.Context, req GenerationRequest) (string, error)

	// GenerateStream calls onChunk with the whole buffer received so far
	// every time a chunk arrives, and returns the complete output.
	GenerateStream(ctx context.Context, req GenerationRequest, onChunk func(buffer string)) (string, error)
}
