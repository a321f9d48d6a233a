package generator

import "context"

// Generator turns a retrieved transcript context plus a user question
// into a natural-language answer.
type Generator interface {
	Answer(ctx context.Context, question, transcriptContext string) (string, error)
}
