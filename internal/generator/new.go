package generator

import (
	"github.com/nguyentantai21042004/transcript-chat/internal/logger"
)

type implGenerator struct {
	apiKeys    []string
	currentKey int
	logger     logger.Logger
	model      string
}

// New creates a Generator that rotates through the supplied Gemini API keys.
func New(apiKeys []string, model string, log logger.Logger) Generator {
	return &implGenerator{
		apiKeys: apiKeys,
		logger:  log,
		model:   model,
	}
}
