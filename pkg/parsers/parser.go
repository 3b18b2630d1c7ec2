package parsers

import (
	"context"
	"strings"
)

// Parser is the interface for extracting a final answer from model output
type Parser interface {
	// Parse extracts the final answer from model output
	Parse(ctx context.Context, response string) (string, error)
}

// BaseParser provides a default implementation that returns the response as-is
type BaseParser struct{}

// NewBaseParser creates a new base parser
func NewBaseParser() *BaseParser {
	return &BaseParser{}
}

// Parse returns the response with whitespace trimmed
func (p *BaseParser) Parse(ctx context.Context, response string) (string, error) {
	return strings.TrimSpace(response), nil
}
