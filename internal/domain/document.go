package domain

import (
	"context"
	"time"
)

// DocumentSummary is the model-produced overview of an uploaded document.
type DocumentSummary struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	KeyPoints  []string `json:"keyPoints"`
	TopicAreas []string `json:"topicAreas"`
	WordCount  int      `json:"wordCount"`
}

// Document is uploaded source material for question generation.
type Document struct {
	ID        string           `json:"id"`
	OwnerID   string           `json:"ownerId"`
	Title     string           `json:"title"`
	Content   string           `json:"content,omitempty"`
	Summary   *DocumentSummary `json:"summary,omitempty"`
	WordCount int              `json:"wordCount"`
	CreatedAt time.Time        `json:"createdAt"`
}

// TextExtractor turns an uploaded file into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}
