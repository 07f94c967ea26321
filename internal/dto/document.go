package dto

import (
	"time"

	"quiz-forge/internal/domain"
)

// CreateDocumentRequest stores pasted text as a document.
// @Description Request body for creating a text document
type CreateDocumentRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// DocumentResponse is a stored document; Content is empty in listings.
type DocumentResponse struct {
	ID        string                  `json:"id"`
	Title     string                  `json:"title"`
	Content   string                  `json:"content,omitempty"`
	Summary   *domain.DocumentSummary `json:"summary,omitempty"`
	WordCount int                     `json:"wordCount"`
	CreatedAt time.Time               `json:"createdAt"`
}

func NewDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		ID:        d.ID,
		Title:     d.Title,
		Content:   d.Content,
		Summary:   d.Summary,
		WordCount: d.WordCount,
		CreatedAt: d.CreatedAt,
	}
}
