package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quiz-forge/internal/domain"
	"quiz-forge/internal/repository/models"
	"quiz-forge/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxDocumentRepository implements domain.DocumentRepository using sqlx.
type sqlxDocumentRepository struct {
	db *sqlx.DB
}

func NewSQLXDocumentRepository(db *sqlx.DB) domain.DocumentRepository {
	return &sqlxDocumentRepository{db: db}
}

func toDomainDocument(m *models.Document, withContent bool) (*domain.Document, error) {
	doc := &domain.Document{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Title:     m.Title,
		WordCount: m.WordCount,
		CreatedAt: m.CreatedAt,
	}
	if withContent {
		doc.Content = m.Content
	}
	if m.Summary.Valid && m.Summary.String != "" {
		var s domain.DocumentSummary
		if err := json.Unmarshal([]byte(m.Summary.String), &s); err != nil {
			return nil, fmt.Errorf("failed to decode summary of document %s: %w", m.ID, err)
		}
		doc.Summary = &s
	}
	return doc, nil
}

func encodeSummary(s *domain.DocumentSummary) (sql.NullString, error) {
	if s == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return sql.NullString{}, err
	}
	return util.StringToNullString(string(b)), nil
}

// CreateDocument implements domain.DocumentRepository
func (r *sqlxDocumentRepository) CreateDocument(ctx context.Context, doc *domain.Document) error {
	exec := GetExecutor(ctx, r.db)
	if doc.ID == "" {
		doc.ID = util.NewULID()
	}
	doc.CreatedAt = time.Now()
	summary, err := encodeSummary(doc.Summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	query := exec.Rebind(`INSERT INTO documents (id, owner_id, title, content, summary, word_count, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if _, err := exec.ExecContext(ctx, query, doc.ID, doc.OwnerID, doc.Title, doc.Content, summary, doc.WordCount, doc.CreatedAt); err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// UpdateSummary implements domain.DocumentRepository
func (r *sqlxDocumentRepository) UpdateSummary(ctx context.Context, id string, summary *domain.DocumentSummary) error {
	exec := GetExecutor(ctx, r.db)
	encoded, err := encodeSummary(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	res, err := exec.ExecContext(ctx, exec.Rebind(`UPDATE documents SET summary = ? WHERE id = ?`), encoded, id)
	if err != nil {
		return fmt.Errorf("failed to update summary of document %s: %w", id, err)
	}
	return requireAffected(res)
}

// GetDocument implements domain.DocumentRepository. The content is included.
func (r *sqlxDocumentRepository) GetDocument(ctx context.Context, id string) (*domain.Document, error) {
	exec := GetExecutor(ctx, r.db)
	var m models.Document
	query := exec.Rebind(`SELECT
		id "id",
		owner_id "owner_id",
		title "title",
		content "content",
		summary "summary",
		word_count "word_count",
		created_at "created_at"
	FROM documents
	WHERE id = ?`)
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document %s: %w", id, err)
	}
	return toDomainDocument(&m, true)
}

// ListDocuments implements domain.DocumentRepository. Content is omitted.
func (r *sqlxDocumentRepository) ListDocuments(ctx context.Context, ownerID string) ([]*domain.Document, error) {
	exec := GetExecutor(ctx, r.db)
	var rows []models.Document
	query := exec.Rebind(`SELECT
		id "id",
		owner_id "owner_id",
		title "title",
		summary "summary",
		word_count "word_count",
		created_at "created_at"
	FROM documents
	WHERE owner_id = ?
	ORDER BY created_at DESC`)
	if err := exec.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	out := make([]*domain.Document, 0, len(rows))
	for i := range rows {
		doc, err := toDomainDocument(&rows[i], false)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}
