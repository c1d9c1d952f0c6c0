package repository

import (
	"database/sql"

	"github.com/sharmanirmal/social-plugin/internal/model"
)

// ContextRepository reads and writes the generation context: trends fetched by
// the ingestion binary and source documents supplied by external readers.
type ContextRepository struct {
	db *sql.DB
}

func NewContextRepository(db *sql.DB) *ContextRepository {
	return &ContextRepository{db: db}
}

func (r *ContextRepository) SaveTrend(trend *model.Trend) error {
	return r.db.QueryRow(`
		INSERT INTO trends(source, title, summary, url, author, relevance_score, date)
		VALUES($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, trend.Source, trend.Title, nullable(trend.Summary), nullable(trend.URL),
		nullable(trend.Author), trend.RelevanceScore, trend.Date).Scan(&trend.ID)
}

// GetTrendsForDay returns the trends fetched on the given ISO date, highest
// relevance first.
func (r *ContextRepository) GetTrendsForDay(date string, limit int) ([]model.Trend, error) {
	rows, err := r.db.Query(`
		SELECT id, source, title, summary, url, author, relevance_score, fetched_at, date
		FROM trends
		WHERE date = $1
		ORDER BY relevance_score DESC NULLS LAST
		LIMIT $2
	`, date, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trends []model.Trend
	for rows.Next() {
		var t model.Trend
		var summary, url, author sql.NullString
		var score sql.NullFloat64
		if err := rows.Scan(&t.ID, &t.Source, &t.Title, &summary, &url, &author, &score, &t.FetchedAt, &t.Date); err != nil {
			return nil, err
		}
		t.Summary = summary.String
		t.URL = url.String
		t.Author = author.String
		t.RelevanceScore = score.Float64
		trends = append(trends, t)
	}
	return trends, rows.Err()
}

func (r *ContextRepository) SaveSourceDocument(doc *model.SourceDocument) error {
	return r.db.QueryRow(`
		INSERT INTO source_documents(source_type, source_path, title, content)
		VALUES($1, $2, $3, $4)
		RETURNING id
	`, doc.SourceType, doc.SourcePath, nullable(doc.Title), nullable(doc.Content)).Scan(&doc.ID)
}

// GetRecentSourceDocuments returns documents fetched within the freshness window.
func (r *ContextRepository) GetRecentSourceDocuments(hours int) ([]model.SourceDocument, error) {
	rows, err := r.db.Query(`
		SELECT id, source_type, source_path, title, content, fetched_at
		FROM source_documents
		WHERE fetched_at > now() - make_interval(hours => $1)
		ORDER BY fetched_at DESC
	`, hours)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []model.SourceDocument
	for rows.Next() {
		var d model.SourceDocument
		var title, content sql.NullString
		if err := rows.Scan(&d.ID, &d.SourceType, &d.SourcePath, &title, &content, &d.FetchedAt); err != nil {
			return nil, err
		}
		d.Title = title.String
		d.Content = content.String
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
