// Package store persists completed analyses in SQLite for the history
// and stats views. The engine itself never touches it; persistence is
// strictly a boundary concern of the CLI and server.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	apperrors "resumelens/internal/errors"
	"resumelens/internal/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	role TEXT NOT NULL,
	category TEXT NOT NULL,
	ats_score INTEGER NOT NULL,
	keyword_match_score REAL NOT NULL,
	format_score INTEGER NOT NULL,
	section_score INTEGER NOT NULL,
	missing_skills TEXT NOT NULL DEFAULT '[]',
	suggestions TEXT NOT NULL DEFAULT '[]',
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);
CREATE INDEX IF NOT EXISTS idx_analyses_created_at ON analyses(created_at);
CREATE INDEX IF NOT EXISTS idx_analyses_category ON analyses(category);
`

// highScoreFloor is the ATS score at or above which an analysis counts
// as high scoring in the stats view.
const highScoreFloor = 70

// Store wraps the SQLite database holding analysis history.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, apperrors.NewStoreError(apperrors.ErrCodeStoreFailed,
			"storage path is empty", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperrors.NewStoreError(apperrors.ErrCodeStoreFailed,
			fmt.Sprintf("cannot create storage directory for %s", path), err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, apperrors.NewStoreError(apperrors.ErrCodeStoreFailed,
			fmt.Sprintf("cannot open database %s", path), err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, apperrors.NewStoreError(apperrors.ErrCodeStoreFailed,
			"cannot initialize database schema", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection is still usable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return apperrors.NewStoreError(apperrors.ErrCodeStoreFailed,
			"database is not reachable", err)
	}
	return nil
}

// SaveAnalysis records one completed analysis and returns its row id.
func (s *Store) SaveAnalysis(ctx context.Context, result types.AnalysisResult) (int64, error) {
	missing, err := json.Marshal(result.KeywordMatch.MissingSkills)
	if err != nil {
		return 0, apperrors.NewStoreError(apperrors.ErrCodeStoreFailed,
			"cannot encode missing skills", err)
	}
	suggestions, err := json.Marshal(flattenSuggestions(result.Suggestions))
	if err != nil {
		return 0, apperrors.NewStoreError(apperrors.ErrCodeStoreFailed,
			"cannot encode suggestions", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO analyses
			(role, category, ats_score, keyword_match_score, format_score, section_score, missing_skills, suggestions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, result.Role, result.Category, result.ATSScore, result.KeywordMatch.Score,
		result.FormatScore, result.SectionScore, string(missing), string(suggestions))
	if err != nil {
		return 0, apperrors.NewStoreError(apperrors.ErrCodeStoreFailed,
			"cannot save analysis", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperrors.NewStoreError(apperrors.ErrCodeStoreFailed,
			"cannot read inserted row id", err)
	}
	return id, nil
}

// ListRecent returns the newest analyses, most recent first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]types.AnalysisRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, role, category, ats_score, keyword_match_score, format_score, section_score,
			missing_skills, suggestions, created_at
		FROM analyses
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, apperrors.NewStoreError(apperrors.ErrCodeStoreFailed,
			"cannot query analysis history", err)
	}
	defer rows.Close()

	var records []types.AnalysisRecord
	for rows.Next() {
		var (
			rec             types.AnalysisRecord
			missingJSON     string
			suggestionsJSON string
		)
		if err := rows.Scan(&rec.ID, &rec.Role, &rec.Category, &rec.ATSScore,
			&rec.KeywordScore, &rec.FormatScore, &rec.SectionScore,
			&missingJSON, &suggestionsJSON, &rec.CreatedAt); err != nil {
			return nil, apperrors.NewStoreError(apperrors.ErrCodeStoreFailed,
				"cannot scan analysis row", err)
		}
		if err := json.Unmarshal([]byte(missingJSON), &rec.MissingSkills); err != nil {
			rec.MissingSkills = nil
		}
		if err := json.Unmarshal([]byte(suggestionsJSON), &rec.Suggestions); err != nil {
			rec.Suggestions = nil
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewStoreError(apperrors.ErrCodeStoreFailed,
			"error iterating analysis history", err)
	}
	return records, nil
}

// Stats aggregates the persisted analyses.
func (s *Store) Stats(ctx context.Context) (types.StoreStats, error) {
	stats := types.StoreStats{ByCategory: make(map[string]int64)}

	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COALESCE(AVG(ats_score), 0),
			COALESCE(SUM(CASE WHEN ats_score >= ? THEN 1 ELSE 0 END), 0)
		FROM analyses
	`, highScoreFloor)
	if err := row.Scan(&stats.TotalAnalyses, &stats.AverageATSScore, &stats.HighScoring); err != nil {
		return stats, apperrors.NewStoreError(apperrors.ErrCodeStoreFailed,
			"cannot compute statistics", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT category, COUNT(*) FROM analyses GROUP BY category
	`)
	if err != nil {
		return stats, apperrors.NewStoreError(apperrors.ErrCodeStoreFailed,
			"cannot compute category statistics", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			category string
			count    int64
		)
		if err := rows.Scan(&category, &count); err != nil {
			return stats, apperrors.NewStoreError(apperrors.ErrCodeStoreFailed,
				"cannot scan category statistics", err)
		}
		stats.ByCategory[category] = count
	}
	if err := rows.Err(); err != nil {
		return stats, apperrors.NewStoreError(apperrors.ErrCodeStoreFailed,
			"error iterating category statistics", err)
	}
	return stats, nil
}

// flattenSuggestions folds the per-category map into one list in the
// fixed category order, so the persisted form is deterministic.
func flattenSuggestions(grouped map[types.SuggestionCategory][]string) []string {
	out := make([]string, 0)
	for _, cat := range types.SuggestionCategories {
		out = append(out, grouped[cat]...)
	}
	return out
}
