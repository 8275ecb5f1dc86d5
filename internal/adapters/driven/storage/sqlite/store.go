package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	modernc "modernc.org/sqlite"

	"github.com/custodia-labs/newsagg/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/core/ports/driven"
)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// DatabaseFile is the database file name inside the data directory.
const DatabaseFile = "newsagg.db"

// foldFunc is the SQL function used for case-insensitive keyword matching.
// SQLite's own LIKE and lower() only fold ASCII letters.
const foldFunc = "newsagg_fold"

func init() {
	modernc.MustRegisterDeterministicScalarFunction(foldFunc, 1, foldCase)
}

// foldCase lower-cases its argument with Unicode rules, matching
// domain.ArticleFilter.Matches.
func foldCase(_ *modernc.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// Store is a unified SQLite-based storage that provides access to
// all store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.newsagg/data/newsagg.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".newsagg", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)

	// WAL lets readers proceed while ingestion writes
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ArticleStore returns an ArticleStore interface backed by this store.
func (s *Store) ArticleStore() driven.ArticleStore {
	return &articleStore{store: s}
}

// PreferenceStore returns a PreferenceStore interface backed by this store.
func (s *Store) PreferenceStore() driven.PreferenceStore {
	return &preferenceStore{store: s}
}

// RunStore returns a RunStore interface backed by this store.
func (s *Store) RunStore() driven.RunStore {
	return &runStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if err := s.applyMigration(version, string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// applyMigration executes one migration and records its version atomically.
func (s *Store) applyMigration(version int, content string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.Exec(content); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// ==================== Article Store ====================

// articleStore implements driven.ArticleStore.
type articleStore struct {
	store *Store
}

var _ driven.ArticleStore = (*articleStore)(nil)

const articleColumns = "id, title, content, author, source, category, published_at, created_at, updated_at"

// Upsert inserts the article or replaces every non-key field of the
// article with the same title. The row keeps its ID and created_at.
func (s *articleStore) Upsert(ctx context.Context, article *domain.Article) error {
	if article == nil || article.Title == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	err = tx.QueryRowContext(ctx, `
		INSERT INTO articles (title, content, author, source, category, published_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			content = excluded.content,
			author = excluded.author,
			source = excluded.source,
			category = excluded.category,
			published_at = excluded.published_at,
			updated_at = excluded.updated_at
		RETURNING id
	`, article.Title, article.Content, nullString(article.Author), article.Source, article.Category,
		article.PublishedAt.String(), now, now).Scan(&article.ID)
	if err != nil {
		return fmt.Errorf("upserting article: %w", err)
	}

	var createdAt sql.NullTime
	if err := tx.QueryRowContext(ctx, "SELECT created_at FROM articles WHERE id = ?", article.ID).Scan(&createdAt); err != nil {
		return fmt.Errorf("reading article timestamps: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing article: %w", err)
	}

	article.CreatedAt = now
	if createdAt.Valid {
		article.CreatedAt = createdAt.Time
	}
	article.UpdatedAt = now
	return nil
}

// Query returns one page of matching articles, newest insertion first.
// Count and page are read in one transaction so the metadata matches the data.
func (s *articleStore) Query(
	ctx context.Context,
	filter domain.ArticleFilter,
	page domain.PageRequest,
) (*domain.ArticlePage, error) {
	page = page.Normalised()
	where, args := buildWhere(filter)

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var total int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles"+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting articles: %w", err)
	}

	query := "SELECT " + articleColumns + " FROM articles" + where + " ORDER BY id DESC LIMIT ? OFFSET ?"
	rows, err := tx.QueryContext(ctx, query, append(args, domain.PageSize, page.Offset())...)
	if err != nil {
		return nil, fmt.Errorf("querying articles: %w", err)
	}
	defer rows.Close()

	items := make([]domain.Article, 0, domain.PageSize)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating articles: %w", err)
	}

	return domain.NewArticlePage(page, items, total), nil
}

// Get retrieves an article by ID.
func (s *articleStore) Get(ctx context.Context, id int64) (*domain.Article, error) {
	row := s.store.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE id = ?", id)
	article, err := scanArticle(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return article, nil
}

// Count returns the number of stored articles.
func (s *articleStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting articles: %w", err)
	}
	return n, nil
}

// buildWhere translates a filter into a WHERE clause and its arguments.
// Returns an empty clause for an empty filter.
func buildWhere(f domain.ArticleFilter) (string, []any) {
	var (
		clauses []string
		args    []any
	)

	if f.Keyword != "" {
		term := "%" + escapeLike(strings.ToLower(f.Keyword)) + "%"
		clauses = append(clauses, "("+foldFunc+"(title) LIKE ? ESCAPE '\\' OR "+foldFunc+"(content) LIKE ? ESCAPE '\\')")
		args = append(args, term, term)
	}
	if f.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, f.Category)
	}
	if f.Source != "" {
		clauses = append(clauses, "source = ?")
		args = append(args, f.Source)
	}
	if f.Date != nil {
		clauses = append(clauses, "published_at = ?")
		args = append(args, f.Date.String())
	}
	for _, in := range []struct {
		column string
		values []string
	}{
		{"source", f.Sources},
		{"category", f.Categories},
		{"author", f.Authors},
	} {
		if len(in.values) == 0 {
			continue
		}
		placeholders := make([]string, len(in.values))
		for i, v := range in.values {
			placeholders[i] = "?"
			args = append(args, v)
		}
		clauses = append(clauses, in.column+" IN ("+strings.Join(placeholders, ",")+")") //nolint:gosec // column names are fixed
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// escapeLike escapes LIKE wildcards so the keyword matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// ==================== Preference Store ====================

// preferenceStore implements driven.PreferenceStore.
type preferenceStore struct {
	store *Store
}

var _ driven.PreferenceStore = (*preferenceStore)(nil)

// Save creates or fully replaces the user's row.
func (s *preferenceStore) Save(ctx context.Context, pref *domain.UserPreference) error {
	if pref == nil || pref.UserID == "" {
		return domain.ErrInvalidInput
	}

	sources, err := json.Marshal(pref.PreferredSources)
	if err != nil {
		return fmt.Errorf("marshalling sources: %w", err)
	}
	categories, err := json.Marshal(pref.PreferredCategories)
	if err != nil {
		return fmt.Errorf("marshalling categories: %w", err)
	}
	authors, err := json.Marshal(pref.PreferredAuthors)
	if err != nil {
		return fmt.Errorf("marshalling authors: %w", err)
	}

	now := time.Now().UTC()
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_preferences (user_id, preferred_sources, preferred_categories, preferred_authors, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			preferred_sources = excluded.preferred_sources,
			preferred_categories = excluded.preferred_categories,
			preferred_authors = excluded.preferred_authors,
			updated_at = excluded.updated_at
	`, pref.UserID, string(sources), string(categories), string(authors), now, now)
	if err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}

	var createdAt sql.NullTime
	if err := tx.QueryRowContext(ctx, "SELECT created_at FROM user_preferences WHERE user_id = ?", pref.UserID).Scan(&createdAt); err != nil {
		return fmt.Errorf("reading preference timestamps: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing preferences: %w", err)
	}

	pref.CreatedAt = now
	if createdAt.Valid {
		pref.CreatedAt = createdAt.Time
	}
	pref.UpdatedAt = now
	return nil
}

// Get retrieves the user's row.
func (s *preferenceStore) Get(ctx context.Context, userID string) (*domain.UserPreference, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT user_id, preferred_sources, preferred_categories, preferred_authors, created_at, updated_at
		FROM user_preferences WHERE user_id = ?
	`, userID)

	var pref domain.UserPreference
	var sources, categories, authors string
	var createdAt, updatedAt sql.NullTime
	if err := row.Scan(&pref.UserID, &sources, &categories, &authors, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning preferences: %w", err)
	}

	for _, col := range []struct {
		raw string
		dst *[]string
	}{
		{sources, &pref.PreferredSources},
		{categories, &pref.PreferredCategories},
		{authors, &pref.PreferredAuthors},
	} {
		if col.raw == "" || col.raw == jsonNull {
			continue
		}
		if err := json.Unmarshal([]byte(col.raw), col.dst); err != nil {
			return nil, fmt.Errorf("unmarshaling preferences: %w", err)
		}
	}

	if createdAt.Valid {
		pref.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		pref.UpdatedAt = updatedAt.Time
	}
	return &pref, nil
}

// ==================== Run Store ====================

// runStore implements driven.RunStore.
type runStore struct {
	store *Store
}

var _ driven.RunStore = (*runStore)(nil)

// SaveRun stores a finished run.
func (s *runStore) SaveRun(ctx context.Context, run *domain.IngestionRun) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}

	providers, err := json.Marshal(run.Providers)
	if err != nil {
		return fmt.Errorf("marshalling providers: %w", err)
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO ingestion_runs (id, started_at, finished_at, providers, error)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			finished_at = excluded.finished_at,
			providers = excluded.providers,
			error = excluded.error
	`, run.ID, run.StartedAt.UTC(), run.FinishedAt.UTC(), string(providers), run.Error)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	return nil
}

// LatestRun returns the most recently started run.
func (s *runStore) LatestRun(ctx context.Context) (*domain.IngestionRun, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, providers, error
		FROM ingestion_runs ORDER BY started_at DESC LIMIT 1
	`)

	var run domain.IngestionRun
	var providers string
	var startedAt, finishedAt sql.NullTime
	if err := row.Scan(&run.ID, &startedAt, &finishedAt, &providers, &run.Error); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	if providers != "" && providers != jsonNull {
		if err := json.Unmarshal([]byte(providers), &run.Providers); err != nil {
			return nil, fmt.Errorf("unmarshaling providers: %w", err)
		}
	}
	if startedAt.Valid {
		run.StartedAt = startedAt.Time
	}
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}
	return &run, nil
}

// ==================== Helpers ====================

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*domain.Article, error) {
	var article domain.Article
	var author sql.NullString
	var publishedAt string
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&article.ID, &article.Title, &article.Content, &author, &article.Source,
		&article.Category, &publishedAt, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning article: %w", err)
	}

	date, err := domain.ParseDate(publishedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing published_at of article %d: %w", article.ID, err)
	}
	article.PublishedAt = date

	if author.Valid {
		article.Author = &author.String
	}
	if createdAt.Valid {
		article.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		article.UpdatedAt = updatedAt.Time
	}
	return &article, nil
}

// nullString converts an optional string to sql.NullString.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
