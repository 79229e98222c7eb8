// Package store persists harvest results and the stop-URL set in SQLite.
// The harvester core stays persistence-free; this is the caller side of that
// contract, used by the CLI to carry state across runs.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pevans/wpharvest"
)

// Custom errors for store operations
var (
	ErrSiteNotFound = errors.New("site not found")
	ErrDuplicateURL = errors.New("site with this URL already exists")
)

// Store manages harvested records, stop URLs, and the site registry using
// SQLite.
type Store struct {
	db *sql.DB
}

// Site represents a registered WordPress site.
type Site struct {
	SiteID    uuid.UUID `json:"site_id"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}

// StoredRecord is a harvested record with its storage metadata.
type StoredRecord struct {
	RecordID    uuid.UUID  `json:"record_id"`
	Site        string     `json:"site"`
	Term        string     `json:"term"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	Content     string     `json:"content"`
	PubDate     *time.Time `json:"pub_date,omitempty"`
	CollectedAt time.Time  `json:"collected_at"`
}

// New creates a store backed by the database at the given path.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the database tables if they don't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sites (
		site_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		url TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS records (
		record_id TEXT PRIMARY KEY,
		site TEXT NOT NULL,
		term TEXT NOT NULL,
		title TEXT NOT NULL,
		url TEXT NOT NULL UNIQUE,
		content TEXT NOT NULL,
		pub_date TEXT,
		collected_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS stops (
		url TEXT PRIMARY KEY
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRecords persists harvested records, skipping any whose URL is already
// stored. Returns the number of records actually inserted.
func (s *Store) SaveRecords(site, term string, records []wpharvest.HarvestRecord) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT OR IGNORE INTO records
		(record_id, site, term, title, url, content, pub_date, collected_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	inserted := 0
	now := time.Now().UTC().Format(time.RFC3339)
	for _, rec := range records {
		var pubDate *string
		if rec.PubDate != nil {
			formatted := rec.PubDate.UTC().Format(time.RFC3339)
			pubDate = &formatted
		}

		res, err := tx.Exec(query,
			uuid.New().String(), site, term,
			rec.Title, rec.URL, rec.ContentUnscrubbed,
			pubDate, now,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert record: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to count inserted rows: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, nil
}

// ListRecords returns stored records for a site, newest first. An empty site
// returns records for all sites. A limit of 0 means no limit.
func (s *Store) ListRecords(site string, limit int) ([]StoredRecord, error) {
	query := `
	SELECT record_id, site, term, title, url, content, pub_date, collected_at
	FROM records
	`
	args := []any{}
	if site != "" {
		query += " WHERE site = ?"
		args = append(args, site)
	}
	query += " ORDER BY collected_at DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []StoredRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

// scanRecord reads one row into a StoredRecord.
func scanRecord(rows *sql.Rows) (*StoredRecord, error) {
	var (
		rec         StoredRecord
		recordID    string
		pubDate     sql.NullString
		collectedAt string
	)

	err := rows.Scan(
		&recordID, &rec.Site, &rec.Term, &rec.Title,
		&rec.URL, &rec.Content, &pubDate, &collectedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}

	rec.RecordID, err = uuid.Parse(recordID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse record ID: %w", err)
	}

	if pubDate.Valid {
		t, err := time.Parse(time.RFC3339, pubDate.String)
		if err == nil {
			rec.PubDate = &t
		}
	}

	rec.CollectedAt, err = time.Parse(time.RFC3339, collectedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse collected_at: %w", err)
	}

	return &rec, nil
}

// LoadStops returns a stop set seeded with every persisted stop URL.
func (s *Store) LoadStops() (*wpharvest.StopSet, error) {
	rows, err := s.db.Query("SELECT url FROM stops")
	if err != nil {
		return nil, fmt.Errorf("failed to query stops: %w", err)
	}
	defer rows.Close()

	stops := wpharvest.NewStopSet()
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan stop URL: %w", err)
		}
		stops.Add(url)
	}
	return stops, rows.Err()
}

// SaveStops persists the stop set. URLs already stored are left alone.
func (s *Store) SaveStops(stops *wpharvest.StopSet) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, url := range stops.URLs() {
		if _, err := tx.Exec("INSERT OR IGNORE INTO stops (url) VALUES (?)", url); err != nil {
			return fmt.Errorf("failed to insert stop URL: %w", err)
		}
	}

	return tx.Commit()
}
