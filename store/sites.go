package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CreateSite registers a new site. Returns ErrDuplicateURL if a site with
// the same URL already exists.
func (s *Store) CreateSite(name, url string) (*Site, error) {
	site := &Site{
		SiteID:    uuid.New(),
		Name:      name,
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}

	query := "INSERT INTO sites (site_id, name, url, created_at) VALUES (?, ?, ?, ?)"
	_, err := s.db.Exec(query,
		site.SiteID.String(), site.Name, site.URL,
		site.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrDuplicateURL
		}
		return nil, fmt.Errorf("failed to create site: %w", err)
	}

	return site, nil
}

// GetSite retrieves a site by ID. Returns ErrSiteNotFound when no site has
// that ID.
func (s *Store) GetSite(siteID uuid.UUID) (*Site, error) {
	query := "SELECT site_id, name, url, created_at FROM sites WHERE site_id = ?"
	row := s.db.QueryRow(query, siteID.String())

	site, err := scanSite(row)
	if err == sql.ErrNoRows {
		return nil, ErrSiteNotFound
	}
	if err != nil {
		return nil, err
	}
	return site, nil
}

// ListSites returns all registered sites ordered by name.
func (s *Store) ListSites() ([]Site, error) {
	rows, err := s.db.Query("SELECT site_id, name, url, created_at FROM sites ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query sites: %w", err)
	}
	defer rows.Close()

	var sites []Site
	for rows.Next() {
		site, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		sites = append(sites, *site)
	}
	return sites, rows.Err()
}

// DeleteSite removes a site by ID. Returns ErrSiteNotFound when no site has
// that ID.
func (s *Store) DeleteSite(siteID uuid.UUID) error {
	res, err := s.db.Exec("DELETE FROM sites WHERE site_id = ?", siteID.String())
	if err != nil {
		return fmt.Errorf("failed to delete site: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to count deleted rows: %w", err)
	}
	if n == 0 {
		return ErrSiteNotFound
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanSite reads one row into a Site.
func scanSite(row scanner) (*Site, error) {
	var (
		site      Site
		siteID    string
		createdAt string
	)

	err := row.Scan(&siteID, &site.Name, &site.URL, &createdAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan site: %w", err)
	}

	site.SiteID, err = uuid.Parse(siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse site ID: %w", err)
	}

	site.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return &site, nil
}
