package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/campora/campground-api/internal/model"
)

// CampgroundRepo provides CRUD operations for campground listings. All
// timestamp fields are stored in UTC. Mutations never bypass the
// per-request ownership check performed by the middleware layer; the
// repository itself only enforces existence.
type CampgroundRepo struct{ DB *sql.DB }

func NewCampgroundRepo(db *sql.DB) *CampgroundRepo { return &CampgroundRepo{DB: db} }

const campgroundCols = "id,name,price_cents,description,location,lat,lng,image_url,image_id,author_id,author_name,created_at,updated_at"

// Create inserts a listing and populates the generated ID plus the
// database-assigned timestamps on the provided record.
func (r *CampgroundRepo) Create(ctx context.Context, cg *model.Campground) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO campgrounds (name, price_cents, description, location, lat, lng, image_url, image_id, author_id, author_name)
		 VALUES (?,?,?,?,?,?,?,?,?,?)`,
		cg.Name, cg.PriceCents, cg.Description, cg.Location, cg.Lat, cg.Lng,
		cg.ImageURL, cg.ImageID, cg.AuthorID, cg.AuthorName)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cg.ID = uint64(id)
	// Query back the row to pick up created_at/updated_at defaults.
	got, err := r.GetByID(ctx, cg.ID)
	if err != nil {
		return err
	}
	*cg = got
	return nil
}

// GetByID fetches a single listing.
func (r *CampgroundRepo) GetByID(ctx context.Context, id uint64) (model.Campground, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+campgroundCols+" FROM campgrounds WHERE id=? LIMIT 1", id)
	return scanCampground(row)
}

// ListAll returns every listing, newest first.
func (r *CampgroundRepo) ListAll(ctx context.Context) ([]model.Campground, error) {
	return r.list(ctx, "SELECT "+campgroundCols+" FROM campgrounds ORDER BY created_at DESC")
}

// ListByAuthor returns the listings owned by one account, newest first.
func (r *CampgroundRepo) ListByAuthor(ctx context.Context, authorID uint64) ([]model.Campground, error) {
	return r.list(ctx,
		"SELECT "+campgroundCols+" FROM campgrounds WHERE author_id=? ORDER BY created_at DESC", authorID)
}

// Search returns listings whose name, location or author name matches the
// query, case-insensitively. LIKE metacharacters in the query are escaped
// so user input cannot widen the match.
func (r *CampgroundRepo) Search(ctx context.Context, q string) ([]model.Campground, error) {
	pat := "%" + escapeLike(strings.ToLower(strings.TrimSpace(q))) + "%"
	return r.list(ctx,
		`SELECT `+campgroundCols+` FROM campgrounds
		 WHERE LOWER(name) LIKE ? OR LOWER(location) LIKE ? OR LOWER(author_name) LIKE ?
		 ORDER BY created_at DESC`,
		pat, pat, pat)
}

// Update writes the mutable fields of a listing. The author columns are
// intentionally excluded: ownership never changes after creation.
func (r *CampgroundRepo) Update(ctx context.Context, cg *model.Campground) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE campgrounds SET name=?, price_cents=?, description=?, location=?, lat=?, lng=?, image_url=?, image_id=?
		 WHERE id=?`,
		cg.Name, cg.PriceCents, cg.Description, cg.Location, cg.Lat, cg.Lng,
		cg.ImageURL, cg.ImageID, cg.ID)
	if err != nil {
		return err
	}
	if _, err := res.RowsAffected(); err != nil {
		return err
	}
	return nil
}

// DeleteCascade removes a listing together with all of its comments in a
// single transaction, so a failure partway leaves no orphans behind.
func (r *CampgroundRepo) DeleteCascade(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM comments WHERE campground_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM campgrounds WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

func (r *CampgroundRepo) list(ctx context.Context, query string, args ...any) ([]model.Campground, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Campground{}
	for rows.Next() {
		cg, err := scanCampground(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, cg)
	}
	return items, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface{ Scan(dest ...any) error }

func scanCampground(row rowScanner) (model.Campground, error) {
	var (
		cg       model.Campground
		lat, lng sql.NullFloat64
	)
	err := row.Scan(&cg.ID, &cg.Name, &cg.PriceCents, &cg.Description, &cg.Location,
		&lat, &lng, &cg.ImageURL, &cg.ImageID, &cg.AuthorID, &cg.AuthorName,
		&cg.CreatedAt, &cg.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Campground{}, ErrNotFound
	}
	if err != nil {
		return model.Campground{}, err
	}
	if lat.Valid {
		cg.Lat = &lat.Float64
	}
	if lng.Valid {
		cg.Lng = &lng.Float64
	}
	return cg, nil
}

// escapeLike escapes the MySQL LIKE metacharacters in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
