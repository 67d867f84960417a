package repository

import (
	"context"
	"database/sql"

	"github.com/campora/campground-api/internal/model"
)

// CommentRepo provides CRUD operations for comments on listings.
type CommentRepo struct{ DB *sql.DB }

func NewCommentRepo(db *sql.DB) *CommentRepo { return &CommentRepo{DB: db} }

const commentCols = "id,campground_id,author_id,author_name,body,created_at,updated_at"

// Create inserts a comment and populates its generated ID and timestamps.
func (r *CommentRepo) Create(ctx context.Context, cm *model.Comment) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO comments (campground_id, author_id, author_name, body) VALUES (?,?,?,?)",
		cm.CampgroundID, cm.AuthorID, cm.AuthorName, cm.Body)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	cm.ID = uint64(id)
	got, err := r.GetByID(ctx, cm.ID)
	if err != nil {
		return err
	}
	*cm = got
	return nil
}

// GetByID fetches a single comment.
func (r *CommentRepo) GetByID(ctx context.Context, id uint64) (model.Comment, error) {
	var cm model.Comment
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+commentCols+" FROM comments WHERE id=? LIMIT 1", id).
		Scan(&cm.ID, &cm.CampgroundID, &cm.AuthorID, &cm.AuthorName, &cm.Body,
			&cm.CreatedAt, &cm.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.Comment{}, ErrNotFound
	}
	if err != nil {
		return model.Comment{}, err
	}
	return cm, nil
}

// ListByCampground returns all comments under a listing, oldest first.
func (r *CommentRepo) ListByCampground(ctx context.Context, campgroundID uint64) ([]model.Comment, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+commentCols+" FROM comments WHERE campground_id=? ORDER BY created_at ASC",
		campgroundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Comment{}
	for rows.Next() {
		var cm model.Comment
		if err := rows.Scan(&cm.ID, &cm.CampgroundID, &cm.AuthorID, &cm.AuthorName,
			&cm.Body, &cm.CreatedAt, &cm.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, cm)
	}
	return items, rows.Err()
}

// UpdateBody rewrites the text of a comment.
func (r *CommentRepo) UpdateBody(ctx context.Context, id uint64, body string) error {
	_, err := r.DB.ExecContext(ctx, "UPDATE comments SET body=? WHERE id=?", body, id)
	return err
}

// Delete removes a comment.
func (r *CommentRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM comments WHERE id=?", id)
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
	return nil
}
