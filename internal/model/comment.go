package model

import "time"

// Comment is a remark left on a campground listing. It follows the same
// ownership rule as the listing itself: only its author or an admin may
// change or remove it. Deleting a campground removes all of its comments.
//
// Fields:
//  ID           – primary key identifier.
//  CampgroundID – parent listing.
//  AuthorID     – account that wrote the comment.
//  AuthorName   – denormalized username of the author.
//  Body         – comment text.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Comment struct {
	ID           uint64    `json:"id"`            // comments.id
	CampgroundID uint64    `json:"campground_id"` // comments.campground_id
	AuthorID     uint64    `json:"author_id"`     // comments.author_id
	AuthorName   string    `json:"author_name"`   // comments.author_name
	Body         string    `json:"body"`          // comments.body
	CreatedAt    time.Time `json:"created_at"`    // comments.created_at
	UpdatedAt    time.Time `json:"updated_at"`    // comments.updated_at
}
