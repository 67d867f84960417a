package model

import "time"

// Campground represents a listing owned by exactly one account. This
// struct corresponds to a row in the `campgrounds` table. The author's
// username is denormalized so listings can be rendered without a join.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the campground.
//  PriceCents  – nightly price in cents.
//  Description – free-text description.
//  Location    – geocoder-formatted address ("" when never geocoded).
//  Lat, Lng    – coordinates from the geocoder (nil when unknown).
//  ImageURL    – hosted image URL ("" when no image was uploaded).
//  ImageID     – image host public id, used for deletion.
//  AuthorID    – account that owns this listing.
//  AuthorName  – denormalized username of the owner.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Campground struct {
	ID          uint64    `json:"id"`          // campgrounds.id
	Name        string    `json:"name"`        // campgrounds.name
	PriceCents  uint32    `json:"price_cents"` // campgrounds.price_cents
	Description string    `json:"description"` // campgrounds.description
	Location    string    `json:"location"`    // campgrounds.location
	Lat         *float64  `json:"lat"`         // campgrounds.lat (nullable)
	Lng         *float64  `json:"lng"`         // campgrounds.lng (nullable)
	ImageURL    string    `json:"image_url"`   // campgrounds.image_url
	ImageID     string    `json:"image_id"`    // campgrounds.image_id
	AuthorID    uint64    `json:"author_id"`   // campgrounds.author_id
	AuthorName  string    `json:"author_name"` // campgrounds.author_name
	CreatedAt   time.Time `json:"created_at"`  // campgrounds.created_at
	UpdatedAt   time.Time `json:"updated_at"`  // campgrounds.updated_at
}
