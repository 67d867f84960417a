package handler // handler package contains campground listing handlers

import (
	"context"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campora/campground-api/internal/geocode"
	"github.com/campora/campground-api/internal/imagehost"
	"github.com/campora/campground-api/internal/middleware"
	"github.com/campora/campground-api/internal/model"
	"github.com/campora/campground-api/internal/repository"
)

// Geocoder resolves a free-text address into coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (geocode.Result, error)
}

// ImageStore uploads and deletes hosted listing images.
type ImageStore interface {
	Upload(ctx context.Context, filename string, file io.Reader) (imagehost.Upload, error)
	Destroy(ctx context.Context, publicID string) error
}

// CampgroundHandler bundles dependencies for listing CRUD.
type CampgroundHandler struct {
	Campgrounds *repository.CampgroundRepo
	Comments    *repository.CommentRepo
	Geo         Geocoder
	Images      ImageStore
}

func NewCampgroundHandler(cg *repository.CampgroundRepo, cm *repository.CommentRepo, geo Geocoder, img ImageStore) *CampgroundHandler {
	if cg == nil || cm == nil {
		panic("nil repository passed to NewCampgroundHandler")
	}
	return &CampgroundHandler{Campgrounds: cg, Comments: cm, Geo: geo, Images: img}
}

// allowedImageExt mirrors the accepted upload types.
var allowedImageExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
}

// List handles GET /v1/campgrounds. With ?search= it matches name,
// location and author name; an empty result set for a search is reported
// as not found rather than an empty page.
func (h *CampgroundHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if q := strings.TrimSpace(c.QueryParam("search")); q != "" {
		items, err := h.Campgrounds.Search(ctx, q)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if len(items) == 0 {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "campground not found"})
		}
		return c.JSON(http.StatusOK, echo.Map{"items": items})
	}

	items, err := h.Campgrounds.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// Get handles GET /v1/campgrounds/:id and returns the listing together
// with its comments.
func (h *CampgroundHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	cg, err := h.Campgrounds.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "campground not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	comments, err := h.Comments.ListByCampground(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"campground": cg, "comments": comments})
}

// Create handles POST /v1/campgrounds (multipart). The location is
// geocoded first so an invalid address fails before any image upload,
// and the optional image is uploaded to the host before the row is
// written.
func (h *CampgroundHandler) Create(c echo.Context) error {
	ident := middleware.CurrentIdentity(c)
	if ident == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "you need to be logged in to do that"})
	}

	name := strings.TrimSpace(c.FormValue("name"))
	location := strings.TrimSpace(c.FormValue("location"))
	if name == "" || location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and location are required"})
	}
	priceCents, err := parsePriceCents(c.FormValue("price"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	loc, err := h.Geo.Geocode(ctx, location)
	if err != nil {
		if err == geocode.ErrNoResult {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid address"})
		}
		c.Logger().Errorf("create campground: geocode failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "address lookup unavailable"})
	}

	cg := model.Campground{
		Name:        name,
		PriceCents:  priceCents,
		Description: strings.TrimSpace(c.FormValue("description")),
		Location:    loc.FormattedAddress,
		Lat:         &loc.Latitude,
		Lng:         &loc.Longitude,
		AuthorID:    ident.ID,
		AuthorName:  ident.Username,
	}

	if fh, err := c.FormFile("image"); err == nil {
		up, err := h.uploadImage(ctx, fh)
		if err != nil {
			return respondImageError(c, err)
		}
		cg.ImageURL = up.SecureURL
		cg.ImageID = up.PublicID
	}

	if err := h.Campgrounds.Create(ctx, &cg); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create campground"})
	}
	return c.JSON(http.StatusCreated, cg)
}

// Update handles PUT /v1/campgrounds/:id. The ownership guard already
// fetched the listing and verified the caller may mutate it.
func (h *CampgroundHandler) Update(c echo.Context) error {
	cg, ok := middleware.OwnedCampground(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ownership check missing"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	// A replacement image removes the old hosted asset first, matching
	// the upload budget of one asset per listing.
	if fh, err := c.FormFile("image"); err == nil {
		if cg.ImageID != "" {
			if err := h.Images.Destroy(ctx, cg.ImageID); err != nil {
				c.Logger().Warnf("update campground %d: destroy old image: %v", cg.ID, err)
			}
		}
		up, err := h.uploadImage(ctx, fh)
		if err != nil {
			return respondImageError(c, err)
		}
		cg.ImageURL = up.SecureURL
		cg.ImageID = up.PublicID
	}

	if location := strings.TrimSpace(c.FormValue("location")); location != "" && location != cg.Location {
		loc, err := h.Geo.Geocode(ctx, location)
		if err != nil {
			if err == geocode.ErrNoResult {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid address"})
			}
			c.Logger().Errorf("update campground %d: geocode failed: %v", cg.ID, err)
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "address lookup unavailable"})
		}
		cg.Location = loc.FormattedAddress
		cg.Lat = &loc.Latitude
		cg.Lng = &loc.Longitude
	}

	if name := strings.TrimSpace(c.FormValue("name")); name != "" {
		cg.Name = name
	}
	if desc := strings.TrimSpace(c.FormValue("description")); desc != "" {
		cg.Description = desc
	}
	if priceStr := c.FormValue("price"); priceStr != "" {
		priceCents, err := parsePriceCents(priceStr)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price"})
		}
		cg.PriceCents = priceCents
	}

	if err := h.Campgrounds.Update(ctx, &cg); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Campgrounds.GetByID(ctx, cg.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/campgrounds/:id. The hosted image is removed
// best-effort; the row and all comments go in one transaction so no
// orphan comments survive.
func (h *CampgroundHandler) Delete(c echo.Context) error {
	cg, ok := middleware.OwnedCampground(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ownership check missing"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	if cg.ImageID != "" {
		if err := h.Images.Destroy(ctx, cg.ImageID); err != nil {
			c.Logger().Warnf("delete campground %d: destroy image: %v", cg.ID, err)
		}
	}
	if err := h.Campgrounds.DeleteCascade(ctx, cg.ID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "campground not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "campground deleted"})
}

// uploadImage validates the file type and streams it to the image host.
func (h *CampgroundHandler) uploadImage(ctx context.Context, fh *multipart.FileHeader) (imagehost.Upload, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExt[ext] {
		return imagehost.Upload{}, errOnlyImages
	}
	f, err := fh.Open()
	if err != nil {
		return imagehost.Upload{}, err
	}
	defer f.Close()
	return h.Images.Upload(ctx, fh.Filename, f)
}

type handlerError string

func (e handlerError) Error() string { return string(e) }

// errOnlyImages marks a rejected (non-image) upload.
const errOnlyImages = handlerError("only image files are allowed")

func respondImageError(c echo.Context, err error) error {
	if err == errOnlyImages {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": errOnlyImages.Error()})
	}
	c.Logger().Errorf("image upload failed: %v", err)
	return c.JSON(http.StatusBadGateway, echo.Map{"error": "image upload unavailable"})
}

// parsePriceCents converts a decimal dollar amount ("12.50") to cents.
// NaN needs an explicit check: it compares false against both bounds.
func parsePriceCents(s string) (uint32, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || v < 0 || v > math.MaxUint32/100 {
		return 0, errInvalidPrice
	}
	return uint32(math.Round(v * 100)), nil
}

const errInvalidPrice = handlerError("invalid price")
