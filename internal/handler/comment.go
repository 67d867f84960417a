package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campora/campground-api/internal/middleware"
	"github.com/campora/campground-api/internal/model"
	"github.com/campora/campground-api/internal/repository"
)

// CommentHandler bundles dependencies for comment CRUD under a listing.
type CommentHandler struct {
	Campgrounds *repository.CampgroundRepo
	Comments    *repository.CommentRepo
}

func NewCommentHandler(cg *repository.CampgroundRepo, cm *repository.CommentRepo) *CommentHandler {
	if cg == nil || cm == nil {
		panic("nil repository passed to NewCommentHandler")
	}
	return &CommentHandler{Campgrounds: cg, Comments: cm}
}

type commentReq struct {
	Body string `json:"body"`
}

// Create handles POST /v1/campgrounds/:id/comments. The parent listing
// must exist; the author is denormalized from the identity.
func (h *CommentHandler) Create(c echo.Context) error {
	ident := middleware.CurrentIdentity(c)
	if ident == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "you need to be logged in to do that"})
	}
	campgroundID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "comment body required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Campgrounds.GetByID(ctx, campgroundID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "campground not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	cm := model.Comment{
		CampgroundID: campgroundID,
		AuthorID:     ident.ID,
		AuthorName:   ident.Username,
		Body:         body,
	}
	if err := h.Comments.Create(ctx, &cm); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create comment"})
	}
	return c.JSON(http.StatusCreated, cm)
}

// Update handles PUT /v1/campgrounds/:id/comments/:comment_id. The
// ownership guard already fetched the comment.
func (h *CommentHandler) Update(c echo.Context) error {
	cm, ok := middleware.OwnedComment(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ownership check missing"})
	}
	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "comment body required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Comments.UpdateBody(ctx, cm.ID, body); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Comments.GetByID(ctx, cm.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /v1/campgrounds/:id/comments/:comment_id.
func (h *CommentHandler) Delete(c echo.Context) error {
	cm, ok := middleware.OwnedComment(c)
	if !ok {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ownership check missing"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Comments.Delete(ctx, cm.ID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "comment not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "comment deleted"})
}
