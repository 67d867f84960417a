package middleware

// ownership.go holds the ownership guard applied to every mutating
// campground and comment route. The guard re-fetches the resource on
// each request and decides via auth.DecideOwnership; decisions are never
// cached, so a transferred or deleted resource is judged against current
// state rather than whatever a previous request saw.

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campora/campground-api/internal/auth"
	"github.com/campora/campground-api/internal/model"
	"github.com/campora/campground-api/internal/repository"
)

// Context keys under which the guard stores the fetched resource, so the
// handler behind it does not have to fetch again.
const (
	campgroundKey = "ownership.campground"
	commentKey    = "ownership.comment"
)

// campgroundSource and commentSource are the lookups the guards need.
// Satisfied by the repositories; tests swap in fakes.
type campgroundSource interface {
	GetByID(ctx context.Context, id uint64) (model.Campground, error)
}
type commentSource interface {
	GetByID(ctx context.Context, id uint64) (model.Comment, error)
}

// CheckCampgroundOwnership guards routes mutating /v1/campgrounds/:id.
func CheckCampgroundOwnership(repo campgroundSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident := CurrentIdentity(c)
			id, perr := strconv.ParseUint(c.Param("id"), 10, 64)

			var (
				cg    model.Campground
				found bool
			)
			if perr == nil && ident != nil {
				ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
				var err error
				cg, err = repo.GetByID(ctx, id)
				cancel()
				if err != nil && err != repository.ErrNotFound {
					return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
				}
				found = err == nil
			}

			switch d := auth.DecideOwnership(ident, cg.AuthorID, found); d {
			case auth.Allow:
				c.Set(campgroundKey, cg)
				return next(c)
			default:
				return denyOwnership(c, d, "campground")
			}
		}
	}
}

// CheckCommentOwnership guards routes mutating a comment addressed by the
// :comment_id path parameter. The comment must belong to the campground
// named by :id; a comment reached under the wrong campground reads as
// not found.
func CheckCommentOwnership(repo commentSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident := CurrentIdentity(c)
			campgroundID, cgErr := strconv.ParseUint(c.Param("id"), 10, 64)
			id, perr := strconv.ParseUint(c.Param("comment_id"), 10, 64)

			var (
				cm    model.Comment
				found bool
			)
			if perr == nil && cgErr == nil && ident != nil {
				ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
				var err error
				cm, err = repo.GetByID(ctx, id)
				cancel()
				if err != nil && err != repository.ErrNotFound {
					return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
				}
				found = err == nil && cm.CampgroundID == campgroundID
			}

			switch d := auth.DecideOwnership(ident, cm.AuthorID, found); d {
			case auth.Allow:
				c.Set(commentKey, cm)
				return next(c)
			default:
				return denyOwnership(c, d, "comment")
			}
		}
	}
}

// OwnedCampground returns the campground fetched by the guard.
func OwnedCampground(c echo.Context) (model.Campground, bool) {
	cg, ok := c.Get(campgroundKey).(model.Campground)
	return cg, ok
}

// OwnedComment returns the comment fetched by the guard.
func OwnedComment(c echo.Context) (model.Comment, bool) {
	cm, ok := c.Get(commentKey).(model.Comment)
	return cm, ok
}

func denyOwnership(c echo.Context, d auth.Decision, resource string) error {
	switch d {
	case auth.DenyUnauthenticated:
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "you need to be logged in to do that"})
	case auth.DenyNotFound:
		return c.JSON(http.StatusNotFound, map[string]string{"error": resource + " not found"})
	default:
		return c.JSON(http.StatusForbidden, map[string]string{"error": "you don't have permission to do that"})
	}
}
