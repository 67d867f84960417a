package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campora/campground-api/internal/repository"
)

// UserHandler serves public account profiles.
type UserHandler struct {
	Users       *repository.UserRepo
	Campgrounds *repository.CampgroundRepo
}

func NewUserHandler(u *repository.UserRepo, cg *repository.CampgroundRepo) *UserHandler {
	return &UserHandler{Users: u, Campgrounds: cg}
}

// profilePart is the public view of an account. Email, flags and reset
// state stay private.
type profilePart struct {
	ID        uint64 `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"avatar_url"`
	JoinedAt  string `json:"joined_at"`
}

// Profile handles GET /v1/users/:id and returns the account together
// with the listings it authored.
func (h *UserHandler) Profile(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	campgrounds, err := h.Campgrounds.ListByAuthor(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user": profilePart{
			ID:        u.ID,
			Username:  u.Username,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			AvatarURL: u.AvatarURL,
			JoinedAt:  u.CreatedAt.UTC().Format(time.RFC3339),
		},
		"campgrounds": campgrounds,
	})
}
