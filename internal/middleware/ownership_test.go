package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/campora/campground-api/internal/auth"
	"github.com/campora/campground-api/internal/model"
	"github.com/campora/campground-api/internal/repository"
)

type fakeCampgrounds struct {
	cg  model.Campground
	err error
}

func (f fakeCampgrounds) GetByID(ctx context.Context, id uint64) (model.Campground, error) {
	return f.cg, f.err
}

type fakeComments struct {
	cm  model.Comment
	err error
}

func (f fakeComments) GetByID(ctx context.Context, id uint64) (model.Comment, error) {
	return f.cm, f.err
}

func commentContext(t *testing.T, campgroundID, commentID string, ident *auth.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/campgrounds/:id/comments/:comment_id")
	c.SetParamNames("id", "comment_id")
	c.SetParamValues(campgroundID, commentID)
	if ident != nil {
		SetIdentity(c, ident)
	}
	return c, rec
}

// A comment addressed under a campground it does not belong to must read
// as not found, even for the comment's own author.
func TestCommentOwnershipWrongCampground(t *testing.T) {
	repo := fakeComments{cm: model.Comment{ID: 3, CampgroundID: 7, AuthorID: 1}}
	c, rec := commentContext(t, "999", "3", &auth.Identity{ID: 1, Username: "alice"})

	if err := CheckCommentOwnership(repo)(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if _, ok := OwnedComment(c); ok {
		t.Fatal("comment must not be exposed to the handler on a path mismatch")
	}
}

func TestCommentOwnershipOwnerAllowed(t *testing.T) {
	repo := fakeComments{cm: model.Comment{ID: 3, CampgroundID: 7, AuthorID: 1}}
	c, rec := commentContext(t, "7", "3", &auth.Identity{ID: 1, Username: "alice"})

	if err := CheckCommentOwnership(repo)(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	cm, ok := OwnedComment(c)
	if !ok || cm.ID != 3 {
		t.Fatalf("fetched comment missing from context: %+v ok=%v", cm, ok)
	}
}

func TestCommentOwnershipForeignComment(t *testing.T) {
	repo := fakeComments{cm: model.Comment{ID: 3, CampgroundID: 7, AuthorID: 2}}
	c, rec := commentContext(t, "7", "3", &auth.Identity{ID: 1, Username: "alice"})

	if err := CheckCommentOwnership(repo)(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func campgroundContext(t *testing.T, id string, ident *auth.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/campgrounds/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	if ident != nil {
		SetIdentity(c, ident)
	}
	return c, rec
}

func TestCampgroundOwnershipForeignListing(t *testing.T) {
	repo := fakeCampgrounds{cg: model.Campground{ID: 7, AuthorID: 2}}
	c, rec := campgroundContext(t, "7", &auth.Identity{ID: 1, Username: "alice"})

	if err := CheckCampgroundOwnership(repo)(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestCampgroundOwnershipAdminAllowed(t *testing.T) {
	repo := fakeCampgrounds{cg: model.Campground{ID: 7, AuthorID: 2}}
	c, rec := campgroundContext(t, "7", &auth.Identity{ID: 1, Username: "root", IsAdmin: true})

	if err := CheckCampgroundOwnership(repo)(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestCampgroundOwnershipMissingListing(t *testing.T) {
	repo := fakeCampgrounds{err: repository.ErrNotFound}
	c, rec := campgroundContext(t, "7", &auth.Identity{ID: 1, Username: "alice"})

	if err := CheckCampgroundOwnership(repo)(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
