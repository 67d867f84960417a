package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/campora/campground-api/internal/auth"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/v1/campgrounds/1", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error { return c.NoContent(http.StatusOK) }

func TestRequireAuthAnonymous(t *testing.T) {
	c, rec := newTestContext(t)
	if err := RequireAuth()(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthAuthenticated(t *testing.T) {
	c, rec := newTestContext(t)
	c.Set(identityKey, &auth.Identity{ID: 1, Username: "alice", IsPaid: true})
	if err := RequireAuth()(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequirePaidUnpaid(t *testing.T) {
	c, rec := newTestContext(t)
	c.Set(identityKey, &auth.Identity{ID: 1, Username: "alice"})
	if err := RequirePaid()(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusPaymentRequired {
		t.Fatalf("status = %d, want 402", rec.Code)
	}
}

func TestRequirePaidPaid(t *testing.T) {
	c, rec := newTestContext(t)
	c.Set(identityKey, &auth.Identity{ID: 1, Username: "alice", IsPaid: true})
	if err := RequirePaid()(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

// Anonymous mutation attempts must be rejected before any resource
// lookup happens, so the guard works even with no repository behind it.
func TestCampgroundOwnershipAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/campgrounds/:id")
	c.SetParamNames("id")
	c.SetParamValues("7")

	if err := CheckCampgroundOwnership(nil)(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestCommentOwnershipAnonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/campgrounds/:id/comments/:comment_id")
	c.SetParamNames("id", "comment_id")
	c.SetParamValues("7", "3")

	if err := CheckCommentOwnership(nil)(okHandler)(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
