package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework handles routing

	"github.com/campora/campground-api/internal/handler"
	"github.com/campora/campground-api/internal/middleware"
	"github.com/campora/campground-api/internal/repository"
)

// RegisterRoutes registers routes that need no authentication state at
// all. Currently that is only the health check used by load balancers.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires registration, login, logout and the password-reset
// flow under /v1/auth. The identity middleware is assumed to be applied
// globally, so /me only needs the guard.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, r *handler.ResetHandler) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/logout", a.Logout)
	g.GET("/me", a.Me, middleware.RequireAuth())

	// Password reset lives under the same prefix: request a token,
	// probe a token, consume a token.
	g.POST("/forgot", r.Forgot)
	g.GET("/reset/:token", r.ValidateToken)
	g.POST("/reset/:token", r.Reset)
}

// RegisterPayment wires the checkout/pay pair. Both require a logged-in
// account; paying twice is prevented by the processor-side idempotency
// key, not by a guard, so an already-paid account calling /pay simply
// charges against its own decision.
func RegisterPayment(e *echo.Echo, p *handler.PaymentHandler) {
	e.GET("/v1/checkout", p.Checkout, middleware.RequireAuth())
	e.POST("/v1/pay", p.Pay, middleware.RequireAuth())
}

// RegisterCampgrounds wires browsing, listing CRUD and nested comments.
// Browse endpoints are public (and cacheable); every mutating route
// passes the paid-account gate and re-checks ownership against current
// state via the guard middleware.
func RegisterCampgrounds(e *echo.Echo, h *handler.CampgroundHandler, ch *handler.CommentHandler,
	campgrounds *repository.CampgroundRepo, comments *repository.CommentRepo,
	cache echo.MiddlewareFunc) {

	g := e.Group("/v1/campgrounds")

	// Public browse
	g.GET("", h.List, cache)
	g.GET("/:id", h.Get)

	// Listing mutations: authenticated, paid, owner-or-admin. The
	// ownership guard runs before the paid gate so its 401/404/403
	// precedence is settled first; 402 only reaches a verified owner.
	g.POST("", h.Create, middleware.RequireAuth(), middleware.RequirePaid())
	g.PUT("/:id", h.Update, middleware.CheckCampgroundOwnership(campgrounds), middleware.RequirePaid())
	g.DELETE("/:id", h.Delete, middleware.CheckCampgroundOwnership(campgrounds), middleware.RequirePaid())

	// Comments nested under a listing.
	g.POST("/:id/comments", ch.Create, middleware.RequireAuth(), middleware.RequirePaid())
	g.PUT("/:id/comments/:comment_id", ch.Update, middleware.CheckCommentOwnership(comments), middleware.RequirePaid())
	g.DELETE("/:id/comments/:comment_id", ch.Delete, middleware.CheckCommentOwnership(comments), middleware.RequirePaid())
}

// RegisterUsers wires the public profile endpoint.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler) {
	e.GET("/v1/users/:id", u.Profile)
}
