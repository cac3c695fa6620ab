package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/avatar"
	"github.com/aussiebroadwan/roster/internal/roster/metrics"
	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/aussiebroadwan/roster/pkg/slogx"

	_ "github.com/aussiebroadwan/roster/api/roster" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	avatars          avatar.Storage
	AuthService      *service.AuthService
	UserService      *service.UserService
	HistoryService   *service.HistoryService
	AvatarService    *service.AvatarService
	MFAService       *service.MFAService
	BootstrapService *service.BootstrapService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	avatars avatar.Storage,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		avatars:      avatars,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

// Use appends global middleware. It must be called before ApplyRoutes.
func (r *Router) Use(mws ...httpx.Middleware) {
	r.middlewares = append(r.middlewares, mws...)
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerAvatars()
	r.registerMFA()
	r.registerSystem()
	r.registerBootstrap()

	r.Mux.Handle("GET /metrics", metrics.Handler())
	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	// metrics.Middleware reads the matched pattern, so it sits directly
	// around the mux.
	r.handler = httpx.Chain(metrics.Middleware(r.Mux), r.middlewares...)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Roster User Management API
//	@version		0.1.0
//	@description	User management with a full version history of every profile change and an append-only audit trail.
//	@description
//	@description				Session tokens are EdDSA signed JWTs and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/roster
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.handler == nil {
		httpx.Chain(metrics.Middleware(r.Mux), r.middlewares...).ServeHTTP(w, req)
		return
	}
	r.handler.ServeHTTP(w, req)
}

// authed puts token verification, the principal lookup and a per-user
// rate limit in front of h, followed by extra.
func (r *Router) authed(h http.HandlerFunc, limit httpx.RateLimitConfig, extra ...httpx.Middleware) http.Handler {
	mws := []httpx.Middleware{
		httpx.AuthnMiddleware(r.verifier, r.AuthService.IsRevoked),
		principalMiddleware(r.AuthService),
		httpx.RateLimitByUser(limit),
	}
	return httpx.Chain(h, append(mws, extra...)...)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Credential endpoints are limited by IP to slow down guessing.
	r.Mux.Handle("POST /v1/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("GET /v1/auth/logout", r.authed(h.HandleLogout, httpx.ModerateLimit))
	r.Mux.Handle("GET /v1/auth/session-check", r.authed(h.HandleSessionCheck, httpx.LenientLimit))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}
	hist := &HistoryHandler{HistoryService: r.HistoryService}
	admin := httpx.RequireAdmin()

	// Literal segments win over {id}, so audit and export never reach the
	// single user handlers.
	r.Mux.Handle("GET /v1/users", r.authed(h.HandleList, httpx.LenientLimit, admin))
	r.Mux.Handle("GET /v1/users/audit", r.authed(hist.HandleAudit, httpx.LenientLimit, admin))
	r.Mux.Handle("GET /v1/users/export", r.authed(h.HandleExport, httpx.ModerateLimit, admin))
	r.Mux.Handle("POST /v1/users", r.authed(h.HandleCreate, httpx.ModerateLimit, admin))

	r.Mux.Handle("GET /v1/users/{id}", r.authed(h.HandleGet, httpx.LenientLimit, admin))
	r.Mux.Handle("PUT /v1/users/{id}", r.authed(h.HandleUpdate, httpx.ModerateLimit, admin))
	r.Mux.Handle("DELETE /v1/users/{id}", r.authed(h.HandleDelete, httpx.ModerateLimit, admin))
	r.Mux.Handle("PATCH /v1/users/{id}/status", r.authed(h.HandleStatus, httpx.ModerateLimit, admin))

	r.Mux.Handle("GET /v1/users/{id}/history", r.authed(hist.HandleHistory, httpx.LenientLimit, admin))
	r.Mux.Handle("POST /v1/users/{id}/restore", r.authed(hist.HandleRestore, httpx.ModerateLimit, admin))
}

func (r *Router) registerAvatars() {
	h := &AvatarHandler{AvatarService: r.AvatarService}
	selfOrAdmin := httpx.RequireSelfOrAdmin("id")

	r.Mux.Handle("POST /v1/users/{id}/avatar", r.authed(h.HandleUpload, httpx.ModerateLimit, selfOrAdmin))
	r.Mux.Handle("DELETE /v1/users/{id}/avatar", r.authed(h.HandleDelete, httpx.ModerateLimit, selfOrAdmin))

	// Avatar bytes are public so they can be used directly in <img> tags.
	r.Mux.Handle("GET /avatars/{file}",
		httpx.Chain(avatar.Handler(r.avatars),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	r.Mux.Handle("POST /v1/mfa/totp/enroll", r.authed(h.HandleEnroll, httpx.ModerateLimit))

	// Strict to prevent brute force of TOTP codes.
	r.Mux.Handle("POST /v1/mfa/totp/verify", r.authed(h.HandleVerify, httpx.StrictLimit))
	r.Mux.Handle("DELETE /v1/mfa/totp", r.authed(h.HandleDisable, httpx.ModerateLimit))
}

func (r *Router) registerBootstrap() {
	h := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// Monitoring systems may poll frequently.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys, r.avatars),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
