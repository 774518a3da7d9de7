package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aklatan/buklat/internal/catalog/service"
	"github.com/aklatan/buklat/internal/catalog/store"
	"github.com/aklatan/buklat/pkg/httpx"
	"github.com/aklatan/buklat/pkg/slogx"

	_ "github.com/aklatan/buklat/api" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store               store.Store
	AuthService         *service.Auth
	AuthorsService      *service.Authors
	RecommendersService *service.Recommenders
	BooksService        *service.Books
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerRoot()
	r.registerAuth()
	r.registerAuthors()
	r.registerBooks()
	r.registerRecommenders()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			BuklatAPI
//	@version		0.1.0
//	@description	Bibliographic catalog service: account registration and login with
//	@description	JWT bearer tokens, plus CRUD for authors, books and recommenders.
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
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerRoot() {
	r.Mux.Handle("GET /{$}",
		httpx.Chain(&RootHandler{},
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerAuth() {
	registerHandler := &RegisterHandler{AuthService: r.AuthService}
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	meHandler := &MeHandler{}

	// POST /auth/ - strict rate limit by IP (account creation)
	r.Mux.Handle("POST /auth",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/{$}",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/token - strict rate limit by IP (authentication attempts)
	r.Mux.Handle("POST /auth/token",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /auth/me - requires a valid token for an active account
	r.Mux.Handle("GET /auth/me",
		httpx.Chain(meHandler,
			RequireUser(r.AuthService),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAuthors() {
	h := &AuthorsHandler{Service: r.AuthorsService}
	r.handleEntity("/v1/authors", entityRoutes{
		create: h.HandleCreate,
		list:   h.HandleList,
		get:    h.HandleGet,
		update: h.HandleUpdate,
		delete: h.HandleDelete,
	})
}

func (r *Router) registerBooks() {
	h := &BooksHandler{Service: r.BooksService}
	r.handleEntity("/v1/book", entityRoutes{
		create: h.HandleCreate,
		list:   h.HandleList,
		get:    h.HandleGet,
		update: h.HandleUpdate,
		delete: h.HandleDelete,
	})
}

func (r *Router) registerRecommenders() {
	h := &RecommendersHandler{Service: r.RecommendersService}
	r.handleEntity("/v1/recommenders", entityRoutes{
		create: h.HandleCreate,
		list:   h.HandleList,
		get:    h.HandleGet,
		update: h.HandleUpdate,
		delete: h.HandleDelete,
	})
}

type entityRoutes struct {
	create http.HandlerFunc
	list   http.HandlerFunc
	get    http.HandlerFunc
	update http.HandlerFunc
	delete http.HandlerFunc
}

// handleEntity wires the five CRUD routes every catalog entity shares. All of
// them sit behind token authentication and a per-user rate limit.
func (r *Router) handleEntity(prefix string, routes entityRoutes) {
	secure := func(h http.HandlerFunc) http.Handler {
		return httpx.Chain(h,
			RequireUser(r.AuthService),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	// Collection routes answer with and without the trailing slash.
	r.Mux.Handle("POST "+prefix, secure(routes.create))
	r.Mux.Handle("POST "+prefix+"/{$}", secure(routes.create))
	r.Mux.Handle("GET "+prefix, secure(routes.list))
	r.Mux.Handle("GET "+prefix+"/{$}", secure(routes.list))
	r.Mux.Handle("GET "+prefix+"/{id}", secure(routes.get))
	r.Mux.Handle("PUT "+prefix+"/{id}", secure(routes.update))
	r.Mux.Handle("DELETE "+prefix+"/{id}", secure(routes.delete))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
