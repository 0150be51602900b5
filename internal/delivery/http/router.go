package http

import (
	"net/http"

	"catalog-service/internal/delivery/http/handler"
	"catalog-service/internal/delivery/http/middleware"
	"catalog-service/pkg/response"

	"github.com/gorilla/mux"
)

type Router struct {
	router            *mux.Router
	authHandler       *handler.AuthHandler
	productHandler    *handler.ProductHandler
	auditLogHandler   *handler.AuditLogHandler
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
	recoverMiddleware *middleware.RecoverMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	recoverMiddleware *middleware.RecoverMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		authHandler:       authHandler,
		productHandler:    productHandler,
		auditLogHandler:   auditLogHandler,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
		recoverMiddleware: recoverMiddleware,
	}
}

// Setup registers every route and returns the router wrapped in the
// process-wide middleware chain. The chain wraps the router itself so that
// preflight requests and unmatched routes pass through it as well.
func (r *Router) Setup() http.Handler {
	r.router.NotFoundHandler = http.HandlerFunc(routeNotFound)
	r.router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Product routes; /stats must be registered before /{id}
	products := api.PathPrefix("/products").Subrouter()
	products.Use(r.authMiddleware.Authenticate)
	products.Handle("", middleware.RequireAdmin(http.HandlerFunc(r.productHandler.Create))).Methods(http.MethodPost)
	products.HandleFunc("", r.productHandler.GetAll).Methods(http.MethodGet)
	products.Handle("/stats", middleware.RequireAdmin(http.HandlerFunc(r.productHandler.GetStatistics))).Methods(http.MethodGet)
	products.HandleFunc("/{id}", r.productHandler.GetByID).Methods(http.MethodGet)
	products.Handle("/{id}", middleware.RequireAdmin(http.HandlerFunc(r.productHandler.Update))).Methods(http.MethodPut)
	products.Handle("/{id}", middleware.RequireAdmin(http.HandlerFunc(r.productHandler.Delete))).Methods(http.MethodDelete)

	// Audit trail (admin only)
	auditLogs := api.PathPrefix("/audit-logs").Subrouter()
	auditLogs.Use(r.authMiddleware.Authenticate)
	auditLogs.Use(middleware.RequireAdmin)
	auditLogs.HandleFunc("", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	auditLogs.HandleFunc("/{id}", r.auditLogHandler.GetAuditLog).Methods(http.MethodGet)

	return r.recoverMiddleware.Handle(
		r.loggingMiddleware.Handle(
			r.corsMiddleware.Handle(r.router),
		),
	)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	response.Success(w, http.StatusOK, "Service is healthy", map[string]string{"status": "ok"})
}

func routeNotFound(w http.ResponseWriter, req *http.Request) {
	response.NotFound(w, "Route not found", map[string]string{"path": req.URL.Path})
}

func methodNotAllowed(w http.ResponseWriter, req *http.Request) {
	response.Error(w, http.StatusMethodNotAllowed, "Method not allowed", response.CodeBadRequest, nil)
}
