package adapthttp

import (
	"net/http"

	"scaleshift/internal/app"
)

// Server is the driving HTTP adapter that routes requests to the tracker and
// the access guard.
type Server struct {
	tracker     *app.Tracker
	authSvc     *app.AuthService
	oidcConfig  OIDCConfig
	webDir      string
	disableAuth bool
}

// New creates a Server. An empty webDir serves the API only.
func New(tr *app.Tracker, authSvc *app.AuthService, webDir string) *Server {
	return &Server{tracker: tr, authSvc: authSvc, webDir: webDir}
}

// WithOIDC enables SSO login.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// WithoutAuth disables the access guard. Used by tests.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

func (s *Server) authRequired() bool {
	return !s.disableAuth && s.authSvc != nil && s.authSvc.Enabled()
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	protected := http.NewServeMux()
	protected.HandleFunc("/profile", s.handleProfile)
	protected.HandleFunc("/entries", s.handleEntries)
	protected.HandleFunc("/entries/{id}", s.handleEntry)
	protected.HandleFunc("/summary", s.handleSummary)
	protected.HandleFunc("/history", s.handleHistory)
	protected.HandleFunc("/session", s.handleSession)

	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "state": s.tracker.State().String()})
	})
	api.HandleFunc("/config", s.handleConfig)
	api.HandleFunc("/login", s.handleLogin)
	api.HandleFunc("/logout", s.handleLogout)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)
	api.Handle("/", s.authMiddleware(protected))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	if s.webDir != "" {
		root.Handle("/", spaFromDisk(s.webDir))
	}

	return withNoCache(s.loggingMiddleware(root))
}
