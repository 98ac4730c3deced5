package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/contactdex/internal/domain"
	logpkg "github.com/kailas-cloud/contactdex/internal/logger"
	contactuc "github.com/kailas-cloud/contactdex/internal/usecase/contact"
	healthuc "github.com/kailas-cloud/contactdex/internal/usecase/health"
	searchuc "github.com/kailas-cloud/contactdex/internal/usecase/search"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the contact and find API.
type Server struct {
	contacts      *contactuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	contacts *contactuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		contacts: contacts,
		search:   search,
		health:   health,
		logger:   logger,
	}
	s.errorHandlers = []errorHandler{
		usageErrorHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, ErrorCodeAlreadyExists),
		sentinelHandler(domain.ErrInvalidContact, http.StatusBadRequest, ErrorCodeValidation),
	}
	return s
}

// Routes mounts every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, ErrorCodeBadRequest, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, ErrorCodeBadRequest, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/contacts", func(r chi.Router) {
		r.Post("/", s.CreateContact)
		r.Get("/", s.ListContacts)
		r.Post("/batch", s.CreateContacts)
		r.Post("/find", s.FindContacts)
		r.Get("/find", s.FindContacts)
		r.Get("/{id}", s.GetContact)
		r.Delete("/{id}", s.DeleteContact)
	})
}

// Handler returns a router with every endpoint mounted and no middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Routes(r)
	return r
}

// CreateContact handles POST /contacts.
func (s *Server) CreateContact(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	c, err := s.contacts.Add(r.Context(), req.toInput())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, contactToAPI(&c))
}

// CreateContacts handles POST /contacts/batch. The batch is stored all or nothing.
func (s *Server) CreateContacts(w http.ResponseWriter, r *http.Request) {
	var req ContactBatchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.Items) == 0 || len(req.Items) > MaxBatchSize {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest,
			fmt.Sprintf("items must hold between 1 and %d contacts", MaxBatchSize))
		return
	}

	ins := make([]contactuc.Input, len(req.Items))
	for i := range req.Items {
		ins[i] = req.Items[i].toInput()
	}
	cs, err := s.contacts.AddAll(r.Context(), ins)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := contactsToAPI(cs)
	writeJSON(w, http.StatusCreated, ContactListResponse{Items: items, Count: len(items)})
}

// ListContacts handles GET /contacts.
func (s *Server) ListContacts(w http.ResponseWriter, r *http.Request) {
	cs, err := s.contacts.List(r.Context())
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	items := contactsToAPI(cs)
	writeJSON(w, http.StatusOK, ContactListResponse{Items: items, Count: len(items)})
}

// GetContact handles GET /contacts/{id}.
func (s *Server) GetContact(w http.ResponseWriter, r *http.Request) {
	c, err := s.contacts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contactToAPI(&c))
}

// DeleteContact handles DELETE /contacts/{id}.
func (s *Server) DeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := s.contacts.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// FindContacts handles POST /contacts/find (JSON body) and GET /contacts/find?q=.
func (s *Server) FindContacts(w http.ResponseWriter, r *http.Request) {
	var args string
	if r.Method == http.MethodGet {
		args = r.URL.Query().Get("q")
	} else {
		var req FindRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
			return
		}
		args = req.Args
	}

	res, err := s.search.Find(r.Context(), args)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, findResultToAPI(&res))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a message for the client without exposing internals.
// Validation failures carry the field-level reason.
func safeDomainMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidContact) {
		return err.Error()
	}
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrAlreadyExists,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// usageErrorCodes maps rejected find commands to their codes.
var usageErrorCodes = []struct {
	sentinel error
	code     ErrorCode
}{
	{domain.ErrInvalidCommandFormat, ErrorCodeInvalidFormat},
	{domain.ErrMultipleWords, ErrorCodeMultipleWords},
	{domain.ErrInvalidValue, ErrorCodeInvalidValue},
	{domain.ErrNoParameters, ErrorCodeNoParameters},
}

// usageErrorHandler answers rejected find commands with their user-facing message.
func usageErrorHandler(w http.ResponseWriter, err error, _ string) bool {
	var ue *domain.UsageError
	if !errors.As(err, &ue) {
		return false
	}
	code := ErrorCodeBadRequest
	for _, uc := range usageErrorCodes {
		if errors.Is(ue.Err, uc.sentinel) {
			code = uc.code
			break
		}
	}
	writeError(w, http.StatusBadRequest, code, ue.Message)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logpkg.FromContextOr(r.Context(), s.logger)
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Debug("request rejected", zap.Error(err))
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
