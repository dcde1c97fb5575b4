// Package handler translates REST calls into named chaincode transactions.
// Every request opens its own role-scoped ledger session and closes it before
// the response completes, on success and failure alike.
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tendergate/internal/platform/metrics"
	"tendergate/internal/platform/middleware"
	"tendergate/internal/tender/models"
	"tendergate/pkg/gatewayerr"
	"tendergate/pkg/requestcontext"
)

// Session is one open, role-scoped channel to the ledger.
type Session interface {
	Evaluate(name string, args ...string) ([]byte, error)
	Submit(name string, args ...string) ([]byte, error)
	Close()
}

// SessionOpener opens a fresh session for a role. Implemented by the fabric
// session factory in production and by counting fakes in tests.
type SessionOpener interface {
	Open(role models.Role) (Session, error)
}

// OpenerFunc adapts a function to the SessionOpener interface.
type OpenerFunc func(role models.Role) (Session, error)

func (f OpenerFunc) Open(role models.Role) (Session, error) {
	return f(role)
}

// Handler handles the tender API endpoints.
type Handler struct {
	logger       *slog.Logger
	opener       SessionOpener
	metrics      *metrics.Metrics
	authorityMSP string
	auditorMSP   string
}

// New creates a tender Handler. metrics may be nil in tests.
func New(opener SessionOpener, logger *slog.Logger, m *metrics.Metrics, authorityMSP, auditorMSP string) *Handler {
	return &Handler{
		logger:       logger,
		opener:       opener,
		metrics:      m,
		authorityMSP: authorityMSP,
		auditorMSP:   auditorMSP,
	}
}

// Register mounts the tender API under /api with the shared middleware chain.
func (h *Handler) Register(r chi.Router) {
	api := chi.NewRouter()
	api.Use(middleware.Recovery(h.logger))
	api.Use(middleware.RequestID)
	api.Use(middleware.Logger(h.logger))

	api.Get("/info", h.handleInfo)
	api.Get("/tenders", h.handleListTenders)
	api.Post("/tenders", h.handleCreateTender)
	api.Get("/tenders/{id}", h.handleReadTender)
	api.Post("/tenders/{id}/publish", h.handlePublishTender)
	api.Post("/tenders/{id}/award", h.handleAwardTender)
	api.Post("/tenders/{id}/cancel", h.handleCancelTender)
	api.Get("/tenders/{id}/audit", h.handleAuditTrail)

	r.Mount("/api", api)
}

// handleInfo reports which role the caller would run under. No ledger call.
func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	role := requestRole(r)

	authorityMode := fmt.Sprintf("%s (Procuring Authority)", h.authorityMSP)
	if role == models.RoleAuditor {
		authorityMode = fmt.Sprintf("%s (Auditor / Read-only)", h.auditorMSP)
	}

	writeSuccess(w, map[string]any{
		"mode":          string(role),
		"authorityMode": authorityMode,
		"note":          "Chaincode enforces: Org1 can write; Org2 can read/audit only.",
	})
}

func (h *Handler) handleListTenders(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(session Session) ([]byte, error) {
		h.metrics.IncTransactionsEvaluated()
		return session.Evaluate("GetAllTenders")
	})
}

func (h *Handler) handleCreateTender(w http.ResponseWriter, r *http.Request) {
	var req models.CreateTenderRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	h.withSession(w, r, func(session Session) ([]byte, error) {
		h.metrics.IncTransactionsSubmitted()
		return session.Submit("CreateTender", req.Args()...)
	})
}

func (h *Handler) handleReadTender(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.withSession(w, r, func(session Session) ([]byte, error) {
		h.metrics.IncTransactionsEvaluated()
		return session.Evaluate("ReadTender", id)
	})
}

func (h *Handler) handlePublishTender(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.withSession(w, r, func(session Session) ([]byte, error) {
		h.metrics.IncTransactionsSubmitted()
		return session.Submit("PublishTender", id)
	})
}

func (h *Handler) handleAwardTender(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.AwardTenderRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	h.withSession(w, r, func(session Session) ([]byte, error) {
		h.metrics.IncTransactionsSubmitted()
		return session.Submit("AwardTender", id, req.AwardedToOrg, req.Remarks)
	})
}

func (h *Handler) handleCancelTender(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req models.CancelTenderRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	h.withSession(w, r, func(session Session) ([]byte, error) {
		h.metrics.IncTransactionsSubmitted()
		return session.Submit("CancelTender", id, req.Reason)
	})
}

func (h *Handler) handleAuditTrail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.withSession(w, r, func(session Session) ([]byte, error) {
		h.metrics.IncTransactionsEvaluated()
		return session.Evaluate("GetTenderAuditTrail", id)
	})
}

// withSession opens a session for the request's role, runs one invocation,
// decodes the payload, and writes the response envelope. The session is
// closed on every exit path; leaking connections under sustained errors
// would exhaust peer-side resources.
//
// Invocation and decode failures both report 403 with the normalized error
// text. The status conflates authorization denials with timeouts and network
// faults; that behavior is intentional and documented in DESIGN.md.
func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, invoke func(Session) ([]byte, error)) {
	ctx := r.Context()
	role := requestRole(r)

	session, err := h.opener.Open(role)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to open ledger session",
			"role", role,
			"error", err.Error(),
			"request_id", requestcontext.RequestID(ctx),
		)
		writeFailure(w, http.StatusInternalServerError, gatewayerr.Extract(err, h.authorityMSP))
		return
	}
	defer session.Close()
	h.metrics.IncSessionsOpened()

	payload, err := invoke(session)
	if err == nil {
		var data any
		data, err = decodePayload(payload)
		if err == nil {
			writeSuccess(w, data)
			return
		}
	}

	h.metrics.IncTransactionFailures()
	h.logger.WarnContext(ctx, "ledger invocation failed",
		"role", role,
		"error", err.Error(),
		"request_id", requestcontext.RequestID(ctx),
	)
	writeFailure(w, http.StatusForbidden, gatewayerr.Extract(err, h.authorityMSP))
}

// decodeBody parses a JSON request body, reporting 400 on malformed input.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, into any) bool {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func requestRole(r *http.Request) models.Role {
	return models.ParseRole(r.URL.Query().Get("mode"))
}
