package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"kerbside/internal/catalog"
	"kerbside/internal/domain"
	"kerbside/internal/ports"
	"kerbside/internal/workers/sweeprunner"
)

// Server exposes the engine to the web application layer. Auth, sessions,
// and page rendering live upstream; every handler takes the acting host id
// explicitly where a write is involved.
type Server struct {
	assessor     ports.Assessor
	declarations ports.Declarations
	jobs         ports.SweepJobStore
	processor    sweeprunner.Processor
}

func New(assessor ports.Assessor, declarations ports.Declarations, jobs ports.SweepJobStore, processor sweeprunner.Processor) *Server {
	return &Server{assessor: assessor, declarations: declarations, jobs: jobs, processor: processor}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/api/health", s.handleHealth)
	r.Get("/api/declarations", s.handleListDeclarations)
	r.Get("/api/vehicles/{vehicleID}/assessment", s.handleAssessment)
	r.Put("/api/vehicles/{vehicleID}/declaration", s.handleUpdateDeclaration)
	r.Post("/api/sweep", s.handleSweep)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "kerbside"})
}

func (s *Server) handleListDeclarations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalog.All())
}

func (s *Server) handleAssessment(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "vehicleID")
	assessment, err := s.assessor.AssessVehicle(r.Context(), vehicleID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

type updateDeclarationRequest struct {
	DeclarationID domain.DeclarationID `json:"declaration_id"`
	ActorID       string               `json:"actor_id"`
}

func (s *Server) handleUpdateDeclaration(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "vehicleID")
	var req updateDeclarationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := s.declarations.UpdateDeclaration(r.Context(), vehicleID, req.DeclarationID, req.ActorID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated", "declaration_id": string(req.DeclarationID)})
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	queued, err := s.jobs.EnqueueFleet(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if r.URL.Query().Get("wait") == "true" {
		processed, failed, err := sweeprunner.Drain(r.Context(), s.jobs, s.processor)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"queued": queued, "processed": processed, "failed": failed})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]int{"queued": queued})
}

// writeDomainError maps engine errors onto HTTP statuses. A locked
// declaration is the expected, recoverable refusal and carries the blocking
// claim's detail; store unavailability is a retry-capable 503.
func writeDomainError(w http.ResponseWriter, err error) {
	var locked *domain.DeclarationLockedError
	if errors.As(err, &locked) {
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":        "declaration_locked",
			"claim_id":     locked.ClaimID,
			"claim_status": locked.ClaimStatus,
			"filed_at":     locked.FiledAt,
		})
		return
	}
	var invalid *domain.ValidationError
	if errors.As(err, &invalid) {
		writeError(w, http.StatusBadRequest, invalid.Error())
		return
	}
	var unavailable *domain.DataUnavailableError
	if errors.As(err, &unavailable) {
		writeError(w, http.StatusServiceUnavailable, unavailable.Error())
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "vehicle not found")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
