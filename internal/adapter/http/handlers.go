package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/couchcryptid/storm-incident-reports/internal/domain"
	"github.com/couchcryptid/storm-incident-reports/internal/store"
)

const maxBodyBytes = 1 << 20

// Client-facing messages. Storage errors never reach the response body.
const (
	msgCreated      = "Evento registrado com sucesso"
	msgBodyTooLarge = "O corpo da requisição excede o tamanho máximo permitido"
	msgInvalidID    = "O identificador do evento deve ser um número inteiro"
	msgNotFound     = "Evento não encontrado"
	msgCreateFailed = "Erro ao registrar evento"
	msgListFailed   = "Erro ao buscar eventos"
	msgGetFailed    = "Erro ao buscar evento"
	msgTypesFailed  = "Erro ao buscar tipos de eventos"
	msgInternal     = "Erro interno do servidor"
	msgNoRoute      = "Rota não encontrada"
	msgBadMethod    = "Método não permitido"
)

type createdResponse struct {
	Success bool   `json:"sucesso"`
	Message string `json:"mensagem"`
	ID      int64  `json:"id"`
}

type errorResponse struct {
	Success bool   `json:"sucesso"`
	Message string `json:"mensagem"`
}

func (s *Server) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, domain.ReasonInvalidBody)
		return
	}

	res := domain.ValidateReport(body)
	if !res.OK {
		s.metrics.ValidationFailures.Inc()
		writeError(w, http.StatusBadRequest, res.Reason)
		return
	}

	report, err := s.store.CreateReport(r.Context(), res.Report)
	if err != nil {
		s.metrics.ReportCreateFailures.Inc()
		s.logger.ErrorContext(r.Context(), "create report failed", "nome", res.Report.Name, "error", err)
		writeError(w, http.StatusInternalServerError, msgCreateFailed)
		return
	}
	s.metrics.ReportsCreated.Inc()

	if s.publisher != nil {
		s.publisher.Enqueue(report)
	}

	writeJSON(w, http.StatusCreated, createdResponse{Success: true, Message: msgCreated, ID: report.ID})
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.store.ListReports(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list reports failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgListFailed)
		return
	}
	if reports == nil {
		reports = []domain.Report{}
	}
	writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidID)
		return
	}

	report, err := s.store.GetReport(r.Context(), id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNotFound)
		return
	case err != nil:
		s.logger.ErrorContext(r.Context(), "get report failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, msgGetFailed)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleListEventTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.store.ListActiveEventTypes(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list event types failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgTypesFailed)
		return
	}
	if types == nil {
		types = []domain.EventType{}
	}
	writeJSON(w, http.StatusOK, types)
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, msgNoRoute)
}

func methodNotAllowed(allowed ...string) http.Handler {
	allow := strings.Join(allowed, ", ")
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Allow", allow)
		writeError(w, http.StatusMethodNotAllowed, msgBadMethod)
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // headers already sent
}
