package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"financetools/internal/mcp"
)

// maxBodyBytes caps request bodies on the tool endpoints.
const maxBodyBytes = 1 << 20

func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	correlationID := GetCorrelationID(r.Context())

	req, err := mcp.DecodeRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		rpcErr := mcp.FormatMCPError(err)
		mcp.LogMCPError(r.Context(), s.logger, "", "", correlationID, rpcErr.Code, rpcErr.Message)
		sse := mcp.NewSSEWriter(w)
		if err := sse.SendError(nil, rpcErr.Code, rpcErr.Message, rpcErr.Data); err != nil {
			s.logger.Warn("sse_write_failed", "error", err, "correlation_id", correlationID)
		}
		return
	}

	resp := s.dispatcher.Handle(r.Context(), req, correlationID)
	if resp == nil {
		w.WriteHeader(http.StatusAccepted)
		return
	}

	sse := mcp.NewSSEWriter(w)
	if err := sse.SendEvent(resp); err != nil {
		s.logger.Warn("sse_write_failed", "error", err, "correlation_id", correlationID)
	}
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.dispatcher.ListTools())
}

func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	correlationID := GetCorrelationID(r.Context())

	if !s.registry.Has(name) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("unknown tool %q", name)})
		return
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	args, err := mcp.DecodeArguments(raw)
	if err != nil {
		rpcErr := mcp.FormatMCPError(err)
		writeJSON(w, mcp.HTTPStatusFromError(rpcErr), map[string]any{"error": rpcErr.Message, "detail": rpcErr.Data})
		return
	}

	mcp.LogMCPRequest(r.Context(), s.logger, "POST /tools", name, correlationID)
	res, err := s.dispatcher.Invoke(r.Context(), name, args)
	if err != nil {
		rpcErr := mcp.FormatMCPError(err)
		mcp.LogMCPError(r.Context(), s.logger, "POST /tools", name, correlationID, rpcErr.Code, rpcErr.Message)
		writeJSON(w, mcp.HTTPStatusFromError(rpcErr), map[string]string{"error": rpcErr.Message})
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// HealthCheckHandler returns a simple health check handler.
func HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
