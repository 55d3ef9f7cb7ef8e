package server

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every render endpoint replies with
type Response struct {
	Success      bool   `json:"success"`
	ResultObj    string `json:"resultObj,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.Error("Failed to encode response", err)
	}
}

func (s *Server) writeSuccess(w http.ResponseWriter, result string) {
	s.writeJSON(w, http.StatusOK, Response{Success: true, ResultObj: result})
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, Response{Success: false, ErrorMessage: message})
}
