package http

import (
	"net/http"

	"outlay/internal/core"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	month := core.CurrentMonth()
	if raw := r.URL.Query().Get("month"); raw != "" {
		var err error
		month, err = core.ParseMonth(raw)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "month: must match YYYY-MM")
			return
		}
	}

	dashboard, err := s.dashboard.Compute(r.Context(), month)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, dashboard)
}
