package http

import (
	"net/http"
)

type categoryView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w)
		return
	}

	categories, err := s.categories.ListCategories(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	views := make([]categoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, categoryView{ID: c.ID, Name: c.Name, Color: c.Color, Icon: c.Icon})
	}
	writeData(w, http.StatusOK, views)
}
