package vets

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"petclinic/internal/platform/pagination"
	"petclinic/internal/web"
)

const ViewVetList = "vets/vetList"

func RegisterRoutes(r chi.Router, svc *Service, resp *web.Responder) {
	r.Get("/vets.html", showVetListHandler(svc, resp))
	r.Get("/vets", listVetsHandler(svc))
}

// vetsResponse mantiene la forma {"vetList": [...]} que consumen los clientes existentes.
type vetsResponse struct {
	VetList []Vet `json:"vetList"`
}

func showVetListHandler(svc *Service, resp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := svc.Page(r.Context(), pagination.FromQuery(r, PageSize))
		if err != nil {
			resp.Error(w, r, err)
			return
		}

		resp.View(w, r, http.StatusOK, ViewVetList, web.Model{
			"listVets":    page.Items,
			"currentPage": page.Number,
			"totalPages":  page.TotalPages(),
			"totalItems":  page.TotalItems,
		})
	}
}

// listVetsHandler godoc
// @Summary Listar veterinarios
// @Description Devuelve todos los veterinarios con sus especialidades.
// @Tags vets
// @Produce json
// @Success 200 {object} vetsResponse
// @Failure 500 {string} string "internal error"
// @Router /vets [get]
func listVetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []Vet{}
		}

		writeJSON(w, http.StatusOK, vetsResponse{VetList: items})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
