package owners

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"petclinic/internal/platform/pagination"
	"petclinic/internal/ports/flash"
	"petclinic/internal/web"
)

const (
	ViewOwnerForm    = "owners/createOrUpdateOwnerForm"
	ViewFindOwners   = "owners/findOwners"
	ViewOwnersList   = "owners/ownersList"
	ViewOwnerDetails = "owners/ownerDetails"
)

func RegisterRoutes(r chi.Router, svc *Service, resp *web.Responder) {
	r.Route("/owners", func(or chi.Router) {
		or.Get("/", processFindHandler(svc, resp))
		or.Get("/new", initCreationHandler(resp))
		or.Post("/new", processCreationHandler(svc, resp))
		or.Get("/find", initFindHandler(resp))

		or.Route("/{ownerID}", func(one chi.Router) {
			one.Get("/", showOwnerHandler(svc, resp))
			one.Get("/edit", initUpdateOwnerHandler(svc, resp))
			one.Post("/edit", processUpdateOwnerHandler(svc, resp))

			registerPetRoutes(one, svc, resp)
			registerVisitRoutes(one, svc, resp)
		})
	})
}

func initCreationHandler(resp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.View(w, r, http.StatusOK, ViewOwnerForm, web.Model{
			"owner":  Owner{},
			"errors": FieldErrors(nil),
		})
	}
}

func processCreationHandler(svc *Service, resp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		o, err := svc.CreateOwner(r.Context(), bindOwnerInput(r))
		if errs, ok := AsFieldErrors(err); ok {
			resp.View(w, r, http.StatusOK, ViewOwnerForm, web.Model{"owner": o, "errors": errs})
			return
		}
		if err != nil {
			resp.Error(w, r, err)
			return
		}

		resp.Redirect(w, r, ownerURL(o.ID), flash.Info("New Owner Created"))
	}
}

func initFindHandler(resp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp.View(w, r, http.StatusOK, ViewFindOwners, web.Model{
			"owner":  Owner{},
			"errors": FieldErrors(nil),
		})
	}
}

// processFindHandler: 0 resultados = error notFound en lastName, 1 = redirect, más = listado.
func processFindHandler(svc *Service, resp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lastName := r.URL.Query().Get("lastName")
		page := pagination.FromQuery(r, PageSize)

		results, err := svc.FindOwners(r.Context(), lastName, page)
		if err != nil {
			resp.Error(w, r, err)
			return
		}

		if results.TotalItems == 0 {
			var errs FieldErrors
			errs.Reject("lastName", CodeNotFound)
			resp.View(w, r, http.StatusOK, ViewFindOwners, web.Model{
				"owner":  Owner{LastName: lastName},
				"errors": errs,
			})
			return
		}

		if results.TotalItems == 1 && len(results.Items) == 1 {
			resp.Redirect(w, r, ownerURL(results.Items[0].ID), nil)
			return
		}

		resp.View(w, r, http.StatusOK, ViewOwnersList, web.Model{
			"listOwners":  results.Items,
			"currentPage": results.Number,
			"totalPages":  results.TotalPages(),
			"totalItems":  results.TotalItems,
			"empty":       results.Empty(),
			"lastName":    lastName,
		})
	}
}

func showOwnerHandler(svc *Service, resp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "ownerID")
		if !ok {
			resp.NotFound(w, r, ErrNotFound)
			return
		}

		o, err := svc.FindOwner(r.Context(), id)
		if err != nil {
			handleLookupError(w, r, resp, err)
			return
		}

		resp.View(w, r, http.StatusOK, ViewOwnerDetails, web.Model{"owner": o})
	}
}

func initUpdateOwnerHandler(svc *Service, resp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "ownerID")
		if !ok {
			resp.NotFound(w, r, ErrNotFound)
			return
		}

		o, err := svc.FindOwner(r.Context(), id)
		if err != nil {
			handleLookupError(w, r, resp, err)
			return
		}

		resp.View(w, r, http.StatusOK, ViewOwnerForm, web.Model{
			"owner":  o,
			"errors": FieldErrors(nil),
		})
	}
}

func processUpdateOwnerHandler(svc *Service, resp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r, "ownerID")
		if !ok {
			resp.NotFound(w, r, ErrNotFound)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		o, err := svc.UpdateOwner(r.Context(), id, bindOwnerInput(r))
		if errs, ok := AsFieldErrors(err); ok {
			resp.View(w, r, http.StatusOK, ViewOwnerForm, web.Model{"owner": o, "errors": errs})
			return
		}
		switch {
		case errors.Is(err, ErrOwnerIDMismatch):
			resp.Redirect(w, r, ownerURL(id)+"/edit", flash.Error("Owner ID mismatch. Please try again."))
		case err != nil:
			handleLookupError(w, r, resp, err)
		default:
			resp.Redirect(w, r, ownerURL(id), flash.Info("Owner Values Updated"))
		}
	}
}

func bindOwnerInput(r *http.Request) OwnerInput {
	return OwnerInput{
		ID:        formField(r, "id"),
		FirstName: formField(r, "firstName"),
		LastName:  formField(r, "lastName"),
		Address:   formField(r, "address"),
		City:      formField(r, "city"),
		Telephone: formField(r, "telephone"),
	}
}

// formField devuelve nil si el campo no vino en el body (binding parcial).
func formField(r *http.Request, key string) *string {
	vals, ok := r.PostForm[key]
	if !ok || len(vals) == 0 {
		return nil
	}
	v := vals[0]
	return &v
}

func pathID(r *http.Request, param string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// handleLookupError separa "no existe" (404) de fallas del repositorio (500).
func handleLookupError(w http.ResponseWriter, r *http.Request, resp *web.Responder, err error) {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrPetNotFound) {
		resp.NotFound(w, r, err)
		return
	}
	resp.Error(w, r, err)
}

func ownerURL(id int) string {
	return fmt.Sprintf("/owners/%d", id)
}
