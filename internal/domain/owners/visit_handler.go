package owners

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"petclinic/internal/ports/flash"
	"petclinic/internal/web"
)

const ViewVisitForm = "pets/createOrUpdateVisitForm"

func registerVisitRoutes(r chi.Router, svc *Service, resp *web.Responder) {
	r.Get("/pets/{petID}/visits/new", initNewVisitHandler(svc, resp))
	r.Post("/pets/{petID}/visits/new", processNewVisitHandler(svc, resp))
}

func initNewVisitHandler(svc *Service, resp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok1 := pathID(r, "ownerID")
		petID, ok2 := pathID(r, "petID")
		if !ok1 || !ok2 {
			resp.NotFound(w, r, ErrPetNotFound)
			return
		}

		owner, pet, err := svc.FindPet(r.Context(), ownerID, petID)
		if err != nil {
			handleLookupError(w, r, resp, err)
			return
		}

		resp.View(w, r, http.StatusOK, ViewVisitForm, web.Model{
			"owner":  owner,
			"pet":    pet,
			"visit":  svc.NewVisitForm(),
			"errors": FieldErrors(nil),
		})
	}
}

func processNewVisitHandler(svc *Service, resp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok1 := pathID(r, "ownerID")
		petID, ok2 := pathID(r, "petID")
		if !ok1 || !ok2 {
			resp.NotFound(w, r, ErrPetNotFound)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		owner, pet, form, err := svc.AddVisit(r.Context(), ownerID, petID, VisitInput{
			Date:        formField(r, "date"),
			Description: formField(r, "description"),
		})
		if errs, ok := AsFieldErrors(err); ok {
			resp.View(w, r, http.StatusOK, ViewVisitForm, web.Model{
				"owner":  owner,
				"pet":    pet,
				"visit":  form,
				"errors": errs,
			})
			return
		}
		if err != nil {
			handleLookupError(w, r, resp, err)
			return
		}

		resp.Redirect(w, r, ownerURL(owner.ID), flash.Info("Your visit has been booked"))
	}
}
