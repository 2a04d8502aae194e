package owners

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"petclinic/internal/ports/flash"
	"petclinic/internal/web"
)

const ViewPetForm = "pets/createOrUpdatePetForm"

func registerPetRoutes(r chi.Router, svc *Service, resp *web.Responder) {
	r.Get("/pets/new", initPetCreationHandler(svc, resp))
	r.Post("/pets/new", processPetCreationHandler(svc, resp))
	r.Get("/pets/{petID}/edit", initPetUpdateHandler(svc, resp))
	r.Post("/pets/{petID}/edit", processPetUpdateHandler(svc, resp))
}

func initPetCreationHandler(svc *Service, resp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := pathID(r, "ownerID")
		if !ok {
			resp.NotFound(w, r, ErrNotFound)
			return
		}

		owner, err := svc.FindOwner(r.Context(), ownerID)
		if err != nil {
			handleLookupError(w, r, resp, err)
			return
		}

		renderPetForm(w, r, svc, resp, http.StatusOK, owner, PetForm{}, nil)
	}
}

func processPetCreationHandler(svc *Service, resp *web.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := pathID(r, "ownerID")
		if !ok {
			resp.NotFound(w, r, ErrNotFound)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		owner, form, err := svc.AddPet(r.Context(), ownerID, bindPetInput(r))
		if errs, ok := AsFieldErrors(err); ok {
			renderPetForm(w, r, svc, resp, http.StatusOK, owner, form, errs)
			return
		}
		if err != nil {
			handleLookupError(w, r, resp, err)
			return
		}

		resp.Redirect(w, r, ownerURL(owner.ID), flash.Info("New Pet has been Added"))
	}
}

func initPetUpdateHandler(svc *Service, resp *web.Responder) http.HandlerFunc {
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

		renderPetForm(w, r, svc, resp, http.StatusOK, owner, PetFormFrom(pet), nil)
	}
}

func processPetUpdateHandler(svc *Service, resp *web.Responder) http.HandlerFunc {
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

		owner, form, err := svc.UpdatePet(r.Context(), ownerID, petID, bindPetInput(r))
		if errs, ok := AsFieldErrors(err); ok {
			renderPetForm(w, r, svc, resp, http.StatusOK, owner, form, errs)
			return
		}
		if err != nil {
			handleLookupError(w, r, resp, err)
			return
		}

		resp.Redirect(w, r, ownerURL(owner.ID), flash.Info("Pet details has been edited"))
	}
}

func renderPetForm(w http.ResponseWriter, r *http.Request, svc *Service, resp *web.Responder, status int, owner Owner, form PetForm, errs FieldErrors) {
	types, err := svc.PetTypes(r.Context())
	if err != nil {
		resp.Error(w, r, err)
		return
	}

	resp.View(w, r, status, ViewPetForm, web.Model{
		"owner":  owner,
		"pet":    form,
		"types":  types,
		"errors": errs,
	})
}

func bindPetInput(r *http.Request) PetInput {
	return PetInput{
		Name:      formField(r, "name"),
		BirthDate: formField(r, "birthDate"),
		Type:      formField(r, "type"),
	}
}
