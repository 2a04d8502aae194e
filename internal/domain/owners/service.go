package owners

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"petclinic/internal/platform/metrics"
	"petclinic/internal/platform/pagination"
)

// PageSize del listado de owners.
const PageSize = 5

var (
	ErrPetNotFound = errors.New("pet not found")

	// El id del formulario no coincide con el del path (form adulterado o viejo).
	ErrOwnerIDMismatch = errors.New("owner id mismatch")
)

type Service struct {
	repo Repository
	log  zerolog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "owners").Logger(),
		now:  time.Now,
	}
}

func (s *Service) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *Service) FindOwner(ctx context.Context, id int) (Owner, error) {
	return s.repo.FindByID(ctx, id)
}

// FindOwners: prefijo vacío = todos.
func (s *Service) FindOwners(ctx context.Context, lastName string, page pagination.Request) (pagination.Page[Owner], error) {
	if lastName == "" {
		return s.repo.FindAll(ctx, page)
	}
	return s.repo.FindByLastNameStartingWith(ctx, lastName, page)
}

func (s *Service) PetTypes(ctx context.Context) ([]PetType, error) {
	return s.repo.FindPetTypes(ctx)
}

// CreateOwner devuelve siempre el owner bindeado para poder re-mostrar el form.
func (s *Service) CreateOwner(ctx context.Context, in OwnerInput) (Owner, error) {
	var o Owner
	in.applyTo(&o)

	if errs := ValidateOwner(o); len(errs) > 0 {
		countFailures("owner", errs)
		return o, errs
	}

	saved, err := s.repo.Save(ctx, o)
	if err != nil {
		return o, fmt.Errorf("save owner: %w", err)
	}

	metrics.AggregateMutationsTotal.WithLabelValues("owner_created").Inc()
	s.log.Info().Int("owner_id", saved.ID).Msg("owner created")
	return saved, nil
}

// UpdateOwner: el id del path manda. Los campos ausentes conservan el valor persistido.
func (s *Service) UpdateOwner(ctx context.Context, id int, in OwnerInput) (Owner, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Owner{}, err
	}

	// Un id que no es entero es un error de campo; uno distinto al del path, un mismatch.
	var idErrs FieldErrors
	if in.ID != nil {
		if submitted := strings.TrimSpace(*in.ID); submitted != "" {
			n, err := strconv.Atoi(submitted)
			switch {
			case err != nil:
				idErrs.Reject("id", CodeTypeMismatch)
			case n != id:
				s.log.Warn().Int("owner_id", id).Int("submitted_id", n).Msg("owner id mismatch")
				return current, ErrOwnerIDMismatch
			}
		}
	}

	in.applyTo(&current)
	if errs := append(idErrs, ValidateOwner(current)...); len(errs) > 0 {
		countFailures("owner", errs)
		return current, errs
	}

	saved, err := s.repo.Save(ctx, current)
	if err != nil {
		return current, fmt.Errorf("save owner %d: %w", id, err)
	}

	metrics.AggregateMutationsTotal.WithLabelValues("owner_updated").Inc()
	s.log.Info().Int("owner_id", id).Msg("owner updated")
	return saved, nil
}

func (s *Service) FindPet(ctx context.Context, ownerID, petID int) (Owner, Pet, error) {
	owner, err := s.repo.FindByID(ctx, ownerID)
	if err != nil {
		return Owner{}, Pet{}, err
	}
	pet, ok := owner.PetByID(petID)
	if !ok {
		return owner, Pet{}, ErrPetNotFound
	}
	return owner, pet, nil
}

func (s *Service) AddPet(ctx context.Context, ownerID int, in PetInput) (Owner, PetForm, error) {
	var form PetForm
	in.applyTo(&form)

	owner, err := s.repo.FindByID(ctx, ownerID)
	if err != nil {
		return Owner{}, form, err
	}
	types, err := s.repo.FindPetTypes(ctx)
	if err != nil {
		return owner, form, fmt.Errorf("load pet types: %w", err)
	}

	pet, errs := s.bindPet(owner, Pet{}, form, types)
	if len(errs) > 0 {
		countFailures("pet", errs)
		return owner, form, errs
	}

	owner.AddPet(pet)
	saved, err := s.repo.Save(ctx, owner)
	if err != nil {
		return owner, form, fmt.Errorf("save owner %d: %w", ownerID, err)
	}

	metrics.AggregateMutationsTotal.WithLabelValues("pet_created").Inc()
	s.log.Info().Int("owner_id", ownerID).Str("pet", pet.Name).Msg("pet added")
	return saved, form, nil
}

// UpdatePet no vuelve a tomar el tipo del formulario: se conserva el del pet cargado.
func (s *Service) UpdatePet(ctx context.Context, ownerID, petID int, in PetInput) (Owner, PetForm, error) {
	owner, current, err := s.FindPet(ctx, ownerID, petID)
	if err != nil {
		return owner, PetForm{}, err
	}

	form := PetFormFrom(current)
	in.Type = nil
	in.applyTo(&form)

	pet, errs := s.bindPet(owner, current, form, nil)
	if len(errs) > 0 {
		countFailures("pet", errs)
		return owner, form, errs
	}

	owner.ReplacePet(pet)
	saved, err := s.repo.Save(ctx, owner)
	if err != nil {
		return owner, form, fmt.Errorf("save owner %d: %w", ownerID, err)
	}

	metrics.AggregateMutationsTotal.WithLabelValues("pet_updated").Inc()
	s.log.Info().Int("owner_id", ownerID).Int("pet_id", petID).Msg("pet updated")
	return saved, form, nil
}

// bindPet valida el form contra el owner. Con base nueva también exige y resuelve el tipo.
func (s *Service) bindPet(owner Owner, base Pet, form PetForm, types []PetType) (Pet, FieldErrors) {
	errs := validateStruct(petFields{Name: form.Name, BirthDate: form.BirthDate})
	pet := base
	pet.Name = form.Name

	if !errs.Has("name") {
		if other, ok := owner.PetByName(form.Name, true); ok && (base.IsNew() || other.ID != base.ID) {
			errs.Reject("name", CodeDuplicate)
		}
	}

	if !errs.Has("birthDate") {
		bd, err := time.Parse(DateLayout, strings.TrimSpace(form.BirthDate))
		switch {
		case err != nil:
			errs.Reject("birthDate", CodeTypeMismatch)
		case bd.After(s.today()):
			errs.Reject("birthDate", CodeFutureBirthDate)
		default:
			pet.BirthDate = bd
		}
	}

	if base.IsNew() {
		if isBlank(form.Type) {
			errs.Reject("type", CodeRequired)
		} else if t, ok := petTypeByName(types, form.Type); ok {
			pet.Type = t
		} else {
			errs.Reject("type", CodeTypeMismatch)
		}
	}

	return pet, errs
}

func petTypeByName(types []PetType, name string) (PetType, bool) {
	name = strings.TrimSpace(name)
	for _, t := range types {
		if t.Name == name {
			return t, true
		}
	}
	return PetType{}, false
}

// NewVisitForm arranca con la fecha de hoy, como la visita por defecto.
func (s *Service) NewVisitForm() VisitForm {
	return VisitForm{Date: s.today().Format(DateLayout)}
}

func (s *Service) AddVisit(ctx context.Context, ownerID, petID int, in VisitInput) (Owner, Pet, VisitForm, error) {
	var form VisitForm
	in.applyTo(&form)

	owner, pet, err := s.FindPet(ctx, ownerID, petID)
	if err != nil {
		return owner, pet, form, err
	}

	errs := validateStruct(visitFields{Description: form.Description})
	visit := Visit{Description: form.Description, Date: s.today()}
	if d := strings.TrimSpace(form.Date); d != "" {
		parsed, err := time.Parse(DateLayout, d)
		if err != nil {
			errs.Reject("date", CodeTypeMismatch)
		} else {
			visit.Date = parsed
		}
	}
	if len(errs) > 0 {
		countFailures("visit", errs)
		return owner, pet, form, errs
	}

	owner.AddVisit(petID, visit)
	saved, err := s.repo.Save(ctx, owner)
	if err != nil {
		return owner, pet, form, fmt.Errorf("save owner %d: %w", ownerID, err)
	}
	if p, ok := saved.PetByID(petID); ok {
		pet = p
	}

	metrics.AggregateMutationsTotal.WithLabelValues("visit_created").Inc()
	s.log.Info().Int("owner_id", ownerID).Int("pet_id", petID).Msg("visit booked")
	return saved, pet, form, nil
}

func countFailures(form string, errs FieldErrors) {
	for _, field := range errs.Fields() {
		metrics.ValidationFailuresTotal.WithLabelValues(form, field).Inc()
	}
}
