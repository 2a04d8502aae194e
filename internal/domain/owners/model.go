package owners

import "time"

// DateLayout es el formato de fecha que usan los formularios (birthDate, date).
const DateLayout = "2006-01-02"

// PetType es dato de referencia (dog, cat, ...). Se administra fuera de estos flujos.
type PetType struct {
	ID   int
	Name string
}

// Visit pertenece a exactamente un Pet y solo se crea vía Owner.AddVisit.
type Visit struct {
	ID          int
	Date        time.Time
	Description string
}

// Pet no tiene ciclo de vida propio: se persiste guardando el Owner.
type Pet struct {
	ID        int
	Name      string
	BirthDate time.Time
	Type      PetType

	// Orden de inserción = orden cronológico en que se agregaron.
	Visits []Visit
}

func (p Pet) IsNew() bool { return p.ID == 0 }

// Owner es la raíz del agregado (owner + pets + visits).
type Owner struct {
	ID        int
	FirstName string `form:"firstName" validate:"notblank"`
	LastName  string `form:"lastName" validate:"notblank"`
	Address   string `form:"address" validate:"notblank"`
	City      string `form:"city" validate:"notblank"`
	Telephone string `form:"telephone" validate:"notblank,number"`

	Pets []Pet
}

func (o Owner) IsNew() bool { return o.ID == 0 }

// PetByName busca por nombre exacto (case-sensitive).
// Con ignoreNew=true se omiten los pets todavía no persistidos.
func (o Owner) PetByName(name string, ignoreNew bool) (Pet, bool) {
	for _, p := range o.Pets {
		if ignoreNew && p.IsNew() {
			continue
		}
		if p.Name == name {
			return p, true
		}
	}
	return Pet{}, false
}

func (o Owner) PetByID(id int) (Pet, bool) {
	for _, p := range o.Pets {
		if !p.IsNew() && p.ID == id {
			return p, true
		}
	}
	return Pet{}, false
}

// AddPet agrega al final de la colección.
func (o *Owner) AddPet(p Pet) {
	o.Pets = append(o.Pets, p)
}

// ReplacePet reemplaza el pet con el mismo id conservando su posición.
func (o *Owner) ReplacePet(p Pet) bool {
	for i := range o.Pets {
		if o.Pets[i].ID == p.ID && !p.IsNew() {
			o.Pets[i] = p
			return true
		}
	}
	return false
}

// AddVisit agrega la visita al final del historial del pet indicado.
func (o *Owner) AddVisit(petID int, v Visit) bool {
	for i := range o.Pets {
		if o.Pets[i].ID == petID && !o.Pets[i].IsNew() {
			o.Pets[i].Visits = append(o.Pets[i].Visits, v)
			return true
		}
	}
	return false
}

// Clone copia profunda; los repos la usan para no compartir slices con el caller.
func (o Owner) Clone() Owner {
	out := o
	out.Pets = make([]Pet, len(o.Pets))
	for i, p := range o.Pets {
		cp := p
		cp.Visits = append([]Visit(nil), p.Visits...)
		out.Pets[i] = cp
	}
	return out
}
