package owners

// Inputs de formulario. Punteros = binding parcial: nil significa
// "el campo no vino en el request" y se conserva el valor actual.

type OwnerInput struct {
	ID        *string
	FirstName *string
	LastName  *string
	Address   *string
	City      *string
	Telephone *string
}

func (in OwnerInput) applyTo(o *Owner) {
	set(&o.FirstName, in.FirstName)
	set(&o.LastName, in.LastName)
	set(&o.Address, in.Address)
	set(&o.City, in.City)
	set(&o.Telephone, in.Telephone)
}

type PetInput struct {
	Name      *string
	BirthDate *string
	Type      *string
}

// PetForm es lo que ve el formulario de pet (valores crudos, incluso inválidos).
type PetForm struct {
	ID        int
	Name      string
	BirthDate string
	Type      string
}

func (f PetForm) IsNew() bool { return f.ID == 0 }

func PetFormFrom(p Pet) PetForm {
	f := PetForm{ID: p.ID, Name: p.Name, Type: p.Type.Name}
	if !p.BirthDate.IsZero() {
		f.BirthDate = p.BirthDate.Format(DateLayout)
	}
	return f
}

func (in PetInput) applyTo(f *PetForm) {
	set(&f.Name, in.Name)
	set(&f.BirthDate, in.BirthDate)
	set(&f.Type, in.Type)
}

type VisitInput struct {
	Date        *string
	Description *string
}

type VisitForm struct {
	Date        string
	Description string
}

func (in VisitInput) applyTo(f *VisitForm) {
	set(&f.Date, in.Date)
	set(&f.Description, in.Description)
}

func set(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
