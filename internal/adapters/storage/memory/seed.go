package memory

import (
	"time"

	"petclinic/internal/domain/owners"
	"petclinic/internal/domain/vets"
)

// Datos de ejemplo de la clínica. Son los mismos que carga postgres/data.sql.

var (
	PetTypes = []owners.PetType{
		{ID: 1, Name: "cat"},
		{ID: 2, Name: "dog"},
		{ID: 3, Name: "lizard"},
		{ID: 4, Name: "snake"},
		{ID: 5, Name: "bird"},
		{ID: 6, Name: "hamster"},
	}

	specialties = map[string]vets.Specialty{
		"radiology": {ID: 1, Name: "radiology"},
		"surgery":   {ID: 2, Name: "surgery"},
		"dentistry": {ID: 3, Name: "dentistry"},
	}
)

func day(s string) time.Time {
	t, err := time.Parse(owners.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func petType(name string) owners.PetType {
	for _, t := range PetTypes {
		if t.Name == name {
			return t
		}
	}
	panic("unknown seed pet type " + name)
}

func SeedOwners() []owners.Owner {
	return []owners.Owner{
		{ID: 1, FirstName: "George", LastName: "Franklin", Address: "110 W. Liberty St.", City: "Madison", Telephone: "6085551023",
			Pets: []owners.Pet{{ID: 1, Name: "Leo", BirthDate: day("2010-09-07"), Type: petType("cat")}}},
		{ID: 2, FirstName: "Betty", LastName: "Davis", Address: "638 Cardinal Ave.", City: "Sun Prairie", Telephone: "6085551749",
			Pets: []owners.Pet{{ID: 2, Name: "Basil", BirthDate: day("2012-08-06"), Type: petType("hamster")}}},
		{ID: 3, FirstName: "Eduardo", LastName: "Rodriquez", Address: "2693 Commerce St.", City: "McFarland", Telephone: "6085558763",
			Pets: []owners.Pet{
				{ID: 3, Name: "Rosy", BirthDate: day("2011-04-17"), Type: petType("dog")},
				{ID: 4, Name: "Jewel", BirthDate: day("2010-03-07"), Type: petType("dog")},
			}},
		{ID: 4, FirstName: "Harold", LastName: "Davis", Address: "563 Friendly St.", City: "Windsor", Telephone: "6085553198",
			Pets: []owners.Pet{{ID: 5, Name: "Iggy", BirthDate: day("2010-11-30"), Type: petType("lizard")}}},
		{ID: 5, FirstName: "Peter", LastName: "McTavish", Address: "2387 S. Fair Way", City: "Madison", Telephone: "6085552765",
			Pets: []owners.Pet{{ID: 6, Name: "George", BirthDate: day("2010-01-20"), Type: petType("snake")}}},
		{ID: 6, FirstName: "Jean", LastName: "Coleman", Address: "105 N. Lake St.", City: "Monona", Telephone: "6085552654",
			Pets: []owners.Pet{
				{ID: 7, Name: "Samantha", BirthDate: day("2012-09-04"), Type: petType("cat"), Visits: []owners.Visit{
					{ID: 1, Date: day("2013-01-01"), Description: "rabies shot"},
					{ID: 4, Date: day("2013-01-04"), Description: "spayed"},
				}},
				{ID: 8, Name: "Max", BirthDate: day("2012-09-04"), Type: petType("cat"), Visits: []owners.Visit{
					{ID: 2, Date: day("2013-01-02"), Description: "rabies shot"},
					{ID: 3, Date: day("2013-01-03"), Description: "neutered"},
				}},
			}},
		{ID: 7, FirstName: "Jeff", LastName: "Black", Address: "1450 Oak Blvd.", City: "Monona", Telephone: "6085555387",
			Pets: []owners.Pet{{ID: 9, Name: "Lucky", BirthDate: day("2011-08-06"), Type: petType("bird")}}},
		{ID: 8, FirstName: "Maria", LastName: "Escobito", Address: "345 Maple St.", City: "Madison", Telephone: "6085557683",
			Pets: []owners.Pet{{ID: 10, Name: "Mulligan", BirthDate: day("2007-02-24"), Type: petType("dog")}}},
		{ID: 9, FirstName: "David", LastName: "Schroeder", Address: "2749 Blackhawk Trail", City: "Madison", Telephone: "6085559435",
			Pets: []owners.Pet{{ID: 11, Name: "Freddy", BirthDate: day("2010-03-09"), Type: petType("bird")}}},
		{ID: 10, FirstName: "Carlos", LastName: "Estaban", Address: "2335 Independence La.", City: "Waunakee", Telephone: "6085555487",
			Pets: []owners.Pet{
				{ID: 12, Name: "Lucky", BirthDate: day("2010-06-24"), Type: petType("dog")},
				{ID: 13, Name: "Sly", BirthDate: day("2012-06-08"), Type: petType("cat")},
			}},
	}
}

func SeedVets() []vets.Vet {
	return []vets.Vet{
		{ID: 1, FirstName: "James", LastName: "Carter"},
		{ID: 2, FirstName: "Helen", LastName: "Leary", Specialties: []vets.Specialty{specialties["radiology"]}},
		{ID: 3, FirstName: "Linda", LastName: "Douglas", Specialties: []vets.Specialty{specialties["surgery"], specialties["dentistry"]}},
		{ID: 4, FirstName: "Rafael", LastName: "Ortega", Specialties: []vets.Specialty{specialties["surgery"]}},
		{ID: 5, FirstName: "Henry", LastName: "Stevens", Specialties: []vets.Specialty{specialties["radiology"]}},
		{ID: 6, FirstName: "Sharon", LastName: "Jenkins"},
	}
}

// Load precarga owners con sus ids originales; los ids nuevos siguen después.
func (r *ownerRepo) Load(list []owners.Owner) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, o := range list {
		r.byID[o.ID] = o.Clone()
		r.bump(o)
	}
}

// NewSeededOwnerRepo es el repo por defecto cuando no hay DB_DSN.
func NewSeededOwnerRepo() *ownerRepo {
	r := NewOwnerRepo(PetTypes)
	r.Load(SeedOwners())
	return r
}
