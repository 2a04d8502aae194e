package vets

import "sort"

type Specialty struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Vet struct {
	ID          int         `json:"id"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Specialties []Specialty `json:"specialties"`
}

// SortedSpecialties ordena por nombre (así se muestran en el listado).
func (v Vet) SortedSpecialties() []Specialty {
	out := make([]Specialty, len(v.Specialties))
	copy(out, v.Specialties)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (v Vet) NrOfSpecialties() int { return len(v.Specialties) }
