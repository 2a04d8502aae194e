package pagination

import (
	"net/http"
	"strconv"
)

// Request identifica una página (1-based) de tamaño fijo.
type Request struct {
	Number int
	Size   int
}

func NewRequest(number, size int) Request {
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = 1
	}
	return Request{Number: number, Size: size}
}

// FromQuery lee ?page=N; valores inválidos caen a la página 1.
func FromQuery(r *http.Request, size int) Request {
	n := 1
	if v := r.URL.Query().Get("page"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 {
			n = p
		}
	}
	return NewRequest(n, size)
}

func (r Request) Offset() int {
	return (r.Number - 1) * r.Size
}

// Page es el resultado que calcula el repositorio: items + metadata de navegación.
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	TotalItems int
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	pages := p.TotalItems / p.Size
	if p.TotalItems%p.Size > 0 {
		pages++
	}
	return pages
}

func (p Page[T]) Empty() bool { return len(p.Items) == 0 }

// Slice pagina una colección ya cargada en memoria.
func Slice[T any](all []T, req Request) Page[T] {
	page := Page[T]{Number: req.Number, Size: req.Size, TotalItems: len(all)}

	start := req.Offset()
	if start >= len(all) {
		page.Items = []T{}
		return page
	}
	end := start + req.Size
	if end > len(all) {
		end = len(all)
	}
	page.Items = append([]T(nil), all[start:end]...)
	return page
}
