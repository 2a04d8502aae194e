// Package webtest ofrece un Renderer que registra vista y modelo en lugar de dibujar HTML.
package webtest

import (
	"fmt"
	"net/http"
	"sync"

	"petclinic/internal/web"
)

type Rendered struct {
	Status int
	View   string
	Model  web.Model
}

type Renderer struct {
	mu    sync.Mutex
	calls []Rendered
}

func NewRenderer() *Renderer { return &Renderer{} }

func (r *Renderer) Render(w http.ResponseWriter, status int, view string, model web.Model) error {
	r.mu.Lock()
	r.calls = append(r.calls, Rendered{Status: status, View: view, Model: model})
	r.mu.Unlock()

	w.WriteHeader(status)
	_, err := fmt.Fprint(w, view)
	return err
}

// Last devuelve la última vista dibujada (zero value si no hubo ninguna).
func (r *Renderer) Last() Rendered {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return Rendered{}
	}
	return r.calls[len(r.calls)-1]
}

func (r *Renderer) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}
