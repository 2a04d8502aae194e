package web

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"petclinic/internal/platform/metrics"
	"petclinic/internal/ports/flash"
)

// Nombres de vista compartidos.
const (
	ViewWelcome = "welcome"
	ViewError   = "error"
)

// Responder concentra las tres salidas de un handler: vista, redirect (con flash opcional) y error.
type Responder struct {
	renderer Renderer
	flashes  flash.Store
	flashTTL time.Duration
}

func NewResponder(renderer Renderer, flashes flash.Store, flashTTL time.Duration) *Responder {
	if flashTTL <= 0 {
		flashTTL = 5 * time.Minute
	}
	return &Responder{renderer: renderer, flashes: flashes, flashTTL: flashTTL}
}

// View consume el flash pendiente (si lo hay), lo agrega al modelo y dibuja la vista.
func (rs *Responder) View(w http.ResponseWriter, r *http.Request, status int, view string, model Model) {
	if model == nil {
		model = Model{}
	}
	if flash.Pending(r.Context()) {
		http.SetCookie(w, &http.Cookie{
			Name:     flash.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		m, ok, err := flash.Take(r.Context())
		if err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("flash store take failed")
		}
		if ok {
			metrics.FlashMessagesTotal.WithLabelValues("take").Inc()
			model[string(m.Kind)] = m.Text
		}
	}

	if err := rs.renderer.Render(w, status, view, model); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("view", view).Msg("render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// Redirect responde 302. Si msg != nil lo guarda para el próximo request.
func (rs *Responder) Redirect(w http.ResponseWriter, r *http.Request, to string, msg *flash.Message) {
	if msg != nil && rs.flashes != nil {
		key := uuid.NewString()
		if err := rs.flashes.Put(r.Context(), key, *msg, rs.flashTTL); err != nil {
			// El redirect sigue igual; solo se pierde el aviso.
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("flash store put failed")
		} else {
			metrics.FlashMessagesTotal.WithLabelValues("put").Inc()
			http.SetCookie(w, &http.Cookie{
				Name:     flash.CookieName,
				Value:    key,
				Path:     "/",
				MaxAge:   int(rs.flashTTL.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
	}
	http.Redirect(w, r, to, http.StatusFound)
}

// NotFound: recurso identificado por path que no existe. No es un error de validación.
func (rs *Responder) NotFound(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Info().Err(err).Str("path", r.URL.Path).Msg("resource not found")
	rs.View(w, r, http.StatusNotFound, ViewError, Model{
		"status": http.StatusNotFound,
		"reason": http.StatusText(http.StatusNotFound),
		"detail": err.Error(),
	})
}

// Error: fallas inesperadas (repositorio caído, panics). El detalle solo va al log.
func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("request failed")
	rs.View(w, r, http.StatusInternalServerError, ViewError, Model{
		"status": http.StatusInternalServerError,
		"reason": http.StatusText(http.StatusInternalServerError),
		"detail": "Something happened...",
	})
}
