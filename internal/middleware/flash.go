package middleware

import (
	"net/http"

	"petclinic/internal/ports/flash"
)

// Flash deja en el contexto la clave que trae la cookie. No lee el store:
// el mensaje se consume solo si el request termina dibujando una vista,
// así un redirect intermedio no lo pierde.
func Flash(store flash.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(flash.CookieName)
			if err != nil || c.Value == "" || store == nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(flash.NewContext(r.Context(), store, c.Value)))
		})
	}
}
