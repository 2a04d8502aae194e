package middleware

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// Recover convierte un panic en la vista de error (500) y lo deja en el log.
// onPanic recibe el error ya armado; http.ErrAbortHandler se re-lanza como hace net/http.
func Recover(onPanic func(w http.ResponseWriter, r *http.Request, err error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", rec)
				}
				zerolog.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("panic recovered")
				onPanic(w, r, err)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
