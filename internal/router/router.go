package router

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "petclinic/docs"
	mem "petclinic/internal/adapters/storage/memory"
	pg "petclinic/internal/adapters/storage/postgres"
	rdb "petclinic/internal/adapters/storage/redis"
	"petclinic/internal/domain/owners"
	"petclinic/internal/domain/vets"
	"petclinic/internal/middleware"
	"petclinic/internal/ports/flash"
	"petclinic/internal/web"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory con datos de ejemplo.
	DB *sql.DB

	// Opcional: flashes compartidos y cache de vets. Si no, flashes en memoria y sin cache.
	Redis *goredis.Client

	Logger zerolog.Logger

	// nil = HTMLRenderer con los templates embebidos.
	Renderer web.Renderer

	VetsCacheTTL time.Duration
	FlashTTL     time.Duration
}

func NewRouter(opts Options) (http.Handler, error) {
	renderer := opts.Renderer
	if renderer == nil {
		html, err := web.NewHTMLRenderer()
		if err != nil {
			return nil, err
		}
		renderer = html
	}

	var (
		ownerRepo owners.Repository
		vetRepo   vets.Repository
		flashes   flash.Store
	)

	if opts.DB != nil {
		ownerRepo = pg.NewOwnersRepo(opts.DB)
		vetRepo = pg.NewVetsRepo(opts.DB)
	} else {
		ownerRepo = mem.NewSeededOwnerRepo()
		vetRepo = mem.NewVetRepo(mem.SeedVets())
	}

	if opts.Redis != nil {
		flashes = rdb.NewFlashStore(opts.Redis)
		if opts.VetsCacheTTL > 0 {
			vetRepo = rdb.NewVetsCache(vetRepo, opts.Redis, opts.VetsCacheTTL, opts.Logger)
		}
	} else {
		flashes = mem.NewFlashStore()
	}

	resp := web.NewResponder(renderer, flashes, opts.FlashTTL)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.AccessLog)
	r.Use(middleware.Recover(resp.Error))
	r.Use(middleware.Flash(flashes))

	r.Get("/health", healthHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		resp.View(w, r, http.StatusOK, web.ViewWelcome, nil)
	})
	// Demo de la página de error.
	r.Get("/oups", func(http.ResponseWriter, *http.Request) {
		panic(errors.New("Expected: controller used to showcase what happens when an exception is thrown"))
	})

	// Services por módulo
	ownersSvc := owners.NewService(ownerRepo, opts.Logger)
	vetsSvc := vets.NewService(vetRepo)

	// Rutas por módulo
	owners.RegisterRoutes(r, ownersSvc, resp)
	vets.RegisterRoutes(r, vetsSvc, resp)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		resp.NotFound(w, r, errors.New("page not found"))
	})

	return r, nil
}

// healthHandler godoc
// @Summary Health check
// @Description Responde ok si el proceso está levantado.
// @Tags health
// @Produce plain
// @Success 200 {string} string "ok"
// @Router /health [get]
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
