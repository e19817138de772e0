package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/internal/config"
	"uasz.sn/utilisateursapi/internal/middleware"
	"uasz.sn/utilisateursapi/pkg/apperror"
	"uasz.sn/utilisateursapi/pkg/ratelimiter"
	"uasz.sn/utilisateursapi/pkg/response"
	"uasz.sn/utilisateursapi/pkg/storage"

	annuaireHttp "uasz.sn/utilisateursapi/internal/modules/annuaire/delivery/http"
	annuaireService "uasz.sn/utilisateursapi/internal/modules/annuaire/service"

	enseignantHttp "uasz.sn/utilisateursapi/internal/modules/enseignant/delivery/http"
	enseignantRepo "uasz.sn/utilisateursapi/internal/modules/enseignant/repository"
	enseignantService "uasz.sn/utilisateursapi/internal/modules/enseignant/service"

	etudiantHttp "uasz.sn/utilisateursapi/internal/modules/etudiant/delivery/http"
	etudiantRepo "uasz.sn/utilisateursapi/internal/modules/etudiant/repository"
	etudiantService "uasz.sn/utilisateursapi/internal/modules/etudiant/service"

	roleHttp "uasz.sn/utilisateursapi/internal/modules/role/delivery/http"
	roleRepo "uasz.sn/utilisateursapi/internal/modules/role/repository"
	roleService "uasz.sn/utilisateursapi/internal/modules/role/service"

	vacataireHttp "uasz.sn/utilisateursapi/internal/modules/vacataire/delivery/http"
	vacataireRepo "uasz.sn/utilisateursapi/internal/modules/vacataire/repository"
	vacataireService "uasz.sn/utilisateursapi/internal/modules/vacataire/service"
)

// Dependencies are the connections opened by main. Redis, Meili and Photos
// are optional; nil switches the matching feature off.
type Dependencies struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Meili  meilisearch.ServiceManager
	Photos storage.ImageStorage
}

// Registrar mounts a module's routes.
type Registrar interface {
	Register(rg *gin.RouterGroup)
}

// HealthCheck reports whether the service can serve traffic.
type HealthCheck func(ctx context.Context) error

type Server struct {
	engine *gin.Engine
	http   *http.Server
}

func NewServer(cfg *config.Config, deps Dependencies) *Server {
	roleRepository := roleRepo.NewRoleRepository(deps.DB)
	roleSvc := roleService.NewRoleService(roleRepository)

	directory := annuaireService.NewAnnuaireService(deps.Meili)

	enseignantSvc := enseignantService.NewEnseignantService(
		enseignantRepo.NewEnseignantRepository(deps.DB), roleSvc, directory,
	)
	vacataireSvc := vacataireService.NewVacataireService(
		vacataireRepo.NewVacataireRepository(deps.DB), directory,
	)
	etudiantSvc := etudiantService.NewEtudiantService(
		etudiantRepo.NewEtudiantRepository(deps.DB), roleSvc, directory,
		deps.Photos, cfg.CloudinaryUploadFolder,
	)

	limiter := ratelimiter.New(deps.Redis, cfg.RateLimitWrites, cfg.RateLimitWindow)

	engine := NewEngine(cfg, limiter, pingDatabase(deps.DB),
		roleHttp.NewRoleHandler(roleSvc),
		enseignantHttp.NewEnseignantHandler(enseignantSvc),
		vacataireHttp.NewVacataireHandler(vacataireSvc),
		etudiantHttp.NewEtudiantHandler(etudiantSvc),
		annuaireHttp.NewAnnuaireHandler(directory),
	)

	log.Info().
		Bool("annuaire", directory.Enabled()).
		Bool("photos", deps.Photos != nil).
		Bool("rate_limit", limiter.Enabled()).
		Msg("optional features")

	return &Server{
		engine: engine,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       cfg.RequestTimeout + 5*time.Second,
			WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// NewEngine builds the gin engine with the middleware chain and mounts every
// registrar under /api.
func NewEngine(cfg *config.Config, limiter *ratelimiter.Limiter, health HealthCheck, modules ...Registrar) *gin.Engine {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)
	router.Use(
		middleware.RequestID(),
		response.Recovery(),
		middleware.Logger("/healthz", "/metrics"),
		middleware.Metrics(),
	)

	router.NoRoute(func(c *gin.Context) {
		response.ResponseError(c, apperror.NotFound("route", "Route introuvable: %s %s", c.Request.Method, c.Request.URL.Path))
	})

	router.GET("/healthz", healthHandler(health))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(
		middleware.Timeout(cfg.RequestTimeout),
		middleware.RateLimitWrites(limiter),
	)
	for _, m := range modules {
		m.Register(api)
	}

	return router
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	log.Info().Str("addr", s.http.Addr).Msg("http server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func healthHandler(health HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		if health != nil {
			if err := health(c.Request.Context()); err != nil {
				log.Warn().Err(err).Msg("health check failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func pingDatabase(db *gorm.DB) HealthCheck {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return sqlDB.PingContext(ctx)
	}
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader, "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
