package routes

import (
	"skill-verify/internal/delivery/http/handler"
	"skill-verify/internal/delivery/http/middleware"
	"skill-verify/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health     *handler.HealthHandler
	match      *handler.MatchHandler
	gap        *handler.GapHandler
	ranking    *handler.RankingHandler
	assessment *handler.AssessmentHandler
	events     *ws.Handler
	auth       *middleware.AuthMiddleware
}

func NewRegistry(
	health *handler.HealthHandler,
	match *handler.MatchHandler,
	gap *handler.GapHandler,
	ranking *handler.RankingHandler,
	assessment *handler.AssessmentHandler,
	events *ws.Handler,
	auth *middleware.AuthMiddleware,
) *Registry {
	return &Registry{
		health:     health,
		match:      match,
		gap:        gap,
		ranking:    ranking,
		assessment: assessment,
		events:     events,
		auth:       auth,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	v1 := api.Group("/v1", r.auth.Middleware())

	r.match.RegisterRoutes(v1)
	r.gap.RegisterRoutes(v1)
	r.ranking.RegisterRoutes(v1)
	r.assessment.RegisterRoutes(v1)

	if r.events != nil {
		app.Get("/ws/events", r.events.HandleEventsWS, r.auth.Middleware())
	}
}
