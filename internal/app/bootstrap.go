package app

import (
	"fmt"
	"strings"

	"skill-verify/internal/config"
	"skill-verify/internal/delivery/http/handler"
	"skill-verify/internal/delivery/http/middleware"
	"skill-verify/internal/delivery/http/routes"
	"skill-verify/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func Bootstrap(cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	f.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB),
		handler.NewMatchHandler(c.MatchUC),
		handler.NewGapHandler(c.GapUC),
		handler.NewRankingHandler(c.RankingUC),
		handler.NewAssessmentHandler(c.AssessmentUC),
		ws.NewHandler(c.Hub, c.Logger),
		middleware.NewAuthMiddleware(c.JWT),
	)
	registry.Register(f)

	go c.Hub.Run()

	cleanup := func() error {
		return c.Close()
	}
	return &App{Fiber: f, Container: c}, cleanup, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
