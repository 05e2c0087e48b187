package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crmlite/crmlite/internal/config"
	"github.com/crmlite/crmlite/internal/crm/state"
)

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, st *state.State) error
}
