package main

import (
	"github.com/muhammadolammi/careerpath/internal/career"
	"github.com/muhammadolammi/careerpath/internal/config"
	"github.com/muhammadolammi/careerpath/internal/notify"
	"github.com/muhammadolammi/careerpath/internal/state"
	"github.com/muhammadolammi/careerpath/internal/storage"
)

// AppConfig is everything the serve command wires together.
type AppConfig struct {
	Config    *config.Config
	Store     state.Store
	Advisor   career.Advisor
	Documents *storage.R2
	Rabbit    *notify.Rabbit
}

// Events returns the sink submissions report to. Without RabbitMQ the
// submitter discards events.
func (app *AppConfig) Events() career.EventSink {
	if app.Rabbit == nil {
		return nil
	}
	return app.Rabbit
}
