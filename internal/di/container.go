package di

import (
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/samu/email-triage/internal/adapters/mailer"
	"github.com/samu/email-triage/internal/api"
	"github.com/samu/email-triage/internal/config"
	"github.com/samu/email-triage/internal/core"
	"github.com/samu/email-triage/internal/extract"
	"github.com/samu/email-triage/internal/factory"
	"github.com/samu/email-triage/internal/logging"
	"github.com/samu/email-triage/internal/textproc"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(textproc.NewTextProcessor); err != nil {
		return nil, err
	}

	// Register normalizer
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.TextNormalizer {
		return textproc.NewNormalizer(cfg.GetString("normalizer.language"), logger)
	}); err != nil {
		return nil, err
	}

	// Register extractor
	if err := container.Provide(func(logger *zap.Logger) core.TextExtractor {
		return extract.NewExtractor(logger)
	}); err != nil {
		return nil, err
	}

	// Register LLM factory and client
	if err := container.Provide(factory.NewLLMFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.LLMFactory) (core.LLMClient, error) {
		return f.CreateLLMClient()
	}); err != nil {
		return nil, err
	}

	// Register classification timeout
	if err := container.Provide(func(cfg *config.Config) time.Duration {
		return cfg.GetLLM().Timeout
	}); err != nil {
		return nil, err
	}

	// Register triage service
	if err := container.Provide(core.NewTriageService); err != nil {
		return nil, err
	}

	// Register mail sender
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.MailSender {
		return mailer.NewSMTPSender(cfg.GetSMTP(), logger)
	}); err != nil {
		return nil, err
	}

	// Register HTTP handlers and router
	if err := container.Provide(api.NewTriageHandler); err != nil {
		return nil, err
	}
	if err := container.Provide(func(sender core.MailSender, cfg *config.Config, logger *zap.Logger) *api.MailHandler {
		return api.NewMailHandler(sender, cfg.GetSMTP().DefaultSubject, logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(th *api.TriageHandler, mh *api.MailHandler, cfg *config.Config) *api.Router {
		return api.NewRouter(th, mh, cfg.GetServer())
	}); err != nil {
		return nil, err
	}

	return container, nil
}
