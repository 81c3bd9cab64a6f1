package router

import (
	"github.com/mirak2305/hilfe-entreprise-backend/internal/application"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/container"
	pginfra "github.com/mirak2305/hilfe-entreprise-backend/internal/infrastructure/postgres"
	handlers "github.com/mirak2305/hilfe-entreprise-backend/internal/interface/http"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/router/modules"
)

// InitModules wires every feature module from the container singletons and
// registers them with the router registry. Called once at startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	users := pginfra.NewUserRepository(pool)
	companies := pginfra.NewCompanyRepository(pool)
	countries := pginfra.NewCountryRepository(pool)
	documents := pginfra.NewDocumentRepository(pool)
	conversations := pginfra.NewConversationRepository(pool)
	messages := pginfra.NewMessageRepository(pool)

	authSvc := application.NewAuthService(users, jwt, logger)
	chatSvc := application.NewChatService(conversations, messages, container.GetLLM(), logger)

	// A typed-nil publisher inside the interface would defeat the service's
	// nil check, so only hand it over when it exists.
	var pub application.EmailPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}
	adminSvc := application.NewAdminService(users, companies, countries, documents,
		pub, container.GetGCS(), cfg.GCSBucket,
		container.GetES(), cfg.ESUsersIndex,
		logger, cfg.FrontendURL, cfg.MailSendEnabled)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), users, jwt))
	r.Add(modules.NewChatModule(handlers.NewChatHandler(chatSvc, logger), users, jwt))
	r.Add(modules.NewAdminModule(handlers.NewAdminHandler(adminSvc, logger), users, jwt))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
