package app

import (
	"net/http"

	"potluck-app-go/internal/config"
	"potluck-app-go/internal/db"
	"potluck-app-go/internal/directory"
	accountdomain "potluck-app-go/internal/domain/account"
	eventsdomain "potluck-app-go/internal/domain/events"
	rosterdomain "potluck-app-go/internal/domain/roster"
	accountrepo "potluck-app-go/internal/repository/postgres/account"
	eventsrepo "potluck-app-go/internal/repository/postgres/events"
	rosterrepo "potluck-app-go/internal/repository/postgres/roster"
	"potluck-app-go/internal/transport/httpserver"
	"potluck-app-go/internal/transport/httpserver/handler"
	authmw "potluck-app-go/internal/transport/httpserver/middleware"
	"potluck-app-go/pkg/logger"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(dbConn, log); err != nil {
		return nil, err
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.OAuth.ClientID,
		ClientSecret: cfg.OAuth.ClientSecret,
		RedirectURL:  cfg.OAuth.RedirectURL,
		Scopes:       cfg.OAuth.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.OAuth.AuthURL,
			TokenURL: cfg.OAuth.TokenURL,
		},
	}

	dirClient := directory.NewClient(cfg.Directory.BaseURL, cfg.Directory.Timeout, log)

	rosterSvc := rosterdomain.NewService(rosterrepo.NewPostgres(dbConn), dirClient, log)
	eventsSvc := eventsdomain.NewService(eventsrepo.NewPostgres(dbConn), log)
	accountSvc := accountdomain.NewService(
		accountrepo.NewPostgres(dbConn),
		accountdomain.NewOAuthRefresher(oauthCfg),
		log,
	)

	auth := authmw.NewSessionAuth(cfg.Session, accountSvc, log)
	handlers := handler.New(rosterSvc, eventsSvc, accountSvc, dirClient, auth, oauthCfg, cfg.Directory.PerPage, log)

	router := httpserver.NewRouter(handlers, auth)
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
