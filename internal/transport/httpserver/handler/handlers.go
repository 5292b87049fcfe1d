package handler

import (
	"potluck-app-go/internal/directory"
	accountdomain "potluck-app-go/internal/domain/account"
	eventsdomain "potluck-app-go/internal/domain/events"
	rosterdomain "potluck-app-go/internal/domain/roster"
	"potluck-app-go/internal/transport/httpserver/middleware"
	"potluck-app-go/pkg/logger"
	"golang.org/x/oauth2"
)

type Handlers struct {
	Roster    *rosterdomain.Service
	Events    *eventsdomain.Service
	Accounts  *accountdomain.Service
	Directory *directory.Client

	auth    *middleware.SessionAuth
	oauth   *oauth2.Config
	perPage int
	log     logger.Logger
}

func New(
	roster *rosterdomain.Service,
	events *eventsdomain.Service,
	accounts *accountdomain.Service,
	dir *directory.Client,
	auth *middleware.SessionAuth,
	oauth *oauth2.Config,
	perPage int,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Roster:    roster,
		Events:    events,
		Accounts:  accounts,
		Directory: dir,
		auth:      auth,
		oauth:     oauth,
		perPage:   perPage,
		log:       log,
	}
}
