package model

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for domain operations
var (
	ErrSourceUnavailable = goerr.New("ticket source unavailable")
	ErrNoTicketSource    = goerr.New("no ticket source configured")
)
