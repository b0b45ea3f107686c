package main

import (
	"github.com/matryer/way"
)

const URI_HEALTH = "/healthz"
const URI_STATUS = "/status"

func (b *Bot) routes() {
	b.router = way.NewRouter()
	b.router.HandleFunc("GET", URI_HEALTH, b.handleHealth())
	b.router.HandleFunc("GET", URI_STATUS, b.handleStatus())
}
