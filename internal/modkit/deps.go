// Package modkit provides module wiring and core deps
package modkit

import (
	"bukatsu/internal/adapters/discord"
	"bukatsu/internal/adapters/fxtwitter"
	"bukatsu/internal/platform/config"
	"bukatsu/internal/platform/logger"
	"bukatsu/internal/platform/session"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log      logger.Logger
	Cfg      config.Conf
	Sessions *session.Manager
	Discord  *discord.Client
	Previews *fxtwitter.Client
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional clients
func (d Deps) ZeroOK() bool { return true }
