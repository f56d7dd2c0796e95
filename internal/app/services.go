package app

import (
	"github.com/atotto/clipboard"

	"github.com/zjrosen/datecalc/internal/config"
	"github.com/zjrosen/datecalc/internal/daterange"
	"github.com/zjrosen/datecalc/internal/location"
	"github.com/zjrosen/datecalc/internal/querystore"
	"github.com/zjrosen/datecalc/internal/watcher"
)

// Clipboard copies text for the user.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard writes to the system clipboard.
type SystemClipboard struct{}

// Copy copies text to the system clipboard.
func (SystemClipboard) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// Services are the collaborators the model drives. Store must have been
// created over Router. Watcher is optional.
type Services struct {
	Store      *querystore.Store
	Router     *location.Router
	Summarizer *daterange.Summarizer
	Watcher    *watcher.Watcher
	Clock      daterange.Clock
	Clipboard  Clipboard
	Config     config.Config
	// ConfigPath is where theme changes are saved. Empty disables saving.
	ConfigPath string
	Debug      bool
}
