package cli

import (
	"bufio"
	"context"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config   *config.Config
	client   client.Client
	userName string
	reader   *bufio.Reader
	out      io.Writer

	// written by the online watcher and by command handlers
	modeMu      sync.RWMutex
	currentMode Mode
}

func NewApp(c *config.Config) (*App, error) {
	apiClient := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	return &App{config: c, client: apiClient, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

func (app *App) setMode(mode Mode) {
	app.modeMu.Lock()
	defer app.modeMu.Unlock()

	if app.currentMode != mode {
		app.currentMode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

// mode reports the last known connectivity state.
func (app *App) mode() Mode {
	app.modeMu.RLock()
	defer app.modeMu.RUnlock()
	return app.currentMode
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

// checkOnline pings the server once and updates the mode.
func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.client.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
