package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/idkeeper/internal/client/client"
	"github.com/dmitrijs2005/idkeeper/internal/client/config"
	"github.com/dmitrijs2005/idkeeper/internal/client/services"
	"github.com/dmitrijs2005/idkeeper/internal/client/session"
	"github.com/dmitrijs2005/idkeeper/internal/client/storage"
	"github.com/dmitrijs2005/idkeeper/internal/client/workflow"
	"github.com/dmitrijs2005/idkeeper/internal/filex"
	"github.com/dmitrijs2005/idkeeper/internal/logging"
)

type Mode string

const (
	ModeUnknown Mode = ""
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	credService services.CredentialService
	flows       *workflow.Orchestrator
	log         logging.Logger
	reader      *bufio.Reader
	out         io.Writer
	db          *sql.DB

	mu   sync.Mutex
	mode Mode
}

// NewApp opens the local session database, restores a session left by a
// previous run and wires the API client and services.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	dbPath, err := filex.EnsureParentDir(c.DBPath)
	if err != nil {
		return nil, err
	}

	db, err := storage.InitDatabase(ctx, dbPath, log)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	store := session.NewStore(db, log, session.WithPassphrase([]byte(c.SessionPassphrase)))
	if err := store.Load(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error loading session: %w", err)
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL, store, log, client.WithTimeout(c.RequestTimeout))
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	as := services.NewAuthService(apiClient, store)
	cs := services.NewCredentialService(apiClient, store)

	return &App{
		config:      c,
		authService: as,
		credService: cs,
		flows:       workflow.New(as, cs, log),
		log:         log.With("component", "cli"),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		db:          db,
	}, nil
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.notice(fmt.Sprintf("Service is %s", mode))
	}
}

// Run restores the connection state, starts the background watcher and
// blocks in the REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.waitForService(ctx)
	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	printlnFn("Welcome to idkeeper (type 'help' for commands)")
	if s := a.authService.Session(); s.Authenticated() {
		printlnFn("Signed in as", s.User.Email)
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		a.log.Warn(ctx, "closing client", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "closing database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.authService.Session().Authenticated()
}

func (a *App) getStatus() string {
	s := ""
	if sess := a.authService.Session(); sess.Authenticated() {
		s = sess.User.Email + " "
	}
	s += string(a.Mode())
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
