package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/dmitrijs2005/gophadmin/internal/client/client"
	"github.com/dmitrijs2005/gophadmin/internal/client/config"
	"github.com/dmitrijs2005/gophadmin/internal/client/router"
	"github.com/dmitrijs2005/gophadmin/internal/client/services"
	"github.com/dmitrijs2005/gophadmin/internal/client/session"
	"github.com/dmitrijs2005/gophadmin/internal/logging"

	_ "modernc.org/sqlite"
)

// App is the admin console: session, router and services plus terminal I/O.
type App struct {
	config       *config.Config
	log          logging.Logger
	db           *sql.DB
	session      *session.Store
	router       *router.Router
	authService  services.AuthService
	userService  services.UserService
	roleService  services.RoleService
	reader       *bufio.Reader
	out          io.Writer
	detachRouter func()
}

// NewApp opens the session database and wires every component. The stored
// session is restored; an expired one is cleared before the first screen.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	var auth services.AuthService
	opts := []session.Option{session.WithLogger(log.Named("session"))}
	if c.ProfilePath != "" {
		opts = append(opts, session.WithProfileLoader(func(ctx context.Context) (session.Identity, error) {
			return auth.ProfileLoader(c.ProfilePath)(ctx)
		}))
	}
	store := session.NewStore(db, opts...)

	api, err := client.NewHTTPClient(c.BaseURL, c.RequestTimeout, store, client.WithLogger(log.Named("http")))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	auth = services.NewAuthService(api, store)

	rt := router.New(store,
		router.WithLogger(log.Named("router")),
		router.WithProgress(router.NewSpinnerProgress(os.Stderr)),
	)

	a := &App{
		config:      c,
		log:         log,
		db:          db,
		session:     store,
		router:      rt,
		authService: auth,
		userService: services.NewUserService(api),
		roleService: services.NewRoleService(api),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
	if err := a.init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	a.detachRouter = a.router.Attach()
	return a.session.Init(ctx)
}

// Run starts the REPL and releases resources when it returns.
func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close detaches the router and closes the session database.
func (a *App) Close() error {
	if a.detachRouter != nil {
		a.detachRouter()
	}
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsLoggedIn()
}
