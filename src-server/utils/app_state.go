package utils

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"sync"
	"time"

	"eventdesk/src-server/backend"
	"eventdesk/src-server/model"
	"eventdesk/src-server/rpc"
	"eventdesk/src-server/session"
	"eventdesk/src-server/view"

	"github.com/bwmarrin/discordgo"
	"github.com/olebedev/when"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

type AppCmdHandler func(s *discordgo.Session, i *discordgo.InteractionCreate) error

type AppState struct {
	Config      *Config
	RawDB       *sql.DB
	BunDB       *bun.DB
	DgSession   *discordgo.Session
	When        *when.Parser
	MetricChans *Metric

	// local event store, also served over /rpc
	Store *backend.Store
	// what the views fetch from: Store, or a remote backend when BACKEND_URL is set
	Backend rpc.Backend

	ListViews   *session.Registry[*view.ListView]
	DetailViews *session.Registry[*view.DetailView]

	AppCloseSignalChan chan os.Signal

	mu sync.RWMutex
	// will be send to Discord
	appCmdInfo map[string]*discordgo.ApplicationCommand
	// handling commands from Discord WSAPI
	appCmdHandler map[string]AppCmdHandler

	gracefulShutdownChans []*chan struct{}
	startTime             time.Time
}

func NewAppState() *AppState {
	config := NewConfig()

	rawDB, err := sql.Open(sqliteshim.ShimName, config.GetDBPath()+"?mode=rwc")
	if err != nil {
		slog.Error("cannot open sqlite database", "error", err)
		os.Exit(1)
	}
	rawDB.SetMaxIdleConns(8)

	bunDB := bun.NewDB(rawDB, sqlitedialect.New())
	bunDB.AddQueryHook(bundebug.NewQueryHook(
		bundebug.WithVerbose(true),
		bundebug.FromEnv("BUNDEBUG"),
	))

	as := NewAppStateWithDB(config, bunDB)

	if config.DiscordEnabled() {
		as.DgSession, err = discordgo.New("Bot " + config.GetDiscordAppToken())
		if err != nil {
			slog.Error("can't create discord session", "error", err)
			os.Exit(1)
		}
	}
	return as
}

// NewAppStateWithDB wires an AppState around an opened database.
func NewAppStateWithDB(config *Config, db *bun.DB) *AppState {
	as := &AppState{
		Config:             config,
		RawDB:              db.DB,
		BunDB:              db,
		When:               NewWhen(),
		MetricChans:        NewMetric(),
		Store:              backend.NewStore(db),
		ListViews:          session.NewRegistry[*view.ListView](config.GetSessionTTL()),
		DetailViews:        session.NewRegistry[*view.DetailView](config.GetSessionTTL()),
		AppCloseSignalChan: make(chan os.Signal, 1),
		appCmdInfo:         make(map[string]*discordgo.ApplicationCommand),
		appCmdHandler:      make(map[string]AppCmdHandler),
		startTime:          time.Now(),
	}

	as.Backend = as.Store
	if url := config.GetBackendURL(); url != "" {
		as.Backend = rpc.NewClient(url)
	}
	return as
}

// InitDatabase creates the schema and applies the seed file if one is set.
func (as *AppState) InitDatabase(ctx context.Context) error {
	if err := model.CreateSchema(ctx, as.BunDB); err != nil {
		return err
	}
	if as.Config.GetSeedFile() == "" {
		return nil
	}
	return as.ApplySeed(ctx)
}

// ApplySeed loads the seed file into the local store.
func (as *AppState) ApplySeed(ctx context.Context) error {
	seed, err := model.LoadSeedFile(as.Config.GetSeedFile())
	if err != nil {
		return err
	}
	start := time.Now()
	if err := seed.Apply(ctx, as.BunDB); err != nil {
		return err
	}
	as.MetricChans.Observe(as.MetricChans.DatabaseWrite, time.Since(start))
	slog.Info("seed applied", "file", as.Config.GetSeedFile(), "events", len(seed.Events))
	return nil
}

func (as *AppState) viewOptions() []view.Option {
	opts := []view.Option{view.WithObserver(as.MetricChans.ObserveFetch)}
	if userID := as.Config.GetCurrentUserID(); userID != "" {
		opts = append(opts, view.WithProfileLookup(as.Backend, userID))
	}
	return opts
}

// NewListView builds an event list view over the configured backend.
func (as *AppState) NewListView() *view.ListView {
	return view.NewListView(as.Backend, as.Config.GetHostname(), as.viewOptions()...)
}

// NewDetailView builds an event detail view over the configured backend.
func (as *AppState) NewDetailView(eventID string, nav view.Navigator) *view.DetailView {
	return view.NewDetailView(eventID, as.Backend, nav, as.viewOptions()...)
}

// ParseStartDate reads a start-date threshold in the configured timezone.
func (as *AppState) ParseStartDate(input string) (string, error) {
	return ParseDateFloor(as.When, input, time.Now(), as.Config.GetLocation())
}

func (as *AppState) AddAppCmdInfo(id string, info *discordgo.ApplicationCommand) {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.appCmdInfo[id] = info
}

func (as *AppState) IterateAppCmdInfo(fn func(k string, v *discordgo.ApplicationCommand)) {
	as.mu.RLock()
	defer as.mu.RUnlock()
	for k, v := range as.appCmdInfo {
		fn(k, v)
	}
}

// NukeAppCmdInfo frees the command infos once they are sent to Discord.
func (as *AppState) NukeAppCmdInfo() {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.appCmdInfo = make(map[string]*discordgo.ApplicationCommand)
}

func (as *AppState) AddAppCmdHandler(id string, handler AppCmdHandler) {
	as.mu.Lock()
	defer as.mu.Unlock()
	as.appCmdHandler[id] = handler
}

func (as *AppState) GetAppCmdHandler(id string) (AppCmdHandler, bool) {
	as.mu.RLock()
	defer as.mu.RUnlock()
	handler, ok := as.appCmdHandler[id]
	return handler, ok
}

// CreateGracefulShutdownChan returns a channel closed on GracefulShutdown.
func (as *AppState) CreateGracefulShutdownChan() *chan struct{} {
	as.mu.Lock()
	defer as.mu.Unlock()
	ch := make(chan struct{})
	as.gracefulShutdownChans = append(as.gracefulShutdownChans, &ch)
	return &ch
}

func (as *AppState) GracefulShutdown() {
	as.mu.Lock()
	defer as.mu.Unlock()
	for _, ch := range as.gracefulShutdownChans {
		close(*ch)
	}
	as.gracefulShutdownChans = nil
}

func (as *AppState) GetUptime() time.Duration {
	return time.Since(as.startTime).Round(time.Second)
}
