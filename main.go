package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"eventdesk/src-server/handler"
	"eventdesk/src-server/metric"
	"eventdesk/src-server/route"
	"eventdesk/src-server/scheduler"
	"eventdesk/src-server/utils"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
)

func init() {
	if err := godotenv.Load(); err != nil {
		slog.Info(err.Error())
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.RFC1123Z,
		}),
	))
}

func main() {
	as := utils.NewAppState()
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      as.Config.GetLogLevel(),
			TimeFormat: time.RFC1123Z,
		}),
	))

	if err := as.InitDatabase(context.Background()); err != nil {
		slog.Error("can't init database", "error", err)
		os.Exit(1)
	}

	if as.DgSession != nil {
		if err := startDiscord(as); err != nil {
			slog.Error("can't start discord bot", "error", err)
			os.Exit(1)
		}
		defer as.DgSession.Close()
	}

	metric.Init(as)
	scheduler.Init(as)

	// http server
	server := &http.Server{
		Addr:    ":" + as.Config.GetPort(),
		Handler: route.New(as),
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("cannot start HTTP server", "error", err)
			as.AppCloseSignalChan <- syscall.SIGTERM
		}
	}()

	slog.Info("app is now running, press Ctrl+C to exit", "port", as.Config.GetPort())

	signal.Notify(as.AppCloseSignalChan, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-as.AppCloseSignalChan
	slog.Info("Gracefully shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Warn("can't shut down HTTP server", "error", err)
	}
	as.GracefulShutdown()
	if err := as.BunDB.Close(); err != nil {
		slog.Warn("can't close database", "error", err)
	}
}

func startDiscord(as *utils.AppState) error {
	// injecting interaction handlers into appCmdInfo, appCmdHandler in AppState
	handler.Events(as)
	handler.Event(as)
	handler.Ping(as)

	// tell discordgo how to handle interactions from Discord (w/ appCmdHandler)
	as.DgSession.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			slog.Debug("ignored interaction", "type", i.Type)
			return
		}
		id := i.ApplicationCommandData().Name
		h, ok := as.GetAppCmdHandler(id)
		if !ok {
			if err := utils.InteractRespHiddenReply(s, i, "Unknown command"); err != nil {
				slog.Warn("can't respond", "error", err)
			}
			return
		}
		if err := h(s, i); err != nil {
			slog.Error("handler error", "command", id, "error", err)
		}
	})

	// open a connection to Discord
	if err := as.DgSession.Open(); err != nil {
		return err
	}

	// tell Discord what commands we have (w/ appCmdInfo)
	if _, err := as.DgSession.ApplicationCommandBulkOverwrite(
		as.Config.GetDiscordClientId(),
		as.Config.GetDiscordGuildID(),
		func() []*discordgo.ApplicationCommand {
			var cmds []*discordgo.ApplicationCommand
			as.IterateAppCmdInfo(func(k string, v *discordgo.ApplicationCommand) {
				cmds = append(cmds, v)
			})
			return cmds
		}()); err != nil {
		slog.Error("can't create slash commands", "error", err)
	}

	// cleanup appCmdInfo from memory
	as.NukeAppCmdInfo()
	runtime.GC()

	slog.Info("number of guilds", "guilds", len(as.DgSession.State.Guilds))
	return nil
}
