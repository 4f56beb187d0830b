package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"raidtrack/core/loader"
	"raidtrack/core/logger"
	"raidtrack/core/middleware/auth"
	"raidtrack/core/middleware/rayid"
	"raidtrack/feature/discord"
	"raidtrack/feature/ingest"
	"raidtrack/feature/integrity"
	"raidtrack/feature/raid"
	"raidtrack/feature/signup"

	"github.com/bwmarrin/discordgo"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "raidtrack/docs/swagger"
)

// @title raidtrack API
// @version 1.0
// @description Management API for the raid signup sync service.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the bot, the export poller and the HTTP server",
	Long: `Connects to Discord, polls the saved variables export and serves the
management API until interrupted.`,
	RunE: runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, logg, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	defer logg.Sync()
	zap.ReplaceGlobals(logg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := newRuntime(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer rt.close()

	// Signups: debounced refreshes keep rapid clicks to one edit per raid.
	queue := raid.NewRefreshQueue(cfg.Raid.RefreshDelay(), func(ctx context.Context, scope, raidID string) {
		if _, err := rt.reconciler.Refresh(ctx, scope, raidID); err != nil {
			logger.WithRaid(logg, scope, raidID).Warn("Announcement refresh failed", zap.Error(err))
		}
	}, logg)
	defer func() {
		if n := queue.Pending(); n > 0 {
			logg.Info("Dropping pending announcement refreshes", zap.Int("pending", n))
		}
		queue.Close()
	}()

	machine := signup.NewMachine(rt.store, queue, cfg.Discord.Icons(), logg)
	interactions := discord.NewInteractionHandler(rt.session, machine, logg)
	rt.session.AddHandler(interactions.OnInteraction)
	rt.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		logg.Info("Discord session ready", zap.String("user", r.User.Username), zap.Int("guilds", len(r.Guilds)))
	})
	if err := rt.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}
	defer rt.session.Close()

	poller := ingest.NewPoller(cfg.Ingest, rt.decoder, rt.reconciler, rt.archive, logg)
	pollerDone := make(chan struct{})
	go func() {
		defer close(pollerDone)
		if err := poller.Run(ctx); err != nil {
			logg.Error("Poller stopped", zap.Error(err))
		}
	}()

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// RayID first so every later log line carries it.
	app.Use(rayid.New())
	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		l.Info("Request started",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
		)
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		return err
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Public: []string{"/health"}}))

	mgr := loader.NewManager(logg)
	mgr.Register(raid.NewFeature(rt.store, rt.reconciler, logg))
	mgr.Register(ingest.NewFeature(ingest.NewService(poller, rt.decoder, rt.reconciler, rt.archive, logg)))
	mgr.Register(integrity.NewFeature(integrity.NewService(rt.db, rt.client, cfg.Storage, poller, logg)))
	if _, err := mgr.LoadAll(app); err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("port", cfg.Server.Port))
		serverErr <- app.Listen(cfg.Server.Address())
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			logg.Error("Server failed", zap.Error(err))
		}
		stop()
	}

	logg.Info("Shutting down...")
	if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout()); err != nil {
		logg.Warn("HTTP shutdown incomplete", zap.Error(err))
	}
	<-pollerDone
	return nil
}
