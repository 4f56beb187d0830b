package cmd

import (
	"context"
	"fmt"

	"raidtrack/core/config"
	"raidtrack/core/database"
	"raidtrack/core/logger"
	"raidtrack/core/storage"
	"raidtrack/feature/discord"
	"raidtrack/feature/ingest"
	"raidtrack/feature/raid"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// services holds the components shared by the start and ingest commands.
type services struct {
	cfg        *config.Config
	logger     *zap.Logger
	db         *gorm.DB
	store      *raid.GormStore
	session    *discordgo.Session
	reconciler *raid.Reconciler
	decoder    *ingest.Decoder
	client     storage.Client
	archive    *ingest.Archive
}

func loadConfigAndLogger() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

func openDatabase(cfg *config.Config, l *zap.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := raid.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	l.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
	return db, nil
}

// newRuntime connects the database, storage and Discord REST session and
// builds the reconciler. The gateway is not opened.
func newRuntime(ctx context.Context, cfg *config.Config, l *zap.Logger) (*services, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := openDatabase(cfg, l)
	if err != nil {
		return nil, err
	}
	rt := &services{cfg: cfg, logger: l, db: db, store: raid.NewStore(db)}

	if cfg.Ingest.Archive {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			rt.close()
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			l.Warn("Snapshot bucket unavailable, archiving disabled", zap.Error(err))
		} else {
			rt.client = client
			rt.archive = ingest.NewArchive(client, cfg.Storage.Bucket, cfg.Ingest.ArchiveKeep, l)
		}
	}

	session, err := discord.NewSession(cfg.Discord)
	if err != nil {
		rt.close()
		return nil, err
	}
	rt.session = session

	icons := cfg.Discord.Icons()
	channels := discord.NewDestinations(session, cfg.Raid.DestinationTTL())
	rt.reconciler = raid.NewReconciler(raid.Deps{
		Store:         rt.store,
		Destinations:  channels,
		Announcements: discord.NewAnnouncements(session, channels),
		Entries:       discord.NewScheduledEvents(session),
		Members:       discord.NewMembers(session, cfg.Discord.MemberLookups, l),
		Renderer:      raid.EmbedRenderer{Icons: icons},
	}, cfg.Raid, l)
	rt.decoder = ingest.NewDecoder(cfg.Ingest, cfg.Discord.GuildID)
	return rt, nil
}

func (rt *services) close() {
	if err := database.Close(rt.db); err != nil {
		rt.logger.Warn("Failed to close database", zap.Error(err))
	}
}
