// Package bot assembles the Discord client, its gateway configuration and
// every handler.
package bot

import (
	"context"
	"fmt"

	"github.com/axoguild/axobot/internal/bot/audit"
	"github.com/axoguild/axobot/internal/bot/handlers"
	"github.com/axoguild/axobot/internal/database"
	"github.com/axoguild/axobot/internal/moderation"
	"github.com/axoguild/axobot/internal/onboarding"
	"github.com/axoguild/axobot/internal/redis"
	"github.com/axoguild/axobot/internal/setup/config"
	"github.com/axoguild/axobot/internal/voice"
	"github.com/disgoorg/disgo"
	disgobot "github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"go.uber.org/zap"
)

// Bot bundles the Discord client with the services behind it.
type Bot struct {
	client disgobot.Client
	config *config.Config
	logger *zap.Logger
}

// New builds the Discord client, the services and the handler hub, and wires
// the gateway listeners.
func New(
	cfg *config.Config,
	db database.Client,
	redisManager *redis.Manager,
	logger *zap.Logger,
) (*Bot, error) {
	client, err := disgo.New(cfg.Discord.Token,
		disgobot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
				gateway.IntentGuildMembers,
				gateway.IntentGuildMessages,
				gateway.IntentGuildVoiceStates,
				gateway.IntentMessageContent,
				gateway.IntentDirectMessages,
			),
		),
		disgobot.WithCacheConfigOpts(
			cache.WithCaches(
				cache.FlagGuilds,
				cache.FlagChannels,
				cache.FlagRoles,
				cache.FlagMembers,
				cache.FlagVoiceStates,
				cache.FlagMessages,
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord client: %w", err)
	}

	confirmClient, err := redisManager.GetClient(redis.ConfirmDBIndex)
	if err != nil {
		return nil, fmt.Errorf("failed to get redis client: %w", err)
	}

	auditLog := audit.NewLogger(client.Rest(), db, &cfg.Guild, logger)
	confirmStore := voice.NewConfirmStore(confirmClient)
	voiceManager := voice.NewManager(client, db, &cfg.Guild, confirmStore, auditLog, logger)
	onboardingSvc := onboarding.NewService(client, db, &cfg.Guild, auditLog, logger)
	moderationSvc := moderation.NewService(client, db, &cfg.Guild, auditLog, logger)

	hub := handlers.NewHub(client, db, cfg, onboardingSvc, moderationSvc, voiceManager, auditLog, logger)

	client.AddEventListeners(&events.ListenerAdapter{
		OnReady:                 hub.OnReady,
		OnMessageCreate:         hub.OnMessageCreate,
		OnComponentInteraction:  hub.OnComponent,
		OnModalSubmit:           hub.OnModal,
		OnGuildMemberJoin:       hub.OnGuildMemberJoin,
		OnGuildMemberLeave:      hub.OnGuildMemberLeave,
		OnGuildMemberUpdate:     hub.OnGuildMemberUpdate,
		OnGuildVoiceStateUpdate: hub.OnGuildVoiceStateUpdate,
		OnGuildMessageDelete:    hub.OnGuildMessageDelete,
		OnGuildMessageUpdate:    hub.OnGuildMessageUpdate,
	})

	return &Bot{
		client: client,
		config: cfg,
		logger: logger.Named("bot"),
	}, nil
}

// Start opens the gateway connection.
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("Starting bot",
		zap.Uint64("guildID", uint64(b.config.Guild.ID)),
		zap.Int("groups", len(b.config.Guild.Groups)))

	return b.client.OpenGateway(ctx)
}

// Close shuts the gateway connection down.
func (b *Bot) Close(ctx context.Context) {
	b.logger.Info("Closing bot")
	b.client.Close(ctx)
}
