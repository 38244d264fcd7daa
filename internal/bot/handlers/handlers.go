// Package handlers connects gateway events, component interactions and text
// commands to the onboarding, voice and moderation services.
package handlers

import (
	"github.com/axoguild/axobot/internal/bot/audit"
	"github.com/axoguild/axobot/internal/bot/command"
	"github.com/axoguild/axobot/internal/database"
	"github.com/axoguild/axobot/internal/moderation"
	"github.com/axoguild/axobot/internal/onboarding"
	"github.com/axoguild/axobot/internal/setup/config"
	"github.com/axoguild/axobot/internal/voice"
	"github.com/disgoorg/disgo/bot"
	"go.uber.org/zap"
)

// Hub owns all event and command handlers.
type Hub struct {
	client     bot.Client
	db         database.Client
	config     *config.Config
	router     *command.Router
	onboarding *onboarding.Service
	moderation *moderation.Service
	voice      *voice.Manager
	audit      *audit.Logger
	logger     *zap.Logger
}

// NewHub creates the Hub and registers every text command.
func NewHub(
	client bot.Client,
	db database.Client,
	cfg *config.Config,
	onboardingSvc *onboarding.Service,
	moderationSvc *moderation.Service,
	voiceMgr *voice.Manager,
	auditLog *audit.Logger,
	logger *zap.Logger,
) *Hub {
	h := &Hub{
		client:     client,
		db:         db,
		config:     cfg,
		router:     command.NewRouter(cfg.Discord.CommandPrefix, logger),
		onboarding: onboardingSvc,
		moderation: moderationSvc,
		voice:      voiceMgr,
		audit:      auditLog,
		logger:     logger.Named("handlers"),
	}

	h.router.Register("ban", h.requireModerator(h.handleBan))
	h.router.Register("kick", h.requireModerator(h.handleKick))
	h.router.Register("mute", h.requireModerator(h.handleMute))
	h.router.Register("unmute", h.requireModerator(h.handleUnmute))
	h.router.Register("warn", h.requireModerator(h.handleWarn))
	h.router.Register("warnings", h.requireModerator(h.handleWarnings))
	h.router.Register("clear", h.requireModerator(h.handleClear))
	h.router.Register("group", h.handleGroup)
	h.router.Register("voice", h.handleVoice)
	h.router.Register("userinfo", h.handleUserInfo)
	h.router.Register("serverinfo", h.handleServerInfo)
	h.router.Register("help", h.handleHelp)
	h.router.Register("setup_rules", h.requireModerator(h.handleSetupRules))
	h.router.Register("setup_groups", h.requireModerator(h.handleSetupGroups))

	return h
}

// requireModerator wraps a handler so only configured moderator roles reach
// it. Everyone else gets a short refusal.
func (h *Hub) requireModerator(next command.Handler) command.Handler {
	return func(ctx *command.Context) {
		if !h.isModerator(ctx) {
			ctx.ReplyError("You do not have permission to use this command.")
			return
		}
		next(ctx)
	}
}
