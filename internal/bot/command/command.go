// Package command routes prefix text commands like "!ban @user spam" to
// their handlers.
package command

import (
	"context"
	"errors"
	"strings"

	"github.com/axoguild/axobot/internal/bot/views"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"
)

// ErrInvalidUserArg is returned when an argument is neither a mention nor a
// user ID.
var ErrInvalidUserArg = errors.New("expected a user mention or ID")

// Context carries everything a command handler needs.
type Context struct {
	Ctx       context.Context
	Client    bot.Client
	ChannelID snowflake.ID
	MessageID snowflake.ID
	Author    discord.User
	Member    discord.Member
	Args      []string

	logger *zap.Logger
}

// Reply posts a message into the invoking channel.
func (c *Context) Reply(message discord.MessageCreate) {
	if _, err := c.Client.Rest().CreateMessage(c.ChannelID, message); err != nil {
		c.logger.Error("Failed to send command reply", zap.Error(err))
	}
}

// ReplyError posts a short error embed.
func (c *Context) ReplyError(text string) {
	c.Reply(views.Error(text))
}

// ReplySuccess posts a short confirmation embed.
func (c *Context) ReplySuccess(text string) {
	c.Reply(views.Success(text))
}

// UserArg resolves an argument as a user mention or raw ID.
func (c *Context) UserArg(i int) (snowflake.ID, error) {
	if i >= len(c.Args) {
		return 0, ErrInvalidUserArg
	}
	return ParseUserArg(c.Args[i])
}

// ParseUserArg extracts a user ID from "<@123>", "<@!123>" or "123".
func ParseUserArg(arg string) (snowflake.ID, error) {
	raw := strings.TrimSuffix(strings.TrimPrefix(arg, "<@"), ">")
	raw = strings.TrimPrefix(raw, "!")

	id, err := snowflake.Parse(raw)
	if err != nil {
		return 0, ErrInvalidUserArg
	}
	return id, nil
}

// Handler executes one command.
type Handler func(ctx *Context)

// Router maps command names to handlers.
type Router struct {
	prefix   string
	handlers map[string]Handler
	logger   *zap.Logger
}

// NewRouter creates a Router for the given prefix.
func NewRouter(prefix string, logger *zap.Logger) *Router {
	return &Router{
		prefix:   prefix,
		handlers: make(map[string]Handler),
		logger:   logger.Named("command"),
	}
}

// Register binds a command name to its handler. Names are matched case
// insensitively.
func (r *Router) Register(name string, handler Handler) {
	r.handlers[strings.ToLower(name)] = handler
}

// Dispatch parses a guild message and invokes the matching handler. Messages
// without the prefix, from bots, or naming unknown commands are ignored.
func (r *Router) Dispatch(event *events.MessageCreate) {
	if event.Message.Author.Bot || event.GuildID == nil {
		return
	}

	content := event.Message.Content
	if !strings.HasPrefix(content, r.prefix) {
		return
	}

	fields := strings.Fields(content[len(r.prefix):])
	if len(fields) == 0 {
		return
	}

	handler, ok := r.handlers[strings.ToLower(fields[0])]
	if !ok {
		return
	}

	member := discord.Member{User: event.Message.Author}
	if event.Message.Member != nil {
		member = *event.Message.Member
		member.User = event.Message.Author
	}

	ctx := &Context{
		Ctx:       context.Background(),
		Client:    event.Client(),
		ChannelID: event.ChannelID,
		MessageID: event.MessageID,
		Author:    event.Message.Author,
		Member:    member,
		Args:      fields[1:],
		logger:    r.logger,
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("Panic in command handler",
				zap.String("command", fields[0]),
				zap.Any("panic", rec))
			ctx.ReplyError("Internal error. Please report this to an administrator.")
		}
	}()

	handler(ctx)
}
