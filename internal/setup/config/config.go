package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/disgoorg/snowflake/v2"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
	ErrNoGroups              = errors.New("config defines no groups")
)

// CurrentVersion is the config file version this build expects.
const CurrentVersion = 1

// Config represents the entire application configuration.
type Config struct {
	Version    int        `koanf:"version"`
	Debug      Debug      `koanf:"debug"`
	Discord    Discord    `koanf:"discord"`
	PostgreSQL PostgreSQL `koanf:"postgresql"`
	Redis      Redis      `koanf:"redis"`
	Guild      Guild      `koanf:"guild"`
}

// Debug contains debug-related configuration.
type Debug struct {
	LogLevel      string `koanf:"log_level"`        // Log level (debug, info, warn, error)
	MaxLogsToKeep int    `koanf:"max_logs_to_keep"` // Maximum log sessions to keep
}

// Discord contains Discord connection configuration.
type Discord struct {
	Token         string `koanf:"token"`          // Bot token for authentication
	CommandPrefix string `koanf:"command_prefix"` // Prefix for text commands, e.g. "!"
}

// PostgreSQL contains database connection configuration.
type PostgreSQL struct {
	Host         string `koanf:"host"`           // Database hostname
	Port         int    `koanf:"port"`           // Database port
	User         string `koanf:"user"`           // Database username
	Password     string `koanf:"password"`       // Database password
	DBName       string `koanf:"db_name"`        // Database name
	MaxOpenConns int    `koanf:"max_open_conns"` // Maximum open connections
	MaxIdleConns int    `koanf:"max_idle_conns"` // Maximum idle connections
	MaxLifetime  int    `koanf:"max_lifetime"`   // Connection lifetime in minutes
	MaxIdleTime  int    `koanf:"max_idle_time"`  // Idle timeout in minutes
}

// Redis contains Redis connection configuration.
type Redis struct {
	Host     string `koanf:"host"`     // Redis hostname
	Port     int    `koanf:"port"`     // Redis port
	Username string `koanf:"username"` // Redis username
	Password string `koanf:"password"` // Redis password
}

// Guild describes the single guild the bot manages: its roles, channels and
// academic groups. All IDs are platform snowflakes.
type Guild struct {
	ID             snowflake.ID          `koanf:"id"`              // The managed guild
	GuestRoleID    snowflake.ID          `koanf:"guest_role"`      // Granted after rules acceptance
	ModeratorRoles []snowflake.ID        `koanf:"moderator_roles"` // Roles carrying moderation privilege
	Groups         map[string]GroupEntry `koanf:"groups"`          // Group name -> role binding
	Channels       Channels              `koanf:"channels"`
	VoiceCategory  snowflake.ID          `koanf:"voice_category"` // Category holding ephemeral channels
}

// GroupEntry binds an academic group name to its guild role.
type GroupEntry struct {
	RoleID snowflake.ID `koanf:"role"`
}

// Channels lists the designated channels the bot posts to or watches.
type Channels struct {
	Log          snowflake.ID `koanf:"log"`           // Operator/audit log channel
	Rules        snowflake.ID `koanf:"rules"`         // Rules prompt channel
	GroupSelect  snowflake.ID `koanf:"group_select"`  // Group selection prompt channel
	Applications snowflake.ID `koanf:"applications"`  // Review surface for applications
	VoiceCreator snowflake.ID `koanf:"voice_creator"` // Joining this creates an ephemeral channel
}

// GroupRole returns the role bound to a configured group name.
func (g *Guild) GroupRole(name string) (snowflake.ID, bool) {
	entry, ok := g.Groups[name]
	return entry.RoleID, ok
}

// GroupNames returns the configured group names in no particular order.
func (g *Guild) GroupNames() []string {
	names := make([]string, 0, len(g.Groups))
	for name := range g.Groups {
		names = append(names, name)
	}
	return names
}

// GroupByRole reverse-maps a role ID to its group name.
func (g *Guild) GroupByRole(roleID snowflake.ID) (string, bool) {
	for name, entry := range g.Groups {
		if entry.RoleID == roleID {
			return name, true
		}
	}
	return "", false
}

// IsGroupRole reports whether the role belongs to any configured group.
func (g *Guild) IsGroupRole(roleID snowflake.ID) bool {
	_, ok := g.GroupByRole(roleID)
	return ok
}

// IsModeratorRole reports whether the role carries moderation privilege.
func (g *Guild) IsModeratorRole(roleID snowflake.ID) bool {
	for _, id := range g.ModeratorRoles {
		if id == roleID {
			return true
		}
	}
	return false
}

// LoadConfig loads the bot configuration from the first bot.toml found in the
// search paths. It returns the config and the directory it was loaded from.
func LoadConfig() (*Config, string, error) {
	k := koanf.New(".")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configPaths := []string{
		".axobot",
		homeDir + "/.axobot/config",
		"/etc/axobot/config",
		"config",
		".",
	}

	var usedConfigPath string
	for _, path := range configPaths {
		configPath := fmt.Sprintf("%s/bot.toml", path)
		if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
			usedConfigPath = path
			break
		}
	}

	if usedConfigPath == "" {
		return nil, "", fmt.Errorf("%w: bot.toml", ErrConfigFileNotFound)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.Version == 0 {
		return nil, "", fmt.Errorf("%w: bot.toml", ErrConfigVersionMissing)
	}

	if config.Version != CurrentVersion {
		return nil, "", fmt.Errorf("%w: bot.toml has version %d, expected %d",
			ErrConfigVersionMismatch, config.Version, CurrentVersion)
	}

	if len(config.Guild.Groups) == 0 {
		return nil, "", ErrNoGroups
	}

	return &config, usedConfigPath, nil
}
