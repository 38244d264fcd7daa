package database

import (
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/axoguild/axobot/internal/database/models"
)

// Repository provides access to all database models.
type Repository struct {
	user        *models.UserModel
	voice       *models.VoiceChannelModel
	application *models.ApplicationModel
	warning     *models.WarningModel
	activity    *models.ActivityModel
}

// NewRepository creates a new repository instance with all models.
func NewRepository(db *bun.DB, logger *zap.Logger) *Repository {
	return &Repository{
		user:        models.NewUser(db, logger),
		voice:       models.NewVoiceChannel(db, logger),
		application: models.NewApplication(db, logger),
		warning:     models.NewWarning(db, logger),
		activity:    models.NewActivity(db, logger),
	}
}

// User returns the member record model.
func (r *Repository) User() *models.UserModel {
	return r.user
}

// Voice returns the ephemeral voice channel model.
func (r *Repository) Voice() *models.VoiceChannelModel {
	return r.voice
}

// Application returns the group application model.
func (r *Repository) Application() *models.ApplicationModel {
	return r.application
}

// Warning returns the warning model.
func (r *Repository) Warning() *models.WarningModel {
	return r.warning
}

// Activity returns the audit log model.
func (r *Repository) Activity() *models.ActivityModel {
	return r.activity
}
