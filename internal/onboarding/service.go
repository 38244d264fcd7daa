// Package onboarding covers the path from a fresh join to full membership:
// rules acceptance, group applications, and moderator review.
package onboarding

import (
	"context"
	"errors"
	"fmt"

	"github.com/axoguild/axobot/internal/bot/audit"
	"github.com/axoguild/axobot/internal/bot/views"
	"github.com/axoguild/axobot/internal/database"
	"github.com/axoguild/axobot/internal/database/types"
	"github.com/axoguild/axobot/internal/database/types/enum"
	"github.com/axoguild/axobot/internal/setup/config"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"
)

var (
	// ErrNotGuest is returned when someone applies before accepting the
	// rules.
	ErrNotGuest = errors.New("rules must be accepted before applying")

	// ErrAlreadyInGroup is returned when someone who already holds a group
	// role tries to apply again.
	ErrAlreadyInGroup = errors.New("user already belongs to a group")

	// ErrUnknownGroup is returned for a group name not present in the
	// configuration.
	ErrUnknownGroup = errors.New("unknown group")

	// ErrApplicantGone is returned when a review decision lands after the
	// applicant left the guild.
	ErrApplicantGone = errors.New("applicant is no longer a member")

	// ErrGroupAssignFailed is returned when an application was approved but
	// the role changes did not land. The approval stands; the roles need a
	// manual fix.
	ErrGroupAssignFailed = errors.New("group role assignment failed")
)

// Service implements the onboarding workflow.
type Service struct {
	client bot.Client
	db     database.Client
	config *config.Guild
	audit  *audit.Logger
	logger *zap.Logger
}

// NewService creates a Service.
func NewService(
	client bot.Client, db database.Client, cfg *config.Guild,
	auditLog *audit.Logger, logger *zap.Logger,
) *Service {
	return &Service{
		client: client,
		db:     db,
		config: cfg,
		audit:  auditLog,
		logger: logger.Named("onboarding"),
	}
}

// HandleMemberJoin records a fresh member.
func (s *Service) HandleMemberJoin(ctx context.Context, member discord.Member) {
	if err := s.db.Model().User().Upsert(ctx, uint64(member.User.ID), member.EffectiveName()); err != nil {
		s.logger.Error("Failed to upsert joining member",
			zap.Uint64("userID", uint64(member.User.ID)),
			zap.Error(err))
	}

	s.audit.Log(ctx, audit.Entry{
		Action: audit.ActionMemberJoin,
		UserID: member.User.ID,
		Details: map[string]any{
			"Username": member.User.Username,
		},
	})
}

// HandleMemberLeave rejects any pending application the leaver had so it
// does not linger in review.
func (s *Service) HandleMemberLeave(ctx context.Context, user discord.User) {
	rejected, err := s.db.Model().Application().RejectPendingForUser(ctx, uint64(user.ID))
	if err != nil {
		s.logger.Error("Failed to reject pending application on leave",
			zap.Uint64("userID", uint64(user.ID)),
			zap.Error(err))
	}

	details := map[string]any{"Username": user.Username}
	if rejected > 0 {
		details["Pending Application"] = "auto-rejected"
	}

	s.audit.Log(ctx, audit.Entry{
		Action:  audit.ActionMemberLeave,
		UserID:  user.ID,
		Details: details,
	})
}

// AcceptRules grants the guest role and records the acceptance. It reports
// whether this was the first acceptance so pressing the button twice gets a
// different reply.
func (s *Service) AcceptRules(ctx context.Context, member discord.Member) (bool, error) {
	alreadyGuest := false
	for _, roleID := range member.RoleIDs {
		if roleID == s.config.GuestRoleID {
			alreadyGuest = true
			break
		}
	}

	if !alreadyGuest {
		if err := s.client.Rest().AddMemberRole(s.config.ID, member.User.ID, s.config.GuestRoleID); err != nil {
			return false, fmt.Errorf("failed to grant guest role: %w", err)
		}
	}

	if err := s.db.Model().User().Upsert(ctx, uint64(member.User.ID), member.EffectiveName()); err != nil {
		return !alreadyGuest, err
	}

	if !alreadyGuest {
		s.audit.Log(ctx, audit.Entry{
			Action: audit.ActionRulesAccepted,
			UserID: member.User.ID,
		})
	}

	return !alreadyGuest, nil
}

// CheckEligibility verifies that a member may open a group application:
// rules accepted, and no group role held yet.
func (s *Service) CheckEligibility(member discord.Member) error {
	isGuest := false
	for _, roleID := range member.RoleIDs {
		if roleID == s.config.GuestRoleID {
			isGuest = true
		}
		if s.config.IsGroupRole(roleID) {
			return ErrAlreadyInGroup
		}
	}

	if !isGuest {
		return ErrNotGuest
	}
	return nil
}

// Submit validates and stores a new application, then posts it for review.
// A second application while one is pending fails with
// types.ErrPendingExists.
func (s *Service) Submit(ctx context.Context, member discord.Member, group, rawFullName string) (*types.Application, error) {
	if _, ok := s.config.GroupRole(group); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGroup, group)
	}

	fullName, err := ValidateFullName(rawFullName)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model().User().Upsert(ctx, uint64(member.User.ID), member.EffectiveName()); err != nil {
		return nil, err
	}

	app := &types.Application{
		UserID:   uint64(member.User.ID),
		Group:    group,
		FullName: fullName,
	}
	if err := s.db.Model().Application().Create(ctx, app); err != nil {
		return nil, err
	}

	review := views.ApplicationReview(app, s.config.ModeratorRoles)
	if _, err := s.client.Rest().CreateMessage(s.config.Channels.Applications, review); err != nil {
		s.logger.Error("Failed to post application for review",
			zap.Int64("applicationID", app.ID),
			zap.Error(err))
	}

	s.audit.Log(ctx, audit.Entry{
		Action: audit.ActionAppSubmitted,
		UserID: member.User.ID,
		Details: map[string]any{
			"Group":     group,
			"Full Name": fullName,
		},
	})

	return app, nil
}

// Review resolves an application. The first decision wins; a second one
// fails with types.ErrAlreadyReviewed. On approval the applicant moves from
// guest to their group role.
func (s *Service) Review(ctx context.Context, appID int64, approve bool, reviewerID snowflake.ID) (*types.Application, error) {
	app, err := s.db.Model().Application().Get(ctx, appID)
	if err != nil {
		return nil, err
	}

	applicantID := snowflake.ID(app.UserID)

	// Re-resolve the applicant so a decision made against a stale message
	// cannot touch someone who already left.
	member, err := s.client.Rest().GetMember(s.config.ID, applicantID)
	if err != nil {
		// The cache still holding the member suggests a transient REST
		// failure rather than a departure.
		if _, ok := s.client.Caches().Member(s.config.ID, applicantID); ok {
			return nil, fmt.Errorf("failed to resolve applicant: %w", err)
		}
		if _, rejectErr := s.db.Model().Application().RejectPendingForUser(ctx, app.UserID); rejectErr != nil {
			s.logger.Error("Failed to reject application of departed member", zap.Error(rejectErr))
		}
		return nil, ErrApplicantGone
	}

	status := enum.ApplicationStatusRejected
	if approve {
		status = enum.ApplicationStatusApproved
	}

	if err := s.db.Model().Application().Review(ctx, appID, status, uint64(reviewerID)); err != nil {
		return nil, err
	}

	if approve {
		if err := s.assignGroup(ctx, *member, app.Group); err != nil {
			// The decision is already recorded, so a retry would hit
			// ErrAlreadyReviewed. Report the half-applied state instead.
			s.logger.Error("Approved application but role assignment failed",
				zap.Int64("applicationID", appID),
				zap.Uint64("userID", app.UserID),
				zap.Error(err))
			return nil, fmt.Errorf("%w: %w", ErrGroupAssignFailed, err)
		}
	}

	s.notifyApplicant(applicantID, app.Group, approve)

	action := audit.ActionAppRejected
	if approve {
		action = audit.ActionAppApproved
	}
	s.audit.Log(ctx, audit.Entry{
		Action:      action,
		UserID:      applicantID,
		ModeratorID: reviewerID,
		Details: map[string]any{
			"Group": app.Group,
		},
	})

	app.Status = status
	return app, nil
}

// SetMemberGroup moves a member into a group, or out of all groups when
// group is empty. Roles are adjusted to match.
func (s *Service) SetMemberGroup(ctx context.Context, member discord.Member, group string) error {
	var targetRole snowflake.ID
	if group != "" {
		roleID, ok := s.config.GroupRole(group)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownGroup, group)
		}
		targetRole = roleID
	}

	for _, roleID := range member.RoleIDs {
		if s.config.IsGroupRole(roleID) && roleID != targetRole {
			if err := s.client.Rest().RemoveMemberRole(s.config.ID, member.User.ID, roleID); err != nil {
				return fmt.Errorf("failed to remove group role: %w", err)
			}
		}
	}

	if targetRole != 0 {
		if err := s.client.Rest().AddMemberRole(s.config.ID, member.User.ID, targetRole); err != nil {
			return fmt.Errorf("failed to add group role: %w", err)
		}
	}

	if err := s.db.Model().User().Upsert(ctx, uint64(member.User.ID), member.EffectiveName()); err != nil {
		return err
	}
	if err := s.db.Model().User().SetGroup(ctx, uint64(member.User.ID), group); err != nil {
		return err
	}

	return nil
}

// SyncMember aligns the stored group of one member with the group role they
// actually hold. Called on role changes and during a full sync.
func (s *Service) SyncMember(ctx context.Context, member discord.Member) error {
	group := ""
	for _, roleID := range member.RoleIDs {
		if name, ok := s.config.GroupByRole(roleID); ok {
			group = name
			break
		}
	}

	if err := s.db.Model().User().Upsert(ctx, uint64(member.User.ID), member.EffectiveName()); err != nil {
		return err
	}

	user, err := s.db.Model().User().Get(ctx, uint64(member.User.ID))
	if err != nil {
		return err
	}
	if user.Group == group {
		return nil
	}

	return s.db.Model().User().SetGroup(ctx, uint64(member.User.ID), group)
}

// SyncAll walks every cached member and realigns stored groups with roles.
// It returns the number of members whose stored group changed.
func (s *Service) SyncAll(ctx context.Context, moderatorID snowflake.ID) (int, error) {
	synced := 0
	var firstErr error

	s.client.Caches().MembersForEach(s.config.ID, func(member discord.Member) {
		if member.User.Bot {
			return
		}

		before, _ := s.db.Model().User().Get(ctx, uint64(member.User.ID))

		if err := s.SyncMember(ctx, member); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}

		after, err := s.db.Model().User().Get(ctx, uint64(member.User.ID))
		if err != nil {
			return
		}
		if before == nil || before.Group != after.Group {
			synced++
		}
	})

	if firstErr != nil {
		return synced, firstErr
	}

	s.audit.Log(ctx, audit.Entry{
		Action:      audit.ActionGroupSync,
		ModeratorID: moderatorID,
		Details: map[string]any{
			"Updated": synced,
		},
	})

	return synced, nil
}

// assignGroup swaps the guest role for the group role and records the group.
func (s *Service) assignGroup(ctx context.Context, member discord.Member, group string) error {
	roleID, ok := s.config.GroupRole(group)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGroup, group)
	}

	if err := s.client.Rest().AddMemberRole(s.config.ID, member.User.ID, roleID); err != nil {
		return fmt.Errorf("failed to add group role: %w", err)
	}
	if err := s.client.Rest().RemoveMemberRole(s.config.ID, member.User.ID, s.config.GuestRoleID); err != nil {
		s.logger.Error("Failed to remove guest role",
			zap.Uint64("userID", uint64(member.User.ID)),
			zap.Error(err))
	}

	return s.db.Model().User().SetGroup(ctx, uint64(member.User.ID), group)
}

// notifyApplicant sends the decision DM. DMs are best effort since users can
// close them.
func (s *Service) notifyApplicant(userID snowflake.ID, group string, approved bool) {
	dm, err := s.client.Rest().CreateDMChannel(userID)
	if err != nil {
		s.logger.Debug("Failed to open DM channel", zap.Uint64("userID", uint64(userID)), zap.Error(err))
		return
	}
	if _, err := s.client.Rest().CreateMessage(dm.ID(), views.ApplicationDecisionDM(group, approved)); err != nil {
		s.logger.Debug("Failed to send decision DM", zap.Uint64("userID", uint64(userID)), zap.Error(err))
	}
}
