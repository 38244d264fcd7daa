package constants

import "time"

// Embed colors used across all bot responses.
const (
	ColorDefault = 0xFF69B4
	ColorSuccess = 0x00FF00
	ColorError   = 0xFF0000
	ColorWarning = 0xFFFF00
	ColorInfo    = 0x0099FF
)

// Custom ID kinds. Every component and modal custom ID is a serializable
// payload of the form kind:action[:args...] so prompts keep working across
// process restarts.
const (
	KindRules       = "rules"
	KindGroup       = "group"
	KindApplication = "app"
	KindVoice       = "voice"
)

// Rules prompt actions.
const (
	RulesActionAccept = "accept"
)

// Group selection prompt actions.
const (
	GroupActionSelect = "select"
	GroupActionApply  = "apply"
)

// Application review actions.
const (
	ApplicationActionApprove = "approve"
	ApplicationActionReject  = "reject"
)

// Voice control panel actions.
const (
	VoiceActionLock     = "lock"
	VoiceActionUnlock   = "unlock"
	VoiceActionLimit    = "limit"
	VoiceActionRename   = "rename"
	VoiceActionTransfer = "transfer"
	VoiceActionDelete   = "delete"
	VoiceActionConfirm  = "confirm"
	VoiceActionCancel   = "cancel"
)

// Modal text input custom IDs.
const (
	InputFullName  = "full_name"
	InputUserLimit = "user_limit"
	InputName      = "name"
	InputNewOwner  = "new_owner"
)

// Voice channel limits.
const (
	MinUserLimit = 0
	MaxUserLimit = 99
	MinNameLen   = 1
	MaxNameLen   = 100
)

// Application validation.
const (
	// MinNameTokens is the minimum number of space-separated tokens in a
	// full name (first + last name at least).
	MinNameTokens = 2
)

// ConfirmTTL is how long a delete confirmation prompt stays valid.
const ConfirmTTL = 60 * time.Second

// ClearLimits bound the message count accepted by the clear command.
const (
	MinClearCount = 1
	MaxClearCount = 100
)
