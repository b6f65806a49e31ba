package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

// AgendaOrder controls how tasks, events and free slots are combined into one view
type AgendaOrder string

// SummaryStyle controls how a scheduled activity is titled on the calendar
type SummaryStyle string

// TimePreferenceMode selects how a generated task's time_preference is parsed
type TimePreferenceMode string

// RecommendationOrder selects whether recommendations keep backend order or are re-sorted
type RecommendationOrder string

const (
	AppName            = "praxable"
	DefaultKeyringUser = "llm-api-key"
	DefaultConfigDir   = "~/.config/praxable"
	DefaultJournalFile = "journal.db"
	ConfigFileName     = "config.yaml"
	Version            = "v0.3.0"

	// DefaultBaseURL is the backend address used when nothing else is configured
	DefaultBaseURL        = "http://127.0.0.1:8000"
	DefaultRequestTimeout = 30 * time.Second

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// LocalDateTimeFormat is a zone-less ISO datetime, as produced for slot anchoring
	LocalDateTimeFormat = "2006-01-02T15:04:05"

	// Display fallbacks for time formatting
	TimeNotAvailable = "N/A"
	TimeInvalid      = "Invalid time"

	// Planned tasks with a single start time are assumed to last this long
	DefaultPlannedTaskDuration = time.Hour

	// Defaults for tasks logged through plan approval
	DefaultMoodBefore   = 5
	DefaultSleepQuality = 5
	DefaultEnergyLevel  = 5

	// Rating bounds for mood, fulfillment, energy and sleep
	MinRating = 1
	MaxRating = 10

	// Prediction bands
	PredictionHighThreshold   = 7.0
	PredictionMediumThreshold = 4.0

	// API keys accepted by the backend's LLM provider start with this prefix
	APIKeyPrefix = "AIza"

	// Reminder constants
	ReminderLeadTime       = 5 * time.Minute
	ReminderLockfileName   = "remind.lock"
	NotifierLockfileName   = "praxable-tray.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.praxable.tray"

	// Agenda section titles
	SectionTasks    = "Tasks"
	SectionEvents   = "Events"
	SectionFreeTime = "Free Time"

	// Agenda orders
	AgendaSectioned   AgendaOrder = "sectioned"
	AgendaInterleaved AgendaOrder = "interleaved"

	// Summary styles
	SummaryWithEmoji SummaryStyle = "emoji"
	SummaryPlain     SummaryStyle = "plain"

	// Time preference modes
	TimePreferenceAuto   TimePreferenceMode = "auto"
	TimePreferenceSingle TimePreferenceMode = "single"
	TimePreferenceRange  TimePreferenceMode = "range"

	// Recommendation orders
	RecommendationOrderBackend RecommendationOrder = "backend"
	RecommendationOrderScore   RecommendationOrder = "score"
)

// Session States
const (
	StateToday SessionState = iota
	StateRecommendations
	StateValues
	StatePlan
)
