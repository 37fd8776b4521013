package commands

// CLI-specific constants
const (
	// DefaultHistoryLimit is how many transcript entries `history list` shows
	DefaultHistoryLimit = 20
	// DefaultTopWords is how many words `history stats` reports
	DefaultTopWords = 5
	// TimestampFormat is used when printing transcript entries
	TimestampFormat = "2006-01-02 15:04:05"
	// ChatPrompt is printed before each line read by `chat`
	ChatPrompt = "> "
)

// Error messages
const (
	ErrConfigLoaderUnavailable  = "config loader unavailable"
	ErrDoctorServiceUnavailable = "doctor service unavailable"
	ErrTranscriptUnavailable    = "transcript store unavailable"
	ErrCacheUnavailable         = "geocode cache unavailable"
	ErrKeyRequired              = "--key is required"
)

// Success messages
const (
	MsgNoDifferencesFromDefault = "No differences from default configuration."
	MsgNoHistoryRecorded        = "No history recorded yet."
	MsgNoCachedLocations        = "No cached locations."
	MsgHistoryCleared           = "History cleared."
	MsgCacheCleared             = "Geocode cache cleared."
	MsgCancelled                = "Cancelled."
)
