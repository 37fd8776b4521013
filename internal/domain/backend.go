package domain

import (
	"fmt"
	"strings"
	"time"
)

// Backend identifies an external answer source.
type Backend int

const (
	BackendWeather Backend = iota
	BackendEncyclopedia
	BackendGenerativeChat
)

// Backends lists every backend in declaration order.
var Backends = []Backend{BackendWeather, BackendEncyclopedia, BackendGenerativeChat}

func (b Backend) String() string {
	switch b {
	case BackendWeather:
		return "weather"
	case BackendEncyclopedia:
		return "encyclopedia"
	case BackendGenerativeChat:
		return "generative"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// RequiresCredential reports whether the backend needs an API key.
func (b Backend) RequiresCredential() bool {
	return b != BackendEncyclopedia
}

// ParseBackend accepts the names printed by String plus a few aliases.
func ParseBackend(value string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "weather", "hava":
		return BackendWeather, nil
	case "encyclopedia", "wikipedia", "wiki":
		return BackendEncyclopedia, nil
	case "generative", "gemini", "chat":
		return BackendGenerativeChat, nil
	default:
		return 0, fmt.Errorf("unknown backend %q", value)
	}
}

// BackendStatus is the availability record kept per backend.
type BackendStatus struct {
	Backend        Backend   `json:"backend"`
	HasCredential  bool      `json:"has_credential"`
	HasRecentError bool      `json:"has_recent_error"`
	LastErrorTime  time.Time `json:"last_error_time"`
	ErrorCount     int       `json:"error_count"`
	Available      bool      `json:"available"`
}

// InCooldown reports whether an errored backend is still inside the window.
func (s BackendStatus) InCooldown(now time.Time, cooldown time.Duration) bool {
	return s.HasRecentError && now.Sub(s.LastErrorTime) < cooldown
}

// Credentials is what the credential source supplies. Blank means absent.
type Credentials struct {
	WeatherKey    string
	GenerativeKey string
}

// For returns the key configured for a backend.
func (c Credentials) For(b Backend) string {
	switch b {
	case BackendWeather:
		return strings.TrimSpace(c.WeatherKey)
	case BackendGenerativeChat:
		return strings.TrimSpace(c.GenerativeKey)
	default:
		return ""
	}
}
