package domain

import (
	"fmt"
	"strings"
)

// Classification is the routing decision for one user message.
type Classification int

const (
	ClassificationStandard Classification = iota
	ClassificationWeather
	ClassificationEncyclopedia
	ClassificationGenerativeChat
)

func (c Classification) String() string {
	switch c {
	case ClassificationStandard:
		return "standard"
	case ClassificationWeather:
		return "weather"
	case ClassificationEncyclopedia:
		return "encyclopedia"
	case ClassificationGenerativeChat:
		return "generative"
	default:
		return fmt.Sprintf("Classification(%d)", int(c))
	}
}

// Backend maps a classification to the backend it dispatches to.
// Standard has no backend.
func (c Classification) Backend() (Backend, bool) {
	switch c {
	case ClassificationWeather:
		return BackendWeather, true
	case ClassificationEncyclopedia:
		return BackendEncyclopedia, true
	case ClassificationGenerativeChat:
		return BackendGenerativeChat, true
	default:
		return 0, false
	}
}

// RoutingMode pins dispatch to a backend or leaves it to the classifier.
type RoutingMode string

const (
	ModeAuto         RoutingMode = "auto"
	ModeWeather      RoutingMode = "weather"
	ModeEncyclopedia RoutingMode = "encyclopedia"
	ModeChat         RoutingMode = "chat"
)

// ParseRoutingMode validates a mode name; empty means auto.
func ParseRoutingMode(value string) (RoutingMode, error) {
	switch mode := RoutingMode(strings.ToLower(strings.TrimSpace(value))); mode {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeWeather, ModeEncyclopedia, ModeChat:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown routing mode %q (auto|weather|encyclopedia|chat)", value)
	}
}

// Pinned returns the forced classification for a non-auto mode.
func (m RoutingMode) Pinned() (Classification, bool) {
	switch m {
	case ModeWeather:
		return ClassificationWeather, true
	case ModeEncyclopedia:
		return ClassificationEncyclopedia, true
	case ModeChat:
		return ClassificationGenerativeChat, true
	default:
		return ClassificationStandard, false
	}
}

// BackendResponse is the transient outcome of a dispatch.
type BackendResponse struct {
	Text      string
	Succeeded bool
}

// Exchange is what HandleUserMessage produces for one submitted message.
type Exchange struct {
	User           Message
	Reply          Message
	Classification Classification
	Succeeded      bool
}
