// Package classify decides which backend should answer a user message.
//
// The decision order is fixed: small talk is answered locally, generative
// chat takes every other message whenever it is available, and only then
// are the weather and encyclopedia patterns consulted.
package classify

import (
	"regexp"
	"strings"
	"sync"

	"github.com/metekarasubasi/notiva/internal/domain"
	"github.com/metekarasubasi/notiva/internal/pkg/turkish"
	"github.com/metekarasubasi/notiva/internal/ports"
)

// Availability is the registry view the classifier needs.
type Availability interface {
	IsAvailable(domain.Backend) bool
}

// History is the tracker view the classifier needs.
type History interface {
	DetectTopic() string
}

// Decision is a classification plus what led to it.
type Decision struct {
	Classification domain.Classification
	// Rule is set when a standard-response rule matched.
	Rule    Rule
	Matched bool
	Topic   string
}

// Reply returns the local answer for a Standard decision.
func (d Decision) Reply() string {
	if d.Matched {
		return StandardReply(d.Rule)
	}
	return NoServiceReply
}

var weatherKeywords = []string{
	"hava", "hava durumu", "yağmur", "kar", "sıcaklık", "nem", "rüzgar", "güneş", "bulut",
	"fırtına", "yağış", "derece", "hissedilen", "meteoroloji", "tahmin", "yağacak mı",
	"hava nasıl", "bugün hava", "yarın hava", "sıcak mı", "soğuk mu", "şemsiye", "don",
	"dolu", "sis", "puslu", "parçalı bulutlu", "açık hava", "kapalı hava", "gök gürültüsü",
	"şimşek", "kasırga", "tayfun", "sel", "sağanak", "lodos", "poyraz", "meltem",
}

var weatherPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(hava|yağmur|kar|sıcaklık|derece).*ne.*(olacak|olur|durumda)`),
	regexp.MustCompile(`(bugün|yarın|hafta|pazartesi|salı|çarşamba|perşembe|cuma|cumartesi|pazar).*hava`),
	regexp.MustCompile(`[\p{L}\p{N}_]+'[dt][ae]\s+hava`),
	regexp.MustCompile(`(kaç|ne kadar).*(derece|sıcaklık)`),
}

// Go's \b only knows ASCII letters, so word edges are spelled out.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:$|[^\p{L}\p{N}_])`
)

var encyclopediaPatterns = []*regexp.Regexp{
	regexp.MustCompile(wordStart + `(nedir|kimdir|ne demek|kim|kimin|hangi|nerede|ne zaman)` + wordEnd),
	regexp.MustCompile(wordStart + `(hakkında|konusunda)` + wordEnd + `.*bilgi`),
	regexp.MustCompile(wordStart + `(tanımı|anlamı|açıklaması)` + wordEnd),
}

// Classifier is safe for concurrent use. The rule book can be swapped while
// messages are being classified.
type Classifier struct {
	mu     sync.RWMutex
	rules  *RuleBook
	logger ports.Logger
}

// New builds a classifier. A nil rule book uses the defaults.
func New(rules *RuleBook, logger ports.Logger) *Classifier {
	if rules == nil {
		rules = DefaultRuleBook()
	}
	return &Classifier{rules: rules, logger: logger}
}

// Classify maps a message to the backend that should answer it.
func (c *Classifier) Classify(text string, availability Availability, history History) Decision {
	normalized := turkish.Normalize(text)
	decision := c.decide(normalized, availability)
	if history != nil {
		decision.Topic = history.DetectTopic()
	}
	if c.logger != nil {
		c.logger.Debug("classified query", map[string]interface{}{
			"classification": decision.Classification.String(),
			"rule":           string(decision.Rule.Category),
			"topic":          decision.Topic,
		})
	}
	return decision
}

// SetRules replaces the rule book. A nil book restores the defaults.
func (c *Classifier) SetRules(rules *RuleBook) {
	if rules == nil {
		rules = DefaultRuleBook()
	}
	c.mu.Lock()
	c.rules = rules
	c.mu.Unlock()
}

// Rules returns the active rule book.
func (c *Classifier) Rules() *RuleBook {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rules
}

func (c *Classifier) decide(text string, availability Availability) Decision {
	if rule, ok := c.Rules().Match(text); ok {
		return Decision{Classification: domain.ClassificationStandard, Rule: rule, Matched: true}
	}
	if availability.IsAvailable(domain.BackendGenerativeChat) {
		return Decision{Classification: domain.ClassificationGenerativeChat}
	}
	if IsWeatherQuery(text) && availability.IsAvailable(domain.BackendWeather) {
		return Decision{Classification: domain.ClassificationWeather}
	}
	if availability.IsAvailable(domain.BackendEncyclopedia) && IsEncyclopediaQuery(text) {
		return Decision{Classification: domain.ClassificationEncyclopedia}
	}
	return Decision{Classification: domain.ClassificationStandard}
}

// Classify runs the default rule book without logging.
func Classify(text string, availability Availability, history History) domain.Classification {
	return defaultClassifier.Classify(text, availability, history).Classification
}

var defaultClassifier = New(nil, nil)

// IsWeatherQuery expects normalized (lowercase, trimmed) text.
func IsWeatherQuery(text string) bool {
	for _, kw := range weatherKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return anyMatch(weatherPatterns, text)
}

// IsEncyclopediaQuery expects normalized text.
func IsEncyclopediaQuery(text string) bool {
	return anyMatch(encyclopediaPatterns, text)
}

func anyMatch(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
