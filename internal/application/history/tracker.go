// Package history keeps the bounded buffer of recent chat messages and the
// light text analytics computed over it.
package history

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/metekarasubasi/notiva/internal/domain"
	"github.com/metekarasubasi/notiva/internal/pkg/turkish"
)

// DefaultTopic is returned by DetectTopic when no category keyword occurs.
const DefaultTopic = "general"

type topicCategory struct {
	name     string
	keywords []string
}

// categories are scored in this order; the first wins a tie.
var categories = []topicCategory{
	{"matematik", []string{"hesapla", "çöz", "sonuç", "formül", "denklem", "integral", "türev", "limit"}},
	{"hava durumu", []string{"hava", "sıcaklık", "yağmur", "kar", "nem", "rüzgar", "güneş", "fırtına"}},
	{"genel bilgi", []string{"nedir", "kimdir", "ne zaman", "nerede", "nasıl", "anlat", "açıkla", "tarih"}},
}

var stopWords = map[string]struct{}{
	"ve": {}, "veya": {}, "ile": {}, "bu": {}, "şu": {}, "o": {}, "bir": {}, "için": {}, "gibi": {},
	"de": {}, "da": {}, "ki": {}, "ne": {}, "mi": {}, "mı": {}, "mu": {}, "mü": {},
}

var punctuation = regexp.MustCompile(`[^\w\sğüşıöçĞÜŞİÖÇ]`)

// Tracker is a FIFO buffer of the last N messages. Safe for concurrent use.
type Tracker struct {
	mu       sync.RWMutex
	capacity int
	messages []domain.Message
}

// NewTracker creates a tracker; capacity <= 0 uses the default of 5.
func NewTracker(capacity int) *Tracker {
	if capacity <= 0 {
		capacity = domain.DefaultHistorySize
	}
	return &Tracker{capacity: capacity, messages: make([]domain.Message, 0, capacity+1)}
}

// Capacity returns the maximum number of buffered messages.
func (t *Tracker) Capacity() int {
	return t.capacity
}

// Append pushes msg and evicts the oldest entries beyond capacity.
func (t *Tracker) Append(msg domain.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = append(t.messages, msg)
	if overflow := len(t.messages) - t.capacity; overflow > 0 {
		t.messages = append(t.messages[:0], t.messages[overflow:]...)
	}
}

// Recent returns a copy of the buffer, oldest first.
func (t *Tracker) Recent() []domain.Message {
	return t.filter(func(domain.Message) bool { return true })
}

// RecentUser returns only the user's messages.
func (t *Tracker) RecentUser() []domain.Message {
	return t.filter(func(m domain.Message) bool { return m.IsFromUser })
}

// RecentBot returns only the assistant's messages.
func (t *Tracker) RecentBot() []domain.Message {
	return t.filter(func(m domain.Message) bool { return !m.IsFromUser })
}

// Len returns the number of buffered messages.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// ContainsKeyword reports a case-insensitive substring match in any message.
func (t *Tracker) ContainsKeyword(word string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return containsKeyword(t.messages, word)
}

// ContainsAnyTopic reports whether any of the keywords occurs.
func (t *Tracker) ContainsAnyTopic(topics []string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, topic := range topics {
		if containsKeyword(t.messages, topic) {
			return true
		}
	}
	return false
}

// DetectTopic scores each category by the number of its keywords present
// anywhere in the buffer and returns the best one.
func (t *Tracker) DetectTopic() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	best, bestScore := DefaultTopic, 0
	for _, category := range categories {
		score := 0
		for _, keyword := range category.keywords {
			if containsKeyword(t.messages, keyword) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = category.name, score
		}
	}
	return best
}

// MostFrequentWords counts words longer than two letters across the buffer,
// most frequent first. Ties keep first-appearance order.
func (t *Tracker) MostFrequentWords(excludeCommon bool) []domain.WordCount {
	t.mu.RLock()
	defer t.mu.RUnlock()

	counts := make(map[string]int)
	var order []string
	for _, msg := range t.messages {
		cleaned := punctuation.ReplaceAllString(turkish.Lower(msg.Text), " ")
		for _, word := range strings.Fields(cleaned) {
			if utf8.RuneCountInString(word) <= 2 {
				continue
			}
			if _, common := stopWords[word]; common && excludeCommon {
				continue
			}
			if counts[word] == 0 {
				order = append(order, word)
			}
			counts[word]++
		}
	}

	out := make([]domain.WordCount, 0, len(order))
	for _, word := range order {
		out = append(out, domain.WordCount{Word: word, Count: counts[word]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// Clear empties the buffer.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.messages = t.messages[:0]
}

func (t *Tracker) filter(keep func(domain.Message) bool) []domain.Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.Message, 0, len(t.messages))
	for _, msg := range t.messages {
		if keep(msg) {
			out = append(out, msg)
		}
	}
	return out
}

func containsKeyword(messages []domain.Message, word string) bool {
	needle := turkish.Lower(word)
	for _, msg := range messages {
		if strings.Contains(turkish.Lower(msg.Text), needle) {
			return true
		}
	}
	return false
}
