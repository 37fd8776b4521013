package history

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metekarasubasi/notiva/internal/domain"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func userMsg(text string) domain.Message {
	return domain.NewMessage(text, true, epoch)
}

func botMsg(text string) domain.Message {
	return domain.NewMessage(text, false, epoch)
}

func texts(msgs []domain.Message) []string {
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Text
	}
	return out
}

func TestTracker_EvictsOldest(t *testing.T) {
	tr := NewTracker(5)
	for i := 1; i <= 6; i++ {
		tr.Append(userMsg(fmt.Sprintf("m%d", i)))
		assert.LessOrEqual(t, tr.Len(), 5)
	}

	assert.Equal(t, []string{"m2", "m3", "m4", "m5", "m6"}, texts(tr.Recent()))
}

func TestTracker_RecentIsCopy(t *testing.T) {
	tr := NewTracker(0)
	assert.Equal(t, domain.DefaultHistorySize, tr.Capacity())
	tr.Append(userMsg("a"))

	snap := tr.Recent()
	snap[0].Text = "mutated"

	assert.Equal(t, "a", tr.Recent()[0].Text)
}

func TestTracker_SplitBySpeaker(t *testing.T) {
	tr := NewTracker(5)
	tr.Append(userMsg("soru"))
	tr.Append(botMsg("cevap"))
	tr.Append(userMsg("ikinci soru"))

	assert.Equal(t, []string{"soru", "ikinci soru"}, texts(tr.RecentUser()))
	assert.Equal(t, []string{"cevap"}, texts(tr.RecentBot()))
}

func TestTracker_ContainsKeyword(t *testing.T) {
	tr := NewTracker(5)
	tr.Append(userMsg("Bugün HAVA çok güzel"))

	assert.True(t, tr.ContainsKeyword("hava"))
	assert.True(t, tr.ContainsKeyword("Güzel"))
	assert.False(t, tr.ContainsKeyword("yağmur"))

	assert.True(t, tr.ContainsAnyTopic([]string{"kar", "güzel"}))
	assert.False(t, tr.ContainsAnyTopic([]string{"kar", "dolu"}))
	assert.False(t, tr.ContainsAnyTopic(nil))
}

func TestTracker_DetectTopic(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
		want     string
	}{
		{name: "empty", want: DefaultTopic},
		{name: "no keywords", messages: []string{"selam dostum"}, want: DefaultTopic},
		{name: "rain only", messages: []string{"yağmur", "yağmur", "yağmur"}, want: "hava durumu"},
		{name: "math", messages: []string{"bu denklemi çöz", "integral hesapla"}, want: "matematik"},
		{name: "general knowledge", messages: []string{"atatürk kimdir", "nerede doğdu"}, want: "genel bilgi"},
		// "hava" vs "nedir": one hit each, first declared category wins
		{name: "tie", messages: []string{"hava nedir"}, want: "hava durumu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(5)
			for _, m := range tt.messages {
				tr.Append(userMsg(m))
			}
			assert.Equal(t, tt.want, tr.DetectTopic())
		})
	}
}

func TestTracker_MostFrequentWords(t *testing.T) {
	tr := NewTracker(5)
	tr.Append(userMsg("İstanbul için hava, İstanbul!"))
	tr.Append(userMsg("ankara veya istanbul"))

	got := tr.MostFrequentWords(true)
	require.NotEmpty(t, got)
	assert.Equal(t, domain.WordCount{Word: "istanbul", Count: 3}, got[0])
	assert.Equal(t, []domain.WordCount{
		{Word: "istanbul", Count: 3},
		{Word: "hava", Count: 1},
		{Word: "ankara", Count: 1},
	}, got)

	withCommon := tr.MostFrequentWords(false)
	assert.Contains(t, withCommon, domain.WordCount{Word: "için", Count: 1})
	assert.Contains(t, withCommon, domain.WordCount{Word: "veya", Count: 1})
}

func TestTracker_Clear(t *testing.T) {
	tr := NewTracker(5)
	tr.Append(userMsg("a"))
	tr.Clear()
	assert.Empty(t, tr.Recent())
	assert.Equal(t, DefaultTopic, tr.DetectTopic())
}

func TestTracker_ConcurrentAppend(t *testing.T) {
	tr := NewTracker(5)
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr.Append(userMsg(fmt.Sprint(i)))
			_ = tr.Recent()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5, tr.Len())
}
