package query

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/metekarasubasi/notiva/internal/domain"
	"github.com/metekarasubasi/notiva/internal/pkg/turkish"
)

const locativeSuffixes = `(?:ilinde|ilinin|ilimizin|şehrinde|şehrinin|'da|'de|'ta|'te|kentinde|kentinin)`

// cityPatterns are tried in order; group 1 holds the city.
var cityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(.*?)` + locativeSuffixes + `.*?hava.*`),
	regexp.MustCompile(`.*?hava.*?(?:durumu|nasıl).*?(.*?)` + locativeSuffixes),
	regexp.MustCompile(`(.*?)(?:'nin|'nın|'nun|'nün).*?hava.*`),
}

var knownCities = []string{
	"istanbul", "ankara", "izmir", "bursa", "antalya", "adana", "konya", "gaziantep", "şanlıurfa", "mersin",
}

var (
	questionWords = regexp.MustCompile(`(nedir|kimdir|ne demek|nerede|ne zaman|kim|kimin|hangi)(\?)?`)
	topicWords    = regexp.MustCompile(`hakkında|konusunda|bilgi`)
)

// ExtractCity finds the city a weather question is about, defaulting to Istanbul.
func ExtractCity(text string) string {
	lowered := turkish.Lower(text)
	for _, re := range cityPatterns {
		if m := re.FindStringSubmatch(lowered); m != nil {
			if city := strings.TrimSpace(m[1]); city != "" {
				return city
			}
		}
	}
	for _, city := range knownCities {
		if strings.Contains(lowered, city) {
			return city
		}
	}
	return domain.DefaultCity
}

// EncyclopediaSearchTerm strips question and topic words from text.
func EncyclopediaSearchTerm(text string) string {
	term := questionWords.ReplaceAllString(turkish.Lower(text), "")
	term = topicWords.ReplaceAllString(term, "")
	return strings.TrimSpace(term)
}

// BuildPrompt renders history as Human/Assistant turns followed by the new question.
func BuildPrompt(question string, history []domain.Message, turns int) string {
	if turns > 0 && len(history) > turns {
		history = history[len(history)-turns:]
	}
	var b strings.Builder
	for _, msg := range history {
		cleaned := turkish.CleanMessage(msg.Text)
		if cleaned == "" {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", msg.Speaker(), cleaned)
	}
	fmt.Fprintf(&b, "Human: %s\nAssistant:", question)
	return b.String()
}

// FormatForecast renders the forecast reply. Missing values print as "-".
func FormatForecast(city string, f domain.Forecast) string {
	lines := []string{
		fmt.Sprintf("%s için hava durumu:", turkish.Title(city)),
		fmt.Sprintf("Sıcaklık: %s°C", number(f.AirTemperature)),
		fmt.Sprintf("Nem: %s%%", number(f.RelativeHumidity)),
		fmt.Sprintf("Rüzgar Hızı: %s m/s", number(f.WindSpeed)),
		fmt.Sprintf("Rüzgar Yönü: %s°", number(f.WindFromDirection)),
		fmt.Sprintf("Bulutluluk: %s%%", number(f.CloudAreaFraction)),
	}
	if f.PrecipitationNextHr != nil {
		lines = append(lines, fmt.Sprintf("Yağış Miktarı (1 saat): %s mm", number(f.PrecipitationNextHr)))
	}
	condition := f.SymbolCode
	if condition == "" {
		condition = msgUnknownCondition
	}
	lines = append(lines, "Durum: "+condition)
	return strings.Join(lines, "\n")
}

// FormatSummary renders "Title:\nExtract".
func FormatSummary(s domain.Summary) string {
	return s.Title + ":\n" + s.Extract
}

func number(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
