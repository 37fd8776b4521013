package classify

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/metekarasubasi/notiva/internal/pkg/turkish"
)

// Category names the kind of small talk a standard-response rule detects.
type Category string

const (
	CategoryNone        Category = ""
	CategoryGreeting    Category = "greeting"
	CategoryThanks      Category = "thanks"
	CategorySmallTalk   Category = "smalltalk"
	CategoryInsult      Category = "insult"
	CategoryNonsense    Category = "nonsense"
	CategoryProfanity   Category = "profanity"
	CategoryFrustration Category = "frustration"
)

// Rule matches when the text contains any keyword or matches the pattern.
type Rule struct {
	Category Category `yaml:"category"`
	Keywords []string `yaml:"keywords"`
	Pattern  string   `yaml:"pattern"`
	Reply    string   `yaml:"reply"`
}

// RulesFile is the YAML schema root for ~/.notiva/rules.yaml.
type RulesFile struct {
	Rules struct {
		Standard []Rule `yaml:"standard"`
	} `yaml:"rules"`
}

type compiledRule struct {
	re   *regexp.Regexp
	rule Rule
}

// RuleBook is the ordered set of standard-response rules.
type RuleBook struct {
	rules []compiledRule
}

// NewRuleBook compiles rules in order. Keywords are lowercased.
func NewRuleBook(rules []Rule) (*RuleBook, error) {
	book := &RuleBook{}
	for _, rule := range rules {
		if rule.Category == CategoryNone {
			return nil, errors.New("standard rule without category")
		}
		entry := compiledRule{rule: rule}
		entry.rule.Keywords = make([]string, 0, len(rule.Keywords))
		for _, kw := range rule.Keywords {
			if kw = turkish.Normalize(kw); kw != "" {
				entry.rule.Keywords = append(entry.rule.Keywords, kw)
			}
		}
		if rule.Pattern != "" {
			re, err := regexp.Compile(rule.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rule %s: %w", rule.Category, err)
			}
			entry.re = re
		}
		book.rules = append(book.rules, entry)
	}
	return book, nil
}

// DefaultRuleBook returns the built-in rules.
func DefaultRuleBook() *RuleBook {
	book, err := NewRuleBook(defaultRules())
	if err != nil {
		panic(err)
	}
	return book
}

// LoadRuleBook reads rules from path, falling back to the built-in set when
// the file is missing or lists no rules.
func LoadRuleBook(path string) (*RuleBook, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultRuleBook(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultRuleBook(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	var file RulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if len(file.Rules.Standard) == 0 {
		return DefaultRuleBook(), nil
	}
	return NewRuleBook(file.Rules.Standard)
}

// Match returns the first rule the normalized text triggers.
func (b *RuleBook) Match(text string) (Rule, bool) {
	for _, entry := range b.rules {
		for _, kw := range entry.rule.Keywords {
			if strings.Contains(text, kw) {
				return entry.rule, true
			}
		}
		if entry.re != nil && entry.re.MatchString(text) {
			return entry.rule, true
		}
	}
	return Rule{}, false
}

// Len returns the number of rules.
func (b *RuleBook) Len() int {
	return len(b.rules)
}

func defaultRules() []Rule {
	return []Rule{
		{
			Category: CategoryGreeting,
			Keywords: []string{"merhaba", "selam", "hey", "hi", "hello", "günaydın", "iyi sabahlar",
				"iyi akşamlar", "iyi geceler", "hoşça kal", "görüşürüz", "bye", "bb", "güle güle"},
		},
		{
			Category: CategoryThanks,
			Keywords: []string{"teşekkür", "teşekkürler", "sağol", "eyvallah", "eyv", "tşk", "teşekkür ederim",
				"çok teşekkürler", "sağ ol", "sağolasın"},
		},
		{Category: CategorySmallTalk, Pattern: `(nasılsın|naber|ne haber)`},
		{Category: CategoryInsult, Pattern: `(aptal|salak|mal|gerizekalı|beyinsiz)`},
		{Category: CategoryNonsense, Pattern: `(saçmalık|saçma|anlamsız|boş|sacma)`},
		{Category: CategoryProfanity, Pattern: `(küfür|küfr|mk|aq|amk|sg|siktir)`},
		{Category: CategoryFrustration, Pattern: `(bıktım|usandım|sıkıldım|of|ahh|yapma|etme)`},
	}
}
