package condition

import (
	"strconv"
	"strings"
)

// Condition is an immutable predicate over uppercase tokens. A leaf tests
// whether any token starts with its keyword; a composite holds when at least
// threshold of its children hold.
type Condition struct {
	threshold int
	children  []Condition
	keyword   string
}

func Keyword(word string) Condition {
	return Condition{
		threshold: 1,
		keyword:   strings.ToUpper(strings.TrimSpace(word)),
	}
}

func AtLeast(threshold int, children ...Condition) Condition {
	if threshold < 1 {
		threshold = 1
	}
	return Condition{
		threshold: threshold,
		children:  append([]Condition(nil), children...),
	}
}

func Any(children ...Condition) Condition {
	return AtLeast(1, children...)
}

func All(children ...Condition) Condition {
	return AtLeast(len(children), children...)
}

// Words builds one leaf per stem.
func Words(stems ...string) []Condition {
	out := make([]Condition, 0, len(stems))
	for _, stem := range stems {
		out = append(out, Keyword(stem))
	}
	return out
}

func (c Condition) Threshold() int { return c.threshold }

func (c Condition) Keyword() string { return c.keyword }

func (c Condition) Children() []Condition {
	return append([]Condition(nil), c.children...)
}

func (c Condition) IsLeaf() bool { return len(c.children) == 0 }

// Evaluate expects tokens already uppercased, see Tokenize.
func (c Condition) Evaluate(tokens []string) bool {
	if len(c.children) == 0 {
		for _, token := range tokens {
			if strings.HasPrefix(token, c.keyword) {
				return true
			}
		}
		return false
	}

	fulfilled := 0
	for _, child := range c.children {
		if child.Evaluate(tokens) {
			fulfilled++
		}
	}
	return fulfilled >= c.threshold
}

func (c Condition) String() string {
	if len(c.children) == 0 {
		return c.keyword
	}
	parts := make([]string, 0, len(c.children))
	for _, child := range c.children {
		parts = append(parts, child.String())
	}
	return strconv.Itoa(c.threshold) + "of(" + strings.Join(parts, ",") + ")"
}

func Tokenize(text string) []string {
	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		tokens = append(tokens, strings.ToUpper(field))
	}
	return tokens
}
