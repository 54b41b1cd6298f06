package journal

import "regexp"

type redactionRule struct {
	pattern     *regexp.Regexp
	replacement string
}

const secretWord = `[a-z0-9_-]*(?:token|secret|password|passwd|pin|api[_-]?key|access[_-]?key)[a-z0-9_-]*`

var redactionRules = []redactionRule{
	{
		pattern:     regexp.MustCompile(`(?i)\b(authorization\s*:\s*bearer)\s+(\S+)`),
		replacement: `$1 <redacted>`,
	},
	{
		pattern:     regexp.MustCompile(`(?i)((?:--)?\b` + secretWord + `)\s*[=:]\s*("[^"]*"|'[^']*'|\S+)`),
		replacement: `$1=<redacted>`,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(--` + secretWord + `)\s+("[^"]*"|'[^']*'|\S+)`),
		replacement: `$1 <redacted>`,
	},
	// Spoken codes: "пароль 1234", "код 9876".
	{
		pattern:     regexp.MustCompile(`(?i)(пароль|парол[яюе]|код|pin|password)(\s+)(\S+)`),
		replacement: `$1$2<redacted>`,
	},
}

// Redact scrubs secrets a user may type or dictate before they reach disk.
func Redact(input string) string {
	redacted := input
	for _, rule := range redactionRules {
		redacted = rule.pattern.ReplaceAllString(redacted, rule.replacement)
	}
	return redacted
}
