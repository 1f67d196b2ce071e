package template

import "regexp"

// tokenPattern matches {{ identifier }} placeholders. Whitespace inside the
// braces is insignificant; identifiers are letters, digits and underscore.
var tokenPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// Data maps placeholder names to substitution values. Keys need not cover
// every placeholder in the template.
type Data map[string]string

// Template is an immutable piece of prompt text containing zero or more
// {{ identifier }} tokens.
type Template struct {
	text string
}

func New(text string) *Template {
	return &Template{text: text}
}

func (t *Template) Text() string {
	return t.text
}

// Compile substitutes every token whose identifier is a key in data with the
// corresponding value, inserted literally (no escaping, no recursion).
// Tokens with no matching key are left byte-identical in the output; a
// missing key is defined behavior, not an error.
func (t *Template) Compile(data Data) string {
	return tokenPattern.ReplaceAllStringFunc(t.text, func(token string) string {
		name := tokenPattern.FindStringSubmatch(token)[1]
		if value, ok := data[name]; ok {
			return value
		}
		return token
	})
}
