// Package names provides the deterministic identifier transformations applied
// to catalog names before they are emitted as Go identifiers.
package names

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

var rules = ruleset()

// acronyms are kept fully uppercased inside pascal-cased identifiers.
var acronyms = make(map[string]struct{})

func ruleset() *inflect.Ruleset {
	rules := inflect.NewDefaultRuleset()
	for _, w := range []string{
		"ACL", "API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML",
		"HTTP", "HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS",
		"RPC", "SLA", "SMTP", "SQL", "SSH", "TCP", "TLS", "TTL", "UDP",
		"UI", "UID", "UUID", "URI", "URL", "UTF8", "VM", "XML", "XSS",
	} {
		acronyms[w] = struct{}{}
		rules.AddAcronym(w)
	}
	return rules
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || unicode.IsSpace(r)
}

// Pascal converts a snake or kebab style name to a pascal-cased identifier,
// keeping known acronyms uppercased.
func Pascal(s string) string {
	words := strings.FieldsFunc(s, isSeparator)
	for i, w := range words {
		upper := strings.ToUpper(w)
		if _, ok := acronyms[upper]; ok {
			words[i] = upper
			continue
		}
		words[i] = rules.Capitalize(w)
	}
	return strings.Join(words, "")
}

// Snake converts a pascal or camel cased identifier to snake style.
func Snake(s string) string {
	var (
		j int
		b strings.Builder
	)
	for i := 0; i < len(s); i++ {
		r := rune(s[i])
		// Put '_' if it is not a start or end of a word, current letter
		// is uppercase, and previous letter is lowercase (cases like
		// "UserInfo"), or next letter is also lowercase and previous
		// letter is not '_'.
		if i > 0 && i < len(s)-1 && unicode.IsUpper(r) {
			if unicode.IsLower(rune(s[i-1])) ||
				j != i-1 && unicode.IsLower(rune(s[i+1])) && unicode.IsLetter(rune(s[i-1])) {
				j = i
				b.WriteString("_")
			}
		}
		b.WriteString(strings.ToLower(string(r)))
	}
	return b.String()
}

// Singular returns the singular form of the given name.
func Singular(s string) string {
	return rules.Singularize(s)
}
