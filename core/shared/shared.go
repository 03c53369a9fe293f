package shared

import "strings"

func ToTitle(s string) string {
	if s == "" {
		return s
	}
	first := strings.ToUpper(s[:1])
	rest := s[1:]
	return first + rest
}

// ToPascal converts a snake_case or kebab-case name to PascalCase.
// "pet_tag" -> "PetTag", "inline-object" -> "InlineObject".
func ToPascal(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-'
	})
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(ToTitle(part))
	}
	return b.String()
}
