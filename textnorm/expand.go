package textnorm

import "strings"

// Separator splits a multi-valued field into synonym atoms.
// A slash is never a separator: "A/B" is a ratio, not two synonyms.
const Separator = ";"

// Expand splits a field on Separator, trims every atom and drops empty ones.
// A field without a separator yields a single atom.
func Expand(field string) []string {
	parts := strings.Split(field, Separator)
	atoms := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			atoms = append(atoms, p)
		}
	}
	return atoms
}

// Join is the inverse of Expand over its output.
func Join(atoms []string) string {
	return strings.Join(atoms, Separator)
}

// IsMultiValued reports whether field expands to more than one atom.
func IsMultiValued(field string) bool {
	return strings.Contains(field, Separator) && len(Expand(field)) > 1
}
