package ir

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeIdentifier returns the canonical string form of an identifier.
//
// Identifiers are NFC normalized and stripped of surrounding whitespace.
// Two identifiers that render identically must compare equal, otherwise the
// linker would fail to match an input to the output that produced it.
func NormalizeIdentifier(id string) string {
	return norm.NFC.String(strings.TrimSpace(id))
}

// NormalizeLiteral returns the canonical string form of a literal value.
// Whitespace is significant in literals and is preserved.
func NormalizeLiteral(value string) string {
	return norm.NFC.String(value)
}
