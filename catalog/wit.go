package catalog

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/wippyai/callbridge/value"
)

// WITPackage is the package name used when rendering the catalog.
const WITPackage = "callbridge:catalog"

// WIT renders the catalog as WIT interfaces, one per declared type.
// Instance methods take the receiver handle as their first parameter.
func (c *Catalog) WIT() string {
	var b strings.Builder
	fmt.Fprintf(&b, "package %s;\n", WITPackage)

	for _, name := range c.Types() {
		b.WriteString("\n")
		fmt.Fprintf(&b, "interface %s {\n", witIdent(name))
		b.WriteString("  type handle = u64;\n")
		for _, t := range c.Members(name) {
			b.WriteString("\n")
			if t.result != nil && !resultSupported(t) {
				fmt.Fprintf(&b, "  // %s result is not representable\n", t.result)
			}
			fmt.Fprintf(&b, "  %s: %s;\n", witMemberName(t), t.WITSignature())
		}
		b.WriteString("}\n")
	}
	return b.String()
}

// WITSignature renders the boundary signature of t as a WIT func type.
func (t *Target) WITSignature() string {
	var params []string
	if t.kind == KindMethod {
		params = append(params, "self: handle")
	}
	for i, p := range t.params {
		typ := p.Kind.WitName()
		if t.variadic && i == len(t.params)-1 {
			params = append(params, fmt.Sprintf("rest: list<%s>", typ))
			continue
		}
		params = append(params, fmt.Sprintf("arg%d: %s", i, typ))
	}

	sig := "func(" + strings.Join(params, ", ") + ")"
	if t.result != nil && resultSupported(t) {
		sig += " -> " + value.SlotKind(t.result).WitName()
	}
	return sig
}

// ResultKind returns the kind the result of t encodes to. The second return
// is false when the result type cannot be encoded.
func (t *Target) ResultKind() (value.Kind, bool) {
	if t.result == nil {
		return value.KindNone, true
	}
	if !resultSupported(t) {
		return value.KindNone, false
	}
	return value.SlotKind(t.result), true
}

func resultSupported(t *Target) bool {
	return value.SlotKind(t.result).Primitive()
}

func witMemberName(t *Target) string {
	name := witIdent(t.name)
	if t.kind == KindMethod {
		return "method-" + name
	}
	return name
}

// witIdent converts a Go or dotted name to a kebab-case WIT identifier.
func witIdent(s string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range s {
		switch {
		case r == '.' || r == '_' || r == ' ' || r == '-':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevLower = true
		}
	}
	return strings.Trim(b.String(), "-")
}
