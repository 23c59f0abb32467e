package main

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/callbridge/handle"
	"github.com/wippyai/callbridge/value"
)

// parseArg parses "kind:literal". Kinds are value kind names, the aliases
// "ref" and "handle", or primitive WIT type names such as "s32".
func parseArg(s string) (value.Value, error) {
	name, lit, ok := strings.Cut(s, ":")
	if !ok {
		return value.Value{}, fmt.Errorf("argument %q: want kind:value", s)
	}
	kind, err := parseKind(name)
	if err != nil {
		return value.Value{}, fmt.Errorf("argument %q: %w", s, err)
	}
	v, err := parseLiteral(kind, lit)
	if err != nil {
		return value.Value{}, fmt.Errorf("argument %q: %w", s, err)
	}
	return v, nil
}

func parseArgs(args []string) ([]value.Value, error) {
	out := make([]value.Value, 0, len(args))
	for _, a := range args {
		v, err := parseArg(a)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseKind(name string) (value.Kind, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "ref", "handle", "obj":
		return value.KindReference, nil
	}
	if k, ok := value.ParseKind(name); ok {
		return k, nil
	}
	t, err := wit.ParseType(name)
	if err != nil {
		return 0, fmt.Errorf("unknown kind %q", name)
	}
	if k, ok := value.KindForWit(t); ok {
		return k, nil
	}
	return 0, fmt.Errorf("WIT type %s has no tagged kind", value.WitTypeName(t))
}

// parseLiteral parses lit for kind. Integer literals accept either signedness
// of their width, so byte:255 and byte:-1 are the same value.
func parseLiteral(kind value.Kind, lit string) (value.Value, error) {
	lit = strings.TrimSpace(lit)
	switch kind {
	case value.KindNone:
		return value.None(), nil
	case value.KindByte:
		bits, err := parseBits(lit, 8)
		return value.Byte(uint8(bits)), err
	case value.KindShort:
		bits, err := parseBits(lit, 16)
		return value.Short(int16(bits)), err
	case value.KindInt:
		bits, err := parseBits(lit, 32)
		return value.Int(int32(bits)), err
	case value.KindLong:
		bits, err := parseBits(lit, 64)
		return value.Long(int64(bits)), err
	case value.KindBool:
		b, err := strconv.ParseBool(lit)
		return value.Bool(b), err
	case value.KindFloat:
		f, err := strconv.ParseFloat(lit, 32)
		return value.Float(float32(f)), err
	case value.KindDouble:
		f, err := strconv.ParseFloat(lit, 64)
		return value.Double(f), err
	case value.KindChar:
		c, err := parseChar(lit)
		return value.Character(c), err
	case value.KindReference:
		h, err := strconv.ParseUint(lit, 0, 64)
		return value.Ref(handle.Handle(h)), err
	default:
		return value.Value{}, fmt.Errorf("unknown kind %s", kind)
	}
}

func parseBits(lit string, size int) (uint64, error) {
	if u, err := strconv.ParseUint(lit, 0, size); err == nil {
		return u, nil
	}
	i, err := strconv.ParseInt(lit, 0, size)
	if err != nil {
		return 0, err
	}
	return uint64(i), nil
}

func parseChar(lit string) (value.Char, error) {
	if r, size := utf8.DecodeRuneInString(lit); size == len(lit) && r != utf8.RuneError && r <= 0xFFFF {
		return value.Char(r), nil
	}
	num := strings.TrimPrefix(strings.TrimPrefix(lit, "U+"), "u+")
	if num != lit {
		num = "0x" + num
	}
	u, err := strconv.ParseUint(num, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("char %q is not a single UTF-16 code unit", lit)
	}
	return value.Char(u), nil
}
