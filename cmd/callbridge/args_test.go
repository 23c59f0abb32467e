package main

import (
	"math"
	"testing"

	"github.com/wippyai/callbridge/value"
)

func TestParseArg(t *testing.T) {
	tests := []struct {
		in   string
		want value.Value
	}{
		{"byte:5", value.Byte(5)},
		{"byte:255", value.Byte(255)},
		{"byte:-1", value.Byte(255)},
		{"u8:7", value.Byte(7)},
		{"short:-2", value.Short(-2)},
		{"s16:0x10", value.Short(16)},
		{"int:3", value.Int(3)},
		{"s32:-2147483648", value.Int(math.MinInt32)},
		{"int:4294967295", value.Int(-1)},
		{"long:9", value.Long(9)},
		{"s64:-9", value.Long(-9)},
		{"bool:true", value.Bool(true)},
		{"bool:0", value.Bool(false)},
		{"float:1.5", value.Float(1.5)},
		{"f64:2.25", value.Double(2.25)},
		{"double:2.25", value.Double(2.25)},
		{"char:A", value.Character('A')},
		{"char:é", value.Character(0xE9)},
		{"char:U+D83D", value.Character(0xD83D)},
		{"ref:13", value.Ref(13)},
		{"handle:0x20", value.Ref(32)},
		{"reference:1", value.Ref(1)},
		{"none:", value.None()},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseArg(tt.in)
			if err != nil {
				t.Fatalf("parseArg failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseArg_Invalid(t *testing.T) {
	for _, in := range []string{
		"5",
		"string:x",
		"list:1",
		"byte:256",
		"short:70000",
		"bool:maybe",
		"char:AB",
		"char:😀",
		"ref:-1",
	} {
		if _, err := parseArg(in); err == nil {
			t.Errorf("parseArg(%q) should fail", in)
		}
	}
}

func TestParseArgs(t *testing.T) {
	got, err := parseArgs([]string{"int:3", "int:2"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != value.Int(3) || got[1] != value.Int(2) {
		t.Fatalf("got %v", got)
	}
	if _, err := parseArgs([]string{"int:3", "oops"}); err == nil {
		t.Fatal("expected error")
	}
}
