package main

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/wippyai/callbridge/bridge"
	"github.com/wippyai/callbridge/builtin"
	"github.com/wippyai/callbridge/errors"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestManifest_Apply(t *testing.T) {
	path := writeManifest(t, `
[[object]]
handle = 40
string = "hello"

[[object]]
handle = 41
int = 7

[[preload]]
type = "crosslang.Tests.AddTest, crosslang"
member = "Add"

[[preload]]
type = "crosslang.Counter"
member = "Add"
method = true
`)
	m, err := loadManifest(path)
	if err != nil {
		t.Fatal(err)
	}

	cat, err := builtin.New(nil)
	if err != nil {
		t.Fatal(err)
	}
	agent := bridge.New(cat, bridge.DefaultOptions())
	pre, err := m.apply(agent, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if len(pre) != 2 || !pre[1].Method {
		t.Fatalf("preloaded = %+v", pre)
	}
	if v, ok := agent.Handles().Get(40); !ok || v != "hello" {
		t.Fatalf("handle 40 = %v, %v", v, ok)
	}
	if v, ok := agent.Handles().Get(41); !ok || v != int64(7) {
		t.Fatalf("handle 41 = %v, %v", v, ok)
	}
	if _, err := agent.Registry().Static(pre[0].ID); err != nil {
		t.Fatalf("preloaded id not registered: %v", err)
	}
}

func TestManifest_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[[object]\nhandle = 1"},
		{"unknown key", "[[object]]\nhandle = 1\nstring = \"x\"\ncolor = \"red\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadManifest(writeManifest(t, tt.body))
			if errors.KindOf(err) != errors.KindInvalidInput {
				t.Fatalf("expected load error, got %v", err)
			}
		})
	}

	m, err := loadManifest(writeManifest(t, "[[object]]\nhandle = 1\nstring = \"x\"\nint = 2"))
	if err != nil {
		t.Fatal(err)
	}
	cat, _ := builtin.New(nil)
	if _, err := m.apply(bridge.New(cat, bridge.DefaultOptions()), zap.NewNop()); err == nil {
		t.Fatal("object with two values should fail")
	}

	m, _ = loadManifest(writeManifest(t, "[[preload]]\ntype = \"crosslang.Nope\"\nmember = \"X\""))
	if _, err := m.apply(bridge.New(cat, bridge.DefaultOptions()), zap.NewNop()); errors.KindOf(err) != errors.KindTargetNotFound {
		t.Fatalf("expected target_not_found, got %v", err)
	}

	if _, err := loadManifest(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("missing file should fail")
	}
}
