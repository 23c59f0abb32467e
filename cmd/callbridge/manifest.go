package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/wippyai/callbridge/bridge"
	"github.com/wippyai/callbridge/errors"
	"github.com/wippyai/callbridge/handle"
	"github.com/wippyai/callbridge/registry"
)

// manifest seeds an agent before a command runs.
//
//	[[object]]
//	handle = 13
//	string = "printing something"
//
//	[[preload]]
//	type   = "crosslang.Tests.AddTest, crosslang"
//	member = "Add"
type manifest struct {
	Objects []manifestObject  `toml:"object"`
	Preload []manifestPreload `toml:"preload"`
}

type manifestObject struct {
	String *string  `toml:"string"`
	Int    *int64   `toml:"int"`
	Float  *float64 `toml:"float"`
	Bool   *bool    `toml:"bool"`
	Handle uint64   `toml:"handle"`
}

type manifestPreload struct {
	Type   string `toml:"type"`
	Member string `toml:"member"`
	Method bool   `toml:"method"`
}

func loadManifest(path string) (*manifest, error) {
	var m manifest
	md, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, errors.Load("decode manifest "+path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.Load(fmt.Sprintf("unknown manifest keys: %s", strings.Join(keys, ", ")), nil)
	}
	return &m, nil
}

func (o manifestObject) value() (any, error) {
	var (
		v   any
		set int
	)
	if o.String != nil {
		v, set = *o.String, set+1
	}
	if o.Int != nil {
		v, set = *o.Int, set+1
	}
	if o.Float != nil {
		v, set = *o.Float, set+1
	}
	if o.Bool != nil {
		v, set = *o.Bool, set+1
	}
	if set != 1 {
		return nil, errors.Load(fmt.Sprintf("object %d must set exactly one of string, int, float, bool", o.Handle), nil)
	}
	return v, nil
}

// preloaded is one resolution performed from the manifest.
type preloaded struct {
	Type   string
	Member string
	Method bool
	ID     registry.ID
}

// apply inserts the manifest objects into the agent's handle table and
// resolves every preload entry.
func (m *manifest) apply(agent *bridge.Agent, log *zap.Logger) ([]preloaded, error) {
	for _, o := range m.Objects {
		v, err := o.value()
		if err != nil {
			return nil, err
		}
		if err := agent.Handles().Insert(handle.Handle(o.Handle), v); err != nil {
			return nil, err
		}
	}

	out := make([]preloaded, 0, len(m.Preload))
	for _, p := range m.Preload {
		resolve := agent.ResolveStatic
		if p.Method {
			resolve = agent.ResolveMethod
		}
		id, err := resolve(p.Type, p.Member)
		if err != nil {
			return nil, fmt.Errorf("preload %s.%s: %w", p.Type, p.Member, err)
		}
		log.Info("preloaded",
			zap.String("type", p.Type),
			zap.String("member", p.Member),
			zap.Int64("id", int64(id)))
		out = append(out, preloaded{Type: p.Type, Member: p.Member, Method: p.Method, ID: id})
	}
	return out, nil
}
