package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/callbridge/bridge"
	"github.com/wippyai/callbridge/builtin"
	"github.com/wippyai/callbridge/catalog"
	"github.com/wippyai/callbridge/errors"
	"github.com/wippyai/callbridge/handle"
	"github.com/wippyai/callbridge/registry"
	"github.com/wippyai/callbridge/result"
	"github.com/wippyai/callbridge/value"
)

type session struct {
	agent   *bridge.Agent
	logger  *zap.Logger
	preload []preloaded
}

type rootFlags struct {
	manifest string
	logLevel string
}

func newRootCmd() *cobra.Command {
	var (
		flags rootFlags
		s     session
	)

	root := &cobra.Command{
		Use:           "callbridge",
		Short:         "Resolve and invoke Go targets through tagged values",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return s.open(flags, cmd.OutOrStdout())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			_ = s.logger.Sync()
		},
	}
	root.PersistentFlags().StringVar(&flags.manifest, "manifest", "", "TOML manifest with objects and preloads")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newListCmd(&s),
		newWitCmd(&s),
		newCallCmd(&s),
		newMethodCmd(&s),
		newInteractiveCmd(&s),
	)
	return root
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

func (s *session) open(flags rootFlags, out io.Writer) error {
	log, err := newLogger(flags.logLevel)
	if err != nil {
		return err
	}
	s.logger = log
	bridge.SetLogger(log)

	cat, err := builtin.New(out)
	if err != nil {
		return err
	}
	s.agent = bridge.New(cat, bridge.Options{Logger: log})
	if err := builtin.Seed(s.agent.Handles()); err != nil {
		return err
	}

	if flags.manifest == "" {
		return nil
	}
	m, err := loadManifest(flags.manifest)
	if err != nil {
		return err
	}
	s.preload, err = m.apply(s.agent, log)
	return err
}

func newListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List catalog types and members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			cat := s.agent.Catalog()
			for _, name := range cat.Types() {
				fmt.Fprintln(out, name)
				for _, t := range cat.Members(name) {
					fmt.Fprintf(out, "  %-7s %-10s %-14s %s\n", t.Kind(), t.Visibility(), t.Name(), t.WITSignature())
				}
			}
			if len(s.preload) > 0 {
				fmt.Fprintln(out, "\npreloaded:")
				for _, p := range s.preload {
					fmt.Fprintf(out, "  %s.%s = %d\n", p.Type, p.Member, int64(p.ID))
				}
			}
			fmt.Fprintln(out, "\nhandles:")
			s.agent.Handles().Each(func(h handle.Handle, v any) bool {
				fmt.Fprintf(out, "  %d: %T\n", h, v)
				return true
			})
			return nil
		},
	}
}

func newWitCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "wit",
		Short: "Print the catalog as WIT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), s.agent.Catalog().WIT())
			return err
		},
	}
}

func newCallCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "call <type> <member> [kind:value ...]",
		Short: "Resolve and invoke a static member",
		Example: "  callbridge call crosslang.Tests.AddTest Add int:3 int:2\n" +
			"  callbridge call crosslang.MethodInvocationAgent ByteFunction ref:13",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			vals, err := parseArgs(args[2:])
			if err != nil {
				return err
			}
			id, err := s.agent.ResolveStatic(args[0], args[1])
			if err != nil {
				return err
			}
			v, err := s.agent.InvokeStatic(cmd.Context(), id, vals...)
			return report(cmd.OutOrStdout(), v, err)
		},
	}
}

func newMethodCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:     "method <type> <member> <receiver-handle> [kind:value ...]",
		Short:   "Resolve and invoke an instance method",
		Example: "  callbridge method crosslang.Counter Add 20 long:5",
		Args:    cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			recv, err := strconv.ParseUint(args[2], 0, 64)
			if err != nil {
				return fmt.Errorf("receiver handle %q: %w", args[2], err)
			}
			vals, err := parseArgs(args[3:])
			if err != nil {
				return err
			}
			id, err := s.agent.ResolveMethod(args[0], args[1])
			if err != nil {
				return err
			}
			v, err := s.agent.InvokeMethod(cmd.Context(), id, handle.Handle(recv), vals...)
			return report(cmd.OutOrStdout(), v, err)
		},
	}
}

// report prints the result envelope. Error envelopes also fail the command.
func report(out io.Writer, v value.Value, err error) error {
	env := result.ValueFrom(v, err)
	fmt.Fprintln(out, env)
	return err
}

func describeTarget(t *catalog.Target) string {
	var b strings.Builder
	b.WriteString(t.FullName())
	b.WriteString(" ")
	b.WriteString(t.WITSignature())
	return b.String()
}

// invokeTarget parses inputs against the parameters of t and calls it under id.
// Methods take the receiver handle as the first input.
func invokeTarget(ctx context.Context, agent *bridge.Agent, t *catalog.Target, id registry.ID, inputs []string) (string, error) {
	var (
		vals []value.Value
		recv handle.Handle
	)
	if t.Kind() == catalog.KindMethod {
		if len(inputs) == 0 {
			return "", errors.ArityMismatch(1, 0, true)
		}
		h, err := strconv.ParseUint(strings.TrimSpace(inputs[0]), 0, 64)
		if err != nil {
			return "", fmt.Errorf("receiver handle: %w", err)
		}
		recv = handle.Handle(h)
		inputs = inputs[1:]
	}
	for i, in := range inputs {
		p, ok := t.Param(i)
		if !ok {
			break
		}
		v, err := parseLiteral(p.Kind, in)
		if err != nil {
			return "", fmt.Errorf("arg%d: %w", i, err)
		}
		vals = append(vals, v)
	}

	var (
		v   value.Value
		err error
	)
	if t.Kind() == catalog.KindMethod {
		v, err = agent.InvokeMethod(ctx, id, recv, vals...)
	} else {
		v, err = agent.InvokeStatic(ctx, id, vals...)
	}
	return result.ValueFrom(v, err).String(), err
}
