package core

import (
	"context"
	"fmt"
	"strings"
)

// HandlerFunc handles one subcommand. args carries the full token slice with
// the selector at index 0; tokens beyond it are passed through unmodified.
type HandlerFunc func(ctx context.Context, inv *Invocation, args []string) error

// SubRouter dispatches the first token of a raw argument string to a named
// subcommand handler. Tables are built at construction time, so an unknown
// selector at runtime is user input, never a missing wire.
type SubRouter struct {
	subs map[string]HandlerFunc
}

func NewSubRouter() *SubRouter {
	return &SubRouter{subs: make(map[string]HandlerFunc)}
}

// Handle registers a subcommand handler. Duplicate or empty names are a
// programming error caught at startup.
func (r *SubRouter) Handle(name string, fn HandlerFunc) {
	name = strings.ToLower(name)
	if name == "" {
		panic("core: subcommand with empty name")
	}
	if _, exists := r.subs[name]; exists {
		panic(fmt.Sprintf("core: duplicate subcommand %q", name))
	}
	r.subs[name] = fn
}

// Dispatch splits raw on spaces and routes on the lowercased first token.
// Zero tokens emit the "no parameters" notice; an unknown selector emits the
// "not a command" notice. No handler runs in either case.
func (r *SubRouter) Dispatch(ctx context.Context, inv *Invocation, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inv.Reply.SendText(ctx, Response(ResponseNoParams))
	}

	args := strings.Split(raw, " ")
	fn, ok := r.subs[strings.ToLower(args[0])]
	if !ok {
		return inv.Reply.SendText(ctx, Response(ResponseNotACommand))
	}
	return fn(ctx, inv, args)
}
