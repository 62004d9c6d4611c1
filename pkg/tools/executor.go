package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Policy defines which tools are allowed or denied. Explicit deny wins over
// explicit allow; the AllowAll/DenyAll flags decide the rest.
type Policy struct {
	Allowed  map[string]bool
	Denied   map[string]bool
	AllowAll bool
	DenyAll  bool
}

// AllowAllPolicy creates a policy that allows all tools except denied ones.
func AllowAllPolicy() *Policy {
	return &Policy{
		Allowed:  make(map[string]bool),
		Denied:   make(map[string]bool),
		AllowAll: true,
	}
}

// Allow explicitly allows a tool.
func (p *Policy) Allow(name string) *Policy {
	p.Allowed[name] = true
	delete(p.Denied, name)
	return p
}

// Deny explicitly denies a tool.
func (p *Policy) Deny(name string) *Policy {
	p.Denied[name] = true
	delete(p.Allowed, name)
	return p
}

// DenyGroup denies all tools in a group.
func (p *Policy) DenyGroup(registry *Registry, group string) *Policy {
	for _, name := range registry.ToolsInGroup(group) {
		p.Deny(name)
	}
	return p
}

// IsAllowed checks if a tool is allowed by this policy.
func (p *Policy) IsAllowed(name string) bool {
	if p.Denied[name] {
		return false
	}
	if p.Allowed[name] {
		return true
	}
	if p.DenyAll {
		return false
	}
	return p.AllowAll
}

// ReadOnlyPolicy allows everything except the write group.
func ReadOnlyPolicy(registry *Registry) *Policy {
	return AllowAllPolicy().DenyGroup(registry, GroupWrite)
}

// Executor handles tool execution with policy enforcement.
type Executor struct {
	registry *Registry
	policy   *Policy
	log      zerolog.Logger
}

// NewExecutor creates an executor over the given registry and policy.
// A nil policy allows everything.
func NewExecutor(registry *Registry, policy *Policy, log zerolog.Logger) *Executor {
	if policy == nil {
		policy = AllowAllPolicy()
	}
	return &Executor{
		registry: registry,
		policy:   policy,
		log:      log,
	}
}

// Execute runs a tool if allowed by policy. Each call gets its own id for
// log correlation.
func (e *Executor) Execute(ctx context.Context, name string, input map[string]any) (*Result, error) {
	tool := e.registry.Get(name)
	if tool == nil {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	if !e.policy.IsAllowed(name) {
		return nil, fmt.Errorf("tool %s is not allowed by policy", name)
	}
	if tool.Execute == nil {
		return nil, fmt.Errorf("tool %s has no executor", name)
	}

	log := e.log.With().
		Str("call_id", uuid.NewString()).
		Str("tool", name).
		Logger()
	log.Debug().Msg("Executing tool")
	start := time.Now()
	result, err := tool.Execute(ctx, input)
	evt := log.Debug().Dur("duration", time.Since(start))
	switch {
	case err != nil:
		evt.Err(err).Msg("Tool execution failed")
	case result != nil && result.IsError():
		evt.Str("error", result.Error).Msg("Tool returned error result")
	default:
		evt.Msg("Tool execution finished")
	}
	return result, err
}

// CanExecute checks if a tool exists and is allowed.
func (e *Executor) CanExecute(name string) bool {
	if e.registry.Get(name) == nil {
		return false
	}
	return e.policy.IsAllowed(name)
}

// AllowedTools returns all tools permitted by the policy, sorted by name.
func (e *Executor) AllowedTools() []*Tool {
	var allowed []*Tool
	for _, tool := range e.registry.All() {
		if e.policy.IsAllowed(tool.Name) {
			allowed = append(allowed, tool)
		}
	}
	return allowed
}

// Registry returns the underlying registry.
func (e *Executor) Registry() *Registry {
	return e.registry
}

// Policy returns the current policy.
func (e *Executor) Policy() *Policy {
	return e.policy
}
