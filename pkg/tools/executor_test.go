package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestExecutor(policy *Policy, tools ...*Tool) *Executor {
	reg := NewRegistry()
	for _, tool := range tools {
		reg.Register(tool)
	}
	return NewExecutor(reg, policy, zerolog.Nop())
}

func TestExecuteUnknownTool(t *testing.T) {
	exec := newTestExecutor(AllowAllPolicy())
	_, err := exec.Execute(context.Background(), "nope", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if err.Error() != "unknown tool: nope" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExecuteDeniedTool(t *testing.T) {
	policy := AllowAllPolicy().Deny("create_lead")
	exec := newTestExecutor(policy, stubTool("create_lead", GroupWrite))
	_, err := exec.Execute(context.Background(), "create_lead", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "not allowed by policy") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExecuteRunsTool(t *testing.T) {
	var gotInput map[string]any
	tool := stubTool("get_lead", GroupRead)
	tool.Execute = func(ctx context.Context, input map[string]any) (*Result, error) {
		gotInput = input
		return TextResult("lead"), nil
	}
	exec := newTestExecutor(AllowAllPolicy(), tool)

	result, err := exec.Execute(context.Background(), "get_lead", map[string]any{"lead_id": float64(5)})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if result.Text() != "lead" {
		t.Fatalf("unexpected result: %q", result.Text())
	}
	if gotInput["lead_id"] != float64(5) {
		t.Fatalf("input not passed through: %v", gotInput)
	}
}

func TestExecutePropagatesToolError(t *testing.T) {
	tool := stubTool("get_lead", GroupRead)
	tool.Execute = func(context.Context, map[string]any) (*Result, error) {
		return nil, errors.New("boom")
	}
	exec := newTestExecutor(AllowAllPolicy(), tool)
	if _, err := exec.Execute(context.Background(), "get_lead", nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestPolicyDenyTakesPrecedence(t *testing.T) {
	policy := AllowAllPolicy().Allow("create_lead").Deny("create_lead")
	if policy.IsAllowed("create_lead") {
		t.Fatal("deny should win over allow")
	}
}

func TestPolicyAllowOverridesDenyAll(t *testing.T) {
	policy := &Policy{
		Allowed: make(map[string]bool),
		Denied:  make(map[string]bool),
		DenyAll: true,
	}
	policy.Allow("get_lead")
	if !policy.IsAllowed("get_lead") {
		t.Fatal("explicit allow should override deny-all")
	}
	if policy.IsAllowed("create_lead") {
		t.Fatal("deny-all should block unlisted tools")
	}
}

func TestReadOnlyPolicyBlocksWrites(t *testing.T) {
	reg := newTestToolset(&fakeCRM{}).NewRegistry()
	policy := ReadOnlyPolicy(reg)

	for _, name := range []string{"create_lead", "update_lead"} {
		if policy.IsAllowed(name) {
			t.Fatalf("read-only policy should deny %s", name)
		}
	}
	for _, name := range []string{
		"get_lead_field_instructions", "get_current_user", "lookup_users",
		"lookup_products", "lookup_pipelines", "get_pipeline_stages",
		"get_pipeline_details", "parse_datetime_to_utc_iso_tool",
		"get_lead", "search_leads", "search_leads_by_term", "search_idle_leads",
	} {
		if !policy.IsAllowed(name) {
			t.Fatalf("read-only policy should allow %s", name)
		}
	}
}

func TestAllowedToolsRespectsPolicy(t *testing.T) {
	reg := newTestToolset(&fakeCRM{}).NewRegistry()
	exec := NewExecutor(reg, ReadOnlyPolicy(reg), zerolog.Nop())

	allowed := exec.AllowedTools()
	if len(allowed) != 12 {
		t.Fatalf("expected 12 allowed tools, got %d", len(allowed))
	}
	for _, tool := range allowed {
		if tool.Group == GroupWrite {
			t.Fatalf("write tool %s leaked through read-only policy", tool.Name)
		}
	}
}

func TestCanExecute(t *testing.T) {
	reg := newTestToolset(&fakeCRM{}).NewRegistry()
	exec := NewExecutor(reg, ReadOnlyPolicy(reg), zerolog.Nop())

	if exec.CanExecute("create_lead") {
		t.Fatal("expected create_lead to be blocked")
	}
	if !exec.CanExecute("search_leads") {
		t.Fatal("expected search_leads to be allowed")
	}
	if exec.CanExecute("unknown_tool") {
		t.Fatal("expected unknown tool to be blocked")
	}
}
