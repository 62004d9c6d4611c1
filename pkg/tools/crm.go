package tools

import (
	"context"

	"github.com/kylastech/kylas-crm-mcp-server/pkg/kylas"
	"github.com/kylastech/kylas-crm-mcp-server/pkg/schema"
)

// CRMClient is the Kylas API surface the tools need. *kylas.Client satisfies
// it; tests substitute a fake.
type CRMClient interface {
	LeadFields(ctx context.Context) ([]schema.Field, error)
	CurrentUser(ctx context.Context) (map[string]any, error)
	LookupUsers(ctx context.Context, query string, page, size int) (*kylas.Page, error)
	LookupProducts(ctx context.Context, query string, page, size int) (*kylas.Page, error)
	LookupPipelines(ctx context.Context, entityType, query string, page, size int) (*kylas.Page, error)
	PipelineSummary(ctx context.Context, pipelineID int64) ([]map[string]any, error)
	PipelineByID(ctx context.Context, pipelineID int64) (map[string]any, error)
	CreateLead(ctx context.Context, payload map[string]any) (map[string]any, error)
	GetLead(ctx context.Context, leadID int64) (map[string]any, error)
	UpdateLead(ctx context.Context, leadID int64, changes map[string]any) (map[string]any, error)
	SearchLeads(ctx context.Context, rule any, page, size int, sort string) (*kylas.Page, error)
	SearchLeadsByTerm(ctx context.Context, rule any, page, size int, sort string) (*kylas.Page, error)
}
