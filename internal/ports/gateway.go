package ports

import (
	"context"

	"github.com/bnema/halo-bridge/internal/domain"
)

// Scope selects the class context headers sent with a request.
type Scope struct {
	ClassSlug     string
	CourseClassID string
}

type GraphQLRequest struct {
	Operation string
	Query     string
	Variables map[string]any
	Scope     Scope
}

type RESTRequest struct {
	Operation string
	Path      string
	Body      any
	Scope     Scope
}

// Gateway is the authenticated request capability shared by the session and submission flows.
type Gateway interface {
	// GraphQL decodes the response "data" object into out.
	GraphQL(ctx context.Context, req GraphQLRequest, out any) error
	REST(ctx context.Context, req RESTRequest, out any) error
}

// CredentialSource hands out the credentials for the next gateway request.
type CredentialSource interface {
	Credentials(ctx context.Context) (domain.CredentialSet, error)
}
