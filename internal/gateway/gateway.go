// Package gateway talks to the remote accounting service. The session only
// depends on the Gateway interface; Client is the HTTP implementation.
package gateway

import (
	"context"
	"fmt"

	"github.com/atomicstack/spiris-tui/internal/credential"
	"github.com/atomicstack/spiris-tui/internal/entity"
)

// Gateway performs list/create/update calls for every entity kind.
type Gateway interface {
	List(ctx context.Context, kind entity.Kind, pageSize, page int) ([]entity.Item, error)
	Create(ctx context.Context, kind entity.Kind, payload entity.Payload) (entity.Item, error)
	Update(ctx context.Context, kind entity.Kind, id string, payload entity.Payload) (entity.Item, error)
}

// Connector binds a gateway to a credential snapshot.
type Connector func(credential.Credential) Gateway

// Error is a non-2xx response from the service.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("service returned status %d", e.Status)
	}
	return fmt.Sprintf("service returned status %d: %s", e.Status, e.Message)
}

// Unauthorized reports whether the service rejected the credential.
func (e *Error) Unauthorized() bool {
	return e.Status == 401 || e.Status == 403
}
