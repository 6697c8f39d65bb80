package ports

import (
	"context"

	"cleanml/domain/result"
)

// ResultSource loads the flat experiment result store. The store is an
// external collaborator; only the read contract matters here.
type ResultSource interface {
	Load(ctx context.Context) (result.Store, error)
}
