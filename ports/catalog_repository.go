package ports

import (
	"context"

	"gocmmi/domain/assessment"
)

// CatalogRepository supplies the immutable question catalog and rule set.
// Implementations may cache after the first load; the returned slices are
// treated as read-only by all callers.
type CatalogRepository interface {
	// Questions returns the full question catalog in file order
	Questions(ctx context.Context) ([]assessment.Question, error)

	// Rules returns the recommendation rule set in file order
	Rules(ctx context.Context) ([]assessment.Rule, error)

	// KPAs returns the key process area descriptors
	KPAs(ctx context.Context) ([]assessment.KPAInfo, error)
}
