package indexing

import (
	"context"
	"fmt"
	"sort"

	"github.com/utafrali/catalog-indexer/internal/domain"
	"github.com/utafrali/catalog-indexer/internal/lookup"
)

// maxAncestorDepth bounds the ancestor walk. Category trees are shallow in
// practice; hitting the bound indicates corrupt data rather than a deep tree.
const maxAncestorDepth = 64

// CatalogAvailability maps catalog code to whether the entity is available
// in that catalog. A catalog is present only if the entity has at least one
// category membership in it.
type CatalogAvailability map[string]bool

// Codes returns the catalog codes present in the map, sorted.
func (a CatalogAvailability) Codes() []string {
	codes := make([]string, 0, len(a))
	for code := range a {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// AvailabilityResolver computes per-catalog availability by walking category
// ancestor chains.
type AvailabilityResolver struct {
	categories lookup.CategoryLookup
}

// NewAvailabilityResolver creates a resolver over the given category lookup.
func NewAvailabilityResolver(categories lookup.CategoryLookup) *AvailabilityResolver {
	return &AvailabilityResolver{categories: categories}
}

// Resolve walks every category membership up to its root. One path is
// available only if the category and all of its ancestors are available
// (AND along the path); a catalog is available if any of its paths is
// (OR across paths). The second return value accumulates the code of every
// ancestor encountered, available or not, so that blocked branches still
// show up in browse-path search. The walk keeps a visited set and a depth
// bound: cyclic parent data stops the walk instead of looping forever.
func (r *AvailabilityResolver) Resolve(ctx context.Context, memberships []domain.Category) (CatalogAvailability, []string, error) {
	availability := make(CatalogAvailability, len(memberships))
	var parentCodes []string

	for i := range memberships {
		category := memberships[i]
		pathAvailable := category.Available

		visited := map[int64]struct{}{category.UID: {}}
		current := &category
		for depth := 0; depth < maxAncestorDepth; depth++ {
			parent, err := r.categories.FindParent(ctx, current)
			if err != nil {
				return nil, nil, fmt.Errorf("resolve ancestors of category %q: %w", category.Code, err)
			}
			if parent == nil {
				break
			}
			if _, seen := visited[parent.UID]; seen {
				break
			}
			visited[parent.UID] = struct{}{}

			parentCodes = append(parentCodes, parent.Code)
			pathAvailable = pathAvailable && parent.Available
			current = parent
		}

		code := category.Catalog.Code
		availability[code] = availability[code] || pathAvailable
	}

	return availability, parentCodes, nil
}
