package indexing

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/catalog-indexer/internal/domain"
	"github.com/utafrali/catalog-indexer/internal/lookup/memory"
)

func TestResolve_PathBlockedByUnavailableAncestor(t *testing.T) {
	catalogA := domain.Catalog{Code: "CAT_A"}
	catalogB := domain.Catalog{Code: "CAT_B"}

	rootA := domain.Category{UID: 10, Code: "root-a", Catalog: catalogA, Available: true}
	leafA := domain.Category{UID: 11, Code: "leaf-a", ParentUID: 10, Catalog: catalogA, Available: true}
	rootB := domain.Category{UID: 20, Code: "root-b", Catalog: catalogB, Available: false}
	leafB := domain.Category{UID: 21, Code: "leaf-b", ParentUID: 20, Catalog: catalogB, Available: true}

	categories := memory.NewCategoryLookup()
	categories.Add(rootA, leafA, rootB, leafB)

	resolver := NewAvailabilityResolver(categories)
	availability, parentCodes, err := resolver.Resolve(context.Background(), []domain.Category{leafA, leafB})
	require.NoError(t, err)

	assert.Equal(t, CatalogAvailability{"CAT_A": true, "CAT_B": false}, availability)

	// Ancestors of blocked paths still show up in the parent code list.
	assert.Equal(t, []string{"root-a", "root-b"}, parentCodes)
}

func TestResolve_AnyAvailablePathWins(t *testing.T) {
	catalog := domain.Catalog{Code: "CAT_A"}

	blockedRoot := domain.Category{UID: 1, Code: "blocked-root", Catalog: catalog, Available: false}
	blockedLeaf := domain.Category{UID: 2, Code: "blocked-leaf", ParentUID: 1, Catalog: catalog, Available: true}
	openLeaf := domain.Category{UID: 3, Code: "open-leaf", Catalog: catalog, Available: true}

	categories := memory.NewCategoryLookup()
	categories.Add(blockedRoot, blockedLeaf, openLeaf)

	resolver := NewAvailabilityResolver(categories)
	availability, _, err := resolver.Resolve(context.Background(), []domain.Category{blockedLeaf, openLeaf})
	require.NoError(t, err)

	assert.True(t, availability["CAT_A"])
}

func TestResolve_MembershipItselfUnavailable(t *testing.T) {
	catalog := domain.Catalog{Code: "CAT_A"}
	leaf := domain.Category{UID: 1, Code: "leaf", Catalog: catalog, Available: false}

	categories := memory.NewCategoryLookup()
	categories.Add(leaf)

	resolver := NewAvailabilityResolver(categories)
	availability, parentCodes, err := resolver.Resolve(context.Background(), []domain.Category{leaf})
	require.NoError(t, err)

	assert.False(t, availability["CAT_A"])
	assert.Empty(t, parentCodes)
}

func TestResolve_CyclicParentDataTerminates(t *testing.T) {
	catalog := domain.Catalog{Code: "CAT_A"}

	// a and b point at each other; corrupt data must not loop forever.
	a := domain.Category{UID: 1, Code: "a", ParentUID: 2, Catalog: catalog, Available: true}
	b := domain.Category{UID: 2, Code: "b", ParentUID: 1, Catalog: catalog, Available: true}

	categories := memory.NewCategoryLookup()
	categories.Add(a, b)

	resolver := NewAvailabilityResolver(categories)
	availability, parentCodes, err := resolver.Resolve(context.Background(), []domain.Category{a})
	require.NoError(t, err)

	assert.True(t, availability["CAT_A"])
	assert.Equal(t, []string{"b"}, parentCodes)
}

func TestResolve_DepthBound(t *testing.T) {
	catalog := domain.Catalog{Code: "CAT_A"}
	categories := memory.NewCategoryLookup()

	const chain = maxAncestorDepth + 10
	for uid := int64(1); uid <= chain; uid++ {
		categories.Add(domain.Category{
			UID:       uid,
			Code:      fmt.Sprintf("c-%d", uid),
			ParentUID: uid + 1,
			Catalog:   catalog,
			Available: true,
		})
	}
	start := domain.Category{UID: 0, Code: "start", ParentUID: 1, Catalog: catalog, Available: true}
	categories.Add(start)

	resolver := NewAvailabilityResolver(categories)
	_, parentCodes, err := resolver.Resolve(context.Background(), []domain.Category{start})
	require.NoError(t, err)

	assert.Len(t, parentCodes, maxAncestorDepth)
}

func TestResolve_NoMemberships(t *testing.T) {
	resolver := NewAvailabilityResolver(memory.NewCategoryLookup())

	availability, parentCodes, err := resolver.Resolve(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, availability)
	assert.Empty(t, parentCodes)
}
