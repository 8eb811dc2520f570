package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/utafrali/catalog-indexer/internal/domain"
	"github.com/utafrali/catalog-indexer/internal/lookup"
	"github.com/utafrali/catalog-indexer/internal/pipeline"
)

// DefaultSnapshotTTL bounds how stale the lookup snapshot may get between
// refreshes when serving single-entity event updates.
const DefaultSnapshotTTL = 5 * time.Minute

// snapshot holds one consistent view of the export datasets, indexed for the
// lookup access patterns of the assembly engine. Snapshots are immutable
// once built.
type snapshot struct {
	stores          []domain.Store
	assignments     map[string][]domain.PriceListAssignment
	categoriesByUID map[int64]domain.Category
	brandsByCode    map[string]domain.Brand
	pricesByProduct map[string]map[string]domain.Price
}

// Source implements the engine's lookup interfaces and the reindex entity
// stream on top of the catalog export API. Lookups read from a cached
// snapshot refreshed at most every ttl; Stream always starts from a fresh
// one so a full pass sees a consistent dataset.
type Source struct {
	client *Client
	ttl    time.Duration
	logger *slog.Logger

	mu        sync.RWMutex
	snap      *snapshot
	fetchedAt time.Time
}

// NewSource creates a source over the given export client. A non-positive
// ttl falls back to DefaultSnapshotTTL.
func NewSource(client *Client, ttl time.Duration, logger *slog.Logger) *Source {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &Source{client: client, ttl: ttl, logger: logger}
}

// snapshot returns the cached snapshot, refreshing it when expired.
func (s *Source) snapshot(ctx context.Context) (*snapshot, error) {
	s.mu.RLock()
	snap, fetchedAt := s.snap, s.fetchedAt
	s.mu.RUnlock()
	if snap != nil && time.Since(fetchedAt) < s.ttl {
		return snap, nil
	}
	return s.refresh(ctx)
}

// refresh fetches the lookup datasets and swaps in a new snapshot.
func (s *Source) refresh(ctx context.Context) (*snapshot, error) {
	stores, err := s.client.Stores(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh snapshot: %w", err)
	}
	assignments, err := s.client.PriceListAssignments(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh snapshot: %w", err)
	}
	categories, err := s.client.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh snapshot: %w", err)
	}
	brands, err := s.client.Brands(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh snapshot: %w", err)
	}
	prices, err := s.client.Prices(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh snapshot: %w", err)
	}

	snap := &snapshot{
		stores:          stores,
		assignments:     make(map[string][]domain.PriceListAssignment),
		categoriesByUID: make(map[int64]domain.Category, len(categories)),
		brandsByCode:    make(map[string]domain.Brand, len(brands)),
		pricesByProduct: make(map[string]map[string]domain.Price),
	}
	for _, a := range assignments {
		snap.assignments[a.CatalogCode] = append(snap.assignments[a.CatalogCode], a)
	}
	for _, c := range categories {
		snap.categoriesByUID[c.UID] = c
	}
	for _, b := range brands {
		snap.brandsByCode[b.Code] = b
	}
	for _, p := range prices {
		byList := snap.pricesByProduct[p.ProductCode]
		if byList == nil {
			byList = make(map[string]domain.Price)
			snap.pricesByProduct[p.ProductCode] = byList
		}
		byList[p.PriceListGUID] = domain.Price{PriceListGUID: p.PriceListGUID, Amount: p.Amount}
	}

	s.mu.Lock()
	s.snap = snap
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "catalog snapshot refreshed",
		slog.Int("stores", len(stores)),
		slog.Int("categories", len(categories)),
		slog.Int("brands", len(brands)),
		slog.Int("price_rows", len(prices)),
	)
	return snap, nil
}

// FindByUID returns the category with the given UID, or nil.
func (s *Source) FindByUID(ctx context.Context, uid int64) (*domain.Category, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if c, ok := snap.categoriesByUID[uid]; ok {
		return &c, nil
	}
	return nil, nil
}

// FindParent returns the parent of the given category, or nil at a root.
func (s *Source) FindParent(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil || category.IsRoot() {
		return nil, nil
	}
	return s.FindByUID(ctx, category.ParentUID)
}

// ListCompleteStores returns every enabled store from the snapshot.
func (s *Source) ListCompleteStores(ctx context.Context) ([]domain.Store, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Store, 0, len(snap.stores))
	for _, st := range snap.stores {
		if st.Enabled {
			out = append(out, st)
		}
	}
	return out, nil
}

// ListStoresWithCatalogs returns the stores selling from the given catalogs.
func (s *Source) ListStoresWithCatalogs(ctx context.Context, catalogCodes []string) ([]domain.Store, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]struct{}, len(catalogCodes))
	for _, code := range catalogCodes {
		wanted[code] = struct{}{}
	}
	var out []domain.Store
	for _, st := range snap.stores {
		if _, ok := wanted[st.CatalogCode]; ok {
			out = append(out, st)
		}
	}
	return out, nil
}

// ListByCatalog returns the price list assignments for the given catalog.
func (s *Source) ListByCatalog(ctx context.Context, catalogCode string, _ bool) ([]domain.PriceListAssignment, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return append([]domain.PriceListAssignment(nil), snap.assignments[catalogCode]...), nil
}

// FindByCode returns the brand with the given code, or nil.
func (s *Source) FindByCode(ctx context.Context, code string) (*domain.Brand, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if b, ok := snap.brandsByCode[code]; ok {
		return &b, nil
	}
	return nil, nil
}

// priceDataSource serves one product's price rows out of a snapshot.
type priceDataSource struct {
	byList map[string]domain.Price
}

// LowestPrice returns the product's price under the assignment's list, or nil.
func (d *priceDataSource) LowestPrice(_ context.Context, _ string, assignment domain.PriceListAssignment) (*domain.Price, error) {
	if p, ok := d.byList[assignment.PriceListGUID]; ok {
		return &p, nil
	}
	return nil, nil
}

// ForEntity builds the batch price data source for one document build.
func (s *Source) ForEntity(ctx context.Context, productCode string, _ []domain.Store) (lookup.PriceDataSource, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &priceDataSource{byList: snap.pricesByProduct[productCode]}, nil
}

// ProductPrice reads the price through the batch data source.
func (s *Source) ProductPrice(ctx context.Context, productCode string, assignment domain.PriceListAssignment, _ domain.Store, source lookup.PriceDataSource) (*domain.Price, error) {
	return source.LowestPrice(ctx, productCode, assignment)
}

// Stream refreshes the snapshot and sends every indexable entity for a full
// reindex pass. The caller owns closing the channel.
func (s *Source) Stream(ctx context.Context, out chan<- pipeline.Entity) error {
	if _, err := s.refresh(ctx); err != nil {
		return err
	}

	products, err := s.client.Products(ctx)
	if err != nil {
		return fmt.Errorf("stream products: %w", err)
	}
	for i := range products {
		if !send(ctx, out, pipeline.Entity{Product: &products[i]}) {
			return ctx.Err()
		}
	}

	categories, err := s.client.Categories(ctx)
	if err != nil {
		return fmt.Errorf("stream categories: %w", err)
	}
	for i := range categories {
		if !send(ctx, out, pipeline.Entity{Category: &categories[i]}) {
			return ctx.Err()
		}
	}

	rules, err := s.client.Rules(ctx)
	if err != nil {
		return fmt.Errorf("stream rules: %w", err)
	}
	for i := range rules {
		if !send(ctx, out, pipeline.Entity{Rule: &rules[i]}) {
			return ctx.Err()
		}
	}

	staff, err := s.client.StaffUsers(ctx)
	if err != nil {
		return fmt.Errorf("stream staff users: %w", err)
	}
	for i := range staff {
		if !send(ctx, out, pipeline.Entity{StaffUser: &staff[i]}) {
			return ctx.Err()
		}
	}

	customers, err := s.client.Customers(ctx)
	if err != nil {
		return fmt.Errorf("stream customers: %w", err)
	}
	for i := range customers {
		if !send(ctx, out, pipeline.Entity{Customer: &customers[i]}) {
			return ctx.Err()
		}
	}

	levels, err := s.client.ShippingServiceLevels(ctx)
	if err != nil {
		return fmt.Errorf("stream shipping service levels: %w", err)
	}
	for i := range levels {
		if !send(ctx, out, pipeline.Entity{ShippingServiceLevel: &levels[i]}) {
			return ctx.Err()
		}
	}

	return nil
}

func send(ctx context.Context, out chan<- pipeline.Entity, entity pipeline.Entity) bool {
	select {
	case out <- entity:
		return true
	case <-ctx.Done():
		return false
	}
}
