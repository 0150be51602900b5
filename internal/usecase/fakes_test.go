package usecase

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"catalog-service/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

// fakeProductRepo is an in-memory store with the same predicate semantics as
// the gorm implementation.
type fakeProductRepo struct {
	mu          sync.Mutex
	products    []*entity.Product
	creates     int
	updates     int
	findAlls    int
	summarizes  int
	now         time.Time
	lastFilter  *entity.ProductFilter
	failNextErr error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (r *fakeProductRepo) seed(p entity.Product) *entity.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Visibility == "" {
		p.Visibility = entity.VisibilityPublic
	}
	r.now = r.now.Add(time.Second)
	p.CreatedAt, p.UpdatedAt = r.now, r.now
	stored := p
	r.products = append(r.products, &stored)
	return &p
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNextErr != nil {
		err := r.failNextErr
		r.failNextErr = nil
		return err
	}
	for _, p := range r.products {
		if p.SKU == product.SKU {
			return &pgconn.PgError{Code: "23505", ConstraintName: "idx_products_sku"}
		}
	}
	r.creates++
	r.now = r.now.Add(time.Second)
	product.CreatedAt, product.UpdatedAt = r.now, r.now
	stored := *product
	r.products = append(r.products, &stored)
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ID == id {
			found := *p
			return &found, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) matching(filter *entity.ProductFilter) []entity.Product {
	var out []entity.Product
	for _, p := range r.products {
		if filter != nil {
			if filter.Category != "" && p.Category != filter.Category {
				continue
			}
			if filter.Visibility != "" && p.Visibility != filter.Visibility {
				continue
			}
			if filter.Search != "" {
				needle := strings.ToLower(filter.Search)
				desc := ""
				if p.Description != nil {
					desc = *p.Description
				}
				if !strings.Contains(strings.ToLower(p.Name), needle) && !strings.Contains(strings.ToLower(desc), needle) {
					continue
				}
			}
			if filter.MinPrice != nil && p.Price.LessThan(*filter.MinPrice) {
				continue
			}
			if filter.MaxPrice != nil && p.Price.GreaterThan(*filter.MaxPrice) {
				continue
			}
		}
		out = append(out, *p)
	}
	return out
}

func (r *fakeProductRepo) FindAll(_ context.Context, filter *entity.ProductFilter, s entity.ProductSort, limit, offset int) ([]entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = filter
	r.findAlls++

	out := r.matching(filter)
	less := func(a, b entity.Product) bool {
		switch s.Field {
		case entity.ProductSortName:
			return a.Name < b.Name
		case entity.ProductSortPrice:
			return a.Price.LessThan(b.Price)
		case entity.ProductSortQuantity:
			return a.Quantity < b.Quantity
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if s.Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})

	if offset < 0 || offset >= len(out) {
		return []entity.Product{}, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (r *fakeProductRepo) Count(_ context.Context, filter *entity.ProductFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(filter))), nil
}

func (r *fakeProductRepo) Update(_ context.Context, id uuid.UUID, patch *entity.ProductPatch) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.ID == id {
			r.updates++
			patch.ApplyTo(p)
			r.now = r.now.Add(time.Second)
			p.UpdatedAt = r.now
			updated := *p
			return &updated, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Summarize(_ context.Context) ([]entity.ProductSummaryRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summarizes++

	type key struct {
		category   string
		visibility entity.Visibility
	}
	groups := map[key]*entity.ProductSummaryRow{}
	for _, p := range r.products {
		k := key{p.Category, p.Visibility}
		row, ok := groups[k]
		if !ok {
			row = &entity.ProductSummaryRow{Category: p.Category, Visibility: p.Visibility}
			groups[k] = row
		}
		qty := decimal.NewFromInt(int64(p.Quantity))
		row.ProductCount++
		row.InventoryValue = row.InventoryValue.Add(p.Price.Mul(qty))
		if p.DiscountPrice.Valid {
			row.DiscountedValue = row.DiscountedValue.Add(p.DiscountPrice.Decimal.Mul(qty))
		}
		if p.Quantity == 0 {
			row.OutOfStock++
		}
	}

	rows := make([]entity.ProductSummaryRow, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, *row)
	}
	return rows, nil
}

type auditCall struct {
	action   string
	userID   *uuid.UUID
	entityID string
	oldValue interface{}
	newValue interface{}
}

type fakeAuditService struct {
	mu    sync.Mutex
	calls []auditCall
}

func (f *fakeAuditService) add(c auditCall) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()
}

func (f *fakeAuditService) LogCreate(_ context.Context, userID *uuid.UUID, action, _ string, entityID string, newValue interface{}) {
	f.add(auditCall{action: action, userID: userID, entityID: entityID, newValue: newValue})
}

func (f *fakeAuditService) LogUpdate(_ context.Context, userID *uuid.UUID, action, _ string, entityID string, oldValue, newValue interface{}) {
	f.add(auditCall{action: action, userID: userID, entityID: entityID, oldValue: oldValue, newValue: newValue})
}

func (f *fakeAuditService) LogDelete(_ context.Context, userID *uuid.UUID, action, _ string, entityID string, oldValue interface{}) {
	f.add(auditCall{action: action, userID: userID, entityID: entityID, oldValue: oldValue})
}

func (f *fakeAuditService) LogEvent(_ context.Context, userID *uuid.UUID, action string, _ entity.JSON) {
	f.add(auditCall{action: action, userID: userID})
}

func (f *fakeAuditService) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.action
	}
	return out
}
