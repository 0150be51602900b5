package usecase

import (
	"context"
	"errors"
	"math"

	"catalog-service/internal/converter"
	"catalog-service/internal/delivery/dto"
	"catalog-service/internal/domain/entity"
	"catalog-service/internal/domain/repository"
	"catalog-service/internal/service"
	"catalog-service/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

const auditEntityProduct = "product"

// StatisticsCache holds the most recent statistics snapshot for a freshness
// window. Get reports a miss once the window has elapsed or after Invalidate.
type StatisticsCache interface {
	Get(ctx context.Context) (*entity.ProductStatistics, bool)
	Set(ctx context.Context, stats *entity.ProductStatistics)
	Invalidate(ctx context.Context)
}

type ProductUsecase interface {
	Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetAll(ctx context.Context, query *dto.ListProductsQuery, role string) (*dto.ProductListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID, role string) (*dto.ProductResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.DeletedProductResponse, error)
	GetStatistics(ctx context.Context) (*entity.ProductStatistics, error)
}

type productUsecase struct {
	log          *logrus.Logger
	productRepo  repository.ProductRepository
	auditService service.AuditService
	statsCache   StatisticsCache
	clock        clock.Clock
}

func NewProductUsecase(
	log *logrus.Logger,
	productRepo repository.ProductRepository,
	auditService service.AuditService,
	statsCache StatisticsCache,
	clk clock.Clock,
) ProductUsecase {
	return &productUsecase{
		log:          log,
		productRepo:  productRepo,
		auditService: auditService,
		statsCache:   statsCache,
		clock:        clk,
	}
}

func (u *productUsecase) Create(ctx context.Context, actorID uuid.UUID, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	req.Sanitize()

	product := &entity.Product{
		ID:          uuid.New(),
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Visibility:  entity.VisibilityPublic,
	}
	if req.Type != "" {
		product.Visibility = entity.Visibility(req.Type)
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.DiscountPrice != nil {
		if req.DiscountPrice.GreaterThanOrEqual(product.Price) {
			return nil, discountNotBelow("the original price")
		}
		product.DiscountPrice = decimal.NewNullDecimal(*req.DiscountPrice)
	}

	if err := u.productRepo.Create(ctx, product); err != nil {
		if isDuplicateKeyError(err, "sku") {
			return nil, &DuplicateKeyError{Field: "sku", Value: req.SKU}
		}
		u.log.Warnf("Failed to create product: %+v", err)
		return nil, err
	}

	u.statsCache.Invalidate(ctx)

	created := converter.ProductToResponse(product)
	u.auditService.LogCreate(ctx, &actorID, entity.AuditActionProductCreate, auditEntityProduct, product.ID.String(), created)

	return created, nil
}

func (u *productUsecase) GetAll(ctx context.Context, query *dto.ListProductsQuery, role string) (*dto.ProductListResponse, error) {
	page, limit := query.Page, query.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	filter := productFilterFor(query, role)
	sort := entity.ProductSort{
		Field: entity.ProductSortField(query.Sort),
		Desc:  query.Order == "desc",
	}
	if !sort.Field.IsValid() {
		sort.Field = entity.ProductSortNone
	}

	var (
		products []entity.Product
		total    int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		total, err = u.productRepo.Count(gctx, filter)
		return err
	})
	// A page whose offset does not fit in an int lies past every row.
	if page-1 <= math.MaxInt/limit {
		offset := (page - 1) * limit
		g.Go(func() error {
			var err error
			products, err = u.productRepo.FindAll(gctx, filter, sort, limit, offset)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to list products: %+v", err)
		return nil, err
	}

	return &dto.ProductListResponse{
		Products:   converter.ProductsToResponses(products),
		Page:       page,
		Limit:      limit,
		TotalItems: total,
	}, nil
}

// productFilterFor builds the store filter. Callers without the admin role
// only ever see public products, whatever type they asked for.
func productFilterFor(query *dto.ListProductsQuery, role string) *entity.ProductFilter {
	filter := &entity.ProductFilter{
		Category: query.Category,
		Search:   query.Search,
		MinPrice: query.MinPrice,
		MaxPrice: query.MaxPrice,
	}
	if visibility := entity.Visibility(query.Type); visibility.IsValid() {
		filter.Visibility = visibility
	}
	if role != entity.RoleAdmin {
		filter.Visibility = entity.VisibilityPublic
	}
	return filter
}

func (u *productUsecase) GetByID(ctx context.Context, id uuid.UUID, role string) (*dto.ProductResponse, error) {
	product, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find product by ID: %+v", err)
		return nil, err
	}
	if product == nil || !product.IsVisibleTo(role) {
		return nil, ErrProductNotFound
	}

	return converter.ProductToResponse(product), nil
}

func (u *productUsecase) Update(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req *dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	req.Sanitize()
	patch := converter.UpdateRequestToPatch(req)
	if patch.IsEmpty() {
		return nil, &ValidationError{Field: "body", Message: "at least one field must be provided"}
	}

	existing, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find product by ID: %+v", err)
		return nil, err
	}
	if existing == nil {
		return nil, ErrProductNotFound
	}

	if err := checkDiscount(existing, patch); err != nil {
		return nil, err
	}

	updated, err := u.productRepo.Update(ctx, id, patch)
	if err != nil {
		u.log.Warnf("Failed to update product: %+v", err)
		return nil, err
	}
	if updated == nil {
		return nil, ErrProductNotFound
	}

	u.statsCache.Invalidate(ctx)

	before := converter.ProductToResponse(existing)
	after := converter.ProductToResponse(updated)
	u.auditService.LogUpdate(ctx, &actorID, entity.AuditActionProductUpdate, auditEntityProduct, id.String(), before, after)

	return after, nil
}

// checkDiscount keeps discountPrice below the price the product will have
// once the patch is applied.
func checkDiscount(existing *entity.Product, patch *entity.ProductPatch) error {
	if !patch.DiscountPriceSet && patch.Price == nil {
		return nil
	}

	next := *existing
	patch.ApplyTo(&next)
	if !next.DiscountPrice.Valid || next.DiscountPrice.Decimal.LessThan(next.Price) {
		return nil
	}
	if patch.DiscountPriceSet {
		return discountNotBelow("the original price")
	}
	return discountNotBelow("the new price")
}

func discountNotBelow(what string) *ValidationError {
	return &ValidationError{Field: "discountPrice", Message: "discountPrice must be less than " + what}
}

func (u *productUsecase) Delete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*dto.DeletedProductResponse, error) {
	deleted, err := u.productRepo.Delete(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to delete product: %+v", err)
		return nil, err
	}
	if deleted == nil {
		return nil, ErrProductNotFound
	}

	u.statsCache.Invalidate(ctx)
	u.auditService.LogDelete(ctx, &actorID, entity.AuditActionProductDelete, auditEntityProduct, id.String(), converter.ProductToResponse(deleted))

	return &dto.DeletedProductResponse{ID: deleted.ID}, nil
}

func (u *productUsecase) GetStatistics(ctx context.Context) (*entity.ProductStatistics, error) {
	if stats, ok := u.statsCache.Get(ctx); ok {
		return stats, nil
	}

	rows, err := u.productRepo.Summarize(ctx)
	if err != nil {
		u.log.Warnf("Failed to summarize products: %+v", err)
		return nil, err
	}

	stats := entity.NewProductStatistics(rows, u.clock.Now())
	u.statsCache.Set(ctx, stats)

	return stats, nil
}
