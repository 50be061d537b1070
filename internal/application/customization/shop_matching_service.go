package customization

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/printmarket/backend/internal/domain/catalog"
	"github.com/printmarket/backend/internal/domain/customization"
	"github.com/printmarket/backend/internal/domain/partner"
	"github.com/printmarket/backend/internal/domain/shared"
	"go.uber.org/zap"
)

const (
	shopMatchCachePrefix = "shopmatch:"
	defaultShopMatchTTL  = 5 * time.Minute
)

// ShopMatchingService proposes eligible fulfillment shops for a
// customization request. Matching is a hard filter: when no shop qualifies
// the result is empty and the caller surfaces a "no eligible shop"
// condition instead of falling back to an unrelated shop.
type ShopMatchingService struct {
	requestRepo  customization.RequestRepository
	productRepo  catalog.ProductRepository
	shopRepo     partner.ShopRepository
	designerRepo partner.DesignerRepository
	cache        shared.Cache
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// MatchingOption is a functional option for ShopMatchingService configuration
type MatchingOption func(*ShopMatchingService)

// WithMatchCacheTTL overrides how long matching results stay memoized
func WithMatchCacheTTL(ttl time.Duration) MatchingOption {
	return func(s *ShopMatchingService) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// NewShopMatchingService creates a new ShopMatchingService
func NewShopMatchingService(
	requestRepo customization.RequestRepository,
	productRepo catalog.ProductRepository,
	shopRepo partner.ShopRepository,
	designerRepo partner.DesignerRepository,
	cache shared.Cache,
	logger *zap.Logger,
	opts ...MatchingOption,
) *ShopMatchingService {
	s := &ShopMatchingService{
		requestRepo:  requestRepo,
		productRepo:  productRepo,
		shopRepo:     shopRepo,
		designerRepo: designerRepo,
		cache:        cache,
		cacheTTL:     defaultShopMatchTTL,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListEligibleShops returns the three disjoint recommendation buckets for a
// request's product:
//  1. the product-owning shop,
//  2. the designer of record's own shop,
//  3. other eligible shops whose specialties intersect the product's
//     category or tags, ordered by rating then completed orders.
//
// Results are memoized per request; shop roster changes invalidate through
// the injected cache.
func (s *ShopMatchingService) ListEligibleShops(ctx context.Context, requestID uuid.UUID) (*ShopMatchResponse, error) {
	cacheKey := shopMatchCachePrefix + requestID.String()
	if cached, hit, err := s.cache.Get(ctx, cacheKey); err == nil && hit {
		var response ShopMatchResponse
		if err := json.Unmarshal(cached, &response); err == nil {
			return &response, nil
		}
	}

	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, request.ProductID)
	if err != nil {
		return nil, err
	}

	response, err := s.match(ctx, product)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(response); err == nil {
		if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache shop matching result",
				zap.String("request_id", requestID.String()),
				zap.Error(err),
			)
		}
	}

	return response, nil
}

// InvalidateForRequest drops the memoized result for one request
func (s *ShopMatchingService) InvalidateForRequest(ctx context.Context, requestID uuid.UUID) error {
	return s.cache.Delete(ctx, shopMatchCachePrefix+requestID.String())
}

// InvalidateAll drops every memoized matching result. Called when the shop
// roster changes.
func (s *ShopMatchingService) InvalidateAll(ctx context.Context) error {
	return s.cache.InvalidatePrefix(ctx, shopMatchCachePrefix)
}

func (s *ShopMatchingService) match(ctx context.Context, product *catalog.Product) (*ShopMatchResponse, error) {
	response := &ShopMatchResponse{
		ProductOwner:  make([]ShopCandidateResponse, 0, 1),
		DesignerShops: make([]ShopCandidateResponse, 0, 1),
		Others:        make([]ShopCandidateResponse, 0),
	}
	taken := make(map[uuid.UUID]struct{})

	// Bucket 1: the product-owning shop
	if owner, err := s.shopRepo.FindByID(ctx, product.ShopID); err == nil && owner.IsEligible() {
		response.ProductOwner = append(response.ProductOwner, toShopCandidate(owner, "product owner"))
		taken[owner.ID] = struct{}{}
	}

	// Bucket 2: the designer of record's own shop
	if product.DesignerID != nil {
		designer, err := s.designerRepo.FindByID(ctx, *product.DesignerID)
		if err == nil && designer.ShopID != nil {
			if _, seen := taken[*designer.ShopID]; !seen {
				if shop, err := s.shopRepo.FindByID(ctx, *designer.ShopID); err == nil && shop.IsEligible() {
					response.DesignerShops = append(response.DesignerShops, toShopCandidate(shop, "designer's shop"))
					taken[shop.ID] = struct{}{}
				}
			}
		}
	}

	// Bucket 3: eligible shops matching the product's category or tags.
	// The repository already orders by rating desc, completed orders desc.
	eligible, err := s.shopRepo.FindEligible(ctx)
	if err != nil {
		return nil, err
	}
	terms := product.MatchTerms()
	for i := range eligible {
		shop := &eligible[i]
		if _, seen := taken[shop.ID]; seen {
			continue
		}
		if !shop.MatchesAny(terms) {
			continue
		}
		response.Others = append(response.Others, toShopCandidate(shop, "specialty match"))
	}

	return response, nil
}
