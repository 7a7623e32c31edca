// api/service/product_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fixhub-app/fixhub/api/cache"
	"github.com/fixhub-app/fixhub/api/dao"
	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	"github.com/fixhub-app/fixhub/api/model"
	"github.com/fixhub-app/fixhub/api/realtime"
	"github.com/fixhub-app/fixhub/api/util"
)

const productResource = "products"

// IProductService defines the interface for catalog product operations
type IProductService interface {
	CreateProduct(ctx context.Context, product model.Product) (*model.Product, error)
	UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	GetProduct(ctx context.Context, productID string) (*model.Product, error)
	ListProducts(ctx context.Context, category string, activeOnly bool, page, limit int) ([]*model.Product, error)
}

type ProductService struct {
	productDAO     *dao.ProductDAO
	validationUtil *util.ValidationUtil
	fetchCache     *cache.FetchCache
	feed           *realtime.BusFeed
}

var _ IProductService = &ProductService{}

func NewProductService(
	productDAO *dao.ProductDAO,
	validationUtil *util.ValidationUtil,
	fetchCache *cache.FetchCache,
	feed *realtime.BusFeed,
) *ProductService {
	return &ProductService{
		productDAO:     productDAO,
		validationUtil: validationUtil,
		fetchCache:     fetchCache,
		feed:           feed,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	if err := s.validationUtil.ValidateProduct(product); err != nil {
		return nil, fmt.Errorf("%w: %s", fixhub_errors.ErrInvalidProductData, err)
	}

	created, err := s.productDAO.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.feed.Publish(ctx, realtime.ChangeEvent{
		Table: productResource,
		Event: realtime.EventInsert,
		ID:    created.ID,
	})
	return created, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, product model.Product) (*model.Product, error) {
	if err := s.validationUtil.ValidateProduct(product); err != nil {
		return nil, fmt.Errorf("%w: %s", fixhub_errors.ErrInvalidProductData, err)
	}

	updated, err := s.productDAO.Update(ctx, product)
	if err != nil {
		return nil, err
	}

	s.feed.Publish(ctx, realtime.ChangeEvent{
		Table: productResource,
		Event: realtime.EventUpdate,
		ID:    updated.ID,
	})
	return updated, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.productDAO.Delete(ctx, productID); err != nil {
		return err
	}

	s.feed.Publish(ctx, realtime.ChangeEvent{
		Table: productResource,
		Event: realtime.EventDelete,
		ID:    productID,
	})
	return nil
}

func (s *ProductService) GetProduct(ctx context.Context, productID string) (*model.Product, error) {
	payload, err := s.fetchCache.Fetch(ctx, cache.DetailKey(productResource, productID), func(ctx context.Context) ([]byte, error) {
		product, err := s.productDAO.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(product)
	})
	if err != nil {
		return nil, err
	}

	var product model.Product
	if err := json.Unmarshal(payload, &product); err != nil {
		return nil, fixhub_errors.ErrInternalServer
	}
	return &product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, category string, activeOnly bool, page, limit int) ([]*model.Product, error) {
	key := cache.ListKey(productResource, page, limit)
	if category != "" {
		key += "&category=" + category
	}
	key += "&active=" + strconv.FormatBool(activeOnly)

	payload, err := s.fetchCache.Fetch(ctx, key, func(ctx context.Context) ([]byte, error) {
		products, err := s.productDAO.List(ctx, category, activeOnly, limit, (page-1)*limit)
		if err != nil {
			return nil, err
		}
		return json.Marshal(products)
	})
	if err != nil {
		return nil, err
	}

	var products []*model.Product
	if err := json.Unmarshal(payload, &products); err != nil {
		return nil, fixhub_errors.ErrInternalServer
	}
	return products, nil
}
