// api/service/secondhand_service.go
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

const secondHandResource = "secondhand"

// ISecondHandService defines the interface for second-hand device operations
type ISecondHandService interface {
	CreateSecondHand(ctx context.Context, product model.SecondHandProduct) (*model.SecondHandProduct, error)
	UpdateSecondHand(ctx context.Context, product model.SecondHandProduct) (*model.SecondHandProduct, error)
	MarkSold(ctx context.Context, productID string) (*model.SecondHandProduct, error)
	DeleteSecondHand(ctx context.Context, productID string) error
	GetSecondHand(ctx context.Context, productID string) (*model.SecondHandProduct, error)
	ListSecondHand(ctx context.Context, includeSold bool, page, limit int) ([]*model.SecondHandProduct, error)
}

type SecondHandService struct {
	secondHandDAO  *dao.SecondHandDAO
	validationUtil *util.ValidationUtil
	fetchCache     *cache.FetchCache
	feed           *realtime.BusFeed
}

var _ ISecondHandService = &SecondHandService{}

func NewSecondHandService(
	secondHandDAO *dao.SecondHandDAO,
	validationUtil *util.ValidationUtil,
	fetchCache *cache.FetchCache,
	feed *realtime.BusFeed,
) *SecondHandService {
	return &SecondHandService{
		secondHandDAO:  secondHandDAO,
		validationUtil: validationUtil,
		fetchCache:     fetchCache,
		feed:           feed,
	}
}

func (s *SecondHandService) CreateSecondHand(ctx context.Context, product model.SecondHandProduct) (*model.SecondHandProduct, error) {
	if err := s.validationUtil.ValidateSecondHandProduct(product); err != nil {
		return nil, fmt.Errorf("%w: %s", fixhub_errors.ErrInvalidProductData, err)
	}

	created, err := s.secondHandDAO.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.feed.Publish(ctx, realtime.ChangeEvent{
		Table: secondHandResource,
		Event: realtime.EventInsert,
		ID:    created.ID,
	})
	return created, nil
}

func (s *SecondHandService) UpdateSecondHand(ctx context.Context, product model.SecondHandProduct) (*model.SecondHandProduct, error) {
	if err := s.validationUtil.ValidateSecondHandProduct(product); err != nil {
		return nil, fmt.Errorf("%w: %s", fixhub_errors.ErrInvalidProductData, err)
	}

	updated, err := s.secondHandDAO.Update(ctx, product)
	if err != nil {
		return nil, err
	}

	s.feed.Publish(ctx, realtime.ChangeEvent{
		Table: secondHandResource,
		Event: realtime.EventUpdate,
		ID:    updated.ID,
	})
	return updated, nil
}

func (s *SecondHandService) MarkSold(ctx context.Context, productID string) (*model.SecondHandProduct, error) {
	sold, err := s.secondHandDAO.MarkSold(ctx, productID)
	if err != nil {
		return nil, err
	}

	s.feed.Publish(ctx, realtime.ChangeEvent{
		Table: secondHandResource,
		Event: realtime.EventUpdate,
		ID:    sold.ID,
	})
	return sold, nil
}

func (s *SecondHandService) DeleteSecondHand(ctx context.Context, productID string) error {
	if err := s.secondHandDAO.Delete(ctx, productID); err != nil {
		return err
	}

	s.feed.Publish(ctx, realtime.ChangeEvent{
		Table: secondHandResource,
		Event: realtime.EventDelete,
		ID:    productID,
	})
	return nil
}

func (s *SecondHandService) GetSecondHand(ctx context.Context, productID string) (*model.SecondHandProduct, error) {
	payload, err := s.fetchCache.Fetch(ctx, cache.DetailKey(secondHandResource, productID), func(ctx context.Context) ([]byte, error) {
		product, err := s.secondHandDAO.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(product)
	})
	if err != nil {
		return nil, err
	}

	var product model.SecondHandProduct
	if err := json.Unmarshal(payload, &product); err != nil {
		return nil, fixhub_errors.ErrInternalServer
	}
	return &product, nil
}

func (s *SecondHandService) ListSecondHand(ctx context.Context, includeSold bool, page, limit int) ([]*model.SecondHandProduct, error) {
	key := cache.ListKey(secondHandResource, page, limit) + "&sold=" + strconv.FormatBool(includeSold)

	payload, err := s.fetchCache.Fetch(ctx, key, func(ctx context.Context) ([]byte, error) {
		products, err := s.secondHandDAO.List(ctx, includeSold, limit, (page-1)*limit)
		if err != nil {
			return nil, err
		}
		return json.Marshal(products)
	})
	if err != nil {
		return nil, err
	}

	var products []*model.SecondHandProduct
	if err := json.Unmarshal(payload, &products); err != nil {
		return nil, fixhub_errors.ErrInternalServer
	}
	return products, nil
}
