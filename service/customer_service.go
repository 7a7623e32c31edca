// api/service/customer_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fixhub-app/fixhub/api/cache"
	"github.com/fixhub-app/fixhub/api/dao"
	fixhub_errors "github.com/fixhub-app/fixhub/api/errors"
	"github.com/fixhub-app/fixhub/api/model"
	"github.com/fixhub-app/fixhub/api/realtime"
	"github.com/fixhub-app/fixhub/api/util"
)

const customerResource = "customers"

// ICustomerService defines the interface for customer operations
type ICustomerService interface {
	CreateCustomer(ctx context.Context, customer model.Customer) (*model.Customer, error)
	UpdateCustomer(ctx context.Context, customer model.Customer) (*model.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
	GetCustomer(ctx context.Context, customerID string) (*model.Customer, error)
	ListCustomers(ctx context.Context, page, limit int) ([]*model.Customer, error)
	SearchCustomers(ctx context.Context, query string, page, limit int) ([]*model.Customer, error)
}

type CustomerService struct {
	customerDAO    *dao.CustomerDAO
	validationUtil *util.ValidationUtil
	fetchCache     *cache.FetchCache
	feed           *realtime.BusFeed
}

var _ ICustomerService = &CustomerService{}

func NewCustomerService(
	customerDAO *dao.CustomerDAO,
	validationUtil *util.ValidationUtil,
	fetchCache *cache.FetchCache,
	feed *realtime.BusFeed,
) *CustomerService {
	return &CustomerService{
		customerDAO:    customerDAO,
		validationUtil: validationUtil,
		fetchCache:     fetchCache,
		feed:           feed,
	}
}

func (s *CustomerService) CreateCustomer(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	if err := s.validationUtil.ValidateCustomer(customer); err != nil {
		return nil, fmt.Errorf("%w: %s", fixhub_errors.ErrInvalidCustomerData, err)
	}

	created, err := s.customerDAO.Create(ctx, customer)
	if err != nil {
		return nil, err
	}

	s.feed.Publish(ctx, realtime.ChangeEvent{
		Table: customerResource,
		Event: realtime.EventInsert,
		ID:    created.ID,
	})
	return created, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, customer model.Customer) (*model.Customer, error) {
	if err := s.validationUtil.ValidateCustomer(customer); err != nil {
		return nil, fmt.Errorf("%w: %s", fixhub_errors.ErrInvalidCustomerData, err)
	}

	updated, err := s.customerDAO.Update(ctx, customer)
	if err != nil {
		return nil, err
	}

	s.feed.Publish(ctx, realtime.ChangeEvent{
		Table: customerResource,
		Event: realtime.EventUpdate,
		ID:    updated.ID,
	})
	return updated, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID string) error {
	if err := s.customerDAO.Delete(ctx, customerID); err != nil {
		return err
	}

	s.feed.Publish(ctx, realtime.ChangeEvent{
		Table: customerResource,
		Event: realtime.EventDelete,
		ID:    customerID,
	})
	return nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, customerID string) (*model.Customer, error) {
	payload, err := s.fetchCache.Fetch(ctx, cache.DetailKey(customerResource, customerID), func(ctx context.Context) ([]byte, error) {
		customer, err := s.customerDAO.GetByID(ctx, customerID)
		if err != nil {
			return nil, err
		}
		return json.Marshal(customer)
	})
	if err != nil {
		return nil, err
	}

	var customer model.Customer
	if err := json.Unmarshal(payload, &customer); err != nil {
		return nil, fixhub_errors.ErrInternalServer
	}
	return &customer, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context, page, limit int) ([]*model.Customer, error) {
	payload, err := s.fetchCache.Fetch(ctx, cache.ListKey(customerResource, page, limit), func(ctx context.Context) ([]byte, error) {
		customers, err := s.customerDAO.List(ctx, limit, (page-1)*limit)
		if err != nil {
			return nil, err
		}
		return json.Marshal(customers)
	})
	if err != nil {
		return nil, err
	}

	var customers []*model.Customer
	if err := json.Unmarshal(payload, &customers); err != nil {
		return nil, fixhub_errors.ErrInternalServer
	}
	return customers, nil
}

// SearchCustomers goes straight to the database. Search terms are too
// varied for the fetch cache to earn its keep here.
func (s *CustomerService) SearchCustomers(ctx context.Context, query string, page, limit int) ([]*model.Customer, error) {
	return s.customerDAO.Search(ctx, query, limit, (page-1)*limit)
}
