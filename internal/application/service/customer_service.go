package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
	"github.com/kamandelane/tillpoint-api/internal/domain/repository"
	"github.com/kamandelane/tillpoint-api/pkg/apperror"
	"github.com/kamandelane/tillpoint-api/pkg/pagination"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	UserID  uuid.UUID
	Name    string
	Email   *string
	Phone   *string
	Address *string
	Photo   *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.Email != nil && *input.Email != "" {
		existing, err := s.customerRepo.GetByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Customer with this email already exists")
		}
	}

	customer := &entity.Customer{
		UserID:  input.UserID,
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
		Photo:   input.Photo,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with search on name, email and phone
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// ListCustomersWithCursor lists customers using cursor-based pagination
func (s *CustomerService) ListCustomersWithCursor(ctx context.Context, params *pagination.CursorParams, search string) (*pagination.CursorPaginatedResult[entity.Customer], error) {
	customers, err := s.customerRepo.ListWithCursor(ctx, params, search)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(customers, params.Limit,
		func(c entity.Customer) string { return c.ID.String() },
		func(c entity.Customer) time.Time { return c.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID      uuid.UUID
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Photo   *string
}

// UpdateCustomer updates a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Email != nil && *input.Email != "" {
		existing, err := s.customerRepo.GetByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != customer.ID {
			return nil, apperror.NewConflictError("Customer with this email already exists")
		}
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.Photo != nil {
		customer.Photo = input.Photo
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}

	return s.customerRepo.Delete(ctx, id)
}
