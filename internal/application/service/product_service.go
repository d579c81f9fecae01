package service

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kamandelane/tillpoint-api/internal/domain/entity"
	"github.com/kamandelane/tillpoint-api/internal/domain/repository"
	"github.com/kamandelane/tillpoint-api/pkg/apperror"
	"github.com/kamandelane/tillpoint-api/pkg/pagination"
	"github.com/kamandelane/tillpoint-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	UserID       uuid.UUID
	CategoryID   *uuid.UUID
	Name         string
	Code         string
	Stock        int
	StockAlert   int
	SellingPrice float64
	Description  *string
	ProductImage *string
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.SellingPrice < 0 {
		return nil, apperror.NewBadRequestError("Selling price cannot be negative")
	}
	if input.Stock < 0 {
		return nil, apperror.NewBadRequestError("Stock cannot be negative")
	}

	// Auto-generate code if not provided
	code := input.Code
	if code == "" {
		code = utils.GenerateProductCode()
	}

	// Check if code already exists
	existingProduct, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existingProduct != nil {
		return nil, apperror.NewConflictError("Product code already exists")
	}

	product := &entity.Product{
		UserID:       input.UserID,
		CategoryID:   input.CategoryID,
		Name:         input.Name,
		Slug:         utils.Slugify(input.Name),
		Code:         code,
		Stock:        input.Stock,
		StockAlert:   input.StockAlert,
		Description:  input.Description,
		ProductImage: input.ProductImage,
	}
	product.SetSellingPriceFromDecimal(input.SellingPrice)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by slug
func (s *ProductService) GetProduct(ctx context.Context, slug string) (*entity.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// ListProductsWithCursor lists products with cursor-based pagination
func (s *ProductService) ListProductsWithCursor(ctx context.Context, params *repository.ProductCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Product], error) {
	products, err := s.productRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(products, params.Cursor.Limit,
		func(p entity.Product) string { return p.ID.String() },
		func(p entity.Product) time.Time { return p.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ProductSlug  string
	CategoryID   *uuid.UUID
	Name         *string
	Code         *string
	StockAlert   *int
	SellingPrice *float64
	Description  *string
	ProductImage *string
}

// UpdateProduct updates a product. Stock is deliberately not updatable here;
// it only moves through restock and checkout.
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetBySlug(ctx, input.ProductSlug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	// Check if new code is unique
	if input.Code != nil && *input.Code != product.Code {
		existingProduct, err := s.productRepo.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existingProduct != nil && existingProduct.ID != product.ID {
			return nil, apperror.NewConflictError("Product code already exists")
		}
		product.Code = *input.Code
	}

	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
	}
	if input.Name != nil {
		product.Name = *input.Name
		product.Slug = utils.Slugify(*input.Name)
	}
	if input.StockAlert != nil {
		product.StockAlert = *input.StockAlert
	}
	if input.SellingPrice != nil {
		if *input.SellingPrice < 0 {
			return nil, apperror.NewBadRequestError("Selling price cannot be negative")
		}
		product.SetSellingPriceFromDecimal(*input.SellingPrice)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.ProductImage != nil {
		product.ProductImage = input.ProductImage
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, slug string) error {
	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	return s.productRepo.Delete(ctx, product.ID)
}

// RestockProduct adds stock to a product. The amount must be positive.
func (s *ProductService) RestockProduct(ctx context.Context, slug string, amount int) (*entity.Product, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Restock amount must be greater than zero")
	}

	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if err := s.productRepo.AtomicIncrementStock(ctx, product.ID, amount); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetLowStockProducts returns products at or below their stock alert level
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// ImportResult contains the result of a product import operation
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ImportProducts reads an XLSX workbook and bulk-creates the products in it.
// Expected columns: Name, Code, Stock, Stock Alert, Selling Price,
// Category, Description. The first row is the header.
func (s *ProductService) ImportProducts(ctx context.Context, userID uuid.UUID, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid XLSX file: " + err.Error())
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperror.NewBadRequestError("Failed to read XLSX rows: " + err.Error())
	}

	if len(rows) <= 1 {
		return nil, apperror.NewBadRequestError("Import file has no data rows")
	}
	dataRows := rows[1:]

	result := &ImportResult{TotalRows: len(dataRows)}
	var rowErrors []ImportRowError

	// Load categories for name-based matching
	categoryMap := make(map[string]*uuid.UUID)
	categories, _, _ := s.categoryRepo.List(ctx, &pagination.PaginationParams{Page: 1, PerPage: 1000}, "")
	for i := range categories {
		categoryMap[strings.ToLower(categories[i].Name)] = &categories[i].ID
	}

	// Track codes seen in this import batch to detect duplicates within the file
	seenCodes := make(map[string]int) // code -> row number (1-indexed)

	var validProducts []entity.Product

	for i, row := range dataRows {
		rowNum := i + 2 // +2 because row 1 is the header, data starts at row 2

		name := cell(row, 0)
		if name == "" {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "name", Message: "Name is required"})
			continue
		}

		// Auto-generate code if empty
		code := cell(row, 1)
		if code == "" {
			code = utils.GenerateProductCode()
		}

		// Check for duplicate code within the file
		if prevRow, exists := seenCodes[code]; exists {
			rowErrors = append(rowErrors, ImportRowError{
				Row:     rowNum,
				Field:   "code",
				Message: fmt.Sprintf("Duplicate code '%s' (same as row %d)", code, prevRow),
			})
			continue
		}

		// Check if code already exists in DB
		existingProduct, err := s.productRepo.GetByCode(ctx, code)
		if err != nil {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "code", Message: "Error checking code: " + err.Error()})
			continue
		}
		if existingProduct != nil {
			rowErrors = append(rowErrors, ImportRowError{
				Row:     rowNum,
				Field:   "code",
				Message: fmt.Sprintf("Product code '%s' already exists", code),
			})
			continue
		}

		stock, err := parseIntCell(cell(row, 2))
		if err != nil || stock < 0 {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "stock", Message: "Stock must be a non-negative number"})
			continue
		}

		stockAlert, err := parseIntCell(cell(row, 3))
		if err != nil || stockAlert < 0 {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "stock_alert", Message: "Stock alert must be a non-negative number"})
			continue
		}

		price, err := parseFloatCell(cell(row, 4))
		if err != nil || price < 0 {
			rowErrors = append(rowErrors, ImportRowError{Row: rowNum, Field: "selling_price", Message: "Selling price must be a non-negative number"})
			continue
		}

		seenCodes[code] = rowNum

		// Slug with uniqueness suffix
		slug := utils.Slugify(name) + "-" + strings.ToLower(uuid.New().String()[:8])

		// Match category by name
		var categoryID *uuid.UUID
		if catName := cell(row, 5); catName != "" {
			if id, ok := categoryMap[strings.ToLower(catName)]; ok {
				categoryID = id
			}
		}

		product := entity.Product{
			UserID:     userID,
			CategoryID: categoryID,
			Name:       name,
			Slug:       slug,
			Code:       code,
			Stock:      stock,
			StockAlert: stockAlert,
		}
		product.SetSellingPriceFromDecimal(price)

		if desc := cell(row, 6); desc != "" {
			product.Description = &desc
		}

		validProducts = append(validProducts, product)
	}

	// Batch create valid products
	if len(validProducts) > 0 {
		if err := s.productRepo.CreateBatch(ctx, validProducts); err != nil {
			return nil, apperror.NewAppError(500, "Failed to import products: "+err.Error())
		}
	}

	result.Successful = len(validProducts)
	result.Failed = len(rowErrors)
	result.Errors = rowErrors

	return result, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseIntCell(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func parseFloatCell(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}
