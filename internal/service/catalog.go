package service

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/domain"
	"github.com/TanishqMehrunkarIIPSDAVV/IndoCafe/internal/repo"
)

// maxPageSize caps the admin list page size.
const maxPageSize = 100

type CatalogService struct {
	catalogRepo repo.CatalogRepository
	logger      *zap.SugaredLogger
}

func NewCatalogService(catalogRepo repo.CatalogRepository, logger *zap.SugaredLogger) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

type CreateItemInput struct {
	Name        string
	Description string
	BasePrice   float64
	Image       string
	Category    string
	Pieces      *int
	Tags        []string
	IsVeg       bool
}

type UpdateItemInput struct {
	Name        *string
	Description *string
	BasePrice   *float64
	Image       *string
	Category    *string
	Pieces      *int
	Tags        []string
	IsVeg       *bool
}

func (s *CatalogService) CreateItem(ctx context.Context, in CreateItemInput) (*domain.MenuItem, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, domain.NewValidationError("category", "category is required")
	}
	if in.BasePrice < 0 {
		return nil, domain.NewValidationError("base_price", "base price cannot be negative")
	}
	if in.Pieces != nil && *in.Pieces <= 0 {
		return nil, domain.NewValidationError("pieces", "pieces must be positive")
	}

	tags, err := sanitizeTags(in.Tags)
	if err != nil {
		return nil, err
	}

	item := &domain.MenuItem{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		BasePrice:   in.BasePrice,
		Image:       in.Image,
		Category:    in.Category,
		Pieces:      in.Pieces,
		Tags:        tags,
		IsVeg:       in.IsVeg,
	}

	if err := s.catalogRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Infow("menu item created", "item_id", item.ID.Hex(), "name", item.Name)

	return item, nil
}

func (s *CatalogService) UpdateItem(ctx context.Context, id primitive.ObjectID, in UpdateItemInput) (*domain.MenuItem, error) {
	upd := repo.CatalogUpdate{
		Description: in.Description,
		Pieces:      in.Pieces,
		IsVeg:       in.IsVeg,
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.NewValidationError("name", "name cannot be empty")
		}
		name := strings.TrimSpace(*in.Name)
		upd.Name = &name
	}
	if in.Category != nil {
		if strings.TrimSpace(*in.Category) == "" {
			return nil, domain.NewValidationError("category", "category cannot be empty")
		}
		upd.Category = in.Category
	}
	if in.BasePrice != nil {
		if *in.BasePrice < 0 {
			return nil, domain.NewValidationError("base_price", "base price cannot be negative")
		}
		upd.BasePrice = in.BasePrice
	}
	if in.Pieces != nil && *in.Pieces <= 0 {
		return nil, domain.NewValidationError("pieces", "pieces must be positive")
	}
	if in.Tags != nil {
		tags, err := sanitizeTags(in.Tags)
		if err != nil {
			return nil, err
		}
		upd.Tags = tags
	}
	// a blank image means "no change", never "clear the stored image"
	if in.Image != nil && *in.Image != "" {
		upd.Image = in.Image
	}

	item, err := s.catalogRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("menu item updated", "item_id", id.Hex())

	return item, nil
}

func (s *CatalogService) ListItems(ctx context.Context, filter domain.MenuItemFilter) ([]domain.MenuItem, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}

	return s.catalogRepo.List(ctx, filter)
}

func (s *CatalogService) GetItem(ctx context.Context, id primitive.ObjectID) (*domain.MenuItem, error) {
	return s.catalogRepo.GetByID(ctx, id)
}

// sanitizeTags rejects tags outside the allowed vocabulary and deduplicates
// the rest, keeping first-seen order.
func sanitizeTags(tags []string) ([]string, error) {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !domain.IsAllowedTag(tag) {
			return nil, domain.NewValidationError("tags", "invalid tag %q, allowed tags: %s", tag, strings.Join(domain.AllowedTags, ", "))
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out, nil
}
