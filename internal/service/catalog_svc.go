package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/tubeshelf/tubeshelf-go/internal/model"
	"github.com/tubeshelf/tubeshelf-go/internal/repository"
	"github.com/tubeshelf/tubeshelf-go/pkg/slug"
)

var (
	// ErrSlugTaken maps to 409: a category/subcategory/tag with the
	// same name (hence slug) already exists.
	ErrSlugTaken = errors.New("name already in use")
	// ErrHasDependents maps to 409: deletion blocked by referencing rows.
	ErrHasDependents = errors.New("entity still has dependents")
	// ErrMissingParent maps to 400: the referenced parent does not exist.
	ErrMissingParent = errors.New("referenced parent does not exist")
)

// CatalogService covers the taxonomy: categories, subcategories, and tags.
type CatalogService struct {
	categories    *repository.CategoryRepo
	subcategories *repository.SubcategoryRepo
	tags          *repository.TagRepo
	activity      *ActivityService
}

func NewCatalogService(categories *repository.CategoryRepo, subcategories *repository.SubcategoryRepo,
	tags *repository.TagRepo, activity *ActivityService) *CatalogService {
	return &CatalogService{
		categories:    categories,
		subcategories: subcategories,
		tags:          tags,
		activity:      activity,
	}
}

// --- Categories ---

func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, actorID int64, req model.CategoryRequest) (*model.Category, error) {
	cat, err := s.categories.Create(ctx, req.Name, slug.Make(req.Name), req.ParentID)
	if err != nil {
		return nil, translateCatalogErr(err)
	}
	s.activity.Record(ctx, &actorID, model.ActionCreate, "category", cat.ID, cat.Name)
	return cat, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, actorID, id int64, req model.CategoryRequest) (*model.Category, error) {
	cat, err := s.categories.Update(ctx, id, req.Name, slug.Make(req.Name), req.ParentID)
	if err != nil {
		return nil, translateCatalogErr(err)
	}
	s.activity.Record(ctx, &actorID, model.ActionUpdate, "category", cat.ID, cat.Name)
	return cat, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, actorID, id int64) error {
	ok, err := s.categories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrHasDependents
	}
	s.activity.Record(ctx, &actorID, model.ActionDelete, "category", id, "")
	return nil
}

// --- Subcategories ---

func (s *CatalogService) ListSubcategories(ctx context.Context, categoryID *int64) ([]model.Subcategory, error) {
	return s.subcategories.List(ctx, categoryID)
}

func (s *CatalogService) GetSubcategory(ctx context.Context, id int64) (*model.Subcategory, error) {
	return s.subcategories.FindByID(ctx, id)
}

func (s *CatalogService) CreateSubcategory(ctx context.Context, actorID int64, req model.SubcategoryRequest) (*model.Subcategory, error) {
	sub, err := s.subcategories.Create(ctx, req.Name, slug.Make(req.Name), req.CategoryID)
	if err != nil {
		return nil, translateCatalogErr(err)
	}
	s.activity.Record(ctx, &actorID, model.ActionCreate, "subcategory", sub.ID, sub.Name)
	return sub, nil
}

func (s *CatalogService) UpdateSubcategory(ctx context.Context, actorID, id int64, req model.SubcategoryRequest) (*model.Subcategory, error) {
	sub, err := s.subcategories.Update(ctx, id, req.Name, slug.Make(req.Name), req.CategoryID)
	if err != nil {
		return nil, translateCatalogErr(err)
	}
	s.activity.Record(ctx, &actorID, model.ActionUpdate, "subcategory", sub.ID, sub.Name)
	return sub, nil
}

func (s *CatalogService) DeleteSubcategory(ctx context.Context, actorID, id int64) error {
	ok, err := s.subcategories.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrHasDependents
	}
	s.activity.Record(ctx, &actorID, model.ActionDelete, "subcategory", id, "")
	return nil
}

// --- Tags ---

func (s *CatalogService) ListTags(ctx context.Context) ([]model.Tag, error) {
	return s.tags.List(ctx)
}

func (s *CatalogService) GetTag(ctx context.Context, id int64) (*model.Tag, error) {
	return s.tags.FindByID(ctx, id)
}

func (s *CatalogService) CreateTag(ctx context.Context, actorID int64, req model.TagRequest) (*model.Tag, error) {
	tag, err := s.tags.Create(ctx, req.Name, slug.Make(req.Name))
	if err != nil {
		return nil, translateCatalogErr(err)
	}
	s.activity.Record(ctx, &actorID, model.ActionCreate, "tag", tag.ID, tag.Name)
	return tag, nil
}

func (s *CatalogService) UpdateTag(ctx context.Context, actorID, id int64, req model.TagRequest) (*model.Tag, error) {
	tag, err := s.tags.Update(ctx, id, req.Name, slug.Make(req.Name))
	if err != nil {
		return nil, translateCatalogErr(err)
	}
	s.activity.Record(ctx, &actorID, model.ActionUpdate, "tag", tag.ID, tag.Name)
	return tag, nil
}

func (s *CatalogService) DeleteTag(ctx context.Context, actorID, id int64) error {
	ok, err := s.tags.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}
	s.activity.Record(ctx, &actorID, model.ActionDelete, "tag", id, "")
	return nil
}

func translateCatalogErr(err error) error {
	switch {
	case repository.IsUniqueViolation(err):
		return ErrSlugTaken
	case repository.IsForeignKeyViolation(err):
		return ErrMissingParent
	default:
		log.Printf("catalog: %v", err)
		return fmt.Errorf("catalog operation failed: %w", err)
	}
}
