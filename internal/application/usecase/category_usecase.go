package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/ceramic-erp/internal/application/dto"
	"github.com/jhoicas/ceramic-erp/internal/application/ports"
	"github.com/jhoicas/ceramic-erp/internal/application/validation"
	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

// CategoryUseCase alta y baja de categorías.
type CategoryUseCase struct {
	repo      repository.CategoryRepository
	tileRepo  repository.TileRepository
	validator *validation.Validator
	cache     ports.ReportCache
}

// NewCategoryUseCase construye el caso de uso. cache puede ser nil.
func NewCategoryUseCase(repo repository.CategoryRepository, tileRepo repository.TileRepository, v *validation.Validator, cache ports.ReportCache) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, tileRepo: tileRepo, validator: v, cache: cache}
}

// Create crea una categoría con el nombre recortado.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := uc.validator.Struct(in); err != nil {
		return nil, err
	}
	c := &entity.Category{ID: uuid.New().String(), Name: in.Name, CreatedAt: time.Now().UTC()}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	bump(ctx, uc.cache)
	return toCategoryResponse(c), nil
}

// Delete borra la categoría. Si alguna baldosa (aun eliminada) la referencia devuelve ErrConflict.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	if !validation.ID(id) {
		return domain.ErrNotFound
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	n, err := uc.tileRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrConflict
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	bump(ctx, uc.cache)
	return nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}

// bump invalidación best-effort: un fallo de caché no deshace una escritura ya confirmada.
func bump(ctx context.Context, cache ports.ReportCache) {
	if cache != nil {
		_ = cache.Bump(ctx)
	}
}
