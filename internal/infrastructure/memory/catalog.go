package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/ceramic-erp/internal/domain"
	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
	"github.com/jhoicas/ceramic-erp/internal/domain/inventory"
	"github.com/jhoicas/ceramic-erp/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)
var _ repository.TileRepository = (*TileRepo)(nil)

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ view }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.write(func(st *state) error {
		if _, ok := st.categories[c.ID]; ok {
			return domain.ErrDuplicate
		}
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.read(func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.read(func(st *state) error {
		for _, c := range st.categories {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	return r.write(func(st *state) error {
		if _, ok := st.categories[id]; !ok {
			return domain.ErrNotFound
		}
		for _, t := range st.tiles {
			if t.CategoryID == id {
				return domain.ErrConflict
			}
		}
		delete(st.categories, id)
		return nil
	})
}

// TileRepo baldosas en memoria.
type TileRepo struct{ view }

func (r *TileRepo) Create(_ context.Context, t *entity.Tile) error {
	return r.write(func(st *state) error {
		if _, ok := st.categories[t.CategoryID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := st.tiles[t.ID]; ok {
			return domain.ErrDuplicate
		}
		st.tiles[t.ID] = *t
		return nil
	})
}

func (r *TileRepo) GetByID(_ context.Context, id string) (*entity.Tile, error) {
	var out *entity.Tile
	err := r.read(func(st *state) error {
		out = st.tile(id)
		return nil
	})
	return out, err
}

// GetForUpdate en memoria la exclusión la da la transacción completa.
func (r *TileRepo) GetForUpdate(ctx context.Context, id string) (*entity.Tile, error) {
	return r.GetByID(ctx, id)
}

func (r *TileRepo) ListActive(_ context.Context) ([]*entity.Tile, error) {
	return r.list(func(t entity.Tile) bool { return true })
}

func (r *TileRepo) ListActiveByCategory(_ context.Context, categoryID string) ([]*entity.Tile, error) {
	return r.list(func(t entity.Tile) bool { return t.CategoryID == categoryID })
}

func (r *TileRepo) list(match func(entity.Tile) bool) ([]*entity.Tile, error) {
	var out []*entity.Tile
	err := r.read(func(st *state) error {
		for id, t := range st.tiles {
			if t.IsDeleted || !match(t) {
				continue
			}
			out = append(out, st.tile(id))
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func (r *TileRepo) CountByCategory(_ context.Context, categoryID string) (int, error) {
	n := 0
	err := r.read(func(st *state) error {
		for _, t := range st.tiles {
			if t.CategoryID == categoryID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *TileRepo) Update(_ context.Context, t *entity.Tile) error {
	return r.write(func(st *state) error {
		cur, ok := st.tiles[t.ID]
		if !ok || cur.IsDeleted {
			return domain.ErrNotFound
		}
		if _, ok := st.categories[t.CategoryID]; !ok {
			return domain.ErrNotFound
		}
		cur.Name = t.Name
		cur.CategoryID = t.CategoryID
		cur.Size = t.Size
		cur.Price = t.Price
		cur.LowStockThreshold = t.LowStockThreshold
		st.tiles[t.ID] = cur
		return nil
	})
}

func (r *TileRepo) AdjustStock(_ context.Context, id string, delta int) (int, error) {
	var qty int
	err := r.write(func(st *state) error {
		t, ok := st.tiles[id]
		if !ok {
			return domain.ErrNotFound
		}
		next, ok := inventory.ApplyDelta(t.StockQuantity, delta)
		if !ok {
			return domain.ErrInsufficientStock
		}
		t.StockQuantity = next
		st.tiles[id] = t
		qty = next
		return nil
	})
	return qty, err
}

func (r *TileRepo) SoftDelete(_ context.Context, id string) error {
	return r.write(func(st *state) error {
		t, ok := st.tiles[id]
		if !ok || t.IsDeleted {
			return domain.ErrNotFound
		}
		t.IsDeleted = true
		st.tiles[id] = t
		return nil
	})
}

// tile copia con el nombre de categoría resuelto, o nil.
func (st *state) tile(id string) *entity.Tile {
	t, ok := st.tiles[id]
	if !ok {
		return nil
	}
	if c, ok := st.categories[t.CategoryID]; ok {
		t.CategoryName = c.Name
	}
	return &t
}
