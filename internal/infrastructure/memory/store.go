// Package memory implementa todos los repositorios y el TxRunner en memoria.
// Se usa cuando no hay base de datos configurada (modo demo) y como doble en los tests.
// Las transacciones se serializan con un mutex y se deshacen restaurando una copia del estado.
package memory

import (
	"maps"
	"sync"

	"github.com/jhoicas/ceramic-erp/internal/domain/entity"
)

// Store estado completo de la aplicación.
type Store struct {
	mu   sync.Mutex
	data *state
}

type state struct {
	categories  map[string]entity.Category
	tiles       map[string]entity.Tile
	sales       map[string]entity.Sale
	purchases   map[string]entity.Purchase
	cash        *entity.CashAccount
	users       map[string]entity.User
	roles       map[string]entity.Role
	permissions map[string]entity.Permission
	rolePerms   map[string]map[string]struct{}
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: &state{
		categories:  map[string]entity.Category{},
		tiles:       map[string]entity.Tile{},
		sales:       map[string]entity.Sale{},
		purchases:   map[string]entity.Purchase{},
		users:       map[string]entity.User{},
		roles:       map[string]entity.Role{},
		permissions: map[string]entity.Permission{},
		rolePerms:   map[string]map[string]struct{}{},
	}}
}

func (s *state) clone() *state {
	c := &state{
		categories:  maps.Clone(s.categories),
		tiles:       maps.Clone(s.tiles),
		sales:       make(map[string]entity.Sale, len(s.sales)),
		purchases:   make(map[string]entity.Purchase, len(s.purchases)),
		users:       maps.Clone(s.users),
		roles:       maps.Clone(s.roles),
		permissions: maps.Clone(s.permissions),
		rolePerms:   make(map[string]map[string]struct{}, len(s.rolePerms)),
	}
	for id, sale := range s.sales {
		sale.Items = append([]entity.SaleItem(nil), sale.Items...)
		c.sales[id] = sale
	}
	for id, p := range s.purchases {
		p.Items = append([]entity.PurchaseItem(nil), p.Items...)
		c.purchases[id] = p
	}
	if s.cash != nil {
		cash := *s.cash
		c.cash = &cash
	}
	for id, set := range s.rolePerms {
		c.rolePerms[id] = maps.Clone(set)
	}
	return c
}

// view base de todos los repositorios. Dentro de una tx el mutex ya está tomado.
type view struct {
	s    *Store
	inTx bool
}

func (v view) read(fn func(st *state) error) error {
	if !v.inTx {
		v.s.mu.Lock()
		defer v.s.mu.Unlock()
	}
	return fn(v.s.data)
}

// write igual que read; separado para dejar claro en cada método si muta estado.
func (v view) write(fn func(st *state) error) error {
	return v.read(fn)
}
