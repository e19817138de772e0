// Package repositorytest provides an in-memory RoleRepository for tests.
package repositorytest

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/internal/modules/role/repository"
)

type Memory struct {
	mu     sync.Mutex
	Rows   map[uint]*entity.Role
	nextID uint
}

var _ repository.RoleRepository = (*Memory)(nil)

// NewMemory returns a store holding roles, numbered from 1 in order.
func NewMemory(roles ...entity.Role) *Memory {
	m := &Memory{Rows: map[uint]*entity.Role{}}
	for _, r := range roles {
		r := r
		m.nextID++
		r.ID = m.nextID
		m.Rows[r.ID] = &r
	}
	return m
}

func (m *Memory) FindByID(_ context.Context, id uint) (*entity.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.Rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *Memory) FindAll(_ context.Context) ([]*entity.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Role, 0, len(m.Rows))
	for _, r := range m.Rows {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) Create(_ context.Context, r *entity.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	r.ID = m.nextID
	cp := *r
	m.Rows[r.ID] = &cp
	return nil
}

func (m *Memory) Save(_ context.Context, r *entity.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.Rows[r.ID] = &cp
	return nil
}

func (m *Memory) Delete(_ context.Context, r *entity.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Rows, r.ID)
	return nil
}

func (m *Memory) FindByIDs(_ context.Context, ids []uint) ([]entity.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Role
	for _, id := range ids {
		if r, ok := m.Rows[id]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *Memory) FindByLibelle(_ context.Context, libelle string) (*entity.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.Rows {
		if r.Libelle == libelle {
			cp := *r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Memory) Transaction(_ context.Context, fn func(repo repository.RoleRepository) error) error {
	return fn(m)
}
