// Package repositorytest provides an in-memory EnseignantRepository for tests.
package repositorytest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/internal/modules/enseignant/repository"
)

type Memory struct {
	mu     sync.Mutex
	Rows   map[uint]*entity.Enseignant
	nextID uint
}

var _ repository.EnseignantRepository = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{Rows: map[uint]*entity.Enseignant{}}
}

func clone(e *entity.Enseignant) *entity.Enseignant {
	cp := *e
	cp.Roles = append([]entity.Role(nil), e.Roles...)
	return &cp
}

func (m *Memory) FindByID(_ context.Context, id uint) (*entity.Enseignant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.Rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return clone(e), nil
}

func (m *Memory) FindAll(_ context.Context) ([]*entity.Enseignant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Enseignant, 0, len(m.Rows))
	for _, e := range m.Rows {
		out = append(out, clone(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) Create(_ context.Context, e *entity.Enseignant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e.ID = m.nextID
	m.Rows[e.ID] = clone(e)
	return nil
}

func (m *Memory) Save(_ context.Context, e *entity.Enseignant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	roles := []entity.Role(nil)
	if old, ok := m.Rows[e.ID]; ok {
		roles = old.Roles
	}
	cp := clone(e)
	cp.Roles = roles
	m.Rows[e.ID] = cp
	return nil
}

func (m *Memory) Delete(_ context.Context, e *entity.Enseignant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Rows, e.ID)
	return nil
}

func (m *Memory) FindByEmail(_ context.Context, email string) (*entity.Enseignant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Rows {
		if e.Email == email {
			return clone(e), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Memory) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.FindByEmail(ctx, email)
	return err == nil, nil
}

func (m *Memory) SearchByNom(ctx context.Context, nom string) ([]*entity.Enseignant, error) {
	all, _ := m.FindAll(ctx)
	out := []*entity.Enseignant{}
	for _, e := range all {
		if strings.Contains(strings.ToLower(e.Nom), strings.ToLower(nom)) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *Memory) ReplaceRoles(_ context.Context, e *entity.Enseignant, roles []entity.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.Roles = roles
	if row, ok := m.Rows[e.ID]; ok {
		row.Roles = append([]entity.Role(nil), roles...)
	}
	return nil
}

// Transaction runs fn directly; the memory store has no isolation to offer.
func (m *Memory) Transaction(_ context.Context, fn func(repo repository.EnseignantRepository) error) error {
	return fn(m)
}
