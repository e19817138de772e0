// Package repositorytest provides an in-memory EtudiantRepository for tests.
package repositorytest

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/internal/modules/etudiant/repository"
)

type Memory struct {
	mu     sync.Mutex
	Rows   map[uint]*entity.Etudiant
	nextID uint
}

var _ repository.EtudiantRepository = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{Rows: map[uint]*entity.Etudiant{}}
}

func clone(e *entity.Etudiant) *entity.Etudiant {
	cp := *e
	cp.Roles = append([]entity.Role(nil), e.Roles...)
	if e.Photo != nil {
		p := *e.Photo
		cp.Photo = &p
	}
	return &cp
}

func (m *Memory) FindByID(_ context.Context, id uint) (*entity.Etudiant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.Rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return clone(e), nil
}

func (m *Memory) FindAll(_ context.Context) ([]*entity.Etudiant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Etudiant, 0, len(m.Rows))
	for _, e := range m.Rows {
		out = append(out, clone(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) Create(_ context.Context, e *entity.Etudiant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e.ID = m.nextID
	m.Rows[e.ID] = clone(e)
	return nil
}

// Save keeps the stored roles, as the gorm store omits associations.
func (m *Memory) Save(_ context.Context, e *entity.Etudiant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := clone(e)
	cp.Roles = nil
	if old, ok := m.Rows[e.ID]; ok {
		cp.Roles = old.Roles
	}
	m.Rows[e.ID] = cp
	return nil
}

func (m *Memory) Delete(_ context.Context, e *entity.Etudiant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Rows, e.ID)
	return nil
}

func (m *Memory) ExistsByEmail(_ context.Context, email string) (bool, error) {
	return m.has(func(e *entity.Etudiant) bool { return e.Email == email }), nil
}

func (m *Memory) ExistsByMatricule(_ context.Context, matricule string) (bool, error) {
	return m.has(func(e *entity.Etudiant) bool { return e.Matricule == matricule }), nil
}

func (m *Memory) has(match func(e *entity.Etudiant) bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Rows {
		if match(e) {
			return true
		}
	}
	return false
}

func (m *Memory) ReplaceRoles(_ context.Context, e *entity.Etudiant, roles []entity.Role) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.Roles = roles
	if row, ok := m.Rows[e.ID]; ok {
		row.Roles = append([]entity.Role(nil), roles...)
	}
	return nil
}

func (m *Memory) Transaction(_ context.Context, fn func(repo repository.EtudiantRepository) error) error {
	return fn(m)
}
