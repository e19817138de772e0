// Package repositorytest provides an in-memory VacataireRepository for tests.
package repositorytest

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"

	"uasz.sn/utilisateursapi/internal/entity"
	"uasz.sn/utilisateursapi/internal/modules/vacataire/repository"
)

type Memory struct {
	mu     sync.Mutex
	Rows   map[uint]*entity.Vacataire
	nextID uint
}

var _ repository.VacataireRepository = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{Rows: map[uint]*entity.Vacataire{}}
}

func (m *Memory) find(match func(v *entity.Vacataire) bool) (*entity.Vacataire, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.Rows {
		if match(v) {
			cp := *v
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Memory) list(match func(v *entity.Vacataire) bool) []*entity.Vacataire {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.Vacataire, 0, len(m.Rows))
	for _, v := range m.Rows {
		if match(v) {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *Memory) FindByID(_ context.Context, id uint) (*entity.Vacataire, error) {
	return m.find(func(v *entity.Vacataire) bool { return v.ID == id })
}

func (m *Memory) FindAll(_ context.Context) ([]*entity.Vacataire, error) {
	return m.list(func(*entity.Vacataire) bool { return true }), nil
}

func (m *Memory) Create(_ context.Context, v *entity.Vacataire) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	v.ID = m.nextID
	cp := *v
	m.Rows[v.ID] = &cp
	return nil
}

func (m *Memory) Save(_ context.Context, v *entity.Vacataire) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *v
	m.Rows[v.ID] = &cp
	return nil
}

func (m *Memory) Delete(_ context.Context, v *entity.Vacataire) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Rows, v.ID)
	return nil
}

func (m *Memory) FindActiveByID(_ context.Context, id uint) (*entity.Vacataire, error) {
	return m.find(func(v *entity.Vacataire) bool { return v.ID == id && v.Actif })
}

func (m *Memory) FindActiveByEmail(_ context.Context, email string) (*entity.Vacataire, error) {
	return m.find(func(v *entity.Vacataire) bool { return v.Email == email && v.Actif })
}

func (m *Memory) FindByEmail(_ context.Context, email string) (*entity.Vacataire, error) {
	return m.find(func(v *entity.Vacataire) bool { return v.Email == email })
}

func (m *Memory) FindAllActive(_ context.Context) ([]*entity.Vacataire, error) {
	return m.list(func(v *entity.Vacataire) bool { return v.Actif }), nil
}

func (m *Memory) Transaction(_ context.Context, fn func(repo repository.VacataireRepository) error) error {
	return fn(m)
}
