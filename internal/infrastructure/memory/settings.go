package memory

import (
	"cmp"
	"context"
	"slices"

	"github.com/jhoicas/lubricentro-api/internal/domain"
	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

// SettingRepo configuración en memoria. inTx indica que corre dentro de RunSettings.
type SettingRepo struct {
	s    *Store
	inTx bool
}

// begin toma txMu en escrituras fuera de transacción; devuelve la función que lo libera.
func (r *SettingRepo) begin() func() {
	if r.inTx {
		return func() {}
	}
	r.s.txMu.Lock()
	return r.s.txMu.Unlock
}

func (r *SettingRepo) List(_ context.Context) ([]*entity.Setting, error) {
	if err := r.s.lock("settings.List"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return r.filter(func(*entity.Setting) bool { return true }), nil
}

func (r *SettingRepo) ListByCategory(_ context.Context, category string) ([]*entity.Setting, error) {
	if err := r.s.lock("settings.ListByCategory"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	return r.filter(func(s *entity.Setting) bool { return s.Category == category }), nil
}

func (r *SettingRepo) filter(keep func(s *entity.Setting) bool) []*entity.Setting {
	var list []*entity.Setting
	for _, s := range r.s.st.settings {
		if keep(&s) {
			list = append(list, &s)
		}
	}
	slices.SortFunc(list, func(a, b *entity.Setting) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Key, b.Key))
	})
	return list
}

func (r *SettingRepo) FindByKey(_ context.Context, category, key string) (*entity.Setting, error) {
	if err := r.s.lock("settings.FindByKey"); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	if s := r.byKey(category, key); s != nil {
		return s, nil
	}
	return nil, nil
}

func (r *SettingRepo) byKey(category, key string) *entity.Setting {
	for _, s := range r.s.st.settings {
		if s.Category == category && s.Key == key {
			return &s
		}
	}
	return nil
}

func (r *SettingRepo) Create(_ context.Context, s *entity.Setting) error {
	defer r.begin()()
	if err := r.s.lock("settings.Create"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if r.byKey(s.Category, s.Key) != nil {
		return domain.Conflict("Ya existe una configuración con esa categoría y clave")
	}
	s.ID = r.s.st.nextID("configuracion")
	r.s.st.settings[s.ID] = *s
	return nil
}

func (r *SettingRepo) Upsert(_ context.Context, s *entity.Setting) error {
	defer r.begin()()
	if err := r.s.lock("settings.Upsert"); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if cur := r.byKey(s.Category, s.Key); cur != nil {
		s.ID = cur.ID
	} else {
		s.ID = r.s.st.nextID("configuracion")
	}
	r.s.st.settings[s.ID] = *s
	return nil
}

func (r *SettingRepo) Delete(_ context.Context, id int64) (bool, error) {
	defer r.begin()()
	if err := r.s.lock("settings.Delete"); err != nil {
		return false, err
	}
	defer r.s.mu.Unlock()
	if _, ok := r.s.st.settings[id]; !ok {
		return false, nil
	}
	delete(r.s.st.settings, id)
	return true, nil
}
