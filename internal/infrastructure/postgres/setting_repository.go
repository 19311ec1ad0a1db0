package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
	"github.com/jhoicas/lubricentro-api/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

const settingColumns = `id, categoria, clave, valor, tipo, descripcion, updated_at`

// SettingRepo persistencia de la tabla configuracion.
type SettingRepo struct {
	q Querier
}

// NewSettingRepository construye el adaptador.
func NewSettingRepository(q Querier) *SettingRepo {
	return &SettingRepo{q: q}
}

func (r *SettingRepo) List(ctx context.Context) ([]*entity.Setting, error) {
	return r.query(ctx, `SELECT `+settingColumns+` FROM configuracion ORDER BY categoria, clave`)
}

func (r *SettingRepo) ListByCategory(ctx context.Context, category string) ([]*entity.Setting, error) {
	return r.query(ctx, `SELECT `+settingColumns+` FROM configuracion WHERE categoria = $1 ORDER BY clave`, category)
}

func (r *SettingRepo) FindByKey(ctx context.Context, category, key string) (*entity.Setting, error) {
	s, err := scanSetting(r.q.QueryRow(ctx,
		`SELECT `+settingColumns+` FROM configuracion WHERE categoria = $1 AND clave = $2`, category, key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, dbErr("get setting", err)
	}
	return s, nil
}

func (r *SettingRepo) Create(ctx context.Context, s *entity.Setting) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO configuracion (categoria, clave, valor, tipo, descripcion, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		s.Category, s.Key, s.Value, s.Type, s.Description, s.UpdatedAt,
	).Scan(&s.ID)
	return dbErr("insert setting", err)
}

// Upsert inserta o actualiza valor, tipo y descripción por (categoria, clave); completa el ID.
func (r *SettingRepo) Upsert(ctx context.Context, s *entity.Setting) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO configuracion (categoria, clave, valor, tipo, descripcion, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (categoria, clave) DO UPDATE
		SET valor = EXCLUDED.valor, tipo = EXCLUDED.tipo, descripcion = EXCLUDED.descripcion,
		    updated_at = EXCLUDED.updated_at
		RETURNING id`,
		s.Category, s.Key, s.Value, s.Type, s.Description, s.UpdatedAt,
	).Scan(&s.ID)
	return dbErr("upsert setting", err)
}

func (r *SettingRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM configuracion WHERE id = $1`, id)
	if err != nil {
		return false, dbErr("delete setting", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *SettingRepo) query(ctx context.Context, sql string, args ...any) ([]*entity.Setting, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbErr("list settings", err)
	}
	defer rows.Close()
	var list []*entity.Setting
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, dbErr("scan setting", err)
		}
		list = append(list, s)
	}
	return list, dbErr("list settings", rows.Err())
}

func scanSetting(row pgx.Row) (*entity.Setting, error) {
	var s entity.Setting
	if err := row.Scan(&s.ID, &s.Category, &s.Key, &s.Value, &s.Type, &s.Description, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
