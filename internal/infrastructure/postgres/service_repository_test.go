package postgres

import (
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/lubricentro-api/internal/domain/entity"
)

// recordingQuerier guarda la última consulta y responde QueryRow con un valor fijo.
type recordingQuerier struct {
	sql  string
	args []any
	next int64
}

func (q *recordingQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (q *recordingQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, fmt.Errorf("no usado")
}

func (q *recordingQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	q.sql, q.args = sql, args
	return int64Row(q.next)
}

type int64Row int64

func (r int64Row) Scan(dest ...any) error {
	*dest[0].(*int64) = int64(r)
	return nil
}

var placeholderRe = regexp.MustCompile(`\$\d+`)

func TestNextNumber_ParametrosTextuales(t *testing.T) {
	q := &recordingQuerier{next: 7}
	n, err := NewServiceRepository(q).NextNumber(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 7, n)

	// Un solo parámetro ($1 = prefijo, columna VARCHAR); la posición del sufijo va literal.
	assert.Equal(t, []string{"$1"}, uniq(placeholderRe.FindAllString(q.sql, -1)))
	require.Len(t, q.args, 1)
	_, err = pgtype.NewMap().Encode(pgtype.TextOID, pgtype.TextFormatCode, q.args[0], nil)
	assert.NoError(t, err, "el prefijo debe poder enviarse como text")

	assert.Contains(t, q.sql, fmt.Sprintf("substr(numero, %d)", len(entity.ServiceNumberPrefix)+1))
	assert.Contains(t, q.sql, "'^"+entity.ServiceNumberPrefix+"[0-9]+$'")
}

func uniq(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
