package postgres

import (
	"context"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nfe-emissor/internal/domain"
	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
)

// execRecorder guarda o último Exec e devolve o RowsAffected configurado.
type execRecorder struct {
	Querier
	sql  string
	args []any
	tag  string
}

func (e *execRecorder) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	e.sql, e.args = sql, args
	return pgconn.NewCommandTag(e.tag), nil
}

var placeholderRe = regexp.MustCompile(`\$(\d+)`)

func maxPlaceholder(sql string) int {
	highest := 0
	for _, m := range placeholderRe.FindAllStringSubmatch(sql, -1) {
		if n, _ := strconv.Atoi(m[1]); n > highest {
			highest = n
		}
	}
	return highest
}

func TestStartEmission_GuardsStatusAndVersion(t *testing.T) {
	rec := &execRecorder{tag: "UPDATE 1"}
	repo := NewInvoiceRepository(rec)
	read := time.Date(2024, 3, 15, 10, 30, 0, 123000, time.UTC)
	inv := &entity.Invoice{ID: "inv-1", UserID: "u1", UpdatedAt: read}

	err := repo.StartEmission(context.Background(), inv, time.Minute, entity.EmissionUpdate{
		Status: entity.Str(entity.InvoiceStatusProcessing),
	})
	require.NoError(t, err)

	assert.Contains(t, rec.sql, "updated_at = $14")
	assert.Contains(t, rec.sql, "status = ANY($15)")
	assert.Equal(t, maxPlaceholder(rec.sql), len(rec.args))
	assert.Equal(t, read, rec.args[13])
	assert.Equal(t, entity.EditableStatuses, rec.args[14])
	assert.Equal(t, float64(60), rec.args[16])
}

func TestStartEmission_NoRowIsConflict(t *testing.T) {
	repo := NewInvoiceRepository(&execRecorder{tag: "UPDATE 0"})

	err := repo.StartEmission(context.Background(), &entity.Invoice{ID: "inv-1"}, time.Minute, entity.EmissionUpdate{})
	assert.ErrorIs(t, err, domain.ErrEmissionConflict)
}

func TestUpdateEmission_PlaceholdersMatchArgs(t *testing.T) {
	rec := &execRecorder{tag: "UPDATE 1"}
	repo := NewInvoiceRepository(rec)

	require.NoError(t, repo.UpdateEmission(context.Background(), "inv-1", entity.EmissionUpdate{}))
	assert.Equal(t, maxPlaceholder(rec.sql), len(rec.args))
	assert.Equal(t, "inv-1", rec.args[11])
}
