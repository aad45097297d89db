package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/nfe-emissor/internal/domain"
	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
	"github.com/jhoicas/nfe-emissor/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementação de InvoiceRepository (pool ou tx).
type InvoiceRepo struct {
	q  Querier
	tx *TxRunner
}

// NewInvoiceRepository constrói o adaptador.
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q, tx: NewTxRunner(q)}
}

// Colunas de invoices na mesma ordem de invoiceFields.
var invoiceColumns = []string{
	"id", "user_id", "number", "series", "operation_nature", "operation_type", "purpose",
	"presence_indicator", "issue_date", "issue_time", "exit_date", "exit_time",
	"dest_name", "dest_person_type", "dest_tax_id", "dest_state_registration", "dest_zip_code",
	"dest_uf", "dest_city", "dest_city_code", "dest_district", "dest_street", "dest_number",
	"dest_complement", "dest_phone", "dest_email", "final_consumer",
	"products_total", "freight", "insurance", "other_expenses", "discount", "total",
	"freight_mode", "additional_info",
	"status", "environment", "access_key", "protocol", "receipt", "status_code",
	"rejection_reason", "received_at", "xml_content", "xml_signed", "xml_protocol",
	"created_at", "updated_at",
}

// Colunas que Replace nunca altera.
var immutableInvoiceColumns = map[string]bool{
	"id": true, "user_id": true, "number": true, "created_at": true,
}

var invoiceSelect = `SELECT ` + strings.Join(invoiceColumns, ", ") + ` FROM invoices`

// invoiceFields devolve ponteiros para os campos de inv, usados tanto como
// argumentos (pgx segue o ponteiro) quanto como destino de Scan.
func invoiceFields(inv *entity.Invoice) []any {
	return []any{
		&inv.ID, &inv.UserID, &inv.Number, &inv.Series, &inv.OperationNature, &inv.OperationType, &inv.Purpose,
		&inv.PresenceIndicator, &inv.IssueDate, &inv.IssueTime, &inv.ExitDate, &inv.ExitTime,
		&inv.DestName, &inv.DestPersonType, &inv.DestTaxID, &inv.DestStateRegistration, &inv.DestZipCode,
		&inv.DestUF, &inv.DestCity, &inv.DestCityCode, &inv.DestDistrict, &inv.DestStreet, &inv.DestNumber,
		&inv.DestComplement, &inv.DestPhone, &inv.DestEmail, &inv.FinalConsumer,
		&inv.ProductsTotal, &inv.Freight, &inv.Insurance, &inv.OtherExpenses, &inv.Discount, &inv.Total,
		&inv.FreightMode, &inv.AdditionalInfo,
		&inv.Status, &inv.Environment, &inv.AccessKey, &inv.Protocol, &inv.Receipt, &inv.StatusCode,
		&inv.RejectionReason, &inv.ReceivedAt, &inv.XMLContent, &inv.XMLSigned, &inv.XMLProtocol,
		&inv.CreatedAt, &inv.UpdatedAt,
	}
}

var itemColumns = []string{
	"id", "invoice_id", "product_id", "code", "description", "ncm", "cfop", "unit",
	"quantity", "unit_price", "total", "ean", "origin", "csosn", "cst_pis", "cst_cofins", "position",
}

// Create grava cabeçalho e itens numa transação. O número é o MAX+1 do usuário,
// serializado por um advisory lock da transação.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice, items []*entity.InvoiceItem) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	return r.tx.Run(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, inv.UserID); err != nil {
			return fmt.Errorf("lock invoice numbering: %w", err)
		}
		number, err := nextNumber(ctx, tx, inv.UserID)
		if err != nil {
			return err
		}
		inv.Number = number

		query := `INSERT INTO invoices (` + strings.Join(invoiceColumns, ", ") + `)
			VALUES (` + placeholders(len(invoiceColumns)) + `)`
		if _, err := tx.Exec(ctx, query, invoiceFields(inv)...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: número de nota já existe", domain.ErrDuplicate)
			}
			return fmt.Errorf("insert invoice: %w", err)
		}
		return insertItems(ctx, tx, inv.ID, items)
	})
}

// GetByID obtém a nota do usuário ou (nil, nil).
func (r *InvoiceRepo) GetByID(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := r.q.QueryRow(ctx, invoiceSelect+` WHERE id = $1 AND user_id = $2`, id, userID).Scan(invoiceFields(&inv)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return &inv, nil
}

// GetItems devolve os itens na ordem de nItem.
func (r *InvoiceRepo) GetItems(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `SELECT ` + strings.Join(itemColumns, ", ") + `
		FROM invoice_items WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceItem
	for rows.Next() {
		var it entity.InvoiceItem
		var productID *string
		if err := rows.Scan(
			&it.ID, &it.InvoiceID, &productID, &it.Code, &it.Description, &it.NCM, &it.CFOP, &it.Unit,
			&it.Quantity, &it.UnitPrice, &it.Total, &it.EAN, &it.Origin, &it.CSOSN, &it.CSTPIS, &it.CSTCOFINS, &it.Position,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		it.ProductID = derefStr(productID)
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListByUser lista as notas do usuário, mais recentes primeiro.
func (r *InvoiceRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(ctx, invoiceSelect+` WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(invoiceFields(&inv)...); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// Replace substitui cabeçalho e itens numa transação. O UPDATE só afeta a linha se o
// status atual for editável; nenhuma linha afetada devolve ErrInvoiceNotEditable.
func (r *InvoiceRepo) Replace(ctx context.Context, inv *entity.Invoice, items []*entity.InvoiceItem) error {
	return r.tx.Run(ctx, func(tx pgx.Tx) error {
		fields := invoiceFields(inv)
		args := []any{inv.ID, inv.UserID, entity.EditableStatuses}
		sets := make([]string, 0, len(invoiceColumns))
		for i, col := range invoiceColumns {
			if immutableInvoiceColumns[col] {
				continue
			}
			args = append(args, fields[i])
			sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
		}
		query := `UPDATE invoices SET ` + strings.Join(sets, ", ") + `
			WHERE id = $1 AND user_id = $2 AND status = ANY($3)`
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("update invoice: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrInvoiceNotEditable
		}
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, inv.ID); err != nil {
			return fmt.Errorf("delete invoice items: %w", err)
		}
		return insertItems(ctx, tx, inv.ID, items)
	})
}

// emissionSet atualiza só os campos não nulos de EmissionUpdate ($1..$11).
const emissionSet = `
		UPDATE invoices
		SET status           = COALESCE($1,  status),
		    environment      = COALESCE($2,  environment),
		    access_key       = COALESCE($3,  access_key),
		    protocol         = COALESCE($4,  protocol),
		    receipt          = COALESCE($5,  receipt),
		    status_code      = COALESCE($6,  status_code),
		    rejection_reason = COALESCE($7,  rejection_reason),
		    received_at      = COALESCE($8,  received_at),
		    xml_content      = COALESCE($9,  xml_content),
		    xml_signed       = COALESCE($10, xml_signed),
		    xml_protocol     = COALESCE($11, xml_protocol),
		    updated_at       = NOW()`

func emissionArgs(upd entity.EmissionUpdate, extra ...any) []any {
	args := []any{
		upd.Status, upd.Environment, upd.AccessKey, upd.Protocol, upd.Receipt, upd.StatusCode,
		upd.RejectionReason, upd.ReceivedAt, upd.XMLContent, upd.XMLSigned, upd.XMLProtocol,
	}
	return append(args, extra...)
}

// StartEmission aplica upd só se a linha ainda tiver o updated_at lido e estiver em
// estado editável, ou em processing sem atualização há mais de staleAfter (pelo relógio
// do banco). Uma emissão concorrente ou um Replace no meio do caminho zera o
// RowsAffected e a emissão não prossegue.
func (r *InvoiceRepo) StartEmission(ctx context.Context, inv *entity.Invoice, staleAfter time.Duration, upd entity.EmissionUpdate) error {
	query := emissionSet + `
		WHERE id = $12 AND user_id = $13 AND updated_at = $14
		  AND (status = ANY($15)
		       OR (status = $16 AND updated_at < NOW() - make_interval(secs => $17)))`
	tag, err := r.q.Exec(ctx, query, emissionArgs(upd,
		inv.ID, inv.UserID, inv.UpdatedAt,
		entity.EditableStatuses, entity.InvoiceStatusProcessing, staleAfter.Seconds(),
	)...)
	if err != nil {
		return fmt.Errorf("start invoice emission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEmissionConflict
	}
	return nil
}

// UpdateEmission aplica só os campos não nulos de upd num único UPDATE.
func (r *InvoiceRepo) UpdateEmission(ctx context.Context, id string, upd entity.EmissionUpdate) error {
	tag, err := r.q.Exec(ctx, emissionSet+` WHERE id = $12`, emissionArgs(upd, id)...)
	if err != nil {
		return fmt.Errorf("update invoice emission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete remove a nota; os itens saem por ON DELETE CASCADE.
func (r *InvoiceRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nextNumber(ctx context.Context, q Querier, userID string) (string, error) {
	var next int64
	err := q.QueryRow(ctx,
		`SELECT COALESCE(MAX(CAST(number AS BIGINT)), 0) + 1 FROM invoices WHERE user_id = $1`, userID,
	).Scan(&next)
	if err != nil {
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	return fmt.Sprintf("%06d", next), nil
}

func insertItems(ctx context.Context, tx pgx.Tx, invoiceID string, items []*entity.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(items))
	for i, it := range items {
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.InvoiceID = invoiceID
		if it.Position == 0 {
			it.Position = i + 1
		}
		rows = append(rows, []any{
			it.ID, it.InvoiceID, nullIfEmpty(it.ProductID), it.Code, it.Description, it.NCM, it.CFOP, it.Unit,
			it.Quantity, it.UnitPrice, it.Total, it.EAN, it.Origin, it.CSOSN, it.CSTPIS, it.CSTCOFINS, it.Position,
		})
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{"invoice_items"}, itemColumns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("insert invoice items: %w", err)
	}
	return nil
}

// placeholders gera "$1, $2, ..., $n".
func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ", ")
}
