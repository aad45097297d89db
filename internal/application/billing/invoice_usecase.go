package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/nfe-emissor/internal/application/dto"
	"github.com/jhoicas/nfe-emissor/internal/domain"
	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
	nfedomain "github.com/jhoicas/nfe-emissor/internal/domain/nfe"
	"github.com/jhoicas/nfe-emissor/internal/domain/repository"
	"github.com/jhoicas/nfe-emissor/internal/infrastructure/sefaz"
	"github.com/jhoicas/nfe-emissor/pkg/nfe"
)

// InvoiceUseCase CRUD de notas fiscais e download do XML.
// Totais de item (quantidade × valor unitário) e da nota são sempre calculados aqui.
type InvoiceUseCase struct {
	invoiceRepo repository.InvoiceRepository
	productRepo repository.ProductRepository
	emitterRepo repository.EmitterRepository
	builder     DocumentBuilder
	defaultEnv  string
}

// NewInvoiceUseCase constrói o caso de uso.
func NewInvoiceUseCase(
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	emitterRepo repository.EmitterRepository,
	builder DocumentBuilder,
	defaultEnv string,
) *InvoiceUseCase {
	if defaultEnv == "" {
		defaultEnv = nfe.EnvironmentHomologation
	}
	return &InvoiceUseCase{
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
		emitterRepo: emitterRepo,
		builder:     builder,
		defaultEnv:  defaultEnv,
	}
}

// Create grava a nota em rascunho com o próximo número sequencial do usuário.
func (uc *InvoiceUseCase) Create(ctx context.Context, userID string, in dto.InvoiceRequest) (*dto.InvoiceDetailResponse, error) {
	inv, items, err := uc.assemble(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	inv.ID = uuid.New().String()
	inv.Status = entity.InvoiceStatusDraft
	inv.CreatedAt = now
	inv.UpdatedAt = now
	for _, it := range items {
		it.InvoiceID = inv.ID
	}
	if err := uc.invoiceRepo.Create(ctx, inv, items); err != nil {
		return nil, fmt.Errorf("nota: criar: %w", err)
	}
	return toInvoiceDetail(inv, items), nil
}

// Get devolve cabeçalho e itens. domain.ErrNotFound se a nota não for do usuário.
func (uc *InvoiceUseCase) Get(ctx context.Context, userID, id string) (*dto.InvoiceDetailResponse, error) {
	inv, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.invoiceRepo.GetItems(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("nota: obter itens: %w", err)
	}
	return toInvoiceDetail(inv, items), nil
}

// List lista as notas do usuário, mais recentes primeiro.
func (uc *InvoiceUseCase) List(ctx context.Context, userID string, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.DefaultPage()
	list, err := uc.invoiceRepo.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, toInvoiceResponse(inv))
	}
	return &dto.InvoiceListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Replace substitui cabeçalho e itens de uma nota editável (rascunho, rejeitada ou
// com erro de assinatura). Os artefatos de emissão anteriores são descartados e a nota
// volta a rascunho.
func (uc *InvoiceUseCase) Replace(ctx context.Context, userID, id string, in dto.InvoiceRequest) (*dto.InvoiceDetailResponse, error) {
	current, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if !entity.IsEditableStatus(current.Status) {
		return nil, domain.ErrInvoiceNotEditable
	}
	inv, items, err := uc.assemble(ctx, userID, in)
	if err != nil {
		return nil, err
	}
	inv.ID = current.ID
	inv.Number = current.Number
	inv.CreatedAt = current.CreatedAt
	inv.UpdatedAt = time.Now()
	inv.ClearEmissionArtifacts()
	for _, it := range items {
		it.InvoiceID = inv.ID
	}
	// O repositório repete a guarda de estado na mesma transação da troca de itens.
	if err := uc.invoiceRepo.Replace(ctx, inv, items); err != nil {
		if errors.Is(err, domain.ErrInvoiceNotEditable) {
			return nil, err
		}
		return nil, fmt.Errorf("nota: substituir: %w", err)
	}
	return toInvoiceDetail(inv, items), nil
}

// Delete remove a nota e seus itens. Notas autorizadas ou em processamento não podem ser removidas.
func (uc *InvoiceUseCase) Delete(ctx context.Context, userID, id string) error {
	inv, err := uc.load(ctx, userID, id)
	if err != nil {
		return err
	}
	if inv.Status == entity.InvoiceStatusAuthorized || inv.Status == entity.InvoiceStatusProcessing {
		return fmt.Errorf("%w: nota em estado %s não pode ser excluída", domain.ErrConflict, inv.Status)
	}
	return uc.invoiceRepo.Delete(ctx, userID, id)
}

// DownloadXML devolve o XML assinado, senão o XML sem assinatura, senão uma prévia
// montada na hora (a prévia não é persistida).
func (uc *InvoiceUseCase) DownloadXML(ctx context.Context, userID, id string) (xmlBytes []byte, filename string, err error) {
	inv, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, "", err
	}
	// ── 1. Artefatos persistidos ─────────────────────────────────────────────
	switch {
	case inv.XMLSigned != "":
		return []byte(inv.XMLSigned), xmlFilename(inv.AccessKey, inv.Number), nil
	case inv.XMLContent != "":
		return []byte(inv.XMLContent), xmlFilename(inv.AccessKey, inv.Number), nil
	}

	// ── 2. Prévia ────────────────────────────────────────────────────────────
	emitter, err := uc.emitterRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("nota: obter emitente: %w", err)
	}
	if emitter == nil {
		return nil, "", domain.ErrEmitterNotConfigured
	}
	items, err := uc.invoiceRepo.GetItems(ctx, inv.ID)
	if err != nil {
		return nil, "", fmt.Errorf("nota: obter itens: %w", err)
	}
	env := inv.Environment
	if env == "" {
		env = uc.defaultEnv
	}
	built, err := uc.builder.Build(&sefaz.BuildInput{Invoice: inv, Items: items, Emitter: emitter, Environment: env})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return built.XML, xmlFilename(built.AccessKey, inv.Number), nil
}

func (uc *InvoiceUseCase) load(ctx context.Context, userID, id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("nota: obter: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	return inv, nil
}

// assemble converte o DTO em entidades, completa itens a partir do catálogo e calcula os totais.
func (uc *InvoiceUseCase) assemble(ctx context.Context, userID string, in dto.InvoiceRequest) (*entity.Invoice, []*entity.InvoiceItem, error) {
	if len(in.Items) == 0 {
		return nil, nil, fmt.Errorf("%w: a nota fiscal deve ter ao menos um item", domain.ErrInvalidInput)
	}
	inv := &entity.Invoice{
		UserID:                userID,
		Series:                orDefault(in.Series, "1"),
		OperationNature:       strings.TrimSpace(in.OperationNature),
		OperationType:         orDefault(in.OperationType, "1"),
		Purpose:               orDefault(in.Purpose, "1"),
		PresenceIndicator:     orDefault(in.PresenceIndicator, "0"),
		IssueDate:             in.IssueDate,
		IssueTime:             in.IssueTime,
		ExitDate:              in.ExitDate,
		ExitTime:              in.ExitTime,
		DestName:              strings.TrimSpace(in.DestName),
		DestPersonType:        in.DestPersonType,
		DestTaxID:             in.DestTaxID,
		DestStateRegistration: in.DestStateRegistration,
		DestZipCode:           in.DestZipCode,
		DestUF:                strings.ToUpper(in.DestUF),
		DestCity:              in.DestCity,
		DestCityCode:          in.DestCityCode,
		DestDistrict:          in.DestDistrict,
		DestStreet:            in.DestStreet,
		DestNumber:            in.DestNumber,
		DestComplement:        in.DestComplement,
		DestPhone:             in.DestPhone,
		DestEmail:             in.DestEmail,
		FinalConsumer:         in.FinalConsumer == nil || *in.FinalConsumer,
		Freight:               in.Freight,
		Insurance:             in.Insurance,
		OtherExpenses:         in.OtherExpenses,
		Discount:              in.Discount,
		FreightMode:           orDefault(in.FreightMode, nfe.DefaultModFrete),
		AdditionalInfo:        in.AdditionalInfo,
	}
	if inv.DestPersonType == "" {
		inv.DestPersonType = "F"
		if nfe.IsLegalEntity(inv.DestTaxID) {
			inv.DestPersonType = "J"
		}
	}
	if _, _, _, err := nfe.ParseDate(inv.IssueDate); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := nfedomain.ValidateRecipient(inv); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	for _, v := range []decimal.Decimal{inv.Freight, inv.Insurance, inv.OtherExpenses, inv.Discount} {
		if v.IsNegative() {
			return nil, nil, fmt.Errorf("%w: valores de frete, seguro, despesas e desconto não podem ser negativos", domain.ErrInvalidInput)
		}
		// vNF precisa fechar com as parcelas renderizadas com 2 casas.
		if !fitsScale(v, 2) {
			return nil, nil, fmt.Errorf("%w: frete, seguro, despesas e desconto aceitam no máximo 2 casas decimais", domain.ErrInvalidInput)
		}
	}

	items := make([]*entity.InvoiceItem, 0, len(in.Items))
	productsTotal := decimal.Zero
	for i, req := range in.Items {
		it, err := uc.resolveItem(ctx, userID, req)
		if err != nil {
			return nil, nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		it.ID = uuid.New().String()
		it.Position = i + 1
		productsTotal = productsTotal.Add(it.ComputeTotal())
		items = append(items, it)
	}

	inv.ProductsTotal = productsTotal
	inv.Total = productsTotal.
		Add(inv.Freight).
		Add(inv.Insurance).
		Add(inv.OtherExpenses).
		Sub(inv.Discount).
		Round(2)
	if inv.Total.IsNegative() {
		return nil, nil, fmt.Errorf("%w: o desconto excede o total da nota", domain.ErrInvalidInput)
	}
	return inv, items, nil
}

// resolveItem monta a linha; com product_id os campos vazios vêm do produto cadastrado.
func (uc *InvoiceUseCase) resolveItem(ctx context.Context, userID string, req dto.InvoiceItemRequest) (*entity.InvoiceItem, error) {
	it := &entity.InvoiceItem{
		ProductID:   req.ProductID,
		Code:        req.Code,
		Description: req.Description,
		NCM:         req.NCM,
		CFOP:        req.CFOP,
		Unit:        req.Unit,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		EAN:         req.EAN,
		Origin:      req.Origin,
		CSOSN:       req.CSOSN,
		CSTPIS:      req.CSTPIS,
		CSTCOFINS:   req.CSTCOFINS,
	}
	if req.ProductID != "" {
		p, err := uc.productRepo.GetByID(ctx, userID, req.ProductID)
		if err != nil {
			return nil, fmt.Errorf("obter produto: %w", err)
		}
		if p == nil {
			return nil, fmt.Errorf("%w: produto %s", domain.ErrNotFound, req.ProductID)
		}
		it.Code = orDefault(it.Code, p.Code)
		it.Description = orDefault(it.Description, p.Description)
		it.NCM = orDefault(it.NCM, p.NCM)
		it.CFOP = orDefault(it.CFOP, p.CFOP)
		it.Unit = orDefault(it.Unit, p.Unit)
		it.EAN = orDefault(it.EAN, p.EAN)
		it.Origin = orDefault(it.Origin, p.Origin)
		it.CSOSN = orDefault(it.CSOSN, p.CSOSN)
		it.CSTPIS = orDefault(it.CSTPIS, p.CSTPIS)
		it.CSTCOFINS = orDefault(it.CSTCOFINS, p.CSTCOFINS)
		if it.UnitPrice.IsZero() {
			it.UnitPrice = p.UnitPrice
		}
	}

	it.CFOP = orDefault(it.CFOP, "5102")
	it.Unit = orDefault(it.Unit, "UN")
	it.EAN = orDefault(it.EAN, nfe.NoGTIN)
	it.Origin = orDefault(it.Origin, nfe.DefaultOrigin)
	it.CSOSN = orDefault(it.CSOSN, nfe.DefaultCSOSN)
	it.CSTPIS = orDefault(it.CSTPIS, nfe.DefaultCSTPis)
	it.CSTCOFINS = orDefault(it.CSTCOFINS, nfe.DefaultCSTCof)

	switch {
	case it.Code == "" || it.Description == "" || it.NCM == "":
		return nil, fmt.Errorf("%w: código, descrição e NCM são obrigatórios", domain.ErrInvalidInput)
	case !it.Quantity.IsPositive():
		return nil, fmt.Errorf("%w: quantidade deve ser maior que zero", domain.ErrInvalidInput)
	case it.UnitPrice.IsNegative():
		return nil, fmt.Errorf("%w: valor unitário não pode ser negativo", domain.ErrInvalidInput)
	case !fitsScale(it.Quantity, 4) || !fitsScale(it.UnitPrice, 4):
		return nil, fmt.Errorf("%w: quantidade e valor unitário aceitam no máximo 4 casas decimais", domain.ErrInvalidInput)
	}
	return it, nil
}

// fitsScale indica se v não tem dígitos significativos além de places casas.
func fitsScale(v decimal.Decimal, places int32) bool {
	return v.Equal(v.Truncate(places))
}

func xmlFilename(accessKey, number string) string {
	if accessKey != "" {
		return "NFe" + accessKey + ".xml"
	}
	return "NFe-" + number + ".xml"
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func toInvoiceResponse(inv *entity.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:                inv.ID,
		Number:            inv.Number,
		Series:            inv.Series,
		OperationNature:   inv.OperationNature,
		OperationType:     inv.OperationType,
		Purpose:           inv.Purpose,
		PresenceIndicator: inv.PresenceIndicator,
		IssueDate:         inv.IssueDate,
		IssueTime:         inv.IssueTime,
		ExitDate:          inv.ExitDate,
		ExitTime:          inv.ExitTime,
		DestName:          inv.DestName,
		DestPersonType:    inv.DestPersonType,
		DestTaxID:         inv.DestTaxID,
		DestUF:            inv.DestUF,
		DestCity:          inv.DestCity,
		FinalConsumer:     inv.FinalConsumer,
		ProductsTotal:     inv.ProductsTotal,
		Freight:           inv.Freight,
		Insurance:         inv.Insurance,
		OtherExpenses:     inv.OtherExpenses,
		Discount:          inv.Discount,
		Total:             inv.Total,
		FreightMode:       inv.FreightMode,
		AdditionalInfo:    inv.AdditionalInfo,
		Status:            inv.Status,
		Environment:       inv.Environment,
		AccessKey:         inv.AccessKey,
		Protocol:          inv.Protocol,
		Receipt:           inv.Receipt,
		StatusCode:        inv.StatusCode,
		RejectionReason:   inv.RejectionReason,
		ReceivedAt:        inv.ReceivedAt,
		CreatedAt:         inv.CreatedAt,
		UpdatedAt:         inv.UpdatedAt,
	}
}

func toInvoiceDetail(inv *entity.Invoice, items []*entity.InvoiceItem) *dto.InvoiceDetailResponse {
	out := &dto.InvoiceDetailResponse{
		Invoice: toInvoiceResponse(inv),
		Items:   make([]dto.InvoiceItemResponse, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.InvoiceItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			Position:    it.Position,
			Code:        it.Code,
			Description: it.Description,
			NCM:         it.NCM,
			CFOP:        it.CFOP,
			Unit:        it.Unit,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Total,
			EAN:         it.EAN,
			Origin:      it.Origin,
			CSOSN:       it.CSOSN,
			CSTPIS:      it.CSTPIS,
			CSTCOFINS:   it.CSTCOFINS,
		})
	}
	return out
}
