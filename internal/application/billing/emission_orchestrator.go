package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/nfe-emissor/internal/domain"
	"github.com/jhoicas/nfe-emissor/internal/domain/entity"
	nfedomain "github.com/jhoicas/nfe-emissor/internal/domain/nfe"
	"github.com/jhoicas/nfe-emissor/internal/domain/repository"
	"github.com/jhoicas/nfe-emissor/internal/infrastructure/sefaz"
	"github.com/jhoicas/nfe-emissor/pkg/nfe"
)

// EmissionConfig parâmetros do ciclo de emissão.
type EmissionConfig struct {
	// PollDelay intervalo antes da única consulta do recibo (cStat 103).
	PollDelay time.Duration
	// DefaultEnvironment tpAmb usado quando a requisição não informa o ambiente.
	DefaultEnvironment string
	// StaleAfter tempo sem atualização a partir do qual uma nota em processing é
	// considerada abandonada (processo caiu ou a persistência final falhou) e pode
	// ser emitida de novo. Deve cobrir envio + espera + consulta.
	StaleAfter time.Duration
}

// DefaultEmissionConfig 3 s de espera, homologação e orçamento de 2×30 s + espera.
func DefaultEmissionConfig() EmissionConfig {
	return EmissionConfig{
		PollDelay:          3 * time.Second,
		DefaultEnvironment: nfe.EnvironmentHomologation,
		StaleAfter:         EmissionBudget(30*time.Second, 3*time.Second),
	}
}

// EmissionBudget duração máxima de uma emissão: duas chamadas SOAP mais a espera do recibo.
func EmissionBudget(soapTimeout, pollDelay time.Duration) time.Duration {
	return 2*soapTimeout + pollDelay
}

// EmitResult resultado de uma tentativa de emissão, pronto para a resposta HTTP.
type EmitResult struct {
	Success   bool
	Message   string
	AccessKey string
	Protocol  string
	Status    string
}

func failure(msg string) *EmitResult { return &EmitResult{Success: false, Message: msg} }

// EmissionOrchestrator orquestra o ciclo completo de emissão da NF-e:
//
//	Pré-condições → XML → Assinatura XML-DSig → Envio SOAP → (Consulta do recibo) → Update DB
//
// A emissão é síncrona e sequencial: a resposta HTTP só volta com o veredito final.
// Máquina de estados:
//
//	draft|rejected|signature_error → processing → authorized | rejected | signature_error
type EmissionOrchestrator struct {
	invoiceRepo repository.InvoiceRepository
	emitterRepo repository.EmitterRepository
	certRepo    repository.CertificateRepository
	builder     DocumentBuilder
	extractor   nfe.CertificateExtractor
	signer      nfe.Signer
	submitter   sefaz.SefazSubmitter
	cfg         EmissionConfig
	logger      zerolog.Logger
	now         func() time.Time
}

// NewEmissionOrchestrator constrói o orquestrador com todas as suas dependências.
func NewEmissionOrchestrator(
	invoiceRepo repository.InvoiceRepository,
	emitterRepo repository.EmitterRepository,
	certRepo repository.CertificateRepository,
	builder DocumentBuilder,
	extractor nfe.CertificateExtractor,
	signer nfe.Signer,
	submitter sefaz.SefazSubmitter,
	cfg EmissionConfig,
	logger zerolog.Logger,
) *EmissionOrchestrator {
	if cfg.DefaultEnvironment == "" {
		cfg.DefaultEnvironment = nfe.EnvironmentHomologation
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = DefaultEmissionConfig().StaleAfter
	}
	return &EmissionOrchestrator{
		invoiceRepo: invoiceRepo,
		emitterRepo: emitterRepo,
		certRepo:    certRepo,
		builder:     builder,
		extractor:   extractor,
		signer:      signer,
		submitter:   submitter,
		cfg:         cfg,
		logger:      logger.With().Str("component", "emission").Logger(),
		now:         time.Now,
	}
}

// WithClock substitui o relógio usado na verificação de validade do certificado.
func (o *EmissionOrchestrator) WithClock(now func() time.Time) *EmissionOrchestrator {
	o.now = now
	return o
}

// Emit executa a emissão da nota invoiceID do usuário userID.
// environment vazio usa o ambiente padrão da configuração.
//
// Falhas de pré-condição e vereditos da SEFAZ voltam em EmitResult; error só é
// devolvido quando a persistência falha.
func (o *EmissionOrchestrator) Emit(ctx context.Context, userID, invoiceID, environment string) (*EmitResult, error) {
	log := o.logger.With().Str("invoice_id", invoiceID).Logger()

	// ═══════════════════════════════════════════════════════════════════════════
	// 0. Pré-condições (nenhuma mudança de estado)
	// ═══════════════════════════════════════════════════════════════════════════
	inv, err := o.invoiceRepo.GetByID(ctx, userID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("emissão: obter nota: %w", err)
	}
	if inv == nil {
		return failure("Nota fiscal não encontrada"), nil
	}
	switch inv.Status {
	case entity.InvoiceStatusAuthorized:
		return failure("Esta nota já foi autorizada"), nil
	case entity.InvoiceStatusProcessing:
		if o.now().Sub(inv.UpdatedAt) <= o.cfg.StaleAfter {
			return failure("Esta nota já está em processamento"), nil
		}
		log.Warn().Time("updated_at", inv.UpdatedAt).Msg("emissão anterior abandonada em processing; reemitindo")
	}

	if environment == "" {
		environment = o.cfg.DefaultEnvironment
	}
	if !nfe.IsValidEnvironment(environment) {
		return failure("Ambiente inválido. Use 1 (produção) ou 2 (homologação)"), nil
	}

	emitter, err := o.emitterRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("emissão: obter emitente: %w", err)
	}
	if emitter == nil {
		return failure("Dados do emitente não configurados"), nil
	}

	items, err := o.invoiceRepo.GetItems(ctx, inv.ID)
	if err != nil {
		return nil, fmt.Errorf("emissão: obter itens: %w", err)
	}
	if len(items) == 0 {
		return failure("A nota fiscal não possui itens"), nil
	}

	stored, err := o.certRepo.GetActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("emissão: obter certificado: %w", err)
	}
	if stored == nil {
		return failure("Nenhum certificado A1 ativo encontrado"), nil
	}
	cert, err := o.extractor.Extract(stored.PFXBase64, stored.Password)
	if err != nil {
		log.Warn().Err(err).Str("step", "certificate").Msg("certificado ilegível")
		return failure("Erro ao ler certificado: " + err.Error()), nil
	}
	if cert.ExpiredAt(o.now()) {
		return failure("O certificado A1 está expirado"), nil
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// 1. Validar e montar o XML (erros aqui ainda não mudam o estado)
	// ═══════════════════════════════════════════════════════════════════════════
	if err := nfedomain.ValidateInvoice(inv, items, emitter); err != nil {
		log.Warn().Err(err).Str("step", "validate").Msg("nota inválida para emissão")
		return failure(validationMessage(err)), nil
	}
	built, err := o.builder.Build(&sefaz.BuildInput{
		Invoice:     inv,
		Items:       items,
		Emitter:     emitter,
		Environment: environment,
	})
	if err != nil {
		log.Warn().Err(err).Str("step", "build").Msg("dados inválidos para o XML")
		return failure(err.Error()), nil
	}

	// A partir daqui a nota sempre termina num estado persistido, mesmo que o
	// cliente HTTP desista da requisição.
	persistCtx := context.WithoutCancel(ctx)

	// persist grava a atualização parcial; falha de storage interrompe a emissão.
	persist := func(step string, upd entity.EmissionUpdate) error {
		if err := o.invoiceRepo.UpdateEmission(persistCtx, inv.ID, upd); err != nil {
			log.Error().Err(err).Str("step", step).Msg("não foi possível persistir o estado")
			return fmt.Errorf("emissão: persistir %s: %w", step, err)
		}
		return nil
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// 2. Persistir XML sem assinatura → processing (compare-and-set)
	// ═══════════════════════════════════════════════════════════════════════════
	// Os artefatos de uma tentativa anterior (rejeitada) são descartados. Se outra
	// emissão começou ou a nota foi editada depois da leitura, nada é gravado.
	if err := o.invoiceRepo.StartEmission(ctx, inv, o.cfg.StaleAfter, entity.EmissionUpdate{
		Status:          entity.Str(entity.InvoiceStatusProcessing),
		Environment:     entity.Str(environment),
		AccessKey:       entity.Str(built.AccessKey),
		XMLContent:      entity.Str(string(built.XML)),
		XMLSigned:       entity.Str(""),
		XMLProtocol:     entity.Str(""),
		Protocol:        entity.Str(""),
		Receipt:         entity.Str(""),
		StatusCode:      entity.Str(""),
		RejectionReason: entity.Str(""),
		ReceivedAt:      entity.Str(""),
	}); err != nil {
		if errors.Is(err, domain.ErrEmissionConflict) {
			log.Warn().Str("step", "processing").Msg("nota alterada ou em emissão concorrente")
			return failure(o.conflictMessage(ctx, userID, invoiceID)), nil
		}
		log.Error().Err(err).Str("step", "processing").Msg("não foi possível persistir o estado")
		return nil, fmt.Errorf("emissão: persistir processing: %w", err)
	}
	log.Info().Str("step", "build").Str("access_key", built.AccessKey).Str("environment", environment).Msg("XML gerado")

	// ═══════════════════════════════════════════════════════════════════════════
	// 3. Assinatura XML-DSig
	// ═══════════════════════════════════════════════════════════════════════════
	signed, err := o.signer.Sign(built.XML, cert)
	if err != nil {
		log.Error().Err(err).Str("step", "sign").Msg("falha na assinatura")
		if pErr := persist("signature_error", entity.EmissionUpdate{
			Status:          entity.Str(entity.InvoiceStatusSignatureError),
			RejectionReason: entity.Str("Erro na assinatura: " + err.Error()),
		}); pErr != nil {
			return nil, pErr
		}
		return &EmitResult{
			Success:   false,
			Message:   "Erro ao assinar XML: " + err.Error(),
			AccessKey: built.AccessKey,
			Status:    entity.InvoiceStatusSignatureError,
		}, nil
	}
	if err := persist("signed", entity.EmissionUpdate{XMLSigned: entity.Str(string(signed))}); err != nil {
		return nil, err
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// 4. Envio à SEFAZ (NFeAutorizacao4)
	// ═══════════════════════════════════════════════════════════════════════════
	res := o.submitter.Submit(ctx, signed, emitter.UF, environment, cert)
	log.Info().Str("step", "submit").Str("cstat", res.StatusCode).Str("uf", emitter.UF).Msg(res.Reason)

	// ═══════════════════════════════════════════════════════════════════════════
	// 5. Lote em processamento (103) → espera e consulta única do recibo
	// ═══════════════════════════════════════════════════════════════════════════
	if res.StatusCode == sefaz.StatusBatchReceived && res.Receipt != "" {
		if err := persist("receipt", entity.EmissionUpdate{
			Receipt:    entity.Str(res.Receipt),
			StatusCode: entity.Str(res.StatusCode),
		}); err != nil {
			return nil, err
		}

		if err := o.wait(ctx); err != nil {
			res = &sefaz.AuthorityResult{
				StatusCode: sefaz.StatusTransportError,
				Reason:     "Consulta do recibo interrompida: " + err.Error(),
			}
		} else {
			res = o.submitter.PollReceipt(ctx, res.Receipt, emitter.UF, environment, cert)
		}
		log.Info().Str("step", "poll").Str("cstat", res.StatusCode).Msg(res.Reason)
	}

	// ═══════════════════════════════════════════════════════════════════════════
	// 6. Veredito final
	// ═══════════════════════════════════════════════════════════════════════════
	if res.Success {
		if err := persist("authorized", entity.EmissionUpdate{
			Status:          entity.Str(entity.InvoiceStatusAuthorized),
			Protocol:        entity.Str(res.Protocol),
			ReceivedAt:      entity.Str(res.ReceivedAt),
			XMLProtocol:     entity.Str(res.RawResponse),
			StatusCode:      entity.Str(res.StatusCode),
			RejectionReason: entity.Str(""),
		}); err != nil {
			return nil, err
		}
		return &EmitResult{
			Success:   true,
			Message:   "NF-e autorizada! Protocolo: " + res.Protocol,
			AccessKey: built.AccessKey,
			Protocol:  res.Protocol,
			Status:    entity.InvoiceStatusAuthorized,
		}, nil
	}

	if err := persist("rejected", entity.EmissionUpdate{
		Status:          entity.Str(entity.InvoiceStatusRejected),
		StatusCode:      entity.Str(res.StatusCode),
		RejectionReason: entity.Str(res.Reason),
	}); err != nil {
		return nil, err
	}
	return &EmitResult{
		Success:   false,
		Message:   fmt.Sprintf("NF-e rejeitada: %s - %s", res.StatusCode, res.Reason),
		AccessKey: built.AccessKey,
		Status:    entity.InvoiceStatusRejected,
	}, nil
}

// conflictMessage explica por que o compare-and-set de processing falhou.
func (o *EmissionOrchestrator) conflictMessage(ctx context.Context, userID, invoiceID string) string {
	cur, err := o.invoiceRepo.GetByID(ctx, userID, invoiceID)
	if err != nil || cur == nil {
		return "A nota foi alterada durante a emissão. Tente novamente"
	}
	switch cur.Status {
	case entity.InvoiceStatusProcessing:
		return "Esta nota já está em processamento"
	case entity.InvoiceStatusAuthorized:
		return "Esta nota já foi autorizada"
	}
	return "A nota foi alterada durante a emissão. Tente novamente"
}

// validationMessage devolve só os problemas encontrados, sem o prefixo do erro agregado.
func validationMessage(err error) string {
	lines := strings.Split(err.Error(), "\n")
	if errors.Is(err, nfedomain.ErrInvalidDocument) && len(lines) > 1 && lines[0] == nfedomain.ErrInvalidDocument.Error() {
		lines = lines[1:]
	}
	return strings.Join(lines, "; ")
}

// wait aguarda PollDelay ou o cancelamento do contexto.
func (o *EmissionOrchestrator) wait(ctx context.Context) error {
	if o.cfg.PollDelay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(o.cfg.PollDelay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
