package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nfe-emissor/internal/application/billing"
	"github.com/jhoicas/nfe-emissor/internal/application/dto"
	"github.com/jhoicas/nfe-emissor/pkg/validate"
)

// InvoiceHandler trata CRUD de notas, emissão e downloads (XML e DANFE).
type InvoiceHandler struct {
	invoices *billing.InvoiceUseCase
	emission *billing.EmissionOrchestrator
	danfe    *billing.DanfeUseCase
}

// NewInvoiceHandler constrói o handler.
func NewInvoiceHandler(invoices *billing.InvoiceUseCase, emission *billing.EmissionOrchestrator, danfe *billing.DanfeUseCase) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, emission: emission, danfe: danfe}
}

// Create godoc
// @Summary      Criar nota fiscal (rascunho)
// @Description  Número sequencial por usuário; totais calculados no servidor.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.InvoiceRequest  true  "cabeçalho e itens"
// @Success      201   {object}  dto.InvoiceDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if e := bindJSON(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.invoices.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obter nota fiscal com itens
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "ID da nota"
// @Success      200  {object}  dto.InvoiceDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [get]
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.invoices.Get(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar notas fiscais
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query  int  false  "limite (padrão 20)"
// @Param        offset  query  int  false  "deslocamento"
// @Success      200  {object}  dto.InvoiceListResponse
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	out, err := h.invoices.List(c.UserContext(), GetUserID(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Replace godoc
// @Summary      Substituir nota fiscal
// @Description  Só em rascunho, rejeitada ou erro de assinatura. Limpa os artefatos da SEFAZ.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string              true  "ID da nota"
// @Param        body  body  dto.InvoiceRequest  true  "cabeçalho e itens"
// @Success      200   {object}  dto.InvoiceDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [put]
func (h *InvoiceHandler) Replace(c *fiber.Ctx) error {
	var in dto.InvoiceRequest
	if e := bindJSON(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.invoices.Replace(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Remover nota fiscal
// @Tags         invoices
// @Security     BearerAuth
// @Param        id   path  string  true  "ID da nota"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.invoices.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Emit godoc
// @Summary      Emitir NF-e
// @Description  Gera, assina e transmite a nota à SEFAZ. Pré-condições não atendidas respondem 422
// @Description  sem alterar a nota; autorização e rejeição respondem 200 com success true/false.
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string           true   "ID da nota"
// @Param        body  body  dto.EmitRequest  false  "ambiente: 1 produção, 2 homologação"
// @Success      200   {object}  dto.EmitResponse
// @Failure      422   {object}  dto.EmitResponse
// @Router       /api/invoices/{id}/emit [post]
func (h *InvoiceHandler) Emit(c *fiber.Ctx) error {
	var in dto.EmitRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeValidation, Message: "corpo da requisição inválido"})
		}
		if err := validate.Struct(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeValidation, Message: err.Error()})
		}
	}
	res, err := h.emission.Emit(c.UserContext(), GetUserID(c), c.Params("id"), in.Environment)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.EmitResponse{
		Success:   res.Success,
		Message:   res.Message,
		AccessKey: res.AccessKey,
		Protocol:  res.Protocol,
		Status:    res.Status,
	}
	if !res.Success && res.Status == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(out)
	}
	return c.JSON(out)
}

// DownloadXML godoc
// @Summary      Baixar XML da NF-e
// @Description  XML assinado; sem ele, o XML gerado; sem nenhum, uma prévia montada na hora.
// @Tags         invoices
// @Produce      application/xml
// @Security     BearerAuth
// @Param        id   path  string  true  "ID da nota"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/xml [get]
func (h *InvoiceHandler) DownloadXML(c *fiber.Ctx) error {
	body, filename, err := h.invoices.DownloadXML(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, body, filename, "application/xml; charset=utf-8")
}

// DownloadDanfe godoc
// @Summary      Baixar DANFE (PDF)
// @Tags         invoices
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id   path  string  true  "ID da nota"
// @Success      200  {file}    file
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/invoices/{id}/danfe [get]
func (h *InvoiceHandler) DownloadDanfe(c *fiber.Ctx) error {
	body, filename, err := h.danfe.DownloadDanfe(c.UserContext(), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, body, filename, "application/pdf")
}
