package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nfe-emissor/internal/application/billing"
	"github.com/jhoicas/nfe-emissor/internal/application/dto"
)

// CertificateHandler trata upload, listagem e remoção de certificados A1.
type CertificateHandler struct {
	uc *billing.CertificateUseCase
}

// NewCertificateHandler constrói o handler.
func NewCertificateHandler(uc *billing.CertificateUseCase) *CertificateHandler {
	return &CertificateHandler{uc: uc}
}

// Upload godoc
// @Summary      Enviar certificado A1
// @Description  Valida o .pfx e a senha. O novo certificado passa a ser o único ativo.
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UploadCertificateRequest  true  "pfx em base64 e senha"
// @Success      201   {object}  dto.CertificateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/certificates [post]
func (h *CertificateHandler) Upload(c *fiber.Ctx) error {
	var in dto.UploadCertificateRequest
	if e := bindJSON(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Upload(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar certificados
// @Description  Conteúdo do .pfx e senha vêm mascarados.
// @Tags         certificates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  dto.CertificateResponse
// @Router       /api/certificates [get]
func (h *CertificateHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Remover certificado
// @Tags         certificates
// @Security     BearerAuth
// @Param        id   path  string  true  "ID do certificado"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/certificates/{id} [delete]
func (h *CertificateHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
