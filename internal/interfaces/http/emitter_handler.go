package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/nfe-emissor/internal/application/billing"
	"github.com/jhoicas/nfe-emissor/internal/application/dto"
)

// EmitterHandler trata os dados do emitente (um por usuário).
type EmitterHandler struct {
	uc *billing.EmitterUseCase
}

// NewEmitterHandler constrói o handler.
func NewEmitterHandler(uc *billing.EmitterUseCase) *EmitterHandler {
	return &EmitterHandler{uc: uc}
}

// Get godoc
// @Summary      Obter emitente
// @Description  Devolve null quando o emitente ainda não foi cadastrado.
// @Tags         emitter
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.EmitterResponse
// @Router       /api/emitter [get]
func (h *EmitterHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	if out == nil {
		return c.JSON(nil)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Criar ou atualizar emitente
// @Description  Sem codigo_municipio, o código IBGE é resolvido pela cidade e UF.
// @Tags         emitter
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.EmitterRequest  true  "dados do emitente"
// @Success      200   {object}  dto.EmitterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/emitter [post]
// @Router       /api/emitter [put]
func (h *EmitterHandler) Save(c *fiber.Ctx) error {
	var in dto.EmitterRequest
	if e := bindJSON(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Save(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
