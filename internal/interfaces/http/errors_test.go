package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nfe-emissor/internal/domain"
	nfedomain "github.com/jhoicas/nfe-emissor/internal/domain/nfe"
)

func statusFor(t *testing.T, err error) (int, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return respondError(c, err) })
	resp, e := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, e)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestRespondError_Mapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("nota: %w", domain.ErrNotFound), http.StatusNotFound},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrDuplicate, http.StatusConflict},
		{domain.ErrInvoiceNotEditable, http.StatusConflict},
		{domain.ErrUsernameAlreadyExists, http.StatusConflict},
		{fmt.Errorf("%w: total negativo", domain.ErrInvalidInput), http.StatusBadRequest},
		{domain.ErrEmitterNotConfigured, http.StatusBadRequest},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		got, _ := statusFor(t, tc.err)
		assert.Equal(t, tc.want, got, tc.err.Error())
	}
}

func TestRespondError_JoinedValidationIsOneLine(t *testing.T) {
	err := errors.Join(nfedomain.ErrInvalidDocument, errors.New("CPF do destinatário inválido: 123"))
	status, body := statusFor(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "VALIDATION")
	assert.Contains(t, body, "; CPF do destinatário inválido: 123")
}

func TestRespondError_InternalHidesDetails(t *testing.T) {
	_, body := statusFor(t, errors.New("senha do banco: hunter2"))
	assert.NotContains(t, body, "hunter2")
	assert.Contains(t, body, "INTERNAL")
}
