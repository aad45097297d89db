package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound              = errors.New("recurso não encontrado")
	ErrUserNotFound          = errors.New("usuário não encontrado")
	ErrUsernameAlreadyExists = errors.New("o usuário já está cadastrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("não autorizado")
	ErrForbidden             = errors.New("acesso negado")
	ErrConflict              = errors.New("conflito com o estado atual")
	ErrEmissionConflict      = errors.New("a nota mudou de estado ou já está em emissão")
	ErrInvoiceNotEditable    = errors.New("a nota só pode ser editada em rascunho, rejeitada ou com erro de assinatura")
	ErrEmitterNotConfigured  = errors.New("dados do emitente não configurados")
	ErrInvalidCertificate    = errors.New("certificado A1 inválido")
)
