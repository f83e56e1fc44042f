package domain

import "errors"

var (
	// ErrCertificacaoNotFound is returned when a certification id does not exist.
	ErrCertificacaoNotFound = errors.New("certificação não encontrada")
	// ErrPerguntaNotFound is returned when a question id does not exist.
	ErrPerguntaNotFound = errors.New("pergunta não encontrada")
	// ErrUsuarioNotFound is returned when a user id does not exist.
	ErrUsuarioNotFound = errors.New("usuário não encontrado")
	// ErrVinculoNotFound indicates no user-certification link matched.
	ErrVinculoNotFound = errors.New("relação não encontrada")
	// ErrEmailEmUso rejects user creation with an already-registered email.
	ErrEmailEmUso = errors.New("email já cadastrado")
	// ErrVinculoDuplicado rejects a duplicate user-certification link when the
	// uniqueness constraint is enabled.
	ErrVinculoDuplicado = errors.New("usuário já possui esta certificação")
)
