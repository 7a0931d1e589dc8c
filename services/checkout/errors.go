package main

import "fmt"

// FailureKind classifica as falhas terminais do checkout para que o
// caller possa ramificar pelo tipo ao invés de inspecionar a mensagem.
type FailureKind string

const (
	// FailureUpstreamUnavailable indica falha de transporte ou erro de
	// aplicação de um collaborator
	FailureUpstreamUnavailable FailureKind = "upstream_unavailable"
	// FailureBusinessRejection indica que um collaborator recusou a
	// operação explicitamente (sem estoque, pagamento recusado)
	FailureBusinessRejection FailureKind = "business_rejection"
	// FailurePrecondition indica estado inválido detectado localmente,
	// sem nenhuma chamada remota feita
	FailurePrecondition FailureKind = "precondition_failure"
)

// CheckoutError carrega o tipo de falha junto com a causa
type CheckoutError struct {
	Kind    FailureKind
	Message string
	cause   error
}

func (e *CheckoutError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *CheckoutError) Unwrap() error {
	return e.cause
}

// NewUpstreamError cria um CheckoutError de indisponibilidade de collaborator
func NewUpstreamError(message string, cause error) *CheckoutError {
	return &CheckoutError{Kind: FailureUpstreamUnavailable, Message: message, cause: cause}
}

// NewBusinessError cria um CheckoutError de recusa de negócio
func NewBusinessError(message string) *CheckoutError {
	return &CheckoutError{Kind: FailureBusinessRejection, Message: message}
}

// kindOf extrai o FailureKind de um erro; erros não classificados são
// tratados como indisponibilidade de collaborator
func kindOf(err error) FailureKind {
	if ce, ok := err.(*CheckoutError); ok {
		return ce.Kind
	}
	return FailureUpstreamUnavailable
}

// reasonOf extrai a mensagem legível de um erro classificado
func reasonOf(err error) string {
	if ce, ok := err.(*CheckoutError); ok {
		return ce.Message
	}
	return err.Error()
}
