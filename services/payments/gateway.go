package main

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// DeclineError sinaliza uma recusa de negócio do adquirente, em
// oposição a uma falha técnica. Reason é o texto devolvido ao cliente.
type DeclineError struct {
	Reason string
}

func (e *DeclineError) Error() string {
	return e.Reason
}

// declineReasons são os motivos de recusa simulados pelo gateway
var declineReasons = []string{
	"Insufficient funds",
	"Card declined",
	"Invalid card number",
	"Payment gateway timeout",
	"Transaction limit exceeded",
}

// CardGateway abstrai o adquirente externo
type CardGateway interface {
	// Capture envia a cobrança ao adquirente e retorna a referência
	// externa da captura
	Capture(amount float64, currency, paymentMethod string) (string, error)

	// Refund estorna uma captura e retorna a referência do estorno
	Refund(gatewayRef string, amount float64) (string, error)
}

// MockCardGateway simula um adquirente: latência de 100-500ms e uma
// taxa configurável de aprovação. Recusas usam motivos fixos.
type MockCardGateway struct {
	successRate float64
	rng         *rand.Rand
	sleep       func(time.Duration)
}

// NewMockCardGateway cria uma nova instância de MockCardGateway
func NewMockCardGateway(successRate float64) *MockCardGateway {
	return &MockCardGateway{
		successRate: successRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:       time.Sleep,
	}
}

func (g *MockCardGateway) Capture(amount float64, currency, paymentMethod string) (string, error) {
	g.sleep(time.Duration(100+g.rng.Intn(400)) * time.Millisecond)

	if g.rng.Float64() >= g.successRate {
		return "", &DeclineError{Reason: declineReasons[g.rng.Intn(len(declineReasons))]}
	}

	return "MOCK_" + uuid.New().String(), nil
}

func (g *MockCardGateway) Refund(gatewayRef string, amount float64) (string, error) {
	g.sleep(time.Duration(100+g.rng.Intn(400)) * time.Millisecond)

	// Estornos de capturas já aceitas nunca são recusados pelo mock
	return "REFUND_" + uuid.New().String(), nil
}
