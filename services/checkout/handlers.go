package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// CheckoutUseCaseInterface define a interface para o use case
type CheckoutUseCaseInterface interface {
	ProcessCheckout(ctx context.Context, userID string, req CheckoutRequest) *CheckoutResult
}

// CheckoutHandler contém os handlers HTTP
type CheckoutHandler struct {
	useCase CheckoutUseCaseInterface
	tracer  trace.Tracer
}

// NewCheckoutHandler cria uma nova instância de CheckoutHandler
func NewCheckoutHandler(useCase CheckoutUseCaseInterface, tracer trace.Tracer) *CheckoutHandler {
	return &CheckoutHandler{
		useCase: useCase,
		tracer:  tracer,
	}
}

// Checkout processa o checkout do usuário autenticado. O user id chega
// no header X-User-Id, setado pelo gateway após validar o JWT, e é
// propagado como argumento explícito por todas as camadas.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "process_checkout")
	defer span.End()

	userID := c.GetHeader("X-User-Id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, FailureResult(FailurePrecondition, "Missing required header: X-User-Id"))
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, FailureResult(FailurePrecondition, err.Error()))
		return
	}

	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("payment_method", req.PaymentMethod),
	)

	result := h.useCase.ProcessCheckout(ctx, userID, req)

	span.SetAttributes(
		attribute.Bool("checkout.success", result.Success),
		attribute.String("order_id", result.OrderID),
	)

	if !result.Success {
		c.JSON(statusForKind(result.FailureKind), result)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HealthCheck verifica a saúde do serviço
func (h *CheckoutHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "checkout-service",
	})
}

// statusForKind mapeia o tipo de falha terminal para o status HTTP:
// 4xx para falhas de negócio, 502 para collaborator indisponível
func statusForKind(kind FailureKind) int {
	switch kind {
	case FailurePrecondition:
		return http.StatusBadRequest
	case FailureBusinessRejection:
		return http.StatusConflict
	case FailureUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
