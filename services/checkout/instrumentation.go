package main

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// StartSagaStepSpan cria um span para um passo da SAGA de checkout
func StartSagaStepSpan(ctx context.Context, stepName string, sc *SagaContext) (context.Context, trace.Span) {
	tracer := otel.Tracer("checkout-saga")
	ctx, span := tracer.Start(ctx, "saga.step."+stepName)

	span.SetAttributes(
		attribute.String("saga.step", stepName),
		attribute.String("saga.state", sc.State),
		attribute.String("saga.user_id", sc.UserID),
		attribute.String("component", "checkout-orchestrator"),
	)
	if sc.OrderID != "" {
		span.SetAttributes(attribute.String("saga.order_id", sc.OrderID))
	}

	return ctx, span
}

// StartCompensationSpan cria um span cobrindo a compensação, anotando
// quais passos serão desfeitos
func StartCompensationSpan(ctx context.Context, sc *SagaContext) (context.Context, trace.Span) {
	tracer := otel.Tracer("checkout-saga")
	ctx, span := tracer.Start(ctx, "saga.compensate")

	span.SetAttributes(
		attribute.String("saga.state", sc.State),
		attribute.String("saga.order_id", sc.OrderID),
		attribute.Bool("saga.inventory_reserved", sc.InventoryReserved),
		attribute.Bool("saga.payment_captured", sc.TransactionID != ""),
		attribute.String("component", "checkout-orchestrator"),
	)

	return ctx, span
}
