package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"mdtree/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-1")
	ctx = services.WithDocument(ctx, "demo")
	ctx = services.WithPhase(ctx, "test")

	id, ok := services.RunIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "run-1", id)
	doc, ok := services.DocumentFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "demo", doc)
	phase, ok := services.PhaseFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "test", phase)
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithDocument(ctx, "")
	ctx = services.WithPhase(ctx, "")
	_, ok := services.DocumentFromContext(ctx)
	assert.False(t, ok, "expected no document value")
	_, ok = services.PhaseFromContext(ctx)
	assert.False(t, ok, "expected no phase value")
}
