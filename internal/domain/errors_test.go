package domain_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ainft-labs/ainft-sync/internal/domain"
)

func TestCodeOf(t *testing.T) {
	assert.Equal(t, domain.ErrCodeNotFound, domain.CodeOf(domain.NewNotFound("missing")))
	assert.Equal(t, domain.ErrCodePermissionDenied, domain.CodeOf(domain.NewPermissionDenied("denied")))
	assert.Equal(t, domain.ErrCodeAlreadyExists, domain.CodeOf(domain.NewAlreadyExists("dup")))
	assert.Equal(t, domain.ErrCodeUnavailable, domain.CodeOf(domain.NewUnavailable("down")))
	assert.Equal(t, domain.ErrCodeDeadlineExceeded, domain.CodeOf(domain.NewDeadlineExceeded("slow")))
	assert.Equal(t, domain.ErrCodePayloadTooLarge, domain.CodeOf(domain.NewPayloadTooLarge("big")))
	assert.Equal(t, domain.ErrCodeInternal, domain.CodeOf(errors.New("plain")))
}

func TestCodeOf_Wrapped(t *testing.T) {
	inner := domain.NewUnavailable("service down")
	wrapped := fmt.Errorf("invoke failed: %w", inner)
	assert.Equal(t, domain.ErrCodeUnavailable, domain.CodeOf(wrapped))
	assert.True(t, domain.IsCode(wrapped, domain.ErrCodeUnavailable))
	assert.False(t, domain.IsCode(nil, domain.ErrCodeUnavailable))
}

func TestErrorContext(t *testing.T) {
	err := domain.NewDeadlineExceeded("run timed out").WithRun("run_1").WithTx("tx_1")
	assert.Equal(t, "run_1", err.RunID)
	assert.Equal(t, "tx_1", err.TxID)

	provider := domain.NewProviderError(json.RawMessage(`{"reason":"quota"}`), "provider failure")
	assert.Equal(t, domain.ErrCodeProviderError, provider.Code)
	assert.JSONEq(t, `{"reason":"quota"}`, string(provider.ProviderPayload))
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := domain.WrapError(domain.ErrCodeUnavailable, cause, "bridge call failed")
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "unavailable")
	assert.Contains(t, err.Error(), "connection refused")
}
