package goGrant

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventTokenCacheHit      = "token_cache_hit"
	auditEventAssertionExpired   = "assertion_expired"
	auditEventExchangeStarted    = "exchange_started"
	auditEventExchangeSuccess    = "exchange_success"
	auditEventExchangeFailure    = "exchange_failure"
	auditEventDeauthorize        = "deauthorize"
	auditEventStoreWriteSuppress = "store_write_suppressed"
)

// AuditErrorCode defines a public type used by goGrant APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrNotAuthorized    AuditErrorCode = "not_authorized"
	auditErrAssertionExpired AuditErrorCode = "assertion_expired"
	auditErrMalformed        AuditErrorCode = "assertion_malformed"
	auditErrExchangeFailed   AuditErrorCode = "exchange_failed"
	auditErrInternal         AuditErrorCode = "internal_error"
)

func (s *Strategy) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	exchangeID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if s == nil || s.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp:  time.Now().UTC(),
		EventType:  eventType,
		ExchangeID: exchangeID,
		RequestID:  requestIDFromContext(ctx),
		Success:    success,
		Metadata:   metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	s.audit.Emit(ctx, event)
}

func auditErrorCode(err error) AuditErrorCode {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrNotAuthorized):
		return auditErrNotAuthorized
	case errors.Is(err, ErrAssertionExpired):
		return auditErrAssertionExpired
	case errors.Is(err, ErrAssertionMalformed),
		errors.Is(err, ErrAssertionMissingExpiry):
		return auditErrMalformed
	case errors.Is(err, ErrExchangeFailed):
		return auditErrExchangeFailed
	default:
		return auditErrInternal
	}
}
