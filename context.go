package goGrant

import "context"

type requestIDContextKey struct{}

// WithRequestID attaches a caller-side request identifier to ctx. The
// Strategy stamps it into audit events so an exchange triggered by one
// request can be correlated with every caller that coalesced onto it.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	requestID, _ := ctx.Value(requestIDContextKey{}).(string)
	return requestID
}
