package pkglog

import "context"

type correlationIDKey struct{}

// CorrelationID returns the request correlation ID carried by ctx. The boolean
// is false when ctx has none.
func CorrelationID(ctx context.Context) (string, bool) {
	cid, ok := ctx.Value(correlationIDKey{}).(string)
	return cid, ok && cid != ""
}

// WithCorrelationID returns a copy of ctx carrying cid. Records logged with
// the returned context get a "_cID" attribute, and outbound calls may forward
// it to the service they reach.
func WithCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, cid)
}
