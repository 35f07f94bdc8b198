package auth

import "context"

type tokenCtxKey struct{}

// ContextWithToken seeds the context with the session's marketplace bearer token.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

// TokenFromContext returns the bearer token for the current session, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenCtxKey{}).(string)
	return token, ok && token != ""
}
