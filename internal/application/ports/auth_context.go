package ports

import "context"

type bearerTokenKey struct{}

// WithBearerToken adjunta el token del operario para que el gateway lo reenvíe al ERP.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerTokenKey{}, token)
}

// BearerToken devuelve el token adjunto o "".
func BearerToken(ctx context.Context) string {
	v, _ := ctx.Value(bearerTokenKey{}).(string)
	return v
}
