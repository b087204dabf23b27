package logging

import "context"

type opIDKey struct{}

// WithOpID tags ctx with an operation id. SlogLogger adds it to every line
// logged with that context as "op_id".
func WithOpID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, opIDKey{}, id)
}

func OpID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(opIDKey{}).(string)
	return id
}

func withOpID(ctx context.Context, args []any) []any {
	id := OpID(ctx)
	if id == "" {
		return args
	}
	return append([]any{"op_id", id}, args...)
}
