package requestdata

import (
	"context"

	"github.com/google/uuid"
)

var requestDataKey = struct{}{}

// RequestData carries the authenticated viewer through a request's context.
// Handlers translate it into an explicit gallery.Viewer argument; nothing
// below the handler layer reads it.
type RequestData struct {
	TokenString  string
	RefreshToken string
	UserID       uuid.UUID
	IsAdmin      bool
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}
