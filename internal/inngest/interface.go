package inngest

import (
	"context"
	"net/http"
)

// InngestClient serves the registered workflows and queues events for them.
type InngestClient interface {
	Serve() http.Handler
	SendEvent(ctx context.Context, name string, data map[string]any) error
}
