package public

import "github.com/dealbees/voucher-api/internal/provider"

// Handler serves the storefront API: catalog, cart and order placement.
type Handler struct {
	*provider.Container
}

// New creates the storefront handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
