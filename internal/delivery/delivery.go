// Package delivery defines the contract for transport servers.
package delivery

import "context"

// Delivery is a transport server started by the application entrypoint.
type Delivery interface {
	Serve(ctx context.Context) error
}
