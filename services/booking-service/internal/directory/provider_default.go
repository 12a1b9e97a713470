//go:build !protogen

package directory

// NewGRPCProvider is a no-op in builds without generated protobuf code; the
// caller falls back to the Postgres provider.
func NewGRPCProvider(_ string) (Provider, error) {
	return nil, nil
}
