package httpclient

import (
	"net/http"
	"time"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
)

// HTTPClientInterface is the transport used by the JSON-RPC client that talks to the Solana node.
type HTTPClientInterface interface {
	Do(*http.Request) (*http.Response, error)
	CloseIdleConnections()
}

const TimeoutClientInSeconds = 40

// DefaultClient returns a default HTTP client with a timeout.
func DefaultClient() HTTPClientInterface {
	return &http.Client{Timeout: TimeoutClientInSeconds * time.Second}
}

var (
	_ HTTPClientInterface = DefaultClient()
	_ jsonrpc.HTTPClient  = DefaultClient()
)
