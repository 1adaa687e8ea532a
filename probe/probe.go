package probe

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rahaaatul/await"
)

// Report is the outcome of a single successful probe.
type Report struct {
	Target  string
	Latency time.Duration
	Detail  string
}

// TCPCheck builds an operation that dials hostport and reports the time to
// establish the connection. The dial honours the operation context, so the
// core's timeouts and cancellation apply without extra plumbing.
func TCPCheck(hostport string) await.Operation[Report] {
	return await.OpFunc[Report](func(ctx context.Context) (Report, error) {
		var d net.Dialer
		start := time.Now()
		conn, err := d.DialContext(ctx, "tcp", hostport)
		if err != nil {
			return Report{}, fmt.Errorf("dial %s: %w", hostport, err)
		}
		latency := time.Since(start)
		conn.Close()
		return Report{
			Target:  hostport,
			Latency: latency,
			Detail:  "tcp connect",
		}, nil
	})
}

// HTTPCheck builds an operation that issues a HEAD request to rawURL and
// reports round-trip latency. Responses at or above 400 count as failures.
// A nil client uses http.DefaultClient; pass a client with redirects or
// TLS settings tuned for the targets being probed.
func HTTPCheck(client *http.Client, rawURL string) await.Operation[Report] {
	if client == nil {
		client = http.DefaultClient
	}
	return await.OpFunc[Report](func(ctx context.Context) (Report, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
		if err != nil {
			return Report{}, fmt.Errorf("build request for %s: %w", rawURL, err)
		}
		start := time.Now()
		resp, err := client.Do(req)
		if err != nil {
			return Report{}, fmt.Errorf("probe %s: %w", Hostname(rawURL), err)
		}
		latency := time.Since(start)
		resp.Body.Close()
		if resp.StatusCode >= http.StatusBadRequest {
			return Report{}, fmt.Errorf("probe %s: unexpected status %s", Hostname(rawURL), resp.Status)
		}
		return Report{
			Target:  Hostname(rawURL),
			Latency: latency,
			Detail:  resp.Status,
		}, nil
	})
}
