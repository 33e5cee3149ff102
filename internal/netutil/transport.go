package netutil

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// NewTransport returns an HTTP transport tuned for a long-lived bridge
// process that talks to a single remote API: keep-alive connections are
// pooled and reused between polls instead of being re-established every
// interval.
func NewTransport(logger *logrus.Logger) *http.Transport {
	return &http.Transport{
		DialContext:           createDialContext(logger),
		TLSHandshakeTimeout:   10 * time.Second,
		IdleConnTimeout:       90 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          10,
		MaxIdleConnsPerHost:   2,
	}
}

func createDialContext(logger *logrus.Logger) func(ctx context.Context, network, addr string) (net.Conn, error) {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			return nil, err
		}
		logger.WithField("host", host).Debug("Dialing remote host")

		dialer := net.Dialer{Timeout: 10 * time.Second}
		return dialer.DialContext(ctx, network, addr)
	}
}
