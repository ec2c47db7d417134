package probe

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"net"
	"strings"
	"time"

	"github.com/leofalp/sitefinder/core/normalize"
	"github.com/leofalp/sitefinder/providers/observability"
)

const (
	// MaxTimeout caps both probes regardless of configuration.
	MaxTimeout = 3 * time.Second
	// DefaultDNSTimeout bounds a resolver lookup.
	DefaultDNSTimeout = 2 * time.Second
	// DefaultTLSTimeout bounds the TLS dial and handshake.
	DefaultTLSTimeout = 3 * time.Second
	// DefaultPort is the TLS port probed.
	DefaultPort = "443"
)

// Prober runs DNS and certificate probes.
type Prober struct {
	resolver   *net.Resolver
	dnsTimeout time.Duration
	tlsTimeout time.Duration
	port       string
	rootCAs    *x509.CertPool
	observer   observability.Provider
}

// Option configures optional Prober behavior.
type Option func(*Prober)

// WithResolver replaces net.DefaultResolver.
func WithResolver(r *net.Resolver) Option {
	return func(p *Prober) {
		p.resolver = r
	}
}

// WithDNSTimeout sets the lookup timeout, capped at MaxTimeout.
func WithDNSTimeout(d time.Duration) Option {
	return func(p *Prober) {
		p.dnsTimeout = d
	}
}

// WithTLSTimeout sets the handshake timeout, capped at MaxTimeout.
func WithTLSTimeout(d time.Duration) Option {
	return func(p *Prober) {
		p.tlsTimeout = d
	}
}

// WithPort overrides DefaultPort.
func WithPort(port string) Option {
	return func(p *Prober) {
		p.port = port
	}
}

// WithRootCAs replaces the system roots used to verify certificates.
func WithRootCAs(pool *x509.CertPool) Option {
	return func(p *Prober) {
		p.rootCAs = pool
	}
}

// WithObserver sets the observability provider.
func WithObserver(o observability.Provider) Option {
	return func(p *Prober) {
		p.observer = observability.OrNop(o)
	}
}

// New returns a Prober.
func New(opts ...Option) *Prober {
	p := &Prober{
		resolver:   net.DefaultResolver,
		dnsTimeout: DefaultDNSTimeout,
		tlsTimeout: DefaultTLSTimeout,
		port:       DefaultPort,
		observer:   observability.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.dnsTimeout = bound(p.dnsTimeout)
	p.tlsTimeout = bound(p.tlsTimeout)
	return p
}

func bound(d time.Duration) time.Duration {
	if d <= 0 || d > MaxTimeout {
		return MaxTimeout
	}
	return d
}

// HasRecord reports whether host resolves to at least one address.
func (p *Prober) HasRecord(ctx context.Context, host string) bool {
	if host == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, p.dnsTimeout)
	defer cancel()

	addrs, err := p.resolver.LookupHost(ctx, host)
	if err != nil {
		p.observer.Debug(ctx, "dns probe failed",
			observability.String(observability.AttrHTTPURL, host),
			observability.Error(err),
		)
		return false
	}
	return len(addrs) > 0
}

// CertificateMatches reports whether the verified leaf certificate of host
// names the company: the normalized subject fields and DNS names, joined,
// must contain the core tokens joined without separators.
func (p *Prober) CertificateMatches(ctx context.Context, host string, core []string) bool {
	want := strings.Join(core, "")
	if host == "" || want == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, p.tlsTimeout)
	defer cancel()

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: p.tlsTimeout},
		Config: &tls.Config{
			ServerName: host,
			RootCAs:    p.rootCAs,
			MinVersion: tls.VersionTLS12,
		},
	}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, p.port))
	if err != nil {
		p.observer.Debug(ctx, "tls probe failed",
			observability.String(observability.AttrHTTPURL, host),
			observability.Error(err),
		)
		return false
	}
	defer func() { _ = conn.Close() }()

	tlsConn, ok := conn.(*tls.Conn)
	if !ok {
		return false
	}
	certs := tlsConn.ConnectionState().PeerCertificates
	if len(certs) == 0 {
		return false
	}
	return strings.Contains(certificateText(certs[0]), want)
}

// certificateText returns the normalized subject fields and DNS names of
// cert joined by spaces.
func certificateText(cert *x509.Certificate) string {
	s := cert.Subject
	var parts []string
	parts = append(parts, s.CommonName)
	parts = append(parts, s.Organization...)
	parts = append(parts, s.OrganizationalUnit...)
	parts = append(parts, s.Locality...)
	parts = append(parts, s.Province...)
	parts = append(parts, s.Country...)
	parts = append(parts, cert.DNSNames...)

	texts := make([]string, 0, len(parts))
	for _, part := range parts {
		if n := normalize.Normalize(part); n != "" {
			texts = append(texts, n)
		}
	}
	return strings.Join(texts, " ")
}
