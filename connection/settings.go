/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

package connection

import (
	"context"
	"fmt"
	"net"

	"github.com/google/uuid"
	"golang.org/x/net/idna"

	"github.com/nasacj/woody/dnsutil"
	"github.com/nasacj/woody/proxy"
)

// Resolver discovers the transport endpoint associated to a service
// domain. *dnsutil.Resolver satisfies it.
type Resolver interface {
	ResolveEndpoint(ctx context.Context, domain string) (dnsutil.Endpoint, error)
}

// Settings bundles everything a connection attempt needs: target address,
// trust material locations, security policy flags and the socket factory
// used to open the underlying transport.
//
// A Settings value is immutable once constructed. Variations are obtained
// through Derive. The only exception are the session credentials, which may
// be updated between connection attempts through SetCredentials under a
// single-writer discipline.
type Settings struct {
	serviceName string
	host        string
	port        int

	trustStorePath     string
	trustStoreType     string
	trustStorePassword string
	keyStorePath       string
	keyStoreType       string
	pkcs11Library      string

	verifyChain      bool
	verifyRootCA     bool
	acceptSelfSigned bool
	checkExpiry      bool
	checkDomainMatch bool

	compressionEnabled bool
	saslEnabled        bool
	securityMode       SecurityMode

	proxy  proxy.Info
	dialer proxy.Dialer

	resolver Resolver

	// session credentials kept for future reconnections
	username string
	password string
	resource string
}

// New creates settings for the given service domain. An SRV lookup is
// performed to discover the actual host and port to connect to.
func New(ctx context.Context, serviceName string, opts ...Option) (*Settings, error) {
	return NewWithProxy(ctx, serviceName, proxy.ForDefaultProxy(), opts...)
}

// NewWithProxy behaves as New, tunneling the connection through the
// given proxy.
func NewWithProxy(ctx context.Context, serviceName string, pi proxy.Info, opts ...Option) (*Settings, error) {
	s := defaultSettings(pi)
	for _, opt := range opts {
		opt(s)
	}
	name, err := normalizeServiceName(serviceName)
	if err != nil {
		return nil, err
	}
	s.serviceName = name
	if s.resolver == nil {
		s.resolver = dnsutil.New(nil)
	}
	ep, err := s.resolver.ResolveEndpoint(ctx, name)
	if err != nil {
		return nil, err
	}
	s.host = ep.Host
	s.port = ep.Port
	if err := s.finish(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewHostPort creates settings for an explicit host and port, bypassing
// SRV resolution. This is useful when the server's DNS does not reflect
// its transport address, e.g. a local test server posing as some domain.
// An empty serviceName defaults to host.
func NewHostPort(host string, port int, serviceName string, opts ...Option) (*Settings, error) {
	return NewHostPortWithProxy(host, port, serviceName, proxy.ForDefaultProxy(), opts...)
}

// NewHostPortWithProxy behaves as NewHostPort, tunneling the connection
// through the given proxy.
func NewHostPortWithProxy(host string, port int, serviceName string, pi proxy.Info, opts ...Option) (*Settings, error) {
	s := defaultSettings(pi)
	for _, opt := range opts {
		opt(s)
	}
	if len(host) == 0 {
		return nil, &InvalidConfigError{Field: "host", Reason: "must not be empty"}
	}
	if len(serviceName) == 0 {
		serviceName = host
	}
	name, err := normalizeServiceName(serviceName)
	if err != nil {
		return nil, err
	}
	s.serviceName = name
	s.host = host
	s.port = port
	if err := s.finish(); err != nil {
		return nil, err
	}
	return s, nil
}

// Derive returns a modified copy of the settings. The receiver is left
// untouched. When an option replaces the proxy descriptor the socket
// factory is derived again for the copy.
func (s *Settings) Derive(opts ...Option) (*Settings, error) {
	c := *s
	previousProxy := c.proxy
	for _, opt := range opts {
		opt(&c)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	if c.proxy != previousProxy {
		dialer, err := c.proxy.Dialer()
		if err != nil {
			return nil, &InvalidConfigError{Field: "proxy", Reason: err.Error()}
		}
		c.dialer = dialer
	}
	return &c, nil
}

func defaultSettings(pi proxy.Info) *Settings {
	return &Settings{
		trustStorePath:     defaultTrustStorePath(),
		trustStoreType:     defaultStoreType,
		trustStorePassword: defaultTrustStorePassword,
		keyStorePath:       defaultKeyStorePath(),
		keyStoreType:       defaultStoreType,
		pkcs11Library:      defaultPKCS11Library,
		saslEnabled:        true,
		securityMode:       SecurityEnabled,
		proxy:              pi,
	}
}

// finish validates the assembled settings and derives the socket factory.
// Derivation happens exactly once per construction.
func (s *Settings) finish() error {
	if err := s.validate(); err != nil {
		return err
	}
	dialer, err := s.proxy.Dialer()
	if err != nil {
		return &InvalidConfigError{Field: "proxy", Reason: err.Error()}
	}
	s.dialer = dialer
	return nil
}

func (s *Settings) validate() error {
	if len(s.serviceName) == 0 {
		return &InvalidConfigError{Field: "service name", Reason: "must not be empty"}
	}
	if len(s.host) == 0 {
		return &InvalidConfigError{Field: "host", Reason: "must not be empty"}
	}
	if s.port < 1 || s.port > 65535 {
		return &InvalidConfigError{Field: "port", Reason: fmt.Sprintf("out of range: %d", s.port)}
	}
	return nil
}

func normalizeServiceName(serviceName string) (string, error) {
	if len(serviceName) == 0 {
		return "", &InvalidConfigError{Field: "service name", Reason: "must not be empty"}
	}
	if ip := net.ParseIP(serviceName); ip != nil {
		return serviceName, nil
	}
	name, err := idna.Lookup.ToASCII(serviceName)
	if err != nil {
		return "", &InvalidConfigError{Field: "service name", Reason: err.Error()}
	}
	return name, nil
}

// ServiceName returns the logical XMPP domain of the target server, used
// for certificate validation and as authentication realm.
func (s *Settings) ServiceName() string { return s.serviceName }

// Host returns the host to use when establishing the connection. The host
// and port might have been discovered through an SRV lookup and therefore
// may not match the service name.
func (s *Settings) Host() string { return s.host }

// Port returns the port to use when establishing the connection.
func (s *Settings) Port() int { return s.port }

// TrustStorePath returns the path of the CA bundle used to validate the
// server certificate.
func (s *Settings) TrustStorePath() string { return s.trustStorePath }

// TrustStoreType returns the trust store type label.
func (s *Settings) TrustStoreType() string { return s.trustStoreType }

// TrustStorePassword returns the password protecting the trust store.
func (s *Settings) TrustStorePassword() string { return s.trustStorePassword }

// KeyStorePath returns the path of the store holding the client
// certificate presented when the server requests one.
func (s *Settings) KeyStorePath() string { return s.keyStorePath }

// KeyStoreType returns the key store type label.
func (s *Settings) KeyStoreType() string { return s.keyStoreType }

// PKCS11Library returns the PKCS#11 library file location, needed when
// the key store type is PKCS#11.
func (s *Settings) PKCS11Library() string { return s.pkcs11Library }

// VerifyChain reports whether the whole certificate chain presented by
// the server will be checked. Disabled by default.
func (s *Settings) VerifyChain() bool { return s.verifyChain }

// VerifyRootCA reports whether root CA checking will be done.
// Disabled by default.
func (s *Settings) VerifyRootCA() bool { return s.verifyRootCA }

// AcceptSelfSigned reports whether self-signed certificates are accepted.
// Disabled by default.
func (s *Settings) AcceptSelfSigned() bool { return s.acceptSelfSigned }

// CheckExpiry reports whether certificate validity periods are checked.
// Disabled by default.
func (s *Settings) CheckExpiry() bool { return s.checkExpiry }

// CheckDomainMatch reports whether the certificate domain is checked
// against the service name. Disabled by default.
func (s *Settings) CheckDomainMatch() bool { return s.checkDomainMatch }

// CompressionEnabled reports whether stream compression will be requested
// once the stream is established. Disabled by default.
func (s *Settings) CompressionEnabled() bool { return s.compressionEnabled }

// SASLEnabled reports whether SASL authentication is used when logging
// into the server. Enabled by default.
func (s *Settings) SASLEnabled() bool { return s.saslEnabled }

// SecurityMode returns the TLS policy used when negotiating the
// connection. SecurityEnabled by default.
func (s *Settings) SecurityMode() SecurityMode { return s.securityMode }

// Proxy returns the proxy descriptor the socket factory was derived from.
func (s *Settings) Proxy() proxy.Info { return s.proxy }

// Dialer returns the socket factory used to open transport connections.
// It is derived from the proxy descriptor exactly once, at construction.
func (s *Settings) Dialer() proxy.Dialer { return s.dialer }

// Username returns the authentication username.
func (s *Settings) Username() string { return s.username }

// Password returns the authentication password.
func (s *Settings) Password() string { return s.password }

// Resource returns the stream resource bound at login.
func (s *Settings) Resource() string { return s.resource }

// SetCredentials stores the session credentials so that future
// reconnections can reuse them. When resource is empty a random one is
// generated. Credentials follow a single-writer discipline: they must not
// be updated while a connection attempt is reading them.
func (s *Settings) SetCredentials(username, password, resource string) {
	if len(resource) == 0 {
		resource = "woody-" + uuid.New().String()[:8]
	}
	s.username = username
	s.password = password
	s.resource = resource
}
