/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

package connection

import (
	"github.com/nasacj/woody/proxy"
)

// Option customizes a Settings value at construction or derivation time.
type Option func(*Settings)

// WithTrustStorePath overrides the CA bundle location.
func WithTrustStorePath(path string) Option {
	return func(s *Settings) { s.trustStorePath = path }
}

// WithTrustStoreType overrides the trust store type label.
func WithTrustStoreType(storeType string) Option {
	return func(s *Settings) { s.trustStoreType = storeType }
}

// WithTrustStorePassword overrides the trust store password.
func WithTrustStorePassword(password string) Option {
	return func(s *Settings) { s.trustStorePassword = password }
}

// WithKeyStorePath sets the location of the client certificate store.
func WithKeyStorePath(path string) Option {
	return func(s *Settings) { s.keyStorePath = path }
}

// WithKeyStoreType overrides the key store type label.
func WithKeyStoreType(storeType string) Option {
	return func(s *Settings) { s.keyStoreType = storeType }
}

// WithPKCS11Library sets the PKCS#11 library file location.
func WithPKCS11Library(path string) Option {
	return func(s *Settings) { s.pkcs11Library = path }
}

// WithVerifyChain toggles verification of the whole certificate chain
// presented by the server.
func WithVerifyChain(enabled bool) Option {
	return func(s *Settings) { s.verifyChain = enabled }
}

// WithVerifyRootCA toggles root CA checking.
func WithVerifyRootCA(enabled bool) Option {
	return func(s *Settings) { s.verifyRootCA = enabled }
}

// WithAcceptSelfSigned toggles acceptance of self-signed certificates.
func WithAcceptSelfSigned(enabled bool) Option {
	return func(s *Settings) { s.acceptSelfSigned = enabled }
}

// WithCheckExpiry toggles checking of certificate validity periods.
func WithCheckExpiry(enabled bool) Option {
	return func(s *Settings) { s.checkExpiry = enabled }
}

// WithCheckDomainMatch toggles checking the certificate domain against
// the service name.
func WithCheckDomainMatch(enabled bool) Option {
	return func(s *Settings) { s.checkDomainMatch = enabled }
}

// WithCompression toggles stream compression.
func WithCompression(enabled bool) Option {
	return func(s *Settings) { s.compressionEnabled = enabled }
}

// WithSASL toggles SASL authentication.
func WithSASL(enabled bool) Option {
	return func(s *Settings) { s.saslEnabled = enabled }
}

// WithSecurityMode sets the TLS policy used when negotiating the
// connection.
func WithSecurityMode(mode SecurityMode) Option {
	return func(s *Settings) { s.securityMode = mode }
}

// WithProxy replaces the proxy descriptor. Only meaningful when passed
// to Derive; constructors take the descriptor as an argument.
func WithProxy(pi proxy.Info) Option {
	return func(s *Settings) { s.proxy = pi }
}

// WithResolver replaces the endpoint resolver used by the service-name
// constructors.
func WithResolver(r Resolver) Option {
	return func(s *Settings) { s.resolver = r }
}
