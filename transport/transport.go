/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

package transport

import (
	"crypto/tls"
	"crypto/x509"
	"io"

	"github.com/nasacj/woody/transport/compress"
)

// ChannelBindingMechanism represents a scram channel binding mechanism.
type ChannelBindingMechanism int

const (
	// TLSUnique represents 'tls-unique' channel binding mechanism.
	TLSUnique ChannelBindingMechanism = iota
)

// Transport represents the client stream transport mechanism.
type Transport interface {
	io.ReadWriteCloser

	// WriteString writes a raw string to the transport.
	WriteString(s string) (n int, err error)

	// StartTLS secures the transport, acting as the client side of
	// the handshake.
	StartTLS(cfg *tls.Config)

	// EnableCompression activates a compression mechanism on the
	// transport.
	EnableCompression(level compress.Level)

	// ChannelBindingBytes returns current transport channel binding
	// bytes.
	ChannelBindingBytes(mechanism ChannelBindingMechanism) []byte

	// PeerCertificates returns the certificate chain presented by the
	// server.
	PeerCertificates() []*x509.Certificate
}
