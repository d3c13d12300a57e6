/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

package tlsutil

import (
	"crypto/tls"
	"crypto/x509"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/nasacj/woody/connection"
)

// ClientConfig maps connection settings onto the TLS configuration used
// when upgrading the stream. The permissive defaults of Settings translate
// to a non-verifying configuration; each strictness flag tightens one
// aspect of peer verification.
//
// The trust store path is expected to point at a PEM CA bundle. The legacy
// "jks" type label is carried for compatibility but carries no meaning
// here.
func ClientConfig(s *connection.Settings) (*tls.Config, error) {
	cfg := &tls.Config{
		ServerName: s.ServiceName(),
		MinVersion: tls.VersionTLS12,
		NextProtos: []string{"xmpp-client"},
	}
	if path := s.KeyStorePath(); len(path) > 0 {
		cert, err := LoadClientCertificate(path, path)
		if err != nil {
			return nil, errors.Wrap(err, "loading client certificate")
		}
		cfg.Certificates = []tls.Certificate{cert}
	}
	if !s.VerifyChain() && !s.VerifyRootCA() {
		cfg.InsecureSkipVerify = true
		if s.CheckExpiry() || s.CheckDomainMatch() {
			cfg.VerifyPeerCertificate = leafVerifier(s)
		}
		return cfg, nil
	}
	pool, err := LoadTrustStore(s.TrustStorePath())
	if err != nil {
		return nil, err
	}
	cfg.RootCAs = pool

	// Standard library verification always checks expiry and host name.
	// Whenever the flags ask for less than that, or for self-signed
	// acceptance, verification is performed manually.
	if s.AcceptSelfSigned() || !s.CheckExpiry() || !s.CheckDomainMatch() {
		cfg.InsecureSkipVerify = true
		cfg.VerifyPeerCertificate = chainVerifier(s, pool)
	}
	return cfg, nil
}

// LoadTrustStore reads a PEM CA bundle into a certificate pool.
func LoadTrustStore(path string) (*x509.CertPool, error) {
	if len(path) == 0 {
		return nil, errors.New("tlsutil: no trust store path configured")
	}
	pem, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading trust store %s", path)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, errors.Errorf("tlsutil: no certificates found in %s", path)
	}
	return pool, nil
}

// LoadClientCertificate loads the client certificate presented when the
// server requests one. Certificate and key may live in the same PEM file.
func LoadClientCertificate(certFile, keyFile string) (tls.Certificate, error) {
	return tls.LoadX509KeyPair(certFile, keyFile)
}

// leafVerifier checks expiry and domain match on the presented leaf
// certificate without validating the chain.
func leafVerifier(s *connection.Settings) func([][]byte, [][]*x509.Certificate) error {
	checkExpiry := s.CheckExpiry()
	checkDomain := s.CheckDomainMatch()
	serviceName := s.ServiceName()
	return func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		leaf, err := parseLeaf(rawCerts)
		if err != nil {
			return err
		}
		if checkExpiry {
			if err := verifyValidity(leaf); err != nil {
				return err
			}
		}
		if checkDomain {
			if err := leaf.VerifyHostname(serviceName); err != nil {
				return err
			}
		}
		return nil
	}
}

// chainVerifier validates the presented chain against the trust store,
// relaxing expiry, domain and self-signed checks per the settings flags.
func chainVerifier(s *connection.Settings, pool *x509.CertPool) func([][]byte, [][]*x509.Certificate) error {
	acceptSelfSigned := s.AcceptSelfSigned()
	checkExpiry := s.CheckExpiry()
	checkDomain := s.CheckDomainMatch()
	serviceName := s.ServiceName()
	return func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
		certs := make([]*x509.Certificate, 0, len(rawCerts))
		for _, raw := range rawCerts {
			cert, err := x509.ParseCertificate(raw)
			if err != nil {
				return errors.Wrap(err, "parsing peer certificate")
			}
			certs = append(certs, cert)
		}
		if len(certs) == 0 {
			return errors.New("tlsutil: peer presented no certificates")
		}
		leaf := certs[0]

		opts := x509.VerifyOptions{
			Roots:         pool,
			Intermediates: x509.NewCertPool(),
		}
		for _, cert := range certs[1:] {
			opts.Intermediates.AddCert(cert)
		}
		if checkDomain {
			opts.DNSName = serviceName
		}
		if !checkExpiry {
			// neutralize validity checking by verifying at a time the
			// leaf is known to be valid
			opts.CurrentTime = leaf.NotBefore.Add(time.Second)
		}
		if _, err := leaf.Verify(opts); err != nil {
			if acceptSelfSigned && isSelfSigned(leaf) {
				return verifyRelaxedLeaf(leaf, serviceName, checkExpiry, checkDomain)
			}
			return err
		}
		if checkExpiry {
			return verifyValidity(leaf)
		}
		return nil
	}
}

func verifyRelaxedLeaf(leaf *x509.Certificate, serviceName string, checkExpiry, checkDomain bool) error {
	if checkExpiry {
		if err := verifyValidity(leaf); err != nil {
			return err
		}
	}
	if checkDomain {
		return leaf.VerifyHostname(serviceName)
	}
	return nil
}

func verifyValidity(cert *x509.Certificate) error {
	now := time.Now()
	if now.Before(cert.NotBefore) {
		return errors.Errorf("tlsutil: certificate not valid until %s", cert.NotBefore)
	}
	if now.After(cert.NotAfter) {
		return errors.Errorf("tlsutil: certificate expired at %s", cert.NotAfter)
	}
	return nil
}

func isSelfSigned(cert *x509.Certificate) bool {
	if cert.Issuer.String() != cert.Subject.String() {
		return false
	}
	return cert.CheckSignature(cert.SignatureAlgorithm, cert.RawTBSCertificate, cert.Signature) == nil
}

func parseLeaf(rawCerts [][]byte) (*x509.Certificate, error) {
	if len(rawCerts) == 0 {
		return nil, errors.New("tlsutil: peer presented no certificates")
	}
	return x509.ParseCertificate(rawCerts[0])
}
