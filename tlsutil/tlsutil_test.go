/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

package tlsutil

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nasacj/woody/connection"
)

type testCert struct {
	der     []byte
	certPEM []byte
	keyPEM  []byte
}

func generateCert(t *testing.T, domain string, notBefore, notAfter time.Time) testCert {
	t.Helper()

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	require.Nil(t, err)

	serialNumberLimit := new(big.Int).Lsh(big.NewInt(1), 128)
	serialNumber, err := rand.Int(rand.Reader, serialNumberLimit)
	require.Nil(t, err)

	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			CommonName: domain,
		},
		NotBefore:             notBefore,
		NotAfter:              notAfter,
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
		DNSNames:              []string{domain},
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	require.Nil(t, err)

	return testCert{
		der:     der,
		certPEM: pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}),
		keyPEM:  pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)}),
	}
}

func writeFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.Nil(t, os.WriteFile(path, content, 0600))
	return path
}

func validWindow() (time.Time, time.Time) {
	now := time.Now()
	return now.Add(-time.Hour), now.Add(time.Hour)
}

func TestClientConfigPermissiveDefaults(t *testing.T) {
	s, err := connection.NewHostPort("127.0.0.1", 5222, "example.com")
	require.Nil(t, err)

	cfg, err := ClientConfig(s)
	require.Nil(t, err)

	require.True(t, cfg.InsecureSkipVerify)
	require.Nil(t, cfg.VerifyPeerCertificate)
	require.Equal(t, "example.com", cfg.ServerName)
	require.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
}

func TestClientConfigLeafDomainCheck(t *testing.T) {
	nb, na := validWindow()
	cert := generateCert(t, "example.com", nb, na)

	s, err := connection.NewHostPort("127.0.0.1", 5222, "example.com",
		connection.WithCheckDomainMatch(true),
	)
	require.Nil(t, err)

	cfg, err := ClientConfig(s)
	require.Nil(t, err)
	require.True(t, cfg.InsecureSkipVerify)
	require.NotNil(t, cfg.VerifyPeerCertificate)

	require.Nil(t, cfg.VerifyPeerCertificate([][]byte{cert.der}, nil))

	other, err := connection.NewHostPort("127.0.0.1", 5222, "other.com",
		connection.WithCheckDomainMatch(true),
	)
	require.Nil(t, err)
	cfg, err = ClientConfig(other)
	require.Nil(t, err)
	require.NotNil(t, cfg.VerifyPeerCertificate([][]byte{cert.der}, nil))
}

func TestClientConfigLeafExpiryCheck(t *testing.T) {
	expired := generateCert(t, "example.com", time.Now().Add(-48*time.Hour), time.Now().Add(-24*time.Hour))

	s, err := connection.NewHostPort("127.0.0.1", 5222, "example.com",
		connection.WithCheckExpiry(true),
	)
	require.Nil(t, err)

	cfg, err := ClientConfig(s)
	require.Nil(t, err)
	require.NotNil(t, cfg.VerifyPeerCertificate)
	require.NotNil(t, cfg.VerifyPeerCertificate([][]byte{expired.der}, nil))

	// same certificate passes when expiry checking stays disabled
	s, err = connection.NewHostPort("127.0.0.1", 5222, "example.com",
		connection.WithCheckDomainMatch(true),
	)
	require.Nil(t, err)
	cfg, err = ClientConfig(s)
	require.Nil(t, err)
	require.Nil(t, cfg.VerifyPeerCertificate([][]byte{expired.der}, nil))
}

func TestClientConfigStrict(t *testing.T) {
	nb, na := validWindow()
	ca := generateCert(t, "example.com", nb, na)
	bundle := writeFile(t, "bundle.pem", ca.certPEM)

	s, err := connection.NewHostPort("127.0.0.1", 5222, "example.com",
		connection.WithVerifyChain(true),
		connection.WithCheckExpiry(true),
		connection.WithCheckDomainMatch(true),
		connection.WithTrustStorePath(bundle),
	)
	require.Nil(t, err)

	cfg, err := ClientConfig(s)
	require.Nil(t, err)

	// fully strict settings delegate verification to the standard library
	require.False(t, cfg.InsecureSkipVerify)
	require.Nil(t, cfg.VerifyPeerCertificate)
	require.NotNil(t, cfg.RootCAs)
}

func TestClientConfigStrictRelaxedDomain(t *testing.T) {
	nb, na := validWindow()
	ca := generateCert(t, "example.com", nb, na)
	bundle := writeFile(t, "bundle.pem", ca.certPEM)

	s, err := connection.NewHostPort("127.0.0.1", 5222, "another-domain.com",
		connection.WithVerifyChain(true),
		connection.WithTrustStorePath(bundle),
	)
	require.Nil(t, err)

	cfg, err := ClientConfig(s)
	require.Nil(t, err)
	require.True(t, cfg.InsecureSkipVerify)
	require.NotNil(t, cfg.VerifyPeerCertificate)

	// trusted chain, domain mismatch ignored
	require.Nil(t, cfg.VerifyPeerCertificate([][]byte{ca.der}, nil))
}

func TestClientConfigSelfSignedAcceptance(t *testing.T) {
	nb, na := validWindow()
	ca := generateCert(t, "ca.example.com", nb, na)
	peer := generateCert(t, "example.com", nb, na)
	bundle := writeFile(t, "bundle.pem", ca.certPEM)

	s, err := connection.NewHostPort("127.0.0.1", 5222, "example.com",
		connection.WithVerifyChain(true),
		connection.WithAcceptSelfSigned(true),
		connection.WithTrustStorePath(bundle),
	)
	require.Nil(t, err)

	cfg, err := ClientConfig(s)
	require.Nil(t, err)
	require.NotNil(t, cfg.VerifyPeerCertificate)
	require.Nil(t, cfg.VerifyPeerCertificate([][]byte{peer.der}, nil))

	// rejected once self-signed acceptance is withdrawn
	s, err = connection.NewHostPort("127.0.0.1", 5222, "example.com",
		connection.WithVerifyChain(true),
		connection.WithTrustStorePath(bundle),
	)
	require.Nil(t, err)
	cfg, err = ClientConfig(s)
	require.Nil(t, err)
	require.NotNil(t, cfg.VerifyPeerCertificate([][]byte{peer.der}, nil))
}

func TestClientConfigMissingTrustStore(t *testing.T) {
	s, err := connection.NewHostPort("127.0.0.1", 5222, "example.com",
		connection.WithVerifyChain(true),
		connection.WithTrustStorePath(filepath.Join(t.TempDir(), "missing.pem")),
	)
	require.Nil(t, err)

	cfg, err := ClientConfig(s)
	require.Nil(t, cfg)
	require.NotNil(t, err)
}

func TestClientConfigClientCertificate(t *testing.T) {
	nb, na := validWindow()
	client := generateCert(t, "client.example.com", nb, na)
	keyStore := writeFile(t, "client.pem", append(client.certPEM, client.keyPEM...))

	s, err := connection.NewHostPort("127.0.0.1", 5222, "example.com",
		connection.WithKeyStorePath(keyStore),
	)
	require.Nil(t, err)

	cfg, err := ClientConfig(s)
	require.Nil(t, err)
	require.Len(t, cfg.Certificates, 1)
}

func TestSelfSignedCertificate(t *testing.T) {
	cert, err := SelfSignedCertificate("localhost")
	require.Nil(t, err)
	require.NotEmpty(t, cert.Certificate)

	leaf, err := x509.ParseCertificate(cert.Certificate[0])
	require.Nil(t, err)
	require.Nil(t, leaf.VerifyHostname("localhost"))
}

func TestLoadTrustStore(t *testing.T) {
	_, err := LoadTrustStore("")
	require.NotNil(t, err)

	garbage := writeFile(t, "garbage.pem", []byte("not a pem bundle"))
	_, err = LoadTrustStore(garbage)
	require.NotNil(t, err)

	nb, na := validWindow()
	ca := generateCert(t, "example.com", nb, na)
	bundle := writeFile(t, "bundle.pem", ca.certPEM)
	pool, err := LoadTrustStore(bundle)
	require.Nil(t, err)
	require.NotNil(t, pool)
}
