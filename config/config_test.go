/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v2"

	"github.com/nasacj/woody/connection"
	"github.com/nasacj/woody/proxy"
)

func TestLoad(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "woody.yml")
	content := `
logger:
  level: debug
  format: json
connection:
  service_name: example.com
  host: xmpp.example.com
  port: 5223
  security_mode: required
  compression: true
  sasl: false
  truststore:
    path: /etc/certs/bundle.pem
    password: hunter2
  keystore:
    path: /etc/certs/client.pem
  pkcs11_library: /usr/lib/opensc-pkcs11.so
  verify:
    chain: true
    root_ca: true
    allow_self_signed: true
    expiry: true
    domain_match: true
  proxy:
    type: socks5
    host: socks.example.com
    port: 1080
    username: user
    password: pass
`
	require.Nil(t, os.WriteFile(cfgFile, []byte(content), 0600))

	cfg, err := Load(cfgFile)
	require.Nil(t, err)

	require.Equal(t, "debug", cfg.Logger.Level)
	require.Equal(t, "json", cfg.Logger.Format)

	c := cfg.Connection
	require.Equal(t, "example.com", c.ServiceName)
	require.Equal(t, "xmpp.example.com", c.Host)
	require.Equal(t, 5223, c.Port)
	require.Equal(t, connection.SecurityRequired, c.SecurityMode)
	require.True(t, c.Compression)
	require.False(t, c.SASL)
	require.Equal(t, "/etc/certs/bundle.pem", c.TrustStore.Path)
	require.Equal(t, "hunter2", c.TrustStore.Password)
	require.Equal(t, "/etc/certs/client.pem", c.KeyStore.Path)
	require.Equal(t, "/usr/lib/opensc-pkcs11.so", c.PKCS11Library)
	require.True(t, c.Verify.Chain)
	require.True(t, c.Verify.DomainMatch)
	require.Equal(t, proxy.SOCKS5, c.Proxy.Type)
	require.Equal(t, "socks.example.com", c.Proxy.Host)
	require.Equal(t, 1080, c.Proxy.Port)
}

func TestLoadNotFound(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Nil(t, cfg)
	require.NotNil(t, err)
}

func TestConnectionDefaults(t *testing.T) {
	var c Connection
	require.Nil(t, yaml.Unmarshal([]byte(`{host: example.com}`), &c))

	require.Equal(t, "example.com", c.Host)
	require.Equal(t, 5222, c.Port)
	require.Equal(t, connection.SecurityEnabled, c.SecurityMode)
	require.True(t, c.SASL)
	require.False(t, c.Compression)
	require.Equal(t, proxy.None, c.Proxy.Type)
}

func TestConnectionValidation(t *testing.T) {
	var c Connection

	// neither service_name nor host
	require.NotNil(t, yaml.Unmarshal([]byte(`{port: 5222}`), &c))

	// unrecognized security mode
	require.NotNil(t, yaml.Unmarshal([]byte(`{host: example.com, security_mode: mandatory}`), &c))

	// unrecognized proxy type
	require.NotNil(t, yaml.Unmarshal([]byte(`{host: example.com, proxy: {type: socks6}}`), &c))

	// port out of range
	require.NotNil(t, yaml.Unmarshal([]byte(`{host: example.com, port: 65536}`), &c))
}

func TestConnectionSettings(t *testing.T) {
	var c Connection
	require.Nil(t, yaml.Unmarshal([]byte(`
service_name: example.com
host: 127.0.0.1
port: 5222
security_mode: disabled
compression: true
`), &c))

	s, err := c.Settings(context.Background())
	require.Nil(t, err)

	require.Equal(t, "example.com", s.ServiceName())
	require.Equal(t, "127.0.0.1", s.Host())
	require.Equal(t, 5222, s.Port())
	require.Equal(t, connection.SecurityDisabled, s.SecurityMode())
	require.True(t, s.CompressionEnabled())
	require.True(t, s.SASLEnabled())
}
