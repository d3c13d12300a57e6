/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

package config

import (
	"context"
	"fmt"

	"github.com/nasacj/woody/connection"
	"github.com/nasacj/woody/proxy"
)

const defaultClientPort = 5222

// Store represents a certificate store location.
type Store struct {
	Path     string `yaml:"path"`
	Type     string `yaml:"type"`
	Password string `yaml:"password"`
}

// Verify represents the certificate strictness flags. All of them
// default to false, matching legacy client behavior; production
// deployments should enable them explicitly.
type Verify struct {
	Chain           bool `yaml:"chain"`
	RootCA          bool `yaml:"root_ca"`
	AllowSelfSigned bool `yaml:"allow_self_signed"`
	Expiry          bool `yaml:"expiry"`
	DomainMatch     bool `yaml:"domain_match"`
}

// Connection represents a client connection configuration.
type Connection struct {
	ServiceName   string
	Host          string
	Port          int
	SecurityMode  connection.SecurityMode
	Compression   bool
	SASL          bool
	TrustStore    Store
	KeyStore      Store
	PKCS11Library string
	Verify        Verify
	Proxy         proxy.Info
}

type connectionProxyType struct {
	ServiceName   string     `yaml:"service_name"`
	Host          string     `yaml:"host"`
	Port          int        `yaml:"port"`
	SecurityMode  string     `yaml:"security_mode"`
	Compression   bool       `yaml:"compression"`
	SASL          *bool      `yaml:"sasl"`
	TrustStore    Store      `yaml:"truststore"`
	KeyStore      Store      `yaml:"keystore"`
	PKCS11Library string     `yaml:"pkcs11_library"`
	Verify        Verify     `yaml:"verify"`
	Proxy         proxyEntry `yaml:"proxy"`
}

type proxyEntry struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// UnmarshalYAML satisfies Unmarshaler interface.
func (c *Connection) UnmarshalYAML(unmarshal func(interface{}) error) error {
	p := connectionProxyType{}
	if err := unmarshal(&p); err != nil {
		return err
	}
	if len(p.ServiceName) == 0 && len(p.Host) == 0 {
		return fmt.Errorf("config.Connection: either service_name or host must be set")
	}
	// validate security mode
	mode, err := connection.ParseSecurityMode(p.SecurityMode)
	if err != nil {
		return err
	}
	c.SecurityMode = mode

	// validate proxy type
	proxyType, err := proxy.ParseType(p.Proxy.Type)
	if err != nil {
		return err
	}
	c.Proxy = proxy.Info{
		Type:     proxyType,
		Host:     p.Proxy.Host,
		Port:     p.Proxy.Port,
		Username: p.Proxy.Username,
		Password: p.Proxy.Password,
	}
	c.ServiceName = p.ServiceName
	c.Host = p.Host
	c.Port = p.Port

	// assign connection defaults
	if len(c.Host) > 0 && c.Port == 0 {
		c.Port = defaultClientPort
	}
	if len(c.Host) > 0 && (c.Port < 1 || c.Port > 65535) {
		return fmt.Errorf("config.Connection: port out of range: %d", c.Port)
	}
	c.Compression = p.Compression
	c.SASL = true
	if p.SASL != nil {
		c.SASL = *p.SASL
	}
	c.TrustStore = p.TrustStore
	c.KeyStore = p.KeyStore
	c.PKCS11Library = p.PKCS11Library
	c.Verify = p.Verify
	return nil
}

// Settings materializes the configured connection, resolving the
// transport endpoint when no explicit host is given.
func (c *Connection) Settings(ctx context.Context, extra ...connection.Option) (*connection.Settings, error) {
	opts := []connection.Option{
		connection.WithSecurityMode(c.SecurityMode),
		connection.WithCompression(c.Compression),
		connection.WithSASL(c.SASL),
		connection.WithVerifyChain(c.Verify.Chain),
		connection.WithVerifyRootCA(c.Verify.RootCA),
		connection.WithAcceptSelfSigned(c.Verify.AllowSelfSigned),
		connection.WithCheckExpiry(c.Verify.Expiry),
		connection.WithCheckDomainMatch(c.Verify.DomainMatch),
	}
	if len(c.TrustStore.Path) > 0 {
		opts = append(opts, connection.WithTrustStorePath(c.TrustStore.Path))
	}
	if len(c.TrustStore.Type) > 0 {
		opts = append(opts, connection.WithTrustStoreType(c.TrustStore.Type))
	}
	if len(c.TrustStore.Password) > 0 {
		opts = append(opts, connection.WithTrustStorePassword(c.TrustStore.Password))
	}
	if len(c.KeyStore.Path) > 0 {
		opts = append(opts, connection.WithKeyStorePath(c.KeyStore.Path))
	}
	if len(c.KeyStore.Type) > 0 {
		opts = append(opts, connection.WithKeyStoreType(c.KeyStore.Type))
	}
	if len(c.PKCS11Library) > 0 {
		opts = append(opts, connection.WithPKCS11Library(c.PKCS11Library))
	}
	opts = append(opts, extra...)

	if len(c.Host) > 0 {
		return connection.NewHostPortWithProxy(c.Host, c.Port, c.ServiceName, c.Proxy, opts...)
	}
	return connection.NewWithProxy(ctx, c.ServiceName, c.Proxy, opts...)
}
