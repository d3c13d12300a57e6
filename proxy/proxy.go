/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

package proxy

import (
	"context"
	"fmt"
	"net"
	"strconv"

	xproxy "golang.org/x/net/proxy"
)

// Type represents a proxy type (none, http, socks4, socks5).
type Type int

const (
	// None represents a direct connection with no intermediate proxy.
	None Type = iota

	// HTTP represents an HTTP CONNECT tunneling proxy.
	HTTP

	// SOCKS4 represents a SOCKS version 4 proxy.
	SOCKS4

	// SOCKS5 represents a SOCKS version 5 proxy.
	SOCKS5
)

// String returns Type string representation.
func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case HTTP:
		return "http"
	case SOCKS4:
		return "socks4"
	case SOCKS5:
		return "socks5"
	}
	return ""
}

// ParseType returns the proxy type associated to a configuration string.
func ParseType(s string) (Type, error) {
	switch s {
	case "", "none":
		return None, nil
	case "http":
		return HTTP, nil
	case "socks4":
		return SOCKS4, nil
	case "socks5":
		return SOCKS5, nil
	}
	return None, fmt.Errorf("proxy: unrecognized proxy type: %s", s)
}

// Dialer establishes transport connections on behalf of a client,
// either directly or through an intermediate proxy.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Info describes the proxy a connection should be tunneled through.
// The zero value describes a direct connection.
type Info struct {
	Type     Type
	Host     string
	Port     int
	Username string
	Password string
}

// ForDefaultProxy returns a descriptor for a direct, non-proxied connection.
func ForDefaultProxy() Info {
	return Info{Type: None}
}

// ForHTTPProxy returns a descriptor for an HTTP CONNECT proxy.
func ForHTTPProxy(host string, port int, username, password string) Info {
	return Info{Type: HTTP, Host: host, Port: port, Username: username, Password: password}
}

// ForSOCKS4Proxy returns a descriptor for a SOCKS4 proxy.
func ForSOCKS4Proxy(host string, port int, username string) Info {
	return Info{Type: SOCKS4, Host: host, Port: port, Username: username}
}

// ForSOCKS5Proxy returns a descriptor for a SOCKS5 proxy.
func ForSOCKS5Proxy(host string, port int, username, password string) Info {
	return Info{Type: SOCKS5, Host: host, Port: port, Username: username, Password: password}
}

// Dialer derives the socket factory associated to the descriptor.
// A proxied descriptor missing its address is considered malformed.
func (i Info) Dialer() (Dialer, error) {
	if i.Type == None {
		return &net.Dialer{}, nil
	}
	if len(i.Host) == 0 {
		return nil, fmt.Errorf("proxy: missing %s proxy host", i.Type)
	}
	if i.Port < 1 || i.Port > 65535 {
		return nil, fmt.Errorf("proxy: %s proxy port out of range: %d", i.Type, i.Port)
	}
	addr := net.JoinHostPort(i.Host, strconv.Itoa(i.Port))
	switch i.Type {
	case HTTP:
		return &httpConnectDialer{proxyAddress: addr, username: i.Username, password: i.Password}, nil
	case SOCKS4:
		return &socks4Dialer{proxyAddress: addr, userID: i.Username}, nil
	case SOCKS5:
		var auth *xproxy.Auth
		if len(i.Username) > 0 {
			auth = &xproxy.Auth{User: i.Username, Password: i.Password}
		}
		d, err := xproxy.SOCKS5("tcp", addr, auth, xproxy.Direct)
		if err != nil {
			return nil, err
		}
		if ctxDialer, ok := d.(xproxy.ContextDialer); ok {
			return ctxDialer, nil
		}
		return &contextDialer{d: d}, nil
	}
	return nil, fmt.Errorf("proxy: unrecognized proxy type: %d", i.Type)
}

// contextDialer adapts a plain proxy dialer lacking context support.
type contextDialer struct {
	d xproxy.Dialer
}

func (c *contextDialer) DialContext(_ context.Context, network, address string) (net.Conn, error) {
	return c.d.Dial(network, address)
}
