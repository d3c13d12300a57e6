/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

package proxy

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
)

const (
	socks4Version        = 0x04
	socks4CmdConnect     = 0x01
	socks4ReplyVersion   = 0x00
	socks4RequestGranted = 0x5a
)

// socks4Dialer tunnels connections through a SOCKS4 proxy. SOCKS4 only
// carries IPv4 addresses, so targets are resolved before the handshake.
type socks4Dialer struct {
	proxyAddress string
	userID       string
	forward      net.Dialer
}

func (d *socks4Dialer) DialContext(ctx context.Context, network, address string) (net.Conn, error) {
	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		return nil, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("proxy: invalid target port: %s", portStr)
	}
	ip4, err := resolveIPv4(ctx, host)
	if err != nil {
		return nil, err
	}
	conn, err := d.forward.DialContext(ctx, network, d.proxyAddress)
	if err != nil {
		return nil, err
	}
	req := make([]byte, 0, 9+len(d.userID))
	req = append(req, socks4Version, socks4CmdConnect, byte(port>>8), byte(port))
	req = append(req, ip4...)
	req = append(req, d.userID...)
	req = append(req, 0x00)
	if _, err := conn.Write(req); err != nil {
		conn.Close()
		return nil, err
	}
	var reply [8]byte
	if _, err := io.ReadFull(conn, reply[:]); err != nil {
		conn.Close()
		return nil, err
	}
	if reply[0] != socks4ReplyVersion || reply[1] != socks4RequestGranted {
		conn.Close()
		return nil, fmt.Errorf("proxy: SOCKS4 request rejected: code 0x%02x", reply[1])
	}
	return conn, nil
}

func resolveIPv4(ctx context.Context, host string) (net.IP, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip4 := ip.To4(); ip4 != nil {
			return ip4, nil
		}
		return nil, fmt.Errorf("proxy: SOCKS4 requires an IPv4 target: %s", host)
	}
	addrs, err := net.DefaultResolver.LookupIPAddr(ctx, host)
	if err != nil {
		return nil, err
	}
	for _, addr := range addrs {
		if ip4 := addr.IP.To4(); ip4 != nil {
			return ip4, nil
		}
	}
	return nil, fmt.Errorf("proxy: no IPv4 address found for %s", host)
}
