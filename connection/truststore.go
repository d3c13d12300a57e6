/*
 * Copyright (c) 2026 nasacj.
 * See the LICENSE file for more information.
 */

package connection

import (
	"os"
	"runtime"
)

const (
	defaultStoreType          = "jks"
	defaultTrustStorePassword = "changeit"
	defaultPKCS11Library      = "pkcs11.config"
)

const (
	// envCABundlePath overrides the default CA bundle location.
	envCABundlePath = "WOODY_CA_BUNDLE"

	// envKeyStorePath sets the default client certificate store location.
	envKeyStorePath = "WOODY_KEYSTORE"
)

// caBundlePaths lists well-known system CA bundle locations per OS,
// tried in order.
var caBundlePaths = map[string][]string{
	"linux": {
		"/etc/ssl/certs/ca-certificates.crt",
		"/etc/pki/tls/certs/ca-bundle.crt",
		"/etc/ssl/ca-bundle.pem",
		"/etc/pki/tls/cacert.pem",
	},
	"darwin":  {"/etc/ssl/cert.pem"},
	"freebsd": {"/usr/local/share/certs/ca-root-nss.crt", "/etc/ssl/cert.pem"},
	"openbsd": {"/etc/ssl/cert.pem"},
	"netbsd":  {"/etc/openssl/certs/ca-certificates.crt"},
	"solaris": {"/etc/certs/ca-certificates.crt"},
}

func defaultTrustStorePath() string {
	if p := os.Getenv(envCABundlePath); len(p) > 0 {
		return p
	}
	candidates := caBundlePaths[runtime.GOOS]
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if len(candidates) > 0 {
		return candidates[0]
	}
	return ""
}

func defaultKeyStorePath() string {
	return os.Getenv(envKeyStorePath)
}
