// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"net"
	"net/url"
	"strings"
)

// ProbeFunc adapts a function to [ConnectivityProbe].
type ProbeFunc func(ctx context.Context) bool

func (f ProbeFunc) Online(ctx context.Context) bool {
	return f(ctx)
}

// AlwaysOnline is a probe that never reports offline.
var AlwaysOnline ConnectivityProbe = ProbeFunc(func(context.Context) bool { return true })

// hostProbe reports the host online when it has a routable interface
// address. It makes no network calls: an unreachable server surfaces as a
// network failure of the sync itself.
type hostProbe struct {
	baseURL func() string
	addrs   func() ([]net.Addr, error)
}

// NewHostProbe returns a probe over the local interface addresses. A server
// on the loopback interface is always considered reachable. baseURL is read
// on every probe so a changed API base URL is honoured.
func NewHostProbe(baseURL func() string) ConnectivityProbe {
	return &hostProbe{baseURL: baseURL, addrs: net.InterfaceAddrs}
}

func (p *hostProbe) Online(context.Context) bool {
	if isLoopbackURL(p.baseURL()) {
		return true
	}

	addrs, err := p.addrs()
	if err != nil {
		return false
	}

	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipNet.IP
		if ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified() {
			continue
		}
		return true
	}
	return false
}

func isLoopbackURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	host := u.Hostname()
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
