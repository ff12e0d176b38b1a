// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ipNet(cidr string) net.Addr {
	ip, n, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(err)
	}
	n.IP = ip
	return n
}

func TestHostProbe_Online(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		addrs   []net.Addr
		err     error
		want    bool
	}{
		{
			name:    "routable address",
			baseURL: "https://api.example.com",
			addrs:   []net.Addr{ipNet("127.0.0.1/8"), ipNet("192.168.1.20/24")},
			want:    true,
		},
		{
			name:    "ipv6 global address",
			baseURL: "https://api.example.com",
			addrs:   []net.Addr{ipNet("::1/128"), ipNet("2001:db8::5/64")},
			want:    true,
		},
		{
			name:    "loopback and link-local only",
			baseURL: "https://api.example.com",
			addrs:   []net.Addr{ipNet("127.0.0.1/8"), ipNet("fe80::1/64"), ipNet("169.254.3.4/16")},
			want:    false,
		},
		{
			name:    "interfaces unavailable",
			baseURL: "https://api.example.com",
			err:     errors.New("netlink: permission denied"),
			want:    false,
		},
		{
			name:    "localhost server without network",
			baseURL: "http://localhost:8080",
			want:    true,
		},
		{
			name:    "loopback ip server without network",
			baseURL: "http://[::1]:9000",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probe := &hostProbe{
				baseURL: func() string { return tt.baseURL },
				addrs:   func() ([]net.Addr, error) { return tt.addrs, tt.err },
			}
			assert.Equal(t, tt.want, probe.Online(context.Background()))
		})
	}
}

func TestNewHostProbe_NoNetworkCalls(t *testing.T) {
	probe := NewHostProbe(func() string { return "http://127.0.0.1:1" })
	assert.True(t, probe.Online(context.Background()))
}

func TestProbeFunc(t *testing.T) {
	assert.True(t, AlwaysOnline.Online(context.Background()))
	assert.False(t, ProbeFunc(func(context.Context) bool { return false }).Online(context.Background()))
}
