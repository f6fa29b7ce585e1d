// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip resolves request IPs to 2-letter country codes using a
// MaxMind GeoLite2-Country database. Lookups degrade to the empty
// string when no database is configured.
package geoip

import (
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/oschwald/maxminddb-golang"
)

// Lookup wraps a MaxMind country database. The zero value is a disabled
// lookup; call Open to enable it.
type Lookup struct {
	mu sync.RWMutex
	db *maxminddb.Reader
}

type countryRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// Open loads the database at path. An empty path leaves the lookup
// disabled without error.
func (g *Lookup) Open(path string) error {
	if path == "" {
		return nil
	}

	db, err := maxminddb.Open(path)
	if err != nil {
		return fmt.Errorf("opening GeoIP database: %w", err)
	}

	g.mu.Lock()
	if g.db != nil {
		_ = g.db.Close()
	}
	g.db = db
	g.mu.Unlock()
	return nil
}

// Close releases the database.
func (g *Lookup) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.db == nil {
		return nil
	}
	err := g.db.Close()
	g.db = nil
	return err
}

// Country returns the ISO country code for addr (an IP or host:port),
// "LOCAL" for private ranges, or "" when unknown or disabled.
func (g *Lookup) Country(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	ip := net.ParseIP(strings.TrimSpace(addr))
	if ip == nil {
		return ""
	}
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() {
		return "LOCAL"
	}

	g.mu.RLock()
	defer g.mu.RUnlock()
	if g.db == nil {
		return ""
	}

	var rec countryRecord
	if err := g.db.Lookup(ip, &rec); err != nil {
		return ""
	}
	return rec.Country.ISOCode
}
