/*
 * Copyright (c) 2022, Gideon Williams <gideon@gideonw.com>
 * Copyright (c) 2023, Dana Burkart <dana.burkart@gmail.com>
 *
 * SPDX-License-Identifier: BSD-2-Clause
 */

package proto

import (
	"fmt"
	"net"
	"net/url"
)

var (
	Protocol    = "sigc"
	DefaultPort = "8001"
)

type ConnectionString struct {
	Local   bool
	Address string
}

// ParseConnectionString takes a connection string and parses it into the parts
// the application needs to make a connection. It will only return an error if
// the scheme is not "sigc" or the remote address is missing.
//
// Formats:
//
//	(empty)
//	local
//	sigc://<host[:port]>
func ParseConnectionString(connStr string) (ConnectionString, error) {
	ret := ConnectionString{
		Local:   true,
		Address: "local",
	}

	if connStr == "" || connStr == "local" {
		return ret, nil
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return ConnectionString{}, err
	}

	if u.Scheme != Protocol {
		return ConnectionString{}, fmt.Errorf("unrecognized scheme: %q", u.Scheme)
	}

	if u.Host == "" {
		return ConnectionString{}, fmt.Errorf("missing host in %q", connStr)
	}

	ret.Local = false
	ret.Address = u.Host
	if u.Port() == "" {
		ret.Address = net.JoinHostPort(u.Hostname(), DefaultPort)
	}

	return ret, nil
}
