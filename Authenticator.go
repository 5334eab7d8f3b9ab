package gxextron

// --------------------------------------------------------------------------
//
//	Gurux Ltd
//
// Filename:        $HeadURL$
//
// Version:         $Revision$,
//
//	$Date$
//	$Author$
//
// # Copyright (c) Gurux Ltd
//
// ---------------------------------------------------------------------------
//
//	DESCRIPTION
//
// This file is a part of Gurux Device Framework.
//
// Gurux Device Framework is Open Source software; you can redistribute it
// and/or modify it under the terms of the GNU General Public License
// as published by the Free Software Foundation; version 2 of the License.
// Gurux Device Framework is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU General Public License for more details.
//
// More information of Gurux products: https://www.gurux.org
//
// This code is licensed under the GNU General Public License v2.
// Full text may be retrieved at http://www.gnu.org/licenses/gpl-2.0.txt
// ---------------------------------------------------------------------------

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/Gurux/gxcommon-go"
)

// Authenticator runs the device specific login handshake after the TCP
// connection is opened. The handshake is aborted when ctx is done.
type Authenticator interface {
	SubmitLogin(ctx context.Context, s *LoginSession) error
}

// NoLogin is used with devices that don't require a login exchange.
type NoLogin struct{}

// SubmitLogin implements Authenticator.
func (NoLogin) SubmitLogin(context.Context, *LoginSession) error {
	return nil
}

// passwordPrompt is sent by the device when a password is required.
const passwordPrompt = "Password:"

// PasswordLogin answers the password prompt of the device with the
// password given to NewGXExtron.
type PasswordLogin struct{}

// SubmitLogin implements Authenticator.
func (PasswordLogin) SubmitLogin(ctx context.Context, s *LoginSession) error {
	if _, err := s.ReadUntil(passwordPrompt); err != nil {
		return err
	}
	if err := s.SendPassword(); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := s.ReadUntil("\r\n")
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "Login") {
			return nil
		}
		return fmt.Errorf("%w: %q", ErrLoginRejected, line)
	}
}

// LoginSession gives the Authenticator access to the connection while
// the client is authenticating.
type LoginSession struct {
	client *GXExtron
	conn   net.Conn
	f      *framer
}

// Password returns the password of the connection endpoint.
func (s *LoginSession) Password() string {
	return s.client.password
}

// Send writes text to the device as is.
func (s *LoginSession) Send(text string) error {
	return s.send(text, text)
}

// SendPassword writes the password followed by CR LF.
// The password is not written to the trace.
func (s *LoginSession) SendPassword() error {
	return s.send(s.client.password+"\r\n", "****")
}

func (s *LoginSession) send(text string, traced string) error {
	n, err := s.conn.Write([]byte(text))
	s.client.bytesSent.Add(uint64(n))
	if err != nil {
		return err
	}
	s.client.tracef(gxcommon.TraceTypesSent, "TX: %s", traced)
	return nil
}

// ReadUntil reads until the received data ends with delimiter.
// Returned text includes the delimiter.
func (s *LoginSession) ReadUntil(delimiter string) (string, error) {
	text, ok, err := s.f.readUntil([]byte(delimiter))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrCommandFailed
	}
	s.client.bytesReceived.Add(uint64(len(text)))
	s.client.tracef(gxcommon.TraceTypesReceived, "RX: %s", text)
	return text, nil
}
