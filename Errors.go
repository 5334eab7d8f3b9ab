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
	"errors"
	"fmt"
)

var (
	// ErrAuthentication is returned when the login handshake does not
	// complete within the authentication timeout or is rejected.
	ErrAuthentication = errors.New("authentication failed")

	// ErrLoginRejected is returned by PasswordLogin when the device does
	// not accept the password.
	ErrLoginRejected = errors.New("login rejected")

	// ErrCommandTimeout is returned when the write and read cycle of a
	// command does not complete within the command timeout.
	ErrCommandTimeout = errors.New("command timed out")

	// ErrCommandFailed is returned when the stream ends before a terminated
	// response is received.
	ErrCommandFailed = errors.New("command failed")

	// ErrConnectionReset is returned when the connection is reset or the
	// pipe is broken while a command is in flight.
	ErrConnectionReset = errors.New("connection was reset")

	// ErrResponseTooLong is returned when a response exceeds the maximum
	// response size without a delimiter.
	ErrResponseTooLong = errors.New("response too long")
)

// ResponseError is returned when the device answers with an error code.
type ResponseError struct {
	// Code is the error code returned by the device, for example E22.
	Code string
	// Command is the command that caused the error.
	Command string
	transient bool
}

// Error implements error.
func (e *ResponseError) Error() string {
	return fmt.Sprintf("command %q failed with error code %s", e.Command, e.Code)
}

// Temporary returns true if the code is a retryable code.
// The error is returned with a retryable code only after all retries are used.
func (e *ResponseError) Temporary() bool {
	return e.transient
}

// ParseError is returned when a reply can't be converted to the expected value.
type ParseError struct {
	Command string
	Reply   string
	Err     error
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid reply %q to command %q: %v", e.Reply, e.Command, e.Err)
}

// Unwrap returns the underlying conversion error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
