// Package gxextron provides a TCP client for devices that use the Extron
// SIS (Simple Instruction Set) control protocol, such as surround sound
// processors and HDMI switchers.
//
// Features
//
//   - One connection shared by any number of goroutines; commands are sent
//     one at a time.
//   - Framing: requests end with LF, replies end with CR LF.
//   - Login: pluggable Authenticator run under a timeout (NoLogin, PasswordLogin).
//   - Errors: E followed by two digits is a device error; E10 is retried.
//   - Recovery: a broken connection is reconnected when a command ends.
//   - Tracing: configurable trace level for sent/received/error/info.
//   - Events: Trace, Error and connection state callbacks.
//
// # Construction
//
// Use NewGXExtron to create a client with host, port and password. Timeouts,
// retry policy and the Authenticator are configured through setters.
//
// Example
//
//	d := gxextron.NewGXExtron("192.168.1.10", 23, "secret")
//	d.SetAuthenticator(gxextron.PasswordLogin{})
//	d.SetOnTrace(func(c *gxextron.GXExtron, e gxcommon.TraceEventArgs) {
//	    fmt.Println(e.String())
//	})
//	if err := d.Connect(ctx); err != nil {
//	    // handle connect error
//	}
//	defer d.Disconnect()
//
//	model, err := d.QueryModelName(ctx)
//
//	ssp := gxextron.NewSurroundSoundProcessor(d)
//	volume, err := ssp.GetVolume(ctx)
//
// # Errors and retries
//
// RunCommand returns ErrCommandTimeout when the command does not complete
// within the command timeout, ErrCommandFailed when the stream ends before
// a reply, ErrConnectionReset when the connection breaks, and *ResponseError
// when the device answers with an error code. Codes listed in
// RetryPolicy.RetryableCodes (E10 by default) are retried before the error
// is returned. Connect returns ErrAuthentication when the login does not
// complete in time.
//
// # Notes
//
// The zero value of GXExtron is not ready for use; always construct via
// NewGXExtron. Event handlers are called from the goroutine that runs the
// command after the connection is released, so a handler may call
// RunCommand or Reconnect. Handlers should return quickly.
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

