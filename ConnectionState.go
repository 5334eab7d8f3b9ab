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
	"fmt"
	"strings"

	"github.com/Gurux/gxcommon-go"
)

// ConnectionState is the lifecycle state of the device connection.
type ConnectionState int32

const (
	// ConnectionStateDisconnected means that there is no usable socket.
	ConnectionStateDisconnected ConnectionState = iota
	// ConnectionStateConnecting means that the TCP connection is being opened.
	ConnectionStateConnecting
	// ConnectionStateAuthenticating means that the login handshake is running.
	ConnectionStateAuthenticating
	// ConnectionStateConnected means that commands can be sent.
	ConnectionStateConnected
)

// ConnectionStateParse converts the given string into a ConnectionState value.
func ConnectionStateParse(value string) (ConnectionState, error) {
	var ret ConnectionState
	var err error
	switch strings.ToUpper(value) {
	case "DISCONNECTED":
		ret = ConnectionStateDisconnected
	case "CONNECTING":
		ret = ConnectionStateConnecting
	case "AUTHENTICATING":
		ret = ConnectionStateAuthenticating
	case "CONNECTED":
		ret = ConnectionStateConnected
	default:
		err = fmt.Errorf("%w: %q", gxcommon.ErrUnknownEnum, value)
	}
	return ret, err
}

// String returns the canonical name of the connection state.
// It satisfies fmt.Stringer.
func (g ConnectionState) String() string {
	var ret string
	switch g {
	case ConnectionStateDisconnected:
		ret = "Disconnected"
	case ConnectionStateConnecting:
		ret = "Connecting"
	case ConnectionStateAuthenticating:
		ret = "Authenticating"
	case ConnectionStateConnected:
		ret = "Connected"
	}
	return ret
}

// MediaState maps the connection state to the Gurux media state.
// Connecting and authenticating are both reported as opening.
func (g ConnectionState) MediaState() gxcommon.MediaState {
	switch g {
	case ConnectionStateConnecting, ConnectionStateAuthenticating:
		return gxcommon.MediaStateOpening
	case ConnectionStateConnected:
		return gxcommon.MediaStateOpen
	default:
		return gxcommon.MediaStateClosed
	}
}
