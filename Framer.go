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
	"bufio"
	"bytes"
	"errors"
	"io"
	"net"
	"time"
)

// DefaultMaxResponseSize is the default maximum size of one response.
const DefaultMaxResponseSize = 64 * 1024

// responseDelimiter ends every device response.
var responseDelimiter = []byte("\r\n")

// framer reads delimiter terminated messages from the connection.
type framer struct {
	r   *bufio.Reader
	max int
}

func newFramer(r io.Reader, max int) *framer {
	return &framer{r: bufio.NewReader(r), max: max}
}

// readUntil reads byte by byte until the received data ends with delimiter.
// Returned text includes the delimiter.
// If the stream ends before the delimiter is found false is returned
// without error and the partial data is dropped.
func (f *framer) readUntil(delimiter []byte) (string, bool, error) {
	var b []byte
	for {
		ch, err := f.r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", false, nil
			}
			return "", false, err
		}
		b = append(b, ch)
		if bytes.HasSuffix(b, delimiter) {
			return string(b), true, nil
		}
		if f.max > 0 && len(b) >= f.max {
			return "", false, ErrResponseTooLong
		}
	}
}

// discard drops buffered data and whatever conn delivers within wait.
// A reply that arrives after its command timed out is removed this way.
func (f *framer) discard(conn net.Conn, wait time.Duration) {
	f.r.Reset(conn)
	_ = conn.SetReadDeadline(time.Now().Add(wait))
	buf := make([]byte, 512)
	for {
		if _, err := conn.Read(buf); err != nil {
			return
		}
	}
}
