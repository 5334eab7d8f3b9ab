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
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

func xmlEscape(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}

// GetSettings returns the policy values that differ from the defaults as XML.
// The endpoint is not part of the settings.
func (g *GXExtron) GetSettings() string {
	s := g.current()
	def := DefaultRetryPolicy()
	var b strings.Builder
	if g.UseIPv6 {
		b.WriteString("<IPv6>1</IPv6>\n")
	}
	if s.dialTimeout != DefaultDialTimeout {
		fmt.Fprintf(&b, "<DialTimeout>%d</DialTimeout>\n", s.dialTimeout.Milliseconds())
	}
	if s.authTimeout != DefaultAuthenticationTimeout {
		fmt.Fprintf(&b, "<AuthenticationTimeout>%d</AuthenticationTimeout>\n", s.authTimeout.Milliseconds())
	}
	if s.commandTimeout != DefaultCommandTimeout {
		fmt.Fprintf(&b, "<CommandTimeout>%d</CommandTimeout>\n", s.commandTimeout.Milliseconds())
	}
	if s.retry.Attempts != def.Attempts {
		fmt.Fprintf(&b, "<RetryCount>%d</RetryCount>\n", s.retry.Attempts)
	}
	if s.retry.Delay != def.Delay {
		fmt.Fprintf(&b, "<RetryDelay>%d</RetryDelay>\n", s.retry.Delay.Milliseconds())
	}
	if codes := strings.Join(s.retry.RetryableCodes, ","); codes != strings.Join(def.RetryableCodes, ",") {
		fmt.Fprintf(&b, "<RetryableCodes>%s</RetryableCodes>\n", xmlEscape(codes))
	}
	if s.maxResponseSize != DefaultMaxResponseSize {
		fmt.Fprintf(&b, "<MaxResponseSize>%d</MaxResponseSize>\n", s.maxResponseSize)
	}
	return b.String()
}

// SetSettings parses settings returned by GetSettings.
// Unknown elements are ignored.
func (g *GXExtron) SetSettings(value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	s := g.current()
	useIPv6 := g.UseIPv6
	ms := func(v string) (time.Duration, bool) {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return time.Duration(n) * time.Millisecond, err == nil
	}
	dec := xml.NewDecoder(strings.NewReader("<root>" + value + "</root>"))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local == "root" {
			continue
		}
		var v string
		if err := dec.DecodeElement(&v, &se); err != nil {
			return err
		}
		switch se.Name.Local {
		case "IPv6":
			useIPv6 = strings.TrimSpace(v) == "1"
		case "DialTimeout":
			if d, ok := ms(v); ok {
				s.dialTimeout = d
			}
		case "AuthenticationTimeout":
			if d, ok := ms(v); ok {
				s.authTimeout = d
			}
		case "CommandTimeout":
			if d, ok := ms(v); ok {
				s.commandTimeout = d
			}
		case "RetryCount":
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				s.retry.Attempts = n
			}
		case "RetryDelay":
			if d, ok := ms(v); ok {
				s.retry.Delay = d
			}
		case "RetryableCodes":
			var codes []string
			for _, it := range strings.Split(v, ",") {
				if it = strings.TrimSpace(it); it != "" {
					codes = append(codes, it)
				}
			}
			s.retry.RetryableCodes = codes
		case "MaxResponseSize":
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				s.maxResponseSize = n
			}
		}
	}
	g.mu.Lock()
	g.settings = s
	g.mu.Unlock()
	g.UseIPv6 = useIPv6
	return nil
}
