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
	"context"
	"net"
	"strings"
	"sync"
	"testing"
	"time"
)

// Special handler replies.
const (
	// replyNone sends nothing back.
	replyNone = "\x00none"
	// replyClose closes the connection.
	replyClose = "\x00close"
	// replyReset resets the connection.
	replyReset = "\x00reset"
)

// mockDevice is a scripted SIS device listening on the loopback interface.
type mockDevice struct {
	listener net.Listener
	// greeting is written when a connection is accepted.
	greeting string
	// handler returns the raw reply for a received command.
	handler func(cmd string) string
	// checkOverlap reports a command that arrives while a reply is pending.
	checkOverlap bool

	mu       sync.Mutex
	accepted int
	closed   int
	overlaps int
	commands []string
	received []time.Time
	conns    []net.Conn

	wg sync.WaitGroup
}

func startMockDevice(t *testing.T, handler func(cmd string) string) *mockDevice {
	t.Helper()
	return startMockDeviceWith(t, "", false, handler)
}

func startMockDeviceWith(t *testing.T, greeting string, checkOverlap bool, handler func(cmd string) string) *mockDevice {
	t.Helper()
	l, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	m := &mockDevice{listener: l, greeting: greeting, handler: handler, checkOverlap: checkOverlap}
	m.wg.Add(1)
	go m.acceptLoop()
	t.Cleanup(m.close)
	return m
}

func (m *mockDevice) port() int {
	return m.listener.Addr().(*net.TCPAddr).Port
}

// client returns a connected client with short timings.
func (m *mockDevice) client(t *testing.T) *GXExtron {
	t.Helper()
	d := m.newClient(t)
	if err := d.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	return d
}

func (m *mockDevice) newClient(t *testing.T) *GXExtron {
	t.Helper()
	d := NewGXExtron("127.0.0.1", m.port(), "secret")
	d.SetDialTimeout(time.Second)
	d.SetAuthenticationTimeout(time.Second)
	d.SetCommandTimeout(time.Second)
	d.SetRetryPolicy(RetryPolicy{Attempts: 5, Delay: 20 * time.Millisecond, RetryableCodes: []string{"E10"}})
	t.Cleanup(func() { _ = d.Disconnect() })
	return d
}

func (m *mockDevice) acceptLoop() {
	defer m.wg.Done()
	for {
		conn, err := m.listener.Accept()
		if err != nil {
			return
		}
		m.mu.Lock()
		m.accepted++
		m.conns = append(m.conns, conn)
		m.mu.Unlock()
		m.wg.Add(1)
		go m.serve(conn)
	}
}

func (m *mockDevice) serve(conn net.Conn) {
	defer m.wg.Done()
	defer func() {
		conn.Close()
		m.mu.Lock()
		m.closed++
		m.mu.Unlock()
	}()
	if m.greeting != "" {
		if _, err := conn.Write([]byte(m.greeting)); err != nil {
			return
		}
	}
	r := bufio.NewReader(conn)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimSuffix(line, "\n")
		m.mu.Lock()
		m.commands = append(m.commands, cmd)
		m.received = append(m.received, time.Now())
		m.mu.Unlock()

		reply := m.handler(cmd)
		if m.checkOverlap && m.pendingInput(conn, r) {
			m.mu.Lock()
			m.overlaps++
			m.mu.Unlock()
		}
		switch reply {
		case replyNone:
		case replyClose:
			return
		case replyReset:
			if tc, ok := conn.(*net.TCPConn); ok {
				_ = tc.SetLinger(0)
			}
			return
		default:
			if _, err := conn.Write([]byte(reply)); err != nil {
				return
			}
		}
	}
}

// pendingInput returns true if the client has sent more data before the
// reply of the current command is written.
func (m *mockDevice) pendingInput(conn net.Conn, r *bufio.Reader) bool {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Millisecond))
	defer conn.SetReadDeadline(time.Time{})
	_, err := r.Peek(1)
	return err == nil
}

func (m *mockDevice) close() {
	m.listener.Close()
	m.mu.Lock()
	for _, c := range m.conns {
		c.Close()
	}
	m.mu.Unlock()
	m.wg.Wait()
}

func (m *mockDevice) stats() (accepted, closed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accepted, m.closed
}

func (m *mockDevice) commandCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.commands)
}

func (m *mockDevice) arrivals() []time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Time(nil), m.received...)
}

// waitFor polls cond until it returns true or the timeout expires.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met before timeout")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// stateRecorder collects connection state changes.
type stateRecorder struct {
	mu     sync.Mutex
	states []ConnectionState
}

func (r *stateRecorder) attach(d *GXExtron) {
	d.SetOnStateChange(func(_ *GXExtron, state ConnectionState) {
		r.mu.Lock()
		r.states = append(r.states, state)
		r.mu.Unlock()
	})
}

func (r *stateRecorder) count(state ConnectionState) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.states {
		if s == state {
			n++
		}
	}
	return n
}
