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
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Gurux/gxcommon-go"
)

func TestConnectAndDisconnect(t *testing.T) {
	m := startMockDevice(t, func(cmd string) string { return "ok\r\n" })
	d := m.newClient(t)
	var rec stateRecorder
	rec.attach(d)

	if d.IsConnected() {
		t.Fatal("new client should not be connected")
	}
	if err := d.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if !d.IsConnected() || d.GetState() != ConnectionStateConnected {
		t.Fatalf("state = %v, want Connected", d.GetState())
	}
	// Second connect is a no-op.
	if err := d.Connect(context.Background()); err != nil {
		t.Fatalf("second connect failed: %v", err)
	}
	if accepted, _ := m.stats(); accepted != 1 {
		t.Errorf("accepted = %d, want 1", accepted)
	}
	if err := d.Disconnect(); err != nil {
		t.Fatalf("disconnect returned %v", err)
	}
	if d.IsConnected() {
		t.Error("client should be disconnected")
	}
	// Disconnect always succeeds.
	if err := d.Disconnect(); err != nil {
		t.Fatalf("second disconnect returned %v", err)
	}
	for _, s := range []ConnectionState{ConnectionStateConnecting, ConnectionStateAuthenticating, ConnectionStateConnected} {
		if n := rec.count(s); n != 1 {
			t.Errorf("%v reported %d times, want 1", s, n)
		}
	}
	waitFor(t, time.Second, func() bool {
		_, closed := m.stats()
		return closed == 1
	})
}

func TestConnectRefused(t *testing.T) {
	m := startMockDevice(t, func(cmd string) string { return "ok\r\n" })
	d := m.newClient(t)
	m.close()
	var reported atomic.Int32
	d.SetOnError(func(*GXExtron, error) { reported.Add(1) })
	if err := d.Connect(context.Background()); err == nil {
		t.Fatal("connect should fail")
	}
	if d.GetState() != ConnectionStateDisconnected {
		t.Errorf("state = %v, want Disconnected", d.GetState())
	}
	if reported.Load() != 1 {
		t.Errorf("error handler called %d times, want 1", reported.Load())
	}
}

func TestReconnect(t *testing.T) {
	m := startMockDevice(t, func(cmd string) string { return "ok\r\n" })
	d := m.client(t)
	if err := d.Reconnect(context.Background()); err != nil {
		t.Fatalf("reconnect failed: %v", err)
	}
	if !d.IsConnected() {
		t.Fatal("client should be connected after reconnect")
	}
	if accepted, _ := m.stats(); accepted != 2 {
		t.Errorf("accepted = %d, want 2", accepted)
	}
	if _, err := d.RunCommand(context.Background(), "Q"); err != nil {
		t.Fatalf("command after reconnect failed: %v", err)
	}
}

// blockingLogin never returns before release is closed.
type blockingLogin struct {
	release chan struct{}
}

func (b blockingLogin) SubmitLogin(context.Context, *LoginSession) error {
	<-b.release
	return nil
}

func TestAuthenticationTimeout(t *testing.T) {
	m := startMockDevice(t, func(cmd string) string { return "ok\r\n" })
	d := m.newClient(t)
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	d.SetAuthenticator(blockingLogin{release: release})
	d.SetAuthenticationTimeout(50 * time.Millisecond)

	start := time.Now()
	err := d.Connect(context.Background())
	if !errors.Is(err, ErrAuthentication) {
		t.Fatalf("err = %v, want ErrAuthentication", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("connect returned after %v, before the timeout", elapsed)
	}
	if d.GetState() != ConnectionStateDisconnected {
		t.Errorf("state = %v, want Disconnected", d.GetState())
	}
	// The device sees the socket closed.
	waitFor(t, time.Second, func() bool {
		accepted, closed := m.stats()
		return accepted == 1 && closed == 1
	})
}

type failingLogin struct{}

func (failingLogin) SubmitLogin(context.Context, *LoginSession) error {
	return ErrLoginRejected
}

func TestAuthenticationFailure(t *testing.T) {
	m := startMockDevice(t, func(cmd string) string { return "ok\r\n" })
	d := m.newClient(t)
	d.SetAuthenticator(failingLogin{})
	err := d.Connect(context.Background())
	if !errors.Is(err, ErrAuthentication) || !errors.Is(err, ErrLoginRejected) {
		t.Fatalf("err = %v, want ErrAuthentication wrapping ErrLoginRejected", err)
	}
	if d.IsConnected() {
		t.Error("client should not be connected")
	}
}

func TestRunCommandTrimsReply(t *testing.T) {
	tests := []struct {
		reply string
		want  string
	}{
		{"Vol050\r\n", "Vol050"},
		{"  Amt1 \r\n", "Amt1"},
		{"\tSW4 HD 4K\r\n", "SW4 HD 4K"},
		{"\r\n", ""},
	}
	for _, tt := range tests {
		m := startMockDevice(t, func(cmd string) string { return tt.reply })
		d := m.client(t)
		got, err := d.RunCommand(context.Background(), "V")
		if err != nil {
			t.Fatalf("reply %q: %v", tt.reply, err)
		}
		if got != tt.want {
			t.Errorf("reply %q: got %q, want %q", tt.reply, got, tt.want)
		}
	}
}

func TestRunCommandWritesNewlineTerminatedCommand(t *testing.T) {
	var got atomic.Value
	m := startMockDevice(t, func(cmd string) string {
		got.Store(cmd)
		return "60-1234-01\r\n"
	})
	d := m.client(t)
	if _, err := d.QueryPartNumber(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got.Load() != "N" {
		t.Errorf("device received %q, want %q", got.Load(), "N")
	}
	if d.GetBytesSent() != 2 || d.GetBytesReceived() != uint64(len("60-1234-01\r\n")) {
		t.Errorf("byte counters = %d/%d", d.GetBytesSent(), d.GetBytesReceived())
	}
	d.ResetByteCounters()
	if d.GetBytesSent() != 0 || d.GetBytesReceived() != 0 {
		t.Error("byte counters not reset")
	}
}

func TestConcurrentCommandsAreSerialized(t *testing.T) {
	m := startMockDeviceWith(t, "", true, func(cmd string) string {
		time.Sleep(2 * time.Millisecond)
		return "echo" + cmd + "\r\n"
	})
	d := m.client(t)

	const callers = 8
	const perCaller = 10
	var wg sync.WaitGroup
	errs := make(chan error, callers*perCaller)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < perCaller; j++ {
				cmd := fmt.Sprintf("%d.%d", i, j)
				got, err := d.RunCommand(context.Background(), cmd)
				if err != nil {
					errs <- err
					continue
				}
				if got != "echo"+cmd {
					errs <- fmt.Errorf("command %s got reply %q", cmd, got)
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
	if n := m.commandCount(); n != callers*perCaller {
		t.Errorf("device received %d commands, want %d", n, callers*perCaller)
	}
	m.mu.Lock()
	overlaps := m.overlaps
	m.mu.Unlock()
	if overlaps != 0 {
		t.Errorf("%d commands were written while another was in flight", overlaps)
	}
}

func TestTransientErrorIsRetried(t *testing.T) {
	for k := 0; k <= 5; k++ {
		t.Run(fmt.Sprintf("E10x%d", k), func(t *testing.T) {
			var calls atomic.Int32
			m := startMockDevice(t, func(cmd string) string {
				if int(calls.Add(1)) <= k {
					return "E10\r\n"
				}
				return "Vol050\r\n"
			})
			d := m.client(t)
			got, err := d.RunCommand(context.Background(), "V")
			if err != nil {
				t.Fatalf("command failed: %v", err)
			}
			if got != "Vol050" {
				t.Errorf("got %q", got)
			}
			// k retries after the first attempt.
			if n := m.commandCount(); n != k+1 {
				t.Errorf("device received %d commands, want %d", n, k+1)
			}
			at := m.arrivals()
			for i := 1; i < len(at); i++ {
				if gap := at[i].Sub(at[i-1]); gap < 20*time.Millisecond {
					t.Errorf("attempt %d came %v after the previous one", i, gap)
				}
			}
		})
	}
}

func TestTransientErrorRetriesAreBounded(t *testing.T) {
	m := startMockDevice(t, func(cmd string) string { return "E10\r\n" })
	d := m.client(t)
	_, err := d.RunCommand(context.Background(), "V")
	var re *ResponseError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want *ResponseError", err)
	}
	if re.Code != "E10" || !re.Temporary() {
		t.Errorf("code = %s temporary = %v", re.Code, re.Temporary())
	}
	if n := m.commandCount(); n != 6 {
		t.Errorf("device received %d commands, want 6", n)
	}
	if !d.IsConnected() {
		t.Error("device errors should not break the connection")
	}
}

func TestRetryEndsWithOtherError(t *testing.T) {
	var calls atomic.Int32
	m := startMockDevice(t, func(cmd string) string {
		if calls.Add(1) == 1 {
			return "E10\r\n"
		}
		return "E13\r\n"
	})
	d := m.client(t)
	_, err := d.RunCommand(context.Background(), "99V")
	var re *ResponseError
	if !errors.As(err, &re) || re.Code != "E13" || re.Temporary() {
		t.Fatalf("err = %v, want terminal E13", err)
	}
	if n := m.commandCount(); n != 2 {
		t.Errorf("device received %d commands, want 2", n)
	}
}

func TestTerminalErrorIsNotRetried(t *testing.T) {
	m := startMockDevice(t, func(cmd string) string { return "E22\r\n" })
	d := m.client(t)
	_, err := d.RunCommand(context.Background(), "9$")
	var re *ResponseError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want *ResponseError", err)
	}
	if re.Code != "E22" || re.Temporary() || re.Command != "9$" {
		t.Errorf("unexpected error %+v", re)
	}
	if n := m.commandCount(); n != 1 {
		t.Errorf("device received %d commands, want 1", n)
	}
}

func TestConfigurableRetryableCodes(t *testing.T) {
	var calls atomic.Int32
	m := startMockDevice(t, func(cmd string) string {
		if calls.Add(1) == 1 {
			return "E14\r\n"
		}
		return "1\r\n"
	})
	d := m.client(t)
	d.SetRetryPolicy(RetryPolicy{Attempts: 1, Delay: time.Millisecond, RetryableCodes: []string{"E10", "E14"}})
	got, err := d.RunCommand(context.Background(), "!")
	if err != nil || got != "1" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestCommandTimeout(t *testing.T) {
	m := startMockDevice(t, func(cmd string) string {
		if cmd == "slow" {
			return replyNone
		}
		return "ok\r\n"
	})
	d := m.client(t)
	// A timed out command must not shorten the deadline of the next one.
	for i := 0; i != 30; i++ {
		d.SetCommandTimeout(20 * time.Millisecond)
		if _, err := d.RunCommand(context.Background(), "slow"); !errors.Is(err, ErrCommandTimeout) {
			t.Fatalf("round %d: err = %v, want ErrCommandTimeout", i, err)
		}
		d.SetCommandTimeout(time.Second)
		if got, err := d.RunCommand(context.Background(), "Q"); err != nil || got != "ok" {
			t.Fatalf("round %d: next command got %q, %v", i, got, err)
		}
	}
	// Timeout does not close the socket.
	if !d.IsConnected() {
		t.Error("client should stay connected after a timeout")
	}
	if accepted, closed := m.stats(); accepted != 1 || closed != 0 {
		t.Errorf("accepted/closed = %d/%d, want 1/0", accepted, closed)
	}
}

func TestLateReplyIsDropped(t *testing.T) {
	m := startMockDevice(t, func(cmd string) string {
		if cmd == "slow" {
			time.Sleep(80 * time.Millisecond)
			return "late\r\n"
		}
		return "ok\r\n"
	})
	d := m.client(t)
	d.SetCommandTimeout(30 * time.Millisecond)
	if _, err := d.RunCommand(context.Background(), "slow"); !errors.Is(err, ErrCommandTimeout) {
		t.Fatalf("err = %v, want ErrCommandTimeout", err)
	}
	time.Sleep(150 * time.Millisecond)
	d.SetCommandTimeout(time.Second)
	for i := 0; i != 3; i++ {
		if got, err := d.RunCommand(context.Background(), "Q"); err != nil || got != "ok" {
			t.Fatalf("command %d got %q, %v", i, got, err)
		}
	}
}

func TestCommandCanceled(t *testing.T) {
	m := startMockDevice(t, func(cmd string) string { return replyNone })
	d := m.client(t)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(20*time.Millisecond, cancel)
	_, err := d.RunCommand(ctx, "Q")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestStreamEndFailsCommand(t *testing.T) {
	m := startMockDevice(t, func(cmd string) string { return replyClose })
	d := m.client(t)
	_, err := d.RunCommand(context.Background(), "Q")
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("err = %v, want ErrCommandFailed", err)
	}
}

func TestConnectionResetReconnects(t *testing.T) {
	var calls atomic.Int32
	m := startMockDevice(t, func(cmd string) string {
		if calls.Add(1) == 1 {
			return replyReset
		}
		return "ok\r\n"
	})
	d := m.client(t)
	var rec stateRecorder
	rec.attach(d)

	_, err := d.RunCommand(context.Background(), "Q")
	if !errors.Is(err, ErrConnectionReset) {
		t.Fatalf("err = %v, want ErrConnectionReset", err)
	}
	if n := rec.count(ConnectionStateDisconnected); n != 1 {
		t.Errorf("Disconnected reported %d times, want 1", n)
	}
	if n := rec.count(ConnectionStateConnecting); n != 1 {
		t.Errorf("reconnect attempted %d times, want 1", n)
	}
	if !d.IsConnected() {
		t.Fatal("client should be reconnected")
	}
	if accepted, _ := m.stats(); accepted != 2 {
		t.Errorf("accepted = %d, want 2", accepted)
	}
	if got, err := d.RunCommand(context.Background(), "Q"); err != nil || got != "ok" {
		t.Errorf("command after recovery got %q, %v", got, err)
	}
}

func TestFailedRecoveryKeepsOriginalError(t *testing.T) {
	var self atomic.Pointer[mockDevice]
	m := startMockDevice(t, func(cmd string) string {
		// The device goes away for good.
		self.Load().listener.Close()
		return replyReset
	})
	self.Store(m)
	d := m.client(t)
	var rec stateRecorder
	rec.attach(d)
	var reported atomic.Int32
	d.SetOnError(func(*GXExtron, error) { reported.Add(1) })

	_, err := d.RunCommand(context.Background(), "Q")
	if !errors.Is(err, ErrConnectionReset) {
		t.Fatalf("err = %v, want ErrConnectionReset", err)
	}
	if d.IsConnected() {
		t.Fatal("client should be disconnected when the device is gone")
	}
	if reported.Load() == 0 {
		t.Error("failed reconnect was not reported")
	}

	// The next call fails and makes exactly one more reconnect attempt.
	before := rec.count(ConnectionStateConnecting)
	_, err = d.RunCommand(context.Background(), "Q")
	if !errors.Is(err, gxcommon.ErrConnectionClosed) {
		t.Fatalf("err = %v, want ErrConnectionClosed", err)
	}
	if n := rec.count(ConnectionStateConnecting) - before; n != 1 {
		t.Errorf("reconnect attempted %d times, want 1", n)
	}
}

func TestRunCommandConnectsWhenDisconnected(t *testing.T) {
	m := startMockDevice(t, func(cmd string) string { return "ok\r\n" })
	d := m.newClient(t)
	_, err := d.RunCommand(context.Background(), "Q")
	if !errors.Is(err, gxcommon.ErrConnectionClosed) {
		t.Fatalf("err = %v, want ErrConnectionClosed", err)
	}
	if !d.IsConnected() {
		t.Fatal("recovery should have connected the client")
	}
}

func TestResponseTooLong(t *testing.T) {
	m := startMockDevice(t, func(cmd string) string {
		return strings.Repeat("x", 100) + "\r\n"
	})
	d := m.newClient(t)
	d.SetMaxResponseSize(64)
	if err := d.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	_, err := d.RunCommand(context.Background(), "Q")
	if !errors.Is(err, ErrResponseTooLong) {
		t.Fatalf("err = %v, want ErrResponseTooLong", err)
	}
}

func TestQueryDeviceInformation(t *testing.T) {
	replies := map[string]string{
		"1I": "DMP 128 Plus\r\n",
		"Q":  "1.02.0003\r\n",
		"N":  "60-1488-01\r\n",
	}
	m := startMockDevice(t, func(cmd string) string { return replies[cmd] })
	d := m.client(t)
	info, err := d.QueryDeviceInformation(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := DeviceInformation{ModelName: "DMP 128 Plus", FirmwareVersion: "1.02.0003", PartNumber: "60-1488-01"}
	if info != want {
		t.Errorf("got %+v, want %+v", info, want)
	}
}

func TestReboot(t *testing.T) {
	var got atomic.Value
	m := startMockDevice(t, func(cmd string) string {
		got.Store(cmd)
		return "Boot\r\n"
	})
	d := m.client(t)
	if err := d.Reboot(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got.Load() != "\x1b1BOOT" {
		t.Errorf("device received %q", got.Load())
	}
}

func TestTrace(t *testing.T) {
	m := startMockDevice(t, func(cmd string) string { return "ok\r\n" })
	d := m.newClient(t)
	var traces atomic.Int32
	d.SetOnTrace(func(*GXExtron, gxcommon.TraceEventArgs) { traces.Add(1) })
	if err := d.SetTrace(gxcommon.TraceLevel(100)); err != nil {
		t.Fatal(err)
	}
	if err := d.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := d.RunCommand(context.Background(), "Q"); err != nil {
		t.Fatal(err)
	}
	// Connecting, connected, TX and RX at least.
	if traces.Load() < 4 {
		t.Errorf("got %d trace events, want at least 4", traces.Load())
	}
}

func TestHandlerCanUseClient(t *testing.T) {
	m := startMockDevice(t, func(cmd string) string { return "ok\r\n" })
	d := m.newClient(t)
	var once sync.Once
	replies := make(chan string, 1)
	d.SetOnStateChange(func(c *GXExtron, state ConnectionState) {
		if state != ConnectionStateConnected {
			return
		}
		once.Do(func() {
			got, err := c.RunCommand(context.Background(), "Q")
			if err != nil {
				got = err.Error()
			}
			replies <- got
		})
	})
	d.SetOnTrace(func(c *GXExtron, e gxcommon.TraceEventArgs) {
		_ = c.GetState()
	})
	d.SetTrace(gxcommon.TraceLevelVerbose)
	done := make(chan error, 1)
	go func() {
		done <- d.Connect(context.Background())
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("connect failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("connect did not return while the state handler ran a command")
	}
	select {
	case got := <-replies:
		if got != "ok" {
			t.Errorf("reply = %q, want ok", got)
		}
	default:
		t.Error("state handler did not run")
	}
	if err := d.Disconnect(); err != nil {
		t.Fatal(err)
	}
}

func TestValidate(t *testing.T) {
	if err := NewGXExtron("10.0.0.1", 23, "").Validate(); err != nil {
		t.Errorf("valid client: %v", err)
	}
	if err := NewGXExtron("", 23, "").Validate(); err == nil {
		t.Error("empty host should fail")
	}
	if err := NewGXExtron("10.0.0.1", 70000, "").Validate(); err == nil {
		t.Error("invalid port should fail")
	}
	d := NewGXExtron("10.0.0.1", 23, "")
	d.SetCommandTimeout(0)
	if err := d.Validate(); err == nil {
		t.Error("zero timeout should fail")
	}
	d = NewGXExtron("10.0.0.1", 23, "")
	d.SetAuthenticator(nil)
	if err := d.Validate(); err == nil {
		t.Error("missing authenticator should fail")
	}
}

func TestEndpoint(t *testing.T) {
	d := NewGXExtron("10.0.0.1", 23, "pw")
	if d.String() != "10.0.0.1:23" || d.GetName() != d.String() {
		t.Errorf("String() = %q", d.String())
	}
	if d.GetHostName() != "10.0.0.1" || d.GetPort() != 23 {
		t.Errorf("endpoint = %s %d", d.GetHostName(), d.GetPort())
	}
}
