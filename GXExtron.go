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
	"net"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gurux/gxcommon-go"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// DefaultDialTimeout is the default timeout for opening the TCP connection.
	DefaultDialTimeout = 10 * time.Second
	// DefaultAuthenticationTimeout is the default timeout for the login handshake.
	DefaultAuthenticationTimeout = 5 * time.Second
	// DefaultCommandTimeout is the default timeout for one command write and read cycle.
	DefaultCommandTimeout = 3 * time.Second
	// staleReplyWait is how long a late reply is drained after a timeout.
	staleReplyWait = 10 * time.Millisecond
)

// StateEventHandler is called when the connection state changes.
type StateEventHandler func(c *GXExtron, state ConnectionState)

// TraceEventHandler is called when the client is sending or receiving data.
type TraceEventHandler func(c *GXExtron, e gxcommon.TraceEventArgs)

// ErrorEventHandler is called when an error is not returned to a caller,
// for example when a recovery reconnect fails.
type ErrorEventHandler func(c *GXExtron, err error)

// settings are the policy values used by one operation.
type settings struct {
	dialTimeout     time.Duration
	authTimeout     time.Duration
	commandTimeout  time.Duration
	retry           RetryPolicy
	maxResponseSize int
	authenticator   Authenticator
}

// GXExtron is a client for the Extron SIS control protocol.
//
// One TCP connection is shared by all callers. Commands are sent one at a
// time and a broken connection is reconnected automatically.
type GXExtron struct {
	hostName string
	port     int
	password string

	// UseIPv6 defines if IPv6 is used. Default is False (IPv4).
	UseIPv6 bool

	// mu protects settings, trace level and callbacks.
	mu       sync.RWMutex
	settings settings
	// The trace level specifies which types of trace messages are emitted.
	traceLevel gxcommon.TraceLevel

	// gate is held by the command or lifecycle operation that owns conn.
	gate  chan struct{}
	conn  net.Conn
	f     *framer
	state atomic.Int32
	// stale is set when a command timed out and its reply may still arrive.
	stale bool

	// Events raised while the gate is held are delivered after release.
	eventMu sync.Mutex
	events  []func()

	bytesSent     atomic.Uint64
	bytesReceived atomic.Uint64

	//Called when the connection state is changed.
	onState StateEventHandler

	//Called when the client is sending or receiving data.
	onTrace TraceEventHandler

	//Called when an error can't be returned to the caller.
	onErr ErrorEventHandler

	// Printer for localized messages.
	p *message.Printer
}

// NewGXExtron creates a client for the device at hostName:port.
// The password is given to the Authenticator when connecting.
func NewGXExtron(hostName string, port int, password string) *GXExtron {
	g := &GXExtron{
		hostName: hostName,
		port:     port,
		password: password,
		gate:     make(chan struct{}, 1),
		settings: settings{
			dialTimeout:     DefaultDialTimeout,
			authTimeout:     DefaultAuthenticationTimeout,
			commandTimeout:  DefaultCommandTimeout,
			retry:           DefaultRetryPolicy(),
			maxResponseSize: DefaultMaxResponseSize,
			authenticator:   NoLogin{},
		},
	}
	g.Localize(language.AmericanEnglish)
	return g
}

// String returns the endpoint as host:port.
func (g *GXExtron) String() string {
	return net.JoinHostPort(g.hostName, strconv.Itoa(g.port))
}

// GetName returns the endpoint as host:port.
func (g *GXExtron) GetName() string {
	return g.String()
}

// GetHostName returns the host name of the device.
func (g *GXExtron) GetHostName() string {
	return g.hostName
}

// GetPort returns the TCP port of the device.
func (g *GXExtron) GetPort() int {
	return g.port
}

// GetMediaType returns the media type name.
func (g *GXExtron) GetMediaType() string {
	return "Extron"
}

// GetState returns the current connection state.
func (g *GXExtron) GetState() ConnectionState {
	return ConnectionState(g.state.Load())
}

// IsConnected returns true if commands can be sent.
func (g *GXExtron) IsConnected() bool {
	return g.GetState() == ConnectionStateConnected
}

// GetBytesSent returns the number of sent bytes.
func (g *GXExtron) GetBytesSent() uint64 {
	return g.bytesSent.Load()
}

// GetBytesReceived returns the number of received bytes.
func (g *GXExtron) GetBytesReceived() uint64 {
	return g.bytesReceived.Load()
}

// ResetByteCounters resets the sent and received byte counters.
func (g *GXExtron) ResetByteCounters() {
	g.bytesSent.Store(0)
	g.bytesReceived.Store(0)
}

// Validate checks the endpoint and the policy values.
func (g *GXExtron) Validate() error {
	s := g.current()
	if strings.TrimSpace(g.hostName) == "" {
		return errors.New("host name is empty")
	}
	if g.port <= 0 || g.port > 65535 {
		return fmt.Errorf("invalid port %d", g.port)
	}
	if s.dialTimeout <= 0 || s.authTimeout <= 0 || s.commandTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	if s.retry.Attempts < 0 || s.retry.Delay < 0 {
		return errors.New("invalid retry policy")
	}
	if s.authenticator == nil {
		return errors.New("authenticator is not set")
	}
	return nil
}

func (g *GXExtron) current() settings {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.settings
}

// GetDialTimeout returns the timeout for opening the TCP connection.
func (g *GXExtron) GetDialTimeout() time.Duration {
	return g.current().dialTimeout
}

// SetDialTimeout sets the timeout for opening the TCP connection.
func (g *GXExtron) SetDialTimeout(value time.Duration) {
	g.mu.Lock()
	g.settings.dialTimeout = value
	g.mu.Unlock()
}

// GetAuthenticationTimeout returns the timeout for the login handshake.
func (g *GXExtron) GetAuthenticationTimeout() time.Duration {
	return g.current().authTimeout
}

// SetAuthenticationTimeout sets the timeout for the login handshake.
func (g *GXExtron) SetAuthenticationTimeout(value time.Duration) {
	g.mu.Lock()
	g.settings.authTimeout = value
	g.mu.Unlock()
}

// GetCommandTimeout returns the timeout of one command cycle.
func (g *GXExtron) GetCommandTimeout() time.Duration {
	return g.current().commandTimeout
}

// SetCommandTimeout sets the timeout of one command cycle.
// Each retry attempt has its own timeout.
func (g *GXExtron) SetCommandTimeout(value time.Duration) {
	g.mu.Lock()
	g.settings.commandTimeout = value
	g.mu.Unlock()
}

// GetRetryPolicy returns the retry policy.
func (g *GXExtron) GetRetryPolicy() RetryPolicy {
	p := g.current().retry
	p.RetryableCodes = append([]string(nil), p.RetryableCodes...)
	return p
}

// SetRetryPolicy sets the retry policy.
func (g *GXExtron) SetRetryPolicy(value RetryPolicy) {
	value.RetryableCodes = append([]string(nil), value.RetryableCodes...)
	g.mu.Lock()
	g.settings.retry = value
	g.mu.Unlock()
}

// GetMaxResponseSize returns the maximum size of one response.
func (g *GXExtron) GetMaxResponseSize() int {
	return g.current().maxResponseSize
}

// SetMaxResponseSize sets the maximum size of one response.
// Zero disables the limit. The value is used from the next connect.
func (g *GXExtron) SetMaxResponseSize(value int) {
	g.mu.Lock()
	g.settings.maxResponseSize = value
	g.mu.Unlock()
}

// SetAuthenticator sets the login handshake used when connecting.
func (g *GXExtron) SetAuthenticator(value Authenticator) {
	g.mu.Lock()
	g.settings.authenticator = value
	g.mu.Unlock()
}

// GetTrace returns the trace level.
func (g *GXExtron) GetTrace() gxcommon.TraceLevel {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.traceLevel
}

// SetTrace sets the trace level.
func (g *GXExtron) SetTrace(traceLevel gxcommon.TraceLevel) error {
	g.mu.Lock()
	g.traceLevel = traceLevel
	g.mu.Unlock()
	return nil
}

// SetOnError sets the error handler.
//
// Handlers are called after the connection is released, so they may call
// the client. Disconnect from a handler waits for the running command.
func (g *GXExtron) SetOnError(value ErrorEventHandler) {
	g.mu.Lock()
	g.onErr = value
	g.mu.Unlock()
}

// SetOnStateChange sets the connection state handler. It is called in the
// same way as the error handler.
func (g *GXExtron) SetOnStateChange(value StateEventHandler) {
	g.mu.Lock()
	g.onState = value
	g.mu.Unlock()
}

// SetOnTrace sets the trace handler. It is called in the same way as the
// error handler.
func (g *GXExtron) SetOnTrace(value TraceEventHandler) {
	g.mu.Lock()
	g.onTrace = value
	g.mu.Unlock()
}

// acquire takes the gate or fails when ctx is done.
func (g *GXExtron) acquire(ctx context.Context) error {
	select {
	case g.gate <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// release frees the gate and then delivers the queued events, so that
// handlers may call back into the client.
func (g *GXExtron) release() {
	<-g.gate
	g.flush()
}

func (g *GXExtron) notify(event func()) {
	g.eventMu.Lock()
	g.events = append(g.events, event)
	g.eventMu.Unlock()
}

func (g *GXExtron) flush() {
	g.eventMu.Lock()
	events := g.events
	g.events = nil
	g.eventMu.Unlock()
	for _, event := range events {
		event()
	}
}

// Connect opens the connection and runs the login handshake.
// Nothing is done if the client is already connected.
func (g *GXExtron) Connect(ctx context.Context) error {
	if err := g.acquire(ctx); err != nil {
		return err
	}
	defer g.release()
	return g.connect(ctx)
}

// Disconnect closes the connection.
// Close errors are ignored and the state is always disconnected after the call.
func (g *GXExtron) Disconnect() error {
	g.gate <- struct{}{}
	defer g.release()
	g.disconnect()
	return nil
}

// Reconnect closes the connection and connects again.
func (g *GXExtron) Reconnect(ctx context.Context) error {
	if err := g.acquire(ctx); err != nil {
		return err
	}
	defer g.release()
	g.disconnect()
	return g.connect(ctx)
}

func (g *GXExtron) connect(ctx context.Context) error {
	if g.conn != nil {
		if g.IsConnected() {
			return nil
		}
		g.disconnect()
	}
	s := g.current()
	g.setState(ConnectionStateConnecting)
	g.trace(gxcommon.TraceTypesInfo, g.sprintf("msg.connecting_to", g.hostName, g.port, s.dialTimeout.Milliseconds()))
	network := "tcp4"
	if g.UseIPv6 {
		network = "tcp6"
	}
	d := net.Dialer{Timeout: s.dialTimeout}
	conn, err := d.DialContext(ctx, network, g.String())
	if err != nil {
		g.setState(ConnectionStateDisconnected)
		g.trace(gxcommon.TraceTypesError, g.sprintf("msg.connect_failed", g.hostName, g.port, err))
		g.errorf(err)
		return err
	}
	g.setState(ConnectionStateAuthenticating)
	f := newFramer(conn, s.maxResponseSize)
	if err = g.authenticate(ctx, s, conn, f); err != nil {
		_ = conn.Close()
		g.setState(ConnectionStateDisconnected)
		g.trace(gxcommon.TraceTypesError, g.sprintf("msg.authentication_failed", g.hostName, g.port, err))
		g.errorf(err)
		return err
	}
	g.conn = conn
	g.f = f
	g.stale = false
	g.setState(ConnectionStateConnected)
	g.trace(gxcommon.TraceTypesInfo, g.sprintf("msg.connected_to", g.hostName, g.port))
	return nil
}

// authenticate runs the Authenticator in its own goroutine so that a hook
// that never returns can't block Connect past the authentication timeout.
func (g *GXExtron) authenticate(ctx context.Context, s settings, conn net.Conn, f *framer) error {
	actx, cancel := context.WithTimeout(ctx, s.authTimeout)
	defer cancel()
	if deadline, ok := actx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	session := &LoginSession{client: g, conn: conn, f: f}
	done := make(chan error, 1)
	go func() {
		done <- s.authenticator.SubmitLogin(actx, session)
	}()
	var err error
	select {
	case err = <-done:
	case <-actx.Done():
		// Closing the socket unblocks the hook.
		_ = conn.Close()
		err = actx.Err()
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	_ = conn.SetDeadline(time.Time{})
	return nil
}

func (g *GXExtron) disconnect() {
	g.setState(ConnectionStateDisconnected)
	if g.conn == nil {
		return
	}
	g.trace(gxcommon.TraceTypesInfo, g.sprintf("msg.closing_connection", g.hostName, g.port))
	// The connection is going away, close errors don't matter.
	_ = g.conn.Close()
	g.conn = nil
	g.f = nil
	g.trace(gxcommon.TraceTypesInfo, g.sprintf("msg.connection_closed", g.hostName, g.port))
}

// recoverConnection reconnects unless another caller has already done it.
func (g *GXExtron) recoverConnection(ctx context.Context) error {
	if err := g.acquire(ctx); err != nil {
		return err
	}
	defer g.release()
	if g.IsConnected() {
		return nil
	}
	g.disconnect()
	return g.connect(ctx)
}

// RunCommand sends the command to the device and returns the reply without
// the delimiter and surrounding white space.
//
// Retryable error codes are retried as defined by the retry policy. Other
// error codes are returned as *ResponseError. If the connection is not
// usable when the command ends, a reconnect is made before returning. The
// result of the command is returned even if the reconnect fails.
func (g *GXExtron) RunCommand(ctx context.Context, command string) (string, error) {
	ret, err := g.runCommand(ctx, command)
	if !g.IsConnected() {
		g.trace(gxcommon.TraceTypesInfo, g.sprintf("msg.reconnecting", g.hostName, g.port))
		if rerr := g.recoverConnection(context.WithoutCancel(ctx)); rerr != nil {
			g.trace(gxcommon.TraceTypesError, g.sprintf("msg.reconnect_failed", g.hostName, g.port, rerr))
			g.errorf(rerr)
		}
	}
	g.flush()
	return ret, err
}

func (g *GXExtron) runCommand(ctx context.Context, command string) (string, error) {
	s := g.current()
	response, err := g.attempt(ctx, s, command)
	if err != nil {
		return "", err
	}
	if s.retry.Classify(response) == ClassificationTransient {
		for count := 0; count < s.retry.Attempts; count++ {
			g.trace(gxcommon.TraceTypesInfo, g.sprintf("msg.retrying", command, strings.TrimSpace(response), count+1, s.retry.Attempts))
			if err = sleep(ctx, s.retry.Delay); err != nil {
				return "", err
			}
			if response, err = g.attempt(ctx, s, command); err != nil {
				return "", err
			}
			if s.retry.Classify(response) != ClassificationTransient {
				break
			}
		}
	}
	switch s.retry.Classify(response) {
	case ClassificationTransient:
		return "", &ResponseError{Code: strings.TrimSpace(response), Command: command, transient: true}
	case ClassificationTerminal:
		return "", &ResponseError{Code: strings.TrimSpace(response), Command: command}
	}
	return strings.TrimSpace(response), nil
}

// attempt runs one write and read cycle under the command timeout.
// Returned response includes the delimiter.
func (g *GXExtron) attempt(ctx context.Context, s settings, command string) (string, error) {
	actx, cancel := context.WithTimeout(ctx, s.commandTimeout)
	defer cancel()
	if err := g.acquire(actx); err != nil {
		return "", timeoutError(err)
	}
	defer g.release()
	c := g.conn
	if c == nil {
		return "", gxcommon.ErrConnectionClosed
	}
	if g.stale {
		g.f.discard(c, staleReplyWait)
		g.stale = false
	}
	if deadline, ok := actx.Deadline(); ok {
		_ = c.SetDeadline(deadline)
	}
	// Cancel of the parent context unblocks the pending read. The gate is
	// not released before a started callback has touched the socket, so it
	// can't cut short the deadline of the next command.
	fired := make(chan struct{})
	stop := context.AfterFunc(actx, func() {
		_ = c.SetDeadline(time.Now())
		close(fired)
	})
	defer func() {
		if !stop() {
			<-fired
		}
	}()

	g.tracef(gxcommon.TraceTypesSent, "TX: %s", command)
	n, err := c.Write([]byte(command + "\n"))
	g.bytesSent.Add(uint64(n))
	if err != nil {
		return "", g.transportError(actx, err)
	}
	response, ok, err := g.f.readUntil(responseDelimiter)
	if err != nil {
		return "", g.transportError(actx, err)
	}
	if !ok {
		return "", ErrCommandFailed
	}
	g.bytesReceived.Add(uint64(len(response)))
	g.tracef(gxcommon.TraceTypesReceived, "RX: %s", response)
	return response, nil
}

// transportError classifies a write or read error. Timeouts keep the socket
// open. Every other failure (reset, broken pipe, closed socket) marks the
// connection broken.
func (g *GXExtron) transportError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		g.stale = true
		return timeoutError(ctx.Err())
	}
	if isTimeout(err) {
		g.stale = true
		return ErrCommandTimeout
	}
	g.setState(ConnectionStateDisconnected)
	g.trace(gxcommon.TraceTypesError, g.sprintf("msg.connection_reset", g.hostName, g.port, err))
	if errors.Is(err, ErrResponseTooLong) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrConnectionReset, err)
}

func timeoutError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return ErrCommandTimeout
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *GXExtron) setState(state ConnectionState) {
	old := ConnectionState(g.state.Swap(int32(state)))
	if old == state {
		return
	}
	g.mu.RLock()
	cb := g.onState
	g.mu.RUnlock()
	if cb != nil {
		g.notify(func() { cb(g, state) })
	}
}

func (g *GXExtron) errorf(err error) {
	g.mu.RLock()
	cb := g.onErr
	g.mu.RUnlock()
	if cb != nil {
		g.notify(func() { cb(g, err) })
	}
}

func (g *GXExtron) sprintf(key message.Reference, a ...any) string {
	g.mu.RLock()
	p := g.p
	g.mu.RUnlock()
	return p.Sprintf(key, a...)
}

func (g *GXExtron) tracef(traceType gxcommon.TraceTypes, fmtStr string, a ...any) {
	g.trace(traceType, fmt.Sprintf(fmtStr, a...))
}

func (g *GXExtron) trace(traceType gxcommon.TraceTypes, message string) {
	g.mu.RLock()
	trace := !(int(g.traceLevel) < int(traceType))
	cb := g.onTrace
	g.mu.RUnlock()
	if cb != nil && trace {
		p := gxcommon.NewTraceEventArgs(traceType, message, "")
		g.notify(func() { cb(g, *p) })
	}
}

// Localize messages for the specified language.
// No errors is returned if language is not supported.
func (g *GXExtron) Localize(language language.Tag) {
	g.mu.Lock()
	g.p = message.NewPrinter(language)
	g.mu.Unlock()
}
