/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*
Package client implements a best-effort single query NTP client.
It sends one request to one server and reports the clock offset, nothing more.
*/
package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	ntp "github.com/dualclock/dualclock/ntp/protocol"
	log "github.com/sirupsen/logrus"
	"golang.org/x/net/ipv4"
	"golang.org/x/net/ipv6"
)

// DefaultPort is the well-known NTP port
const DefaultPort = "123"

// Errors a query can fail with. Returned errors wrap one of these
var (
	ErrTimeout   = errors.New("ntp query timed out")
	ErrNetwork   = errors.New("ntp network failure")
	ErrMalformed = errors.New("malformed ntp response")
)

// Response is the outcome of a single successful exchange
type Response struct {
	// Offset is network time minus local time
	Offset      time.Duration
	RTT         time.Duration
	Stratum     uint8
	Leap        ntp.LeapIndicator
	ReferenceID string
	// Time is the corrected time at the moment the response was received
	Time   time.Time
	Packet *ntp.Packet
}

// Client queries a single server over UDP
type Client struct {
	Server    string
	Timeout   time.Duration
	DSCP      int
	LocalAddr string

	now func() time.Time
}

// New returns a Client for server with the given per query timeout
func New(server string, timeout time.Duration) *Client {
	return &Client{Server: server, Timeout: timeout, now: time.Now}
}

// Address returns server address with the default port added when missing
func Address(server string) string {
	if _, _, err := net.SplitHostPort(server); err == nil {
		return server
	}
	return net.JoinHostPort(server, DefaultPort)
}

// Query sends one request and waits for the answer until timeout or ctx expiry
func (c *Client) Query(ctx context.Context) (*Response, error) {
	now := c.now
	if now == nil {
		now = time.Now
	}
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	addr := Address(c.Server)

	dialer := &net.Dialer{}
	if c.LocalAddr != "" {
		dialer.LocalAddr = &net.UDPAddr{IP: net.ParseIP(c.LocalAddr)}
	}
	conn, err := dialer.DialContext(ctx, "udp", addr)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to connect to %s: %w", addr, err))
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("%w: setting deadline: %w", ErrNetwork, err)
		}
	}
	// unblock the read as soon as the caller gives up
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetDeadline(time.Now())
	})
	defer stop()

	if c.DSCP > 0 {
		if err := enableDSCP(conn, c.DSCP); err != nil {
			log.Warningf("failed to set dscp %d on %s: %v", c.DSCP, addr, err)
		}
	}

	request := ntp.NewRequest(now())
	b, err := request.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if _, err := conn.Write(b); err != nil {
		return nil, classify(fmt.Errorf("failed to send request: %w", err))
	}

	buf := make([]byte, 1024)
	for {
		n, err := conn.Read(buf)
		clientReceiveTime := now()
		if err != nil {
			return nil, classify(fmt.Errorf("failed to read response from %s: %w", addr, err))
		}
		response, err := ntp.BytesToPacket(buf[:n])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		log.Debugf("Received response: %+v", response)
		err = response.ValidResponse(request)
		if errors.Is(err, ntp.ErrOriginMismatch) {
			// stale answer to an earlier request, wait for ours
			log.Debug("skipped response with foreign origin timestamp")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return newResponse(response, clientReceiveTime), nil
	}
}

func newResponse(p *ntp.Packet, clientReceiveTime time.Time) *Response {
	originTime := ntp.Unix(p.OrigTimeSec, p.OrigTimeFrac)
	serverReceiveTime := ntp.Unix(p.RxTimeSec, p.RxTimeFrac)
	serverTransmitTime := ntp.Unix(p.TxTimeSec, p.TxTimeFrac)
	// wire timestamps carry no monotonic reading
	clientReceiveTime = clientReceiveTime.Round(0)

	log.Debugf("Origin TX timestamp (T1): %v", originTime)
	log.Debugf("Server RX timestamp (T2): %v", serverReceiveTime)
	log.Debugf("Server TX timestamp (T3): %v", serverTransmitTime)
	log.Debugf("Client RX timestamp (T4): %v", clientReceiveTime)

	offset := ntp.Offset(originTime, serverReceiveTime, serverTransmitTime, clientReceiveTime)
	return &Response{
		Offset:      offset,
		RTT:         ntp.RoundTripDelay(originTime, serverReceiveTime, serverTransmitTime, clientReceiveTime),
		Stratum:     p.Stratum,
		Leap:        p.Leap(),
		ReferenceID: p.ReferenceIDString(),
		Time:        ntp.CorrectTime(clientReceiveTime, offset),
		Packet:      p,
	}
}

// classify maps transport errors to ErrTimeout or ErrNetwork
func classify(err error) error {
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) ||
		(errors.As(err, &nerr) && nerr.Timeout()) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}

// enableDSCP marks outgoing packets with the given DSCP value
func enableDSCP(conn net.Conn, dscp int) error {
	raddr, ok := conn.RemoteAddr().(*net.UDPAddr)
	if !ok {
		return fmt.Errorf("not a udp connection")
	}
	tos := dscp << 2
	if raddr.IP.To4() != nil {
		return ipv4.NewConn(conn).SetTOS(tos)
	}
	return ipv6.NewConn(conn).SetTrafficClass(tos)
}
