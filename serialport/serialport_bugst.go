// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build bugst

package serialport

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// Config mirrors the default backend's Config so callers can switch
// build tags without touching call sites.
type Config struct {
	Device        string
	Baud          int
	ReadTimeoutMS int
}

// Port adapts a go.bug.st/serial.Port to zserial.Reader, zserial.Writer,
// and zserial.Delayer, for platforms where tarm/serial's termios handling
// is unavailable.
type Port struct {
	port serial.Port
}

// Open opens cfg.Device at cfg.Baud, 8N1, and applies cfg.ReadTimeoutMS as
// the port's read timeout.
func Open(cfg Config) (*Port, error) {
	mode := &serial.Mode{
		BaudRate: cfg.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.Device, mode)
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", cfg.Device, err)
	}
	if cfg.ReadTimeoutMS > 0 {
		if err := port.SetReadTimeout(time.Duration(cfg.ReadTimeoutMS) * time.Millisecond); err != nil {
			port.Close()
			return nil, fmt.Errorf("serialport: set read timeout: %w", err)
		}
	}
	return &Port{port: port}, nil
}

// Read implements zserial.Reader.
func (p *Port) Read(b []byte) (int, error) { return p.port.Read(b) }

// Write implements zserial.Writer's write half.
func (p *Port) Write(b []byte) (int, error) { return p.port.Write(b) }

// Flush implements zserial.Writer's flush half. go.bug.st/serial exposes
// no drain primitive through the Port interface, so this is a no-op; the
// connect loop relies only on Write's completeness, not an explicit drain.
func (p *Port) Flush() error { return nil }

// DelayMs implements zserial.Delayer.
func (p *Port) DelayMs(ms uint32) { time.Sleep(time.Duration(ms) * time.Millisecond) }

// Close releases the underlying device.
func (p *Port) Close() error { return p.port.Close() }
