// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !bugst

// Package serialport provides concrete zserial.Reader/zserial.Writer/
// zserial.Delayer adapters over a real UART device path, so a handshake
// can be driven against actual hardware. The core library never depends
// on this package; it is one ready-made implementation of the adapter
// interfaces.
//
// The default build uses github.com/tarm/serial. A second backend behind
// the "bugst" build tag (serialport_bugst.go) uses go.bug.st/serial for
// platforms where tarm/serial's termios handling is unavailable.
package serialport

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// Config selects the UART device a Port opens. 8 data bits, no parity,
// one stop bit; flow control is never used on these links.
type Config struct {
	// Device is the UART device path, e.g. "/dev/ttyUSB0" or "COM3".
	Device string
	// Baud is the line rate in bits/second.
	Baud int
	// ReadTimeoutMS bounds a single Read call; zero blocks indefinitely.
	ReadTimeoutMS int
}

// Port adapts a github.com/tarm/serial.Port to zserial.Reader,
// zserial.Writer, and zserial.Delayer.
type Port struct {
	port *serial.Port
}

// Open clears the UART's attributes with a throwaway open/close cycle,
// then opens cfg.Device for real and returns a Port ready to back a
// link.Link.
func Open(cfg Config) (*Port, error) {
	if err := clearUARTAttributes(cfg.Device); err != nil {
		return nil, fmt.Errorf("serialport: clear attributes: %w", err)
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
		ReadTimeout: time.Duration(cfg.ReadTimeoutMS) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("serialport: open %s: %w", cfg.Device, err)
	}
	return &Port{port: port}, nil
}

// clearUARTAttributes opens and immediately closes the device at a
// conservative baud rate before the real open, giving the line a clean
// start.
func clearUARTAttributes(device string) error {
	port, err := serial.OpenPort(&serial.Config{
		Name:        device,
		Baud:        9600,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
		ReadTimeout: 0,
	})
	if err != nil {
		return err
	}
	if err := port.Close(); err != nil {
		return err
	}
	time.Sleep(100 * time.Millisecond)
	return nil
}

// Read implements zserial.Reader.
func (p *Port) Read(b []byte) (int, error) { return p.port.Read(b) }

// Write implements zserial.Writer's write half.
func (p *Port) Write(b []byte) (int, error) { return p.port.Write(b) }

// Flush implements zserial.Writer's flush half.
func (p *Port) Flush() error { return p.port.Flush() }

// DelayMs implements zserial.Delayer with a real time.Sleep, since this
// is the concrete hardware adapter and not part of the portable core.
func (p *Port) DelayMs(ms uint32) { time.Sleep(time.Duration(ms) * time.Millisecond) }

// Close releases the underlying device.
func (p *Port) Close() error { return p.port.Close() }
