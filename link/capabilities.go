// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package link

// TransportCap names the physical transport carrying frames.
type TransportCap uint8

const (
	TransportUnicast TransportCap = iota
	TransportMulticast
	TransportRaweth
)

// TransportFlow names how the transport preserves message boundaries.
type TransportFlow uint8

const (
	FlowDatagram TransportFlow = iota
	FlowStream
)

// Capabilities packs a link's transport, flow, and reliability bits into a
// single byte: transport in bits 7:6, flow in bit 5, reliable in bit 4.
type Capabilities uint8

// NewCapabilities builds a Capabilities value from its three components.
func NewCapabilities(transport TransportCap, flow TransportFlow, reliable bool) Capabilities {
	var c Capabilities
	c |= Capabilities(transport&0b11) << 6
	c |= Capabilities(flow&0b1) << 5
	if reliable {
		c |= 1 << 4
	}
	return c
}

// Transport returns the transport bits.
func (c Capabilities) Transport() TransportCap { return TransportCap((c >> 6) & 0b11) }

// Flow returns the flow bits.
func (c Capabilities) Flow() TransportFlow { return TransportFlow((c >> 5) & 0b1) }

// Reliable reports whether the reliable bit is set.
func (c Capabilities) Reliable() bool { return (c>>4)&0b1 == 1 }
