// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package serialport_test

import (
	"testing"

	"github.com/zserial/zserial/serialport"
)

// Open requires a real UART device and is exercised manually against
// hardware, not in CI.
func TestOpenRequiresHardware(t *testing.T) {
	t.Skip("requires a real UART device; exercised manually against hardware")

	if _, err := serialport.Open(serialport.Config{Device: "/dev/ttyUSB0", Baud: 115200}); err != nil {
		t.Fatalf("Open: %v", err)
	}
}
