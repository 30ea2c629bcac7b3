// This file is part of ModelD.
//
// ModelD is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// ModelD is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with ModelD.  If not, see <https://www.gnu.org/licenses/>.

// Package bus defines the port I/O bus concept and the capabilities a chip
// receives from the platform it is part of. Chips are handed implementations
// of these interfaces at construction and hold no other reference to the
// wider machine.
package bus

import "time"

// PortRead is the handler signature for a port read. The handler returns the
// byte the client will see.
type PortRead func(port uint16) uint8

// PortWrite is the handler signature for a port write.
type PortWrite func(port uint16, data uint8)

// PortBus defines the operations a chip can perform on the I/O port
// dispatcher. A chip claims a window of consecutive ports and services all
// reads and writes in that window.
type PortBus interface {
	// SetHandler registers read/write handlers for the window of num ports
	// starting at base. Either handler may be nil if the chip does not
	// respond in that direction.
	SetHandler(base uint16, num int, read PortRead, write PortWrite) error

	// RemoveHandler deregisters the window previously claimed with
	// SetHandler. It is safe to call at any time, including when no access
	// is in flight and when the window was never claimed.
	RemoveHandler(base uint16, num int)
}

// IRQLine is the interrupt signalling primitive supplied by the host
// platform. The line knows which interrupt number it is bound to. A chip
// with no interrupt line configured holds a nil IRQLine.
type IRQLine interface {
	Raise()
}

// TimeOfDay supplies the current wall clock time to chips that need it. The
// production implementation simply returns time.Now() but tests will want to
// substitute a fixed timestamp.
type TimeOfDay interface {
	Now() time.Time
}
