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

// Package ports implements the port I/O dispatcher for the machine. Chips
// claim a window of consecutive ports through the bus.PortBus interface and
// clients (the monitor, or an emulated CPU if one were present) access the
// ports through the Read() and Write() functions.
package ports

import (
	"github.com/modeldemu/modeld/curated"
	"github.com/modeldemu/modeld/environment"
	"github.com/modeldemu/modeld/hardware/bus"
	"github.com/modeldemu/modeld/logger"
)

// sentinel errors returned by the Read() and Write() functions.
const (
	UnmappedPort = "ports: unmapped port %#04x"
)

// handlers for a single port.
type handler struct {
	read  bus.PortRead
	write bus.PortWrite
}

// Ports is the concrete implementation of the bus.PortBus interface.
type Ports struct {
	env *environment.Environment

	handlers map[uint16]handler
}

// NewPorts is the preferred method of initialisation for the Ports type.
func NewPorts(env *environment.Environment) *Ports {
	return &Ports{
		env:      env,
		handlers: make(map[uint16]handler),
	}
}

// SetHandler implements the bus.PortBus interface. An existing claim on any
// port in the window is overwritten, the same as plugging a conflicting card
// into the real machine.
func (p *Ports) SetHandler(base uint16, num int, read bus.PortRead, write bus.PortWrite) error {
	if read == nil && write == nil {
		return curated.Errorf("ports: no handlers specified for window at %#04x", base)
	}

	for i := 0; i < num; i++ {
		port := base + uint16(i)
		if _, ok := p.handlers[port]; ok {
			logger.Logf(p.env, "ports", "port %#04x claimed more than once", port)
		}
		p.handlers[port] = handler{read: read, write: write}
	}

	return nil
}

// RemoveHandler implements the bus.PortBus interface.
func (p *Ports) RemoveHandler(base uint16, num int) {
	for i := 0; i < num; i++ {
		delete(p.handlers, base+uint16(i))
	}
}

// Read the value at the specified port. Unmapped ports return 0xff, the value
// an XT class machine sees on a floating bus.
func (p *Ports) Read(port uint16) (uint8, error) {
	h, ok := p.handlers[port]
	if !ok || h.read == nil {
		return 0xff, curated.Errorf(UnmappedPort, port)
	}
	return h.read(port), nil
}

// Write a value to the specified port.
func (p *Ports) Write(port uint16, data uint8) error {
	h, ok := p.handlers[port]
	if !ok || h.write == nil {
		return curated.Errorf(UnmappedPort, port)
	}
	h.write(port, data)
	return nil
}
