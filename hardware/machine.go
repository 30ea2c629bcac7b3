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

// Package hardware assembles the emulated parts of the Leading Edge Model D
// clock subsystem: the port I/O dispatcher and the MM58167 chip. The CPU,
// video adapter and disk hardware of the real machine are not modelled.
package hardware

import (
	"time"

	"github.com/modeldemu/modeld/curated"
	"github.com/modeldemu/modeld/environment"
	"github.com/modeldemu/modeld/hardware/bus"
	"github.com/modeldemu/modeld/hardware/ports"
	"github.com/modeldemu/modeld/hardware/rtc"
)

// hostClock is the production time-of-day source.
type hostClock struct{}

func (_ hostClock) Now() time.Time {
	return time.Now()
}

// Machine is the main container for the emulated components.
type Machine struct {
	env *environment.Environment

	Ports *ports.Ports
	RTC   *rtc.RTC
}

// NewMachine creates the machine and everything in it. A nil time-of-day
// source selects the host's real clock. A nil interrupt line leaves the chip
// unconnected, which is how the Leading Edge normally shipped.
func NewMachine(env *environment.Environment, tod bus.TimeOfDay, irq bus.IRQLine) (*Machine, error) {
	if tod == nil {
		tod = hostClock{}
	}

	m := &Machine{
		env:   env,
		Ports: ports.NewPorts(env),
	}

	var err error
	m.RTC, err = rtc.NewRTC(env, m.Ports, rtc.YearRegister, tod, irq)
	if err != nil {
		return nil, curated.Errorf("machine: %v", err)
	}

	return m, nil
}

// Reset the machine to its power-on state.
func (m *Machine) Reset() {
	m.RTC.Reset()
}

// Step the machine forward one emulated second.
func (m *Machine) Step() {
	m.RTC.Tick()
}

// Run drives the machine at a cadence of one tick per wall clock second. The
// continueCheck function is consulted after every tick; returning false ends
// the run cleanly. A nil continueCheck means run forever.
func (m *Machine) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	tck := time.NewTicker(time.Second)
	defer tck.Stop()

	for {
		<-tck.C
		m.RTC.Tick()

		cont, err := continueCheck()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}

// Detach removes the machine's chips from the port bus. The machine is not
// usable after a call to Detach.
func (m *Machine) Detach() {
	m.RTC.Detach()
}
