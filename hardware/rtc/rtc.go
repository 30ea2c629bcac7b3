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

// Package rtc implements the battery backed MM58167 real-time clock of the
// Leading Edge Model D. The chip presents 32 byte wide registers through a
// contiguous I/O window and advances the time and date registers once per
// emulated second.
//
// The chip is driven from outside in two ways. Port reads and writes arrive
// through the handlers registered with the port bus; and the Tick() function
// is called by the machine at a cadence of one call per emulated second. Both
// happen on the same goroutine, the same as every other part of the machine.
package rtc

import (
	"fmt"
	"strings"

	"github.com/modeldemu/modeld/curated"
	"github.com/modeldemu/modeld/environment"
	"github.com/modeldemu/modeld/hardware/bus"
	"github.com/modeldemu/modeld/logger"
)

// RTC implements the MM58167 clock chip. The register bank is owned by the
// RTC exclusively; all access from the rest of the machine goes through the
// port handlers.
type RTC struct {
	env *environment.Environment

	pb  bus.PortBus
	tod bus.TimeOfDay

	// irq is nil when no interrupt line is configured, which is how the
	// Leading Edge normally ran the chip
	irq bus.IRQLine

	// the register used for year storage. NoYearRegister if the year is not
	// stored at all. fixed at construction
	yearReg int

	regs [NumRegisters]uint8
}

// NewRTC is the preferred method of initialisation for the RTC type. The
// port bus and time-of-day source must be supplied. The interrupt line may
// be nil.
func NewRTC(env *environment.Environment, pb bus.PortBus, yearReg int, tod bus.TimeOfDay, irq bus.IRQLine) (*RTC, error) {
	if pb == nil {
		return nil, curated.Errorf("rtc: no port bus supplied")
	}
	if tod == nil {
		return nil, curated.Errorf("rtc: no time-of-day source supplied")
	}
	if yearReg != NoYearRegister && (yearReg < 0 || yearReg >= NumRegisters) {
		return nil, curated.Errorf("rtc: year register out of range (%d)", yearReg)
	}

	r := &RTC{
		env:     env,
		pb:      pb,
		tod:     tod,
		irq:     irq,
		yearReg: yearReg,
	}

	err := pb.SetHandler(PortBase, NumRegisters, r.Read, r.Write)
	if err != nil {
		return nil, curated.Errorf("rtc: %v", err)
	}

	// registers begin zeroed and are then seeded from the host clock
	r.load()

	return r, nil
}

// Detach removes the chip from the port bus. No other cleanup is required at
// machine teardown.
func (r *RTC) Detach() {
	r.pb.RemoveHandler(PortBase, NumRegisters)
}

func (r *RTC) String() string {
	s := strings.Builder{}
	fmt.Fprintf(&s, "time=%02x:%02x:%02x dow=%02x date=%02x/%02x",
		r.regs[Hours], r.regs[Minutes], r.regs[Seconds],
		r.regs[DayOfWeek], r.regs[DayOfMonth], r.regs[Month],
	)
	if r.yearReg != NoYearRegister {
		fmt.Fprintf(&s, "/%02x", r.regs[r.yearReg])
	}
	fmt.Fprintf(&s, " istat=%02x ictrl=%02x", r.regs[IntStatus], r.regs[IntControl])
	return s.String()
}

// Read is the port read handler for the chip's I/O window. Reads have no
// side effects on any register.
func (r *RTC) Read(port uint16) uint8 {
	reg := (port - PortBase) & 0x1f

	// the mask guarantees the index is in range but the bank size is the
	// contract, not the mask
	if int(reg) >= NumRegisters {
		return 0xff
	}

	return r.regs[reg]
}

// Write is the port write handler for the chip's I/O window. Most registers
// store the written value verbatim. The command registers trigger their
// command and the interrupt status register clears on any write.
func (r *RTC) Write(port uint16, data uint8) {
	reg := (port - PortBase) & 0x1f

	if int(reg) >= NumRegisters {
		return
	}

	logger.Logf(r.env, "rtc", "write reg %02x = %02x", reg, data)

	switch reg {
	case ResetCounters:
		// only the sub-second counters are affected
		r.regs[Milliseconds] = 0
		r.regs[Hundredths] = 0

	case ResetRAM:
		r.Reset()

	case GoCommand:
		// restart the clock from the host time. unlike ResetRAM the alarm
		// and interrupt control registers are left alone
		r.load()

	case IntStatus:
		// cleared by any write, whatever the value
		r.regs[IntStatus] = 0

	default:
		r.regs[reg] = data
	}
}
