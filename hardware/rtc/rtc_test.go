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

package rtc_test

import (
	"testing"
	"time"

	"github.com/modeldemu/modeld/environment"
	"github.com/modeldemu/modeld/hardware/ports"
	"github.com/modeldemu/modeld/hardware/rtc"
	"github.com/modeldemu/modeld/test"
)

// fixedClock is a time-of-day source that always returns the same time.
type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

// countingIRQ records how often the interrupt line has been raised.
type countingIRQ struct {
	raised int
}

func (l *countingIRQ) Raise() {
	l.raised++
}

// newTestRTC creates an RTC on a real port dispatcher, seeded with the
// specified time.
func newTestRTC(t *testing.T, tm time.Time) (*rtc.RTC, *ports.Ports, *countingIRQ) {
	t.Helper()

	env, err := environment.NewEnvironment("test")
	test.ExpectedSuccess(t, err)

	pb := ports.NewPorts(env)
	irq := &countingIRQ{}

	r, err := rtc.NewRTC(env, pb, rtc.YearRegister, fixedClock{t: tm}, irq)
	test.ExpectedSuccess(t, err)

	return r, pb, irq
}

// peek reads a register through the port window, failing the test on an
// unmapped port.
func peek(t *testing.T, pb *ports.Ports, reg uint16) uint8 {
	t.Helper()

	v, err := pb.Read(rtc.PortBase + reg)
	test.ExpectedSuccess(t, err)
	return v
}

// poke writes a register through the port window.
func poke(t *testing.T, pb *ports.Ports, reg uint16, data uint8) {
	t.Helper()

	err := pb.Write(rtc.PortBase+reg, data)
	test.ExpectedSuccess(t, err)
}

func TestHostTimeLoad(t *testing.T) {
	// saturday evening. the year register should read as BCD of 2025-1980
	_, pb, _ := newTestRTC(t, time.Date(2025, time.November, 1, 18, 43, 27, 0, time.UTC))

	test.Equate(t, peek(t, pb, rtc.Milliseconds), 0x00)
	test.Equate(t, peek(t, pb, rtc.Hundredths), 0x00)
	test.Equate(t, peek(t, pb, rtc.Seconds), 0x27)
	test.Equate(t, peek(t, pb, rtc.Minutes), 0x43)
	test.Equate(t, peek(t, pb, rtc.Hours), 0x18)
	test.Equate(t, peek(t, pb, rtc.DayOfWeek), 0x07)
	test.Equate(t, peek(t, pb, rtc.DayOfMonth), 0x01)
	test.Equate(t, peek(t, pb, rtc.Month), 0x11)
	test.Equate(t, peek(t, pb, rtc.YearRegister), 0x45)
}

func TestStatusClearOnWrite(t *testing.T) {
	r, pb, _ := newTestRTC(t, time.Date(2025, time.November, 1, 18, 43, 27, 0, time.UTC))

	// enable the per-second condition and tick so the status register has
	// something in it
	poke(t, pb, rtc.IntControl, rtc.IntSecond)
	r.Tick()
	test.Equate(t, peek(t, pb, rtc.IntStatus), rtc.IntSecond)

	// any write clears the register, the value is ignored
	poke(t, pb, rtc.IntStatus, 0xff)
	test.Equate(t, peek(t, pb, rtc.IntStatus), 0x00)

	r.Tick()
	poke(t, pb, rtc.IntStatus, 0x00)
	test.Equate(t, peek(t, pb, rtc.IntStatus), 0x00)
}

func TestResetCounters(t *testing.T) {
	_, pb, _ := newTestRTC(t, time.Date(2025, time.November, 1, 18, 43, 27, 0, time.UTC))

	// the sub-second counters are plain stores when written directly
	poke(t, pb, rtc.Milliseconds, 0x12)
	poke(t, pb, rtc.Hundredths, 0x34)

	poke(t, pb, rtc.ResetCounters, 0x00)

	test.Equate(t, peek(t, pb, rtc.Milliseconds), 0x00)
	test.Equate(t, peek(t, pb, rtc.Hundredths), 0x00)

	// no other register is affected
	test.Equate(t, peek(t, pb, rtc.Seconds), 0x27)
	test.Equate(t, peek(t, pb, rtc.YearRegister), 0x45)
}

func TestGoCommand(t *testing.T) {
	_, pb, _ := newTestRTC(t, time.Date(2025, time.November, 1, 18, 43, 27, 0, time.UTC))

	// program an alarm and an interrupt control value, then scribble over the
	// time registers
	poke(t, pb, rtc.AlarmSeconds, 0x30)
	poke(t, pb, rtc.AlarmMinutes, rtc.AlarmDontCare)
	poke(t, pb, rtc.IntControl, rtc.IntHour)
	poke(t, pb, rtc.Seconds, 0x55)
	poke(t, pb, rtc.Hours, 0x11)

	// GO resynchronises the time and date but leaves everything else alone
	poke(t, pb, rtc.GoCommand, 0x00)

	test.Equate(t, peek(t, pb, rtc.Seconds), 0x27)
	test.Equate(t, peek(t, pb, rtc.Hours), 0x18)
	test.Equate(t, peek(t, pb, rtc.AlarmSeconds), 0x30)
	test.Equate(t, peek(t, pb, rtc.AlarmMinutes), rtc.AlarmDontCare)
	test.Equate(t, peek(t, pb, rtc.IntControl), rtc.IntHour)
}

func TestResetRAM(t *testing.T) {
	_, pb, _ := newTestRTC(t, time.Date(2025, time.November, 1, 18, 43, 27, 0, time.UTC))

	poke(t, pb, rtc.AlarmSeconds, 0x30)
	poke(t, pb, rtc.IntControl, rtc.IntHour)

	// reset RAM zeroes the whole bank before resynchronising, taking the
	// alarm and control registers with it
	poke(t, pb, rtc.ResetRAM, 0x00)

	test.Equate(t, peek(t, pb, rtc.Seconds), 0x27)
	test.Equate(t, peek(t, pb, rtc.Hours), 0x18)
	test.Equate(t, peek(t, pb, rtc.AlarmSeconds), 0x00)
	test.Equate(t, peek(t, pb, rtc.IntControl), 0x00)

	// the year register survives because the resynchronisation writes it
	test.Equate(t, peek(t, pb, rtc.YearRegister), 0x45)
}

func TestVerbatimStores(t *testing.T) {
	_, pb, _ := newTestRTC(t, time.Date(2025, time.November, 1, 18, 43, 27, 0, time.UTC))

	// time, alarm, year and miscellaneous registers all store what they are
	// given
	poke(t, pb, rtc.Minutes, 0x59)
	test.Equate(t, peek(t, pb, rtc.Minutes), 0x59)

	poke(t, pb, rtc.YearRegister, 0x13)
	test.Equate(t, peek(t, pb, rtc.YearRegister), 0x13)

	poke(t, pb, rtc.Status, 0xaa)
	test.Equate(t, peek(t, pb, rtc.Status), 0xaa)

	poke(t, pb, rtc.StandbyInt, 0x01)
	test.Equate(t, peek(t, pb, rtc.StandbyInt), 0x01)

	poke(t, pb, rtc.TestMode, 0x77)
	test.Equate(t, peek(t, pb, rtc.TestMode), 0x77)
}

func TestNoYearRegister(t *testing.T) {
	env, err := environment.NewEnvironment("test")
	test.ExpectedSuccess(t, err)

	pb := ports.NewPorts(env)
	clk := fixedClock{t: time.Date(2025, time.November, 1, 18, 43, 27, 0, time.UTC)}

	_, err = rtc.NewRTC(env, pb, rtc.NoYearRegister, clk, nil)
	test.ExpectedSuccess(t, err)

	// without a year register the alarm day-of-month slot is not touched by
	// the host time load
	test.Equate(t, peek(t, pb, rtc.AlarmDayOfMonth), 0x00)
}

func TestConstructionFailure(t *testing.T) {
	env, err := environment.NewEnvironment("test")
	test.ExpectedSuccess(t, err)

	pb := ports.NewPorts(env)
	clk := fixedClock{t: time.Now()}

	// year register beyond the bank
	_, err = rtc.NewRTC(env, pb, rtc.NumRegisters, clk, nil)
	test.ExpectedFailure(t, err)

	// missing capabilities
	_, err = rtc.NewRTC(env, pb, rtc.YearRegister, nil, nil)
	test.ExpectedFailure(t, err)

	_, err = rtc.NewRTC(env, nil, rtc.YearRegister, clk, nil)
	test.ExpectedFailure(t, err)
}
