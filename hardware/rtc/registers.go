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

package rtc

// PortBase is the first port of the I/O window claimed by the clock. The
// Leading Edge placed the chip at 0x300, inside the prototype card area and
// conflicting with the usual XT-IDE location.
const PortBase = 0x0300

// NumRegisters is the number of registers in the bank and also the size of
// the I/O window. Port addresses are masked to this window before use.
const NumRegisters = 32

// Register indices in the bank. Time and date registers hold BCD values, the
// interrupt registers are bitmasks and the command registers trigger on
// write. See the MM58167 datasheet, page 4.
const (
	Milliseconds      = 0x00
	Hundredths        = 0x01
	Seconds           = 0x02
	Minutes           = 0x03
	Hours             = 0x04
	DayOfWeek         = 0x05
	DayOfMonth        = 0x06
	Month             = 0x07
	AlarmMilliseconds = 0x08
	AlarmHundredths   = 0x09
	AlarmSeconds      = 0x0a
	AlarmMinutes      = 0x0b
	AlarmHours        = 0x0c
	AlarmDayOfWeek    = 0x0d
	AlarmDayOfMonth   = 0x0e
	AlarmMonth        = 0x0f
	IntStatus         = 0x10
	IntControl        = 0x11
	ResetCounters     = 0x12
	ResetRAM          = 0x13
	Status            = 0x14
	GoCommand         = 0x15
	StandbyInt        = 0x16
	TestMode          = 0x1f
)

// Interrupt condition bits, common to the IntStatus and IntControl registers.
// A condition that occurs during a tick sets its bit in IntStatus if the same
// bit is enabled in IntControl. The compare bit is set on an alarm match
// regardless of IntControl.
const (
	IntCompare = 0x01
	IntTenth   = 0x02
	IntSecond  = 0x04
	IntMinute  = 0x08
	IntHour    = 0x10
	IntDay     = 0x20
	IntWeek    = 0x40
	IntMonth   = 0x80
)

// AlarmDontCare is the bit pattern in an alarm register that makes the field
// match unconditionally.
const AlarmDontCare = 0xc0

// YearRegister is the register the Leading Edge stores the year in. The stock
// chip defines this register as the day-of-month alarm; storing the year here
// is a host system customisation that the DOS clock driver understands.
const YearRegister = AlarmDayOfMonth

// NoYearRegister can be given to NewRTC() for a chip with no year storage at
// all, which is how the stock MM58167 behaves.
const NoYearRegister = -1
