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

// Package monitor implements an interactive terminal for poking at the
// machine through the port window, much like the DOS debug prompt a Model D
// owner would have used to inspect the clock card. The monitor accesses the
// chip exclusively through port reads and writes, except for the TICK
// command which stands in for the passage of time.
package monitor

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/modeldemu/modeld/curated"
	"github.com/modeldemu/modeld/hardware"
	"github.com/modeldemu/modeld/hardware/rtc"
	"github.com/modeldemu/modeld/logger"
	"github.com/modeldemu/modeld/monitor/easyterm"
)

const prompt = "[modeld] "

// input bytes with special meaning to the line reader.
const (
	ctrlC     = 0x03
	ctrlD     = 0x04
	backspace = 0x08
	del       = 0x7f
)

// Monitor is the interactive interface to a machine.
type Monitor struct {
	easyterm.Terminal

	mach *hardware.Machine
}

// NewMonitor is the preferred method of initialisation for the Monitor type.
func NewMonitor(mach *hardware.Machine) (*Monitor, error) {
	m := &Monitor{mach: mach}

	err := m.Initialise(os.Stdin, os.Stdout)
	if err != nil {
		return nil, curated.Errorf("monitor: %v", err)
	}

	return m, nil
}

// Run the monitor loop until the user quits or input is exhausted.
func (m *Monitor) Run() error {
	err := m.CBreakMode()
	if err != nil {
		return curated.Errorf("monitor: %v", err)
	}
	defer m.CleanUp()

	m.TermPrint("ModelD clock monitor. HELP for commands\n")

	for {
		m.TermPrint(prompt)

		input, quit := m.readLine()
		if quit {
			m.TermPrint("\n")
			return nil
		}

		if quit := m.parseCommand(input); quit {
			return nil
		}
	}
}

// readLine collects input bytes until return is pressed. The boolean return
// value is true if the user has asked to leave the monitor with ctrl-c or
// ctrl-d.
func (m *Monitor) readLine() (string, bool) {
	s := strings.Builder{}

	for {
		b, err := m.TermRead()
		if err != nil {
			return s.String(), true
		}

		switch b {
		case ctrlC, ctrlD:
			return s.String(), true

		case '\n', '\r':
			m.TermPrint("\n")
			return s.String(), false

		case backspace, del:
			cur := s.String()
			if len(cur) > 0 {
				s.Reset()
				s.WriteString(cur[:len(cur)-1])
				m.TermPrint("\b \b")
			}

		default:
			// printable characters only. cbreak mode means we do our own echo
			if b >= 0x20 && b < 0x7f {
				s.WriteByte(b)
				m.TermPrint(string(b))
			}
		}
	}
}

// parseCommand runs a single monitor command. The boolean return value is
// true if the command ends the monitor session.
func (m *Monitor) parseCommand(input string) bool {
	toks := strings.Fields(strings.ToUpper(input))
	if len(toks) == 0 {
		return false
	}

	switch toks[0] {
	case "QUIT", "Q":
		return true

	case "HELP":
		m.TermPrint("READ <reg>         read chip register through the port window\n")
		m.TermPrint("WRITE <reg> <val>  write chip register through the port window\n")
		m.TermPrint("TICK [n]           advance the clock n seconds (default 1)\n")
		m.TermPrint("GO                 resynchronise the clock from the host\n")
		m.TermPrint("RESET              clear the register bank and resynchronise\n")
		m.TermPrint("RTC                show chip state\n")
		m.TermPrint("LOG [n]            show the last n log entries (default all)\n")
		m.TermPrint("VIZ <file>         write a graphviz dot file of the machine\n")
		m.TermPrint("QUIT               leave the monitor\n")

	case "READ", "R":
		reg, ok := m.parseRegister(toks, 1)
		if !ok {
			break
		}
		v, err := m.mach.Ports.Read(rtc.PortBase + reg)
		if err != nil {
			m.TermPrint(fmt.Sprintf("%v\n", err))
			break
		}
		m.TermPrint(fmt.Sprintf("reg %02x = %02x\n", reg, v))

	case "WRITE", "W":
		reg, ok := m.parseRegister(toks, 1)
		if !ok {
			break
		}
		if len(toks) < 3 {
			m.TermPrint("WRITE requires a value\n")
			break
		}
		val, err := strconv.ParseUint(toks[2], 16, 8)
		if err != nil {
			m.TermPrint(fmt.Sprintf("not a register value: %s\n", toks[2]))
			break
		}
		err = m.mach.Ports.Write(rtc.PortBase+reg, uint8(val))
		if err != nil {
			m.TermPrint(fmt.Sprintf("%v\n", err))
		}

	case "TICK", "T":
		n := 1
		if len(toks) > 1 {
			var err error
			n, err = strconv.Atoi(toks[1])
			if err != nil || n < 1 {
				m.TermPrint(fmt.Sprintf("not a tick count: %s\n", toks[1]))
				break
			}
		}
		for i := 0; i < n; i++ {
			m.mach.Step()
		}
		m.TermPrint(fmt.Sprintf("%s\n", m.mach.RTC.String()))

	case "GO":
		_ = m.mach.Ports.Write(rtc.PortBase+rtc.GoCommand, 0)
		m.TermPrint(fmt.Sprintf("%s\n", m.mach.RTC.String()))

	case "RESET":
		_ = m.mach.Ports.Write(rtc.PortBase+rtc.ResetRAM, 0)
		m.TermPrint(fmt.Sprintf("%s\n", m.mach.RTC.String()))

	case "RTC":
		m.TermPrint(fmt.Sprintf("%s\n", m.mach.RTC.String()))

	case "LOG":
		if len(toks) > 1 {
			n, err := strconv.Atoi(toks[1])
			if err != nil || n < 1 {
				m.TermPrint(fmt.Sprintf("not an entry count: %s\n", toks[1]))
				break
			}
			logger.Tail(os.Stdout, n)
		} else {
			logger.Write(os.Stdout)
		}

	case "VIZ":
		if len(toks) < 2 {
			m.TermPrint("VIZ requires a filename\n")
			break
		}

		// the filename was upper-cased along with the rest of the input.
		// recover the original spelling
		fn := strings.Fields(input)[1]

		f, err := os.Create(fn)
		if err != nil {
			m.TermPrint(fmt.Sprintf("%v\n", err))
			break
		}
		memviz.Map(f, m.mach)
		err = f.Close()
		if err != nil {
			m.TermPrint(fmt.Sprintf("%v\n", err))
			break
		}
		m.TermPrint(fmt.Sprintf("machine graph written to %s\n", fn))

	default:
		m.TermPrint(fmt.Sprintf("unknown command: %s\n", toks[0]))
	}

	return false
}

// parseRegister reads a register number from the numbered token. Registers
// are given in hex and masked to the size of the I/O window, the same as the
// chip itself masks port addresses.
func (m *Monitor) parseRegister(toks []string, i int) (uint16, bool) {
	if len(toks) <= i {
		m.TermPrint("a register number is required\n")
		return 0, false
	}

	reg, err := strconv.ParseUint(toks[i], 16, 16)
	if err != nil {
		m.TermPrint(fmt.Sprintf("not a register number: %s\n", toks[i]))
		return 0, false
	}

	return uint16(reg) & (rtc.NumRegisters - 1), true
}
