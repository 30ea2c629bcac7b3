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

package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/modeldemu/modeld/environment"
	"github.com/modeldemu/modeld/hardware"
	"github.com/modeldemu/modeld/logger"
	"github.com/modeldemu/modeld/modalflag"
	"github.com/modeldemu/modeld/monitor"
	"github.com/modeldemu/modeld/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "MONITOR", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)

	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)

	case "MONITOR":
		err = mon(md)

	case "VERSION":
		fmt.Printf("%s (%s)\n", version.ApplicationName, version.Version())
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// run mode drives the clock from the host's wall clock, one tick per second,
// until the process is interrupted.
func run(md *modalflag.Modes) error {
	md.NewMode()

	echo := md.AddBool("echo", false, "echo log entries to stderr")
	seconds := md.AddInt("seconds", 0, "number of seconds to run for (0 means forever)")
	every := md.AddInt("every", 1, "print clock state every n seconds")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	if *echo {
		logger.SetEcho(os.Stderr)
	}
	if *every < 1 {
		return fmt.Errorf("-every must be a positive number of seconds")
	}

	env, err := environment.NewEnvironment(environment.MainEmulation)
	if err != nil {
		return err
	}

	mach, err := hardware.NewMachine(env, nil, nil)
	if err != nil {
		return err
	}
	defer mach.Detach()

	// #ctrlc
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	ticks := 0

	err = mach.Run(func() (bool, error) {
		ticks++
		if ticks%*every == 0 {
			fmt.Println(mach.RTC.String())
		}

		select {
		case <-intChan:
			fmt.Println("\r")
			return false, nil
		default:
		}

		return *seconds == 0 || ticks < *seconds, nil
	})

	return err
}

// mon mode hands the machine over to the interactive monitor.
func mon(md *modalflag.Modes) error {
	md.NewMode()

	echo := md.AddBool("echo", false, "echo log entries to stderr")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	if *echo {
		logger.SetEcho(os.Stderr)
	}

	env, err := environment.NewEnvironment(environment.MainEmulation)
	if err != nil {
		return err
	}

	mach, err := hardware.NewMachine(env, nil, nil)
	if err != nil {
		return err
	}
	defer mach.Detach()

	m, err := monitor.NewMonitor(mach)
	if err != nil {
		return err
	}

	return m.Run()
}
