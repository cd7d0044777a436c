// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/emulator"
)

func main() {
	var compile string
	var output string
	var cps int
	var scale int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to compile")
	flag.StringVar(&output, "o", "", "Save the assembled ROM, do not execute")
	flag.IntVar(&cps, "cps", 600, "Instruction cycles per second")
	flag.IntVar(&scale, "scale", 20, "Display scale factor")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.CyclesPerTick = max(cps/emulator.TICK_HZ, 1)

	// Compile a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		emu.Program = prog

		if len(output) != 0 {
			err = os.WriteFile(output, prog.Binary(), 0o644)
			if err != nil {
				log.Fatalf("%v: %v", output, err)
			}
			return
		}

		err = emu.Reset()
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	} else {
		if flag.NArg() != 1 {
			log.Fatalf("%v: A single ROM file is required", os.Args[0])
		}

		rom := flag.Arg(0)
		err := emu.LoadFile(rom)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
	}

	host := &Host{
		Emulator: emu,
		Scale:    int32(scale),
	}

	err := host.Setup("chip8")
	if err != nil {
		log.Fatal(err)
	}
	defer host.Destroy()

	err = host.Run()
	if err != nil {
		log.Fatal(err)
	}
}
