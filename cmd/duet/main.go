// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ezrec/duet/cpu"
	"github.com/ezrec/duet/emulator"
)

func main() {
	var compile string
	var verbose bool
	var limit int
	var capacity int
	defines := map[string]string{}

	flag.StringVar(&compile, "c", "-", "Program file to assemble")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.IntVar(&limit, "l", 0, "Tick limit per run, 0 for none")
	flag.IntVar(&capacity, "q", 0, "Duet queue capacity, 0 for unbounded")
	flag.Func("D", "Predefine an equate as NAME=VALUE", func(text string) error {
		name, value, ok := strings.Cut(text, "=")
		if !ok || len(name) == 0 {
			return fmt.Errorf("%v: expected NAME=VALUE", text)
		}
		defines[name] = value
		return nil
	})

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	inf := os.Stdin
	if compile != "-" {
		var err error
		inf, err = os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()
	}

	asm := &cpu.Assembler{Verbose: verbose}
	for name, value := range emulator.Defines() {
		asm.Predefine(name, value)
	}
	for name, value := range defines {
		asm.Predefine(name, value)
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	single := emulator.NewSingle(prog)
	single.Verbose = verbose
	single.TickLimit = limit

	recovered, ok, err := single.Run()
	if err != nil {
		log.Fatalf("%v: part 1: %v", compile, err)
	}
	if ok {
		fmt.Printf("Part 1: recovered=%d\n", recovered)
	} else {
		fmt.Printf("Part 1: nothing recovered\n")
	}

	duet := emulator.NewDuet(prog)
	duet.Verbose = verbose
	duet.TickLimit = limit
	duet.Capacity = capacity

	sent, err := duet.Run()
	if err != nil {
		log.Fatalf("%v: part 2: %v", compile, err)
	}
	fmt.Printf("Part 2: sent=%d\n", sent)
}
