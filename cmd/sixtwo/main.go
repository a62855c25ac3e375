// Command sixtwo is the host CLI for the assembler and interpreter: it can
// assemble a source file to a binary image, run a program headlessly,
// print a disassembly, or open the termui debugger.
package main

import (
	"fmt"
	"os"

	"github.com/aharris/sixtwo/internal/disasm"
	"github.com/aharris/sixtwo/internal/io"
	"github.com/aharris/sixtwo/internal/machine"
	"github.com/aharris/sixtwo/internal/memory"

	cli "gopkg.in/urfave/cli.v2"
)

func main() {
	app := &cli.App{
		Name:    "sixtwo",
		Usage:   "assemble and run 6502 programs for the educational simulator",
		Version: "v0.1.0",
		Commands: []*cli.Command{
			asmCommand(),
			runCommand(),
			disasmCommand(),
			debugCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func asmCommand() *cli.Command {
	return &cli.Command{
		Name:      "asm",
		Usage:     "assemble a source file and write the memory image",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output file", Value: "a.out"},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 1 {
				return cli.Exit("usage: sixtwo asm <file> [-o out]", 1)
			}
			source, err := os.ReadFile(c.Args().First())
			if err != nil {
				return cli.Exit(err, 1)
			}

			sink := newStdLogger()
			m := machine.New(io.NopFramebuffer{}, io.NopBeeper{}, sink, &io.BufferOutput{}, &io.QueueInput{})
			if err := m.Load(string(source)); err != nil {
				return cli.Exit(err, 1)
			}

			image := make([]byte, memory.ProgramAreaEnd-memory.DefaultOrigin+1)
			for i := range image {
				image[i] = m.Bus.Read(memory.DefaultOrigin + uint16(i))
			}
			if err := os.WriteFile(c.String("out"), image, 0644); err != nil {
				return cli.Exit(err, 1)
			}
			sink.Log(fmt.Sprintf("assembled %s -> %s", c.Args().First(), c.String("out")))
			return nil
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "assemble and run a source file headlessly",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "steps", Usage: "maximum steps before giving up", Value: 1_000_000},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 1 {
				return cli.Exit("usage: sixtwo run <file>", 1)
			}
			source, err := os.ReadFile(c.Args().First())
			if err != nil {
				return cli.Exit(err, 1)
			}

			sink := newStdLogger()
			out := &io.BufferOutput{}
			m := machine.New(io.NopFramebuffer{}, io.NopBeeper{}, sink, out, &io.QueueInput{})
			if err := m.Load(string(source)); err != nil {
				return cli.Exit(err, 1)
			}
			m.Boot()
			m.RunToHalt(c.Int("steps"))

			fmt.Print(out.String())
			return nil
		},
	}
}

func disasmCommand() *cli.Command {
	return &cli.Command{
		Name:      "disasm",
		Usage:     "assemble a source file and print its disassembly",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 1 {
				return cli.Exit("usage: sixtwo disasm <file>", 1)
			}
			source, err := os.ReadFile(c.Args().First())
			if err != nil {
				return cli.Exit(err, 1)
			}

			sink := newStdLogger()
			m := machine.New(io.NopFramebuffer{}, io.NopBeeper{}, sink, &io.BufferOutput{}, &io.QueueInput{})
			if err := m.Load(string(source)); err != nil {
				return cli.Exit(err, 1)
			}

			listing := disasm.Disassemble(m.Bus, memory.DefaultOrigin, memory.ProgramAreaEnd)
			for _, addr := range listing.Index {
				fmt.Println(listing.Lines[addr])
			}
			return nil
		},
	}
}

func debugCommand() *cli.Command {
	return &cli.Command{
		Name:      "debug",
		Usage:     "open the interactive termui debugger",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "interval", Usage: "milliseconds between tick batches", Value: 0},
			&cli.BoolFlag{Name: "no-color", Usage: "disable color styling in the debugger"},
		},
		Action: func(c *cli.Context) error {
			if c.Args().Len() < 1 {
				return cli.Exit("usage: sixtwo debug <file>", 1)
			}
			source, err := os.ReadFile(c.Args().First())
			if err != nil {
				return cli.Exit(err, 1)
			}
			return runDebugUI(string(source), c.Int("interval"), c.Bool("no-color"))
		},
	}
}
