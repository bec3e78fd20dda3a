package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/8085dev/asm85/pkg/asm"
	"github.com/8085dev/asm85/pkg/cpu"
	"github.com/8085dev/asm85/pkg/inst"
	"github.com/8085dev/asm85/pkg/trace"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "asm85",
		Short: "8085 assembler and emulator",
	}

	rootCmd.AddCommand(
		newAssembleCmd(),
		newRunCmd(),
		newDisasmCmd(),
		newSymbolsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newAssembleCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "assemble [source.asm]",
		Short: "Assemble a source file and report diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			p := asm.Assemble(string(src))
			for _, d := range p.Diagnostics {
				fmt.Printf("%s:%d: %s: %s\n", args[0], d.Line, d.Severity, d.Message)
			}
			if p.HasErrors() {
				return fmt.Errorf("assembly failed")
			}
			size := 0
			for _, l := range p.Listing {
				size += len(l.Bytes)
			}
			fmt.Printf("Assembled %d bytes from origin %04XH\n", size, p.Origin)
			if output != "" {
				if err := os.WriteFile(output, p.Memory[:], 0o644); err != nil {
					return err
				}
				fmt.Printf("Written to %s\n", output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the assembled memory image to this file")
	return cmd
}

func newRunCmd() *cobra.Command {
	var limit uint64
	var unsafe bool
	var breakAddrs []string
	var coverage bool
	var profile bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run [source.asm]",
		Short: "Assemble and run a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			p := asm.Assemble(string(src))
			if p.HasErrors() {
				for _, d := range p.Diagnostics {
					if d.Severity == asm.SeverityError {
						fmt.Printf("%s:%d: error: %s\n", args[0], d.Line, d.Message)
					}
				}
				return fmt.Errorf("refusing to run a program with assembly errors")
			}

			s := cpu.Reset(p)

			bp := trace.NewBreakpoints()
			for _, a := range breakAddrs {
				addr, err := parseAddr(a)
				if err != nil {
					return fmt.Errorf("invalid --break address %q: %w", a, err)
				}
				bp.Set(addr)
			}
			s.OnFetch = bp.OnFetch

			var cov *trace.Coverage
			if coverage {
				cov = trace.NewCoverage()
				prevFetch := s.OnFetch
				s.OnFetch = func(st *cpu.State) bool {
					cov.OnFetch(st)
					return prevFetch(st)
				}
			}

			var prof *trace.Profiler
			if profile {
				prof = trace.NewProfiler()
				s.OnStep = prof.OnStep
			}

			if verbose {
				logger := log.New(os.Stderr, "", 0)
				prevFetch := s.OnFetch
				s.OnFetch = func(st *cpu.State) bool {
					d := inst.DisassembleAt(st.Memory[:], st.PC)
					logger.Printf("%04XH  %s", d.Addr, d.Text)
					return prevFetch(st)
				}
			}

			var limitPtr *uint64
			if !unsafe {
				limitPtr = &limit
			}

			res := cpu.Run(context.Background(), s, limitPtr)
			fmt.Printf("Stopped: %s (steps=%d cycles=%d)\n", res.StoppedBy, res.Steps, res.Cycles)
			if res.StoppedBy == "fetch" {
				fmt.Printf("Breakpoint hit at %04XH\n", bp.Hit)
			}
			fmt.Printf("A=%02X B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X SP=%04X PC=%04X\n",
				s.A, s.B, s.C, s.D, s.E, s.H, s.L, s.SP, s.PC)
			fmt.Printf("Flags: S=%v Z=%v AC=%v P=%v CY=%v\n", s.S, s.Z, s.AC, s.P, s.CY)

			if cov != nil {
				reachable := countReachable(p)
				fmt.Printf("Coverage: %.1f%% of %d byte-emitting listing rows\n", cov.Percent(reachable), reachable)
			}
			if prof != nil {
				top := prof.TopByCycles(10)
				fmt.Println("Top addresses by cycles:")
				for _, sm := range top {
					fmt.Printf("  %04XH: hits=%d cycles=%d\n", sm.Addr, sm.Hits, sm.Cycles)
				}
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&limit, "limit", 10_000_000, "Maximum steps before stopping")
	cmd.Flags().BoolVar(&unsafe, "unsafe", false, "Remove the step limit entirely")
	cmd.Flags().StringSliceVar(&breakAddrs, "break", nil, "Breakpoint address (hex, e.g. 0x0100), may repeat")
	cmd.Flags().BoolVar(&coverage, "coverage", false, "Report instruction coverage after the run")
	cmd.Flags().BoolVar(&profile, "profile", false, "Report a per-address hit/cycle profile after the run")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log each instruction fetched, as it fires")
	return cmd
}

func newDisasmCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "disasm [source.asm]",
		Short: "Assemble a source file and disassemble it back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			p := asm.Assemble(string(src))
			if p.HasErrors() {
				return fmt.Errorf("assembly failed, cannot disassemble")
			}

			addr := p.Origin
			for i := 0; i < count; i++ {
				d := inst.DisassembleAt(p.Memory[:], addr)
				fmt.Printf("%04XH  %-12s  %s\n", d.Addr, hexBytes(d.Bytes), d.Text)
				addr += uint16(d.Length)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&count, "count", 20, "Number of instructions to disassemble")
	return cmd
}

func newSymbolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols [source.asm]",
		Short: "List the symbol table produced by assembling a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			p := asm.Assemble(string(src))

			names := make([]string, 0, len(p.Symbols))
			for name := range p.Symbols {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				sym := p.Symbols[name]
				kind := "label"
				if sym.IsEquate {
					kind = "equ"
				}
				fmt.Printf("%-16s %04XH  %-5s  line %d  refs %v\n", sym.Name, sym.Value, kind, sym.DefinedAt, sym.References)
			}
			return nil
		},
	}
	return cmd
}

func hexBytes(b []byte) string {
	parts := make([]string, len(b))
	for i, v := range b {
		parts[i] = fmt.Sprintf("%02X", v)
	}
	return strings.Join(parts, " ")
}

func parseAddr(s string) (uint16, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	s = strings.TrimSuffix(strings.ToUpper(s), "H")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, err
	}
	return uint16(v), nil
}

// countReachable counts the listing rows that emitted bytes, the
// denominator for coverage reporting: one per assembled instruction and
// one per DB/DW line; rows with no bytes (ORG, EQU, DS) don't count. It
// does not tell instructions apart from data, and it counts rows, not
// bytes.
func countReachable(p *asm.Program) int {
	n := 0
	for _, l := range p.Listing {
		if len(l.Bytes) > 0 {
			n++
		}
	}
	return n
}
