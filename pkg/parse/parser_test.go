package parse

import (
	"testing"

	"github.com/8085dev/asm85/pkg/inst"
)

func TestParseLabeledInstruction(t *testing.T) {
	stmts, errs := Parse("LOOP: DCR B\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(stmts))
	}
	s := stmts[0]
	if !s.HasLabel || s.Label != "LOOP" {
		t.Errorf("label = %q, hasLabel = %v", s.Label, s.HasLabel)
	}
	if s.Kind != StmtInstruction || s.Mnemonic != "DCR" {
		t.Errorf("got kind %v mnemonic %q", s.Kind, s.Mnemonic)
	}
	if len(s.Operands) != 1 || s.Operands[0].Kind != OperandRegOrPair || s.Operands[0].Reg != inst.RegB {
		t.Errorf("operand = %+v", s.Operands)
	}
}

func TestParseAmbiguousRegOrPair(t *testing.T) {
	stmts, errs := Parse("LXI B, 1234H\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	op := stmts[0].Operands[0]
	if op.Kind != OperandRegOrPair || op.RegPair != inst.PairBC {
		t.Errorf("operand = %+v, want RegOrPair BC", op)
	}
}

func TestParseDirective(t *testing.T) {
	stmts, errs := Parse("ORG 0100H\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	s := stmts[0]
	if s.Kind != StmtDirective || s.Directive != DirORG {
		t.Errorf("got %+v", s)
	}
	if len(s.Operands) != 1 || s.Operands[0].Number != 0x0100 {
		t.Errorf("operand = %+v", s.Operands)
	}
}

func TestParseLabelWithAddressOperand(t *testing.T) {
	stmts, errs := Parse("JMP START\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	op := stmts[0].Operands[0]
	if op.Kind != OperandLabel || op.Label != "START" {
		t.Errorf("operand = %+v", op)
	}
}

func TestParseLabelCaseInsensitive(t *testing.T) {
	stmts, errs := Parse("loop: DCR B\n        JMP Loop\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if stmts[0].Label != "LOOP" {
		t.Errorf("label = %q, want LOOP", stmts[0].Label)
	}
	op := stmts[1].Operands[0]
	if op.Kind != OperandLabel || op.Label != "LOOP" {
		t.Errorf("operand = %+v, want label LOOP", op)
	}
}

func TestParseUnknownMnemonic(t *testing.T) {
	_, errs := Parse("FROB A\n")
	if len(errs) == 0 {
		t.Fatal("expected an unknown mnemonic error")
	}
}

func TestParseBlankAndCommentLines(t *testing.T) {
	stmts, errs := Parse("\n; just a comment\nNOP\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(stmts) != 3 {
		t.Fatalf("got %d statements, want 3", len(stmts))
	}
	if stmts[0].Kind != StmtBlank || stmts[1].Kind != StmtBlank {
		t.Errorf("expected blank statements, got %+v %+v", stmts[0], stmts[1])
	}
	if stmts[2].Kind != StmtInstruction || stmts[2].Mnemonic != "NOP" {
		t.Errorf("got %+v", stmts[2])
	}
}

func TestParseEquDirective(t *testing.T) {
	stmts, errs := Parse("COUNT: EQU 10\n")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	s := stmts[0]
	if !s.HasLabel || s.Label != "COUNT" {
		t.Errorf("label = %q", s.Label)
	}
	if s.Kind != StmtDirective || s.Directive != DirEQU {
		t.Errorf("got %+v", s)
	}
}
