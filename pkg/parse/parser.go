package parse

import (
	"strings"

	"github.com/8085dev/asm85/pkg/inst"
	"github.com/8085dev/asm85/pkg/lex"
)

// Parse lexes and parses complete source text into one Statement per
// source line, plus any errors encountered. A line that fails to parse
// still produces a Statement (StmtBlank, or a StmtInstruction carrying
// the name for an unknown mnemonic) so line numbering for later
// statements stays correct.
func Parse(source string) ([]Statement, []Error) {
	lexemes, lexErrs := lex.Lex(source)

	var errs []Error
	for _, le := range lexErrs {
		errs = append(errs, Error{Span: le.Span, Reason: le.Reason})
	}

	lines := splitLines(lexemes)
	sourceLines := strings.Split(source, "\n")

	stmts := make([]Statement, 0, len(lines))
	for _, line := range lines {
		p := &lineParser{tokens: line}
		stmt, lineErrs := p.parseLine()
		if len(line) > 0 {
			stmt.Line = line[0].Span.Line
			if idx := stmt.Line - 1; idx >= 0 && idx < len(sourceLines) {
				stmt.Source = sourceLines[idx]
			}
		}
		stmts = append(stmts, stmt)
		errs = append(errs, lineErrs...)
	}

	return stmts, errs
}

// splitLines groups lexemes into per-line slices, dropping EOL and EOF
// markers and comments (which carry no parse-relevant information).
func splitLines(lexemes []lex.Lexeme) [][]lex.Lexeme {
	var lines [][]lex.Lexeme
	var cur []lex.Lexeme
	for _, lx := range lexemes {
		switch lx.Kind {
		case lex.Comment:
			continue
		case lex.EOL:
			lines = append(lines, cur)
			cur = nil
		case lex.EOF:
			if len(cur) > 0 {
				lines = append(lines, cur)
			}
		default:
			cur = append(cur, lx)
		}
	}
	return lines
}

type lineParser struct {
	tokens []lex.Lexeme
	pos    int
}

func (p *lineParser) peek() (lex.Lexeme, bool) {
	if p.pos >= len(p.tokens) {
		return lex.Lexeme{}, false
	}
	return p.tokens[p.pos], true
}

func (p *lineParser) next() (lex.Lexeme, bool) {
	lx, ok := p.peek()
	if ok {
		p.pos++
	}
	return lx, ok
}

func (p *lineParser) parseLine() (Statement, []Error) {
	var errs []Error
	stmt := Statement{Kind: StmtBlank}

	if len(p.tokens) == 0 {
		return stmt, errs
	}

	// Optional leading label: Identifier Colon. A label without a colon
	// is not recognized; its name is parsed as the mnemonic.
	if lx, ok := p.peek(); ok && lx.Kind == lex.Identifier {
		if next, ok2 := p.tokenAt(p.pos + 1); ok2 && next.Kind == lex.Colon {
			stmt.Label = strings.ToUpper(lx.Text)
			stmt.HasLabel = true
			p.pos += 2
		}
	}

	if _, ok := p.peek(); !ok {
		stmt.Kind = StmtLabelOnly
		return stmt, errs
	}

	mnemLex, ok := p.next()
	if !ok || mnemLex.Kind != lex.Identifier {
		errs = append(errs, Error{Span: mnemLex.Span, Reason: "expected mnemonic or directive"})
		return stmt, errs
	}
	name := strings.ToUpper(mnemLex.Text)

	operands, opErrs := p.parseOperands()
	errs = append(errs, opErrs...)

	if dir, ok := LookupDirective(name); ok {
		stmt.Kind = StmtDirective
		stmt.Directive = dir
		stmt.Operands = operands
		return stmt, errs
	}

	if _, ok := inst.LookupMnemonic(name); ok {
		stmt.Kind = StmtInstruction
		stmt.Mnemonic = name
		stmt.Operands = operands
		return stmt, errs
	}

	errs = append(errs, Error{Span: mnemLex.Span, Reason: "unknown mnemonic or directive " + mnemLex.Text})
	stmt.Kind = StmtInstruction
	stmt.Mnemonic = name
	stmt.Operands = operands
	return stmt, errs
}

func (p *lineParser) tokenAt(i int) (lex.Lexeme, bool) {
	if i < 0 || i >= len(p.tokens) {
		return lex.Lexeme{}, false
	}
	return p.tokens[i], true
}

func (p *lineParser) parseOperands() ([]OperandNode, []Error) {
	var operands []OperandNode
	var errs []Error

	if _, ok := p.peek(); !ok {
		return operands, errs
	}

	for {
		lx, ok := p.next()
		if !ok {
			break
		}
		op, err := p.parseOperand(lx)
		if err != nil {
			errs = append(errs, *err)
		} else {
			operands = append(operands, op)
		}

		next, ok := p.peek()
		if !ok {
			break
		}
		if next.Kind != lex.Comma {
			errs = append(errs, Error{Span: next.Span, Reason: "expected comma between operands"})
			break
		}
		p.next() // consume comma
	}

	return operands, errs
}

func (p *lineParser) parseOperand(lx lex.Lexeme) (OperandNode, *Error) {
	switch lx.Kind {
	case lex.Integer:
		return OperandNode{Kind: OperandNumber, Number: lx.Value, Span: lx.Span}, nil
	case lex.String:
		return OperandNode{Kind: OperandString, Str: lx.Text, Span: lx.Span}, nil
	case lex.Identifier:
		text := strings.ToUpper(lx.Text)
		if len(text) == 1 {
			r, isReg := inst.RegByName(text)
			rp, isPair := inst.RegPairByName(text)
			switch {
			case isReg && isPair:
				return OperandNode{Kind: OperandRegOrPair, Reg: r, RegPair: rp, Span: lx.Span}, nil
			case isReg:
				return OperandNode{Kind: OperandReg, Reg: r, Span: lx.Span}, nil
			}
		}
		if rp, ok := inst.RegPairByName(text); ok {
			return OperandNode{Kind: OperandRegPair, RegPair: rp, Span: lx.Span}, nil
		}
		return OperandNode{Kind: OperandLabel, Label: strings.ToUpper(lx.Text), Span: lx.Span}, nil
	default:
		return OperandNode{}, &Error{Span: lx.Span, Reason: "unexpected token in operand position"}
	}
}
