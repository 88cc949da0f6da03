package parser

import (
	"reflect"
	"testing"
)

func TestSplitOperands(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "x1, x2, x3", []string{"x1", "x2", "x3"}},
		{"memory operand not split", "x1, 4(x2)", []string{"x1", "4(x2)"}},
		{"single operand", "loop", []string{"loop"}},
		{"empty", "", nil},
		{"extra spaces", "  x1 ,  x2  ", []string{"x1", "x2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitOperands(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitOperands(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSplitLabelAndRest(t *testing.T) {
	label, rest, hasLabel := splitLabelAndRest("start: addi x1, x0, 1")
	if !hasLabel || label != "start" || rest != "addi x1, x0, 1" {
		t.Errorf("got label=%q rest=%q hasLabel=%v", label, rest, hasLabel)
	}

	label, rest, hasLabel = splitLabelAndRest("addi x1, x0, 1")
	if hasLabel || label != "" || rest != "addi x1, x0, 1" {
		t.Errorf("got label=%q rest=%q hasLabel=%v, want no label", label, rest, hasLabel)
	}

	_, _, hasLabel = splitLabelAndRest("   ")
	if hasLabel {
		t.Error("blank line should not have a label")
	}
}

func TestSplitMnemonicAndOperands(t *testing.T) {
	mnemonic, operands := splitMnemonicAndOperands("addi x1, x0, 1")
	if mnemonic != "addi" || operands != "x1, x0, 1" {
		t.Errorf("got mnemonic=%q operands=%q", mnemonic, operands)
	}
}

func TestStripComment(t *testing.T) {
	if got := stripComment("addi x1, x0, 1 # comment"); got != "addi x1, x0, 1 " {
		t.Errorf("stripComment() = %q", got)
	}
	if got := stripComment("no comment here"); got != "no comment here" {
		t.Errorf("stripComment() = %q", got)
	}
}
