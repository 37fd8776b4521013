package helpers

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptForYesNo(t *testing.T) {
	cases := []struct {
		input string
		def   bool
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "EVET\n", want: true},
		{input: "e\n", want: true},
		{input: "no\n", def: true, want: false},
		{input: "\n", def: true, want: true},
		{input: "", def: false, want: false},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		got := PromptForYesNo(&out, bufio.NewReader(strings.NewReader(tc.input)), "Sure?", tc.def)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestPromptForConfirmation_DefaultsToNo(t *testing.T) {
	var out bytes.Buffer

	assert.False(t, PromptForConfirmation(&out, strings.NewReader(""), "Delete?"))
	assert.Equal(t, "Delete? [y/N]: ", out.String())
}
