package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	RenderTable(&buf, []string{"Vault", "APY"}, [][]string{
		{"IRIS-WMATIC", "123.45%"},
		{"KAVIAN-USDC", "N/A"},
	})

	out := buf.String()
	for _, want := range []string{"IRIS-WMATIC", "123.45%", "KAVIAN-USDC", "N/A"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
