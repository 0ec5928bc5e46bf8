package main

import (
	"context"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text, res.IsError
}

func TestEval(t *testing.T) {
	cases := []struct {
		name  string
		args  map[string]any
		want  string
		iserr bool
	}{
		{"dec", map[string]any{"expr": "1 + 2 * 3"}, "7", false},
		{"hex", map[string]any{"expr": "12.1875", "format": "hex"}, "0xc.3", false},
		{"bin", map[string]any{"expr": "5.25", "format": "bin"}, "0b101.01", false},
		{"pow", map[string]any{"expr": "2 ** 3 ** 2"}, "64", false},
		{"bad-format", map[string]any{"expr": "1", "format": "oct"}, `unknown format "oct"; use dec, hex, or bin`, true},
		{"missing", map[string]any{}, "", true},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			got, iserr := call(t, newCalculator().handleEval, c.args)
			assert.Equal(t, c.iserr, iserr)
			if c.want != "" {
				assert.Equal(t, c.want, got)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	c := newCalculator()
	got, iserr := call(t, c.handleEval, map[string]any{"expr": "x + 1"})
	assert.True(t, iserr)
	assert.Contains(t, got, `undeclared variable or constant "x"`)
	got, iserr = call(t, c.handleEval, map[string]any{"expr": "sin(1"})
	assert.True(t, iserr)
	assert.Contains(t, got, "unterminated call to sin")
	_, ok := c.ctx.Lookup(ans)
	assert.False(t, ok)
}

func TestAnsAndVars(t *testing.T) {
	c := newCalculator()
	got, _ := call(t, c.handleVars, nil)
	assert.Equal(t, "no variables", got)

	got, iserr := call(t, c.handleSet, map[string]any{"name": "x", "expr": "0x10"})
	require.False(t, iserr, got)
	assert.Equal(t, "x = 16", got)

	got, iserr = call(t, c.handleEval, map[string]any{"expr": "x / 4"})
	require.False(t, iserr, got)
	assert.Equal(t, "4", got)
	got, iserr = call(t, c.handleEval, map[string]any{"expr": "ans * x", "format": "hex"})
	require.False(t, iserr, got)
	assert.Equal(t, "0x40", got)

	got, _ = call(t, c.handleVars, nil)
	assert.Equal(t, "ans = 64\nx = 16\n", got)
}

func TestSetErrors(t *testing.T) {
	cases := []struct {
		name string
		args map[string]any
	}{
		{"no-name", map[string]any{"expr": "1"}},
		{"no-expr", map[string]any{"name": "x"}},
		{"bad-name", map[string]any{"name": "2x", "expr": "1"}},
		{"spaces", map[string]any{"name": "x y", "expr": "1"}},
		{"constant", map[string]any{"name": "pi", "expr": "3"}},
		{"bad-expr", map[string]any{"name": "x", "expr": "y"}},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			calc := newCalculator()
			_, iserr := call(t, calc.handleSet, c.args)
			assert.True(t, iserr)
			assert.Empty(t, calc.ctx.Names())
		})
	}
}

func TestConcurrentEval(t *testing.T) {
	c := newCalculator()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				c.eval("gcd(48, 180) + 1", ans)
			}
		}()
	}
	wg.Wait()
	v, ok := c.ctx.Lookup(ans)
	require.True(t, ok)
	assert.Equal(t, 13.0, v)
}
