package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zephyrtronium/maths"
	"github.com/zephyrtronium/maths/internal/render"
)

// ans is the variable holding the result of the last evaluation.
const ans = "ans"

// calculator holds the variables shared by all tool calls.
type calculator struct {
	mu  sync.Mutex
	ctx *maths.Context
}

func newCalculator() *calculator {
	return &calculator{ctx: maths.NewContext()}
}

// eval evaluates src and stores the result in name.
func (c *calculator) eval(src, name string) (float64, error) {
	e, err := maths.Parse(src)
	if err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	r, err := c.ctx.Eval(e)
	if err != nil {
		return 0, err
	}
	c.ctx.Set(name, r)
	return r, nil
}

func (c *calculator) handleEval(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr, err := request.RequireString("expr")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	radix, err := parseFormat(request.GetString("format", "dec"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	r, err := c.eval(expr, ans)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(render.Float(r, radix)), nil
}

func (c *calculator) handleSet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	expr, err := request.RequireString("expr")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !maths.IsName(name) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid variable name %q", name)), nil
	}
	if _, ok := maths.Constant(name); ok {
		return mcp.NewToolResultError("cannot set constant " + name), nil
	}
	r, err := c.eval(expr, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(name + " = " + render.Float(r, maths.Decimal)), nil
}

func (c *calculator) handleVars(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := c.ctx.Names()
	if len(names) == 0 {
		return mcp.NewToolResultText("no variables"), nil
	}
	var b strings.Builder
	for _, name := range names {
		v, _ := c.ctx.Lookup(name)
		fmt.Fprintf(&b, "%s = %s\n", name, render.Float(v, maths.Decimal))
	}
	return mcp.NewToolResultText(b.String()), nil
}

// parseFormat gets the radix named by an output format.
func parseFormat(format string) (maths.Radix, error) {
	for _, r := range []maths.Radix{maths.Decimal, maths.Hexadecimal, maths.Binary} {
		if format == r.String() {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown format %q; use dec, hex, or bin", format)
}
