package main

import (
	"log"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func newServer(c *calculator) *server.MCPServer {
	s := server.NewMCPServer(
		"maths",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.AddTool(
		mcp.NewTool("maths_eval",
			mcp.WithDescription("Evaluate an arithmetic expression. The result is also stored in the variable ans."),
			mcp.WithString("expr",
				mcp.Required(),
				mcp.Description("Expression to evaluate, e.g. 1 + 2 * (3 ** 4 - 5) or gcd(12, 18) or log_2(x)"),
			),
			mcp.WithString("format",
				mcp.Description("Radix of the result: dec (default), hex (0x prefix), or bin (0b prefix)"),
				mcp.Enum("dec", "hex", "bin"),
			),
		),
		c.handleEval,
	)

	s.AddTool(
		mcp.NewTool("maths_set",
			mcp.WithDescription("Evaluate an expression and store the result in a variable for later expressions."),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Variable name: a letter or underscore followed by letters, digits, or underscores"),
			),
			mcp.WithString("expr",
				mcp.Required(),
				mcp.Description("Expression for the variable's value"),
			),
		),
		c.handleSet,
	)

	s.AddTool(
		mcp.NewTool("maths_vars",
			mcp.WithDescription("List all variables and their values."),
		),
		c.handleVars,
	)

	return s
}

func main() {
	log.SetFlags(0)
	s := newServer(newCalculator())
	if err := server.ServeStdio(s); err != nil {
		log.Fatalf("serve: %v", err)
	}
}
