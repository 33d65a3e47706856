package js

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dop251/goja"
)

// consoleAPI backs the script console. log always goes to stdout; warn and
// error go to the logger when there is one.
type consoleAPI struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

func (c *consoleAPI) register(vm *goja.Runtime) {
	console := vm.NewObject()
	console.Set("log", c.log)
	console.Set("warn", c.warn)
	console.Set("error", c.errorFn)
	vm.Set("console", console)
}

func (c *consoleAPI) log(call goja.FunctionCall) goja.Value {
	fmt.Fprintln(c.stdout, formatArgs(call.Arguments))
	return goja.Undefined()
}

func (c *consoleAPI) warn(call goja.FunctionCall) goja.Value {
	c.report(slog.LevelWarn, "WARN:", call.Arguments)
	return goja.Undefined()
}

func (c *consoleAPI) errorFn(call goja.FunctionCall) goja.Value {
	c.report(slog.LevelError, "ERROR:", call.Arguments)
	return goja.Undefined()
}

func (c *consoleAPI) report(level slog.Level, prefix string, args []goja.Value) {
	msg := formatArgs(args)
	if c.logger == nil {
		fmt.Fprintln(c.stderr, prefix, msg)
		return
	}
	c.logger.Log(context.Background(), level, msg, slog.String("source", "script"))
}

func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return strings.Join(parts, " ")
}
