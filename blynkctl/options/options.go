// Package options holds the command-line flags shared across the CLI
// and small helpers around them.
package options

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gopkg.in/yaml.v2"
)

var Flags struct {
	Verbose bool
	Debug   bool
	Quiet   bool
	Json    bool
	Config  string        // the value taken by --config / -c
	Server  string        // the value taken by --server / -S
	Wait    time.Duration // the value taken by --wait / -w
}

// CommandLineContext derives the context commands run under: cancelled
// on SIGINT/SIGTERM, with a deadline when --wait is set.
func CommandLineContext(parent context.Context) (context.Context, context.CancelFunc) {
	var ctx context.Context
	var cancel context.CancelFunc
	if Flags.Wait > 0 {
		ctx, cancel = context.WithTimeout(parent, Flags.Wait)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}
	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt)
		signal.Notify(signals, syscall.SIGTERM)
		<-signals
		cancel()
	}()
	return ctx, cancel
}

// PrintResult writes a structured result as JSON when --json is set,
// YAML otherwise.
func PrintResult(w io.Writer, out any) error {
	if Flags.Json {
		s, err := json.Marshal(out)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(s))
	} else {
		s, err := yaml.Marshal(out)
		if err != nil {
			return err
		}
		fmt.Fprint(w, string(s))
	}
	return nil
}
