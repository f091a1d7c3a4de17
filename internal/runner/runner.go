// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"sync"

	"github.com/matt-FFFFFF/quell/internal/ctxlog"
	"github.com/matt-FFFFFF/quell/internal/outputfilter"
	"github.com/matt-FFFFFF/quell/internal/signalbroker"
)

var (
	// ErrNoCommand is returned when Command.Path is empty.
	ErrNoCommand = errors.New("no command specified")
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrDuplicateSignalReceived is returned when a second signal of the same type forced termination.
	ErrDuplicateSignalReceived = signalbroker.ErrDuplicateSignal
	// ErrContextDone is returned when the context ended before the process did.
	ErrContextDone = signalbroker.ErrContextDone
	// ErrOutput is returned when the child's output could not be written.
	ErrOutput = errors.New("failed to write output")
)

// Command is a child process whose output is streamed line by line.
type Command struct {
	Path string            // Executable name or path.
	Args []string          // Arguments, not including the executable.
	Cwd  string            // Working directory, empty for the current one.
	Env  map[string]string // Added to the current environment.

	// Signals are relayed to the child. When nil, Run subscribes to the
	// termination signals for its own duration.
	Signals <-chan os.Signal
}

// Run starts the command and copies its stdout to stdout and its stderr to
// stderr, each one complete line per Write. It returns the child's exit code
// unchanged; a child ended by a signal reports 128 plus the signal number, as
// a shell does.
//
// The first termination signal of each type is forwarded to the child; a
// second one kills it. If ctx ends first the child is killed. In both cases
// the exit code is -1.
func (c *Command) Run(ctx context.Context, stdout, stderr io.Writer) (int, error) {
	logger := ctxlog.Logger(ctx).With("command", c.Path)

	if c.Path == "" {
		return -1, ErrNoCommand
	}

	path, err := LookPath(c.Path)
	if err != nil {
		return -1, err
	}

	sigCh := c.Signals
	if sigCh == nil {
		ch := signalbroker.New(ctx)
		defer signal.Stop(ch)

		sigCh = ch
	}

	env := os.Environ()
	for k, v := range c.Env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}

	rOut, wOut, err := os.Pipe()
	if err != nil {
		return -1, errors.Join(ErrFailedToCreatePipe, err)
	}

	rErr, wErr, err := os.Pipe()
	if err != nil {
		_ = rOut.Close()
		_ = wOut.Close()

		return -1, errors.Join(ErrFailedToCreatePipe, err)
	}

	logger.Debug("starting process", "path", path, "args", c.Args, "cwd", c.Cwd)

	ps, err := os.StartProcess(path, slices.Concat([]string{c.Path}, c.Args), &os.ProcAttr{
		Dir:   c.Cwd,
		Env:   env,
		Files: []*os.File{os.Stdin, wOut, wErr},
	})

	// The child holds its own copies; ours must go so the readers see EOF.
	_ = wOut.Close()
	_ = wErr.Close()

	if err != nil {
		_ = rOut.Close()
		_ = rErr.Close()

		return -1, errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ps.Pid)

	var (
		wg      sync.WaitGroup
		outErr  error
		errErr  error
		done    = make(chan struct{})
		stopped = make(chan struct{})
		killed  = make(chan error, 1)
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		outErr = pump(rOut, stdout)
	}()

	go func() {
		defer wg.Done()

		errErr = pump(rErr, stderr)
	}()

	go func() {
		defer close(stopped)

		if err := signalbroker.Relay(ctx, sigCh, ps, done); err != nil {
			killed <- err
		}
	}()

	state, waitErr := ps.Wait()

	close(done)
	<-stopped
	wg.Wait()

	exitCode := exitCodeOf(state)

	logger.Debug("process finished", "exitCode", exitCode)

	select {
	case e := <-killed:
		return -1, errors.Join(waitErr, e)
	default:
	}

	if waitErr != nil {
		return -1, waitErr //nolint:wrapcheck
	}

	if err := errors.Join(outErr, errErr); err != nil {
		return exitCode, errors.Join(ErrOutput, err)
	}

	return exitCode, nil
}

// pump copies r to w one line at a time and closes r.
// After a write error it keeps reading so the child never blocks on a full pipe.
func pump(r *os.File, w io.Writer) error {
	defer r.Close() //nolint:errcheck

	lw := outputfilter.NewLineWriter(w)

	_, err := io.Copy(lw, r)
	if err != nil {
		_, _ = io.Copy(io.Discard, r)
	}

	return errors.Join(err, lw.Flush())
}
