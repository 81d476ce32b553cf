// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs command-line tools from a container image through
// docker or podman. The poppler renderer uses it on hosts where pdftoppm is
// not installed.
package container

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Invocation describes one tool run inside a throwaway container.
type Invocation struct {
	Image string

	// Entrypoint overrides the image entrypoint, e.g. "pdftoppm". Empty
	// keeps the image default.
	Entrypoint string

	Args   []string
	Stdin  io.Reader
	Stdout io.Writer
}

// Runtime is a usable container engine.
type Runtime interface {
	// Name returns the engine binary, "docker" or "podman".
	Name() string

	// HasImage reports whether image is present locally.
	HasImage(ctx context.Context, image string) bool

	// Exec runs inv and waits for it to exit. Failures carry the tool's
	// stderr as a *CommandError.
	Exec(ctx context.Context, inv Invocation) error
}

// CommandError is a failed external command together with what it wrote
// to stderr.
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, e.Stderr)
}

func (e *CommandError) Unwrap() error { return e.Err }

// RunCommand runs name with args, piping stdin and stdout, and returns a
// *CommandError holding the trimmed stderr when the command fails.
func RunCommand(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	return osCommander{}.Run(ctx, name, args, stdin, stdout)
}

// commander runs host processes. Tests replace it.
type commander interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error
}

type osCommander struct{}

func (osCommander) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osCommander) Run(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &CommandError{
			Command: name,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	return nil
}

// engine is a supported container CLI. docker and podman differ only in
// how they check for a local image.
type engine struct {
	bin        string
	imageCheck []string
}

// engines in order of preference.
var engines = []engine{
	{bin: "docker", imageCheck: []string{"image", "inspect"}},
	{bin: "podman", imageCheck: []string{"image", "exists"}},
}

type cli struct {
	engine
	cmd commander
}

func (c *cli) Name() string { return c.bin }

// ready checks that the engine is installed and its daemon or socket
// answers.
func (c *cli) ready(ctx context.Context) error {
	if _, err := c.cmd.LookPath(c.bin); err != nil {
		return fmt.Errorf("%s not on PATH", c.bin)
	}
	if err := c.cmd.Run(ctx, c.bin, []string{"info"}, nil, io.Discard); err != nil {
		return err
	}
	return nil
}

func (c *cli) HasImage(ctx context.Context, image string) bool {
	args := append(append([]string{}, c.imageCheck...), image)
	return c.cmd.Run(ctx, c.bin, args, nil, io.Discard) == nil
}

func (c *cli) Exec(ctx context.Context, inv Invocation) error {
	args := []string{"run", "--rm", "-i"}
	if inv.Entrypoint != "" {
		args = append(args, "--entrypoint", inv.Entrypoint)
	}
	args = append(args, inv.Image)
	args = append(args, inv.Args...)
	return c.cmd.Run(ctx, c.bin, args, inv.Stdin, inv.Stdout)
}

// Detect returns the first engine that is installed and responding,
// preferring docker over podman.
func Detect(ctx context.Context) (Runtime, error) {
	return detect(ctx, osCommander{})
}

func detect(ctx context.Context, cmd commander) (Runtime, error) {
	reasons := make([]string, 0, len(engines))
	for _, e := range engines {
		c := &cli{engine: e, cmd: cmd}
		err := c.ready(ctx)
		if err == nil {
			return c, nil
		}
		reasons = append(reasons, err.Error())
	}
	return nil, fmt.Errorf("no container runtime available (%s)", strings.Join(reasons, "; "))
}
