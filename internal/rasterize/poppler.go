// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rasterize

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/docconv/internal/container"
)

const binPdftoppm = "pdftoppm"

// DefaultPopplerImage is the container image used when pdftoppm is missing
// from PATH.
const DefaultPopplerImage = "minidocks/poppler:latest"

// commandRunner runs pdftoppm with the given arguments.
type commandRunner interface {
	Name() string
	Run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error
}

// localRunner runs the pdftoppm binary found on PATH.
type localRunner struct {
	bin string
}

func (l *localRunner) Name() string { return l.bin }

func (l *localRunner) Run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	return container.RunCommand(ctx, l.bin, args, stdin, stdout)
}

// containerRunner runs pdftoppm inside a poppler container image.
type containerRunner struct {
	rt    container.Runtime
	image string
}

func (c *containerRunner) Name() string { return c.rt.Name() + ":" + c.image }

func (c *containerRunner) Run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	return c.rt.Exec(ctx, container.Invocation{
		Image:      c.image,
		Entrypoint: binPdftoppm,
		Args:       args,
		Stdin:      stdin,
		Stdout:     stdout,
	})
}

// Poppler renders pages through poppler's pdftoppm. Page counts come from
// pdfcpu since pdftoppm does not report them.
type Poppler struct {
	runner    commandRunner
	pageCount func(path string) (int, error)
}

// NewPoppler returns a poppler backend using the local pdftoppm when it is on
// PATH, and otherwise image run through docker or podman.
func NewPoppler(image string, log logrus.FieldLogger) (*Poppler, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if image == "" {
		image = DefaultPopplerImage
	}

	if bin, err := exec.LookPath(binPdftoppm); err == nil {
		log.WithField("bin", bin).Debug("using local pdftoppm")
		return newPoppler(&localRunner{bin: bin}), nil
	}

	ctx := context.Background()
	rt, err := container.Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s not on PATH and %w", binPdftoppm, err)
	}
	if !rt.HasImage(ctx, image) {
		return nil, fmt.Errorf("poppler image %s not found in %s (pull it first)", image, rt.Name())
	}
	log.WithFields(logrus.Fields{"runtime": rt.Name(), "image": image}).Debug("using containerized pdftoppm")
	return newPoppler(&containerRunner{rt: rt, image: image}), nil
}

// PopplerOpener returns an Opener that locates pdftoppm on its first call,
// so a missing input is reported before the host is probed for poppler.
func PopplerOpener(image string, log logrus.FieldLogger) Opener {
	var (
		once sync.Once
		p    *Poppler
		err  error
	)
	return func(pdfPath string) (Renderer, error) {
		once.Do(func() { p, err = NewPoppler(image, log) })
		if err != nil {
			return nil, err
		}
		return p.Open(pdfPath)
	}
}

func newPoppler(runner commandRunner) *Poppler {
	return &Poppler{runner: runner, pageCount: api.PageCountFile}
}

// Open satisfies Opener.
func (p *Poppler) Open(pdfPath string) (Renderer, error) {
	n, err := p.pageCount(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("counting pages: %w", err)
	}
	return &popplerDoc{runner: p.runner, path: pdfPath, pages: n}, nil
}

// popplerDoc renders one page per pdftoppm invocation, piping the PDF on
// stdin and reading a single PNG from stdout.
type popplerDoc struct {
	runner commandRunner
	path   string
	pages  int
}

func (d *popplerDoc) PageCount() int { return d.pages }

func (d *popplerDoc) RenderPNG(ctx context.Context, page int, dpi float64, w io.Writer) error {
	f, err := os.Open(d.path)
	if err != nil {
		return fmt.Errorf("opening PDF %s: %w", d.path, err)
	}
	defer f.Close()

	return d.runner.Run(ctx, pdftoppmArgs(page, dpi), f, w)
}

func (d *popplerDoc) Close() error { return nil }

func pdftoppmArgs(page int, dpi float64) []string {
	n := strconv.Itoa(page)
	return []string{
		"-png",
		"-r", strconv.FormatFloat(dpi, 'f', -1, 64),
		"-f", n,
		"-l", n,
		"-singlefile",
		"-",
	}
}
