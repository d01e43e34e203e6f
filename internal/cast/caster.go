package cast

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

const (
	stopTimeout = 10 * time.Second
	castTimeout = 30 * time.Second
)

// Caster drives the display device.
type Caster interface {
	// Stop ends whatever is currently cast.
	Stop(ctx context.Context) error
	// CastSite casts a web page.
	CastSite(ctx context.Context, url string) error
}

// CattCaster shells out to the catt command line tool.
type CattCaster struct {
	command string
}

// NewCattCaster creates a CattCaster. command is the catt binary, "catt" when empty.
func NewCattCaster(command string) *CattCaster {
	if command == "" {
		command = "catt"
	}
	return &CattCaster{command: command}
}

// Stop runs "catt stop".
func (c *CattCaster) Stop(ctx context.Context) error {
	return c.run(ctx, stopTimeout, "stop")
}

// CastSite runs "catt cast_site URL".
func (c *CattCaster) CastSite(ctx context.Context, url string) error {
	return c.run(ctx, castTimeout, "cast_site", url)
}

func (c *CattCaster) run(ctx context.Context, timeout time.Duration, args ...string) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.command, args...)
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s %s: %w: %s", c.command, args[0], err, msg)
		}
		return fmt.Errorf("%s %s: %w", c.command, args[0], err)
	}
	return nil
}

// DryRunCaster prints the commands that would be run.
type DryRunCaster struct {
	out io.Writer
}

// NewDryRunCaster creates a DryRunCaster writing to out.
func NewDryRunCaster(out io.Writer) *DryRunCaster {
	return &DryRunCaster{out: out}
}

// Stop prints the stop command.
func (d *DryRunCaster) Stop(_ context.Context) error {
	_, err := fmt.Fprintln(d.out, "[dry-run] catt stop")
	return err
}

// CastSite prints the cast command.
func (d *DryRunCaster) CastSite(_ context.Context, url string) error {
	_, err := fmt.Fprintf(d.out, "[dry-run] catt cast_site %s\n", url)
	return err
}
