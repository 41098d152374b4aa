// Package gitx wraps the two git operations the optimizer needs:
// listing paths staged for commit and staging produced outputs. Both
// are plain subprocess invocations; every failure is reported to the
// caller, which treats it as non-fatal.
package gitx

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Client runs git commands with Dir as the working directory. The zero
// value runs them in the process working directory.
type Client struct {
	Dir string
}

func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("git %s: %s: %w", args[0], msg, err)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return stdout.String(), nil
}

// StagedPaths returns the absolute paths currently staged for commit.
// Deleted entries are excluded since they no longer exist on disk.
func (c *Client) StagedPaths(ctx context.Context) ([]string, error) {
	root, err := c.run(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, err
	}
	root = strings.TrimSpace(root)

	out, err := c.run(ctx, "diff", "--cached", "--name-only", "--diff-filter=ACMR")
	if err != nil {
		return nil, err
	}

	return JoinStagedOutput(root, out), nil
}

// JoinStagedOutput converts `git diff --cached --name-only` output into
// absolute paths under root. Blank lines are dropped.
func JoinStagedOutput(root, out string) []string {
	var paths []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		paths = append(paths, filepath.Join(root, filepath.FromSlash(line)))
	}
	return paths
}

// Add stages one path with the index.
func (c *Client) Add(ctx context.Context, path string) error {
	_, err := c.run(ctx, "add", "--", path)
	return err
}
