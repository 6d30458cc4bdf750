// Package workdir finds the directory disclose keeps its .disclose state in.
package workdir

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Markers of a project root. A root file holds the path of the real root so a
// git worktree can share the settings of the main checkout.
const (
	rootFile   = ".disclose-root"
	projectDir = ".disclose"
)

// ResolveBaseDir returns the project root for dir. Markers in dir itself win;
// after that the top level of the enclosing git work tree is checked. In
// either place a root file takes precedence over a project dir. With no
// markers the cleaned dir is returned.
func ResolveBaseDir(dir string) string {
	if dir == "" {
		return ""
	}
	dir = filepath.Clean(dir)

	if root, ok := markedRoot(dir); ok {
		return root
	}
	if top, ok := gitTopLevel(dir); ok {
		if root, ok := markedRoot(top); ok {
			return root
		}
	}
	return dir
}

// markedRoot reports the project root that dir's markers point at.
func markedRoot(dir string) (string, bool) {
	if target, ok := redirect(dir); ok {
		return target, true
	}
	if fi, err := os.Stat(filepath.Join(dir, projectDir)); err == nil && fi.IsDir() {
		return dir, true
	}
	return "", false
}

// redirect reads the root file in dir. Relative targets are joined to dir; a
// blank file is ignored.
func redirect(dir string) (string, bool) {
	b, err := os.ReadFile(filepath.Join(dir, rootFile))
	if err != nil {
		return "", false
	}
	target := strings.TrimSpace(string(b))
	if target == "" {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return filepath.Clean(target), true
}

func gitTopLevel(dir string) (string, bool) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", false
	}
	top := strings.TrimSpace(string(out))
	if top == "" {
		return "", false
	}
	return filepath.Clean(top), true
}
