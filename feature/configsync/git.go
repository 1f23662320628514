package configsync

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// commitSnapshots stages the snapshot directory and commits it when the
// working tree actually changed. Returns true when a commit was made.
func commitSnapshots(ctx context.Context, dir string) (bool, error) {
	if out, err := runGit(ctx, "add", dir); err != nil {
		return false, fmt.Errorf("git add failed: %s: %w", out, err)
	}

	// Exit code 0 means the index matches HEAD, so there is nothing to commit.
	if _, err := runGit(ctx, "diff", "--cached", "--quiet", "--", dir); err == nil {
		return false, nil
	}

	msg := fmt.Sprintf("Update device configs %s", time.Now().Format("2006-01-02 15:04"))
	if out, err := runGit(ctx, "commit", "-m", msg); err != nil {
		return false, fmt.Errorf("git commit failed: %s: %w", out, err)
	}
	return true, nil
}

func runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	out, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(out)), err
}
