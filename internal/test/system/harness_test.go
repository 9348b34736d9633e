package system

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/vecgraph/internal/app"
	"github.com/specialistvlad/vecgraph/internal/registry"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a session run.
type HarnessResult struct {
	Output string
	Err    error
	// SavedPath is where the session was saved, or empty when the run failed.
	SavedPath string
	App       *app.App
}

// RunSessionTest writes sessionHCL to a temporary file and runs the app on
// it with previews on, saving the result next to it. cfg supplies the run
// flags; paths and logging are filled in by the harness. Without modules
// every core module is registered.
func RunSessionTest(t *testing.T, sessionHCL string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()
	return RunSessionTestWithContext(context.Background(), t, sessionHCL, cfg, modules...)
}

// RunSessionTestWithContext is RunSessionTest with a caller provided context.
func RunSessionTestWithContext(ctx context.Context, t *testing.T, sessionHCL string, cfg app.Config, modules ...registry.Module) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	cfg.SessionPath = filepath.Join(tmpDir, "session.hcl")
	cfg.SavePath = filepath.Join(tmpDir, "saved.hcl")
	cfg.Preview = true
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	require.NoError(t, os.WriteFile(cfg.SessionPath, []byte(sessionHCL), 0644))

	out := &SafeBuffer{}

	var testApp *app.App
	var panicErr any
	func() {
		defer func() {
			if r := recover(); r != nil {
				panicErr = r
			}
		}()
		testApp = app.NewApp(out, &cfg, modules...)
	}()
	if panicErr != nil {
		return &HarnessResult{
			Output: out.String(),
			Err:    fmt.Errorf("application startup panicked | %v", panicErr),
		}
	}

	runErr := testApp.Run(ctx)

	if os.Getenv("VECGRAPH_TEST_LOGS") == "true" {
		t.Logf("--- Full Output for %s ---\n%s", t.Name(), out.String())
	}

	result := &HarnessResult{Output: out.String(), Err: runErr, App: testApp}
	if runErr == nil {
		result.SavedPath = cfg.SavePath
	}
	return result
}
