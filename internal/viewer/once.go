package viewer

import (
	"context"
	"io"

	"go.uber.org/zap"
)

// RunOnce mounts v, waits for it to settle and writes the text rendering to
// w. It returns the process exit code: 0 only when the catalog loaded.
func RunOnce(ctx context.Context, v *Viewer, w io.Writer) int {
	v.Mount(ctx)
	defer v.Unmount()

	if err := v.Wait(ctx); err != nil {
		v.log.Error("wait for catalog", zap.Error(err))
		return 1
	}

	s := v.Snapshot()
	if err := RenderText(w, s); err != nil {
		v.log.Error("render", zap.Error(err))
		return 1
	}
	if s.Status != StatusLoaded {
		return 1
	}
	return 0
}
