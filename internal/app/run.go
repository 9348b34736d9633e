package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/vecgraph/internal/ctxlog"
	"github.com/specialistvlad/vecgraph/internal/graph"
	"github.com/specialistvlad/vecgraph/internal/node"
	"github.com/specialistvlad/vecgraph/internal/nodeid"
	"github.com/specialistvlad/vecgraph/internal/session"
)

// Run executes the main application logic based on the app's configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.LibraryPath != "" {
		n, err := session.LoadLibrary(ctx, a.config.LibraryPath, a.registry)
		if err != nil {
			return fmt.Errorf("failed to load library: %w", err)
		}
		a.logger.Info("Custom node library loaded.", "path", a.config.LibraryPath, "definitions", n)
	}

	s, err := a.open(ctx)
	if err != nil {
		return err
	}

	if a.config.Seed != nil {
		if err := a.reseed(ctx, s, *a.config.Seed); err != nil {
			return err
		}
	}

	if a.config.Frames > 0 {
		if err := a.animate(ctx, s); err != nil {
			return err
		}
	}

	if a.config.Preview {
		a.preview(s)
	}

	if a.config.SavePath != "" {
		if err := s.SaveFile(ctx, a.config.SavePath); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
		a.logger.Info("Session saved.", "path", a.config.SavePath)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// open loads the configured session, or starts an empty one.
func (a *App) open(ctx context.Context) (*session.Session, error) {
	if a.config.SessionPath == "" {
		a.logger.Debug("No session path given, starting an empty session.")
		return session.New(a.registry), nil
	}
	s, err := session.LoadFile(ctx, a.config.SessionPath, a.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	a.logger.Info("Session loaded.", "path", a.config.SessionPath, "nodes", len(s.Manager.Nodes()))
	a.logFailures(s.Manager)
	return s, nil
}

// reseed gives every randomisable node its own seed derived from seed and
// recomputes them.
func (a *App) reseed(ctx context.Context, s *session.Session, seed int64) error {
	var ids []nodeid.NodeID
	for _, id := range s.Manager.Nodes() {
		n, _ := s.Manager.Node(id)
		if _, ok := node.As[node.Randomisable](n); ok {
			ids = append(ids, id)
		}
	}
	seeds := node.DeriveSeeds(seed, len(ids))
	for i, id := range ids {
		if err := s.Manager.Randomise(ctx, id, &seeds[i]); err != nil {
			return err
		}
	}
	report, err := s.Manager.Recompute(ctx, ids...)
	if err != nil {
		return fmt.Errorf("failed to recompute reseeded nodes: %w", err)
	}
	a.logger.Info("Reseeded randomisable nodes.", "seed", seed, "count", len(ids), "failed", len(report.Failed))
	return nil
}

// animate starts every stopped animation and feeds it Frames ticks.
func (a *App) animate(ctx context.Context, s *session.Session) error {
	playing := 0
	for _, id := range s.Manager.Nodes() {
		n, _ := s.Manager.Node(id)
		an, ok := node.As[node.Animatable](n)
		if !ok {
			continue
		}
		if !an.Playing() {
			if err := s.Manager.TogglePlay(id); err != nil {
				return err
			}
		}
		playing++
	}
	if playing == 0 {
		a.logger.Warn("No animatable nodes found, frames not required.", "frames", a.config.Frames)
		return nil
	}

	a.logger.Info("Running frames.", "frames", a.config.Frames, "tick", a.config.Tick, "animations", playing)
	for frame := range a.config.Frames {
		report, err := s.Manager.Tick(ctx, a.config.Tick)
		if err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		a.logger.Debug("Frame finished.", "frame", frame, "computed", len(report.Computed), "failed", len(report.Failed))
	}
	a.logFailures(s.Manager)
	return nil
}

// preview prints every node's display tree in id order.
func (a *App) preview(s *session.Session) {
	for _, id := range s.Manager.Nodes() {
		n, _ := s.Manager.Node(id)
		fmt.Fprintf(a.outW, "%s (%s)\n", id, n.Info().Type)
		if el := s.Manager.Display(id); el != nil {
			fmt.Fprint(a.outW, el.Dump())
		}
	}
}

func (a *App) logFailures(m *graph.Manager) {
	for _, id := range m.Nodes() {
		rn, ok := m.Runtime(id)
		if ok && rn.Err() != nil {
			a.logger.Info("Node has no results.", "node", id.String(), "error", rn.Err())
		}
	}
}
