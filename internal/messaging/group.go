package messaging

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Runnable represents a component that can be started and shutdown.
type Runnable interface {
	Start(ctx context.Context) error
	Shutdown() error
}

// Group starts and stops several runnables together.
type Group struct {
	members []Runnable
	logger  *zap.Logger
}

// NewGroup creates an empty group.
func NewGroup(logger *zap.Logger) *Group {
	return &Group{logger: logger}
}

// Add registers a member. Members start in the order they were added.
func (g *Group) Add(member Runnable) {
	g.members = append(g.members, member)
}

// Start starts every member. If one fails, those already started are shut down.
func (g *Group) Start(ctx context.Context) error {
	for i, member := range g.members {
		if err := member.Start(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = g.members[j].Shutdown()
			}

			return fmt.Errorf("start member %d: %w", i, err)
		}
	}

	g.logger.Info("group started", zap.Int("members", len(g.members)))

	return nil
}

// Shutdown stops members in reverse start order and joins their errors.
func (g *Group) Shutdown() error {
	var errs []error

	for i := len(g.members) - 1; i >= 0; i-- {
		if err := g.members[i].Shutdown(); err != nil {
			errs = append(errs, err)
		}
	}

	g.logger.Info("group stopped", zap.Int("members", len(g.members)))

	return errors.Join(errs...)
}
