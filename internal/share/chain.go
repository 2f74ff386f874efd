package share

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrUnavailable is returned by a provider whose capability is absent.
var ErrUnavailable = errors.New("share capability unavailable")

// Provider is one step of the share fallback chain.
type Provider interface {
	Name() string
	Share(ctx context.Context, msg Message) error
}

// Result reports which provider handled a share request. Provider is empty
// when every step failed.
type Result struct {
	Provider string
	Errors   []error
}

// OK reports whether any provider succeeded.
func (r Result) OK() bool {
	return r.Provider != ""
}

// Chain tries providers in order and stops at the first success.
type Chain struct {
	providers []Provider
	logger    *zap.Logger
}

func NewChain(logger *zap.Logger, providers ...Provider) *Chain {
	return &Chain{providers: providers, logger: logger}
}

// Share dispatches msg. It never returns an error; failures are collected
// in the result.
func (c *Chain) Share(ctx context.Context, msg Message) Result {
	var res Result
	for _, p := range c.providers {
		err := p.Share(ctx, msg)
		if err == nil {
			res.Provider = p.Name()
			c.logger.Debug("shared", zap.String("provider", p.Name()))
			return res
		}

		res.Errors = append(res.Errors, fmt.Errorf("%s: %w", p.Name(), err))
		if errors.Is(err, ErrUnavailable) {
			c.logger.Debug("share provider unavailable", zap.String("provider", p.Name()))
		} else {
			c.logger.Info("share provider failed, falling back",
				zap.String("provider", p.Name()),
				zap.Error(err),
			)
		}
	}

	c.logger.Warn("no share provider succeeded", zap.Errors("errors", res.Errors))
	return res
}
