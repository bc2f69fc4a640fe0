// Copyright © 2025 Texelpad contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: bridge/provider.go
// Summary: Timeout-bounded glyph provider backed by the host text service.

package bridge

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/framegrace/texelpad/glyph"
)

// Service is the host-side renderCharacter entry point. Implementations
// must run the call on whatever execution context the host GUI runtime
// requires for its text APIs; that is a boundary property the core does
// not see.
type Service interface {
	RenderCharacter(ctx context.Context, cluster string, sizePx int, colorARGB uint32) ([]byte, error)
}

// DefaultTimeout bounds a single synchronous bridge call so a slow host
// degrades one glyph instead of stalling the render loop.
const DefaultTimeout = 250 * time.Millisecond

// Provider adapts a Service to the rasterizer's external-source interface,
// enforcing a per-call timeout.
type Provider struct {
	svc     Service
	timeout time.Duration
}

// NewProvider wraps svc. A non-positive timeout falls back to
// DefaultTimeout.
func NewProvider(svc Service, timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Provider{svc: svc, timeout: timeout}
}

// Render requests one glyph from the host and decodes the reply. Any
// failure, including timeout and the empty-payload sentinel, is reported
// as a render error; there is no retry.
func (p *Provider) Render(cluster string, sizePx int, fg color.RGBA) (*glyph.Bitmap, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	data, err := p.svc.RenderCharacter(ctx, cluster, sizePx, glyph.PackARGB(fg))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Printf("bridge: renderCharacter timed out for %q", cluster)
		}
		return nil, fmt.Errorf("bridge: renderCharacter: %w", err)
	}
	bm, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return bm, nil
}
