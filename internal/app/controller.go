// Package app owns the top-level launch decision: join an existing
// instance over the control socket, or become the instance by creating
// a surface, spawning the player and driving the volume event loop.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aASDa213ASD/xlivewall/internal/config"
	"github.com/aASDa213ASD/xlivewall/internal/instance"
	"github.com/aASDa213ASD/xlivewall/internal/ipc"
	"github.com/aASDa213ASD/xlivewall/internal/player"
	"github.com/aASDa213ASD/xlivewall/internal/selector"
	"github.com/aASDa213ASD/xlivewall/internal/surface"
)

// ErrSocketTimeout means a spawned player never opened its control
// socket within the readiness wait.
var ErrSocketTimeout = errors.New("control socket never became ready")

// SurfaceFactory creates the windowing-service connection. It is only
// invoked on the become path, so join-path launches never touch the
// display server.
type SurfaceFactory func() (surface.Service, error)

// filterPrefix marks user arguments carrying a video filter spec, which
// the join path re-applies on the running instance.
const filterPrefix = "--vf="

// Run executes one launch. The branch is chosen once: a live listener
// on the control socket means join, otherwise this launch races for the
// instance lock and becomes the instance. Returns nil on either branch's
// success.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string, newSurface SurfaceFactory) error {
	video, resolved, err := selector.Pick(args, logger)
	if err != nil {
		return err
	}

	client := ipc.NewClient(cfg.SocketPath, logger)

	// Fast-path hint only; the lock below is the actual arbiter.
	if ipc.Probe(cfg.SocketPath, cfg.ProbeTimeout()) {
		logger.Info("existing instance detected", "video", video)
		join(client, video, resolved)
		return nil
	}

	lock, err := instance.Acquire(cfg.LockPath())
	if errors.Is(err, instance.ErrHeld) {
		// Lost the race: another launch is becoming the instance right
		// now. Wait for its socket and join it instead.
		logger.Info("another launch is starting the instance, joining it")
		if !ipc.WaitReady(ctx, cfg.SocketPath, cfg.SocketTimeout()) {
			return fmt.Errorf("%w: %s", ErrSocketTimeout, cfg.SocketPath)
		}
		join(client, video, resolved)
		return nil
	}
	if err != nil {
		return err
	}
	defer lock.Release()

	return become(ctx, cfg, logger, client, resolved, newSurface)
}

// join retargets the running instance: clear stale filters, replace the
// playing file, re-apply the filters from this invocation. Delivery is
// best effort; contacting the instance at all counts as success.
func join(client *ipc.Client, video string, args []string) {
	_ = client.Send(ipc.ClearFilters())
	_ = client.Send(ipc.LoadFile(video))
	for _, arg := range args {
		if spec, ok := strings.CutPrefix(arg, filterPrefix); ok {
			_ = client.Send(ipc.SetFilters(spec))
		}
	}
}

// become creates the background surface, spawns the player and runs the
// volume loop until the player exits or the launch is canceled. The
// player and surface are released on every exit path.
func become(ctx context.Context, cfg *config.Config, logger *slog.Logger, client *ipc.Client, args []string, newSurface SurfaceFactory) error {
	svc, err := newSurface()
	if err != nil {
		return fmt.Errorf("windowing service: %w", err)
	}
	defer svc.Close()

	wid, err := svc.CreateBackgroundSurface()
	if err != nil {
		return fmt.Errorf("creating background surface: %w", err)
	}

	argv := player.BuildArgs(args, wid, cfg.SocketPath)
	logger.Debug("player invocation", "argv", argv)

	// A socket file left by a crashed instance would block the player's
	// bind. Safe to remove: the probe found no listener and we hold the
	// instance lock.
	if err := os.Remove(cfg.SocketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale control socket: %w", err)
	}

	sup, err := player.Spawn(argv, logger)
	if err != nil {
		return err
	}
	defer sup.Terminate()

	if !ipc.WaitReady(ctx, cfg.SocketPath, cfg.SocketTimeout()) {
		return fmt.Errorf("%w: %s", ErrSocketTimeout, cfg.SocketPath)
	}

	volumeLoop(ctx, cfg, logger, client, sup, svc)
	logger.Info("exited cleanly")
	return nil
}

// volumeLoop translates volume key events into set_property commands
// while the player is alive. It multiplexes the input stream with
// player exit and cancellation so teardown always runs on the normal
// control path, not from a signal handler.
func volumeLoop(ctx context.Context, cfg *config.Config, logger *slog.Logger, client *ipc.Client, sup *player.Supervisor, svc surface.Service) {
	volume := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-sup.Done():
			return
		case ev, ok := <-svc.Events():
			if !ok {
				return
			}
			switch ev {
			case surface.VolumeUp:
				volume = min(100, volume+cfg.VolumeStep)
			case surface.VolumeDown:
				volume = max(0, volume-cfg.VolumeStep)
			default:
				continue
			}
			logger.Info("volume", "percent", volume)
			_ = client.Send(ipc.SetVolume(volume))
		}
	}
}
