// Package dvc brackets a run with pull/push against the data versioning
// remote. DVC itself stays an external tool; this is a thin runner around it.
package dvc

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/gbillga/lol-history-parser/internal/config"
	"github.com/gbillga/lol-history-parser/internal/constants"
	"github.com/rs/zerolog"
)

type Syncer struct {
	enabled bool
	remote  string
	logger  zerolog.Logger

	// run is swapped out in tests.
	run func(ctx context.Context, args ...string) (string, error)
}

func NewSyncer(cfg *config.Config, logger zerolog.Logger) *Syncer {
	s := &Syncer{
		enabled: cfg.DVCSync,
		remote:  cfg.DVCRemote,
		logger:  logger,
	}
	s.run = s.exec
	return s
}

// Pull fetches the tracked data from the remote. A failure here is fatal for
// the caller: collection must not run against stale local state.
func (s *Syncer) Pull(ctx context.Context) error {
	if !s.enabled {
		s.logger.Info().Msg("dvc sync disabled, skipping pull")
		return nil
	}

	out, err := s.run(ctx, s.args("pull")...)
	if err != nil {
		return fmt.Errorf("dvc pull failed: %w", err)
	}
	s.logger.Info().Str("output", out).Msg("dvc pull completed")
	return nil
}

func (s *Syncer) Push(ctx context.Context) error {
	if !s.enabled {
		s.logger.Info().Msg("dvc sync disabled, skipping push")
		return nil
	}

	out, err := s.run(ctx, s.args("push")...)
	if err != nil {
		return fmt.Errorf("dvc push failed: %w", err)
	}
	s.logger.Info().Str("output", out).Msg("dvc push completed")
	return nil
}

func (s *Syncer) args(verb string) []string {
	args := []string{verb}
	if s.remote != "" {
		args = append(args, "--remote", s.remote)
	}
	return args
}

func (s *Syncer) exec(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DVCTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "dvc", args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	s.logger.Debug().Strs("args", args).Msg("running dvc")
	if err := cmd.Run(); err != nil {
		return buf.String(), fmt.Errorf("%w: %s", err, buf.String())
	}
	return buf.String(), nil
}
