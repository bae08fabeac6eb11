// Package sampler runs one drive usage sampling cycle.
package sampler

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/danpilch/drivestat/pkg/logfile"
	"github.com/danpilch/drivestat/pkg/record"
	"github.com/danpilch/drivestat/pkg/volume"
)

// Sampler appends one usage row per run to the monthly log file of a volume set.
type Sampler struct {
	provider volume.Provider
	resolver *logfile.Resolver
	clock    clockwork.Clock
	logger   *logrus.Logger
}

// New creates a sampler. A nil clock uses the wall clock and a nil logger logs warnings only.
func New(provider volume.Provider, resolver *logfile.Resolver, clock clockwork.Clock, logger *logrus.Logger) *Sampler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	return &Sampler{
		provider: provider,
		resolver: resolver,
		clock:    clock,
		logger:   logger,
	}
}

// Run samples ids and appends the row, returning the log file path.
func (s *Sampler) Run(ids []string) (string, error) {
	now := s.clock.Now()
	header := record.Header(ids)
	line := record.Line(now, ids, &loggedProvider{inner: s.provider, logger: s.logger})

	if _, err := s.resolver.EnsureDir(); err != nil {
		return "", err
	}
	path := s.resolver.Path(ids, now)

	if err := logfile.Append(path, header, line); err != nil {
		return "", fmt.Errorf("cannot append to %s: %w", path, err)
	}

	s.logger.WithFields(logrus.Fields{
		"file":    path,
		"volumes": len(ids),
	}).Debug("Sample appended")
	return path, nil
}

// loggedProvider reports volumes that fall back to the unavailable marker.
type loggedProvider struct {
	inner  volume.Provider
	logger *logrus.Logger
}

func (p *loggedProvider) Stat(id string) (volume.Info, error) {
	info, err := p.inner.Stat(id)
	switch {
	case err != nil:
		p.logger.WithFields(logrus.Fields{
			"volume": id,
			"error":  err,
		}).Debug("Volume query failed")
	case !info.Ready:
		p.logger.WithField("volume", id).Debug("Volume not ready")
	case !info.Fixed:
		p.logger.WithField("volume", id).Debug("Volume is not a fixed local volume")
	}
	return info, err
}
