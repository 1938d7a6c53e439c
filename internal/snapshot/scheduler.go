package snapshot

import (
	"elevate/internal/providers"
	"elevate/internal/snapshot/interfaces"
	"elevate/internal/storage"
	"elevate/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	fileManager *FileManager
	metrics     providers.MetricsProviderInterface
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	interval := s.config.Persistence.SaveInterval

	s.cron.AddFunc(gron.Every(interval*time.Second), func() {
		if err := s.Persist(); err != nil {
			return
		}
		s.logger.Debugf(providers.TypeStore, "Persisted records to file %s", s.config.Persistence.FilePath)
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	return s.fileManager.LoadFromFile(s.config.Persistence.FilePath)
}

func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	err := s.fileManager.SaveToFile(s.config.Persistence.FilePath)
	s.metrics.ObservePersistenceDuration(time.Since(start))
	if err != nil {
		s.logger.Errorf(providers.TypeStore, "Error while persisting records: %s", err)
		return err
	}
	return nil
}

// Close releases the compressor. Persist must not be called afterwards.
func (s *Scheduler) Close() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	s.fileManager.Close()
}

func NewScheduler(config *structures.Config, logger providers.Logger, fileManager *FileManager, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		fileManager: fileManager,
		metrics:     metrics,
	}
}

// noopScheduler serves backends that persist on their own.
type noopScheduler struct{}

func (noopScheduler) Init()          {}
func (noopScheduler) Stop()          {}
func (noopScheduler) Restore() error { return nil }
func (noopScheduler) Persist() error { return nil }
func (noopScheduler) Close()         {}

// NewBackendScheduler returns a snapshot scheduler for the file backend and a
// no-op one for every other backend.
func NewBackendScheduler(config *structures.Config, logger providers.Logger, backend storage.Backend, metrics providers.MetricsProviderInterface) (interfaces.SchedulerInterface, error) {
	source, ok := backend.(storage.Snapshotter)
	if config.Storage.Backend != "file" || !ok {
		return noopScheduler{}, nil
	}
	compressor, err := NewZstdCompressor()
	if err != nil {
		return nil, err
	}
	return NewScheduler(config, logger, NewFileManager(compressor, source, logger), metrics), nil
}
