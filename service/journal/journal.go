package journal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/wardflow/wardflow/model/patient"
	"github.com/wardflow/wardflow/service/bed"
	"github.com/wardflow/wardflow/service/event"
)

// Config holds journal configuration
type Config struct {
	// BaseURL is the directory (any afs-supported scheme) receiving entries.
	BaseURL string
}

// DefaultConfig returns a default journal configuration
func DefaultConfig() Config {
	return Config{BaseURL: "/tmp/wardflow/journal"}
}

// Entry is a single durable record of a state transition. Exactly one of
// Patient or Capacity is set, matching the two notification shapes.
type Entry struct {
	Seq       uint64            `json:"seq"`
	Type      string            `json:"type"`
	Service   string            `json:"service,omitempty"`
	PatientID int64             `json:"patientID,omitempty"`
	Patient   *patient.Snapshot `json:"patient,omitempty"`
	Capacity  *bed.Capacity     `json:"capacity,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Service appends engine events to durable storage, one JSON document per
// entry. Writes are best effort: a storage failure is logged and swallowed,
// never surfaced to the emitting operation.
type Service struct {
	fs      afs.Service
	config  Config
	logger  *logrus.Entry
	seq     uint64
	created int32
}

// New creates a journal service
func New(fs afs.Service, config Config) (*Service, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	return &Service{
		fs:     fs,
		config: config,
		logger: logrus.WithField("service", "journal"),
	}, nil
}

// Record persists one entry. The sequence number is assigned here so entries
// sort in write order regardless of clock granularity.
func (s *Service) Record(ctx context.Context, entry Entry) error {
	if err := s.ensureBase(ctx); err != nil {
		return err
	}
	entry.Seq = atomic.AddUint64(&s.seq, 1)
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal journal entry: %w", err)
	}
	location := url.Join(s.config.BaseURL, fmt.Sprintf("%08d-%s.json", entry.Seq, entry.Type))
	return s.fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewBuffer(data))
}

func (s *Service) ensureBase(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&s.created, 0, 1) {
		return nil
	}
	if exists, _ := s.fs.Exists(ctx, s.config.BaseURL); exists {
		return nil
	}
	if err := s.fs.Create(ctx, s.config.BaseURL, file.DefaultDirOsMode, true); err != nil {
		return fmt.Errorf("failed to create journal directory %s: %w", s.config.BaseURL, err)
	}
	return nil
}

// Attach subscribes the journal to the engine's patient and occupancy event
// streams. Recording failures are isolated from the emitting operations.
func (s *Service) Attach(events *event.Service) {
	event.SetListenerOf(events, func(e *event.Event[patient.Snapshot]) {
		snap := e.Data
		if err := s.Record(context.Background(), Entry{
			Type:      e.Context.EventType,
			Service:   e.Context.Service,
			PatientID: e.Context.PatientID,
			Patient:   &snap,
			CreatedAt: e.CreatedAt,
		}); err != nil {
			s.logger.WithError(err).Warn("failed to record patient event")
		}
	})
	event.SetListenerOf(events, func(e *event.Event[bed.Capacity]) {
		occupancy := e.Data
		if err := s.Record(context.Background(), Entry{
			Type:      e.Context.EventType,
			Service:   e.Context.Service,
			Capacity:  &occupancy,
			CreatedAt: e.CreatedAt,
		}); err != nil {
			s.logger.WithError(err).Warn("failed to record occupancy event")
		}
	})
}

// List returns all recorded entries in write order.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	objects, err := s.fs.List(ctx, s.config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal: %w", err)
	}
	var URLs []string
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		URLs = append(URLs, object.URL())
	}
	sort.Strings(URLs)

	entries := make([]Entry, 0, len(URLs))
	for _, URL := range URLs {
		data, err := s.fs.DownloadWithURL(ctx, URL)
		if err != nil {
			return nil, fmt.Errorf("failed to read journal entry %s: %w", URL, err)
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal journal entry %s: %w", URL, err)
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Seq < entries[j].Seq })
	return entries, nil
}
