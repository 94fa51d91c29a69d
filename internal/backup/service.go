package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"planfairy/internal/domain"
	"planfairy/internal/store"
)

// Service snapshots the full local state to the drive and restores it
// wholesale. At most one backup or restore runs at a time.
type Service struct {
	store    store.Store
	adapter  Adapter
	observer Observer

	mu       sync.Mutex
	inFlight bool
}

// NewService creates a backup Service over the given store and adapter.
// A nil observer discards transfer events.
func NewService(st store.Store, adapter Adapter, observer Observer) *Service {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &Service{store: st, adapter: adapter, observer: observer}
}

func (s *Service) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return ErrInFlight
	}
	s.inFlight = true
	return nil
}

func (s *Service) end() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

// Backup uploads the current project state and imported catalog as one
// document under the fixed backup name. folderName, when non-empty, scopes
// the upload to that folder, creating it on first use.
func (s *Service) Backup(ctx context.Context, folderName string) (*domain.BackupReceipt, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	start := time.Now()
	receipt, sent, err := s.backup(ctx, folderName)
	s.observer.OnTransferComplete(TransferEvent{
		Op:        "backup",
		Bytes:     sent,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	})
	return receipt, err
}

func (s *Service) backup(ctx context.Context, folderName string) (*domain.BackupReceipt, int, error) {
	state, err := s.store.LoadState(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("loading state for backup: %w", err)
	}
	catalog, err := s.store.LoadCatalog(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("loading catalog for backup: %w", err)
	}

	payload := domain.BackupPayload{
		Project:     state,
		StandardsDB: catalog,
		TS:          time.Now().UnixMilli(),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("encoding backup payload: %w", err)
	}

	if err := s.adapter.Authenticate(ctx); err != nil {
		return nil, 0, fmt.Errorf("authenticating: %w", err)
	}

	folderID, err := s.adapter.EnsureFolder(ctx, folderName)
	if err != nil {
		return nil, len(data), fmt.Errorf("ensuring backup folder: %w", err)
	}

	fileID, err := s.adapter.Upload(ctx, BackupFilename, folderID, data)
	if err != nil {
		return nil, len(data), fmt.Errorf("uploading backup: %w", err)
	}

	return &domain.BackupReceipt{FileID: fileID, Name: BackupFilename, TS: payload.TS}, len(data), nil
}

// Restore downloads the most recent backup and replaces ALL local state
// with it. The payload is parsed completely before anything is written:
// a malformed backup leaves the local state untouched.
func (s *Service) Restore(ctx context.Context, folderName string) (*domain.BackupPayload, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	start := time.Now()
	payload, fetched, err := s.restore(ctx, folderName)
	s.observer.OnTransferComplete(TransferEvent{
		Op:        "restore",
		Bytes:     fetched,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	})
	return payload, err
}

func (s *Service) restore(ctx context.Context, folderName string) (*domain.BackupPayload, int, error) {
	if err := s.adapter.Authenticate(ctx); err != nil {
		return nil, 0, fmt.Errorf("authenticating: %w", err)
	}

	folderID, err := s.adapter.EnsureFolder(ctx, folderName)
	if err != nil {
		return nil, 0, fmt.Errorf("resolving backup folder: %w", err)
	}

	file, err := s.adapter.FindLatest(ctx, BackupFilename, folderID)
	if err != nil {
		return nil, 0, err
	}

	data, err := s.adapter.Download(ctx, file.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("downloading backup: %w", err)
	}

	var payload domain.BackupPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, len(data), fmt.Errorf("decoding backup payload: %w", err)
	}
	if payload.Project == nil {
		return nil, len(data), fmt.Errorf("decoding backup payload: missing project document")
	}

	if err := s.store.SaveState(ctx, payload.Project); err != nil {
		return nil, len(data), fmt.Errorf("restoring project state: %w", err)
	}
	if err := s.store.ReplaceCatalog(ctx, payload.StandardsDB); err != nil {
		return nil, len(data), fmt.Errorf("restoring standards catalog: %w", err)
	}

	return &payload, len(data), nil
}
