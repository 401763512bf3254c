package files

import (
	"errors"

	"healthscore-backend/internal/processing"
	"healthscore-backend/internal/shared/storage/filestore"
)

// ErrNotFound is returned when a stored payload does not exist.
var ErrNotFound = errors.New("file not found")

// Service exposes operations over stored webhook payloads.
type Service struct {
	Payloads  *filestore.Store
	Processor *processing.Service
}

// List returns stored JSON payloads, newest first.
func (s *Service) List() ([]filestore.Entry, error) {
	return s.Payloads.List(".json")
}

// Get returns the raw content of one stored payload.
func (s *Service) Get(name string) ([]byte, error) {
	data, err := s.Payloads.Read(name)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Process runs the pipeline against a stored payload.
func (s *Service) Process(name string) (processing.Result, error) {
	data, err := s.Get(name)
	if err != nil {
		return processing.Result{}, err
	}
	return s.Processor.ProcessPayload(data), nil
}
