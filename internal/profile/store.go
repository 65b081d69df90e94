package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Store provides the raw financial records for a user.
type Store interface {
	UserData(uid string) (UserData, error)
	Metrics(uid string) (Metrics, error)
}

// FileStore reads per-user JSON fixture files from a data directory:
// <dir>/<uid>/bankTransactions.json, creditReports.json, networth.json.
// A shared file directly under <dir> acts as a fallback when the user has no
// record of its own. Missing files are treated as empty record sets, which
// keeps the zero-default contract of ComputeMetrics.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// UserData loads the raw records for uid.
func (s *FileStore) UserData(uid string) (UserData, error) {
	var data UserData
	if err := s.loadJSON(uid, "bankTransactions.json", &data.BankTransactions); err != nil {
		return UserData{}, err
	}
	if err := s.loadJSON(uid, "creditReports.json", &data.CreditReports); err != nil {
		return UserData{}, err
	}
	if err := s.loadJSON(uid, "networth.json", &data.NetWorth); err != nil {
		return UserData{}, err
	}
	return data, nil
}

// Metrics loads the raw records for uid and derives Metrics from them.
func (s *FileStore) Metrics(uid string) (Metrics, error) {
	data, err := s.UserData(uid)
	if err != nil {
		return Metrics{}, err
	}
	return ComputeMetrics(data), nil
}

func (s *FileStore) loadJSON(uid, name string, out interface{}) error {
	candidates := []string{
		filepath.Join(s.dir, uid, name),
		filepath.Join(s.dir, name),
	}

	for _, path := range candidates {
		raw, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decoding %s: %w", path, err)
		}
		return nil
	}

	log.Debug().Str("uid", uid).Str("file", name).Msg("No fixture file found, treating as empty")
	return nil
}
