package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/meilisearch/meilisearch-go"
	"github.com/rs/zerolog/log"

	"uasz.sn/utilisateursapi/pkg/apperror"
)

const (
	IndexName    = "annuaire"
	defaultLimit = 20
)

// Indexer keeps the directory in sync with the registries.
type Indexer interface {
	Index(ctx context.Context, entry Entry) error
	Remove(ctx context.Context, kind Kind, id uint) error
}

type AnnuaireService interface {
	Indexer
	Search(ctx context.Context, q string, limit int64) ([]Entry, error)
	Enabled() bool
}

type annuaireService struct {
	client meilisearch.ServiceManager
}

// NewAnnuaireService returns a directory backed by client. A nil client gives
// a disabled directory: writes are skipped and searches are Unavailable.
func NewAnnuaireService(client meilisearch.ServiceManager) AnnuaireService {
	s := &annuaireService{client: client}
	if client != nil {
		s.initIndex()
	}
	return s
}

func (s *annuaireService) initIndex() {
	filterable := []any{"kind", "actif"}
	if _, err := s.client.Index(IndexName).UpdateFilterableAttributes(&filterable); err != nil {
		log.Warn().Err(err).Str("index", IndexName).Msg("failed to update filterable attributes")
		return
	}
	log.Info().Str("index", IndexName).Msg("meilisearch index initialized")
}

func (s *annuaireService) Enabled() bool {
	return s.client != nil
}

func (s *annuaireService) Index(_ context.Context, entry Entry) error {
	if !s.Enabled() {
		return nil
	}
	task, err := s.client.Index(IndexName).AddDocuments([]Entry{entry}, strPtr("id"))
	if err != nil {
		return fmt.Errorf("index %s: %w", entry.ID, err)
	}
	log.Debug().Str("document", entry.ID).Int64("task_uid", task.TaskUID).Msg("directory entry indexed")
	return nil
}

func (s *annuaireService) Remove(_ context.Context, kind Kind, id uint) error {
	if !s.Enabled() {
		return nil
	}
	if _, err := s.client.Index(IndexName).DeleteDocument(DocumentID(kind, id)); err != nil {
		return fmt.Errorf("remove %s: %w", DocumentID(kind, id), err)
	}
	return nil
}

func (s *annuaireService) Search(_ context.Context, q string, limit int64) ([]Entry, error) {
	if !s.Enabled() {
		return nil, apperror.Unavailable("annuaire", "La recherche dans l'annuaire n'est pas configurée")
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	raw, err := s.client.Index(IndexName).SearchRaw(q, &meilisearch.SearchRequest{Limit: limit})
	if err != nil {
		return nil, apperror.New(http.StatusServiceUnavailable, "La recherche dans l'annuaire a échoué", fmt.Errorf("%w: %v", apperror.ErrUnavailable, err))
	}
	return decodeHits(*raw)
}

type searchResult struct {
	Hits []Entry `json:"hits"`
}

func decodeHits(raw []byte) ([]Entry, error) {
	var res searchResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if res.Hits == nil {
		res.Hits = []Entry{}
	}
	return res.Hits, nil
}

func strPtr(s string) *string {
	return &s
}
