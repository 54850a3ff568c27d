// Package store provides a Badger-backed reference implementation of the
// coordinator's IndexClient and EnrichmentClient ports. The real
// inverted-index and enrichment services are black boxes per spec.md §1;
// this package exists only to give cmd/rankctl and the integration tests
// something concrete to call through the same interfaces a production
// backend would satisfy.
package store

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/foodsearch/fuzzyrank/internal/coordinator"
	"github.com/foodsearch/fuzzyrank/pkg/models"
)

const docPrefix = "doc:"

// Store is an embedded Badger key-value store of candidate documents,
// keyed by index name and document id. It implements
// coordinator.IndexClient by scanning every document in an index and
// substring-matching the requested attribute against the query — a
// stand-in for a real inverted-index service's relevance search, not a
// production retrieval algorithm.
type Store struct {
	db *badger.DB
}

// Open creates or reopens a Badger store rooted at dir. dir == "" opens
// an in-memory store, useful for tests.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts = opts.WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying Badger handles.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("store: close: %w", err)
	}
	return nil
}

func docKey(index, id string) []byte {
	return []byte(docPrefix + index + ":" + id)
}

func indexPrefix(index string) []byte {
	return []byte(docPrefix + index + ":")
}

// Put writes one candidate document into an index.
func (s *Store) Put(index string, doc models.Document) error {
	id := doc.ID()
	if id == "" {
		return fmt.Errorf("store: document missing id/id_etab")
	}
	data, err := msgpack.Marshal(map[string]any(doc))
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", id, err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(docKey(index, id), data)
	})
}

// PutAll writes a batch of documents into an index.
func (s *Store) PutAll(index string, docs []models.Document) error {
	for _, d := range docs {
		if err := s.Put(index, d); err != nil {
			return err
		}
	}
	return nil
}

// scanIndex returns every document stored under an index, in ascending
// key order.
func (s *Store) scanIndex(index string) ([]models.Document, error) {
	var docs []models.Document
	prefix := indexPrefix(index)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			var raw map[string]any
			err := item.Value(func(val []byte) error {
				return msgpack.Unmarshal(val, &raw)
			})
			if err != nil {
				return fmt.Errorf("decode %s: %w", item.Key(), err)
			}
			docs = append(docs, models.Document(raw))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: scan %s: %w", index, err)
	}
	return docs, nil
}

// attributeText reads the named attribute from a document as a string.
func attributeText(doc models.Document, attribute string) string {
	v, ok := doc[attribute]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// Search implements coordinator.IndexClient: substring relevance over
// one attribute, ordered by document id for determinism, bounded by
// opts.Limit.
func (s *Store) Search(ctx context.Context, index, attribute, query string, opts models.SearchOptions) (coordinator.RetrievalResult, error) {
	select {
	case <-ctx.Done():
		return coordinator.RetrievalResult{}, ctx.Err()
	default:
	}

	all, err := s.scanIndex(index)
	if err != nil {
		return coordinator.RetrievalResult{}, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	var matched []models.Document
	for _, doc := range all {
		if needle == "" || strings.Contains(strings.ToLower(attributeText(doc, attribute)), needle) {
			matched = append(matched, doc)
		}
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID() < matched[j].ID() })

	total := len(matched)
	limit := opts.Limit
	if limit > 0 && limit < total {
		matched = matched[:limit]
	}

	return coordinator.RetrievalResult{Hits: matched, EstimatedTotalHits: total}, nil
}

// flagKey stores per-user annotation flags for one (user, doc) pair.
func flagKey(index string, userID int, docID string) []byte {
	return []byte(fmt.Sprintf("flags:%s:%d:%s", index, userID, docID))
}

// UserFlags is the per-user annotation payload the enrichment service
// attaches (spec.md §1).
type UserFlags struct {
	IsDeleted  bool `msgpack:"isDeleted"`
	IsWaiting  bool `msgpack:"isWaiting"`
	IsModified bool `msgpack:"isModified"`
	HasFavori  bool `msgpack:"hasFavori"`
}

// SetUserFlags records annotation flags a user has on a document.
func (s *Store) SetUserFlags(index string, userID int, docID string, flags UserFlags) error {
	data, err := msgpack.Marshal(flags)
	if err != nil {
		return fmt.Errorf("store: encode flags: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(flagKey(index, userID, docID), data)
	})
}

func (s *Store) userFlags(index string, userID int, docID string) (UserFlags, bool) {
	var flags UserFlags
	found := false
	_ = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(flagKey(index, userID, docID))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return msgpack.Unmarshal(val, &flags)
		})
	})
	return flags, found
}

// EnrichmentClient implements coordinator.EnrichmentClient by reading
// UserFlags previously recorded via Store.SetUserFlags. A real deployment
// would instead call out to the enrichment service's own database; this
// stand-in exists for cmd/rankctl and integration tests.
type EnrichmentClient struct {
	store *Store
	index string
}

// NewEnrichmentClient builds an EnrichmentClient reading flags from one
// index's namespace within store.
func NewEnrichmentClient(s *Store, index string) *EnrichmentClient {
	return &EnrichmentClient{store: s, index: index}
}

// Enrich stamps each hit with the per-user flags recorded for it, if
// any. Hits with no recorded flags are returned unannotated rather than
// dropped.
func (e *EnrichmentClient) Enrich(ctx context.Context, hits []models.ScoredHit, userID int) ([]models.ScoredHit, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	out := make([]models.ScoredHit, len(hits))
	for i, h := range hits {
		flags, ok := e.store.userFlags(e.index, userID, h.Document.ID())
		doc := h.Document
		if ok {
			doc = h.Document.Clone()
			doc["isDeleted"] = flags.IsDeleted
			doc["isWaiting"] = flags.IsWaiting
			doc["isModified"] = flags.IsModified
			doc["hasFavori"] = flags.HasFavori
		}
		h.Document = doc
		out[i] = h
	}
	return out, nil
}
