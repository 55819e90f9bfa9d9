package services

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// searchCacheCapacity bounds the per-session query cache. Overflow
// evicts the single oldest-inserted entry, not the least recently
// used one.
const searchCacheCapacity = 10

type searchServiceImpl struct {
	logger  zerolog.Logger
	gateway SearchGateway
	sf      singleflight.Group

	mu    sync.Mutex
	cache map[string]*SearchBundle
	order []string
}

func NewSearchService(
	logger zerolog.Logger,
	gw SearchGateway,
) SearchService {
	return &searchServiceImpl{
		logger:  logger,
		gateway: gw,
		cache:   make(map[string]*SearchBundle, searchCacheCapacity),
	}
}

func (s *searchServiceImpl) Search(ctx context.Context, query string) (*SearchBundle, error) {
	s.mu.Lock()
	if bundle, ok := s.cache[query]; ok {
		s.mu.Unlock()
		s.logger.Debug().
			Str("query", query).
			Msg("search cache hit")
		return bundle, nil
	}
	s.mu.Unlock()

	// Concurrent identical queries collapse into one composite fetch.
	result, err, _ := s.sf.Do(query, func() (any, error) {
		s.mu.Lock()
		if bundle, ok := s.cache[query]; ok {
			s.mu.Unlock()
			return bundle, nil
		}
		s.mu.Unlock()

		bundle, err := s.fetch(ctx, query)
		if err != nil {
			return nil, err
		}

		s.store(query, bundle)
		return bundle, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*SearchBundle), nil
}

// fetch runs the three search branches in parallel. A failed branch is
// substituted with an empty result so the others still render; only
// when every branch fails does the whole search fail.
func (s *searchServiceImpl) fetch(ctx context.Context, query string) (*SearchBundle, error) {
	bundle := &SearchBundle{Query: query}
	var (
		wg       sync.WaitGroup
		failures int
		failMu   sync.Mutex
	)

	branchFailed := func(err error, msg string) {
		s.logger.Warn().
			Err(err).
			Str("query", query).
			Msg(msg)
		failMu.Lock()
		failures++
		failMu.Unlock()
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		tasks, err := s.gateway.SearchTasks(ctx, query)
		if err != nil {
			branchFailed(err, "task search branch failed")
			return
		}
		bundle.Tasks = tasks
	}()
	go func() {
		defer wg.Done()
		projects, err := s.gateway.SearchProjects(ctx, query)
		if err != nil {
			branchFailed(err, "project search branch failed")
			return
		}
		bundle.Projects = projects
	}()
	go func() {
		defer wg.Done()
		comments, err := s.gateway.SearchComments(ctx, query)
		if err != nil {
			branchFailed(err, "comment search branch failed")
			return
		}
		bundle.Comments = comments
	}()
	wg.Wait()

	if failures == 3 {
		return nil, ErrSearchFailed
	}

	s.logger.Info().
		Str("query", query).
		Int("tasks", len(bundle.Tasks)).
		Int("projects", len(bundle.Projects)).
		Int("comments", len(bundle.Comments)).
		Msg("search completed")
	return bundle, nil
}

func (s *searchServiceImpl) store(query string, bundle *SearchBundle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.cache[query]; !ok {
		s.order = append(s.order, query)
	}
	s.cache[query] = bundle

	if len(s.cache) > searchCacheCapacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.cache, oldest)
		s.logger.Debug().
			Str("query", oldest).
			Msg("evicted oldest search cache entry")
	}
}

func (s *searchServiceImpl) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*SearchBundle, searchCacheCapacity)
	s.order = nil
}

func (s *searchServiceImpl) Reset() {
	s.ClearCache()
}
