package dictionary

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/mkrall/hexfall/internal/model"
	"github.com/mkrall/hexfall/internal/storage"
)

// Service provides dictionary and blacklist word validation
type Service struct {
	storage storage.Storage

	mu        sync.RWMutex
	words     map[string]struct{}
	blacklist map[string]struct{}
	loaded    bool
}

// New creates a new DictionaryService
func New(storage storage.Storage) *Service {
	return &Service{
		storage:   storage,
		words:     make(map[string]struct{}),
		blacklist: make(map[string]struct{}),
	}
}

// LoadFromStorage loads dictionary words from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadFromFile loads dictionary words from a file (one word per line)
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	words, err := readWordFile(path)
	if err != nil {
		return err
	}

	// Save to storage for future use
	if err := s.storage.SaveDictionaryWords(ctx, words); err != nil {
		return err
	}

	return s.loadWords(words)
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	return s.loadWords(words)
}

// LoadBlacklistFromStorage loads blacklisted words from storage
func (s *Service) LoadBlacklistFromStorage(ctx context.Context) error {
	words, err := s.storage.GetBlacklistWords(ctx)
	if err != nil {
		return err
	}
	return s.loadBlacklist(words)
}

// LoadBlacklistFromFile loads blacklisted words from a file (one word per line)
func (s *Service) LoadBlacklistFromFile(ctx context.Context, path string) error {
	words, err := readWordFile(path)
	if err != nil {
		return err
	}

	if err := s.storage.SaveBlacklistWords(ctx, words); err != nil {
		return err
	}

	return s.loadBlacklist(words)
}

// LoadBlacklist directly loads a slice of blacklisted words (useful for testing)
func (s *Service) LoadBlacklist(words []string) error {
	return s.loadBlacklist(words)
}

func readWordFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

func (s *Service) loadWords(words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make(map[string]struct{}, len(words))
	for _, word := range words {
		// Store lowercase for case-insensitive matching
		s.words[strings.ToLower(word)] = struct{}{}
	}
	s.loaded = true
	return nil
}

func (s *Service) loadBlacklist(words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blacklist = make(map[string]struct{}, len(words))
	for _, word := range words {
		s.blacklist[strings.ToLower(word)] = struct{}{}
	}
	return nil
}

// IsValidWord checks if a word exists in the dictionary.
// Words must be at least model.MinWordLength letters.
func (s *Service) IsValidWord(word string) bool {
	if len(word) < model.MinWordLength {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false
	}

	_, ok := s.words[strings.ToLower(word)]
	return ok
}

// IsBlacklisted checks if a word has been blocked from scoring
func (s *Service) IsBlacklisted(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.blacklist[strings.ToLower(word)]
	return ok
}

// IsLoaded returns whether the dictionary has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the dictionary
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Interface check
type ServiceInterface interface {
	IsValidWord(word string) bool
	IsBlacklisted(word string) bool
	IsLoaded() bool
	WordCount() int
	LoadFromStorage(ctx context.Context) error
	LoadFromFile(ctx context.Context, path string) error
	LoadWords(words []string) error
	LoadBlacklistFromStorage(ctx context.Context) error
	LoadBlacklistFromFile(ctx context.Context, path string) error
	LoadBlacklist(words []string) error
}

var _ ServiceInterface = (*Service)(nil)

// ErrDictionaryNotLoaded is returned when operations are attempted before loading
var ErrDictionaryNotLoaded = model.ErrDictionaryNotLoaded
