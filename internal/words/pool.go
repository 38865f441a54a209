// Package words holds the term pairs dealt at game start.
package words

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"sync"

	"undercover/backend/internal/models"
)

var (
	ErrEmptyPool     = errors.New("words: pool is empty")
	ErrInvalidPair   = errors.New("words: civilian and undercover terms must be non-empty and different")
	ErrDuplicatePair = errors.New("words: pair already present")
	ErrPairNotFound  = errors.New("words: pair not found")
)

// Random is the subset of *rand.Rand the pool needs.
type Random interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultPairs is the built-in word list.
var DefaultPairs = []models.WordPair{
	{Civilian: "apple", Undercover: "banana"},
	{Civilian: "summer", Undercover: "winter"},
	{Civilian: "basketball", Undercover: "football"},
	{Civilian: "piano", Undercover: "violin"},
	{Civilian: "airplane", Undercover: "train"},
	{Civilian: "glasses", Undercover: "watch"},
	{Civilian: "elephant", Undercover: "lion"},
	{Civilian: "rose", Undercover: "lily"},
	{Civilian: "phone", Undercover: "computer"},
	{Civilian: "umbrella", Undercover: "hat"},
	{Civilian: "backpack", Undercover: "wallet"},
	{Civilian: "penguin", Undercover: "dolphin"},
}

// Pool is an ordered list of word pairs, safe for concurrent use.
type Pool struct {
	mu    sync.RWMutex
	pairs []models.WordPair
	rng   Random
}

// NewPool copies pairs into a new pool. A nil rng uses the global source.
func NewPool(pairs []models.WordPair, rng Random) *Pool {
	if rng == nil {
		rng = globalRand{}
	}
	return &Pool{
		pairs: append([]models.WordPair(nil), pairs...),
		rng:   rng,
	}
}

// LoadFile reads a JSON array of [civilian, undercover] pairs.
func LoadFile(path string) ([]models.WordPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var raw [][2]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	pairs := make([]models.WordPair, 0, len(raw))
	for _, r := range raw {
		pair := models.WordPair{Civilian: strings.TrimSpace(r[0]), Undercover: strings.TrimSpace(r[1])}
		if err := validate(pair); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

func validate(pair models.WordPair) error {
	if pair.Civilian == "" || pair.Undercover == "" || pair.Civilian == pair.Undercover {
		return ErrInvalidPair
	}
	return nil
}

// RandomPair returns a uniformly chosen pair. Draws are independent.
func (p *Pool) RandomPair() (models.WordPair, error) {
	// Exclusive: a seeded *rand.Rand is not safe for concurrent use.
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.pairs) == 0 {
		return models.WordPair{}, ErrEmptyPool
	}
	return p.pairs[p.rng.IntN(len(p.pairs))], nil
}

// Add appends a pair.
func (p *Pool) Add(pair models.WordPair) error {
	if err := validate(pair); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for _, existing := range p.pairs {
		if existing == pair {
			return ErrDuplicatePair
		}
	}
	p.pairs = append(p.pairs, pair)
	return nil
}

// Remove deletes the first matching pair.
func (p *Pool) Remove(pair models.WordPair) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i, existing := range p.pairs {
		if existing == pair {
			p.pairs = append(p.pairs[:i], p.pairs[i+1:]...)
			return nil
		}
	}
	return ErrPairNotFound
}

// List returns a copy of the pairs in order.
func (p *Pool) List() []models.WordPair {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]models.WordPair(nil), p.pairs...)
}

func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.pairs)
}
