package letters

import (
	"github.com/mkrall/hexfall/internal/dependencies/random"
	"github.com/mkrall/hexfall/internal/model"
)

// alphabet fixes the iteration order for weight sampling. Map iteration is
// not deterministic, and seeded draws must be.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// baseWeights is the supply frequency per letter (total 98)
var baseWeights = map[rune]float64{
	'E': 12,
	'A': 9, 'I': 9,
	'O': 8,
	'N': 6, 'R': 6, 'T': 6,
	'L': 4, 'S': 4, 'U': 4, 'D': 4,
	'G': 3,
	'B': 2, 'C': 2, 'M': 2, 'P': 2, 'F': 2, 'H': 2, 'V': 2, 'W': 2, 'Y': 2,
	'K': 1, 'J': 1, 'X': 1, 'Q': 1, 'Z': 1,
}

// stems maps letter pairs already touching on the board to letters that
// commonly complete them into words
var stems = map[string][]rune{
	"TH": {'E'},
	"QU": {'I', 'A', 'E'},
	"CH": {'A', 'E', 'I'},
	"SH": {'E', 'A', 'O'},
	"ST": {'A', 'E', 'O', 'R'},
	"BR": {'A', 'E', 'I', 'O'},
	"TR": {'A', 'E', 'I', 'Y'},
	"GR": {'A', 'E', 'O'},
	"PL": {'A', 'E', 'O', 'U'},
	"CR": {'A', 'E', 'O', 'U'},
	"WH": {'A', 'E', 'I', 'O'},
	"PH": {'O', 'A', 'I'},
	"SP": {'A', 'E', 'I', 'O'},
	"FL": {'A', 'E', 'O', 'U'},
}

// highValueConsonants get a boost in adaptive mode when the creative bonus is
// enabled: rare letters score big, so dealing a few keeps play interesting
var highValueConsonants = []rune{'J', 'X', 'Q', 'Z', 'K', 'V', 'W'}

// Adaptive weight multipliers
const (
	lowVowelRatio  = 0.30
	highVowelRatio = 0.50
	vowelBoost     = 2.0
	vowelDampen    = 0.5
	stemBoost      = 2.5
	orphanQPenalty = 0.15
	creativeBoost  = 1.8
)

// Config controls adaptive supply behaviour
type Config struct {
	// CreativeBonus boosts the rare high-value consonants in adaptive draws
	CreativeBonus bool
}

// DefaultConfig returns the default letter supply configuration
func DefaultConfig() Config {
	return Config{CreativeBonus: true}
}

// Service supplies letter batches by weighted sampling. All randomness comes
// from the injected generator; a seeded generator makes the supply replayable.
type Service struct {
	cfg Config
}

// New creates a new letter supply service
func New(cfg Config) *Service {
	return &Service{cfg: cfg}
}

// Supply draws count letters from the base weight table
func (s *Service) Supply(count int, rnd random.Random) model.FallingBatch {
	return s.draw(count, copyWeights(baseWeights), rnd)
}

// SupplyAdaptive draws count letters with the weights adjusted to the board:
// scarce vowels get boosted and abundant ones dampened, letters completing
// stems already on the board get boosted, Q is withheld while the board has
// no U, and (when configured) the high-value consonants get a lift.
func (s *Service) SupplyAdaptive(count int, grid *model.Grid, rnd random.Random) model.FallingBatch {
	return s.draw(count, s.adaptedWeights(grid), rnd)
}

func (s *Service) adaptedWeights(grid *model.Grid) map[rune]float64 {
	w := copyWeights(baseWeights)

	if grid.LetterCount() > 0 {
		switch ratio := grid.VowelRatio(); {
		case ratio < lowVowelRatio:
			scaleLetters(w, []rune("AEIOU"), vowelBoost)
		case ratio > highVowelRatio:
			scaleLetters(w, []rune("AEIOU"), vowelDampen)
		}
	}

	for _, completion := range s.boardStems(grid) {
		w[completion] *= stemBoost
	}

	if !s.hasLetter(grid, 'U') {
		w['Q'] *= orphanQPenalty
	}

	if s.cfg.CreativeBonus {
		scaleLetters(w, highValueConsonants, creativeBoost)
	}

	return w
}

// boardStems collects the completion letters for every adjacent letter pair
// on the grid that matches a known stem, in either reading order
func (s *Service) boardStems(grid *model.Grid) []rune {
	var completions []rune
	seen := make(map[string]bool)

	grid.ForEach(func(c *model.Cell) {
		if c.IsEmpty() {
			return
		}
		for _, n := range grid.Neighbors(c.Pos) {
			if n.IsEmpty() {
				continue
			}
			pair := string([]rune{c.Letter, n.Letter})
			if seen[pair] {
				continue
			}
			seen[pair] = true
			completions = append(completions, stems[pair]...)
		}
	})

	return completions
}

func (s *Service) hasLetter(grid *model.Grid, letter rune) bool {
	found := false
	grid.ForEach(func(c *model.Cell) {
		if c.Letter == letter {
			found = true
		}
	})
	return found
}

// draw samples count letters without repetition: a chosen letter leaves the
// table. If every remaining weight is zero the draw falls back to a uniform
// pick over the unchosen letters.
func (s *Service) draw(count int, weights map[rune]float64, rnd random.Random) model.FallingBatch {
	batch := make(model.FallingBatch, 0, count)
	for i := 0; i < count && len(weights) > 0; i++ {
		letter, ok := sample(weights, rnd)
		if !ok {
			letter = uniformPick(weights, rnd)
		}
		batch = append(batch, letter)
		delete(weights, letter)
	}
	return batch
}

// sample picks a letter by cumulative weight over the fixed alphabet order
func sample(weights map[rune]float64, rnd random.Random) (rune, bool) {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return 0, false
	}

	target := rnd.Float64() * total
	cum := 0.0
	last := rune(0)
	for _, letter := range alphabet {
		w, present := weights[letter]
		if !present || w <= 0 {
			continue
		}
		cum += w
		last = letter
		if target < cum {
			return letter, true
		}
	}
	// Float rounding can leave target a hair past the final band.
	return last, last != 0
}

// uniformPick chooses uniformly among the remaining letters in alphabet order
func uniformPick(weights map[rune]float64, rnd random.Random) rune {
	remaining := make([]rune, 0, len(weights))
	for _, letter := range alphabet {
		if _, ok := weights[letter]; ok {
			remaining = append(remaining, letter)
		}
	}
	return remaining[rnd.Intn(len(remaining))]
}

func copyWeights(src map[rune]float64) map[rune]float64 {
	out := make(map[rune]float64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func scaleLetters(w map[rune]float64, letters []rune, factor float64) {
	for _, l := range letters {
		if _, ok := w[l]; ok {
			w[l] *= factor
		}
	}
}

// Interface for dependency injection
type ServiceInterface interface {
	Supply(count int, rnd random.Random) model.FallingBatch
	SupplyAdaptive(count int, grid *model.Grid, rnd random.Random) model.FallingBatch
}

var _ ServiceInterface = (*Service)(nil)
