package ship

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"

	"github.com/zeebo/blake3"
)

// SeedPair holds the two independent bit sources of a ship.
type SeedPair struct {
	Color uint64
	Shape uint64
}

// String formats the pair as "color-shape" in hex; ParseSeedPair reads it back.
func (s SeedPair) String() string {
	return fmt.Sprintf("%08x-%08x", s.Color, s.Shape)
}

// ErrBadSeedPair is returned by ParseSeedPair for malformed input.
var ErrBadSeedPair = errors.New("seed pair must be <color>-<shape> in hex")

// ParseSeedPair parses the String form of a SeedPair.
func ParseSeedPair(s string) (SeedPair, error) {
	colorPart, shapePart, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return SeedPair{}, fmt.Errorf("%q: %w", s, ErrBadSeedPair)
	}
	c, err := strconv.ParseUint(colorPart, 16, 64)
	if err != nil {
		return SeedPair{}, fmt.Errorf("%q: %w", s, ErrBadSeedPair)
	}
	sh, err := strconv.ParseUint(shapePart, 16, 64)
	if err != nil {
		return SeedPair{}, fmt.Errorf("%q: %w", s, ErrBadSeedPair)
	}
	return SeedPair{Color: c, Shape: sh}, nil
}

// SeedSource produces seeds for fresh ships.
type SeedSource interface {
	NextSeed() uint64
}

// NextPair draws a color seed and then a shape seed from src.
func NextPair(src SeedSource) SeedPair {
	c := src.NextSeed()
	s := src.NextSeed()
	return SeedPair{Color: c, Shape: s}
}

// DefaultSource draws 32-bit seeds from the process-wide generator.
// It is safe for concurrent use.
var DefaultSource SeedSource = globalSource{}

type globalSource struct{}

func (globalSource) NextSeed() uint64 {
	return uint64(rand.Uint32())
}

// RandSource draws 32-bit seeds from its own deterministic generator.
type RandSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewRandSource returns a RandSource whose sequence depends only on seed.
func NewRandSource(seed uint64) *RandSource {
	return &RandSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NextSeed is safe for concurrent use.
func (s *RandSource) NextSeed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uint64(s.r.Uint32())
}

// FixedSource replays a fixed list of seeds, starting over at the end.
// An empty FixedSource always yields 0.
type FixedSource struct {
	Seeds []uint64
	next  int
}

// PairSource replays seed pairs in order.
func PairSource(pairs ...SeedPair) *FixedSource {
	fs := &FixedSource{Seeds: make([]uint64, 0, 2*len(pairs))}
	for _, p := range pairs {
		fs.Seeds = append(fs.Seeds, p.Color, p.Shape)
	}
	return fs
}

// NextSeed returns the next seed in the list. It is not safe for concurrent use.
func (s *FixedSource) NextSeed() uint64 {
	if len(s.Seeds) == 0 {
		return 0
	}
	v := s.Seeds[s.next%len(s.Seeds)]
	s.next++
	return v
}

// SeedsForName derives a stable seed pair from a name, so the same
// name always gets the same ship.
func SeedsForName(name string) SeedPair {
	return pairFromDigest(blake3.Sum256([]byte(name)))
}

func pairFromDigest(sum [32]byte) SeedPair {
	return SeedPair{
		Color: uint64(binary.LittleEndian.Uint32(sum[0:4])),
		Shape: uint64(binary.LittleEndian.Uint32(sum[4:8])),
	}
}

// NameSource yields SeedsForName(name) and then an endless run of seeds
// generated from the same digest. A name thus fixes a whole sheet, not
// only its first ship.
func NameSource(name string) SeedSource {
	sum := blake3.Sum256([]byte(name))
	return &nameSource{
		first: pairFromDigest(sum),
		rest:  NewRandSource(binary.LittleEndian.Uint64(sum[8:16])),
	}
}

type nameSource struct {
	mu    sync.Mutex
	first SeedPair
	n     int
	rest  *RandSource
}

func (s *nameSource) NextSeed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	switch s.n {
	case 1:
		return s.first.Color
	case 2:
		return s.first.Shape
	}
	return s.rest.NextSeed()
}
