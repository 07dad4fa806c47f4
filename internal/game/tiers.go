package game

import "fmt"

// TierSpec describes one rung of the progression ladder.
type TierSpec struct {
	Radius    float64
	VisualTag string // presentation key, e.g. "cherry"
}

// Catalog is the immutable, ordered tier table. Index 0 is the smallest
// droppable tier; the last index is terminal and cannot merge further.
type Catalog struct {
	tiers []TierSpec
}

// DefaultTiers is the eleven-rung fruit ladder.
var DefaultTiers = []TierSpec{
	{Radius: 15, VisualTag: "cherry"},
	{Radius: 22, VisualTag: "strawberry"},
	{Radius: 30, VisualTag: "grape"},
	{Radius: 36, VisualTag: "dekopon"},
	{Radius: 46, VisualTag: "persimmon"},
	{Radius: 57, VisualTag: "apple"},
	{Radius: 67, VisualTag: "pear"},
	{Radius: 80, VisualTag: "peach"},
	{Radius: 95, VisualTag: "pineapple"},
	{Radius: 110, VisualTag: "melon"},
	{Radius: 130, VisualTag: "watermelon"},
}

// NewCatalog copies tiers into a catalog. At least two tiers are required so
// that something can merge, and every radius must be positive.
func NewCatalog(tiers []TierSpec) (*Catalog, error) {
	if len(tiers) < 2 {
		return nil, fmt.Errorf("catalog needs at least 2 tiers, got %d", len(tiers))
	}
	for i, t := range tiers {
		if t.Radius <= 0 {
			return nil, fmt.Errorf("tier %d: radius must be > 0, got %.2f", i, t.Radius)
		}
	}
	c := &Catalog{tiers: make([]TierSpec, len(tiers))}
	copy(c.tiers, tiers)
	return c, nil
}

// DefaultCatalog returns a catalog over DefaultTiers.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultTiers)
	if err != nil {
		panic(err)
	}
	return c
}

// At returns the spec for tier i.
func (c *Catalog) At(i int) (TierSpec, error) {
	if i < 0 || i >= len(c.tiers) {
		return TierSpec{}, fmt.Errorf("%w: %d (have %d tiers)", ErrOutOfRange, i, len(c.tiers))
	}
	return c.tiers[i], nil
}

// Count returns the fixed number of tiers.
func (c *Catalog) Count() int {
	return len(c.tiers)
}

// MaxTier is the terminal tier index.
func (c *Catalog) MaxTier() int {
	return len(c.tiers) - 1
}

// IsTerminal reports whether tier i is the last rung.
func (c *Catalog) IsTerminal(i int) bool {
	return i == len(c.tiers)-1
}
