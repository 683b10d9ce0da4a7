package tagset

import "fmt"

// Category is an entity type.
type Category int

// Entity categories, in reporting order.
const (
	Person Category = iota
	Organization
	Location
)

// Categories lists every category in reporting order.
var Categories = [...]Category{Person, Organization, Location}

var categoryNames = [...]string{
	Person:       "per",
	Organization: "org",
	Location:     "loc",
}

func (c Category) String() string {
	if c >= 0 && int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Begin returns the B- tag of the category.
func (c Category) Begin() Tag { return Tag(2 * int(c)) }

// Inside returns the I- tag of the category.
func (c Category) Inside() Tag { return Tag(2*int(c) + 1) }

// ParseCategory converts "per", "org" or "loc" to a Category.
func ParseCategory(name string) (Category, error) {
	for i, s := range categoryNames {
		if s == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("tagset: unknown category %q", name)
}

// Kind is the BIO position of a tag.
type Kind int

const (
	// Invalid marks indices outside the vocabulary, including Pad.
	Invalid Kind = iota
	Outside
	Begin
	Inside
)

func (k Kind) String() string {
	switch k {
	case Outside:
		return "outside"
	case Begin:
		return "begin"
	case Inside:
		return "inside"
	default:
		return "invalid"
	}
}

// State is the decoded form of a tag. Category is meaningful only for Begin
// and Inside.
type State struct {
	Kind     Kind
	Category Category
}

// Decode returns the BIO state of t.
func Decode(t Tag) State {
	switch {
	case !t.Valid():
		return State{Kind: Invalid}
	case t == O:
		return State{Kind: Outside}
	case t%2 == 0:
		return State{Kind: Begin, Category: Category(t / 2)}
	default:
		return State{Kind: Inside, Category: Category(t / 2)}
	}
}

// Continues reports whether t is the Inside tag of the same category as s.
func (s State) Continues(t Tag) bool {
	return s.Kind == Begin && t == s.Category.Inside()
}
