package ll

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/gorll"
)

// TokenSet is a sorted set of token types, used for FIRST sets and lookahead.
// The zero value is not usable; create token sets with NewTokenSet.
//
// A nil *TokenSet behaves like an empty set for all read operations.
type TokenSet struct {
	set *treeset.Set
}

func tokTypeComparator(a, b interface{}) int {
	return utils.IntComparator(int(a.(gorll.TokType)), int(b.(gorll.TokType)))
}

// NewTokenSet creates a token set from the given token types.
func NewTokenSet(codes ...gorll.TokType) *TokenSet {
	s := &TokenSet{set: treeset.NewWith(tokTypeComparator)}
	return s.Add(codes...)
}

// Add adds token types to s and returns s.
func (s *TokenSet) Add(codes ...gorll.TokType) *TokenSet {
	for _, c := range codes {
		s.set.Add(c)
	}
	return s
}

// Union adds all token types of other to s and returns s.
func (s *TokenSet) Union(other *TokenSet) *TokenSet {
	if other == nil {
		return s
	}
	s.set.Add(other.set.Values()...)
	return s
}

// Contains checks for membership of a token type.
func (s *TokenSet) Contains(code gorll.TokType) bool {
	if s == nil {
		return false
	}
	return s.set.Contains(code)
}

// Intersection returns a new set with the token types contained in both s and other.
func (s *TokenSet) Intersection(other *TokenSet) *TokenSet {
	r := NewTokenSet()
	if s == nil || other == nil {
		return r
	}
	small, large := s, other
	if small.Size() > large.Size() {
		small, large = large, small
	}
	for _, v := range small.set.Values() {
		if large.set.Contains(v) {
			r.set.Add(v)
		}
	}
	return r
}

// Intersects is a predicate: do s and other have a token type in common?
func (s *TokenSet) Intersects(other *TokenSet) bool {
	return !s.Intersection(other).IsEmpty()
}

// Size returns the number of token types in s.
func (s *TokenSet) Size() int {
	if s == nil {
		return 0
	}
	return s.set.Size()
}

// IsEmpty is a predicate: is s the empty set?
func (s *TokenSet) IsEmpty() bool {
	return s.Size() == 0
}

// Codes returns the token types of s in ascending order.
func (s *TokenSet) Codes() []gorll.TokType {
	if s == nil {
		return nil
	}
	codes := make([]gorll.TokType, 0, s.set.Size())
	for _, v := range s.set.Values() {
		codes = append(codes, v.(gorll.TokType))
	}
	return codes
}

// Copy returns a new set containing the token types of s.
func (s *TokenSet) Copy() *TokenSet {
	return NewTokenSet(s.Codes()...)
}

// Equals is a predicate: do s and other contain the same token types?
func (s *TokenSet) Equals(other *TokenSet) bool {
	if s.Size() != other.Size() {
		return false
	}
	a, b := s.Codes(), other.Codes()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s *TokenSet) String() string {
	return s.Format(nil)
}

// Format prints the token types of s, using a stringer for token names.
// If names is nil, token types are printed as integers.
func (s *TokenSet) Format(names gorll.TokTypeStringer) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range s.Codes() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(tokenName(c, names))
	}
	b.WriteByte(']')
	return b.String()
}

func tokenName(c gorll.TokType, names gorll.TokTypeStringer) string {
	if names == nil {
		return fmt.Sprintf("%d", c)
	}
	return names(c)
}
