// Package kinship implements the relationship graph engine: bounded BFS over a
// typed kinship graph, shortest-path reconstruction, sibling derivation and a
// deterministic generation/position layout.
//
// Everything in this package is pure and synchronous. Callers fetch edges and
// person attributes up front (see Snapshot) and every result is freshly
// allocated and owned by the caller.
package kinship

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RelationType is one of the seven stored relationship codes. On an edge A→B it
// names what B is to A: A→B Father means B is A's father.
type RelationType int

// Relation codes. The declaration order is also the traversal order used to
// break ties between equally short paths.
const (
	Father RelationType = iota + 1
	Mother
	Son
	Daughter
	Husband
	Wife
	Spouse
)

// relationOrder lists all codes in traversal order.
var relationOrder = []RelationType{Father, Mother, Son, Daughter, Husband, Wife, Spouse}

// Class is the semantic class of a relation.
type Class int

// Relation classes.
const (
	ClassParent Class = iota + 1
	ClassChild
	ClassSpouse
)

// Gender is the gender context used to pick an inverse label.
type Gender int

// Genders. Values other than GenderMale and GenderFemale are unknown.
const (
	GenderUnknown Gender = 0
	GenderMale    Gender = 1
	GenderFemale  Gender = 2
)

// String returns the canonical code, e.g. "Father".
func (t RelationType) String() string {
	switch t {
	case Father:
		return "Father"
	case Mother:
		return "Mother"
	case Son:
		return "Son"
	case Daughter:
		return "Daughter"
	case Husband:
		return "Husband"
	case Wife:
		return "Wife"
	case Spouse:
		return "Spouse"
	}

	return fmt.Sprintf("RelationType(%d)", int(t))
}

// MarshalJSON encodes the relation as its code string.
func (t RelationType) MarshalJSON() ([]byte, error) {
	if _, err := Classify(t); err != nil {
		return nil, err
	}

	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a relation from its code string.
func (t *RelationType) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("decoding relation type: %w", err)
	}

	parsed, err := ParseRelationType(code)
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// String returns the class name.
func (c Class) String() string {
	switch c {
	case ClassParent:
		return "parent"
	case ClassChild:
		return "child"
	case ClassSpouse:
		return "spouse"
	}

	return fmt.Sprintf("Class(%d)", int(c))
}

// ParseRelationType converts a stored code into a RelationType. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseRelationType(code string) (RelationType, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "father":
		return Father, nil
	case "mother":
		return Mother, nil
	case "son":
		return Son, nil
	case "daughter":
		return Daughter, nil
	case "husband":
		return Husband, nil
	case "wife":
		return Wife, nil
	case "spouse":
		return Spouse, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownRelationshipType, code)
}

// Classify returns the semantic class of t.
func Classify(t RelationType) (Class, error) {
	switch t {
	case Father, Mother:
		return ClassParent, nil
	case Son, Daughter:
		return ClassChild, nil
	case Husband, Wife, Spouse:
		return ClassSpouse, nil
	}

	return 0, fmt.Errorf("%w: %d", ErrUnknownRelationshipType, int(t))
}

// Inverse returns the label for walking an edge backwards. fromGender is the
// gender of the edge's From person, i.e. the person the inverse label describes.
// An unknown gender keeps the class and falls back to Son or Father.
func Inverse(t RelationType, fromGender Gender) (RelationType, error) {
	switch t {
	case Father, Mother:
		if fromGender == GenderFemale {
			return Daughter, nil
		}

		return Son, nil
	case Son, Daughter:
		if fromGender == GenderFemale {
			return Mother, nil
		}

		return Father, nil
	case Husband:
		return Wife, nil
	case Wife:
		return Husband, nil
	case Spouse:
		return Spouse, nil
	}

	return 0, fmt.Errorf("%w: %d", ErrUnknownRelationshipType, int(t))
}

// GenderFromID maps a stored gender id onto a Gender.
func GenderFromID(id int) Gender {
	switch Gender(id) {
	case GenderMale:
		return GenderMale
	case GenderFemale:
		return GenderFemale
	}

	return GenderUnknown
}

// relationRank returns the position of t in the traversal order.
func relationRank(t RelationType) int {
	for i, r := range relationOrder {
		if r == t {
			return i
		}
	}

	return len(relationOrder)
}

// generationDelta returns gen(To) - gen(From) for a step labelled t.
func generationDelta(t RelationType) (int, error) {
	class, err := Classify(t)
	if err != nil {
		return 0, err
	}

	switch class {
	case ClassParent:
		return -1, nil
	case ClassChild:
		return 1, nil
	}

	return 0, nil
}
