package domain

// IngredientsKind tags the shape an ingredients field was loaded in.
// The zero value is not a valid kind.
type IngredientsKind int

const (
	IngredientsText IngredientsKind = iota + 1
	IngredientsList
)

func (k IngredientsKind) String() string {
	switch k {
	case IngredientsText:
		return "text"
	case IngredientsList:
		return "list"
	default:
		return "invalid"
	}
}

// Ingredients is the raw ingredients field of a recipe: either one free-text
// string or an ordered list of ingredient strings.
type Ingredients struct {
	kind IngredientsKind
	text string
	list []string
}

// TextIngredients wraps a single ingredients string.
func TextIngredients(s string) Ingredients {
	return Ingredients{kind: IngredientsText, text: s}
}

// ListIngredients wraps a list of ingredient strings. The slice is copied.
func ListIngredients(items []string) Ingredients {
	cp := make([]string, len(items))
	copy(cp, items)
	return Ingredients{kind: IngredientsList, list: cp}
}

// Kind reports which variant is set.
func (i Ingredients) Kind() IngredientsKind { return i.kind }

// Text returns the string variant.
func (i Ingredients) Text() (string, bool) {
	return i.text, i.kind == IngredientsText
}

// List returns a copy of the list variant.
func (i Ingredients) List() ([]string, bool) {
	if i.kind != IngredientsList {
		return nil, false
	}
	cp := make([]string, len(i.list))
	copy(cp, i.list)
	return cp, true
}

// Recipe is a record as supplied by a corpus loader. ID is the record's
// position in the dataset.
type Recipe struct {
	ID          int
	Name        string
	Ingredients Ingredients
}

// NormalizedRecipe carries the flattened ingredients text used for indexing.
type NormalizedRecipe struct {
	ID              int
	Name            string
	IngredientsText string
}

// Match is a ranked recipe with its cosine similarity to the query.
// Index is the recipe's row in the term-count matrix.
type Match struct {
	Recipe NormalizedRecipe
	Index  int
	Score  float64
}

// Results is an ordered result set, highest score first.
type Results []Match

// Found reports whether at least one result shares a token with the query.
// An empty set or a set where every score is zero counts as nothing found.
func (r Results) Found() bool {
	for _, m := range r {
		if m.Score > 0 {
			return true
		}
	}
	return false
}

// MatchView is the presentation shape of a match shared by the JSON
// outputs of the console and HTTP front ends.
type MatchView struct {
	RecipeName  string  `json:"recipe_name"`
	Ingredients string  `json:"ingredients"`
	Similarity  float64 `json:"similarity"`
}

// Views converts the result set for display, rounding scores to two decimals.
// It never returns nil.
func (r Results) Views() []MatchView {
	out := make([]MatchView, 0, len(r))
	for _, m := range r {
		out = append(out, MatchView{
			RecipeName:  m.Recipe.Name,
			Ingredients: m.Recipe.IngredientsText,
			Similarity:  RoundScore(m.Score),
		})
	}
	return out
}
