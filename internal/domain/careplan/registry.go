package careplan

import "encoding/json"

// Definition describes one category's wizard flow: its fixed question
// order and, for categories with an algorithmic assessment, the functions
// that parse stored details and derive the assessment result. Categories
// without an assess function are driven entirely by the generic status
// override.
type Definition struct {
	Category      Category
	QuestionOrder []string

	// parse validates a raw details blob against the category schema.
	parse func(raw json.RawMessage) (any, []FieldError)
	// assess derives the result from parsed details. Nil for categories
	// without an algorithmic flow.
	assess func(details any) *AssessmentResult
}

// Assessable reports whether the category has a wizard assessment flow.
func (d *Definition) Assessable() bool { return d.assess != nil }

// HasQuestion reports whether id is a defined step for the category.
func (d *Definition) HasQuestion(id string) bool {
	for _, q := range d.QuestionOrder {
		if q == id {
			return true
		}
	}
	return false
}

// Registry is the closed table of category definitions, constructed once
// at process start. Dispatch is a single map lookup.
type Registry struct {
	defs map[Category]*Definition
}

// NewRegistry builds the definition table for all ten categories.
func NewRegistry() *Registry {
	defs := map[Category]*Definition{
		CategoryDehydration: {
			Category:      CategoryDehydration,
			QuestionOrder: dehydrationQuestionOrder,
			parse:         parseDehydrationDetails,
			assess: func(details any) *AssessmentResult {
				return assessDehydration(details.(*DehydrationDetails))
			},
		},
		CategoryPain: {
			Category:      CategoryPain,
			QuestionOrder: painQuestionOrder,
			parse:         parsePainDetails,
			assess: func(details any) *AssessmentResult {
				return assessPain(details.(*PainDetails))
			},
		},
	}

	// Categories handled outside the wizard get a single free-text note
	// step so the question order is still defined for every category.
	for _, c := range []Category{
		CategoryNutrition, CategorySleep, CategoryMedication,
		CategoryEnvironment, CategoryMobility, CategoryExcretion,
		CategoryCognition, CategoryInfection,
	} {
		defs[c] = &Definition{
			Category:      c,
			QuestionOrder: []string{"note"},
		}
	}

	return &Registry{defs: defs}
}

// Lookup returns the definition for a category, or nil when the category
// is unknown.
func (r *Registry) Lookup(c Category) *Definition { return r.defs[c] }
