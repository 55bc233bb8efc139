// Package legalcase contains the pure business logic for client cases
// (atendimentos): the practice-area catalog, status rules and guards.
package legalcase

// Category is a practice area shared by clients and cases.
type Category string

const (
	CategorySocialSecurity Category = "social-security"
	CategoryCriminal       Category = "criminal"
	CategoryCivil          Category = "civil"
	CategoryLabor          Category = "labor"
	CategoryAdministrative Category = "administrative"
)

// Option is a value with its pt-BR label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var categoryLabels = map[Category]string{
	CategorySocialSecurity: "Previdenciário",
	CategoryCriminal:       "Criminal",
	CategoryCivil:          "Cível",
	CategoryLabor:          "Trabalhista",
	CategoryAdministrative: "Administrativo",
}

var subcategories = map[Category][]Option{
	CategorySocialSecurity: {
		{"retirement", "Aposentadoria"},
		{"disability", "Auxílio-doença/BPC"},
		{"maternity", "Salário-maternidade"},
		{"sickness", "Auxílio-doença"},
		{"accident", "Auxílio-acidente"},
		{"pension", "Pensão por morte"},
		{"benefit-review", "Revisão de benefício"},
		{"other-social", "Outro"},
	},
	CategoryCriminal: {
		{"theft", "Furto"},
		{"robbery", "Roubo"},
		{"drug-traffic", "Tráfico de drogas"},
		{"homicide", "Homicídio"},
		{"misdemeanor", "Contravenção penal"},
		{"fraud", "Estelionato"},
		{"domestic-violence", "Violência doméstica"},
		{"other-criminal", "Outro"},
	},
}

// Categories returns every category in display order.
func Categories() []Option {
	order := []Category{
		CategorySocialSecurity,
		CategoryCriminal,
		CategoryCivil,
		CategoryLabor,
		CategoryAdministrative,
	}
	out := make([]Option, 0, len(order))
	for _, c := range order {
		out = append(out, Option{Value: string(c), Label: categoryLabels[c]})
	}
	return out
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	_, ok := categoryLabels[Category(c)]
	return ok
}

// CategoryLabel returns the pt-BR label of c, or c itself when unknown.
func CategoryLabel(c string) string {
	if l, ok := categoryLabels[Category(c)]; ok {
		return l
	}
	return c
}

// Subcategories returns the subcategories of c. Civil, labor and
// administrative have none.
func Subcategories(c string) []Option {
	return append([]Option(nil), subcategories[Category(c)]...)
}

// SubcategoryLabel returns the pt-BR label of sub within c, or sub itself.
func SubcategoryLabel(c, sub string) string {
	for _, o := range subcategories[Category(c)] {
		if o.Value == sub {
			return o.Label
		}
	}
	return sub
}
