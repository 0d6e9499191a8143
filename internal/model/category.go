package model

// CategoryOther is the reserved fallback category. Canonicalization coerces
// any unmatched category onto it, so it is always considered part of the
// allowed vocabulary even when a caller omits it.
const CategoryOther = "Outros"

// BaseCategories is the built-in category set every user starts with.
// User-defined categories are appended by the store.
var BaseCategories = []string{
	"Alimentação", "Transporte", "Moradia", "Lazer", "Saúde",
	"Salário", "Investimentos", "Educação", "Viagem", "Compras",
	"Assinaturas", "Presentes", CategoryOther,
}
