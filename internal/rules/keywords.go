package rules

// Fixed keyword tables. Slice order is load-bearing for categoryKeywords
// (first match wins) and must not be re-sorted.

// declineKeywords force delegation to the remote model: foreign currency
// needs numeric conversion, and investment flows need nuanced kind
// classification (contributions record as Expense, redemptions as Income).
var declineKeywords = []string{
	"dólar", "dolar", "usd",
	"euro", "eur",
	"libra", "gbp",
	"iene", "jpy",
	"yuan", "cny",
	"bitcoin", "btc",
	"investi", "aplicação", "aplicacao", "apliquei",
	"resgat", "tesouro",
}

// incomeKeywords mark receipt vocabulary. Anything else is an expense.
var incomeKeywords = []string{
	"recebi", "ganhei", "pix", "entrada",
	"salário", "salario", "depósito", "deposito",
}

// categoryKeywords maps spend vocabulary onto category names, most common
// domains first.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"Transporte", []string{"uber", "combustível", "combustivel", "gasolina", "ônibus", "onibus", "metrô", "metro"}},
	{"Alimentação", []string{"ifood", "restaurante", "mercado", "padaria", "lanche"}},
	{"Moradia", []string{"aluguel", "luz", "internet", "água", "agua", "condomínio", "condominio"}},
	{"Educação", []string{"curso", "faculdade", "escola", "livro"}},
	{"Saúde", []string{"farmácia", "farmacia", "remédio", "remedio", "médico", "medico", "consulta"}},
}
