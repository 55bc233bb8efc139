// Package petition contains the pure business logic for petition templates:
// the theme catalog, file type rules and search matching.
package petition

// Temas lists the predefined template themes in display order.
var Temas = []string{
	"PETIÇÃO GERAL",
	"ACIDENTE DE TRÂNSITO",
	"BANCO-CARTÃO DE CRÉDITO",
	"COBRANÇA DE DÍVIDA",
	"COMPRA DE PRODUTO – CONSUMIDOR",
	"CONDOMÍNIO-DIREITO DE VIZINHANÇA",
	"DESPEJO PARA USO PRÓPRIO",
	"ESTABELECIMENTO DE ENSINO",
	"EXECUÇÃO DE TÍTULO EXTRAJUDICIAL",
	"EXECUÇÃO DE TÍTULO JUDICIAL",
	"LOCAÇÃO DE IMÓVEL",
	"NEGATIVAÇÃO INDEVIDA",
	"OPERADORA DE TURISMO",
	"PLANOS DE SAÚDE",
	"PRESTAÇÃO DE SERVIÇOS – CONSUMIDOR",
	"TELEFONIA-TV-INTERNET",
	"TRANSPORTE AÉREO",
	"TRANSPORTE RODOVIÁRIO",
	"VEÍCULOS, exceto COLISÃO",
	"JUIZADOS ESPECIAIS DA FAZENDA DO DF",
	"AÇÕES CONTRA CAESB e CEB",
	"COMPRA E VENDA ENTRE PARTICULARES",
	"CONSÓRCIO",
	"MEUS MODELOS",
}

// DefaultSubtema is used for templates created from a catalog item.
const DefaultSubtema = "Geral"

// CatalogItem is a numbered petition model inside a catalog category.
type CatalogItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// CatalogCategory groups catalog items under a theme.
type CatalogCategory struct {
	Title string        `json:"title"`
	Items []CatalogItem `json:"items"`
}

// Catalog is the fixed list of numbered petition models.
var Catalog = []CatalogCategory{
	{Title: "PETIÇÃO GERAL", Items: []CatalogItem{
		{"1.1", "Petição inicial – GERAL – Contra PESSOA FÍSICA"},
		{"1.2", "PETIÇÃO INICIAL - GERAL - contra PESSOA JURÍDICA"},
		{"1.3", "PETIÇÃO INICIAL - GERAL - contra Órgão GDF - Juizado da Fazenda do DF"},
		{"1.4", "Estrutura básica de PETIÇÃO INICIAL"},
	}},
	{Title: "ACIDENTE DE TRÂNSITO", Items: []CatalogItem{
		{"2.1", "ACIDENTE de TRÂNSITO - UM autor x UM requerido - reparação de danos"},
		{"2.2", "ACIDENTE de TRÂNSITO - UM autor x DOIS requeridos - reparação de danos"},
		{"2.3", "ACIDENTE de TRÂNSITO - DOIS autores x UM requerido - reparação de danos"},
		{"2.4", "ACIDENTE de TRÂNSITO - DOIS autores x DOIS requeridos - reparação de danos"},
		{"2.5", "Acidente de Trânsito - ORIENTAÇÕES"},
	}},
	{Title: "BANCO-CARTÃO DE CRÉDITO", Items: []CatalogItem{
		{"3.01", "BANCO – desconto indevido em conta – GERAL - REPETIÇÃO INDÉBITO"},
		{"3.02", "BANCO – CHEQUE CLONADO e COMPENSADO – Ressarcimento"},
		{"3.03", "BANCO – CHEQUE CLONADO e DEVOLVIDO SEM FUNDOS – Obrigação de fazer"},
		{"3.04", "BANCO – Abertura de CONTA SALÁRIO – Taxa de Manutenção INDEVIDA – REPETIÇÃO INDÉBITO"},
		{"3.05", "BANCO – Transações bancárias clandestinas – NULIDADE de negócio jurídico"},
	}},
	{Title: "COBRANÇA DE DÍVIDA", Items: []CatalogItem{
		{"4.1.0", "COBRANÇA - Venda de mercadoria - falta de pagamento"},
		{"4.2.0", "COBRANÇA - Prestação de serviço - falta de pagamento"},
		{"4.3", "COBRANÇA - Empréstimo de dinheiro - falta de pagamento"},
	}},
	{Title: "COMPRA DE PRODUTO – CONSUMIDOR", Items: []CatalogItem{
		{"5.1.0", "COMPRA E VENDA – produto NÃO entregue – rescisão contratual e devolução de quantia paga"},
		{"5.2.0", "COMPRA E VENDA – produto DEFEITUOSO – rescisão contratual e devolução de quantia paga"},
	}},
	{Title: "CONDOMÍNIO-DIREITO DE VIZINHANÇA", Items: []CatalogItem{
		{"6.1", "VIZINHANÇA – Perturbação do sossego – BARULHO"},
		{"6.2", "VIZINHANÇA – direito de CONSTRUIR – permissão de acesso ao imóvel do vizinho"},
	}},
	{Title: "JUIZADOS ESPECIAIS DA FAZENDA DO DF", Items: []CatalogItem{
		{"20.1", "FAZENDA – Réu GDF - servidor ATIVO – Exercícios financeiros não pagos"},
		{"20.2", "FAZENDA - Réu GDF - servidor INATIVO - Exercícios findos não pagos"},
		{"20.3", "FAZENDA – Réu GDF - servidor ATIVO – Reconhecimento de gratificação"},
		{"20.4", "FAZENDA – Réu GDF – NÃO fornecimento de medicação – Ressarcimento"},
		{"20.5", "FAZENDA – Réu GDF – Saúde – CIRURGIA - Tutela de URGÊNCIA"},
		{"20.6", "FAZENDA – Réu GDF – Saúde – EXAME - Tutela de URGÊNCIA"},
		{"20.7", "FAZENDA – Réu GDF – Saúde – MEDICAMENTO - Tutela de URGÊNCIA"},
		{"20.8", "FAZENDA – Réu GDF – Saúde – TRATAMENTO - Tutela de URGÊNCIA"},
		{"20.9", "FAZENDA – Réu GDF-DER–NOVACAP - BURACO NA PISTA – ressarcimento de custo"},
		{"20.10", "FAZENDA – Réu GDF-NOVACAP – BURACO NA PISTA – ressarcimento de custo"},
		{"20.11", "FAZENDA – Réu GDF-DETRAN – BAIXA DE REGISTRO DE VEÍCULO – débitos de IPVA"},
		{"20.12.0", "FAZENDA – Réu GDF-DETRAN – Venda de Veículo – NEGATIVA de PROPRIEDADE – Débitos de IPVA"},
		{"20.12.1", "FAZENDA – Réu DETRAN – Venda de Veículo – Comunicado de venda - NEGATIVA de PROPRIEDADE"},
		{"20.13", "FAZENDA – Réu DER - DETRAN – NULIDADE DE MULTA"},
		{"20.14", "FAZENDA – Réu DETRAN – NULIDADE DE MULTA"},
		{"20.15", "FAZENDA – Réu DER – NULIDADE DE MULTA"},
		{"20.16", "FAZENDA – Réu DER-DETRAN – NULIDADE DE MULTA – falta de NOTIFICAÇÃO"},
		{"20.17", "FAZENDA – Réu DETRAN – NULIDADE DE MULTA – falta de NOTIFICAÇÃO"},
		{"20.18", "FAZENDA – Réu DER – NULIDADE DE MULTA – falta de NOTIFICAÇÃO"},
		{"20.19", "FAZENDA – Réu DETRAN – BAIXA DE REGISTRO DE VEÍCULO"},
		{"20.20", "FAZENDA – Réu DETRAN – CLONAGEM de PLACA – NULIDADE DE MULTA"},
		{"20.21", "FAZENDA – Réu DER-DETRAN – CNH - Transferência de PONTUAÇÃO"},
		{"20.22", "FAZENDA – Réu DER – CNH - Transferência de PONTUAÇÃO"},
		{"20.23", "FAZENDA – Réu DETRAN – CNH - Transferência de PONTUAÇÃO"},
		{"20.24", "FAZENDA – Réu DETRAN – CNH Definitiva – Negativa de RENOVAÇÃO"},
		{"20.25", "FAZENDA – Réu DETRAN – CNH Definitiva – inclusão EAR - demora de RENOVAÇÃO"},
		{"20.26", "FAZENDA – Réu DETRAN – CNH Provisória – Negativa da DEFINITIVA"},
		{"20.27", "FAZENDA – Réu DF-DETRAN – Venda de Veículo – NULIDADE de PROPRIEDADE - negativação indevida – DANOS MORAIS - tutela de urgência"},
		{"20.28", "FAZENDA – Réu GDF – Cidadão – Excesso de tributo – ITBI – restituição da diferença"},
	}},
	{Title: "AÇÕES CONTRA CAESB e CEB", Items: []CatalogItem{
		{"21.1", "CAESB – AUMENTO SUBSTANCIAL – CONTAS PAGAS - CAÇA-VAZAMENTOS - DEVOLUÇÃO EM DOBRO"},
		{"21.2", "CAESB – AUMENTO SUBSTANCIAL - CONTAS NÃO PAGAS – CORTE DE ÁGUA - Tutela de Urgência"},
		{"21.3", "CAESB – AUMENTO SUBSTANCIAL - CONTAS NÃO PAGAS – AMEAÇA DE CORTE - Tutela de Urgência"},
		{"21.4", "CAESB – MULTA INDEVIDA – CONTA PAGA - DEVOLUÇÃO EM DOBRO"},
		{"21.5", "CAESB – MULTA INDEVIDA - CONTAS NÃO PAGAS – CORTE DE ÁGUA - Tutela de Urgência"},
		{"21.6", "CAESB – MULTA INDEVIDA – CONTAS NÃO PAGAS – AMEAÇA DE CORTE - Tutela de Urgência"},
		{"21.7", "CEB – AUMENTO SUBSTANCIAL – CONTAS PAGAS – DEVOLUÇÃO EM DOBRO"},
		{"21.8", "CEB – AUMENTO SUBSTANCIAL – CONTAS NÃO PAGAS – CORTE DE ENERGIA - Tutela de Urgência"},
		{"21.9", "CEB – AUMENTO SUBSTANCIAL – CONTAS NÃO PAGAS – AMEAÇA DE CORTE - Tutela de Urgência"},
		{"21.10", "CEB – Queda de ENERGIA – DANO EQUIPAMENTO ELÉTRICO - INDENIZAÇÃO"},
	}},
	{Title: "COMPRA E VENDA ENTRE PARTICULARES", Items: []CatalogItem{
		{"22.1", "COMPRA E VENDA – falta de pagamento – rescisão de contrato – devolução do bem"},
	}},
	{Title: "CONSÓRCIO", Items: []CatalogItem{
		{"23.1", "CONSÓRCIO – Desistência Contratual – RESTITUIÇÃO dos valores pagos"},
	}},
}

// LookupCatalogItem finds a catalog item by id and returns it with the
// title of its category.
func LookupCatalogItem(id string) (category string, item CatalogItem, ok bool) {
	for _, c := range Catalog {
		for _, it := range c.Items {
			if it.ID == id {
				return c.Title, it, true
			}
		}
	}
	return "", CatalogItem{}, false
}

// ValidTema reports whether tema is one of the predefined themes.
func ValidTema(tema string) bool {
	for _, t := range Temas {
		if t == tema {
			return true
		}
	}
	return false
}
