package consumo

// Pagina fatia de exibição da lista de movimentos com saldo corrente.
type Pagina struct {
	Dados        []MovimentoComSaldo
	Pagina       int
	PorPagina    int
	Total        int
	UltimaPagina int
}

// Paginar fatia a lista já calculada e já ordenada. Nenhum saldo é recalculado:
// os saldos correntes refletem a janela inteira independentemente da página
// pedida. pagina e porPagina são normalizados para >= 1; lista vazia devolve
// UltimaPagina = 1.
func Paginar(movs []MovimentoComSaldo, pagina, porPagina int) Pagina {
	if pagina < 1 {
		pagina = 1
	}
	if porPagina < 1 {
		porPagina = 1
	}

	total := len(movs)
	ultima := (total + porPagina - 1) / porPagina
	if ultima < 1 {
		ultima = 1
	}

	inicio := (pagina - 1) * porPagina
	if inicio > total {
		inicio = total
	}
	fim := inicio + porPagina
	if fim > total {
		fim = total
	}

	dados := make([]MovimentoComSaldo, fim-inicio)
	copy(dados, movs[inicio:fim])

	return Pagina{
		Dados:        dados,
		Pagina:       pagina,
		PorPagina:    porPagina,
		Total:        total,
		UltimaPagina: ultima,
	}
}
