// seed_consumo carrega no espelho local um extrato de movimentações exportado
// do Sankhya (CSV separado por ponto e vírgula, codificação ISO-8859-1, a
// padrão das exportações do ERP).
//
// Uso: go run ./cmd/seed_consumo [caminho/movimentos.csv]
// Por padrão procura movimentos.csv no diretório atual.
//
// Colunas esperadas (com cabeçalho):
//
//	CODEMP;CODPROD;NUNOTA;SEQUENCIA;DTMOV;CODTIPOPER;DESCRTIPOPER;TIPMOV;
//	ATUALEST;QTDNEG;VLRUNIT;CODPARC;NOMEPARC;CODUSUINC;NOMEUSUINC;
//	CODUSUALT;NOMEUSUALT;CONTROLE;OBSERVACAO
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/aferraz/consumo-api/internal/domain/entity"
	"github.com/aferraz/consumo-api/internal/infrastructure/postgres"
	"github.com/aferraz/consumo-api/pkg/config"
)

const loteMax = 500

func main() {
	csvPath := "movimentos.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	r := csv.NewReader(transform.NewReader(f, charmap.ISO8859_1.NewDecoder()))
	r.Comma = ';'
	r.FieldsPerRecord = -1

	registros, err := r.ReadAll()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ler CSV: %v\n", err)
		os.Exit(1)
	}
	if len(registros) < 2 {
		fmt.Fprintln(os.Stderr, "CSV vazio (esperado cabeçalho + linhas)")
		os.Exit(1)
	}

	var linhas []entity.MovimentoEstoque
	var puladas int
	for i, reg := range registros[1:] {
		m, err := parseLinha(reg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "linha %d pulada: %v\n", i+2, err)
			puladas++
			continue
		}
		linhas = append(linhas, m)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Carregar configuração: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conectar ao PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	repo := postgres.NewMovimentoEstoqueRepository(pool)
	for ini := 0; ini < len(linhas); ini += loteMax {
		fim := ini + loteMax
		if fim > len(linhas) {
			fim = len(linhas)
		}
		if err := repo.InserirLote(ctx, linhas[ini:fim]); err != nil {
			fmt.Fprintf(os.Stderr, "Inserir lote %d-%d: %v\n", ini, fim, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Carregadas %d movimentações (%d linhas puladas)\n", len(linhas), puladas)
}

// parseLinha converte uma linha do extrato. A data é mantida como texto cru
// (o repositório decide o que fazer com datas ilegíveis); quantidades e valores
// aceitam o formato brasileiro com vírgula decimal.
func parseLinha(reg []string) (entity.MovimentoEstoque, error) {
	if len(reg) < 19 {
		return entity.MovimentoEstoque{}, fmt.Errorf("esperadas 19 colunas, vieram %d", len(reg))
	}
	campo := func(i int) string { return strings.TrimSpace(reg[i]) }

	codEmp, err := strconv.Atoi(campo(0))
	if err != nil {
		return entity.MovimentoEstoque{}, fmt.Errorf("CODEMP: %w", err)
	}
	codProd, err := strconv.ParseInt(campo(1), 10, 64)
	if err != nil {
		return entity.MovimentoEstoque{}, fmt.Errorf("CODPROD: %w", err)
	}
	nuNota, err := strconv.ParseInt(campo(2), 10, 64)
	if err != nil {
		return entity.MovimentoEstoque{}, fmt.Errorf("NUNOTA: %w", err)
	}
	sequencia, err := strconv.Atoi(campo(3))
	if err != nil {
		return entity.MovimentoEstoque{}, fmt.Errorf("SEQUENCIA: %w", err)
	}
	qtd, err := parseDecimalBR(campo(9))
	if err != nil {
		return entity.MovimentoEstoque{}, fmt.Errorf("QTDNEG: %w", err)
	}
	vlrUnit, err := parseDecimalBR(campo(10))
	if err != nil {
		return entity.MovimentoEstoque{}, fmt.Errorf("VLRUNIT: %w", err)
	}

	codTipOper, _ := strconv.Atoi(campo(5))
	codParc, _ := strconv.ParseInt(campo(11), 10, 64)
	codUsuInc, _ := strconv.ParseInt(campo(13), 10, 64)
	codUsuAlt, _ := strconv.ParseInt(campo(15), 10, 64)

	return entity.MovimentoEstoque{
		CodEmp:           codEmp,
		CodProd:          codProd,
		NuNota:           nuNota,
		Sequencia:        sequencia,
		DataMovimento:    campo(4),
		CodTipOper:       codTipOper,
		DescrTipOper:     campo(6),
		TipoNegociacao:   campo(7),
		AtualizaEstoque:  campo(8),
		Quantidade:       qtd,
		VlrUnitario:      vlrUnit,
		CodParc:          codParc,
		NomeParc:         campo(12),
		CodUsuInclusao:   codUsuInc,
		NomeUsuInclusao:  campo(14),
		CodUsuAlteracao:  codUsuAlt,
		NomeUsuAlteracao: campo(16),
		Controle:         campo(17),
		Observacao:       campo(18),
	}, nil
}

// parseDecimalBR aceita "1.234,56" (formato ERP) e "1234.56".
func parseDecimalBR(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	return decimal.NewFromString(s)
}
