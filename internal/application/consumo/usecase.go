// Package consumo contém o caso de uso que orquestra o motor de análise de
// consumo: busca de linhas cruas, normalização, reconciliação de saldos,
// agregações, tendência de preço e paginação, devolvendo o objeto de resposta
// pronto para serialização.
package consumo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/aferraz/consumo-api/internal/application/dto"
	"github.com/aferraz/consumo-api/internal/domain"
	motor "github.com/aferraz/consumo-api/internal/domain/consumo"
	"github.com/aferraz/consumo-api/internal/domain/entity"
	"github.com/aferraz/consumo-api/internal/domain/repository"
	"github.com/aferraz/consumo-api/pkg/logger"
)

const (
	porPaginaPadrao = 50
	porPaginaMax    = 500
)

// AnaliseUseCase orquestra uma requisição de análise de consumo.
//
// O caso de uso é stateless: cada chamada lê um snapshot imutável de linhas já
// buscadas e executa computação pura; não há cache nem estado compartilhado
// entre requisições.
type AnaliseUseCase struct {
	movRepo     repository.MovimentoEstoqueRepository
	produtoRepo repository.ProdutoRepository
	usuarioRepo repository.UsuarioRepository
	log         *logger.Logger
}

// NewAnaliseUseCase constrói o caso de uso.
func NewAnaliseUseCase(
	movRepo repository.MovimentoEstoqueRepository,
	produtoRepo repository.ProdutoRepository,
	usuarioRepo repository.UsuarioRepository,
	log *logger.Logger,
) *AnaliseUseCase {
	return &AnaliseUseCase{
		movRepo:     movRepo,
		produtoRepo: produtoRepo,
		usuarioRepo: usuarioRepo,
		log:         log,
	}
}

// Analisar executa a análise completa para a empresa e produto pedidos.
//
// Erros de validação (janela invertida, paginação negativa, dimensão
// desconhecida) retornam antes de qualquer computação, embrulhando
// domain.ErrEntradaInvalida. Problemas de qualidade de dado nunca abortam:
// o resultado sai em melhor esforço com os avisos acumulados.
func (uc *AnaliseUseCase) Analisar(
	ctx context.Context,
	codEmp int,
	req dto.ConsumoAnaliseRequest,
) (*dto.ConsumoAnaliseDTO, error) {
	// ── Validação (antes de qualquer busca ou cálculo) ────────────────────────
	if req.CodProd <= 0 {
		return nil, fmt.Errorf("cod_prod obrigatório: %w", domain.ErrEntradaInvalida)
	}
	if req.Pagina < 0 || req.PorPagina < 0 {
		return nil, fmt.Errorf("paginação negativa: %w", domain.ErrEntradaInvalida)
	}
	pagina := req.Pagina
	if pagina == 0 {
		pagina = 1
	}
	porPagina := req.PorPagina
	if porPagina == 0 {
		porPagina = porPaginaPadrao
	}
	if porPagina > porPaginaMax {
		porPagina = porPaginaMax
	}

	inicio, fim, err := parseJanela(req.DataInicio, req.DataFim)
	if err != nil {
		return nil, err
	}

	dimensoes, err := parseDimensoes(req.AgruparPor)
	if err != nil {
		return nil, err
	}

	log := uc.log.With().
		Str("req_id", uuid.New().String()).
		Int("cod_emp", codEmp).
		Int64("cod_prod", req.CodProd).
		Logger()

	// ── Buscas em paralelo: linhas cruas e cadastro do produto ────────────────
	type linhasResult struct {
		linhas []entity.MovimentoEstoque
		err    error
	}
	type produtoResult struct {
		produto *entity.Produto
		err     error
	}

	linhasCh := make(chan linhasResult, 1)
	produtoCh := make(chan produtoResult, 1)

	go func() {
		linhas, err := uc.movRepo.ListarAteData(ctx, codEmp, req.CodProd, fim)
		linhasCh <- linhasResult{linhas, err}
	}()
	go func() {
		p, err := uc.produtoRepo.GetByCodigo(ctx, codEmp, req.CodProd)
		produtoCh <- produtoResult{p, err}
	}()

	linhasRes := <-linhasCh
	produtoRes := <-produtoCh

	if linhasRes.err != nil {
		return nil, fmt.Errorf("consumo: movimentos do produto %d: %w", req.CodProd, linhasRes.err)
	}
	if produtoRes.err != nil {
		return nil, fmt.Errorf("consumo: produto %d: %w", req.CodProd, produtoRes.err)
	}
	if produtoRes.produto == nil {
		return nil, fmt.Errorf("produto %d: %w", req.CodProd, domain.ErrNaoEncontrado)
	}

	// ── Motor: normalizar → reconciliar → agregar → tendência ────────────────
	canonicos, avisos, err := motor.Normalizar(linhasRes.linhas)
	if err != nil {
		return nil, err
	}

	saldoSemente, err := montarSaldoSemente(req, inicio)
	if err != nil {
		return nil, err
	}

	rec, err := motor.Reconciliar(canonicos, inicio, fim, saldoSemente)
	if err != nil {
		return nil, err
	}
	avisos = append(avisos, rec.Avisos...)

	dentro := make([]motor.MovimentoCanonico, len(rec.Movimentos))
	for i, m := range rec.Movimentos {
		dentro[i] = m.MovimentoCanonico
	}

	resolvedores, err := uc.montarResolvedores(ctx, codEmp, dimensoes, dentro)
	if err != nil {
		return nil, err
	}
	resumo := motor.Agregar(dentro, dimensoes, resolvedores)

	tendencia := motor.AnalisarTendencia(dentro)

	pag := motor.Paginar(rec.Movimentos, pagina, porPagina)

	log.Debug().
		Int("movimentos_janela", len(dentro)).
		Int("avisos", len(avisos)).
		Int("fora_da_janela", rec.ForaDaJanela).
		Msg("análise de consumo concluída")

	return montarResposta(req.CodProd, produtoRes.produto, inicio, fim, rec, resumo, tendencia, pag, dimensoes, avisos), nil
}

// montarSaldoSemente converte os parâmetros opcionais de saldo de abertura.
// Basta a quantidade estar presente; valor ausente assume zero.
func montarSaldoSemente(req dto.ConsumoAnaliseRequest, inicio time.Time) (*motor.Saldo, error) {
	if strings.TrimSpace(req.SaldoInicialQuantidade) == "" {
		return nil, nil
	}
	qtd, err := decimal.NewFromString(req.SaldoInicialQuantidade)
	if err != nil {
		return nil, fmt.Errorf("saldo_inicial_quantidade inválido: %w", domain.ErrEntradaInvalida)
	}
	valor := decimal.Zero
	if strings.TrimSpace(req.SaldoInicialValor) != "" {
		valor, err = decimal.NewFromString(req.SaldoInicialValor)
		if err != nil {
			return nil, fmt.Errorf("saldo_inicial_valor inválido: %w", domain.ErrEntradaInvalida)
		}
	}
	return &motor.Saldo{
		CodProd:    req.CodProd,
		Referencia: inicio,
		Quantidade: qtd,
		Valor:      valor,
	}, nil
}

// montarResolvedores resolve cadastros externos necessários às dimensões
// pedidas. Hoje só DEPARTAMENTO exige lookup: usuário de inclusão → setor.
func (uc *AnaliseUseCase) montarResolvedores(
	ctx context.Context,
	codEmp int,
	dimensoes []motor.Dimensao,
	movs []motor.MovimentoCanonico,
) (motor.Resolvedores, error) {
	resolvedores := motor.Resolvedores{}

	precisaDepto := false
	for _, d := range dimensoes {
		if d == motor.DimensaoDepartamento {
			precisaDepto = true
		}
	}
	if !precisaDepto {
		return resolvedores, nil
	}

	vistos := make(map[int64]struct{})
	var codUsus []int64
	for _, m := range movs {
		if m.CodUsuInclusao == 0 {
			continue
		}
		if _, ok := vistos[m.CodUsuInclusao]; ok {
			continue
		}
		vistos[m.CodUsuInclusao] = struct{}{}
		codUsus = append(codUsus, m.CodUsuInclusao)
	}

	mapa := map[int64]string{}
	if len(codUsus) > 0 {
		var err error
		mapa, err = uc.usuarioRepo.MapaDepartamentos(ctx, codEmp, codUsus)
		if err != nil {
			return nil, fmt.Errorf("consumo: departamentos dos usuários: %w", err)
		}
	}

	resolvedores[motor.DimensaoDepartamento] = func(m motor.MovimentoCanonico) string {
		return mapa[m.CodUsuInclusao]
	}
	return resolvedores, nil
}

// montarResposta converte os resultados do motor no objeto de resposta.
func montarResposta(
	codProd int64,
	produto *entity.Produto,
	inicio, fim time.Time,
	rec *motor.ResultadoReconciliacao,
	resumo *motor.ResumoAgregado,
	tendencia *motor.ResumoPreco,
	pag motor.Pagina,
	dimensoes []motor.Dimensao,
	avisos []motor.AvisoQualidade,
) *dto.ConsumoAnaliseDTO {
	movs := make([]dto.MovimentacaoDTO, 0, len(pag.Dados))
	for _, m := range pag.Dados {
		movs = append(movs, dto.MovimentacaoDTO{
			NuNota:            m.NuNota,
			Sequencia:         m.Sequencia,
			Data:              m.Data.Format(time.RFC3339),
			Tipo:              string(m.Tipo),
			DescricaoOperacao: m.DescricaoOperacao,
			Quantidade:        m.DeltaQuantidade,
			Valor:             m.DeltaValor,
			VlrUnitario:       m.VlrUnitario,
			Parceiro:          m.NomeParc,
			Usuario:           m.NomeUsuInclusao,
			Controle:          m.Controle,
			Observacao:        m.Observacao,
			Suspeito:          m.Suspeito,
			SaldoQuantidade:   m.SaldoQuantidade,
			SaldoValor:        m.SaldoValor,
		})
	}

	var agrupamento map[string][]motor.GrupoResumo
	if len(dimensoes) > 0 {
		agrupamento = make(map[string][]motor.GrupoResumo, len(dimensoes))
		for d, grupos := range resumo.Grupos {
			agrupamento[string(d)] = grupos
		}
	}

	var tendenciaDTO *dto.TendenciaPrecoDTO
	if tendencia != nil {
		historico := make([]dto.PontoPrecoDTO, 0, len(tendencia.Historico))
		for _, p := range tendencia.Historico {
			historico = append(historico, dto.PontoPrecoDTO{
				Data:       p.Data.Format("2006-01-02"),
				Preco:      p.Preco,
				Quantidade: p.Quantidade,
			})
		}
		tendenciaDTO = &dto.TendenciaPrecoDTO{
			Historico:           historico,
			PrecoMedioPonderado: tendencia.PrecoMedioPonderado,
			PrecoMinimo:         tendencia.PrecoMinimo,
			PrecoMaximo:         tendencia.PrecoMaximo,
			UltimoPreco:         tendencia.UltimoPreco,
			VariacaoPercentual:  tendencia.VariacaoPercentual,
			Tendencia:           string(tendencia.Tendencia),
		}
	}

	return &dto.ConsumoAnaliseDTO{
		CodProd:       codProd,
		DescricaoProd: produto.Descricao,
		Periodo: dto.PeriodoDTO{
			Inicio: inicio.Format("2006-01-02"),
			Fim:    fim.Format("2006-01-02"),
			Dias:   int(fim.Sub(inicio).Hours() / 24),
		},
		SaldoAnterior: saldoDTO(rec.SaldoAnterior),
		SaldoAtual:    saldoDTO(rec.SaldoFinal),
		Resumo: dto.ResumoDTO{
			EntradasQuantidade:  resumo.EntradasQuantidade,
			EntradasValor:       resumo.EntradasValor,
			ConsumoQuantidade:   resumo.ConsumoQuantidade,
			ConsumoValor:        resumo.ConsumoValor,
			QtdMovimentos:       resumo.QtdMovimentos,
			DocumentosDistintos: resumo.DocumentosDistintos,
		},
		Agrupamento: agrupamento,
		Movimentacoes: dto.MovimentacoesDTO{
			Dados:        movs,
			Pagina:       pag.Pagina,
			PorPagina:    pag.PorPagina,
			Total:        pag.Total,
			UltimaPagina: pag.UltimaPagina,
		},
		TendenciaPreco:  tendenciaDTO,
		AvisosQualidade: avisos,
	}
}

func saldoDTO(s motor.Saldo) dto.SaldoDTO {
	return dto.SaldoDTO{
		Quantidade: s.Quantidade,
		Valor:      s.Valor,
		Negativo:   s.Negativo,
		Aproximado: s.Aproximado,
	}
}

// parseJanela converte as datas da requisição na janela [inicio, fim).
// Padrões: início = primeiro dia do mês atual; fim = amanhã (para incluir hoje).
func parseJanela(inicioStr, fimStr string) (inicio, fim time.Time, err error) {
	now := time.Now()

	if inicioStr == "" {
		inicio = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	} else {
		inicio, err = time.ParseInLocation("2006-01-02", inicioStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("data_inicio inválida: %w", domain.ErrEntradaInvalida)
		}
	}

	if fimStr == "" {
		hoje := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		fim = hoje.AddDate(0, 0, 1)
	} else {
		fim, err = time.ParseInLocation("2006-01-02", fimStr, now.Location())
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("data_fim inválida: %w", domain.ErrEntradaInvalida)
		}
	}

	if !inicio.Before(fim) {
		return time.Time{}, time.Time{}, fmt.Errorf("data_inicio deve ser anterior a data_fim: %w", domain.ErrEntradaInvalida)
	}
	return inicio, fim, nil
}

// parseDimensoes interpreta o CSV de agrupamentos da query string.
func parseDimensoes(csv string) ([]motor.Dimensao, error) {
	if strings.TrimSpace(csv) == "" {
		return nil, nil
	}
	var dims []motor.Dimensao
	for _, parte := range strings.Split(csv, ",") {
		parte = strings.ToUpper(strings.TrimSpace(parte))
		if parte == "" {
			continue
		}
		d, err := motor.ParseDimensao(parte)
		if err != nil {
			return nil, err
		}
		dims = append(dims, d)
	}
	return dims, nil
}
