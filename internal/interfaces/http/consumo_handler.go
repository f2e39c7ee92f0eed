package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/aferraz/consumo-api/internal/application/consumo"
	"github.com/aferraz/consumo-api/internal/application/dto"
	"github.com/aferraz/consumo-api/internal/domain"
)

// ConsumoHandler trata as peticões de análise de consumo (protegido).
type ConsumoHandler struct {
	uc     *consumo.AnaliseUseCase
	pdfGen consumo.RelatorioPDFGenerator
}

// NewConsumoHandler constrói o handler.
func NewConsumoHandler(uc *consumo.AnaliseUseCase, pdfGen consumo.RelatorioPDFGenerator) *ConsumoHandler {
	return &ConsumoHandler{uc: uc, pdfGen: pdfGen}
}

// Analise godoc
// @Summary      Análise de consumo e reconciliação de saldo de um produto
// @Tags         consumo
// @Security     Bearer
// @Produce      json
// @Param        cod_prod     query  int     true   "Código do produto"
// @Param        data_inicio  query  string  false  "YYYY-MM-DD; padrão primeiro dia do mês"
// @Param        data_fim     query  string  false  "YYYY-MM-DD exclusivo; padrão amanhã"
// @Param        pagina       query  int     false  "Página"      default(1)
// @Param        por_pagina   query  int     false  "Por página"  default(50)
// @Param        agrupar_por  query  string  false  "CSV: USUARIO,DEPARTAMENTO,PARCEIRO,MES,TIPO_OPERACAO"
// @Success      200  {object}  dto.ConsumoAnaliseDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/consumo/analise [get]
func (h *ConsumoHandler) Analise(c *fiber.Ctx) error {
	out, err := h.analisar(c)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// AnalisePDF godoc
// @Summary      Exporta a análise de consumo em PDF
// @Tags         consumo
// @Security     Bearer
// @Produce      application/pdf
// @Param        cod_prod     query  int     true   "Código do produto"
// @Param        data_inicio  query  string  false  "YYYY-MM-DD"
// @Param        data_fim     query  string  false  "YYYY-MM-DD exclusivo"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/consumo/analise/pdf [get]
func (h *ConsumoHandler) AnalisePDF(c *fiber.Ctx) error {
	out, err := h.analisar(c)
	if err != nil {
		return h.mapError(c, err)
	}

	pdfBytes, err := h.pdfGen.GerarRelatorioConsumo(c.Context(), out)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_ERROR", Message: err.Error()})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="consumo_%d_%s.pdf"`, out.CodProd, out.Periodo.Inicio))
	return c.Send(pdfBytes)
}

func (h *ConsumoHandler) analisar(c *fiber.Ctx) (*dto.ConsumoAnaliseDTO, error) {
	codEmp := GetCodEmp(c)
	if codEmp == 0 {
		return nil, domain.ErrNaoAutorizado
	}
	var req dto.ConsumoAnaliseRequest
	if err := c.QueryParser(&req); err != nil {
		return nil, fmt.Errorf("query inválida: %w", domain.ErrEntradaInvalida)
	}
	return h.uc.Analisar(c.Context(), codEmp, req)
}

func (h *ConsumoHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrEntradaInvalida):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNaoEncontrado):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNaoAutorizado):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "cod_emp obrigatório"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
