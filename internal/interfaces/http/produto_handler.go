package http

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/aferraz/consumo-api/internal/application/dto"
	"github.com/aferraz/consumo-api/internal/application/usecase"
	"github.com/aferraz/consumo-api/internal/domain"
)

// ProdutoHandler trata as peticões HTTP do espelho de produtos (protegido).
type ProdutoHandler struct {
	uc *usecase.ProdutoUseCase
}

// NewProdutoHandler constrói o handler.
func NewProdutoHandler(uc *usecase.ProdutoUseCase) *ProdutoHandler {
	return &ProdutoHandler{uc: uc}
}

// Listar godoc
// @Summary      Listar produtos do espelho
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        busca   query  string  false  "Busca em descrição/referência"
// @Param        limit   query  int     false  "Limite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.ProdutoListResponse
// @Router       /api/produtos [get]
func (h *ProdutoHandler) Listar(c *fiber.Ctx) error {
	codEmp := GetCodEmp(c)
	if codEmp == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "cod_emp obrigatório"})
	}
	req := dto.ProdutoListRequest{Busca: c.Query("busca")}
	req.Limit = c.QueryInt("limit", 20)
	req.Offset = c.QueryInt("offset", 0)
	out, err := h.uc.Listar(c.Context(), codEmp, req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByCodigo godoc
// @Summary      Consultar produto por código
// @Tags         produtos
// @Security     Bearer
// @Produce      json
// @Param        codigo  path  int  true  "Código do produto (CODPROD)"
// @Success      200  {object}  dto.ProdutoDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produtos/{codigo} [get]
func (h *ProdutoHandler) GetByCodigo(c *fiber.Ctx) error {
	codEmp := GetCodEmp(c)
	if codEmp == 0 {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "cod_emp obrigatório"})
	}
	codProd, err := strconv.ParseInt(c.Params("codigo"), 10, 64)
	if err != nil || codProd <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "código numérico obrigatório"})
	}
	out, err := h.uc.GetByCodigo(c.Context(), codEmp, codProd)
	if err != nil {
		if errors.Is(err, domain.ErrNaoEncontrado) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produto não encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
