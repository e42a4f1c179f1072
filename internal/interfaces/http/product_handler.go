package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ProductHandler catálogo de productos y sus taxonomías.
type ProductHandler struct {
	uc         *usecase.ProductUseCase
	taxonomyUC *usecase.TaxonomyUseCase
}

// NewProductHandler construye el handler de productos.
func NewProductHandler(uc *usecase.ProductUseCase, taxonomyUC *usecase.TaxonomyUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, taxonomyUC: taxonomyUC}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetAuthz(c).CompanyID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Buscar en el catálogo
// @Tags         products
// @Produce      json
// @Param        q         query  string  false  "texto (sin tildes ni mayúsculas)"
// @Param        category  query  string  false  "id de categoría o all"
// @Param        status    query  string  false  "ACTIVE|INACTIVE|ALL"
// @Param        uom       query  string  false  "unidad de medida"
// @Param        brand     query  string  false  "marca"
// @Param        sort      query  string  false  "nameAsc|skuAsc|priceAsc|priceDesc|createdDesc"
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Error: "query inválido"})
	}
	f := repository.ProductFilter{
		Q:          c.Query("q"),
		CategoryID: c.Query("category"),
		Status:     c.Query("status"),
		UoM:        c.Query("uom"),
		Brand:      c.Query("brand"),
		Sort:       c.Query("sort"),
	}
	out, err := h.uc.Search(c.Context(), GetAuthz(c).CompanyID, f, page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "product id"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetAuthz(c).CompanyID, c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return respondDomainError(c, domain.ErrNotFound)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (SKU inmutable)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "product id"
// @Param        body  body  dto.UpdateProductRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	out, err := h.uc.Update(GetAuthz(c).CompanyID, c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if out == nil {
		return respondDomainError(c, domain.ErrNotFound)
	}
	return c.JSON(out)
}

// ListCategories godoc
// @Summary      Categorías del tenant
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/products/categories [get]
func (h *ProductHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.taxonomyUC.ListCategories(GetAuthz(c).CompanyID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateNameRequest  true  "name"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/categories [post]
func (h *ProductHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateNameRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	out, err := h.taxonomyUC.CreateCategory(GetAuthz(c).CompanyID, in.Name)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RenameCategory godoc
// @Summary      Renombrar categoría
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RenameCategoryRequest  true  "id, name"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/categories [patch]
func (h *ProductHandler) RenameCategory(c *fiber.Ctx) error {
	var in dto.RenameCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
	}
	out, err := h.taxonomyUC.RenameCategory(GetAuthz(c).CompanyID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// nameListHandlers genera los tres handlers (GET/POST/PATCH) de una lista plana.
func (h *ProductHandler) nameListHandlers(kind string) (list, add, rename fiber.Handler) {
	list = func(c *fiber.Ctx) error {
		out, err := h.taxonomyUC.ListNames(GetAuthz(c).CompanyID, kind)
		if err != nil {
			return respondDomainError(c, err)
		}
		return c.JSON(out)
	}
	add = func(c *fiber.Ctx) error {
		var in dto.CreateNameRequest
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
		}
		name, err := h.taxonomyUC.AddName(GetAuthz(c).CompanyID, kind, in.Name)
		if err != nil {
			return respondDomainError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"name": name})
	}
	rename = func(c *fiber.Ctx) error {
		var in dto.RenameRequest
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Error: "cuerpo inválido"})
		}
		name, err := h.taxonomyUC.RenameName(GetAuthz(c).CompanyID, kind, in)
		if err != nil {
			return respondDomainError(c, err)
		}
		return c.JSON(fiber.Map{"name": name})
	}
	return list, add, rename
}
