package http

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/tu-usuario/catalogo-api/internal/application/dto"
	"github.com/tu-usuario/catalogo-api/internal/application/usecase"
)

// maxImageSize límite de tamaño de la imagen adjunta (5MB).
const maxImageSize = 5 << 20

// allowedImageExts extensiones de imagen aceptadas en el campo multipart.
var allowedImageExts = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// ItemHandler CRUD de ítems con imagen opcional vía multipart.
type ItemHandler struct {
	uc *usecase.ItemUseCase
}

// NewItemHandler construye el handler inyectando el caso de uso.
func NewItemHandler(uc *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

// ListBySubcategory godoc
// @Summary      Listar ítems de una subcategoría
// @Tags         items
// @Produce      json
// @Param        subcategoryID  path  int  true  "ID de la subcategoría"
// @Success      200  {object}  dto.ItemListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{subcategoryID} [get]
func (h *ItemHandler) ListBySubcategory(c *fiber.Ctx) error {
	subcategoryID, ok := parseID(c, "subcategoryID")
	if !ok {
		return nil
	}
	out, err := h.uc.ListBySubcategory(c.UserContext(), GetCompanyID(c), subcategoryID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear ítem
// @Description  Acepta multipart/form-data con campos name, subcategory_id y
// @Description  un archivo opcional "image" (jpeg/jpg/png/gif/webp, máx 5MB).
// @Tags         items
// @Accept       multipart/form-data
// @Produce      json
// @Success      201  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	upload, file, ok := imageFromForm(c)
	if !ok {
		return nil
	}
	if file != nil {
		defer file.Close()
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in, upload)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar ítem
// @Description  Renombra el ítem; si llega un archivo "image" reemplaza la
// @Description  imagen anterior.
// @Tags         items
// @Accept       multipart/form-data
// @Produce      json
// @Param        id  path  int  true  "ID del ítem"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	upload, file, ok := imageFromForm(c)
	if !ok {
		return nil
	}
	if file != nil {
		defer file.Close()
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), id, in, upload)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ítem
// @Tags         items
// @Produce      json
// @Param        id   path  int  true  "ID del ítem"
// @Success      200  {object}  dto.StatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StatusResponse{Success: true})
}

// imageFromForm extrae el archivo "image" del formulario si viene. Valida
// extensión y tamaño antes de abrirlo. Cuando ok es false ya se escribió la
// respuesta de error; el caller devuelve nil. El multipart.File devuelto debe
// cerrarse tras consumir el upload.
func imageFromForm(c *fiber.Ctx) (*usecase.ImageUpload, multipart.File, bool) {
	header, err := c.FormFile("image")
	if err != nil {
		// sin archivo adjunto: operación sin imagen
		if errors.Is(err, fasthttp.ErrMissingFile) {
			return nil, nil, true
		}
		// el formulario llegó pero no parsea como multipart válido
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_BODY",
			Message: "formulario multipart inválido",
		})
		return nil, nil, false
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedImageExts[ext] {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_IMAGE",
			Message: "formato de imagen no soportado (jpeg, jpg, png, gif, webp)",
		})
		return nil, nil, false
	}
	if header.Size > maxImageSize {
		_ = c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
			Code:    "IMAGE_TOO_LARGE",
			Message: "la imagen supera el máximo de 5MB",
		})
		return nil, nil, false
	}
	file, err := header.Open()
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "INVALID_IMAGE",
			Message: "no se pudo leer la imagen adjunta",
		})
		return nil, nil, false
	}
	upload := &usecase.ImageUpload{
		Reader:      file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	}
	return upload, file, true
}
