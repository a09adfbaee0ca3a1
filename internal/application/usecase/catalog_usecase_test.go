package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/catalogo-api/internal/application/dto"
	"github.com/tu-usuario/catalogo-api/internal/application/usecase"
	"github.com/tu-usuario/catalogo-api/internal/domain"
	"github.com/tu-usuario/catalogo-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// recordingImageStore registra qué se subió y qué se borró; puede forzarse a
// fallar en Store o en Remove.
type recordingImageStore struct {
	stored     []string
	removed    []string
	failStore  bool
	failRemove bool
	nextKey    int
}

func (s *recordingImageStore) Store(_ context.Context, _ io.Reader, _ int64, _, _ string) (*usecase.StoredImage, error) {
	if s.failStore {
		return nil, errors.New("object store caído")
	}
	s.nextKey++
	key := fmt.Sprintf("items/img-%d.png", s.nextKey)
	s.stored = append(s.stored, key)
	return &usecase.StoredImage{Key: key, URL: "http://cdn.local/" + key}, nil
}

func (s *recordingImageStore) Remove(_ context.Context, key string) error {
	s.removed = append(s.removed, key)
	if s.failRemove {
		return errors.New("object store caído")
	}
	return nil
}

type fakeCategoryRepo struct {
	byID   map[int64]*entity.Category
	nextID int64
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: map[int64]*entity.Category{}, nextID: 1}
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	for _, e := range r.byID {
		if e.CompanyID == c.CompanyID && e.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	c.ID = r.nextID
	r.nextID++
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, companyID, id int64) (*entity.Category, error) {
	c, ok := r.byID[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	return c, nil
}

func (r *fakeCategoryRepo) GetByName(_ context.Context, companyID int64, name string) (*entity.Category, error) {
	for _, c := range r.byID {
		if c.CompanyID == companyID && c.Name == name {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) ListByCompany(_ context.Context, companyID int64) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.byID {
		if c.CompanyID == companyID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	e, ok := r.byID[c.ID]
	if !ok || e.CompanyID != c.CompanyID {
		return domain.ErrNotFound
	}
	e.Name = c.Name
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, companyID, id int64) error {
	c, ok := r.byID[id]
	if !ok || c.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeSubcategoryRepo struct {
	byID   map[int64]*entity.Subcategory
	nextID int64
}

func newFakeSubcategoryRepo() *fakeSubcategoryRepo {
	return &fakeSubcategoryRepo{byID: map[int64]*entity.Subcategory{}, nextID: 1}
}

func (r *fakeSubcategoryRepo) Create(_ context.Context, s *entity.Subcategory) error {
	s.ID = r.nextID
	r.nextID++
	r.byID[s.ID] = s
	return nil
}

func (r *fakeSubcategoryRepo) GetByID(_ context.Context, companyID, id int64) (*entity.Subcategory, error) {
	s, ok := r.byID[id]
	if !ok || s.CompanyID != companyID {
		return nil, nil
	}
	return s, nil
}

func (r *fakeSubcategoryRepo) ListByCategory(_ context.Context, companyID, categoryID int64) ([]*entity.Subcategory, error) {
	var out []*entity.Subcategory
	for _, s := range r.byID {
		if s.CompanyID == companyID && s.CategoryID == categoryID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubcategoryRepo) Update(_ context.Context, s *entity.Subcategory) error {
	e, ok := r.byID[s.ID]
	if !ok || e.CompanyID != s.CompanyID {
		return domain.ErrNotFound
	}
	e.Name = s.Name
	return nil
}

func (r *fakeSubcategoryRepo) Delete(_ context.Context, companyID, id int64) error {
	s, ok := r.byID[id]
	if !ok || s.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type fakeItemRepo struct {
	byID     map[int64]*entity.Item
	nextID   int64
	failNext error // si está seteado, la próxima escritura falla con este error
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{byID: map[int64]*entity.Item{}, nextID: 1}
}

func (r *fakeItemRepo) takeFailure() error {
	err := r.failNext
	r.failNext = nil
	return err
}

func (r *fakeItemRepo) Create(_ context.Context, it *entity.Item) error {
	if err := r.takeFailure(); err != nil {
		return err
	}
	it.ID = r.nextID
	r.nextID++
	cp := *it
	r.byID[it.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, companyID, id int64) (*entity.Item, error) {
	it, ok := r.byID[id]
	if !ok || it.CompanyID != companyID {
		return nil, nil
	}
	cp := *it
	return &cp, nil
}

func (r *fakeItemRepo) ListBySubcategory(_ context.Context, companyID, subcategoryID int64) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, it := range r.byID {
		if it.CompanyID == companyID && it.SubcategoryID == subcategoryID {
			cp := *it
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) ListImageKeysBySubcategory(_ context.Context, companyID, subcategoryID int64) ([]string, error) {
	var keys []string
	for _, it := range r.byID {
		if it.CompanyID == companyID && it.SubcategoryID == subcategoryID && it.ImageKey != nil {
			keys = append(keys, *it.ImageKey)
		}
	}
	return keys, nil
}

func (r *fakeItemRepo) ListImageKeysByCategory(_ context.Context, companyID, categoryID int64) ([]string, error) {
	// El fake no modela la jerarquía completa; los tests la simulan con
	// subcategoryID == categoryID.
	return r.ListImageKeysBySubcategory(context.Background(), companyID, categoryID)
}

func (r *fakeItemRepo) Update(_ context.Context, it *entity.Item) error {
	if err := r.takeFailure(); err != nil {
		return err
	}
	e, ok := r.byID[it.ID]
	if !ok || e.CompanyID != it.CompanyID {
		return domain.ErrNotFound
	}
	e.Name = it.Name
	e.ImageURL = it.ImageURL
	e.ImageKey = it.ImageKey
	return nil
}

func (r *fakeItemRepo) Delete(_ context.Context, companyID, id int64) error {
	it, ok := r.byID[id]
	if !ok || it.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const companyID = int64(7)

func pngUpload() *usecase.ImageUpload {
	return &usecase.ImageUpload{
		Reader:      strings.NewReader("png-bytes"),
		Size:        9,
		ContentType: "image/png",
		Filename:    "foto.png",
	}
}

type itemFixture struct {
	uc       *usecase.ItemUseCase
	items    *fakeItemRepo
	subs     *fakeSubcategoryRepo
	images   *recordingImageStore
	subcatID int64
}

func newItemFixture(t *testing.T) *itemFixture {
	t.Helper()
	items := newFakeItemRepo()
	subs := newFakeSubcategoryRepo()
	images := &recordingImageStore{}

	sub := &entity.Subcategory{CompanyID: companyID, CategoryID: 1, Name: "Alicates", CategoryName: "Herramientas"}
	require.NoError(t, subs.Create(context.Background(), sub))

	return &itemFixture{
		uc:       usecase.NewItemUseCase(items, subs, images),
		items:    items,
		subs:     subs,
		images:   images,
		subcatID: sub.ID,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ItemUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestItemCreate_ConImagen(t *testing.T) {
	f := newItemFixture(t)

	out, err := f.uc.Create(context.Background(), companyID, dto.CreateItemRequest{
		Name: "Alicate Universal", SubcategoryID: f.subcatID,
	}, pngUpload())
	require.NoError(t, err)

	require.NotNil(t, out.ImageURL, "el ítem creado debe exponer la URL de su imagen")
	assert.Contains(t, *out.ImageURL, "http://cdn.local/")
	assert.Equal(t, "Alicates", out.SubcategoryName)
	assert.Equal(t, "Herramientas", out.CategoryName)
	assert.Len(t, f.images.stored, 1)
	assert.Empty(t, f.images.removed)
}

func TestItemCreate_SinImagen(t *testing.T) {
	f := newItemFixture(t)

	out, err := f.uc.Create(context.Background(), companyID, dto.CreateItemRequest{
		Name: "Alicate de Punta", SubcategoryID: f.subcatID,
	}, nil)
	require.NoError(t, err)

	assert.Nil(t, out.ImageURL)
	assert.Empty(t, f.images.stored, "sin upload no debe tocarse el object store")
}

func TestItemCreate_SubcategoriaAjena_ParentNotFound(t *testing.T) {
	f := newItemFixture(t)

	_, err := f.uc.Create(context.Background(), companyID+1, dto.CreateItemRequest{
		Name: "Alicate", SubcategoryID: f.subcatID,
	}, nil)
	assert.ErrorIs(t, err, domain.ErrParentNotFound,
		"la subcategoría de otra empresa se trata como inexistente")
}

func TestItemCreate_SubidaDeImagenFalla_NoSeCreaFila(t *testing.T) {
	f := newItemFixture(t)
	f.images.failStore = true

	_, err := f.uc.Create(context.Background(), companyID, dto.CreateItemRequest{
		Name: "Alicate", SubcategoryID: f.subcatID,
	}, pngUpload())
	require.Error(t, err)
	assert.Empty(t, f.items.byID, "sin imagen subida no debe quedar fila")
}

func TestItemCreate_InsertFalla_ImagenSubidaSeRetira(t *testing.T) {
	f := newItemFixture(t)
	f.items.failNext = domain.ErrDuplicate

	_, err := f.uc.Create(context.Background(), companyID, dto.CreateItemRequest{
		Name: "Alicate Universal", SubcategoryID: f.subcatID,
	}, pngUpload())
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	require.Len(t, f.images.stored, 1, "la imagen se sube antes del insert")
	assert.Equal(t, f.images.stored, f.images.removed,
		"si el insert falla, la imagen recién subida se retira")
}

func TestItemUpdate_ImagenNueva_ReemplazaYBorraLaVieja(t *testing.T) {
	f := newItemFixture(t)

	created, err := f.uc.Create(context.Background(), companyID, dto.CreateItemRequest{
		Name: "Alicate", SubcategoryID: f.subcatID,
	}, pngUpload())
	require.NoError(t, err)
	oldKey := f.images.stored[0]

	out, err := f.uc.Update(context.Background(), companyID, created.ID, dto.UpdateItemRequest{
		Name: "Alicate Renombrado",
	}, pngUpload())
	require.NoError(t, err)

	assert.Equal(t, "Alicate Renombrado", out.Name)
	require.NotNil(t, out.ImageURL)
	assert.NotContains(t, *out.ImageURL, oldKey, "la URL debe apuntar a la imagen nueva")
	assert.Contains(t, f.images.removed, oldKey, "la imagen anterior se borra tras persistir")
}

func TestItemUpdate_SinImagen_ConservaLaActual(t *testing.T) {
	f := newItemFixture(t)

	created, err := f.uc.Create(context.Background(), companyID, dto.CreateItemRequest{
		Name: "Alicate", SubcategoryID: f.subcatID,
	}, pngUpload())
	require.NoError(t, err)

	out, err := f.uc.Update(context.Background(), companyID, created.ID, dto.UpdateItemRequest{
		Name: "Alicate Renombrado",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, created.ImageURL, out.ImageURL)
	assert.Empty(t, f.images.removed)
}

func TestItemUpdate_BorradoDeImagenViejaFalla_LaOperacionIgualTermina(t *testing.T) {
	f := newItemFixture(t)

	created, err := f.uc.Create(context.Background(), companyID, dto.CreateItemRequest{
		Name: "Alicate", SubcategoryID: f.subcatID,
	}, pngUpload())
	require.NoError(t, err)

	f.images.failRemove = true
	out, err := f.uc.Update(context.Background(), companyID, created.ID, dto.UpdateItemRequest{
		Name: "Alicate Renombrado",
	}, pngUpload())

	require.NoError(t, err, "el fallo al borrar la imagen vieja no hace fallar la operación")
	assert.Equal(t, "Alicate Renombrado", out.Name)
}

func TestItemUpdate_Inexistente_NotFound(t *testing.T) {
	f := newItemFixture(t)

	_, err := f.uc.Update(context.Background(), companyID, 999, dto.UpdateItemRequest{Name: "X"}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemDelete_BorraFilaEImagen(t *testing.T) {
	f := newItemFixture(t)

	created, err := f.uc.Create(context.Background(), companyID, dto.CreateItemRequest{
		Name: "Alicate", SubcategoryID: f.subcatID,
	}, pngUpload())
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(context.Background(), companyID, created.ID))

	got, err := f.items.GetByID(context.Background(), companyID, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "la fila debe desaparecer")
	assert.Equal(t, f.images.stored, f.images.removed, "la imagen acompaña al ítem")
}

func TestItemDelete_FalloDelObjectStore_NoImpideElBorrado(t *testing.T) {
	f := newItemFixture(t)

	created, err := f.uc.Create(context.Background(), companyID, dto.CreateItemRequest{
		Name: "Alicate", SubcategoryID: f.subcatID,
	}, pngUpload())
	require.NoError(t, err)

	f.images.failRemove = true
	assert.NoError(t, f.uc.Delete(context.Background(), companyID, created.ID),
		"una imagen huérfana es aceptable; el borrado de la fila manda")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CategoryUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryCreate_DuplicadoEnLaMismaEmpresa(t *testing.T) {
	categories := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(categories, newFakeItemRepo(), &recordingImageStore{})

	_, err := uc.Create(context.Background(), companyID, dto.CreateCategoryRequest{Name: "Herramientas"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), companyID, dto.CreateCategoryRequest{Name: "Herramientas"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// El mismo nombre bajo otra empresa es válido.
	_, err = uc.Create(context.Background(), companyID+1, dto.CreateCategoryRequest{Name: "Herramientas"})
	assert.NoError(t, err)
}

func TestCategoryCreate_NombreVacio(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategoryRepo(), newFakeItemRepo(), &recordingImageStore{})

	_, err := uc.Create(context.Background(), companyID, dto.CreateCategoryRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryUpdate_DeOtraEmpresa_NotFound(t *testing.T) {
	categories := newFakeCategoryRepo()
	uc := usecase.NewCategoryUseCase(categories, newFakeItemRepo(), &recordingImageStore{})

	created, err := uc.Create(context.Background(), companyID, dto.CreateCategoryRequest{Name: "Herramientas"})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), companyID+1, created.ID, dto.UpdateCategoryRequest{Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"una fila ajena se reporta como inexistente, nunca como prohibida")
}

func TestCategoryDelete_LimpiaImagenesHuerfanas(t *testing.T) {
	categories := newFakeCategoryRepo()
	items := newFakeItemRepo()
	images := &recordingImageStore{}
	uc := usecase.NewCategoryUseCase(categories, items, images)

	created, err := uc.Create(context.Background(), companyID, dto.CreateCategoryRequest{Name: "Herramientas"})
	require.NoError(t, err)

	// Ítems colgando de la categoría (el fake usa subcategoryID como proxy).
	key := "items/huerfana.png"
	require.NoError(t, items.Create(context.Background(), &entity.Item{
		CompanyID: companyID, SubcategoryID: created.ID, Name: "Alicate", ImageKey: &key,
	}))

	require.NoError(t, uc.Delete(context.Background(), companyID, created.ID))
	assert.Contains(t, images.removed, key,
		"las imágenes de los ítems en cascada se intentan borrar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SubcategoryUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestSubcategoryCreate_CategoriaInexistente_ParentNotFound(t *testing.T) {
	uc := usecase.NewSubcategoryUseCase(newFakeSubcategoryRepo(), newFakeCategoryRepo(), newFakeItemRepo(), &recordingImageStore{})

	_, err := uc.Create(context.Background(), companyID, dto.CreateSubcategoryRequest{
		Name: "Alicates", CategoryID: 42,
	})
	assert.ErrorIs(t, err, domain.ErrParentNotFound)
}

func TestSubcategoryCreate_HeredaNombreDeCategoria(t *testing.T) {
	categories := newFakeCategoryRepo()
	subs := newFakeSubcategoryRepo()
	uc := usecase.NewSubcategoryUseCase(subs, categories, newFakeItemRepo(), &recordingImageStore{})

	category := &entity.Category{CompanyID: companyID, Name: "Herramientas"}
	require.NoError(t, categories.Create(context.Background(), category))

	out, err := uc.Create(context.Background(), companyID, dto.CreateSubcategoryRequest{
		Name: "Alicates", CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Herramientas", out.CategoryName)
}

func TestSubcategoryList_CategoriaDeOtraEmpresa_ParentNotFound(t *testing.T) {
	categories := newFakeCategoryRepo()
	uc := usecase.NewSubcategoryUseCase(newFakeSubcategoryRepo(), categories, newFakeItemRepo(), &recordingImageStore{})

	category := &entity.Category{CompanyID: companyID, Name: "Herramientas"}
	require.NoError(t, categories.Create(context.Background(), category))

	_, err := uc.ListByCategory(context.Background(), companyID+1, category.ID)
	assert.ErrorIs(t, err, domain.ErrParentNotFound)
}
