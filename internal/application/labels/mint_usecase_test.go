package labels_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Custodia-api/internal/application/dto"
	"github.com/jhoicas/Custodia-api/internal/application/labels"
	"github.com/jhoicas/Custodia-api/internal/domain"
	"github.com/jhoicas/Custodia-api/internal/domain/entity"
	"github.com/jhoicas/Custodia-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El fake del registro de códigos imita el contrato real:
// LastValueByPrefix devuelve el máximo lexicográfico y LockPrefix serializa a
// los llamantes concurrentes del mismo prefijo (mutex por prefijo en lugar de
// advisory lock de PostgreSQL).
// ──────────────────────────────────────────────────────────────────────────────

type memBarcodeRepo struct {
	mu       sync.Mutex
	locks    map[string]*sync.Mutex
	byValue  map[string]*entity.Barcode
	created  []string // valores en orden de inserción
	createMu sync.Mutex
}

func newMemBarcodeRepo() *memBarcodeRepo {
	return &memBarcodeRepo{
		locks:   map[string]*sync.Mutex{},
		byValue: map[string]*entity.Barcode{},
	}
}

func (r *memBarcodeRepo) prefixLock(prefix string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.locks[prefix]; !ok {
		r.locks[prefix] = &sync.Mutex{}
	}
	return r.locks[prefix]
}

// LockPrefix bloquea hasta que el prefijo quede libre; unlockPrefix lo libera
// al "confirmar la transacción" (ver memMintTxRunner).
func (r *memBarcodeRepo) LockPrefix(prefix string) error {
	r.prefixLock(prefix).Lock()
	return nil
}

func (r *memBarcodeRepo) unlockPrefix(prefix string) {
	r.prefixLock(prefix).Unlock()
}

func (r *memBarcodeRepo) Create(b *entity.Barcode) error {
	r.createMu.Lock()
	defer r.createMu.Unlock()
	if _, dup := r.byValue[b.BarcodeValue]; dup {
		return domain.ErrDuplicate
	}
	r.byValue[b.BarcodeValue] = b
	r.created = append(r.created, b.BarcodeValue)
	return nil
}

// LastValueByPrefix imita el contrato real: solo cuentan los valores con
// sufijo completamente numérico, de modo que un prefijo solapado más largo
// ("BXA" junto a "BX") no contamina el máximo de la familia corta.
func (r *memBarcodeRepo) LastValueByPrefix(prefix string) (string, error) {
	r.createMu.Lock()
	defer r.createMu.Unlock()
	last := ""
	for v := range r.byValue {
		if numericSuffixOf(prefix, v) && v > last {
			last = v
		}
	}
	return last, nil
}

func numericSuffixOf(prefix, value string) bool {
	if len(value) <= len(prefix) || value[:len(prefix)] != prefix {
		return false
	}
	for _, c := range value[len(prefix):] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (r *memBarcodeRepo) GetByValueOrSerial(value string) (*entity.Barcode, error) {
	return r.byValue[value], nil
}

func (r *memBarcodeRepo) GetByValueOrSerialForUpdate(value string) (*entity.Barcode, error) {
	return r.byValue[value], nil
}

func (r *memBarcodeRepo) ListByValues(values []string) ([]*entity.Barcode, error) {
	out := []*entity.Barcode{}
	for _, v := range values {
		if b, ok := r.byValue[v]; ok {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BarcodeValue < out[j].BarcodeValue })
	return out, nil
}

func (r *memBarcodeRepo) UpdateStatus(id, status string) error { return nil }

type memProductRepo struct {
	products map[string]*entity.Product
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

type memPrefixRepo struct {
	mu    sync.Mutex
	codes map[string]bool
}

func (r *memPrefixRepo) Create(p *entity.BarcodePrefix) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.codes[p.Code] {
		return domain.ErrDuplicate
	}
	r.codes[p.Code] = true
	return nil
}

func (r *memPrefixRepo) List() ([]*entity.BarcodePrefix, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*entity.BarcodePrefix{}
	for code := range r.codes {
		out = append(out, &entity.BarcodePrefix{Code: code})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *memPrefixRepo) Exists(code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codes[code], nil
}

// memMintTxRunner pasa los repos compartidos a fn y libera el lock del
// prefijo al terminar, como haría el commit de la transacción real.
type memMintTxRunner struct {
	barcodes *memBarcodeRepo
	products *memProductRepo
}

func (tr *memMintTxRunner) RunMint(_ context.Context, fn func(
	repository.BarcodeRepository,
	repository.ProductRepository,
) error) error {
	locked := &lockTrackingRepo{memBarcodeRepo: tr.barcodes}
	err := fn(locked, tr.products)
	locked.releaseAll()
	return err
}

// lockTrackingRepo recuerda qué prefijos bloqueó fn para soltarlos al final.
type lockTrackingRepo struct {
	*memBarcodeRepo
	held []string
}

func (r *lockTrackingRepo) LockPrefix(prefix string) error {
	if err := r.memBarcodeRepo.LockPrefix(prefix); err != nil {
		return err
	}
	r.held = append(r.held, prefix)
	return nil
}

func (r *lockTrackingRepo) releaseAll() {
	for _, p := range r.held {
		r.memBarcodeRepo.unlockPrefix(p)
	}
	r.held = nil
}

// Rasterizador configurable: falla según los flags y registra qué opciones
// recibió cada invocación.
type stubRasterizer struct {
	mu           sync.Mutex
	failScaled   bool
	failUnscaled bool
	calls        []labels.SymbolOptions
}

func (s *stubRasterizer) Rasterize(value string, opts labels.SymbolOptions) ([]byte, error) {
	s.mu.Lock()
	s.calls = append(s.calls, opts)
	s.mu.Unlock()
	if opts.Scaled && s.failScaled {
		return nil, fmt.Errorf("escalado no soportado")
	}
	if !opts.Scaled && s.failUnscaled {
		return nil, fmt.Errorf("rasterizado crudo fallido")
	}
	return []byte("png:" + value), nil
}

type stubSheetRenderer struct{}

func (stubSheetRenderer) RenderSheet(_ context.Context, cells []labels.LabelCell) ([]byte, error) {
	return []byte(fmt.Sprintf("pdf:%d", len(cells))), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado del escenario
// ──────────────────────────────────────────────────────────────────────────────

const testProductID = "prod-1"

type fixture struct {
	uc         *labels.MintLabelsUseCase
	barcodes   *memBarcodeRepo
	prefixes   *memPrefixRepo
	rasterizer *stubRasterizer
}

func newFixture() *fixture {
	barcodes := newMemBarcodeRepo()
	products := &memProductRepo{products: map[string]*entity.Product{
		testProductID: {ID: testProductID, SKU: "GUANTE-N9", Name: "Guante nitrilo talla 9", BoxQuantity: 12},
	}}
	prefixes := &memPrefixRepo{codes: map[string]bool{}}
	rasterizer := &stubRasterizer{}
	symbols := labels.NewSymbolStrategy(
		rasterizer,
		labels.SymbolOptions{WidthPx: 360, HeightPx: 96, Scaled: true},
		labels.SymbolOptions{Scaled: false},
	)
	uc := labels.NewMintLabelsUseCase(
		&memMintTxRunner{barcodes: barcodes, products: products},
		barcodes, products, prefixes, symbols, stubSheetRenderer{}, "BX",
	)
	return &fixture{uc: uc, barcodes: barcodes, prefixes: prefixes, rasterizer: rasterizer}
}

func mintRequest(count int, prefix string) dto.MintLabelsRequest {
	return dto.MintLabelsRequest{ProductID: testProductID, Count: count, Prefix: prefix}
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación del lote — ocurre antes de tocar el almacenamiento
// ──────────────────────────────────────────────────────────────────────────────

func TestMintLabels_CountFueraDeRango(t *testing.T) {
	f := newFixture()

	for _, count := range []int{0, -1, 101} {
		_, err := f.uc.MintLabels(context.Background(), mintRequest(count, "BX"))
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "count=%d debe rechazarse", count)
	}
	assert.Empty(t, f.barcodes.created, "un lote inválido no debe reservar seriales")
}

func TestMintLabels_PrefijoMalformado(t *testing.T) {
	f := newFixture()

	for _, prefix := range []string{"bx1", "B", "ABCDE", "B2X"} {
		_, err := f.uc.MintLabels(context.Background(), mintRequest(3, prefix))
		assert.True(t, errors.Is(err, domain.ErrInvalidInput), "prefijo %q debe rechazarse", prefix)
	}
	assert.Empty(t, f.barcodes.created)
}

// Prefijo bien formado pero fuera de la lista blanca.
func TestMintLabels_PrefijoNoHabilitado(t *testing.T) {
	f := newFixture()

	_, err := f.uc.MintLabels(context.Background(), mintRequest(3, "ZZ"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Empty(t, f.barcodes.created)
}

// Un prefijo personalizado persistido sí habilita la impresión.
func TestMintLabels_PrefijoPersonalizadoHabilitado(t *testing.T) {
	f := newFixture()
	f.prefixes.codes["ZZ"] = true

	out, err := f.uc.MintLabels(context.Background(), mintRequest(2, "ZZ"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ZZ000001", "ZZ000002"}, f.barcodes.created)
	assert.Len(t, out.Barcodes, 2)
}

func TestMintLabels_ProductoInexistente(t *testing.T) {
	f := newFixture()

	_, err := f.uc.MintLabels(context.Background(), dto.MintLabelsRequest{
		ProductID: "prod-fantasma", Count: 3, Prefix: "BX",
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Empty(t, f.barcodes.created)
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignación de seriales
// ──────────────────────────────────────────────────────────────────────────────

func TestMintLabels_PrimerLoteArrancaEnUno(t *testing.T) {
	f := newFixture()

	out, err := f.uc.MintLabels(context.Background(), mintRequest(3, ""))
	require.NoError(t, err)

	assert.Equal(t, []string{"BX000001", "BX000002", "BX000003"}, f.barcodes.created,
		"prefijo vacío usa el prefijo por defecto y arranca en 000001")
	require.Len(t, out.Barcodes, 3)
	assert.Equal(t, "BX000001", out.Barcodes[0].BarcodeValue)
	assert.Equal(t, out.Barcodes[0].BarcodeValue, out.Barcodes[0].SerialNumber,
		"al imprimir, serial_number coincide con barcode_value")
	assert.Equal(t, entity.BarcodeStatusAvailable, out.Barcodes[0].Status)
	assert.Equal(t, 12, out.Barcodes[0].BoxQuantity,
		"la cantidad de caja se congela del producto al imprimir")
	assert.NotEmpty(t, out.Sheet, "el lote exitoso incluye la hoja")
}

func TestMintLabels_LotesSucesivosContiguos(t *testing.T) {
	f := newFixture()

	_, err := f.uc.MintLabels(context.Background(), mintRequest(3, "BX"))
	require.NoError(t, err)
	out, err := f.uc.MintLabels(context.Background(), mintRequest(2, "BX"))
	require.NoError(t, err)

	assert.Equal(t, "BX000004", out.Barcodes[0].BarcodeValue)
	assert.Equal(t, "BX000005", out.Barcodes[1].BarcodeValue)
}

// Un prefijo personalizado que solapa a uno por defecto ("BXA" empieza por
// "BX") no debe romper la numeración del corto: el máximo de "BX" solo
// considera valores con sufijo numérico, así que "BXA000001" no cuenta.
func TestMintLabels_PrefijoSolapadoNoContaminaElCorto(t *testing.T) {
	f := newFixture()
	f.prefixes.codes["BXA"] = true

	_, err := f.uc.MintLabels(context.Background(), mintRequest(1, "BXA"))
	require.NoError(t, err)
	require.Equal(t, []string{"BXA000001"}, f.barcodes.created)

	out, err := f.uc.MintLabels(context.Background(), mintRequest(2, "BX"))
	require.NoError(t, err, "imprimir BX debe seguir funcionando con BXA presente")
	assert.Equal(t, "BX000001", out.Barcodes[0].BarcodeValue)
	assert.Equal(t, "BX000002", out.Barcodes[1].BarcodeValue)

	// Y al revés: los valores BX tampoco alteran la numeración de BXA.
	out, err = f.uc.MintLabels(context.Background(), mintRequest(1, "BXA"))
	require.NoError(t, err)
	assert.Equal(t, "BXA000002", out.Barcodes[0].BarcodeValue)
}

// Prefijos distintos llevan numeraciones independientes.
func TestMintLabels_PrefijosIndependientes(t *testing.T) {
	f := newFixture()

	_, err := f.uc.MintLabels(context.Background(), mintRequest(2, "BX"))
	require.NoError(t, err)
	out, err := f.uc.MintLabels(context.Background(), mintRequest(2, "CJ"))
	require.NoError(t, err)

	assert.Equal(t, "CJ000001", out.Barcodes[0].BarcodeValue,
		"cada prefijo arranca su propia numeración")
}

// Impresiones concurrentes del mismo prefijo: el lock por prefijo garantiza
// lotes disjuntos y contiguos, sin seriales duplicados ni huecos.
func TestMintLabels_ConcurrenciaSinDuplicados(t *testing.T) {
	f := newFixture()

	const workers = 8
	const perBatch = 5

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.uc.MintLabels(context.Background(), mintRequest(perBatch, "BX"))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "worker %d", i)
	}

	require.Len(t, f.barcodes.created, workers*perBatch)
	seen := map[string]bool{}
	for _, v := range f.barcodes.created {
		assert.False(t, seen[v], "serial duplicado: %s", v)
		seen[v] = true
	}
	// Sin huecos: exactamente los ordinales 1..workers*perBatch.
	for k := 1; k <= workers*perBatch; k++ {
		assert.True(t, seen[fmt.Sprintf("BX%06d", k)], "falta el ordinal %d", k)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Render: primario, respaldo y falla total
// ──────────────────────────────────────────────────────────────────────────────

func TestMintLabels_RespaldoCuandoElPrimarioFalla(t *testing.T) {
	f := newFixture()
	f.rasterizer.failScaled = true

	out, err := f.uc.MintLabels(context.Background(), mintRequest(2, "BX"))
	require.NoError(t, err, "la falla del primario no aborta si el respaldo funciona")
	assert.NotEmpty(t, out.Sheet)

	// Por cada símbolo: un intento escalado fallido y uno crudo exitoso.
	scaled, unscaled := 0, 0
	for _, c := range f.rasterizer.calls {
		if c.Scaled {
			scaled++
		} else {
			unscaled++
		}
	}
	assert.Equal(t, 2, scaled)
	assert.Equal(t, 2, unscaled)
}

// Ambos rasterizados fallan: el error es ErrRenderFailed pero los seriales
// YA quedaron persistidos y vienen en la salida para reintentar solo el render.
func TestMintLabels_FallaTotalDeRenderConservaSeriales(t *testing.T) {
	f := newFixture()
	f.rasterizer.failScaled = true
	f.rasterizer.failUnscaled = true

	out, err := f.uc.MintLabels(context.Background(), mintRequest(3, "BX"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrRenderFailed))

	assert.Equal(t, []string{"BX000001", "BX000002", "BX000003"}, f.barcodes.created,
		"los seriales no se revierten por una falla de render")
	require.NotNil(t, out, "la salida acompaña al error para que el caller reintente")
	assert.Len(t, out.Barcodes, 3)
	assert.Empty(t, out.Sheet)
}

// Reintento tras falla de render: RenderExisting regenera la hoja sin
// re-asignar seriales.
func TestRenderExisting_ReimprimeSinReasignar(t *testing.T) {
	f := newFixture()
	f.rasterizer.failScaled = true
	f.rasterizer.failUnscaled = true

	out, err := f.uc.MintLabels(context.Background(), mintRequest(3, "BX"))
	require.Error(t, err)

	// El operador reintenta una vez resuelta la causa de la falla.
	f.rasterizer.failScaled = false
	f.rasterizer.failUnscaled = false

	values := make([]string, 0, len(out.Barcodes))
	for _, b := range out.Barcodes {
		values = append(values, b.BarcodeValue)
	}
	retry, err := f.uc.RenderExisting(context.Background(), values)
	require.NoError(t, err)

	assert.NotEmpty(t, retry.Sheet)
	assert.Len(t, retry.Barcodes, 3)
	assert.Len(t, f.barcodes.created, 3, "el reintento no debe crear seriales nuevos")
}

func TestRenderExisting_ValorDesconocido(t *testing.T) {
	f := newFixture()

	_, err := f.uc.MintLabels(context.Background(), mintRequest(2, "BX"))
	require.NoError(t, err)

	_, err = f.uc.RenderExisting(context.Background(), []string{"BX000001", "BX999999"})
	assert.True(t, errors.Is(err, domain.ErrNotFound),
		"un valor inexistente en el lote de reimpresión debe fallar completo")
}
