package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Custodia-api/internal/application/custody"
	"github.com/jhoicas/Custodia-api/internal/application/labels"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MintLabels        *labels.MintLabelsUseCase
	PrefixUC          *labels.PrefixUseCase
	RecordTransaction *custody.RecordTransactionUseCase
	HistoryUC         *custody.HistoryUseCase
	LabelsOutputDir   string
	JWTSecret         string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Labels (protegido; imprimir requiere rol operativo)
	labelsGroup := protected.Group("/labels")
	labelHandler := NewLabelHandler(deps.MintLabels, deps.LabelsOutputDir)
	labelsGroup.Post("/mint", RequireRole(RoleSupervisor, RoleBodeguero), labelHandler.Mint)
	labelsGroup.Post("/render", RequireRole(RoleSupervisor, RoleBodeguero), labelHandler.Render)

	// Prefixes (listar abierto a autenticados; agregar solo supervisores)
	prefixes := protected.Group("/prefixes")
	prefixHandler := NewPrefixHandler(deps.PrefixUC)
	prefixes.Get("/", prefixHandler.List)
	prefixes.Post("/", RequireRole(RoleSupervisor), prefixHandler.Add)

	// Transacciones de custodia (protegido)
	invGroup := protected.Group("/inventory")
	transactionHandler := NewTransactionHandler(deps.RecordTransaction, deps.HistoryUC)
	invGroup.Post("/transactions", RequireRole(RoleSupervisor, RoleBodeguero), transactionHandler.Record)
	invGroup.Get("/transactions", transactionHandler.List)

	// Consultas de códigos y asignaciones (protegido)
	barcodeHandler := NewBarcodeHandler(deps.HistoryUC)
	protected.Get("/barcodes/:value", barcodeHandler.Lookup)
	invGroup.Get("/allocations", barcodeHandler.GetAllocation)
}
