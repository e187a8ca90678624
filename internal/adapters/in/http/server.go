// Package http is the inbound HTTP adapter. It translates the JSON API into
// commands and queries and maps domain errors onto HTTP status codes.
package http

import (
	"net/http"
	"strconv"

	"workshop/internal/core/application/usecases/commands"
	"workshop/internal/core/application/usecases/queries"
	"workshop/internal/core/domain/model/kernel"
	"workshop/internal/core/domain/model/order"
	"workshop/internal/core/domain/model/pricing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler         commands.CreateOrderCommandHandler
	updateOrderInfoHandler     commands.UpdateOrderInfoCommandHandler
	changeOrderStatusHandler   commands.ChangeOrderStatusCommandHandler
	updatePaymentStatusHandler commands.UpdatePaymentStatusCommandHandler
	lockOrderHandler           commands.LockOrderCommandHandler
	unlockOrderHandler         commands.UnlockOrderCommandHandler
	addSectionHandler          commands.AddSectionCommandHandler
	removeSectionHandler       commands.RemoveSectionCommandHandler
	addItemHandler             commands.AddItemToSectionCommandHandler
	removeItemHandler          commands.RemoveItemFromSectionCommandHandler
	createModifierHandler      commands.CreatePriceModifierCommandHandler
	updateModifierHandler      commands.UpdatePriceModifierCommandHandler
	activateModifierHandler    commands.ActivatePriceModifierCommandHandler
	deactivateModifierHandler  commands.DeactivatePriceModifierCommandHandler

	// Query handlers
	getOrderHandler              queries.GetOrderQueryHandler
	getOrdersHandler             queries.GetOrdersQueryHandler
	calculatePriceHandler        queries.CalculatePriceQueryHandler
	calculateProductPriceHandler queries.CalculateProductPriceQueryHandler
}

// ServerHandlers bundles the use case handlers the server depends on.
type ServerHandlers struct {
	CreateOrder           commands.CreateOrderCommandHandler
	UpdateOrderInfo       commands.UpdateOrderInfoCommandHandler
	ChangeOrderStatus     commands.ChangeOrderStatusCommandHandler
	UpdatePaymentStatus   commands.UpdatePaymentStatusCommandHandler
	LockOrder             commands.LockOrderCommandHandler
	UnlockOrder           commands.UnlockOrderCommandHandler
	AddSection            commands.AddSectionCommandHandler
	RemoveSection         commands.RemoveSectionCommandHandler
	AddItem               commands.AddItemToSectionCommandHandler
	RemoveItem            commands.RemoveItemFromSectionCommandHandler
	CreateModifier        commands.CreatePriceModifierCommandHandler
	UpdateModifier        commands.UpdatePriceModifierCommandHandler
	ActivateModifier      commands.ActivatePriceModifierCommandHandler
	DeactivateModifier    commands.DeactivatePriceModifierCommandHandler
	GetOrder              queries.GetOrderQueryHandler
	GetOrders             queries.GetOrdersQueryHandler
	CalculatePrice        queries.CalculatePriceQueryHandler
	CalculateProductPrice queries.CalculateProductPriceQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers ServerHandlers) *Server {
	return &Server{
		createOrderHandler:           handlers.CreateOrder,
		updateOrderInfoHandler:       handlers.UpdateOrderInfo,
		changeOrderStatusHandler:     handlers.ChangeOrderStatus,
		updatePaymentStatusHandler:   handlers.UpdatePaymentStatus,
		lockOrderHandler:             handlers.LockOrder,
		unlockOrderHandler:           handlers.UnlockOrder,
		addSectionHandler:            handlers.AddSection,
		removeSectionHandler:         handlers.RemoveSection,
		addItemHandler:               handlers.AddItem,
		removeItemHandler:            handlers.RemoveItem,
		createModifierHandler:        handlers.CreateModifier,
		updateModifierHandler:        handlers.UpdateModifier,
		activateModifierHandler:      handlers.ActivateModifier,
		deactivateModifierHandler:    handlers.DeactivateModifier,
		getOrderHandler:              handlers.GetOrder,
		getOrdersHandler:             handlers.GetOrders,
		calculatePriceHandler:        handlers.CalculatePrice,
		calculateProductPriceHandler: handlers.CalculateProductPrice,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.PUT("/orders/:orderId", s.UpdateOrder)
	api.POST("/orders/:orderId/status", s.ChangeOrderStatus)
	api.POST("/orders/:orderId/payment-status", s.ChangePaymentStatus)
	api.POST("/orders/:orderId/lock", s.LockOrder)
	api.POST("/orders/:orderId/unlock", s.UnlockOrder)
	api.POST("/orders/:orderId/sections", s.AddSection)
	api.DELETE("/orders/:orderId/sections/:sectionNumber", s.RemoveSection)
	api.POST("/orders/:orderId/sections/:sectionNumber/items", s.AddItem)
	api.DELETE("/orders/:orderId/sections/:sectionNumber/items/:itemId", s.RemoveItem)

	api.POST("/modifiers", s.CreateModifier)
	api.PUT("/modifiers/:modifierId", s.UpdateModifier)
	api.POST("/modifiers/:modifierId/activate", s.ActivateModifier)
	api.POST("/modifiers/:modifierId/deactivate", s.DeactivateModifier)

	api.POST("/pricing/calculate", s.CalculatePrice)
	api.POST("/pricing/products/calculate", s.CalculateProductPrice)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request CreateOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID,
		request.ClientID,
		request.ClientName,
		request.Deadline,
		request.Notes,
	)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	// The order number is generated inside the creation transaction, so it
	// has to be read back for the response.
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return fail(ctx, err)
	}
	created, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		ID:          orderID.String(),
		OrderNumber: created.OrderNumber,
	})
}

// GetOrders handles GET /api/v1/orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	var clientID int64
	if raw := ctx.QueryParam("clientId"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return badRequest(ctx, "Invalid clientId")
		}
		clientID = parsed
	}

	from, err := optionalTimeParam(ctx, "from")
	if err != nil {
		return badRequest(ctx, "Invalid from date")
	}
	to, err := optionalTimeParam(ctx, "to")
	if err != nil {
		return badRequest(ctx, "Invalid to date")
	}

	query, err := queries.NewGetOrdersQuery(clientID, ctx.QueryParam("status"), from, to)
	if err != nil {
		return fail(ctx, err)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	response := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		response = append(response, OrderSummary{
			ID:            o.ID.String(),
			OrderNumber:   o.OrderNumber,
			ClientID:      o.ClientID,
			ClientName:    o.ClientName,
			Status:        o.Status,
			PaymentStatus: o.PaymentStatus,
			Deadline:      o.Deadline,
			TotalAmount:   o.TotalAmount,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return fail(ctx, err)
	}

	orderView, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderView(orderView))
}

// UpdateOrder handles PUT /api/v1/orders/{orderId}.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request UpdateOrderRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateOrderInfoCommand(orderID, request.ClientName, request.Deadline, request.Notes)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.updateOrderInfoHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangeOrderStatus handles POST /api/v1/orders/{orderId}/status.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request ChangeStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := order.StatusFromString(request.Status)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, status)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ChangePaymentStatus handles POST /api/v1/orders/{orderId}/payment-status.
func (s *Server) ChangePaymentStatus(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request ChangePaymentStatusRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	paymentStatus, err := order.PaymentStatusFromString(request.PaymentStatus)
	if err != nil {
		return fail(ctx, err)
	}

	cmd, err := commands.NewUpdatePaymentStatusCommand(orderID, paymentStatus)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.updatePaymentStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// LockOrder handles POST /api/v1/orders/{orderId}/lock.
func (s *Server) LockOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request LockRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewLockOrderCommand(orderID, request.UserID)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.lockOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UnlockOrder handles POST /api/v1/orders/{orderId}/unlock.
func (s *Server) UnlockOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request LockRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUnlockOrderCommand(orderID, request.UserID)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.unlockOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddSection handles POST /api/v1/orders/{orderId}/sections.
func (s *Server) AddSection(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var request AddSectionRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	var headerID *kernel.UUID
	if request.HeaderID != nil {
		parsed, parseErr := kernel.UUIDFromString(*request.HeaderID)
		if parseErr != nil {
			return badRequest(ctx, "Invalid header id")
		}
		headerID = &parsed
	}

	cmd, err := commands.NewAddSectionCommand(orderID, request.SectionNumber, request.Name, headerID, request.Description)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.addSectionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// RemoveSection handles DELETE /api/v1/orders/{orderId}/sections/{sectionNumber}.
func (s *Server) RemoveSection(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	sectionNumber, err := strconv.Atoi(ctx.Param("sectionNumber"))
	if err != nil {
		return badRequest(ctx, "Invalid section number")
	}

	cmd, err := commands.NewRemoveSectionCommand(orderID, sectionNumber)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.removeSectionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddItem handles POST /api/v1/orders/{orderId}/sections/{sectionNumber}/items.
func (s *Server) AddItem(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	sectionNumber, err := strconv.Atoi(ctx.Param("sectionNumber"))
	if err != nil {
		return badRequest(ctx, "Invalid section number")
	}

	var request AddItemRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	productID, err := kernel.UUIDFromString(request.ProductID)
	if err != nil {
		return badRequest(ctx, "Invalid product id")
	}

	properties := make([]commands.ItemProperty, 0, len(request.Properties))
	for _, property := range request.Properties {
		propertyID, parseErr := kernel.UUIDFromString(property.PropertyID)
		if parseErr != nil {
			return badRequest(ctx, "Invalid property id")
		}
		properties = append(properties, commands.ItemProperty{
			PropertyID:   propertyID,
			PropertyCode: property.PropertyCode,
			PropertyName: property.PropertyName,
			Value:        property.Value,
		})
	}

	itemID := kernel.NewUUID()
	cmd, err := commands.NewAddItemToSectionCommand(
		orderID,
		sectionNumber,
		itemID,
		productID,
		request.Quantity,
		request.Unit,
		request.Coefficient,
		properties,
	)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.addItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, AddItemResponse{ID: itemID.String()})
}

// RemoveItem handles DELETE /api/v1/orders/{orderId}/sections/{sectionNumber}/items/{itemId}.
func (s *Server) RemoveItem(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	sectionNumber, err := strconv.Atoi(ctx.Param("sectionNumber"))
	if err != nil {
		return badRequest(ctx, "Invalid section number")
	}

	itemID, err := pathUUID(ctx, "itemId")
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	cmd, err := commands.NewRemoveItemFromSectionCommand(orderID, sectionNumber, itemID)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.removeItemHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateModifier handles POST /api/v1/modifiers.
func (s *Server) CreateModifier(ctx echo.Context) error {
	var request ModifierRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	modifierType, err := pricing.ModifierTypeFromString(request.Type)
	if err != nil {
		return fail(ctx, err)
	}

	options, err := modifierOptions(request)
	if err != nil {
		return badRequest(ctx, "Invalid property id")
	}

	modifierID := kernel.NewUUID()
	cmd, err := commands.NewCreatePriceModifierCommand(
		modifierID,
		request.Code,
		request.Name,
		modifierType,
		decimal.NewFromFloat(request.Value),
		request.Priority,
		options,
	)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.createModifierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateModifierResponse{ID: modifierID.String()})
}

// UpdateModifier handles PUT /api/v1/modifiers/{modifierId}.
func (s *Server) UpdateModifier(ctx echo.Context) error {
	modifierID, err := pathUUID(ctx, "modifierId")
	if err != nil {
		return badRequest(ctx, "Invalid modifier id")
	}

	var request ModifierRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	options, err := modifierOptions(request)
	if err != nil {
		return badRequest(ctx, "Invalid property id")
	}

	cmd, err := commands.NewUpdatePriceModifierCommand(
		modifierID,
		request.Name,
		decimal.NewFromFloat(request.Value),
		request.Priority,
		options,
	)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.updateModifierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ActivateModifier handles POST /api/v1/modifiers/{modifierId}/activate.
func (s *Server) ActivateModifier(ctx echo.Context) error {
	modifierID, err := pathUUID(ctx, "modifierId")
	if err != nil {
		return badRequest(ctx, "Invalid modifier id")
	}

	cmd, err := commands.NewActivatePriceModifierCommand(modifierID)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.activateModifierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeactivateModifier handles POST /api/v1/modifiers/{modifierId}/deactivate.
func (s *Server) DeactivateModifier(ctx echo.Context) error {
	modifierID, err := pathUUID(ctx, "modifierId")
	if err != nil {
		return badRequest(ctx, "Invalid modifier id")
	}

	cmd, err := commands.NewDeactivatePriceModifierCommand(modifierID)
	if err != nil {
		return fail(ctx, err)
	}

	if err = s.deactivateModifierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return fail(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CalculatePrice handles POST /api/v1/pricing/calculate.
func (s *Server) CalculatePrice(ctx echo.Context) error {
	var request CalculatePriceRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	query, err := queries.NewCalculatePriceQuery(
		request.BasePrice,
		request.Quantity,
		request.Unit,
		request.Coefficient,
		request.Properties,
	)
	if err != nil {
		return fail(ctx, err)
	}

	quote, err := s.calculatePriceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PriceQuoteView{
		BasePrice:        quote.BasePrice,
		FinalPrice:       quote.FinalPrice,
		TotalPrice:       quote.TotalPrice,
		AppliedModifiers: toAppliedModifierViews(quote.AppliedModifiers),
		Breakdown: BreakdownView{
			AfterModifiers:   quote.Breakdown.AfterModifiers,
			AfterUnit:        quote.Breakdown.AfterUnit,
			AfterCoefficient: quote.Breakdown.AfterCoefficient,
			AfterQuantity:    quote.Breakdown.AfterQuantity,
		},
	})
}

// CalculateProductPrice handles POST /api/v1/pricing/products/calculate.
func (s *Server) CalculateProductPrice(ctx echo.Context) error {
	var request CalculateProductPriceRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	productID, err := kernel.UUIDFromString(request.ProductID)
	if err != nil {
		return badRequest(ctx, "Invalid product id")
	}

	query, err := queries.NewCalculateProductPriceQuery(
		productID,
		request.Quantity,
		request.Coefficient,
		request.LengthMM,
		request.WidthMM,
		request.Properties,
	)
	if err != nil {
		return fail(ctx, err)
	}

	quote, err := s.calculateProductPriceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ProductQuoteView{
		ProductID:         quote.ProductID.String(),
		ProductName:       quote.ProductName,
		BasePrice:         quote.BasePrice,
		UnitPrice:         quote.UnitPrice,
		ModifiedUnitPrice: quote.ModifiedUnitPrice,
		LengthMM:          quote.LengthMM,
		WidthMM:           quote.WidthMM,
		AppliedModifiers:  toAppliedModifierViews(quote.AppliedModifiers),
		Subtotal:          quote.Subtotal,
		FinalPrice:        quote.FinalPrice,
	})
}
