// Package http exposes the order service over HTTP with echo. The handlers
// translate between the JSON boundary and the application's commands and
// queries; no business rules live here.
package http

import (
	"errors"
	"net/http"
	"time"

	"pedidos/internal/adapters/in/http/middleware"
	"pedidos/internal/core/application/usecases/commands"
	"pedidos/internal/core/application/usecases/queries"
	"pedidos/internal/core/domain/model/kernel"
	"pedidos/internal/core/domain/model/order"
	"pedidos/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler       commands.CreateOrderCommandHandler
	claimOrderHandler        commands.ClaimOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	deleteOrderHandler       commands.DeleteOrderCommandHandler

	getOrderHandler             queries.GetOrderQueryHandler
	getOrdersByCustomerHandler  queries.GetOrdersByCustomerQueryHandler
	getOrdersByDriverHandler    queries.GetOrdersByDriverQueryHandler
	getOrdersByStatusHandler    queries.GetOrdersByStatusQueryHandler
	getAvailableOrdersHandler   queries.GetAvailableOrdersQueryHandler
	getOrderAvailabilityHandler queries.GetOrderAvailabilityQueryHandler
}

// NewServer creates an HTTP server over the given command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	claimOrderHandler commands.ClaimOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	deleteOrderHandler commands.DeleteOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getOrdersByCustomerHandler queries.GetOrdersByCustomerQueryHandler,
	getOrdersByDriverHandler queries.GetOrdersByDriverQueryHandler,
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler,
	getAvailableOrdersHandler queries.GetAvailableOrdersQueryHandler,
	getOrderAvailabilityHandler queries.GetOrderAvailabilityQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		claimOrderHandler:           claimOrderHandler,
		updateOrderStatusHandler:    updateOrderStatusHandler,
		deleteOrderHandler:          deleteOrderHandler,
		getOrderHandler:             getOrderHandler,
		getOrdersByCustomerHandler:  getOrdersByCustomerHandler,
		getOrdersByDriverHandler:    getOrdersByDriverHandler,
		getOrdersByStatusHandler:    getOrdersByStatusHandler,
		getAvailableOrdersHandler:   getAvailableOrdersHandler,
		getOrderAvailabilityHandler: getOrderAvailabilityHandler,
	}
}

// RegisterRoutes mounts all order routes under /api/pedidos. Mutating routes
// go through the bearer-token middleware; listings stay open.
func (s *Server) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	g := e.Group("/api/pedidos")

	g.POST("", s.CreateOrder, auth)
	g.GET("/:id", s.GetOrder)
	g.GET("/cliente/:email", s.GetOrdersByCustomerEmail)
	g.GET("/cliente/id/:clienteId", s.GetOrdersByCustomerID)
	g.GET("/motorista/:motoristaId", s.GetOrdersByDriver)
	g.GET("/available", s.GetAvailableOrders)
	g.GET("/status/:status", s.GetOrdersByStatus)
	g.PUT("/:id/status", s.UpdateOrderStatus, auth)
	g.GET("/:id/available", s.GetOrderAvailability)
	g.PUT("/:id/claim", s.ClaimOrder, auth)
	g.DELETE("/:id", s.DeleteOrder, auth)
}

// PedidoResponse is the JSON shape of one order.
type PedidoResponse struct {
	ID           string    `json:"id"`
	ClienteID    string    `json:"clienteId"`
	ClienteEmail string    `json:"clienteEmail"`
	Descricao    string    `json:"descricao"`
	Destino      string    `json:"destino"`
	MotoristaID  *string   `json:"motoristaId,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	Version      int64     `json:"version"`
}

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreatePedidoRequest is the body of POST /api/pedidos.
type CreatePedidoRequest struct {
	ClienteID    string `json:"clienteId"`
	ClienteEmail string `json:"clienteEmail"`
	Descricao    string `json:"descricao"`
	Destino      string `json:"destino"`
}

// UpdatePedidoStatusRequest is the body of PUT /api/pedidos/{id}/status.
type UpdatePedidoStatusRequest struct {
	Status string `json:"status"`
}

// ClaimPedidoRequest is the body of PUT /api/pedidos/{id}/claim.
type ClaimPedidoRequest struct {
	MotoristaID string `json:"motoristaId"`
}

// CreateOrder handles POST /api/pedidos.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreatePedidoRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.ClienteID)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "clienteId must be a valid UUID")
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), customerID, req.ClienteEmail, req.Descricao, req.Destino)
	if err != nil {
		return domainError(c, err)
	}

	created, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusCreated, orderJSON(created))
}

// GetOrder handles GET /api/pedidos/{id}.
func (s *Server) GetOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "id must be a valid UUID")
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return domainError(c, err)
	}

	resp, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, responseJSON(resp))
}

// GetOrdersByCustomerEmail handles GET /api/pedidos/cliente/{email}.
func (s *Server) GetOrdersByCustomerEmail(c echo.Context) error {
	query, err := queries.NewGetOrdersByCustomerEmailQuery(c.Param("email"))
	if err != nil {
		return domainError(c, err)
	}

	return s.listOrdersByCustomer(c, query)
}

// GetOrdersByCustomerID handles GET /api/pedidos/cliente/id/{clienteId}.
func (s *Server) GetOrdersByCustomerID(c echo.Context) error {
	customerID, err := kernel.UUIDFromString(c.Param("clienteId"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "clienteId must be a valid UUID")
	}

	query, err := queries.NewGetOrdersByCustomerIDQuery(customerID)
	if err != nil {
		return domainError(c, err)
	}

	return s.listOrdersByCustomer(c, query)
}

func (s *Server) listOrdersByCustomer(c echo.Context, query queries.GetOrdersByCustomerQuery) error {
	responses, err := s.getOrdersByCustomerHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, listJSON(responses))
}

// GetOrdersByDriver handles GET /api/pedidos/motorista/{motoristaId}.
func (s *Server) GetOrdersByDriver(c echo.Context) error {
	driverID, err := kernel.UUIDFromString(c.Param("motoristaId"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "motoristaId must be a valid UUID")
	}

	query, err := queries.NewGetOrdersByDriverQuery(driverID)
	if err != nil {
		return domainError(c, err)
	}

	responses, err := s.getOrdersByDriverHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, listJSON(responses))
}

// GetAvailableOrders handles GET /api/pedidos/available.
func (s *Server) GetAvailableOrders(c echo.Context) error {
	responses, err := s.getAvailableOrdersHandler.Handle(
		c.Request().Context(), queries.NewGetAvailableOrdersQuery())
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, listJSON(responses))
}

// GetOrdersByStatus handles GET /api/pedidos/status/{status}.
func (s *Server) GetOrdersByStatus(c echo.Context) error {
	status, err := order.ParseStatus(c.Param("status"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "unknown status")
	}

	query, err := queries.NewGetOrdersByStatusQuery(status)
	if err != nil {
		return domainError(c, err)
	}

	responses, err := s.getOrdersByStatusHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, listJSON(responses))
}

// UpdateOrderStatus handles PUT /api/pedidos/{id}/status.
func (s *Server) UpdateOrderStatus(c echo.Context) error {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "caller identity missing")
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "id must be a valid UUID")
	}

	var req UpdatePedidoStatusRequest
	if err = c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "unknown status")
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status, caller)
	if err != nil {
		return domainError(c, err)
	}

	updated, err := s.updateOrderStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, orderJSON(updated))
}

// GetOrderAvailability handles GET /api/pedidos/{id}/available.
func (s *Server) GetOrderAvailability(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "id must be a valid UUID")
	}

	query, err := queries.NewGetOrderAvailabilityQuery(orderID)
	if err != nil {
		return domainError(c, err)
	}

	available, err := s.getOrderAvailabilityHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"available": available})
}

// ClaimOrder handles PUT /api/pedidos/{id}/claim.
func (s *Server) ClaimOrder(c echo.Context) error {
	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "id must be a valid UUID")
	}

	var req ClaimPedidoRequest
	if err = c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	driverID, err := kernel.UUIDFromString(req.MotoristaID)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "motoristaId must be a valid UUID")
	}

	cmd, err := commands.NewClaimOrderCommand(orderID, driverID)
	if err != nil {
		return domainError(c, err)
	}

	claimed, err := s.claimOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return domainError(c, err)
	}

	return c.JSON(http.StatusOK, orderJSON(claimed))
}

// DeleteOrder handles DELETE /api/pedidos/{id}.
func (s *Server) DeleteOrder(c echo.Context) error {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "caller identity missing")
	}

	orderID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "id must be a valid UUID")
	}

	cmd, err := commands.NewDeleteOrderCommand(orderID, caller)
	if err != nil {
		return domainError(c, err)
	}

	if err = s.deleteOrderHandler.Handle(c.Request().Context(), cmd); err != nil {
		return domainError(c, err)
	}

	return c.NoContent(http.StatusOK)
}

// orderJSON projects an aggregate into the response shape.
func orderJSON(o *order.Order) PedidoResponse {
	resp := PedidoResponse{
		ID:           o.ID().String(),
		ClienteID:    o.CustomerID().String(),
		ClienteEmail: o.CustomerEmail(),
		Descricao:    o.Description(),
		Destino:      o.Destination(),
		Status:       o.Status().String(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
		Version:      o.Version(),
	}
	if d := o.Driver(); d != nil {
		raw := d.String()
		resp.MotoristaID = &raw
	}
	return resp
}

// responseJSON projects a read model into the response shape.
func responseJSON(r queries.OrderResponse) PedidoResponse {
	resp := PedidoResponse{
		ID:           r.ID.String(),
		ClienteID:    r.CustomerID.String(),
		ClienteEmail: r.CustomerEmail,
		Descricao:    r.Description,
		Destino:      r.Destination,
		Status:       r.Status.String(),
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		Version:      r.Version,
	}
	if r.DriverID != nil {
		raw := r.DriverID.String()
		resp.MotoristaID = &raw
	}
	return resp
}

func listJSON(responses []queries.OrderResponse) []PedidoResponse {
	out := make([]PedidoResponse, 0, len(responses))
	for _, r := range responses {
		out = append(out, responseJSON(r))
	}
	return out
}

func errorJSON(c echo.Context, code int, message string) error {
	return c.JSON(code, ErrorResponse{Code: code, Message: message})
}

// domainError maps an error from the core onto an HTTP status: conflicting
// or illegal requests are the caller's fault (400), unknown objects are 404,
// missing rights are 403, anything else is a server fault.
func domainError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errorJSON(c, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrUnauthorized):
		return errorJSON(c, http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrAlreadyClaimed),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrInvalidState),
		errors.Is(err, errs.ErrVersionConflict),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return errorJSON(c, http.StatusBadRequest, err.Error())
	default:
		return errorJSON(c, http.StatusInternalServerError, "internal error")
	}
}
