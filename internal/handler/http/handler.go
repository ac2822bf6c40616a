package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	_ "github.com/numrent/virtual-number-service/docs"
	"github.com/numrent/virtual-number-service/internal/catalog"
	"github.com/numrent/virtual-number-service/internal/domain"
	"github.com/numrent/virtual-number-service/internal/provider"
	"github.com/numrent/virtual-number-service/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handler struct {
	orders service.OrderService
	server *http.Server
}

// @title Virtual Number Rental API
// @version 1.0
// @description API for renting virtual phone numbers and retrieving SMS verification codes
// @host localhost:8080
// @BasePath /
func NewHttpHandler(addr string, svc service.OrderService) *Handler {
	h := &Handler{
		orders: svc,
	}

	// create router
	router := gin.Default()

	// register routes
	api := router.Group("/api")
	api.GET("/services", h.getServices)
	api.GET("/countries", h.getCountries)
	api.GET("/all_services", h.getAllServices)
	api.GET("/all_countries", h.getAllCountries)
	api.GET("/balance", h.getBalance)
	api.GET("/orders", h.listOrders)
	api.POST("/create", h.createOrder)
	api.GET("/status/:id", h.getStatus)
	api.POST("/cancel/:id", h.cancelOrder)
	api.POST("/request_again/:id", h.requestAgain)
	api.POST("/remove_order/:id", h.removeOrder)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// create http server
	h.server = &http.Server{
		Addr:    addr,
		Handler: router.Handler(),
	}

	return h
}

func (h *Handler) Run() error {
	return h.server.ListenAndServe()
}

func (h *Handler) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

type createOrderRequest struct {
	Service string `json:"service" binding:"required"`
	Country string `json:"country" binding:"required"`
}

// failureStatus maps an operation error to an HTTP status code. Provider
// rejections stay 200 because they are ordinary business outcomes the
// client reacts to via the error text.
func failureStatus(err error) int {
	var rejection *service.ProviderRejection
	var transport *provider.TransportError

	switch {
	case errors.Is(err, domain.ErrInvalidSelection):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.As(err, &rejection):
		return http.StatusOK
	case errors.As(err, &transport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func failure(c *gin.Context, err error, transportMsg string) {
	msg := err.Error()
	var transport *provider.TransportError
	if errors.As(err, &transport) {
		// transport errors carry no provider semantics; hide the plumbing
		msg = transportMsg
	}
	c.JSON(failureStatus(err), gin.H{"success": false, "error": msg})
}

// GetServices godoc
// @Summary Favorite service catalog
// @Description Returns the fixed table of favorite services (code to name)
// @Tags Catalog
// @Success 200 {object} map[string]string
// @Router /api/services [get]
func (h *Handler) getServices(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.FavoriteServices())
}

// GetCountries godoc
// @Summary Favorite country catalog
// @Description Returns the fixed table of favorite countries (code to name)
// @Tags Catalog
// @Success 200 {object} map[string]string
// @Router /api/countries [get]
func (h *Handler) getCountries(c *gin.Context) {
	c.JSON(http.StatusOK, catalog.FavoriteCountries())
}

// GetAllServices godoc
// @Summary Full provider service catalog
// @Description Fetches and parses the provider's dynamic service catalog
// @Tags Catalog
// @Success 200 {object} map[string]any
// @Router /api/all_services [get]
func (h *Handler) getAllServices(c *gin.Context) {
	services, err := h.orders.AllServices(c.Request.Context())
	if err != nil {
		failure(c, err, "Failed to get services")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "services": services})
}

// GetAllCountries godoc
// @Summary Full provider country catalog
// @Description Fetches and parses the provider's dynamic country catalog
// @Tags Catalog
// @Success 200 {object} map[string]any
// @Router /api/all_countries [get]
func (h *Handler) getAllCountries(c *gin.Context) {
	countries, err := h.orders.AllCountries(c.Request.Context())
	if err != nil {
		failure(c, err, "Failed to get countries")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "countries": countries})
}

// GetBalance godoc
// @Summary Provider account balance
// @Tags Account
// @Success 200 {object} map[string]any
// @Router /api/balance [get]
func (h *Handler) getBalance(c *gin.Context) {
	balance, err := h.orders.Balance(c.Request.Context())
	if err != nil {
		failure(c, err, "Failed to get balance")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "balance": balance})
}

// ListOrders godoc
// @Summary List orders
// @Description Lists orders newest first, optionally partitioned into active or history
// @Tags Orders
// @Param partition query string false "all, active or history" default(all)
// @Success 200 {object} map[string]any
// @Router /api/orders [get]
func (h *Handler) listOrders(c *gin.Context) {
	partition := c.DefaultQuery("partition", service.PartitionAll)
	orders, err := h.orders.ListOrders(c.Request.Context(), partition)
	if err != nil {
		failure(c, err, "Failed to list orders")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// CreateOrder godoc
// @Summary Rent a number
// @Description Rents a virtual number for the given service/country pair
// @Tags Orders
// @Accept json
// @Param request body createOrderRequest true "service and country codes"
// @Success 200 {object} map[string]any
// @Router /api/create [post]
func (h *Handler) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), req.Service, req.Country)
	if err != nil {
		failure(c, err, "Failed to create order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

// GetStatus godoc
// @Summary Poll SMS code
// @Description Polls the provider for the order status and the SMS code once received
// @Tags Orders
// @Param id path string true "order id"
// @Success 200 {object} domain.StatusResult
// @Router /api/status/{id} [get]
func (h *Handler) getStatus(c *gin.Context) {
	result, err := h.orders.PollStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(failureStatus(err), gin.H{"status": domain.StatusUnknown})
		return
	}
	c.JSON(http.StatusOK, result)
}

// CancelOrder godoc
// @Summary Cancel an order
// @Tags Orders
// @Param id path string true "order id"
// @Success 200 {object} map[string]any
// @Router /api/cancel/{id} [post]
func (h *Handler) cancelOrder(c *gin.Context) {
	if err := h.orders.CancelOrder(c.Request.Context(), c.Param("id")); err != nil {
		failure(c, err, "Failed to cancel order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RequestAgain godoc
// @Summary Request the code again
// @Description Asks the provider to resend the code and resets the validity window
// @Tags Orders
// @Param id path string true "order id"
// @Success 200 {object} map[string]any
// @Router /api/request_again/{id} [post]
func (h *Handler) requestAgain(c *gin.Context) {
	if err := h.orders.RequestAgain(c.Request.Context(), c.Param("id")); err != nil {
		failure(c, err, "Failed to request code again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RemoveOrder godoc
// @Summary Delete the local order record
// @Description Removes the record permanently; removing an absent id succeeds
// @Tags Orders
// @Param id path string true "order id"
// @Success 200 {object} map[string]any
// @Router /api/remove_order/{id} [post]
func (h *Handler) removeOrder(c *gin.Context) {
	if err := h.orders.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		failure(c, err, "Failed to remove order")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
