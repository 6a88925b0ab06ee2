package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/drezzup/storefront/pkg/models"
	"github.com/drezzup/storefront/pkg/orders"
	"github.com/drezzup/storefront/pkg/repository"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// createOrder takes a storefront combo submission. The raw body goes
// through the same boundary normalization as store reads, so string-typed
// prices and box counts coerce instead of failing.
func (s *Server) createOrder(c *gin.Context) {
	var body bson.M
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order := models.OrderFromDoc(body)

	required := []string{
		order.FullName,
		order.Contact,
		order.Location,
		order.Size,
		order.GuarantorName,
		order.GuarantorContact,
	}
	for _, v := range required {
		if v == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill out all required fields."})
			return
		}
	}
	if len(order.SelectedIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select at least one product."})
		return
	}

	order.Status = models.StatusNew
	order.Date = time.Now()
	order.Total = orders.CalculateTotal(&order)

	if err := s.store.InsertOrder(c.Request.Context(), &order); err != nil {
		s.logger.Error("Failed to create order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order. Try again later."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    order.Key.Hex(),
		"total": order.Total,
	})
}

type orderGroup struct {
	Date   string         `json:"date"`
	Orders []models.Order `json:"orders"`
}

// listOrders returns the admin's date-grouped order view for one status
// filter. Totals are recomputed per order; the stored creation-time figure
// is not trusted for display.
func (s *Server) listOrders(c *gin.Context) {
	filter := c.DefaultQuery("filter", orders.FilterSummary)

	all, err := s.store.ListOrders(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders. Please check your connection."})
		return
	}

	filtered := orders.FilterByStatus(all, filter)
	orders.SortByDateDesc(filtered)
	for i := range filtered {
		filtered[i].Total = orders.CalculateTotal(&filtered[i])
	}

	// Bucket newest-first, preserving the sorted walk for group order.
	grouped := make(map[string]int)
	groups := make([]orderGroup, 0)
	for _, o := range filtered {
		key := o.DateKey()
		idx, seen := grouped[key]
		if !seen {
			idx = len(groups)
			grouped[key] = idx
			groups = append(groups, orderGroup{Date: key})
		}
		groups[idx].Orders = append(groups[idx].Orders, o)
	}

	c.JSON(http.StatusOK, gin.H{
		"filter": filter,
		"groups": groups,
		"total":  len(filtered),
	})
}

// orderStats serves the dashboard summary plus the top-5 presentation cuts.
func (s *Server) orderStats(c *gin.Context) {
	all, err := s.store.ListOrders(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load orders. Please check your connection."})
		return
	}

	stats := orders.Aggregate(orders.GroupByDate(all))

	c.JSON(http.StatusOK, gin.H{
		"stats":        stats,
		"topProducts":  orders.TopProducts(stats, 5),
		"topLocations": orders.TopLocations(stats, 5),
	})
}

type statusRequest struct {
	Status string `json:"status"`
}

// updateOrderStatus advances an order one step along the lifecycle. The
// write goes to the store first; nothing is reported moved until the store
// acknowledges.
func (s *Server) updateOrderStatus(c *gin.Context) {
	id := c.Param("id")

	var req statusRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found."})
			return
		}
		s.logger.Error("Failed to load order", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status. Please try again."})
		return
	}

	if !orders.CanTransition(order.Status, req.Status) {
		c.JSON(http.StatusConflict, gin.H{
			"error": "Cannot move order from " + order.Status + " to " + req.Status + ".",
		})
		return
	}

	if err := s.store.UpdateOrderStatus(ctx, id, req.Status); err != nil {
		s.logger.Error("Failed to update order status", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

func (s *Server) deleteOrder(c *gin.Context) {
	id := c.Param("id")

	if err := s.store.DeleteOrder(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found."})
			return
		}
		s.logger.Error("Failed to delete order", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order. Please try again."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// streamOrders bridges the store's change stream onto server-sent events.
// The subscription lives exactly as long as the client connection: when the
// request context ends, the change stream is torn down with it.
func (s *Server) streamOrders(c *gin.Context) {
	events, err := s.store.WatchOrders(c.Request.Context())
	if err != nil {
		s.logger.Error("Failed to open order stream", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe to orders."})
		return
	}

	c.Stream(func(w io.Writer) bool {
		event, ok := <-events
		if !ok {
			return false
		}
		c.SSEvent(event.Type, event)
		return true
	})
}
