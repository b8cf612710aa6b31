package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"PulseBoard/internal/dashboard"
	"PulseBoard/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 200
	productsLimit    = 50
	ordersLimit      = 100
)

type dashboardResponse struct {
	model.DashboardMetrics
	Timestamp    time.Time    `json:"timestamp"`
	Agents       model.Agents `json:"agents"`
	SystemStatus string       `json:"systemStatus"`
}

type agentHealth struct {
	Name    model.AgentName  `json:"name"`
	Active  bool             `json:"active"`
	Status  model.AgentState `json:"status"`
	LastRun time.Time        `json:"lastRun"`
}

func (s *Server) GetDashboard(c *gin.Context) {
	c.JSON(http.StatusOK, dashboardResponse{
		DashboardMetrics: s.opts.Store.Metrics(),
		Timestamp:        s.opts.Now().UTC(),
		Agents:           s.opts.Store.Agents(),
		SystemStatus:     "online",
	})
}

func (s *Server) GetAgentsStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"agents":       s.opts.Store.Agents(),
		"systemHealth": "optimal",
		"uptime":       s.uptime(),
	})
}

func (s *Server) GetHealth(c *gin.Context) {
	agents := s.opts.Store.Agents()
	list := make([]agentHealth, 0, len(model.AgentNames))
	for _, name := range model.AgentNames {
		st, _ := agents.Status(name)
		list = append(list, agentHealth{Name: name, Active: st.Active, Status: st.Status, LastRun: st.LastRun})
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"uptime":    s.uptime(),
		"timestamp": s.opts.Now().UTC(),
		"agents":    list,
	})
}

func (s *Server) ToggleAgent(c *gin.Context) {
	name, ok := agentParam(c)
	if !ok {
		return
	}
	st, err := s.opts.Store.Toggle(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"agent":   name,
		"active":  st.Active,
		"status":  st.Status,
	})
}

func (s *Server) RunAgent(c *gin.Context) {
	name, ok := agentParam(c)
	if !ok {
		return
	}
	if err := s.opts.Runner.RunNow(c.Request.Context(), name); err != nil {
		if errors.Is(err, dashboard.ErrUnknownAgent) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	stats, _ := s.opts.Store.Agents().Stats(name)
	c.JSON(http.StatusOK, gin.H{"success": true, "agent": name, "stats": stats})
}

func (s *Server) GetAgentRuns(c *gin.Context) {
	name, ok := agentParam(c)
	if !ok {
		return
	}
	limit := defaultRunsLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxRunsLimit)
	}
	runs, err := s.opts.Recorder.RecentRuns(string(name), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"agent": name, "runs": runs, "count": len(runs)})
}

func (s *Server) GenerateContent(c *gin.Context) {
	if err := s.opts.Runner.RunNow(c.Request.Context(), model.AgentContent); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Content generated",
		"stats":   s.opts.Store.Content(),
	})
}

func (s *Server) GetProducts(c *gin.Context) {
	products, err := s.opts.Commerce.ListProducts(c.Request.Context(), productsLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch products",
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products, "count": len(products)})
}

func (s *Server) GetOrders(c *gin.Context) {
	orders, err := s.opts.Commerce.ListOrders(c.Request.Context(), "any", ordersLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to fetch orders",
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders, "count": len(orders)})
}

// agentParam resolves the :agent path segment, replying 404 when unknown.
func agentParam(c *gin.Context) (model.AgentName, bool) {
	name, ok := model.ParseAgentName(c.Param("agent"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Agent not found"})
		return "", false
	}
	return name, true
}
