package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"planfairy/internal/generate"
)

// Handler serves the plan-generation API.
type Handler struct {
	cfg       Config
	completer Completer
}

// NewHandler creates a Handler. A custom Completer can be injected for
// tests; passing nil builds one from the config.
func NewHandler(cfg Config, completer Completer) *Handler {
	if completer == nil {
		completer = NewCompleter(cfg)
	}
	return &Handler{cfg: cfg, completer: completer}
}

// NewRouter builds the gin engine with CORS, health, and plan routes.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.Default()
	router.Use(corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.OPTIONS("/v1/plan", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	router.POST("/v1/plan", h.generatePlan)
	router.NoRoute(func(c *gin.Context) {
		if c.Request.URL.Path == "/v1/plan" {
			c.String(http.StatusMethodNotAllowed, "Method Not Allowed")
			return
		}
		c.Status(http.StatusNotFound)
	})

	return router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Next()
	}
}

func (h *Handler) generatePlan(c *gin.Context) {
	// Refuse before touching the request body: a server without a
	// credential can never succeed.
	if h.cfg.APIKey == "" {
		c.String(http.StatusInternalServerError, "Missing API key")
		return
	}

	var req generate.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing planType or form"})
		return
	}
	if req.PlanType == "" || req.Form == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing planType or form"})
		return
	}

	user, err := UserPrompt(req)
	if err != nil {
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	html, err := h.completer.Complete(c.Request.Context(), SystemPrompt(req.CustomInstructions), user)
	if err != nil {
		var up *UpstreamError
		if errors.As(err, &up) {
			c.String(up.Status, up.Body)
			return
		}
		c.String(http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, generate.Response{HTML: generate.EnsureMarkup(html)})
}
