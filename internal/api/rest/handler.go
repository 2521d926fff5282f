package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ainft-labs/ainft-sync/internal/api/middleware"
	"github.com/ainft-labs/ainft-sync/internal/domain"
	"github.com/ainft-labs/ainft-sync/internal/orchestrator"
	"github.com/ainft-labs/ainft-sync/internal/store"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// ConfigureService declares a compute service binding for an application
	// POST /api/v1/apps/:app_id/services
	ConfigureService(c *gin.Context)

	// GetCredit returns the provider credit balance for a service
	// GET /api/v1/apps/:app_id/services/:service/credit
	GetCredit(c *gin.Context)

	// DepositCredit charges provider credit and waits for settlement
	// POST /api/v1/apps/:app_id/services/:service/credit/deposits
	DepositCredit(c *gin.Context)

	// CreateAssistant creates the assistant for a token and service
	// POST /api/v1/apps/:app_id/tokens/:token_id/services/:service/assistant
	CreateAssistant(c *gin.Context)

	// UpdateAssistant replaces the assistant configuration
	// PUT /api/v1/apps/:app_id/tokens/:token_id/services/:service/assistant
	UpdateAssistant(c *gin.Context)

	// DeleteAssistant removes the assistant and its access rules
	// DELETE /api/v1/apps/:app_id/tokens/:token_id/services/:service/assistant
	DeleteAssistant(c *gin.Context)

	// GetAssistant retrieves a single assistant
	// GET /api/v1/apps/:app_id/tokens/:token_id/services/:service/assistant
	GetAssistant(c *gin.Context)

	// ListAssistants retrieves every assistant of an application for a service
	// GET /api/v1/apps/:app_id/assistants?service=<name>
	ListAssistants(c *gin.Context)

	// CreateThread opens a conversation thread for a user
	// POST /api/v1/apps/:app_id/tokens/:token_id/services/:service/users/:address/threads
	CreateThread(c *gin.Context)

	// UpdateThread replaces thread metadata
	// PUT /api/v1/apps/:app_id/tokens/:token_id/services/:service/users/:address/threads/:thread_id
	UpdateThread(c *gin.Context)

	// DeleteThread removes a thread and its messages
	// DELETE /api/v1/apps/:app_id/tokens/:token_id/services/:service/users/:address/threads/:thread_id
	DeleteThread(c *gin.Context)

	// GetThread retrieves a single thread
	// GET /api/v1/apps/:app_id/tokens/:token_id/services/:service/users/:address/threads/:thread_id
	GetThread(c *gin.Context)

	// ListThreads retrieves the user's threads, most recently updated first
	// GET /api/v1/apps/:app_id/tokens/:token_id/services/:service/users/:address/threads
	ListThreads(c *gin.Context)

	// CreateMessage appends a message, runs the assistant and folds the batch
	// POST /api/v1/apps/:app_id/tokens/:token_id/services/:service/users/:address/threads/:thread_id/messages
	CreateMessage(c *gin.Context)

	// UpdateMessage replaces message metadata
	// PUT /api/v1/apps/:app_id/tokens/:token_id/services/:service/users/:address/threads/:thread_id/messages/:message_id
	UpdateMessage(c *gin.Context)

	// GetMessage retrieves a single message by provider id
	// GET /api/v1/apps/:app_id/tokens/:token_id/services/:service/users/:address/threads/:thread_id/messages/:message_id
	GetMessage(c *gin.Context)

	// ListMessages retrieves thread messages in creation order
	// GET /api/v1/apps/:app_id/tokens/:token_id/services/:service/users/:address/threads/:thread_id/messages
	ListMessages(c *gin.Context)

	// ListFindings retrieves open reconciliation findings for an application
	// GET /api/v1/apps/:app_id/findings?limit=<limit>
	ListFindings(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	engine *orchestrator.Orchestrator
	store  store.Store
}

// NewHandler creates a new REST API handler
func NewHandler(engine *orchestrator.Orchestrator, st store.Store) Handler {
	return &handler{
		engine: engine,
		store:  st,
	}
}

// callerAddress resolves the acting address: the authenticated JWT subject
// when present, otherwise the X-Caller-Address header.
func callerAddress(c *gin.Context) string {
	if subject := c.GetString(string(middleware.AUTH_SUBJECT_KEY)); subject != "" {
		return subject
	}
	return c.GetHeader("X-Caller-Address")
}

type configureServiceRequest struct {
	ServiceName string `json:"service_name" binding:"required"`
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

// ConfigureService declares a compute service binding for an application
func (h *handler) ConfigureService(c *gin.Context) {
	var req configureServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	kind := domain.ServiceKind(req.Kind)
	if req.Kind == "" {
		kind = domain.ServiceKindChat
	}

	result, err := h.engine.ConfigureService(c.Request.Context(), orchestrator.ConfigureServiceParams{
		AppID:       c.Param("app_id"),
		ServiceName: req.ServiceName,
		Caller:      callerAddress(c),
		Kind:        kind,
		Description: req.Description,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// GetCredit returns the provider credit balance for a service
func (h *handler) GetCredit(c *gin.Context) {
	balance, err := h.engine.GetCredit(c.Request.Context(), c.Param("app_id"), c.Param("service"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

type depositCreditRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// DepositCredit charges provider credit and waits for settlement
func (h *handler) DepositCredit(c *gin.Context) {
	var req depositCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.engine.DepositCredit(c.Request.Context(), orchestrator.DepositCreditParams{
		AppID:       c.Param("app_id"),
		ServiceName: c.Param("service"),
		Caller:      callerAddress(c),
		Amount:      req.Amount,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type assistantConfigRequest struct {
	Model        string            `json:"model" binding:"required"`
	Name         string            `json:"name" binding:"required"`
	Instructions string            `json:"instructions" binding:"required"`
	Description  *string           `json:"description"`
	Metadata     map[string]string `json:"metadata"`
}

func (r *assistantConfigRequest) toConfig() domain.AssistantConfig {
	return domain.AssistantConfig{
		Model:        r.Model,
		Name:         r.Name,
		Instructions: r.Instructions,
		Description:  r.Description,
		Metadata:     r.Metadata,
	}
}

// CreateAssistant creates the assistant for a token and service
func (h *handler) CreateAssistant(c *gin.Context) {
	var req assistantConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.engine.CreateAssistant(c.Request.Context(), orchestrator.CreateAssistantParams{
		AppID:       c.Param("app_id"),
		TokenID:     c.Param("token_id"),
		ServiceName: c.Param("service"),
		Caller:      callerAddress(c),
		Config:      req.toConfig(),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// UpdateAssistant replaces the assistant configuration
func (h *handler) UpdateAssistant(c *gin.Context) {
	var req assistantConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.engine.UpdateAssistant(c.Request.Context(), orchestrator.UpdateAssistantParams{
		AppID:       c.Param("app_id"),
		TokenID:     c.Param("token_id"),
		ServiceName: c.Param("service"),
		Caller:      callerAddress(c),
		Config:      req.toConfig(),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteAssistant removes the assistant and its access rules
func (h *handler) DeleteAssistant(c *gin.Context) {
	result, err := h.engine.DeleteAssistant(c.Request.Context(), orchestrator.DeleteAssistantParams{
		AppID:       c.Param("app_id"),
		TokenID:     c.Param("token_id"),
		ServiceName: c.Param("service"),
		Caller:      callerAddress(c),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetAssistant retrieves a single assistant
func (h *handler) GetAssistant(c *gin.Context) {
	assistant, err := h.engine.GetAssistant(c.Request.Context(),
		c.Param("app_id"), c.Param("token_id"), c.Param("service"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, assistant)
}

// ListAssistants retrieves every assistant of an application for a service
func (h *handler) ListAssistants(c *gin.Context) {
	service := c.Query("service")
	if service == "" {
		respondBadRequest(c, "service query parameter is required")
		return
	}

	assistants, err := h.engine.ListAssistants(c.Request.Context(), c.Param("app_id"), service)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"assistants": assistants})
}

type threadRequest struct {
	Metadata map[string]string `json:"metadata"`
}

// CreateThread opens a conversation thread for a user
func (h *handler) CreateThread(c *gin.Context) {
	var req threadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.engine.CreateThread(c.Request.Context(), orchestrator.CreateThreadParams{
		AppID:       c.Param("app_id"),
		TokenID:     c.Param("token_id"),
		ServiceName: c.Param("service"),
		Caller:      c.Param("address"),
		Metadata:    req.Metadata,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// UpdateThread replaces thread metadata
func (h *handler) UpdateThread(c *gin.Context) {
	var req threadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.engine.UpdateThread(c.Request.Context(), orchestrator.UpdateThreadParams{
		AppID:       c.Param("app_id"),
		TokenID:     c.Param("token_id"),
		ServiceName: c.Param("service"),
		Caller:      c.Param("address"),
		ThreadID:    c.Param("thread_id"),
		Metadata:    req.Metadata,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteThread removes a thread and its messages
func (h *handler) DeleteThread(c *gin.Context) {
	result, err := h.engine.DeleteThread(c.Request.Context(), orchestrator.DeleteThreadParams{
		AppID:       c.Param("app_id"),
		TokenID:     c.Param("token_id"),
		ServiceName: c.Param("service"),
		Caller:      c.Param("address"),
		ThreadID:    c.Param("thread_id"),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetThread retrieves a single thread
func (h *handler) GetThread(c *gin.Context) {
	thread, err := h.engine.GetThread(c.Request.Context(),
		c.Param("app_id"), c.Param("token_id"), c.Param("service"),
		c.Param("address"), c.Param("thread_id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, thread)
}

// ListThreads retrieves the user's threads, most recently updated first
func (h *handler) ListThreads(c *gin.Context) {
	threads, err := h.engine.ListThreads(c.Request.Context(),
		c.Param("app_id"), c.Param("token_id"), c.Param("service"), c.Param("address"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"threads": threads})
}

type createMessageRequest struct {
	Role     string            `json:"role"`
	Content  string            `json:"content" binding:"required"`
	Metadata map[string]string `json:"metadata"`
}

// CreateMessage appends a message, runs the assistant and folds the batch
func (h *handler) CreateMessage(c *gin.Context) {
	var req createMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	role := domain.MessageRole(req.Role)
	if req.Role == "" {
		role = domain.MessageRoleUser
	}

	result, err := h.engine.CreateMessage(c.Request.Context(), orchestrator.CreateMessageParams{
		AppID:       c.Param("app_id"),
		TokenID:     c.Param("token_id"),
		ServiceName: c.Param("service"),
		Caller:      c.Param("address"),
		ThreadID:    c.Param("thread_id"),
		Role:        role,
		Content:     req.Content,
		Metadata:    req.Metadata,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

type updateMessageRequest struct {
	Metadata map[string]string `json:"metadata" binding:"required"`
}

// UpdateMessage replaces message metadata
func (h *handler) UpdateMessage(c *gin.Context) {
	var req updateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	result, err := h.engine.UpdateMessage(c.Request.Context(), orchestrator.UpdateMessageParams{
		AppID:       c.Param("app_id"),
		TokenID:     c.Param("token_id"),
		ServiceName: c.Param("service"),
		Caller:      c.Param("address"),
		ThreadID:    c.Param("thread_id"),
		MessageID:   c.Param("message_id"),
		Metadata:    req.Metadata,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMessage retrieves a single message by provider id
func (h *handler) GetMessage(c *gin.Context) {
	message, err := h.engine.GetMessage(c.Request.Context(),
		c.Param("app_id"), c.Param("token_id"), c.Param("service"),
		c.Param("address"), c.Param("thread_id"), c.Param("message_id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

// ListMessages retrieves thread messages in creation order
func (h *handler) ListMessages(c *gin.Context) {
	messages, err := h.engine.ListMessages(c.Request.Context(),
		c.Param("app_id"), c.Param("token_id"), c.Param("service"),
		c.Param("address"), c.Param("thread_id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// ListFindings retrieves open reconciliation findings for an application
func (h *handler) ListFindings(c *gin.Context) {
	limit := 100
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			respondBadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	findings, err := h.store.ListOpenFindings(c.Request.Context(), c.Param("app_id"), limit)
	if err != nil {
		respondInternalError(c, err, "Failed to list findings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"findings": findings})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
