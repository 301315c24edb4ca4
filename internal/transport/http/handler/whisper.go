package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docwhisperer/internal/app"
	"docwhisperer/internal/model"
	"docwhisperer/internal/transport/http/response"
)

// WhisperHandler exposes the ingest/ask pipeline over the JSON API
// backing the dashboard.
type WhisperHandler struct {
	service         *app.WhisperService
	defaultProvider model.Provider
	defaultTemplate model.Template
}

type IngestRequest struct {
	Path     string `json:"path" binding:"required"`
	Provider string `json:"provider"`
	Template string `json:"template"`
}

type AskRequest struct {
	Question string `json:"question" binding:"required"`
	Provider string `json:"provider"`
}

func NewWhisperHandler(service *app.WhisperService, defaultProvider model.Provider, defaultTemplate model.Template) *WhisperHandler {
	return &WhisperHandler{
		service:         service,
		defaultProvider: defaultProvider,
		defaultTemplate: defaultTemplate,
	}
}

func (h *WhisperHandler) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	provider, template, ok := h.resolveSelection(c, req.Provider, req.Template)
	if !ok {
		return
	}

	result, err := h.service.IngestFile(c.Request.Context(), req.Path, provider, template)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "ingest failed: "+err.Error())
		return
	}
	response.OK(c, result)
}

func (h *WhisperHandler) Ask(c *gin.Context) {
	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	provider := h.defaultProvider
	if req.Provider != "" {
		var err error
		provider, err = model.ParseProvider(req.Provider)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
			return
		}
	}

	result, err := h.service.Ask(c.Request.Context(), req.Question, provider)
	if err != nil {
		if errors.Is(err, app.ErrInvalidInput) {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		} else {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "ask failed")
		}
		return
	}
	response.OK(c, result)
}

func (h *WhisperHandler) ListDocuments(c *gin.Context) {
	response.OK(c, h.service.ListDocuments())
}

func (h *WhisperHandler) GetAnalysis(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "missing path")
		return
	}
	analysis, ok := h.service.Analysis(path)
	if !ok {
		response.Error(c, http.StatusNotFound, response.CodeDocumentNotFound, "no analysis for "+path)
		return
	}
	response.OK(c, analysis)
}

func (h *WhisperHandler) Stats(c *gin.Context) {
	response.OK(c, h.service.Stats(c.Request.Context()))
}

func (h *WhisperHandler) resolveSelection(c *gin.Context, providerRaw, templateRaw string) (model.Provider, model.Template, bool) {
	provider := h.defaultProvider
	template := h.defaultTemplate
	if providerRaw != "" {
		var err error
		provider, err = model.ParseProvider(providerRaw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
			return "", "", false
		}
	}
	if templateRaw != "" {
		var err error
		template, err = model.ParseTemplate(templateRaw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
			return "", "", false
		}
	}
	return provider, template, true
}
