package main

import (
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"formSheet/contracts"
)

type ApiController struct {
	FormRepository    contracts.FormRepository
	FormSessions      contracts.FormSessions
	WebhookDispatcher contracts.WebhookDispatcher
	EventHub          contracts.EventHub
	logger            *zap.SugaredLogger
}

type FormEndpointParams struct {
	FormId string `uri:"form_id" binding:"required"`
}

type CellEndpointParams struct {
	FormId string `uri:"form_id" binding:"required"`
	CellId string `uri:"cell_id" binding:"required"`
}

type SetCellRequest struct {
	Text *string `json:"text" binding:"required"`
}

type FocusRequest struct {
	Cell string `json:"cell"`
}

type SubscribeRequest struct {
	WebhookUrl string `json:"webhook_url" binding:"omitempty,url"`
}

type FormResponse struct {
	Id    string                    `json:"id"`
	Title string                    `json:"title,omitempty"`
	Cells map[string]contracts.Cell `json:"cells"`
}

func NewApiController(
	formRepository contracts.FormRepository, formSessions contracts.FormSessions,
	webhookDispatcher contracts.WebhookDispatcher, eventHub contracts.EventHub, logger *zap.SugaredLogger,
) *ApiController {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ApiController{
		FormRepository:    formRepository,
		FormSessions:      formSessions,
		WebhookDispatcher: webhookDispatcher,
		EventHub:          eventHub,
		logger:            logger,
	}
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, contracts.FormNotFoundError), errors.Is(err, contracts.CellNotFoundError):
		return http.StatusNotFound
	case errors.Is(err, contracts.InvalidCellNameError), errors.Is(err, contracts.ReadOnlyCellError), errors.Is(err, EmptyFormError):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (api *ApiController) respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		api.logger.Errorw("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (api *ApiController) CreateFormAction(c *gin.Context) {
	definition := contracts.FormDefinition{}
	if err := c.ShouldBindJSON(&definition); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	formId, err := api.FormRepository.CreateForm(definition)
	if err != nil {
		api.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, FormResponse{Id: formId, Title: definition.Title})
}

func (api *ApiController) GetFormAction(c *gin.Context) {
	params := FormEndpointParams{}
	var definition *contracts.FormDefinition
	var cells map[string]contracts.Cell

	err := c.ShouldBindUri(&params)
	if err == nil {
		definition, err = api.FormRepository.GetForm(params.FormId)
	}
	if err == nil {
		cells, err = api.FormSessions.Cells(params.FormId)
	}

	if err != nil {
		api.respondError(c, err)
	} else {
		c.JSON(http.StatusOK, FormResponse{Id: params.FormId, Title: definition.Title, Cells: cells})
	}
}

func (api *ApiController) SetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	request := SetCellRequest{}
	var response *contracts.Cell

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	response, err = api.FormSessions.SetCell(params.FormId, params.CellId, *request.Text)
	if err != nil {
		api.respondError(c, err)
	} else {
		c.JSON(http.StatusCreated, response)
	}
}

func (api *ApiController) FocusAction(c *gin.Context) {
	params := FormEndpointParams{}
	request := FocusRequest{}
	var response *contracts.Cell

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	response, err = api.FormSessions.Focus(params.FormId, request.Cell)
	if err != nil {
		api.respondError(c, err)
	} else {
		c.JSON(http.StatusOK, gin.H{"cell": response})
	}
}

func (api *ApiController) ScoreAction(c *gin.Context) {
	params := FormEndpointParams{}
	var response *contracts.ScoreSummary

	err := c.ShouldBindUri(&params)
	if err == nil {
		response, err = api.FormSessions.Score(params.FormId)
	}

	if err != nil {
		api.respondError(c, err)
	} else {
		c.JSON(http.StatusOK, response)
	}
}

func (api *ApiController) SubscribeAction(c *gin.Context) {
	params := FormEndpointParams{}
	request := SubscribeRequest{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		err = c.ShouldBindJSON(&request)
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if _, err = api.FormRepository.GetForm(params.FormId); err != nil {
		api.respondError(c, err)
		return
	}

	api.WebhookDispatcher.SetWebhookUrl(params.FormId, request.WebhookUrl)
	c.JSON(http.StatusOK, gin.H{"webhook_url": api.WebhookDispatcher.GetWebhookUrl(params.FormId)})
}

func (api *ApiController) EventsAction(c *gin.Context) {
	params := FormEndpointParams{}

	err := c.ShouldBindUri(&params)
	if err == nil {
		_, err = api.FormRepository.GetForm(params.FormId)
	}
	if err != nil {
		api.respondError(c, err)
		return
	}

	// the upgrader has already answered a failed handshake
	if err = api.EventHub.Serve(params.FormId, c.Writer, c.Request); err != nil {
		api.logger.Warnw("events handshake failed", "form", params.FormId, "error", err)
	}
}
