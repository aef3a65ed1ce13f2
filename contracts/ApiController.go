package contracts

import "github.com/gin-gonic/gin"

type ApiController interface {
	CreateFormAction(c *gin.Context)
	GetFormAction(c *gin.Context)
	SetCellAction(c *gin.Context)
	FocusAction(c *gin.Context)
	ScoreAction(c *gin.Context)
	SubscribeAction(c *gin.Context)
	EventsAction(c *gin.Context)
}
