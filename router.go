package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"formSheet/contracts"
)

const ApiVersion = "v1"

const (
	formsPath     = "/forms"
	formPath      = formsPath + "/:form_id"
	cellPath      = formPath + "/cells/:cell_id"
	focusPath     = formPath + "/focus"
	scorePath     = formPath + "/score"
	subscribePath = formPath + "/subscribe"
	eventsPath    = formPath + "/events"
)

func SetupRouter(controller contracts.ApiController) *gin.Engine {
	router := gin.New()

	apiRouterGroup := router.Group("/api/" + ApiVersion)
	apiRouterGroup.POST(formsPath, controller.CreateFormAction)
	apiRouterGroup.GET(formPath, controller.GetFormAction)
	apiRouterGroup.POST(cellPath, controller.SetCellAction)
	apiRouterGroup.POST(focusPath, controller.FocusAction)
	apiRouterGroup.GET(scorePath, controller.ScoreAction)
	apiRouterGroup.POST(subscribePath, controller.SubscribeAction)
	apiRouterGroup.GET(eventsPath, controller.EventsAction)

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "health")
	})

	return router
}
