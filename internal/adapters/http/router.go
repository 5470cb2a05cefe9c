package http

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the REST surface under /api. Sign and read are gated
// by the role-access credential; everything else is open.
func RegisterRoutes(router *gin.Engine, documents *DocumentHandler, workflows *WorkflowHandler, jwtSecret string) {
	api := router.Group("/api")
	{
		api.POST("/documents/upload", documents.Upload)
		api.GET("/documents/:documentId/preview", documents.Preview)
		api.GET("/documents/:documentId/download", documents.Download)

		api.POST("/workflows", workflows.Create)
		api.POST("/workflows/:workflowId/submit", workflows.Submit)

		guarded := api.Group("", RoleAuth(jwtSecret))
		guarded.POST("/workflows/:workflowId/sign", workflows.Sign)
		guarded.GET("/workflows/:workflowId", workflows.Get)
	}
}
