package controller

import (
	"net/http"

	"urban-explorer/storage"
	"urban-explorer/web/middleware"

	"github.com/gin-gonic/gin"
)

// UploadController serves stored blobs back to authenticated users. Access
// matches the spot listing: any session may fetch the image URLs the listing
// embeds.
type UploadController struct {
	blobs *storage.Disk
}

func NewUploadController(g *gin.RouterGroup, blobs *storage.Disk) *UploadController {
	a := &UploadController{blobs: blobs}
	a.initRouter(g)
	return a
}

func (a *UploadController) initRouter(g *gin.RouterGroup) {
	authed := g.Group("/uploads")
	authed.Use(middleware.AuthRequired())
	{
		authed.GET("/*filepath", a.serveBlob)
	}
}

func (a *UploadController) serveBlob(c *gin.Context) {
	relPath := c.Param("filepath")
	file, info, err := a.blobs.Open(relPath)
	if err != nil {
		jsonError(c, http.StatusNotFound, I18nWeb(c, "api.uploads.fileNotFound"))
		return
	}
	defer file.Close()

	c.DataFromReader(http.StatusOK, info.Size(), storage.ContentType(relPath), file, nil)
}
