package controller

import (
	"net/http"

	"urban-explorer/config"
	"urban-explorer/database/model"
	"urban-explorer/web/middleware"
	"urban-explorer/web/service"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

type createSpotForm struct {
	Title       string  `json:"title" form:"title"`
	Description string  `json:"description" form:"description"`
	Latitude    float64 `json:"latitude" form:"latitude"`
	Longitude   float64 `json:"longitude" form:"longitude"`
	VisitedAt   string  `json:"visitedAt" form:"visitedAt"`
}

// SpotController exposes the spot and image lifecycle operations. Reads are
// open to any session, mutations to admins only.
type SpotController struct {
	spotService *service.SpotService
}

func NewSpotController(g *gin.RouterGroup, spotService *service.SpotService) *SpotController {
	a := &SpotController{spotService: spotService}
	a.initRouter(g)
	return a
}

func (a *SpotController) initRouter(g *gin.RouterGroup) {
	authed := g.Group("/spots")
	authed.Use(middleware.AuthRequired())
	{
		authed.GET("", a.listSpots)
		authed.GET("/export", a.exportGeoJSON)
		authed.GET("/:spotId/qr", a.spotQR)
	}

	admin := g.Group("/spots")
	admin.Use(middleware.AuthRequired(), middleware.RequireRole(model.RoleAdmin))
	{
		admin.POST("", a.createSpot)
		admin.DELETE("/:spotId", a.deleteSpot)
		admin.POST("/:spotId/upload", a.uploadImage)
		admin.DELETE("/:spotId/upload/:imageId", a.detachImage)
	}
}

// listSpots returns every spot with its images eagerly attached.
func (a *SpotController) listSpots(c *gin.Context) {
	spots, err := a.spotService.ListSpots()
	if err != nil {
		serviceError(c, err, "api.spots.notFound", "api.spots.listFailed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"spots": spots})
}

// createSpot persists a new spot stamped with the requester's email.
func (a *SpotController) createSpot(c *gin.Context) {
	var form createSpotForm
	if err := c.ShouldBind(&form); err != nil {
		jsonError(c, http.StatusBadRequest, I18nWeb(c, "api.invalidForm"))
		return
	}
	spot, err := a.spotService.CreateSpot(service.CreateSpotInput{
		Title:       form.Title,
		Description: form.Description,
		Latitude:    form.Latitude,
		Longitude:   form.Longitude,
		VisitedAt:   form.VisitedAt,
		CreatedBy:   c.GetString("user_email"),
	})
	if err != nil {
		serviceError(c, err, "api.spots.notFound", "api.spots.createFailed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "spot": spot})
}

func (a *SpotController) deleteSpot(c *gin.Context) {
	if err := a.spotService.DeleteSpot(c.Param("spotId")); err != nil {
		serviceError(c, err, "api.spots.notFound", "api.spots.deleteFailed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// uploadImage stores a multipart file and attaches it to the spot.
func (a *SpotController) uploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		jsonError(c, http.StatusBadRequest, I18nWeb(c, "api.uploads.missingFile"))
		return
	}
	defer file.Close()

	image, err := a.spotService.AttachImage(c.Param("spotId"), header.Filename, file)
	if err != nil {
		serviceError(c, err, "api.spots.notFound", "api.uploads.uploadFailed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "url": image.Url, "id": image.Id})
}

func (a *SpotController) detachImage(c *gin.Context) {
	err := a.spotService.DetachImage(c.Param("spotId"), c.Param("imageId"))
	if err != nil {
		serviceError(c, err, "api.uploads.imageNotFound", "api.uploads.detachFailed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// exportGeoJSON renders the whole map as a FeatureCollection.
func (a *SpotController) exportGeoJSON(c *gin.Context) {
	data, err := a.spotService.ExportGeoJSON()
	if err != nil {
		serviceError(c, err, "api.spots.notFound", "api.spots.exportFailed")
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data)
}

// spotQR renders a QR code pointing at the spot on the public map.
func (a *SpotController) spotQR(c *gin.Context) {
	spot, err := a.spotService.GetSpot(c.Param("spotId"))
	if err != nil {
		serviceError(c, err, "api.spots.notFound", "api.spots.qrFailed")
		return
	}
	url := config.GetPublicBaseURL() + "/map?spot=" + spot.Id
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		serviceError(c, err, "api.spots.notFound", "api.spots.qrFailed")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
