package service

import (
	"fmt"
	"io"
	"strings"
	"time"

	"urban-explorer/database"
	"urban-explorer/database/model"
	"urban-explorer/logger"
	"urban-explorer/storage"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// uploadURLPrefix is the public URL prefix blobs are served under. SpotImage
// rows store `<prefix>/<namespace>/<file>` so the presentation layer can use
// the value verbatim.
const uploadURLPrefix = "/uploads/"

// SpotService orchestrates the spot and image lifecycle, keeping the record
// store and the blob store consistent.
type SpotService struct {
	db    *gorm.DB
	blobs *storage.Disk
}

func NewSpotService(db *gorm.DB, blobs *storage.Disk) *SpotService {
	return &SpotService{db: db, blobs: blobs}
}

// CreateSpotInput is the validated boundary struct for spot creation.
type CreateSpotInput struct {
	Title       string
	Description string
	Latitude    float64
	Longitude   float64
	VisitedAt   string
	CreatedBy   string
}

// ListSpots returns all spots with images eagerly attached. No pagination;
// the dataset is one person's map.
func (s *SpotService) ListSpots() ([]*model.Spot, error) {
	spots := make([]*model.Spot, 0)
	err := s.db.Model(model.Spot{}).
		Preload("Images").
		Find(&spots).
		Error
	if err != nil {
		return nil, err
	}
	for _, spot := range spots {
		if spot.Images == nil {
			spot.Images = []model.SpotImage{}
		}
	}
	return spots, nil
}

// GetSpot loads a single spot with its images.
func (s *SpotService) GetSpot(spotId string) (*model.Spot, error) {
	spot := &model.Spot{}
	err := s.db.Preload("Images").Where("id = ?", spotId).First(spot).Error
	if database.IsNotFound(err) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}
	if spot.Images == nil {
		spot.Images = []model.SpotImage{}
	}
	return spot, nil
}

// CreateSpot validates the input, assigns a new identity and persists the
// spot with the requester's email snapshot.
func (s *SpotService) CreateSpot(input CreateSpotInput) (*model.Spot, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	visitedAt, err := parseVisitedAt(input.VisitedAt)
	if err != nil {
		return nil, err
	}
	if input.Latitude < -90 || input.Latitude > 90 {
		return nil, fmt.Errorf("%w: latitude %v out of range", ErrValidation, input.Latitude)
	}
	if input.Longitude < -180 || input.Longitude > 180 {
		return nil, fmt.Errorf("%w: longitude %v out of range", ErrValidation, input.Longitude)
	}

	spot := &model.Spot{
		Id:          uuid.NewString(),
		Title:       input.Title,
		Description: input.Description,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		VisitedAt:   visitedAt,
		CreatedBy:   input.CreatedBy,
		Images:      []model.SpotImage{},
	}
	if err := s.db.Create(spot).Error; err != nil {
		return nil, err
	}
	return spot, nil
}

// DeleteSpot removes the spot and everything attached to it. Image rows go
// first, then the spot row, in one transaction; blob removal happens after
// commit and is best-effort per item so one failed unlink never aborts the
// cleanup of the rest.
func (s *SpotService) DeleteSpot(spotId string) error {
	spot := &model.Spot{}
	err := s.db.Where("id = ?", spotId).First(spot).Error
	if database.IsNotFound(err) {
		return ErrNotFound
	} else if err != nil {
		return err
	}

	var images []model.SpotImage
	if err := s.db.Where("spot_id = ?", spotId).Find(&images).Error; err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("spot_id = ?", spotId).Delete(&model.SpotImage{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", spotId).Delete(&model.Spot{}).Error
	})
	if err != nil {
		return err
	}

	for _, image := range images {
		if err := s.blobs.Delete(urlToBlobPath(image.Url)); err != nil {
			logger.Warningf("delete spot %s: removing blob %s failed: %v", spotId, image.Url, err)
		}
	}
	return nil
}

// AttachImage stores the uploaded bytes and records the image row.
func (s *SpotService) AttachImage(spotId, fileName string, file io.Reader) (*model.SpotImage, error) {
	if strings.TrimSpace(spotId) == "" {
		return nil, fmt.Errorf("%w: spot id is required", ErrValidation)
	}
	if fileName == "" || file == nil {
		return nil, fmt.Errorf("%w: no file uploaded", ErrValidation)
	}

	var count int64
	if err := s.db.Model(model.Spot{}).Where("id = ?", spotId).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNotFound
	}

	relPath, err := s.blobs.Put(spotId, fileName, file)
	if err != nil {
		return nil, err
	}

	image := &model.SpotImage{
		Id:     uuid.NewString(),
		SpotId: spotId,
		Url:    uploadURLPrefix + relPath,
	}
	if err := s.db.Create(image).Error; err != nil {
		// keep the blob store consistent with the row that never landed
		if delErr := s.blobs.Delete(relPath); delErr != nil {
			logger.Warningf("attach image: orphan blob %s left behind: %v", relPath, delErr)
		}
		return nil, err
	}
	return image, nil
}

// DetachImage deletes a single image. The row must both exist and belong to
// the spot named in the path; a mismatch reads the same as an absent row.
func (s *SpotService) DetachImage(spotId, imageId string) error {
	image := &model.SpotImage{}
	err := s.db.Where("id = ?", imageId).First(image).Error
	if database.IsNotFound(err) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	if image.SpotId != spotId {
		return ErrNotFound
	}

	if err := s.blobs.Delete(urlToBlobPath(image.Url)); err != nil {
		logger.Warningf("detach image %s: removing blob %s failed: %v", imageId, image.Url, err)
	}
	return s.db.Delete(&model.SpotImage{}, "id = ?", imageId).Error
}

// geoJSON shapes for the map export.
type geoFeature struct {
	Type       string         `json:"type"`
	Geometry   geoPoint       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

type geoPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type geoFeatureCollection struct {
	Type     string       `json:"type"`
	Features []geoFeature `json:"features"`
}

// ExportGeoJSON renders all spots as a GeoJSON FeatureCollection.
func (s *SpotService) ExportGeoJSON() ([]byte, error) {
	spots, err := s.ListSpots()
	if err != nil {
		return nil, err
	}

	collection := geoFeatureCollection{
		Type:     "FeatureCollection",
		Features: make([]geoFeature, 0, len(spots)),
	}
	for _, spot := range spots {
		imageUrls := make([]string, 0, len(spot.Images))
		for _, image := range spot.Images {
			imageUrls = append(imageUrls, image.Url)
		}
		collection.Features = append(collection.Features, geoFeature{
			Type: "Feature",
			Geometry: geoPoint{
				Type:        "Point",
				Coordinates: [2]float64{spot.Longitude, spot.Latitude},
			},
			Properties: map[string]any{
				"id":          spot.Id,
				"title":       spot.Title,
				"description": spot.Description,
				"visitedAt":   spot.VisitedAt.Format(time.RFC3339),
				"createdBy":   spot.CreatedBy,
				"images":      imageUrls,
			},
		})
	}
	return json.Marshal(collection)
}

func parseVisitedAt(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: visitedAt is required", ErrValidation)
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: visitedAt %q is not a date", ErrValidation, value)
}

// urlToBlobPath maps a stored image URL back onto the blob store path.
func urlToBlobPath(url string) string {
	return strings.TrimPrefix(url, uploadURLPrefix)
}
