package service

import (
	"strings"
	"testing"

	"urban-explorer/database/model"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSpotAndList(t *testing.T) {
	db, blobs := setupTest(t)
	svc := NewSpotService(db, blobs)

	spot, err := svc.CreateSpot(CreateSpotInput{
		Title:       "Tunnel",
		Description: "",
		Latitude:    32.7,
		Longitude:   -117.1,
		VisitedAt:   "2024-01-01",
		CreatedBy:   "admin@example.com",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, spot.Id)
	assert.Equal(t, "admin@example.com", spot.CreatedBy)

	spots, err := svc.ListSpots()
	require.NoError(t, err)
	require.Len(t, spots, 1)
	assert.Equal(t, spot.Id, spots[0].Id)
	assert.NotNil(t, spots[0].Images)
	assert.Empty(t, spots[0].Images)
}

func TestCreateSpotValidation(t *testing.T) {
	db, blobs := setupTest(t)
	svc := NewSpotService(db, blobs)

	cases := []struct {
		name  string
		input CreateSpotInput
	}{
		{"missing title", CreateSpotInput{VisitedAt: "2024-01-01"}},
		{"missing visitedAt", CreateSpotInput{Title: "Tunnel"}},
		{"bad visitedAt", CreateSpotInput{Title: "Tunnel", VisitedAt: "not-a-date"}},
		{"latitude too big", CreateSpotInput{Title: "Tunnel", VisitedAt: "2024-01-01", Latitude: 91}},
		{"latitude too small", CreateSpotInput{Title: "Tunnel", VisitedAt: "2024-01-01", Latitude: -90.5}},
		{"longitude too big", CreateSpotInput{Title: "Tunnel", VisitedAt: "2024-01-01", Longitude: 181}},
		{"longitude too small", CreateSpotInput{Title: "Tunnel", VisitedAt: "2024-01-01", Longitude: -180.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateSpot(tc.input)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	spots, err := svc.ListSpots()
	require.NoError(t, err)
	assert.Empty(t, spots)
}

func TestCreateSpotAcceptsRFC3339(t *testing.T) {
	db, blobs := setupTest(t)
	svc := NewSpotService(db, blobs)

	_, err := svc.CreateSpot(CreateSpotInput{
		Title:     "Pier",
		VisitedAt: "2024-06-01T12:30:00Z",
	})
	assert.NoError(t, err)
}

func TestAttachAndDetachImage(t *testing.T) {
	db, blobs := setupTest(t)
	svc := NewSpotService(db, blobs)

	spot, err := svc.CreateSpot(CreateSpotInput{Title: "Tunnel", VisitedAt: "2024-01-01"})
	require.NoError(t, err)

	image, err := svc.AttachImage(spot.Id, "photo.jpg", strings.NewReader("jpegbytes"))
	require.NoError(t, err)
	assert.NotEmpty(t, image.Id)
	assert.True(t, strings.HasPrefix(image.Url, "/uploads/"+spot.Id+"/"))
	assert.True(t, strings.HasSuffix(image.Url, "_photo.jpg"))

	// the blob the row references must exist
	file, _, err := blobs.Open(strings.TrimPrefix(image.Url, "/uploads/"))
	require.NoError(t, err)
	file.Close()

	spots, err := svc.ListSpots()
	require.NoError(t, err)
	require.Len(t, spots, 1)
	require.Len(t, spots[0].Images, 1)
	assert.Equal(t, image.Id, spots[0].Images[0].Id)
	assert.Equal(t, image.Url, spots[0].Images[0].Url)

	require.NoError(t, svc.DetachImage(spot.Id, image.Id))

	spots, err = svc.ListSpots()
	require.NoError(t, err)
	assert.Empty(t, spots[0].Images)

	_, _, err = blobs.Open(strings.TrimPrefix(image.Url, "/uploads/"))
	assert.Error(t, err)

	// a second detach of the same id reads as absent
	assert.ErrorIs(t, svc.DetachImage(spot.Id, image.Id), ErrNotFound)
}

func TestAttachImageValidation(t *testing.T) {
	db, blobs := setupTest(t)
	svc := NewSpotService(db, blobs)

	_, err := svc.AttachImage("", "photo.jpg", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrValidation)

	spot, err := svc.CreateSpot(CreateSpotInput{Title: "Tunnel", VisitedAt: "2024-01-01"})
	require.NoError(t, err)

	_, err = svc.AttachImage(spot.Id, "", nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AttachImage("no-such-spot", "photo.jpg", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDetachImageChecksOwnership(t *testing.T) {
	db, blobs := setupTest(t)
	svc := NewSpotService(db, blobs)

	first, err := svc.CreateSpot(CreateSpotInput{Title: "Tunnel", VisitedAt: "2024-01-01"})
	require.NoError(t, err)
	second, err := svc.CreateSpot(CreateSpotInput{Title: "Pier", VisitedAt: "2024-01-02"})
	require.NoError(t, err)

	image, err := svc.AttachImage(first.Id, "photo.jpg", strings.NewReader("x"))
	require.NoError(t, err)

	// naming the wrong owning spot must not delete the image
	assert.ErrorIs(t, svc.DetachImage(second.Id, image.Id), ErrNotFound)

	spots, err := svc.ListSpots()
	require.NoError(t, err)
	for _, spot := range spots {
		if spot.Id == first.Id {
			assert.Len(t, spot.Images, 1)
		}
	}
}

func TestDeleteSpotRemovesImagesAndBlobs(t *testing.T) {
	db, blobs := setupTest(t)
	svc := NewSpotService(db, blobs)

	spot, err := svc.CreateSpot(CreateSpotInput{Title: "Tunnel", VisitedAt: "2024-01-01"})
	require.NoError(t, err)

	first, err := svc.AttachImage(spot.Id, "a.jpg", strings.NewReader("a"))
	require.NoError(t, err)
	second, err := svc.AttachImage(spot.Id, "b.jpg", strings.NewReader("b"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSpot(spot.Id))

	spots, err := svc.ListSpots()
	require.NoError(t, err)
	assert.Empty(t, spots)

	var count int64
	require.NoError(t, db.Model(model.SpotImage{}).Count(&count).Error)
	assert.Zero(t, count)

	for _, url := range []string{first.Url, second.Url} {
		_, _, err := blobs.Open(strings.TrimPrefix(url, "/uploads/"))
		assert.Error(t, err)
	}

	// second delete of the same id
	assert.ErrorIs(t, svc.DeleteSpot(spot.Id), ErrNotFound)
}

func TestDeleteSpotSurvivesMissingBlob(t *testing.T) {
	db, blobs := setupTest(t)
	svc := NewSpotService(db, blobs)

	spot, err := svc.CreateSpot(CreateSpotInput{Title: "Tunnel", VisitedAt: "2024-01-01"})
	require.NoError(t, err)
	image, err := svc.AttachImage(spot.Id, "a.jpg", strings.NewReader("a"))
	require.NoError(t, err)

	// blob vanished out from under the row; cleanup must still succeed
	require.NoError(t, blobs.Delete(strings.TrimPrefix(image.Url, "/uploads/")))
	assert.NoError(t, svc.DeleteSpot(spot.Id))
}

func TestExportGeoJSON(t *testing.T) {
	db, blobs := setupTest(t)
	svc := NewSpotService(db, blobs)

	spot, err := svc.CreateSpot(CreateSpotInput{
		Title:     "Tunnel",
		Latitude:  32.7,
		Longitude: -117.1,
		VisitedAt: "2024-01-01",
	})
	require.NoError(t, err)

	data, err := svc.ExportGeoJSON()
	require.NoError(t, err)

	var collection map[string]any
	require.NoError(t, json.Unmarshal(data, &collection))
	assert.Equal(t, "FeatureCollection", collection["type"])

	features := collection["features"].([]any)
	require.Len(t, features, 1)
	feature := features[0].(map[string]any)
	geometry := feature["geometry"].(map[string]any)
	coords := geometry["coordinates"].([]any)
	assert.InDelta(t, -117.1, coords[0].(float64), 1e-9)
	assert.InDelta(t, 32.7, coords[1].(float64), 1e-9)
	assert.Equal(t, spot.Id, feature["properties"].(map[string]any)["id"])
}
