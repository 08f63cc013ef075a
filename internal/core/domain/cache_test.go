package domain_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/stamp/internal/core/domain"
)

func TestIsCacheableAsset(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"/static/js/main.4f2a.js", true},
		{"/static/css/main.css", true},
		{"/logo.svg", true},
		{"/photo.JPG", false},
		{"/img/hero.webp", true},
		{"/favicon.ico", true},
		{"/app.js?v=2", true},
		{"/about", false},
		{"/", false},
		{"/api/projects.json", true}, // ".js" is a substring of ".json"
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.IsCacheableAsset(tt.url))
		})
	}
}

func TestStoreNames(t *testing.T) {
	assert.Equal(t, "static-1.0.0-abc", domain.StaticStoreName("1.0.0-abc"))
	assert.Equal(t, "dynamic-1.0.0-abc", domain.DynamicStoreName("1.0.0-abc"))
	assert.NotEqual(t, domain.StaticStoreName("v1"), domain.StaticStoreName("v2"))
}

func TestRequest_Predicates(t *testing.T) {
	req := domain.NewRequest(http.MethodGet, "/")
	assert.True(t, req.IsGet())
	assert.False(t, req.IsNavigation())

	req.Mode = domain.ModeNavigate
	assert.True(t, req.IsNavigation())

	post := domain.NewRequest(http.MethodPost, "/api")
	assert.False(t, post.IsGet())
}

func TestResponse_Clone(t *testing.T) {
	orig := &domain.Response{
		Status: http.StatusOK,
		Header: http.Header{"Content-Type": {"text/css"}},
		Body:   []byte("body{}"),
	}

	c := orig.Clone()
	c.Body[0] = 'B'
	c.Header.Set("Content-Type", "text/plain")

	assert.Equal(t, "body{}", string(orig.Body))
	assert.Equal(t, "text/css", orig.Header.Get("Content-Type"))
	assert.True(t, c.OK())
	assert.Nil(t, (*domain.Response)(nil).Clone())
}

func TestResponse_OK(t *testing.T) {
	assert.True(t, (&domain.Response{Status: http.StatusNoContent}).OK())
	assert.False(t, (&domain.Response{Status: http.StatusNotFound}).OK())
	assert.False(t, (&domain.Response{Status: http.StatusNotModified}).OK())
}
