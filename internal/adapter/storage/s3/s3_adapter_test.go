package s3

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := objectKey("Holiday Photo.JPG")

	require.True(t, strings.HasPrefix(key, "products/"))
	require.True(t, strings.HasSuffix(key, ".jpg"))
	_, err := uuid.Parse(strings.TrimSuffix(strings.TrimPrefix(key, "products/"), ".jpg"))
	assert.NoError(t, err)

	assert.NotEqual(t, objectKey("a.png"), objectKey("a.png"))
	assert.NotContains(t, objectKey("noext"), ".")
}

func TestObjectKeyFromURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{"endpoint url", "http://localhost:9000/product-images/products/abc.png", "products/abc.png", false},
		{"public url with path prefix", "https://cdn.example.com/media/product-images/products/abc.png", "products/abc.png", false},
		{"other bucket", "http://localhost:9000/avatars/products/abc.png", "", true},
		{"bucket only", "http://localhost:9000/product-images/", "", true},
		{"garbage", "://", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := objectKeyFromURL("product-images", tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestObjectURLRoundTrip(t *testing.T) {
	key := objectKey("x.webp")
	u := objectURL("http://minio:9000", "product-images", key)

	got, err := objectKeyFromURL("product-images", u)
	require.NoError(t, err)
	assert.Equal(t, key, got)
}
