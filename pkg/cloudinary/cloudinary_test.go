package cloudinary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicIDFromURL(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "plain upload",
			url:  "https://res.cloudinary.com/demo/image/upload/wellwish/listings/u1_abc.jpg",
			want: "wellwish/listings/u1_abc",
		},
		{
			name: "with transformation and version",
			url:  "https://res.cloudinary.com/demo/image/upload/q_auto,f_auto,w_800,c_fill/v1712345678/wellwish/listings/u1_abc.png",
			want: "wellwish/listings/u1_abc",
		},
		{
			name: "no folder",
			url:  "https://res.cloudinary.com/demo/image/upload/u1_abc.webp",
			want: "u1_abc",
		},
		{
			name: "not a cloudinary url",
			url:  "https://example.com/images/photo.jpg",
			want: "",
		},
		{
			name: "empty",
			url:  "",
			want: "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PublicIDFromURL(tc.url))
		})
	}
}

func TestBuildOptimizedImageURL(t *testing.T) {
	url := BuildOptimizedImageURL("demo", "wellwish/listings/u1_abc", 0)
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/q_auto,f_auto,w_800,c_fill/wellwish/listings/u1_abc", url)
}
