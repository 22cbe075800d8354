package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Options)
		wantErr bool
	}{
		{"defaults", func(o *Options) {}, false},
		{"zero depth", func(o *Options) { o.MaxDepth = 0 }, true},
		{"negative workers", func(o *Options) { o.Workers = -1 }, true},
		{"cache with depth of field", func(o *Options) { o.DepthOfField = true }, true},
		{"cache with antialias", func(o *Options) { o.Antialias = true }, true},
		{"jitter without cache", func(o *Options) {
			o.CacheFirstBounce = false
			o.DepthOfField = true
			o.Antialias = true
		}, false},
		{"everything off", func(o *Options) {
			o.CompactPaths = false
			o.SortByMaterial = false
			o.CacheFirstBounce = false
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := DefaultOptions()
			tt.modify(&options)

			err := options.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOptions)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
