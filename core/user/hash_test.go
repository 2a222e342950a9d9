package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasher(t *testing.T) {
	h := NewHasher("secret")

	digest := h.Hash("pw123")
	assert.Equal(t, digest, h.Hash("pw123"), "hash must be deterministic")
	assert.NotEqual(t, "pw123", digest)
	assert.Len(t, digest, hashKeyLen*2)
	assert.NotEqual(t, digest, NewHasher("other secret").Hash("pw123"), "salt must depend on the secret key")

	tests := []struct {
		name string
		pwd  string
		want bool
	}{
		{name: "same password", pwd: "pw123", want: true},
		{name: "extra char", pwd: "pw123x", want: false},
		{name: "changed char", pwd: "pw124", want: false},
		{name: "case", pwd: "PW123", want: false},
		{name: "empty", pwd: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.Check(digest, tt.pwd); got != tt.want {
				t.Errorf("Check() = %v, want %v", got, tt.want)
			}
		})
	}
}
