package turkish

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLower(t *testing.T) {
	assert.Equal(t, "istanbul", Lower("İSTANBUL"))
	assert.Equal(t, "istanbul", Lower("Istanbul"))
	assert.Equal(t, "şemsiye", Lower("ŞEMSİYE"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "merhaba dünya", Normalize("  Merhaba Dünya \n"))
}

func TestCleanMessage(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"  \n \t\n", ""},
		{"merhaba", "merhaba"},
		{"  çok   satırlı\n\n  bir\tmesaj  ", "çok satırlı bir mesaj"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanMessage(tt.in), "input %q", tt.in)
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "İzmir", Title("izmir"))
	assert.Equal(t, "Şanlıurfa", Title("şanlıurfa"))
}
