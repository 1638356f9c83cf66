package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple", "Contract Law", "contract-law"},
		{"punctuation", "Contract Law: An Overview!", "contract-law-an-overview"},
		{"accents", "Résumé für Anwälte", "resume-fur-anwalte"},
		{"dash runs", "a  --  b", "a-b"},
		{"leading trailing", "  -hello-  ", "hello"},
		{"empty", "", ""},
		{"numbers", "GDPR 2018 update", "gdpr-2018-update"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.input))
		})
	}
}

func TestNormalizePagination(t *testing.T) {
	page, limit := NormalizePagination(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = NormalizePagination(3, 500)
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, limit)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 2, TotalPages(18, 9))
}
