package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEmailSyntaxValid(t *testing.T) {
	tests := map[string]bool{
		"ana@salao.com.br":     true,
		"ana.souza+1@mail.com": true,
		"ana@localhost":        false,
		"Ana <ana@mail.com>":   false,
		"ana":                  false,
		"":                     false,
	}
	for in, want := range tests {
		assert.Equal(t, want, IsEmailSyntaxValid(in), in)
	}
}

func TestIsEmailDomainValidRejectsMissingDomain(t *testing.T) {
	ctx := context.Background()
	assert.False(t, IsEmailDomainValid(ctx, "ana@"))
	assert.False(t, IsEmailDomainValid(ctx, "ana"))
	assert.False(t, IsEmailDomainValid(ctx, "@salao.com.br"))
}
