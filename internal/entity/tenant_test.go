package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTenantContextBound(t *testing.T) {
	assert.False(t, TenantContext{}.Bound())
	assert.False(t, TenantContext{OrgName: "Indústria Alfa"}.Bound())
	assert.True(t, TenantContext{OrgID: "org-1"}.Bound())
}

func TestNewTenantContext(t *testing.T) {
	org := &Organization{
		ID:             "org-1",
		Name:           "Indústria Alfa",
		WhatsAppNumber: "5511999999999",
	}

	tc := NewTenantContext(org)

	assert.Equal(t, "org-1", tc.OrgID)
	assert.Equal(t, "Indústria Alfa", tc.OrgName)
	assert.Equal(t, "5511999999999", tc.WhatsApp)
	assert.True(t, tc.Bound())
}
