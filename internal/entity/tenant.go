package entity

// TenantContext é o vínculo explícito com a organização ativa. Montado
// uma vez na subida (a partir da sessão local) e passado em toda
// chamada de usecase; imutável por operação, substituído por inteiro
// quando o operador revalida a organização.
type TenantContext struct {
	OrgID    string `json:"org_id"`
	OrgName  string `json:"org_name"`
	WhatsApp string `json:"org_whatsapp"`
}

func NewTenantContext(org *Organization) TenantContext {
	return TenantContext{
		OrgID:    org.ID,
		OrgName:  org.Name,
		WhatsApp: org.WhatsAppNumber,
	}
}

// Bound diz se existe organização vinculada. Sem vínculo nenhuma
// operação de dados chega ao banco.
func (tc TenantContext) Bound() bool {
	return tc.OrgID != ""
}
