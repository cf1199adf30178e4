package domain

type AdAccountStatus string

const (
	AdAccountStatusActive   AdAccountStatus = "ACTIVE"
	AdAccountStatusInactive AdAccountStatus = "INACTIVE"
)

// AdAccount é a conta analisada. Cada conta pode ter várias contas de anúncios em plataformas diferentes.
type AdAccount struct {
	ID         string          `json:"id"`
	ExternalID string          `json:"external_id"`
	Name       string          `json:"name"`
	Nickname   *string         `json:"nickname"`
	Status     AdAccountStatus `json:"status"`
}

// DisplayName retorna o apelido da conta quando existir
func (a *AdAccount) DisplayName() string {
	if a.Nickname != nil && *a.Nickname != "" {
		return *a.Nickname
	}
	return a.Name
}
