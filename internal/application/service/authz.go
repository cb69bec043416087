package service

import "github.com/minimahotel/pos-api/internal/domain/entity"

// VoidPolicy decides who may void a transaction. Managers void directly;
// front-desk staff must supply the manager code. The code is injected at
// startup from configuration.
type VoidPolicy struct {
	managerCode string
}

// NewVoidPolicy creates a void policy with the configured manager code
func NewVoidPolicy(managerCode string) *VoidPolicy {
	return &VoidPolicy{managerCode: managerCode}
}

// CanVoidDirectly reports whether the role may void without a code
func (p *VoidPolicy) CanVoidDirectly(role string) bool {
	return role == entity.RoleManager
}

// VerifyManagerCode checks a candidate code against the configured
// secret. Compared verbatim; no lockout or rate limiting is applied
// here.
func (p *VoidPolicy) VerifyManagerCode(candidate string) bool {
	return candidate == p.managerCode
}
