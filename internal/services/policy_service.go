package services

import (
	"github.com/casbin/casbin/v2"

	"github.com/eshahhh/educounsel/domain"
)

// CasbinEnforcerWrapper adapts the real Casbin enforcer to the domain
// interface so the policy service can be tested without a database.
type CasbinEnforcerWrapper struct {
	enforcer *casbin.Enforcer
}

func NewCasbinEnforcerWrapper(enforcer *casbin.Enforcer) domain.CasbinEnforcer {
	return &CasbinEnforcerWrapper{enforcer: enforcer}
}

func (w *CasbinEnforcerWrapper) AddPolicy(params ...interface{}) (bool, error) {
	return w.enforcer.AddPolicy(params...)
}

func (w *CasbinEnforcerWrapper) RemovePolicy(params ...interface{}) (bool, error) {
	return w.enforcer.RemovePolicy(params...)
}

func (w *CasbinEnforcerWrapper) Enforce(rvals ...interface{}) (bool, error) {
	return w.enforcer.Enforce(rvals...)
}

func (w *CasbinEnforcerWrapper) GetPolicy() ([][]string, error) {
	return w.enforcer.GetPolicy()
}

func (w *CasbinEnforcerWrapper) SavePolicy() error {
	return w.enforcer.SavePolicy()
}

// PolicyServiceImpl implements domain.PolicyService using Casbin. Policy
// subjects are roles prefixed with "role_" to keep them out of the user ID
// namespace.
type PolicyServiceImpl struct {
	enforcer domain.CasbinEnforcer
}

// NewPolicyService creates a new policy service
func NewPolicyService(enforcer *casbin.Enforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: NewCasbinEnforcerWrapper(enforcer)}
}

// NewPolicyServiceWithEnforcer creates a policy service around any enforcer
// implementation (used by tests).
func NewPolicyServiceWithEnforcer(enforcer domain.CasbinEnforcer) domain.PolicyService {
	return &PolicyServiceImpl{enforcer: enforcer}
}

// CasbinSubject converts a role into the subject string stored in policies.
func CasbinSubject(role domain.Role) string {
	return "role_" + role.String()
}

// AddPolicy implements domain.PolicyService
func (p *PolicyServiceImpl) AddPolicy(role domain.Role, resource, action string) error {
	if !role.Valid() {
		return domain.ErrInvalidRole
	}
	if _, err := p.enforcer.AddPolicy(CasbinSubject(role), resource, action); err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// RemovePolicy implements domain.PolicyService
func (p *PolicyServiceImpl) RemovePolicy(role domain.Role, resource, action string) error {
	if !role.Valid() {
		return domain.ErrInvalidRole
	}
	if _, err := p.enforcer.RemovePolicy(CasbinSubject(role), resource, action); err != nil {
		return err
	}
	return p.enforcer.SavePolicy()
}

// CheckPermission implements domain.PolicyService
func (p *PolicyServiceImpl) CheckPermission(role domain.Role, resource, action string) (bool, error) {
	if !role.Valid() {
		return false, domain.ErrInvalidRole
	}
	return p.enforcer.Enforce(CasbinSubject(role), resource, action)
}

// Policies implements domain.PolicyService
func (p *PolicyServiceImpl) Policies() [][]string {
	policies, _ := p.enforcer.GetPolicy()
	return policies
}
