package access

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ArenaSlots/internal/domain"
)

// Policy неизменяемая таблица "роль -> разрешения".
// Создается один раз при старте и передается по указателю
type Policy struct {
	roles  map[string]map[domain.Capability]struct{}
	logger Logger
}

// NewPolicy строит политику из секции [roles] конфигурации
func NewPolicy(roles map[string][]string, logger Logger) (*Policy, error) {
	known := make(map[domain.Capability]struct{}, len(domain.KnownCapabilities))
	for _, c := range domain.KnownCapabilities {
		known[c] = struct{}{}
	}

	table := make(map[string]map[domain.Capability]struct{}, len(roles))
	for role, caps := range roles {
		set := make(map[domain.Capability]struct{}, len(caps))
		for _, name := range caps {
			c := domain.Capability(name)
			if _, ok := known[c]; !ok {
				return nil, fmt.Errorf("%w: role %q grants %q", ErrUnknownCapability, role, name)
			}
			set[c] = struct{}{}
		}
		table[role] = set
	}

	return &Policy{roles: table, logger: logger}, nil
}

// PermissionsFor возвращает разрешения роли в стабильном порядке.
// Неизвестная роль не имеет разрешений
func (p *Policy) PermissionsFor(role string) []domain.Capability {
	set := p.roles[role]
	result := make([]domain.Capability, 0, len(set))
	for c := range set {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// PrincipalFor создает пользователя с разрешениями его роли
func (p *Policy) PrincipalFor(userID uuid.UUID, username, role string) *domain.Principal {
	return &domain.Principal{
		UserID:      userID,
		Username:    username,
		Role:        role,
		Permissions: p.PermissionsFor(role),
	}
}

// Allows проверяет, что роль имеет разрешение
func (p *Policy) Allows(role string, c domain.Capability) bool {
	_, ok := p.roles[role][c]
	return ok
}

// Check проверяет разрешение пользователя: оно должно быть в наборе Principal.Permissions
// и разрешено его роли. Отказ логируется с указанием пользователя, роли и разрешения
func (p *Policy) Check(principal *domain.Principal, c domain.Capability) error {
	if principal == nil {
		p.logger.Warn("Access denied: anonymous request, capability=%s", c)
		return ErrAccessDenied
	}

	if !principal.Has(c) || !p.Allows(principal.Role, c) {
		p.logger.Warn("Access denied: user=%s (%s) role=%s capability=%s",
			principal.UserID, principal.Username, principal.Role, c)
		return ErrAccessDenied
	}

	return nil
}
