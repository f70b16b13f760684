package value

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Role определяет возможности вызывающей стороны.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleBidder Role = "BIDDER"
)

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, error) {
	switch role := Role(strings.ToUpper(strings.TrimSpace(s))); role {
	case RoleAdmin, RoleBidder:
		return role, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Identity — уже проверенная личность вызывающего. Приходит от шлюза,
// движок никогда не берёт идентификатор участника из тела запроса.
type Identity struct {
	PartyID uuid.UUID
	Role    Role
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanBid: только BIDDER, привязанный к участнику.
func (i Identity) CanBid() bool {
	return i.Role == RoleBidder && i.PartyID != uuid.Nil
}
