package bot

import (
	"casinobot/bot/common"
	"casinobot/domain/entities"
)

// Requirement is what the invoker must satisfy before a command runs
type Requirement int

const (
	RequireNothing Requirement = iota
	RequireCasinoChannel
	RequireMintRole
)

// PermissionGate checks channel and role requirements by name
type PermissionGate struct {
	casinoChannelName string
	mintRoleName      string
}

// NewPermissionGate creates a gate for the given casino channel and mint role names
func NewPermissionGate(casinoChannelName, mintRoleName string) *PermissionGate {
	return &PermissionGate{
		casinoChannelName: casinoChannelName,
		mintRoleName:      mintRoleName,
	}
}

// InCasino reports whether the invocation happened in the casino channel or by an administrator
func (g *PermissionGate) InCasino(inv *common.Invocation) bool {
	return inv.IsAdmin || inv.ChannelName == g.casinoChannelName
}

// CanMint reports whether the author holds the mint role
func (g *PermissionGate) CanMint(inv *common.Invocation) bool {
	return inv.HasRole(g.mintRoleName)
}

// Check returns a user-facing error when the invocation does not meet req
func (g *PermissionGate) Check(req Requirement, inv *common.Invocation) error {
	switch req {
	case RequireCasinoChannel:
		if !g.InCasino(inv) {
			return entities.ErrWrongChannel
		}
	case RequireMintRole:
		if !g.CanMint(inv) {
			return common.NewUserError(common.MsgNotAllowed, "missing mint role")
		}
	}
	return nil
}
