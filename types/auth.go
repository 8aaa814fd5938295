package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Role identifies a privileged principal of a fund component.
type Role string

const (
	RoleOwner       Role = "owner"
	RoleRebalancer  Role = "rebalancer"
	RoleFundManager Role = "fund manager"
	RoleMinter      Role = "minter"
	RoleDataSource  Role = "authorized data source"
)

// RequireRole is the single authorization check invoked at the entry of every
// privileged operation. It succeeds when caller equals any of the holders.
func RequireRole(role Role, caller string, holders ...string) error {
	if caller != "" {
		for _, holder := range holders {
			if holder != "" && holder == caller {
				return nil
			}
		}
	}
	return &AuthorizationError{Role: role, Caller: caller}
}

// ParseAddress decodes a bech32 account address.
func ParseAddress(addr string) (sdk.AccAddress, error) {
	if addr == "" {
		return nil, ErrInvalidAddress.Wrap("empty address")
	}
	acc, err := sdk.AccAddressFromBech32(addr)
	if err != nil {
		return nil, ErrInvalidAddress.Wrapf("%s: %s", addr, err)
	}
	return acc, nil
}
