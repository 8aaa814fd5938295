package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
)

// Message types
const (
	TypeMsgRegisterPool          = "register_pool"
	TypeMsgSetPoolEnabled        = "set_pool_enabled"
	TypeMsgSetFundManager        = "set_fund_manager"
	TypeMsgSetFundRebalancer     = "set_fund_rebalancer"
	TypeMsgTransferOwnership     = "transfer_ownership"
	TypeMsgDisableFund           = "disable_fund"
	TypeMsgEnableFund            = "enable_fund"
	TypeMsgSetAaveReferralCode   = "set_aave_referral_code"
	TypeMsgSetEnzymeComptroller  = "set_enzyme_comptroller"
	TypeMsgAddFuseAsset          = "add_fuse_asset"
	TypeMsgApprovePool           = "approve_pool"
	TypeMsgDepositToPool         = "deposit_to_pool"
	TypeMsgWithdrawFromPool      = "withdraw_from_pool"
	TypeMsgWithdrawAllFromPool   = "withdraw_all_from_pool"
	TypeMsgUpgradeFundController = "upgrade_fund_controller"
)

func signers(addr string) []sdk.AccAddress {
	acc, _ := sdk.AccAddressFromBech32(addr)
	return []sdk.AccAddress{acc}
}

// MsgRegisterPool binds a pool id to a venue market.
type MsgRegisterPool struct {
	Owner  string `json:"owner"`
	PoolID uint64 `json:"pool_id"`
	Venue  string `json:"venue"`
	Market string `json:"market"`
}

// Route implements sdk.Msg
func (msg MsgRegisterPool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgRegisterPool) Type() string { return TypeMsgRegisterPool }

// ValidateBasic implements sdk.Msg
func (msg MsgRegisterPool) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgRegisterPool) GetSigners() []sdk.AccAddress { return signers(msg.Owner) }

// String implements proto.Message
func (msg MsgRegisterPool) String() string {
	return fmt.Sprintf("MsgRegisterPool{Owner: %s, PoolID: %d, Venue: %s, Market: %s}", msg.Owner, msg.PoolID, msg.Venue, msg.Market)
}

// MsgRegisterPoolResponse defines the RegisterPool response
type MsgRegisterPoolResponse struct{}

// MsgSetPoolEnabled toggles new deposits into a pool.
type MsgSetPoolEnabled struct {
	Owner   string `json:"owner"`
	PoolID  uint64 `json:"pool_id"`
	Enabled bool   `json:"enabled"`
}

// Route implements sdk.Msg
func (msg MsgSetPoolEnabled) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetPoolEnabled) Type() string { return TypeMsgSetPoolEnabled }

// ValidateBasic implements sdk.Msg
func (msg MsgSetPoolEnabled) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgSetPoolEnabled) GetSigners() []sdk.AccAddress { return signers(msg.Owner) }

// String implements proto.Message
func (msg MsgSetPoolEnabled) String() string {
	return fmt.Sprintf("MsgSetPoolEnabled{Owner: %s, PoolID: %d, Enabled: %t}", msg.Owner, msg.PoolID, msg.Enabled)
}

// MsgSetPoolEnabledResponse defines the SetPoolEnabled response
type MsgSetPoolEnabledResponse struct{}

// MsgSetFundManager sets the fund manager allowed to draw idle capital.
type MsgSetFundManager struct {
	Owner       string `json:"owner"`
	FundManager string `json:"fund_manager"`
}

// Route implements sdk.Msg
func (msg MsgSetFundManager) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetFundManager) Type() string { return TypeMsgSetFundManager }

// ValidateBasic implements sdk.Msg
func (msg MsgSetFundManager) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgSetFundManager) GetSigners() []sdk.AccAddress { return signers(msg.Owner) }

// String implements proto.Message
func (msg MsgSetFundManager) String() string {
	return fmt.Sprintf("MsgSetFundManager{Owner: %s, FundManager: %s}", msg.Owner, msg.FundManager)
}

// MsgSetFundManagerResponse defines the SetFundManager response
type MsgSetFundManagerResponse struct{}

// MsgSetFundRebalancer sets the rebalancer.
type MsgSetFundRebalancer struct {
	Owner      string `json:"owner"`
	Rebalancer string `json:"rebalancer"`
}

// Route implements sdk.Msg
func (msg MsgSetFundRebalancer) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetFundRebalancer) Type() string { return TypeMsgSetFundRebalancer }

// ValidateBasic implements sdk.Msg
func (msg MsgSetFundRebalancer) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgSetFundRebalancer) GetSigners() []sdk.AccAddress { return signers(msg.Owner) }

// String implements proto.Message
func (msg MsgSetFundRebalancer) String() string {
	return fmt.Sprintf("MsgSetFundRebalancer{Owner: %s, Rebalancer: %s}", msg.Owner, msg.Rebalancer)
}

// MsgSetFundRebalancerResponse defines the SetFundRebalancer response
type MsgSetFundRebalancerResponse struct{}

// MsgTransferOwnership hands the owner role to a new address.
type MsgTransferOwnership struct {
	Owner    string `json:"owner"`
	NewOwner string `json:"new_owner"`
}

// Route implements sdk.Msg
func (msg MsgTransferOwnership) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgTransferOwnership) Type() string { return TypeMsgTransferOwnership }

// ValidateBasic implements sdk.Msg
func (msg MsgTransferOwnership) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgTransferOwnership) GetSigners() []sdk.AccAddress { return signers(msg.Owner) }

// String implements proto.Message
func (msg MsgTransferOwnership) String() string {
	return fmt.Sprintf("MsgTransferOwnership{Owner: %s, NewOwner: %s}", msg.Owner, msg.NewOwner)
}

// MsgTransferOwnershipResponse defines the TransferOwnership response
type MsgTransferOwnershipResponse struct{}

// MsgDisableFund stops all pool movements.
type MsgDisableFund struct {
	Owner string `json:"owner"`
}

// Route implements sdk.Msg
func (msg MsgDisableFund) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgDisableFund) Type() string { return TypeMsgDisableFund }

// ValidateBasic implements sdk.Msg
func (msg MsgDisableFund) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgDisableFund) GetSigners() []sdk.AccAddress { return signers(msg.Owner) }

// String implements proto.Message
func (msg MsgDisableFund) String() string {
	return fmt.Sprintf("MsgDisableFund{Owner: %s}", msg.Owner)
}

// MsgDisableFundResponse defines the DisableFund response
type MsgDisableFundResponse struct{}

// MsgEnableFund resumes pool movements.
type MsgEnableFund struct {
	Owner string `json:"owner"`
}

// Route implements sdk.Msg
func (msg MsgEnableFund) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgEnableFund) Type() string { return TypeMsgEnableFund }

// ValidateBasic implements sdk.Msg
func (msg MsgEnableFund) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgEnableFund) GetSigners() []sdk.AccAddress { return signers(msg.Owner) }

// String implements proto.Message
func (msg MsgEnableFund) String() string {
	return fmt.Sprintf("MsgEnableFund{Owner: %s}", msg.Owner)
}

// MsgEnableFundResponse defines the EnableFund response
type MsgEnableFundResponse struct{}

// MsgSetAaveReferralCode sets the referral code passed on Aave deposits.
type MsgSetAaveReferralCode struct {
	Owner        string `json:"owner"`
	ReferralCode uint32 `json:"referral_code"`
}

// Route implements sdk.Msg
func (msg MsgSetAaveReferralCode) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetAaveReferralCode) Type() string { return TypeMsgSetAaveReferralCode }

// ValidateBasic implements sdk.Msg
func (msg MsgSetAaveReferralCode) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgSetAaveReferralCode) GetSigners() []sdk.AccAddress { return signers(msg.Owner) }

// String implements proto.Message
func (msg MsgSetAaveReferralCode) String() string {
	return fmt.Sprintf("MsgSetAaveReferralCode{Owner: %s, ReferralCode: %d}", msg.Owner, msg.ReferralCode)
}

// MsgSetAaveReferralCodeResponse defines the SetAaveReferralCode response
type MsgSetAaveReferralCodeResponse struct{}

// MsgSetEnzymeComptroller binds the Enzyme pool to a comptroller.
type MsgSetEnzymeComptroller struct {
	Owner       string `json:"owner"`
	Comptroller string `json:"comptroller"`
}

// Route implements sdk.Msg
func (msg MsgSetEnzymeComptroller) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetEnzymeComptroller) Type() string { return TypeMsgSetEnzymeComptroller }

// ValidateBasic implements sdk.Msg
func (msg MsgSetEnzymeComptroller) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgSetEnzymeComptroller) GetSigners() []sdk.AccAddress { return signers(msg.Owner) }

// String implements proto.Message
func (msg MsgSetEnzymeComptroller) String() string {
	return fmt.Sprintf("MsgSetEnzymeComptroller{Owner: %s, Comptroller: %s}", msg.Owner, msg.Comptroller)
}

// MsgSetEnzymeComptrollerResponse defines the SetEnzymeComptroller response
type MsgSetEnzymeComptrollerResponse struct{}

// MsgAddFuseAsset registers a Fuse market under an id of 100 or above.
type MsgAddFuseAsset struct {
	Owner  string `json:"owner"`
	PoolID uint64 `json:"pool_id"`
	Market string `json:"market"`
}

// Route implements sdk.Msg
func (msg MsgAddFuseAsset) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgAddFuseAsset) Type() string { return TypeMsgAddFuseAsset }

// ValidateBasic implements sdk.Msg
func (msg MsgAddFuseAsset) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgAddFuseAsset) GetSigners() []sdk.AccAddress { return signers(msg.Owner) }

// String implements proto.Message
func (msg MsgAddFuseAsset) String() string {
	return fmt.Sprintf("MsgAddFuseAsset{Owner: %s, PoolID: %d, Market: %s}", msg.Owner, msg.PoolID, msg.Market)
}

// MsgAddFuseAssetResponse defines the AddFuseAsset response
type MsgAddFuseAssetResponse struct{}

// MsgApprovePool sets the allowance granted to a venue.
type MsgApprovePool struct {
	Sender string `json:"sender"`
	PoolID uint64 `json:"pool_id"`
	Amount string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgApprovePool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgApprovePool) Type() string { return TypeMsgApprovePool }

// ValidateBasic implements sdk.Msg
func (msg MsgApprovePool) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Sender)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgApprovePool) GetSigners() []sdk.AccAddress { return signers(msg.Sender) }

// String implements proto.Message
func (msg MsgApprovePool) String() string {
	return fmt.Sprintf("MsgApprovePool{Sender: %s, PoolID: %d, Amount: %s}", msg.Sender, msg.PoolID, msg.Amount)
}

// MsgApprovePoolResponse defines the ApprovePool response
type MsgApprovePoolResponse struct{}

// MsgDepositToPool moves idle capital into a pool.
type MsgDepositToPool struct {
	Rebalancer string `json:"rebalancer"`
	PoolID     uint64 `json:"pool_id"`
	Amount     string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgDepositToPool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgDepositToPool) Type() string { return TypeMsgDepositToPool }

// ValidateBasic implements sdk.Msg
func (msg MsgDepositToPool) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Rebalancer)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgDepositToPool) GetSigners() []sdk.AccAddress { return signers(msg.Rebalancer) }

// String implements proto.Message
func (msg MsgDepositToPool) String() string {
	return fmt.Sprintf("MsgDepositToPool{Rebalancer: %s, PoolID: %d, Amount: %s}", msg.Rebalancer, msg.PoolID, msg.Amount)
}

// MsgDepositToPoolResponse defines the DepositToPool response
type MsgDepositToPoolResponse struct{}

// MsgWithdrawFromPool pulls an amount back from a pool.
type MsgWithdrawFromPool struct {
	Rebalancer string `json:"rebalancer"`
	PoolID     uint64 `json:"pool_id"`
	Amount     string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgWithdrawFromPool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgWithdrawFromPool) Type() string { return TypeMsgWithdrawFromPool }

// ValidateBasic implements sdk.Msg
func (msg MsgWithdrawFromPool) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Rebalancer)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgWithdrawFromPool) GetSigners() []sdk.AccAddress { return signers(msg.Rebalancer) }

// String implements proto.Message
func (msg MsgWithdrawFromPool) String() string {
	return fmt.Sprintf("MsgWithdrawFromPool{Rebalancer: %s, PoolID: %d, Amount: %s}", msg.Rebalancer, msg.PoolID, msg.Amount)
}

// MsgWithdrawFromPoolResponse defines the WithdrawFromPool response
type MsgWithdrawFromPoolResponse struct{}

// MsgWithdrawAllFromPool pulls the full balance back from a pool.
type MsgWithdrawAllFromPool struct {
	Rebalancer string `json:"rebalancer"`
	PoolID     uint64 `json:"pool_id"`
}

// Route implements sdk.Msg
func (msg MsgWithdrawAllFromPool) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgWithdrawAllFromPool) Type() string { return TypeMsgWithdrawAllFromPool }

// ValidateBasic implements sdk.Msg
func (msg MsgWithdrawAllFromPool) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Rebalancer)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgWithdrawAllFromPool) GetSigners() []sdk.AccAddress { return signers(msg.Rebalancer) }

// String implements proto.Message
func (msg MsgWithdrawAllFromPool) String() string {
	return fmt.Sprintf("MsgWithdrawAllFromPool{Rebalancer: %s, PoolID: %d}", msg.Rebalancer, msg.PoolID)
}

// MsgWithdrawAllFromPoolResponse defines the WithdrawAllFromPool response
type MsgWithdrawAllFromPoolResponse struct {
	Withdrawn bool `json:"withdrawn"`
}

// MsgUpgradeFundController moves every asset to a replacement controller.
type MsgUpgradeFundController struct {
	Owner         string `json:"owner"`
	NewController string `json:"new_controller"`
}

// Route implements sdk.Msg
func (msg MsgUpgradeFundController) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgUpgradeFundController) Type() string { return TypeMsgUpgradeFundController }

// ValidateBasic implements sdk.Msg
func (msg MsgUpgradeFundController) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgUpgradeFundController) GetSigners() []sdk.AccAddress { return signers(msg.Owner) }

// String implements proto.Message
func (msg MsgUpgradeFundController) String() string {
	return fmt.Sprintf("MsgUpgradeFundController{Owner: %s, NewController: %s}", msg.Owner, msg.NewController)
}

// MsgUpgradeFundControllerResponse defines the UpgradeFundController response
type MsgUpgradeFundControllerResponse struct {
	Transferred string `json:"transferred"`
}
