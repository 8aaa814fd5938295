package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	fundtypes "github.com/openalpha/yieldfund/types"
)

// Message types
const (
	TypeMsgDeposit                          = "deposit"
	TypeMsgWithdraw                         = "withdraw"
	TypeMsgSetInterestFeeRate               = "set_interest_fee_rate"
	TypeMsgSetInterestFeeMasterBeneficiary  = "set_interest_fee_master_beneficiary"
	TypeMsgSetDefaultAccountBalanceLimit    = "set_default_account_balance_limit"
	TypeMsgSetIndividualAccountBalanceLimit = "set_individual_account_balance_limit"
	TypeMsgSetFundRebalancer                = "set_fund_rebalancer"
	TypeMsgTransferOwnership                = "transfer_ownership"
	TypeMsgDisableFund                      = "disable_fund"
	TypeMsgEnableFund                       = "enable_fund"
	TypeMsgSetFundController                = "set_fund_controller"
	TypeMsgDepositFees                      = "deposit_fees"
	TypeMsgWithdrawFees                     = "withdraw_fees"
	TypeMsgCheckpointInterest               = "checkpoint_interest"
	TypeMsgAuthorizeFundManagerDataSource   = "authorize_fund_manager_data_source"
	TypeMsgUpgradeFundManager               = "upgrade_fund_manager"
)

func signers(addr string) []sdk.AccAddress {
	acc, _ := sdk.AccAddressFromBech32(addr)
	return []sdk.AccAddress{acc}
}

// MsgDeposit adds base asset to the fund in exchange for claim tokens.
type MsgDeposit struct {
	Depositor string `json:"depositor"`
	Amount    string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgDeposit) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgDeposit) Type() string { return TypeMsgDeposit }

// ValidateBasic implements sdk.Msg
func (msg MsgDeposit) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Depositor)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgDeposit) GetSigners() []sdk.AccAddress { return signers(msg.Depositor) }

// String implements proto.Message
func (msg MsgDeposit) String() string {
	return fmt.Sprintf("MsgDeposit{Depositor: %s, Amount: %s}", msg.Depositor, msg.Amount)
}

// MsgDepositResponse defines the Deposit response
type MsgDepositResponse struct {
	Shares string `json:"shares"`
}

// MsgWithdraw redeems claim tokens for base asset.
type MsgWithdraw struct {
	Withdrawer string `json:"withdrawer"`
	Amount     string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgWithdraw) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgWithdraw) Type() string { return TypeMsgWithdraw }

// ValidateBasic implements sdk.Msg
func (msg MsgWithdraw) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Withdrawer)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgWithdraw) GetSigners() []sdk.AccAddress { return signers(msg.Withdrawer) }

// String implements proto.Message
func (msg MsgWithdraw) String() string {
	return fmt.Sprintf("MsgWithdraw{Withdrawer: %s, Amount: %s}", msg.Withdrawer, msg.Amount)
}

// MsgWithdrawResponse defines the Withdraw response
type MsgWithdrawResponse struct {
	SharesBurned string `json:"shares_burned"`
}

// MsgSetInterestFeeRate sets the share of future interest taken as fees.
type MsgSetInterestFeeRate struct {
	Owner   string `json:"owner"`
	RateBps uint64 `json:"rate_bps"`
}

// Route implements sdk.Msg
func (msg MsgSetInterestFeeRate) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetInterestFeeRate) Type() string { return TypeMsgSetInterestFeeRate }

// ValidateBasic implements sdk.Msg
func (msg MsgSetInterestFeeRate) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgSetInterestFeeRate) GetSigners() []sdk.AccAddress { return signers(msg.Owner) }

// String implements proto.Message
func (msg MsgSetInterestFeeRate) String() string {
	return fmt.Sprintf("MsgSetInterestFeeRate{Owner: %s, RateBps: %d}", msg.Owner, msg.RateBps)
}

// MsgSetInterestFeeRateResponse defines the SetInterestFeeRate response
type MsgSetInterestFeeRateResponse struct{}

// MsgSetInterestFeeMasterBeneficiary sets who receives claimed fees.
type MsgSetInterestFeeMasterBeneficiary struct {
	Owner       string `json:"owner"`
	Beneficiary string `json:"beneficiary"`
}

// Route implements sdk.Msg
func (msg MsgSetInterestFeeMasterBeneficiary) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetInterestFeeMasterBeneficiary) Type() string {
	return TypeMsgSetInterestFeeMasterBeneficiary
}

// ValidateBasic implements sdk.Msg
func (msg MsgSetInterestFeeMasterBeneficiary) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgSetInterestFeeMasterBeneficiary) GetSigners() []sdk.AccAddress {
	return signers(msg.Owner)
}

// String implements proto.Message
func (msg MsgSetInterestFeeMasterBeneficiary) String() string {
	return fmt.Sprintf("MsgSetInterestFeeMasterBeneficiary{Owner: %s, Beneficiary: %s}", msg.Owner, msg.Beneficiary)
}

// MsgSetInterestFeeMasterBeneficiaryResponse defines the SetInterestFeeMasterBeneficiary response
type MsgSetInterestFeeMasterBeneficiaryResponse struct{}

// MsgSetDefaultAccountBalanceLimit sets the cap applied to accounts without an override.
type MsgSetDefaultAccountBalanceLimit struct {
	Owner string `json:"owner"`
	Limit string `json:"limit"`
}

// Route implements sdk.Msg
func (msg MsgSetDefaultAccountBalanceLimit) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetDefaultAccountBalanceLimit) Type() string {
	return TypeMsgSetDefaultAccountBalanceLimit
}

// ValidateBasic implements sdk.Msg
func (msg MsgSetDefaultAccountBalanceLimit) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgSetDefaultAccountBalanceLimit) GetSigners() []sdk.AccAddress { return signers(msg.Owner) }

// String implements proto.Message
func (msg MsgSetDefaultAccountBalanceLimit) String() string {
	return fmt.Sprintf("MsgSetDefaultAccountBalanceLimit{Owner: %s, Limit: %s}", msg.Owner, msg.Limit)
}

// MsgSetDefaultAccountBalanceLimitResponse defines the SetDefaultAccountBalanceLimit response
type MsgSetDefaultAccountBalanceLimitResponse struct{}

// MsgSetIndividualAccountBalanceLimit overrides the cap of one account.
type MsgSetIndividualAccountBalanceLimit struct {
	Owner   string `json:"owner"`
	Account string `json:"account"`
	Limit   string `json:"limit"`
}

// Route implements sdk.Msg
func (msg MsgSetIndividualAccountBalanceLimit) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetIndividualAccountBalanceLimit) Type() string {
	return TypeMsgSetIndividualAccountBalanceLimit
}

// ValidateBasic implements sdk.Msg
func (msg MsgSetIndividualAccountBalanceLimit) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgSetIndividualAccountBalanceLimit) GetSigners() []sdk.AccAddress {
	return signers(msg.Owner)
}

// String implements proto.Message
func (msg MsgSetIndividualAccountBalanceLimit) String() string {
	return fmt.Sprintf("MsgSetIndividualAccountBalanceLimit{Owner: %s, Account: %s, Limit: %s}", msg.Owner, msg.Account, msg.Limit)
}

// MsgSetIndividualAccountBalanceLimitResponse defines the SetIndividualAccountBalanceLimit response
type MsgSetIndividualAccountBalanceLimitResponse struct{}

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

// MsgDisableFund stops deposits and withdrawals.
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

// MsgEnableFund resumes deposits and withdrawals.
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

// MsgSetFundController points the manager at a controller instance.
type MsgSetFundController struct {
	Owner          string `json:"owner"`
	FundController string `json:"fund_controller"`
}

// Route implements sdk.Msg
func (msg MsgSetFundController) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgSetFundController) Type() string { return TypeMsgSetFundController }

// ValidateBasic implements sdk.Msg
func (msg MsgSetFundController) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgSetFundController) GetSigners() []sdk.AccAddress { return signers(msg.Owner) }

// String implements proto.Message
func (msg MsgSetFundController) String() string {
	return fmt.Sprintf("MsgSetFundController{Owner: %s, FundController: %s}", msg.Owner, msg.FundController)
}

// MsgSetFundControllerResponse defines the SetFundController response
type MsgSetFundControllerResponse struct{}

// MsgDepositFees mints claim tokens for unclaimed fees to the beneficiary.
type MsgDepositFees struct {
	Owner string `json:"owner"`
}

// Route implements sdk.Msg
func (msg MsgDepositFees) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgDepositFees) Type() string { return TypeMsgDepositFees }

// ValidateBasic implements sdk.Msg
func (msg MsgDepositFees) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgDepositFees) GetSigners() []sdk.AccAddress { return signers(msg.Owner) }

// String implements proto.Message
func (msg MsgDepositFees) String() string {
	return fmt.Sprintf("MsgDepositFees{Owner: %s}", msg.Owner)
}

// MsgDepositFeesResponse defines the DepositFees response
type MsgDepositFeesResponse struct {
	Fees   string `json:"fees"`
	Shares string `json:"shares"`
}

// MsgWithdrawFees pays unclaimed fees to the beneficiary in base asset.
type MsgWithdrawFees struct {
	Owner string `json:"owner"`
}

// Route implements sdk.Msg
func (msg MsgWithdrawFees) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgWithdrawFees) Type() string { return TypeMsgWithdrawFees }

// ValidateBasic implements sdk.Msg
func (msg MsgWithdrawFees) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgWithdrawFees) GetSigners() []sdk.AccAddress { return signers(msg.Owner) }

// String implements proto.Message
func (msg MsgWithdrawFees) String() string {
	return fmt.Sprintf("MsgWithdrawFees{Owner: %s}", msg.Owner)
}

// MsgWithdrawFeesResponse defines the WithdrawFees response
type MsgWithdrawFeesResponse struct {
	Fees string `json:"fees"`
}

// MsgCheckpointInterest persists the interest fee checkpoint.
type MsgCheckpointInterest struct {
	Sender string `json:"sender"`
}

// Route implements sdk.Msg
func (msg MsgCheckpointInterest) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgCheckpointInterest) Type() string { return TypeMsgCheckpointInterest }

// ValidateBasic implements sdk.Msg
func (msg MsgCheckpointInterest) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Sender)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgCheckpointInterest) GetSigners() []sdk.AccAddress { return signers(msg.Sender) }

// String implements proto.Message
func (msg MsgCheckpointInterest) String() string {
	return fmt.Sprintf("MsgCheckpointInterest{Sender: %s}", msg.Sender)
}

// MsgCheckpointInterestResponse defines the CheckpointInterest response
type MsgCheckpointInterestResponse struct{}

// MsgAuthorizeFundManagerDataSource allows a predecessor to push its ledger.
type MsgAuthorizeFundManagerDataSource struct {
	Owner      string `json:"owner"`
	DataSource string `json:"data_source"`
}

// Route implements sdk.Msg
func (msg MsgAuthorizeFundManagerDataSource) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgAuthorizeFundManagerDataSource) Type() string {
	return TypeMsgAuthorizeFundManagerDataSource
}

// ValidateBasic implements sdk.Msg
func (msg MsgAuthorizeFundManagerDataSource) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgAuthorizeFundManagerDataSource) GetSigners() []sdk.AccAddress { return signers(msg.Owner) }

// String implements proto.Message
func (msg MsgAuthorizeFundManagerDataSource) String() string {
	return fmt.Sprintf("MsgAuthorizeFundManagerDataSource{Owner: %s, DataSource: %s}", msg.Owner, msg.DataSource)
}

// MsgAuthorizeFundManagerDataSourceResponse defines the AuthorizeFundManagerDataSource response
type MsgAuthorizeFundManagerDataSourceResponse struct{}

// MsgUpgradeFundManager hands the ledger and minter role to a replacement manager.
type MsgUpgradeFundManager struct {
	Owner      string `json:"owner"`
	NewManager string `json:"new_manager"`
}

// Route implements sdk.Msg
func (msg MsgUpgradeFundManager) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgUpgradeFundManager) Type() string { return TypeMsgUpgradeFundManager }

// ValidateBasic implements sdk.Msg
func (msg MsgUpgradeFundManager) ValidateBasic() error {
	_, err := fundtypes.ParseAddress(msg.Owner)
	return err
}

// GetSigners implements sdk.Msg
func (msg MsgUpgradeFundManager) GetSigners() []sdk.AccAddress { return signers(msg.Owner) }

// String implements proto.Message
func (msg MsgUpgradeFundManager) String() string {
	return fmt.Sprintf("MsgUpgradeFundManager{Owner: %s, NewManager: %s}", msg.Owner, msg.NewManager)
}

// MsgUpgradeFundManagerResponse defines the UpgradeFundManager response
type MsgUpgradeFundManagerResponse struct{}
