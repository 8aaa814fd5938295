package types

import (
	"fmt"

	"cosmossdk.io/math"

	fundtypes "github.com/openalpha/yieldfund/types"
)

// Message types
const (
	TypeMsgTransfer = "transfer"
	TypeMsgApprove  = "approve"
)

// MsgTransfer moves claim tokens between holders.
type MsgTransfer struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgTransfer) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgTransfer) Type() string { return TypeMsgTransfer }

// ValidateBasic implements sdk.Msg
func (msg MsgTransfer) ValidateBasic() error {
	if _, err := fundtypes.ParseAddress(msg.Sender); err != nil {
		return err
	}
	if _, err := fundtypes.ParseAddress(msg.Recipient); err != nil {
		return err
	}
	return validateAmount(msg.Amount)
}

// String implements proto.Message
func (msg MsgTransfer) String() string {
	return fmt.Sprintf("MsgTransfer{Sender: %s, Recipient: %s, Amount: %s}", msg.Sender, msg.Recipient, msg.Amount)
}

// MsgTransferResponse defines the Transfer response
type MsgTransferResponse struct{}

// MsgApprove sets the allowance of a spender, typically the fund manager.
type MsgApprove struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

// Route implements sdk.Msg
func (msg MsgApprove) Route() string { return ModuleName }

// Type implements sdk.Msg
func (msg MsgApprove) Type() string { return TypeMsgApprove }

// ValidateBasic implements sdk.Msg
func (msg MsgApprove) ValidateBasic() error {
	if _, err := fundtypes.ParseAddress(msg.Owner); err != nil {
		return err
	}
	if _, err := fundtypes.ParseAddress(msg.Spender); err != nil {
		return err
	}
	return validateAmount(msg.Amount)
}

// String implements proto.Message
func (msg MsgApprove) String() string {
	return fmt.Sprintf("MsgApprove{Owner: %s, Spender: %s, Amount: %s}", msg.Owner, msg.Spender, msg.Amount)
}

// MsgApproveResponse defines the Approve response
type MsgApproveResponse struct{}

func validateAmount(s string) error {
	amount, ok := math.NewIntFromString(s)
	if !ok || amount.IsNegative() {
		return fundtypes.ErrInvalidAmount.Wrapf("cannot parse %q", s)
	}
	return nil
}
