package handlers

import (
	"encoding/json"
	"net/http"

	errorsmod "cosmossdk.io/errors"

	fundtypes "github.com/openalpha/yieldfund/types"
	fctypes "github.com/openalpha/yieldfund/x/fundcontroller/types"
	fmtypes "github.com/openalpha/yieldfund/x/fundmanager/types"
	venuesimtypes "github.com/openalpha/yieldfund/x/venuesim/types"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error     string `json:"error"`
	Category  string `json:"category,omitempty"`
	Codespace string `json:"codespace,omitempty"`
	Code      uint32 `json:"code,omitempty"`
}

// WriteJSON writes data with the given status
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes a plain error message
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// writeFundError writes an error returned by the app. fallback is used when
// the error carries no fund category.
func writeFundError(w http.ResponseWriter, err error, fallback int) {
	resp := ErrorResponse{Error: err.Error(), Category: string(fundtypes.Categorize(err))}
	if codespace, code, _ := errorsmod.ABCIInfo(err, false); codespace != errorsmod.UndefinedCodespace {
		resp.Codespace = codespace
		resp.Code = code
	}
	WriteJSON(w, StatusFor(err, fallback), resp)
}

// StatusFor maps an app error onto an HTTP status
func StatusFor(err error, fallback int) int {
	if errorsmod.IsOf(err, fmtypes.ErrUnknownManager, fmtypes.ErrUnknownController,
		fundtypes.ErrPoolNotRegistered, venuesimtypes.ErrMarketNotFound) {
		return http.StatusNotFound
	}
	if errorsmod.IsOf(err, fmtypes.ErrInvalidFeeRate, fmtypes.ErrInvalidLimit, fmtypes.ErrNoBeneficiary,
		fctypes.ErrPoolIDTaken, fctypes.ErrInvalidPoolID, fctypes.ErrInvalidMarket, fctypes.ErrUnknownVenue) {
		return http.StatusBadRequest
	}

	switch fundtypes.Categorize(err) {
	case fundtypes.CategoryAuthorization:
		return http.StatusForbidden
	case fundtypes.CategoryState, fundtypes.CategoryInsufficientLiquidity:
		return http.StatusConflict
	case fundtypes.CategoryLimitExceeded:
		return http.StatusUnprocessableEntity
	case fundtypes.CategoryAdapter:
		return http.StatusBadGateway
	case fundtypes.CategoryValidation:
		return http.StatusBadRequest
	}
	return fallback
}
