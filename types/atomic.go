package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RunAtomic executes fn on a cached branch of ctx and writes it back only if
// fn succeeds, so a rejected operation leaves every store untouched.
func RunAtomic(ctx sdk.Context, fn func(ctx sdk.Context) error) error {
	cacheCtx, write := ctx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	write()
	return nil
}
