package keeper

import (
	"encoding/json"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/uuid"

	"github.com/openalpha/kfund/x/controller/types"
	strategytypes "github.com/openalpha/kfund/x/strategy/types"
)

func execRecordKey(strategyID, execID string) []byte {
	key := append(ExecRecordKeyPrefix, []byte(strategyID)...)
	key = append(key, '/')
	return append(key, []byte(execID)...)
}

// Exec forwards a typed command to a strategy, optionally pulling vault
// capital first. Dispatch failures come back wrapped as ErrExecutionReverted;
// the audit record written alongside persists only when the surrounding
// transaction commits.
func (k *Keeper) Exec(ctx sdk.Context, caller, strategyID string, pullFromVault bool, amount math.Int, cmd types.StrategyCommand) error {
	if !k.isOperator(ctx, caller) {
		return types.ErrUnauthorized
	}
	if !cmd.Kind.Valid() {
		return types.ErrUnknownCommand
	}

	if pullFromVault {
		vaultID, bound := k.BoundVault(ctx, strategyID)
		if !bound {
			return types.ErrBindingViolation
		}
		if err := k.vaultKeeper.TransferCash(ctx, types.ControllerAccount, vaultID,
			strategytypes.StrategyAccount(strategyID), amount); err != nil {
			return err
		}
	}

	err := k.dispatch(ctx, strategyID, cmd)
	k.recordExec(ctx, strategyID, cmd.Kind, err)
	if err != nil {
		k.logger.Warn("strategy command reverted",
			"strategy_id", strategyID,
			"command", string(cmd.Kind),
			"err", err,
		)
		return types.ErrExecutionReverted.Wrap(err.Error())
	}

	if vaultID, bound := k.BoundVault(ctx, strategyID); bound {
		if err := k.refreshStrategyAssets(ctx, vaultID, strategyID); err != nil {
			return err
		}
	}

	ctx.EventManager().EmitEvent(
		sdk.NewEvent("controller_exec",
			sdk.NewAttribute("strategy_id", strategyID),
			sdk.NewAttribute("command", string(cmd.Kind)),
		),
	)
	return nil
}

// dispatch maps each command kind onto the strategy surface.
func (k *Keeper) dispatch(ctx sdk.Context, strategyID string, cmd types.StrategyCommand) error {
	switch cmd.Kind {
	case types.CommandNewPool:
		return k.strategyKeeper.NewPool(ctx, strategyID)
	case types.CommandBindToken:
		return k.strategyKeeper.BindToken(ctx, strategyID, cmd.Denom, cmd.Weight)
	case types.CommandUnbindToken:
		return k.strategyKeeper.UnbindToken(ctx, strategyID, cmd.Denom)
	case types.CommandRebindToken:
		return k.strategyKeeper.RebindToken(ctx, strategyID, cmd.Denom, cmd.Weight)
	case types.CommandSetUnderlyingTokens:
		return k.strategyKeeper.SetUnderlyingTokens(ctx, strategyID, cmd.Denoms)
	case types.CommandAddLiquidity:
		return k.strategyKeeper.AddLiquidity(ctx, strategyID, cmd.Amount)
	case types.CommandRemoveLiquidity:
		return k.strategyKeeper.RemoveLiquidity(ctx, strategyID, cmd.Amount)
	}
	return types.ErrUnknownCommand
}

// recordExec appends the audit log entry for a forwarded command.
func (k *Keeper) recordExec(ctx sdk.Context, strategyID string, kind types.CommandKind, execErr error) {
	record := types.ExecRecord{
		ExecID:     uuid.NewString(),
		StrategyID: strategyID,
		Kind:       kind,
		Status:     types.ExecStatusOK,
		ExecutedAt: ctx.BlockTime().Unix(),
	}
	if execErr != nil {
		record.Status = types.ExecStatusReverted
		record.Error = execErr.Error()
	}

	store := k.GetStore(ctx)
	bz, _ := json.Marshal(record)
	store.Set(execRecordKey(strategyID, record.ExecID), bz)
}

// GetExecRecords returns the exec audit log of a strategy.
func (k *Keeper) GetExecRecords(ctx sdk.Context, strategyID string) []types.ExecRecord {
	store := k.GetStore(ctx)
	prefix := append(ExecRecordKeyPrefix, []byte(strategyID)...)
	iterator := storetypes.KVStorePrefixIterator(store, append(prefix, '/'))
	defer iterator.Close()

	var records []types.ExecRecord
	for ; iterator.Valid(); iterator.Next() {
		var record types.ExecRecord
		if err := json.Unmarshal(iterator.Value(), &record); err != nil {
			continue
		}
		records = append(records, record)
	}
	return records
}
