package main

import (
	"context"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/MixinNetwork/launchpad/runtime"
	"github.com/gofrs/uuid"
	"github.com/spf13/cobra"
)

func proposalCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "proposal",
		Aliases: []string{"prop"},
		Short:   "Create, vote on and execute fund withdrawal proposals",
	}
	cmd.AddCommand(
		proposalBindCmd(a),
		proposalCreateCmd(a),
		proposalVoteCmd(a),
		proposalExecuteCmd(a),
		proposalShowCmd(a),
	)
	return cmd
}

func proposalBindCmd(a *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "bind [origin] [asset] [class]",
		Short: "Let holders of an NFT class vote with an asset",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := parseUint32(args[2])
			if err != nil {
				return err
			}
			return a.withRuntime(cmd, func(ctx context.Context, rt *runtime.Runtime) (any, error) {
				return nil, rt.BindAssetToNFT(ctx, args[0], args[1], class)
			})
		},
	}
}

func proposalCreateCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create [origin] [collection] [asset] [amount] [wallet] [title]",
		Short: "Propose to pay a collection fund out to a wallet",
		Args:  cobra.ExactArgs(6),
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, err := parseUint32(args[1])
			if err != nil {
				return err
			}
			amount, err := chain.ParseBalance(args[3])
			if err != nil {
				return err
			}
			desc, _ := cmd.Flags().GetString(flagDescription)
			expiredAt, _ := cmd.Flags().GetUint64(flagExpiredAt)
			id := uuid.Must(uuid.NewV4()).String()
			return a.withRuntime(cmd, func(ctx context.Context, rt *runtime.Runtime) (any, error) {
				err := rt.CreateProposal(ctx, args[0], id, collection, args[2], amount, args[4], args[5], desc, expiredAt)
				return id, err
			})
		},
	}
	cmd.Flags().String(flagDescription, "", "proposal description")
	cmd.Flags().Uint64(flagExpiredAt, 0, "advisory expiry moment")
	return cmd
}

func proposalVoteCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vote [origin] [proposal] [class] [instance]",
		Short: "Vote on a proposal with an owned NFT",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := parseUint32(args[2])
			if err != nil {
				return err
			}
			instance, err := parseUint32(args[3])
			if err != nil {
				return err
			}
			reject, _ := cmd.Flags().GetBool(flagReject)
			return a.withRuntime(cmd, func(ctx context.Context, rt *runtime.Runtime) (any, error) {
				err := rt.Vote(ctx, args[0], args[1], !reject, class, instance)
				if err != nil {
					return nil, err
				}
				return rt.Tally(args[1])
			})
		},
	}
	cmd.Flags().Bool(flagReject, false, "vote against the proposal")
	return cmd
}

func proposalExecuteCmd(a *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "execute [origin] [proposal]",
		Short: "Pay the fund out if the proposal passed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRuntime(cmd, func(ctx context.Context, rt *runtime.Runtime) (any, error) {
				return nil, rt.Execute(ctx, args[0], args[1])
			})
		},
	}
}

func proposalShowCmd(a *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "show [proposal]",
		Short: "Show a proposal, its votes and tally",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRuntime(cmd, func(ctx context.Context, rt *runtime.Runtime) (any, error) {
				p, err := rt.Proposal(args[0])
				if err != nil {
					return nil, err
				}
				votes, err := rt.Votes(args[0])
				if err != nil {
					return nil, err
				}
				tally, err := rt.Tally(args[0])
				return map[string]any{"proposal": p, "votes": votes, "tally": tally}, err
			})
		},
	}
}

func fundCmd(a *appState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fund",
		Short: "Inspect and dispense collection funds",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "dispense [origin] [index]",
		Short: "Pay a fund out to its beneficiary",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseUint32(args[1])
			if err != nil {
				return err
			}
			return a.withRuntime(cmd, func(ctx context.Context, rt *runtime.Runtime) (any, error) {
				return rt.DispenseFund(ctx, args[0], index)
			})
		},
	}, &cobra.Command{
		Use:   "balance [account]",
		Short: "Print the ledger balance of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withRuntime(cmd, func(ctx context.Context, rt *runtime.Runtime) (any, error) {
				return rt.Balance(args[0])
			})
		},
	})
	return cmd
}

func endowCmd(a *appState) *cobra.Command {
	return &cobra.Command{
		Use:   "endow [account] [amount]",
		Short: "Credit an account out of thin air, for development chains",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := chain.ParseBalance(args[1])
			if err != nil {
				return err
			}
			return a.withRuntime(cmd, func(ctx context.Context, rt *runtime.Runtime) (any, error) {
				err := rt.Endow(ctx, args[0], amount)
				if err != nil {
					return nil, err
				}
				return rt.Balance(args[0])
			})
		},
	}
}
